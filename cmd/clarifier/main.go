package main

import (
	"fmt"
	"os"

	settling "Clarifier/internal/calc/settling"
	"Clarifier/internal/i18n"

	"github.com/spf13/cobra"
)

var (
	areaFlag   float64
	langFlag   string
	configFlag string
)

var rootCmd = &cobra.Command{
	Use:   "clarifier",
	Short: "Settling unit MLSS / flow / solids loading calculator",
	Long: `clarifier relates mixed-liquor suspended solids (MLSS, mg/L), equivalent
flow (L/s) and solids loading rate (SLR, kg/h/m²) for a settling unit of a
given surface area, and checks operating points against the safe bands.

  SLR = (MLSS / 1000) × (EQ × 3.6) / area`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().Float64Var(&areaFlag, "area", 1.0, "settling unit surface area in m²")
	rootCmd.PersistentFlags().StringVar(&langFlag, "lang", "en", "language for recommendations (en, zh, es, de)")
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "YAML config file (serve, token)")

	rootCmd.AddCommand(serveCmd, checkCmd, solveCmd, tableCmd, demoCmd, exportCmd, tokenCmd)
}

func engine() (*settling.Engine, error) {
	return settling.New(areaFlag)
}

func lang() string {
	return i18n.Default().Resolve(langFlag)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
