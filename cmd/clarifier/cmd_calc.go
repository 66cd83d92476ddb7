package main

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	settling "Clarifier/internal/calc/settling"
	"Clarifier/internal/i18n"

	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check MLSS FLOW",
	Short: "Check an operating point against the safe bands",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		mlss, flow, err := parsePair(args)
		if err != nil {
			return err
		}
		e, err := engine()
		if err != nil {
			return err
		}
		printVerdict(cmd.OutOrStdout(), i18n.Default(), lang(), e.CheckOperatingPoint(mlss, flow))
		return nil
	},
}

var (
	solveMode string
	solveIn   settling.SolveInput
)

var solveCmd = &cobra.Command{
	Use:   "solve",
	Short: "Solve for the missing one of SLR, MLSS and flow",
	Example: `  clarifier solve --mode slr --mlss 3500 --flow 100
  clarifier solve --mode mlss --slr 12 --flow 90
  clarifier solve --mode flow --mlss 3500 --slr 10`,
	RunE: func(cmd *cobra.Command, args []string) error {
		solveIn.Mode = settling.Mode(solveMode)
		solveIn.Area = areaFlag
		res, err := settling.Solve(solveIn, areaFlag)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s = %g %s\n", res.Mode, res.Rounded, res.Unit)
		return nil
	},
}

var tableCmd = &cobra.Command{
	Use:   "table",
	Short: "Print the SLR reference grid (MLSS across, flow down)",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := engine()
		if err != nil {
			return err
		}
		t := e.GenerateOperatingRangeTable()
		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 1, ' ', tabwriter.AlignRight)
		for _, h := range t.Header() {
			fmt.Fprintf(tw, "%s\t", h)
		}
		fmt.Fprintln(tw)
		for i, flow := range t.Flows {
			fmt.Fprintf(tw, "%g\t", flow)
			for _, c := range t.Cells[i] {
				fmt.Fprintf(tw, "%s\t", c)
			}
			fmt.Fprintln(tw)
		}
		return tw.Flush()
	},
}

func init() {
	solveCmd.Flags().StringVar(&solveMode, "mode", "slr", "value to solve for: slr, mlss or flow")
	solveCmd.Flags().Float64Var(&solveIn.MLSS, "mlss", 0, "MLSS in mg/L")
	solveCmd.Flags().Float64Var(&solveIn.EquivalentFlow, "flow", 0, "equivalent flow in L/s")
	solveCmd.Flags().Float64Var(&solveIn.SLR, "slr", 0, "solids loading rate in kg/h/m²")
}

func parsePair(args []string) (float64, float64, error) {
	mlss, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return 0, 0, fmt.Errorf("MLSS: %w", err)
	}
	flow, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return 0, 0, fmt.Errorf("FLOW: %w", err)
	}
	return mlss, flow, nil
}

func mark(ok bool) string {
	if ok {
		return "✓"
	}
	return "✗"
}

func printVerdict(w io.Writer, c *i18n.Catalog, lang string, v settling.Verdict) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, cl := range []settling.Classification{v.MLSS, v.EquivalentFlow, v.SLR} {
		fmt.Fprintf(tw, "%s\t%.2f %s\t%g - %g\t%g - %g\t%s %s\n",
			c.Parameter(lang, string(cl.Parameter)),
			cl.Value, cl.Parameter.Unit(),
			cl.Min, cl.Max,
			cl.Optimal.Low, cl.Optimal.High,
			c.Status(lang, cl.Status), mark(cl.Safe))
	}
	tw.Flush()
	fmt.Fprintf(w, "\n%s %s\n", mark(v.OverallSafe), c.Overall(lang, v.OverallSafe))
	for _, m := range i18n.Messages(c, lang, v.Recommendations) {
		fmt.Fprintf(w, "  - %s\n", m)
	}
}
