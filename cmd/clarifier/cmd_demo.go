package main

import (
	"fmt"

	"Clarifier/internal/calc/batch"
	"Clarifier/internal/calc/sensitivity"
	"Clarifier/internal/i18n"

	"github.com/spf13/cobra"
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Walk through calculation, safety checks, inverse solving and sensitivity",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := engine()
		if err != nil {
			return err
		}
		w := cmd.OutOrStdout()
		c := i18n.Default()
		l := lang()

		fmt.Fprintf(w, "== SLR (area %g m²)\n", e.Area())
		for _, p := range [][2]float64{{3000, 90}, {3500, 100}, {4500, 130}} {
			fmt.Fprintf(w, "MLSS %g mg/L, flow %g L/s -> SLR %.2f kg/h/m²\n", p[0], p[1], e.CalculateSLR(p[0], p[1]))
		}

		fmt.Fprintln(w, "\n== Safety checks")
		results, err := batch.Check(e, batch.Presets())
		if err != nil {
			return err
		}
		for _, r := range results {
			fmt.Fprintf(w, "\n-- %s\n", r.Scenario.Name)
			printVerdict(w, c, l, r.Verdict)
		}

		fmt.Fprintln(w, "\n== Inverse solving")
		mlss, err := e.CalculateMLSS(12, 100)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "SLR 12, flow 100 -> MLSS %.0f mg/L\n", mlss)
		flow, err := e.CalculateEquivalentFlow(3500, 12)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "SLR 12, MLSS 3500 -> flow %.2f L/s\n", flow)

		fmt.Fprintln(w, "\n== Sensitivity around MLSS 3500, flow 100")
		a, err := sensitivity.Analyze(e, 3500, 100)
		if err != nil {
			return err
		}
		for _, p := range a.MLSS {
			fmt.Fprintf(w, "MLSS %6g  SLR %10.2f  %+7.1f%%\n", p.Value, p.SLR, p.ChangePct)
		}
		for _, p := range a.Flow {
			fmt.Fprintf(w, "flow %6g  SLR %10.2f  %+7.1f%%\n", p.Value, p.SLR, p.ChangePct)
		}
		return nil
	},
}
