package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"Clarifier/internal/calc/batch"
	"Clarifier/internal/calc/export"
	"Clarifier/internal/calc/report"
	"Clarifier/internal/calc/sensitivity"
	"Clarifier/internal/i18n"

	"github.com/spf13/cobra"
)

var (
	exportOut  string
	exportMLSS float64
	exportFlow float64
	reportIn   report.Input
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write workbooks and reports to files",
}

var exportComparisonCmd = &cobra.Command{
	Use:   "comparison",
	Short: "Comparison workbook of the preset scenarios",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := engine()
		if err != nil {
			return err
		}
		results, err := batch.Check(e, batch.Presets())
		if err != nil {
			return err
		}
		return writeFile(cmd, "comparison.xlsx", func(w io.Writer) error {
			return export.WriteComparison(w, results, i18n.Default(), lang())
		})
	},
}

var exportSensitivityCmd = &cobra.Command{
	Use:   "sensitivity",
	Short: "MLSS and flow sensitivity workbook around a base point",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := engine()
		if err != nil {
			return err
		}
		a, err := sensitivity.Analyze(e, exportMLSS, exportFlow)
		if err != nil {
			return err
		}
		return writeFile(cmd, "sensitivity.xlsx", func(w io.Writer) error {
			return export.WriteSensitivity(w, a)
		})
	},
}

var exportTableCmd = &cobra.Command{
	Use:   "table",
	Short: "SLR reference grid workbook",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := engine()
		if err != nil {
			return err
		}
		return writeFile(cmd, "slr_table.xlsx", func(w io.Writer) error {
			return export.WriteRangeTable(w, e.GenerateOperatingRangeTable())
		})
	},
}

var exportReportCmd = &cobra.Command{
	Use:   "report",
	Short: "PDF verdict report for one operating point",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := engine()
		if err != nil {
			return err
		}
		reportIn.Area = e.Area()
		reportIn.MLSS = exportMLSS
		reportIn.EquivalentFlow = exportFlow
		r := report.New(reportIn, e.CheckOperatingPoint(exportMLSS, exportFlow), lang(), time.Now())
		return writeFile(cmd, "report.pdf", func(w io.Writer) error {
			return r.Write(w, i18n.Default())
		})
	},
}

func init() {
	exportCmd.PersistentFlags().StringVarP(&exportOut, "out", "o", "", "output file (default depends on the export)")
	for _, c := range []*cobra.Command{exportSensitivityCmd, exportReportCmd} {
		c.Flags().Float64Var(&exportMLSS, "mlss", 3500, "MLSS in mg/L")
		c.Flags().Float64Var(&exportFlow, "flow", 100, "equivalent flow in L/s")
	}
	exportReportCmd.Flags().StringVar(&reportIn.Project, "project", "", "project name")
	exportReportCmd.Flags().StringVar(&reportIn.Author, "author", "", "author")
	exportReportCmd.Flags().StringVar(&reportIn.Notes, "notes", "", "free-form notes")

	exportCmd.AddCommand(exportComparisonCmd, exportSensitivityCmd, exportTableCmd, exportReportCmd)
}

func writeFile(cmd *cobra.Command, name string, write func(io.Writer) error) error {
	path := exportOut
	if path == "" {
		path = name
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
	return nil
}
