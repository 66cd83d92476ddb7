// Package export writes engine results as xlsx workbooks.
package export

import (
	"fmt"
	"io"
	"math"

	"Clarifier/internal/calc/batch"
	"Clarifier/internal/calc/importer"
	"Clarifier/internal/calc/sensitivity"
	settling "Clarifier/internal/calc/settling"
	"Clarifier/internal/i18n"

	"github.com/xuri/excelize/v2"
)

const (
	headerColor = "4472C4"
	safeColor   = "C6EFCE"
	unsafeColor = "FFC7CE"
)

var comparisonHeader = []any{
	"Scenario", "MLSS (mg/L)", "Equivalent (L/s)", "SLR (kg/h/m²)",
	"MLSS status", "Flow status", "SLR status", "Overall",
}

type styles struct {
	header, center, safe, unsafe, title int
}

func newStyles(f *excelize.File) (styles, error) {
	var s styles
	var err error
	center := &excelize.Alignment{Horizontal: "center", Vertical: "center"}
	if s.header, err = f.NewStyle(&excelize.Style{
		Fill:      excelize.Fill{Type: "pattern", Color: []string{headerColor}, Pattern: 1},
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Alignment: center,
	}); err != nil {
		return s, err
	}
	if s.center, err = f.NewStyle(&excelize.Style{Alignment: center}); err != nil {
		return s, err
	}
	if s.safe, err = f.NewStyle(&excelize.Style{
		Fill:      excelize.Fill{Type: "pattern", Color: []string{safeColor}, Pattern: 1},
		Alignment: center,
	}); err != nil {
		return s, err
	}
	if s.unsafe, err = f.NewStyle(&excelize.Style{
		Fill:      excelize.Fill{Type: "pattern", Color: []string{unsafeColor}, Pattern: 1},
		Alignment: center,
	}); err != nil {
		return s, err
	}
	s.title, err = f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 14}})
	return s, err
}

func cell(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// WriteComparison writes one row per scenario with status columns and a
// green/red overall column.
func WriteComparison(w io.Writer, results []batch.Result, c *i18n.Catalog, lang string) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Comparison"
	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return err
	}
	st, err := newStyles(f)
	if err != nil {
		return err
	}

	if err := f.SetSheetRow(sheet, "A1", &comparisonHeader); err != nil {
		return err
	}
	last := len(comparisonHeader)
	if err := f.SetCellStyle(sheet, "A1", cell(last, 1), st.header); err != nil {
		return err
	}

	for i, r := range results {
		row := i + 2
		v := r.Verdict
		values := []any{
			r.Scenario.Name,
			r.Scenario.MLSS,
			r.Scenario.EquivalentFlow,
			round2(v.CalculatedSLR),
			c.Status(lang, v.MLSS.Status),
			c.Status(lang, v.EquivalentFlow.Status),
			c.Status(lang, v.SLR.Status),
			c.Overall(lang, v.OverallSafe),
		}
		if err := f.SetSheetRow(sheet, cell(1, row), &values); err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet, cell(1, row), cell(last-1, row), st.center); err != nil {
			return err
		}
		overall := st.unsafe
		if v.OverallSafe {
			overall = st.safe
		}
		if err := f.SetCellStyle(sheet, cell(last, row), cell(last, row), overall); err != nil {
			return err
		}
	}

	if err := f.SetColWidth(sheet, "A", "A", 15); err != nil {
		return err
	}
	if err := f.SetColWidth(sheet, "B", "H", 18); err != nil {
		return err
	}
	return f.Write(w)
}

// WriteSensitivity writes the MLSS sweep and the flow sweep on separate sheets.
func WriteSensitivity(w io.Writer, a sensitivity.Analysis) error {
	f := excelize.NewFile()
	defer f.Close()

	st, err := newStyles(f)
	if err != nil {
		return err
	}
	if err := f.SetSheetName(f.GetSheetName(0), "MLSS"); err != nil {
		return err
	}
	if _, err := f.NewSheet("Flow"); err != nil {
		return err
	}

	sheets := []struct {
		name, title, caption string
		points               []sensitivity.Point
	}{
		{"MLSS", "MLSS sensitivity", "MLSS (mg/L)", a.MLSS},
		{"Flow", "Flow sensitivity", "Equivalent (L/s)", a.Flow},
	}
	for _, s := range sheets {
		if err := f.SetCellValue(s.name, "A1", s.title); err != nil {
			return err
		}
		if err := f.SetCellStyle(s.name, "A1", "A1", st.title); err != nil {
			return err
		}
		header := []any{s.caption, "SLR (kg/h/m²)", "Change (%)"}
		if err := f.SetSheetRow(s.name, "A3", &header); err != nil {
			return err
		}
		for i, p := range s.points {
			row := []any{p.Value, round2(p.SLR), round2(p.ChangePct)}
			if err := f.SetSheetRow(s.name, cell(1, i+4), &row); err != nil {
				return err
			}
		}
		if err := f.SetCellStyle(s.name, "A3", cell(3, len(s.points)+3), st.center); err != nil {
			return err
		}
	}
	return f.Write(w)
}

// WriteAnalysis writes the per-cell report produced by importer.Analyze.
func WriteAnalysis(w io.Writer, rows []importer.AnalysisRow, c *i18n.Catalog, lang string) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Analysis"
	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return err
	}
	header := []any{"MLSS (mg/L)", "Equivalent (L/s)", "SLR (kg/h/m²)", "MLSS status", "Flow status", "SLR status", "Overall"}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}
	for i, r := range rows {
		values := []any{
			int(r.MLSS),
			int(r.Flow),
			fmt.Sprintf("%.2f", r.SheetSLR),
			c.Status(lang, r.MLSSStatus),
			c.Status(lang, r.FlowStatus),
			c.Status(lang, r.SLRStatus),
			c.Overall(lang, r.OverallSafe),
		}
		if err := f.SetSheetRow(sheet, cell(1, i+2), &values); err != nil {
			return err
		}
	}
	return f.Write(w)
}

// WriteRangeTable writes the SLR reference grid.
func WriteRangeTable(w io.Writer, t settling.RangeTable) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Range table"
	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return err
	}
	st, err := newStyles(f)
	if err != nil {
		return err
	}
	header := make([]any, 0, len(t.MLSS)+1)
	for _, h := range t.Header() {
		header = append(header, h)
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", cell(len(header), 1), st.header); err != nil {
		return err
	}
	for i, flow := range t.Flows {
		row := make([]any, 0, len(t.Cells[i])+1)
		row = append(row, flow)
		for _, v := range t.Cells[i] {
			row = append(row, v)
		}
		if err := f.SetSheetRow(sheet, cell(1, i+2), &row); err != nil {
			return err
		}
	}
	if err := f.SetColWidth(sheet, "A", "A", 18); err != nil {
		return err
	}
	return f.Write(w)
}
