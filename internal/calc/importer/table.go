// Package importer reads MLSS concentration workbooks and checks every cell
// of the sheet against the engine.
package importer

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	settling "Clarifier/internal/calc/settling"

	"github.com/xuri/excelize/v2"
)

var ErrEmptySheet = errors.New("empty sheet")

// Table is the grid of a concentration sheet: row 1 carries MLSS values from
// column B, row 2 is a caption, rows 3+ start with the flow in column A.
type Table struct {
	MLSS  []float64   `json:"mlss"`
	Flows []float64   `json:"equivalent_flow"`
	SLR   [][]float64 `json:"slr"`
}

type AnalysisRow struct {
	MLSS        float64         `json:"mlss"`
	Flow        float64         `json:"equivalent_flow"`
	SheetSLR    float64         `json:"sheet_slr"`
	MLSSStatus  settling.Status `json:"mlss_status"`
	FlowStatus  settling.Status `json:"flow_status"`
	SLRStatus   settling.Status `json:"slr_status"`
	OverallSafe bool            `json:"overall_safe"`
}

// ReadWorkbook parses the first sheet of an xlsx stream.
func ReadWorkbook(r io.Reader) (Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return Table{}, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return Table{}, fmt.Errorf("read rows: %w", err)
	}
	return Parse(rows)
}

// Parse skips header cells that are not numbers and data rows that contain a
// non-numeric cell.
func Parse(rows [][]string) (Table, error) {
	if len(rows) == 0 || len(rows[0]) < 2 {
		return Table{}, ErrEmptySheet
	}
	var t Table
	for _, cell := range rows[0][1:] {
		v, err := toFloat(cell)
		if err != nil {
			continue
		}
		t.MLSS = append(t.MLSS, v)
	}
	if len(t.MLSS) == 0 {
		return Table{}, fmt.Errorf("%w: no MLSS header values", ErrEmptySheet)
	}

	for i := 2; i < len(rows); i++ {
		row := rows[i]
		if len(row) < 2 {
			continue
		}
		flow, err := toFloat(row[0])
		if err != nil {
			continue
		}
		cells, ok := parseCells(row[1:], len(t.MLSS))
		if !ok {
			continue
		}
		t.Flows = append(t.Flows, flow)
		t.SLR = append(t.SLR, cells)
	}
	if len(t.Flows) == 0 {
		return Table{}, fmt.Errorf("%w: no data rows", ErrEmptySheet)
	}
	return t, nil
}

func parseCells(row []string, max int) ([]float64, bool) {
	if len(row) > max {
		row = row[:max]
	}
	out := make([]float64, 0, len(row))
	for _, cell := range row {
		v, err := toFloat(cell)
		if err != nil {
			return nil, false
		}
		out = append(out, v)
	}
	return out, len(out) > 0
}

// Analyze checks every (flow, MLSS) cell present in the sheet.
func Analyze(e *settling.Engine, t Table) []AnalysisRow {
	var out []AnalysisRow
	for i, flow := range t.Flows {
		for j, mlss := range t.MLSS {
			if j >= len(t.SLR[i]) {
				break
			}
			v := e.CheckOperatingPoint(mlss, flow)
			out = append(out, AnalysisRow{
				MLSS:        mlss,
				Flow:        flow,
				SheetSLR:    t.SLR[i][j],
				MLSSStatus:  v.MLSS.Status,
				FlowStatus:  v.EquivalentFlow.Status,
				SLRStatus:   v.SLR.Status,
				OverallSafe: v.OverallSafe,
			})
		}
	}
	return out
}

func toFloat(s string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(s), 64)
}
