package settling

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

const (
	tableMLSSFrom, tableMLSSTo, tableMLSSStep = 2000.0, 5400.0, 200.0
	tableFlowFrom, tableFlowTo, tableFlowStep = 60.0, 170.0, 5.0
)

// RangeTable is the SLR reference grid: MLSS across, flow down.
type RangeTable struct {
	MLSS  []float64  `json:"mlss"`
	Flows []float64  `json:"equivalent_flow"`
	Cells [][]string `json:"slr"`
}

func (e *Engine) GenerateOperatingRangeTable() RangeTable {
	mlss := Axis(tableMLSSFrom, tableMLSSTo, tableMLSSStep)
	flows := Axis(tableFlowFrom, tableFlowTo, tableFlowStep)

	cells := make([][]string, len(flows))
	for i, flow := range flows {
		row := make([]string, len(mlss))
		for j, m := range mlss {
			row[j] = fmt.Sprintf("%.2f", e.CalculateSLR(m, flow))
		}
		cells[i] = row
	}
	return RangeTable{MLSS: mlss, Flows: flows, Cells: cells}
}

// Header returns the column captions used by spreadsheet and text output.
func (t RangeTable) Header() []string {
	h := make([]string, 0, len(t.MLSS)+1)
	h = append(h, "Equivalent (L/s)")
	for _, m := range t.MLSS {
		h = append(h, fmt.Sprintf("MLSS %g", m))
	}
	return h
}

// Axis returns from, from+step, ..., to inclusive. step must divide the span.
func Axis(from, to, step float64) []float64 {
	n := int((to-from)/step+0.5) + 1
	if n < 2 {
		return []float64{from}
	}
	return floats.Span(make([]float64, n), from, to)
}
