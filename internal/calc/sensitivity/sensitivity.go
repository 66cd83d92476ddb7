// Package sensitivity sweeps one input of the loading relation while holding
// the other at its base value.
package sensitivity

import (
	"errors"

	settling "Clarifier/internal/calc/settling"

	"gonum.org/v1/gonum/floats"
)

var ErrZeroBase = errors.New("base SLR is zero")

type Point struct {
	Value     float64 `json:"value"`
	SLR       float64 `json:"slr"`
	ChangePct float64 `json:"change_pct"`
}

type Analysis struct {
	BaseMLSS float64 `json:"base_mlss"`
	BaseFlow float64 `json:"base_flow"`
	BaseSLR  float64 `json:"base_slr"`
	MLSS     []Point `json:"mlss"`
	Flow     []Point `json:"equivalent_flow"`
}

var (
	MLSSSweep = settling.Axis(2000, 5000, 500)
	FlowSweep = settling.Axis(60, 170, 10)
)

// Analyze computes SLR and its percentage change against the base point for
// every sweep value.
func Analyze(e *settling.Engine, baseMLSS, baseFlow float64) (Analysis, error) {
	base := e.CalculateSLR(baseMLSS, baseFlow)
	if base == 0 {
		return Analysis{}, ErrZeroBase
	}
	a := Analysis{BaseMLSS: baseMLSS, BaseFlow: baseFlow, BaseSLR: base}
	a.MLSS = sweep(MLSSSweep, base, func(v float64) float64 { return e.CalculateSLR(v, baseFlow) })
	a.Flow = sweep(FlowSweep, base, func(v float64) float64 { return e.CalculateSLR(baseMLSS, v) })
	return a, nil
}

func sweep(values []float64, base float64, slr func(float64) float64) []Point {
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = slr(v)
	}
	change := make([]float64, len(out))
	copy(change, out)
	floats.AddConst(-base, change)
	floats.Scale(100/base, change)

	pts := make([]Point, len(values))
	for i, v := range values {
		pts[i] = Point{Value: v, SLR: out[i], ChangePct: change[i]}
	}
	return pts
}
