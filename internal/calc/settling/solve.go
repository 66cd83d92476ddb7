package settling

import (
	"fmt"
	"math"
)

type Mode string

const (
	SolveSLR  Mode = "slr"
	SolveMLSS Mode = "mlss"
	SolveFlow Mode = "flow"
)

type SolveInput struct {
	Mode           Mode    `json:"mode"`
	Area           float64 `json:"area"`
	MLSS           float64 `json:"mlss"`
	EquivalentFlow float64 `json:"equivalent_flow"`
	SLR            float64 `json:"slr"`
}

type SolveResult struct {
	Mode    Mode    `json:"mode"`
	Area    float64 `json:"area"`
	Value   float64 `json:"value"`
	Rounded float64 `json:"rounded"`
	Unit    string  `json:"unit"`
}

// Solve computes the missing quantity of the triple. A zero area falls back to
// defaultArea. Rounding matches the spreadsheet functions: SLR and flow to two
// decimals, MLSS to whole mg/L.
func Solve(in SolveInput, defaultArea float64) (SolveResult, error) {
	area := in.Area
	if area == 0 {
		area = defaultArea
	}
	e, err := New(area)
	if err != nil {
		return SolveResult{}, err
	}

	res := SolveResult{Mode: in.Mode, Area: area}
	switch in.Mode {
	case SolveSLR:
		res.Value = e.CalculateSLR(in.MLSS, in.EquivalentFlow)
		res.Rounded = round(res.Value, 2)
		res.Unit = ParamSLR.Unit()
	case SolveMLSS:
		res.Value, err = e.CalculateMLSS(in.SLR, in.EquivalentFlow)
		res.Rounded = round(res.Value, 0)
		res.Unit = ParamMLSS.Unit()
	case SolveFlow:
		res.Value, err = e.CalculateEquivalentFlow(in.MLSS, in.SLR)
		res.Rounded = round(res.Value, 2)
		res.Unit = ParamEquivalentFlow.Unit()
	default:
		return SolveResult{}, fmt.Errorf("%w: solve mode %q", ErrUnknownParameter, string(in.Mode))
	}
	if err != nil {
		return SolveResult{}, err
	}
	return res, nil
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
