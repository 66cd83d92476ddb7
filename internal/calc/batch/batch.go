package batch

import (
	"errors"
	"fmt"

	settling "Clarifier/internal/calc/settling"
)

var ErrEmpty = errors.New("no scenarios")

type Scenario struct {
	Name           string  `json:"name"`
	MLSS           float64 `json:"mlss"`
	EquivalentFlow float64 `json:"equivalent_flow"`
}

type Input struct {
	Area      float64    `json:"area"`
	Scenarios []Scenario `json:"scenarios"`
}

type Result struct {
	Scenario Scenario         `json:"scenario"`
	Verdict  settling.Verdict `json:"verdict"`
}

// Check evaluates each scenario in order. Unnamed scenarios get "Scenario N".
func Check(e *settling.Engine, scenarios []Scenario) ([]Result, error) {
	if len(scenarios) == 0 {
		return nil, ErrEmpty
	}
	out := make([]Result, 0, len(scenarios))
	for i, s := range scenarios {
		if s.Name == "" {
			s.Name = fmt.Sprintf("Scenario %d", i+1)
		}
		out = append(out, Result{Scenario: s, Verdict: e.CheckOperatingPoint(s.MLSS, s.EquivalentFlow)})
	}
	return out, nil
}

// Presets are the comparison runs shipped with the demo.
func Presets() []Scenario {
	return []Scenario{
		{Name: "Baseline", MLSS: 3500, EquivalentFlow: 100},
		{Name: "High flow", MLSS: 3500, EquivalentFlow: 120},
		{Name: "High concentration", MLSS: 4000, EquivalentFlow: 100},
		{Name: "Overload", MLSS: 4500, EquivalentFlow: 150},
	}
}
