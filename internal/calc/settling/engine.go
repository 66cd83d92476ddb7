// Package settling relates MLSS, equivalent flow and solids loading rate for a
// settling unit of fixed surface area and checks operating points against the
// safe and optimal bands of each parameter.
package settling

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidConfiguration = errors.New("invalid configuration")
	ErrDivisionByZero       = errors.New("division by zero")
	ErrUnknownParameter     = errors.New("unknown parameter")
)

// litres per second to cubic metres per hour
const flowToHourly = 3.6

// mg/L per kg/m³
const mgPerKg = 1000.0

// Engine is immutable after New and may be shared between goroutines.
type Engine struct {
	area float64
}

func New(area float64) (*Engine, error) {
	if !(area > 0) {
		return nil, fmt.Errorf("%w: area must be > 0, got %v", ErrInvalidConfiguration, area)
	}
	return &Engine{area: area}, nil
}

func (e *Engine) Area() float64 { return e.area }

// CalculateSLR returns the solids loading rate in kg/h/m².
// Inputs are not range checked.
func (e *Engine) CalculateSLR(mlss, equivalentFlow float64) float64 {
	return (mlss / mgPerKg) * (equivalentFlow * flowToHourly) / e.area
}

// CalculateMLSS solves the loading relation for MLSS in mg/L.
func (e *Engine) CalculateMLSS(slr, equivalentFlow float64) (float64, error) {
	if equivalentFlow == 0 {
		return 0, fmt.Errorf("%w: equivalent flow is 0", ErrDivisionByZero)
	}
	return (slr * e.area * mgPerKg) / (equivalentFlow * flowToHourly), nil
}

// CalculateEquivalentFlow solves the loading relation for flow in L/s.
func (e *Engine) CalculateEquivalentFlow(mlss, slr float64) (float64, error) {
	if mlss == 0 {
		return 0, fmt.Errorf("%w: mlss is 0", ErrDivisionByZero)
	}
	return (slr * e.area * mgPerKg) / (mlss * flowToHourly), nil
}
