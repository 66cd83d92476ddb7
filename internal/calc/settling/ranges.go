package settling

import "fmt"

type Parameter string

const (
	ParamMLSS           Parameter = "mlss"
	ParamEquivalentFlow Parameter = "equivalent_flow"
	ParamSLR            Parameter = "slr"
)

// Parameters lists the parameters in recommendation order.
var Parameters = []Parameter{ParamMLSS, ParamEquivalentFlow, ParamSLR}

type Window struct {
	Low  float64 `json:"low"`
	High float64 `json:"high"`
}

type Range struct {
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	Optimal Window  `json:"optimal"`
}

func (r Range) Contains(v float64) bool {
	return r.Min <= v && v <= r.Max
}

func (r Range) InOptimal(v float64) bool {
	return r.Optimal.Low <= v && v <= r.Optimal.High
}

// Unit is the display unit of a parameter.
func (p Parameter) Unit() string {
	switch p {
	case ParamMLSS:
		return "mg/L"
	case ParamEquivalentFlow:
		return "L/s"
	case ParamSLR:
		return "kg/h/m²"
	}
	return ""
}

// safety bands from plant operating experience
var ranges = map[Parameter]Range{
	ParamMLSS:           {Min: 2000, Max: 5400, Optimal: Window{Low: 3000, High: 4500}},
	ParamEquivalentFlow: {Min: 60, Max: 170, Optimal: Window{Low: 90, High: 130}},
	ParamSLR:            {Min: 3.0, Max: 24.0, Optimal: Window{Low: 8.0, High: 16.0}},
}

// RangeFor returns a copy of the band for p.
func RangeFor(p Parameter) (Range, error) {
	r, ok := ranges[p]
	if !ok {
		return Range{}, fmt.Errorf("%w: %q", ErrUnknownParameter, string(p))
	}
	return r, nil
}

type Status int

const (
	StatusNormal Status = iota
	StatusTooLow
	StatusOptimal
	StatusTooHigh
)

var statusNames = map[Status]string{
	StatusNormal:  "normal",
	StatusTooLow:  "too_low",
	StatusOptimal: "optimal",
	StatusTooHigh: "too_high",
}

func (s Status) String() string {
	if n, ok := statusNames[s]; ok {
		return n
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

func (s Status) MarshalText() ([]byte, error) {
	n, ok := statusNames[s]
	if !ok {
		return nil, fmt.Errorf("unknown status %d", int(s))
	}
	return []byte(n), nil
}

func (s *Status) UnmarshalText(b []byte) error {
	for k, v := range statusNames {
		if v == string(b) {
			*s = k
			return nil
		}
	}
	return fmt.Errorf("unknown status %q", string(b))
}
