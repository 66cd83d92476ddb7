package settling

type Classification struct {
	Parameter Parameter `json:"parameter"`
	Value     float64   `json:"value"`
	Min       float64   `json:"min"`
	Max       float64   `json:"max"`
	Optimal   Window    `json:"optimal"`
	Status    Status    `json:"status"`
	Safe      bool      `json:"safe"`
}

// Recommendation is a stable identifier; wording lives with the caller.
type Recommendation string

const (
	RecMLSSTooLow  Recommendation = "mlss_too_low"
	RecMLSSTooHigh Recommendation = "mlss_too_high"
	RecFlowTooLow  Recommendation = "flow_too_low"
	RecFlowTooHigh Recommendation = "flow_too_high"
	RecSLRTooLow   Recommendation = "slr_too_low"
	RecSLRTooHigh  Recommendation = "slr_too_high"
	RecAllSafe     Recommendation = "all_safe"
)

// Recommendations lists every code in emission order.
var Recommendations = []Recommendation{
	RecMLSSTooLow, RecMLSSTooHigh,
	RecFlowTooLow, RecFlowTooHigh,
	RecSLRTooLow, RecSLRTooHigh,
	RecAllSafe,
}

type Verdict struct {
	MLSS            Classification   `json:"mlss"`
	EquivalentFlow  Classification   `json:"equivalent_flow"`
	SLR             Classification   `json:"slr"`
	CalculatedSLR   float64          `json:"calculated_slr"`
	OverallSafe     bool             `json:"overall_safe"`
	Recommendations []Recommendation `json:"recommendations"`
}

// ClassifyParameter places value in the band of the named parameter.
// Values equal to min or max are Normal and safe.
func (e *Engine) ClassifyParameter(name Parameter, value float64) (Classification, error) {
	r, err := RangeFor(name)
	if err != nil {
		return Classification{}, err
	}
	return classify(name, r, value), nil
}

func classify(name Parameter, r Range, value float64) Classification {
	status := StatusNormal
	switch {
	case value < r.Min:
		status = StatusTooLow
	case value > r.Max:
		status = StatusTooHigh
	case r.InOptimal(value):
		status = StatusOptimal
	}
	return Classification{
		Parameter: name,
		Value:     value,
		Min:       r.Min,
		Max:       r.Max,
		Optimal:   r.Optimal,
		Status:    status,
		Safe:      r.Contains(value),
	}
}

func (e *Engine) CheckOperatingPoint(mlss, equivalentFlow float64) Verdict {
	slr := e.CalculateSLR(mlss, equivalentFlow)

	mlssCheck := classify(ParamMLSS, ranges[ParamMLSS], mlss)
	flowCheck := classify(ParamEquivalentFlow, ranges[ParamEquivalentFlow], equivalentFlow)
	slrCheck := classify(ParamSLR, ranges[ParamSLR], slr)

	return Verdict{
		MLSS:            mlssCheck,
		EquivalentFlow:  flowCheck,
		SLR:             slrCheck,
		CalculatedSLR:   slr,
		OverallSafe:     mlssCheck.Safe && flowCheck.Safe && slrCheck.Safe,
		Recommendations: recommend(mlssCheck, flowCheck, slrCheck),
	}
}

func recommend(mlss, flow, slr Classification) []Recommendation {
	var out []Recommendation
	pick := func(c Classification, low, high Recommendation) {
		if c.Safe {
			return
		}
		if c.Status == StatusTooLow {
			out = append(out, low)
		} else {
			out = append(out, high)
		}
	}
	pick(mlss, RecMLSSTooLow, RecMLSSTooHigh)
	pick(flow, RecFlowTooLow, RecFlowTooHigh)
	pick(slr, RecSLRTooLow, RecSLRTooHigh)
	if len(out) == 0 {
		out = append(out, RecAllSafe)
	}
	return out
}
