package settling

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustEngine(t *testing.T, area float64) *Engine {
	t.Helper()
	e, err := New(area)
	require.NoError(t, err)
	return e
}

func TestNewRejectsNonPositiveArea(t *testing.T) {
	for _, area := range []float64{0, -1, math.NaN()} {
		_, err := New(area)
		assert.ErrorIs(t, err, ErrInvalidConfiguration, "area %v", area)
	}
	e := mustEngine(t, 2.5)
	assert.Equal(t, 2.5, e.Area())
}

func TestCalculateSLR(t *testing.T) {
	e := mustEngine(t, 1.0)
	assert.InDelta(t, 1260.0, e.CalculateSLR(3500, 100), 1e-9)

	e100 := mustEngine(t, 100)
	assert.InDelta(t, 12.6, e100.CalculateSLR(3500, 100), 1e-9)

	// no bounds checking on inputs
	assert.InDelta(t, -1260.0, e.CalculateSLR(-3500, 100), 1e-9)
	assert.Equal(t, 0.0, e.CalculateSLR(0, 100))
}

func TestInverseForms(t *testing.T) {
	e := mustEngine(t, 1.0)

	mlss, err := e.CalculateMLSS(12, 90)
	require.NoError(t, err)
	assert.InDelta(t, 12000.0/324.0, mlss, 1e-9)

	flow, err := e.CalculateEquivalentFlow(3500, 10)
	require.NoError(t, err)
	assert.InDelta(t, 10000.0/12600.0, flow, 1e-9)
}

func TestInverseFormsRejectZeroDivisor(t *testing.T) {
	e := mustEngine(t, 1.0)

	_, err := e.CalculateMLSS(12, 0)
	assert.ErrorIs(t, err, ErrDivisionByZero)

	_, err = e.CalculateEquivalentFlow(0, 12)
	assert.ErrorIs(t, err, ErrDivisionByZero)
}

func TestRoundTrip(t *testing.T) {
	for _, area := range []float64{0.5, 1, 37.5, 250} {
		e := mustEngine(t, area)
		for _, mlss := range []float64{1, 2000, 3500, 5400, 12345.678} {
			for _, flow := range []float64{0.1, 60, 100, 170, 999} {
				slr := e.CalculateSLR(mlss, flow)

				gotMLSS, err := e.CalculateMLSS(slr, flow)
				require.NoError(t, err)
				assert.InEpsilon(t, mlss, gotMLSS, 1e-6)

				gotFlow, err := e.CalculateEquivalentFlow(mlss, slr)
				require.NoError(t, err)
				assert.InEpsilon(t, flow, gotFlow, 1e-6)
			}
		}
	}
}

func TestMonotonicity(t *testing.T) {
	e := mustEngine(t, 10)
	prev := e.CalculateSLR(1000, 100)
	for mlss := 1200.0; mlss <= 6000; mlss += 200 {
		cur := e.CalculateSLR(mlss, 100)
		assert.Greater(t, cur, prev)
		prev = cur
	}

	prev = e.CalculateSLR(3500, 10)
	for flow := 15.0; flow <= 200; flow += 5 {
		cur := e.CalculateSLR(3500, flow)
		assert.Greater(t, cur, prev)
		prev = cur
	}

	prev = mustEngine(t, 1).CalculateSLR(3500, 100)
	for area := 2.0; area <= 200; area *= 2 {
		cur := mustEngine(t, area).CalculateSLR(3500, 100)
		assert.Less(t, cur, prev)
		prev = cur
	}
}

func TestRangeTableInvariant(t *testing.T) {
	for _, p := range Parameters {
		r, err := RangeFor(p)
		require.NoError(t, err)
		assert.Less(t, r.Min, r.Optimal.Low, p)
		assert.LessOrEqual(t, r.Optimal.Low, r.Optimal.High, p)
		assert.Less(t, r.Optimal.High, r.Max, p)
	}
}

func TestClassifyParameter(t *testing.T) {
	e := mustEngine(t, 1)
	tests := []struct {
		name   Parameter
		value  float64
		status Status
		safe   bool
	}{
		{ParamMLSS, 1999.999, StatusTooLow, false},
		{ParamMLSS, 2000, StatusNormal, true},
		{ParamMLSS, 2999.99, StatusNormal, true},
		{ParamMLSS, 3000, StatusOptimal, true},
		{ParamMLSS, 4500, StatusOptimal, true},
		{ParamMLSS, 5400, StatusNormal, true},
		{ParamMLSS, 5400.001, StatusTooHigh, false},
		{ParamEquivalentFlow, 59, StatusTooLow, false},
		{ParamEquivalentFlow, 60, StatusNormal, true},
		{ParamEquivalentFlow, 100, StatusOptimal, true},
		{ParamEquivalentFlow, 170, StatusNormal, true},
		{ParamEquivalentFlow, 171, StatusTooHigh, false},
		{ParamSLR, 2.99, StatusTooLow, false},
		{ParamSLR, 7.999, StatusNormal, true},
		{ParamSLR, 8.0, StatusOptimal, true},
		{ParamSLR, 16.0, StatusOptimal, true},
		{ParamSLR, 16.001, StatusNormal, true},
		{ParamSLR, 24.0, StatusNormal, true},
		{ParamSLR, 1260, StatusTooHigh, false},
	}
	for _, tt := range tests {
		c, err := e.ClassifyParameter(tt.name, tt.value)
		require.NoError(t, err)
		assert.Equal(t, tt.status, c.Status, "%s=%v", tt.name, tt.value)
		assert.Equal(t, tt.safe, c.Safe, "%s=%v", tt.name, tt.value)
		assert.Equal(t, tt.name, c.Parameter)
		assert.Equal(t, tt.value, c.Value)
	}
}

func TestClassifyUnknownParameter(t *testing.T) {
	e := mustEngine(t, 1)
	_, err := e.ClassifyParameter("ph", 7)
	assert.ErrorIs(t, err, ErrUnknownParameter)
	assert.Contains(t, err.Error(), `"ph"`)
}

func TestCheckOperatingPointDocumentedScenario(t *testing.T) {
	e := mustEngine(t, 1.0)
	v := e.CheckOperatingPoint(3500, 100)

	assert.InDelta(t, 1260.0, v.CalculatedSLR, 1e-9)
	assert.Equal(t, StatusOptimal, v.MLSS.Status)
	assert.Equal(t, StatusOptimal, v.EquivalentFlow.Status)
	assert.Equal(t, StatusTooHigh, v.SLR.Status)
	assert.False(t, v.OverallSafe)
	assert.Equal(t, []Recommendation{RecSLRTooHigh}, v.Recommendations)
}

func TestCheckOperatingPointRecommendations(t *testing.T) {
	tests := []struct {
		name       string
		area       float64
		mlss, flow float64
		safe       bool
		want       []Recommendation
	}{
		{"healthy", 100, 3500, 100, true, []Recommendation{RecAllSafe}},
		{"boundaries are safe", 100, 2000, 170, true, []Recommendation{RecAllSafe}},
		{"everything low", 100, 1000, 10, false, []Recommendation{RecMLSSTooLow, RecFlowTooLow, RecSLRTooLow}},
		{"inputs high, slr normal", 1000, 6000, 200, false, []Recommendation{RecMLSSTooHigh, RecFlowTooHigh}},
		{"mlss low, slr high", 1, 1500, 100, false, []Recommendation{RecMLSSTooLow, RecSLRTooHigh}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := mustEngine(t, tt.area).CheckOperatingPoint(tt.mlss, tt.flow)
			assert.Equal(t, tt.safe, v.OverallSafe)
			assert.Equal(t, tt.want, v.Recommendations)
		})
	}
}

func TestCheckOperatingPointIdempotent(t *testing.T) {
	e := mustEngine(t, 1)
	a := e.CheckOperatingPoint(4200, 60)
	b := e.CheckOperatingPoint(4200, 60)
	assert.Equal(t, a, b)

	ja, err := json.Marshal(a)
	require.NoError(t, err)
	jb, err := json.Marshal(b)
	require.NoError(t, err)
	assert.Equal(t, ja, jb)
}

func TestStatusText(t *testing.T) {
	b, err := json.Marshal(StatusTooLow)
	require.NoError(t, err)
	assert.Equal(t, `"too_low"`, string(b))

	var s Status
	require.NoError(t, json.Unmarshal([]byte(`"optimal"`), &s))
	assert.Equal(t, StatusOptimal, s)
	assert.Error(t, json.Unmarshal([]byte(`"bogus"`), &s))
	assert.Equal(t, "Status(9)", Status(9).String())
}

func TestGenerateOperatingRangeTable(t *testing.T) {
	tbl := mustEngine(t, 1).GenerateOperatingRangeTable()

	require.Len(t, tbl.MLSS, 18)
	require.Len(t, tbl.Flows, 23)
	require.Len(t, tbl.Cells, 23)
	for _, row := range tbl.Cells {
		require.Len(t, row, 18)
	}
	assert.Equal(t, 2000.0, tbl.MLSS[0])
	assert.Equal(t, 2200.0, tbl.MLSS[1])
	assert.Equal(t, 5400.0, tbl.MLSS[17])
	assert.Equal(t, 60.0, tbl.Flows[0])
	assert.Equal(t, 65.0, tbl.Flows[1])
	assert.Equal(t, 170.0, tbl.Flows[22])

	assert.Equal(t, "432.00", tbl.Cells[0][0])
	assert.Equal(t, "3304.80", tbl.Cells[22][17])

	h := tbl.Header()
	require.Len(t, h, 19)
	assert.Equal(t, "Equivalent (L/s)", h[0])
	assert.Equal(t, "MLSS 2000", h[1])
	assert.Equal(t, "MLSS 5400", h[18])
}

func TestSolve(t *testing.T) {
	res, err := Solve(SolveInput{Mode: SolveSLR, MLSS: 3500, EquivalentFlow: 100}, 100)
	require.NoError(t, err)
	assert.Equal(t, 100.0, res.Area)
	assert.Equal(t, 12.6, res.Rounded)
	assert.Equal(t, "kg/h/m²", res.Unit)

	res, err = Solve(SolveInput{Mode: SolveMLSS, Area: 1, SLR: 12, EquivalentFlow: 90}, 100)
	require.NoError(t, err)
	assert.Equal(t, 1.0, res.Area)
	assert.Equal(t, 37.0, res.Rounded)

	res, err = Solve(SolveInput{Mode: SolveFlow, Area: 100, MLSS: 3500, SLR: 12.6}, 1)
	require.NoError(t, err)
	assert.Equal(t, 100.0, res.Rounded)

	_, err = Solve(SolveInput{Mode: SolveMLSS, SLR: 12}, 1)
	assert.ErrorIs(t, err, ErrDivisionByZero)

	_, err = Solve(SolveInput{Mode: "ph"}, 1)
	assert.ErrorIs(t, err, ErrUnknownParameter)

	_, err = Solve(SolveInput{Mode: SolveSLR, Area: -2}, 1)
	assert.ErrorIs(t, err, ErrInvalidConfiguration)
}
