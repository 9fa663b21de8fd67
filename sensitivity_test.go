package golpsa

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSensitivityReport(t *testing.T) {
	_, sol := solvedTelephone(t)

	report, err := sol.Sensitivity()
	require.NoError(t, err)

	require.Len(t, report.Constraints, 3)
	require.Len(t, report.Variables, 2)

	// declaration order is preserved
	assert.Equal(t, "machine_1", report.Constraints[0].Name)
	assert.Equal(t, "machine_2", report.Constraints[1].Name)
	assert.Equal(t, "factory", report.Constraints[2].Name)
	assert.Equal(t, "desk", report.Variables[0].Name)
	assert.Equal(t, "cell", report.Variables[1].Name)

	m1 := report.Constraints[0]
	assert.InDelta(t, 400.0/3, m1.Dual, delta)
	assert.InDelta(t, 0, m1.Slack, delta)
	assert.Equal(t, BasisUpper, m1.Basis)
	assert.InDelta(t, 4, m1.RHSRange.Lower, delta)
	assert.InDelta(t, 16, m1.RHSRange.Upper, delta)

	factory := report.Constraints[2]
	assert.InDelta(t, 16, factory.RHSRange.Lower, delta)
	assert.True(t, math.IsInf(factory.RHSRange.Upper, 1))

	desk := report.Variables[0]
	assert.InDelta(t, 8.0/3, desk.Value, delta)
	assert.InDelta(t, 0, desk.Reduced, delta)
	assert.InDelta(t, 100, desk.CostRange.Lower, delta)
	assert.InDelta(t, 400, desk.CostRange.Upper, delta)

	// the current coefficients sit inside their own ranges
	assert.True(t, desk.CostRange.Contains(300))
	assert.True(t, report.Variables[1].CostRange.Contains(200))
}

func TestSensitivityRequiresContinuousModel(t *testing.T) {
	model := telephoneModel(t)
	model.Variable("desk").SetType(IntegerVariable)

	// the engine only reports primal data for integer models
	answer := &Answer{
		Status:    SolutionOptimal,
		Objective: 1300,
		ColValues: []float64{3, 2},
	}
	sol, err := model.Solve(&stubEngine{answer: answer})
	require.NoError(t, err)

	_, err = sol.Sensitivity()
	assert.ErrorIs(t, err, ErrUnsupportedForIntegerModel)

	// even dual values that happen to be present are refused
	answer.RowDuals = []float64{1, 2, 3}
	answer.ColDuals = []float64{0, 0}
	answer.Ranging = telephoneAnswer().Ranging
	sol, err = model.Solve(&stubEngine{answer: answer})
	require.NoError(t, err)

	_, err = sol.Sensitivity()
	assert.ErrorIs(t, err, ErrUnsupportedForIntegerModel)

	// the relaxation permits the query again
	relaxed := model.Relax()
	sol, err = relaxed.Solve(&stubEngine{answer: telephoneAnswer()})
	require.NoError(t, err)
	_, err = sol.Sensitivity()
	assert.NoError(t, err)
}

func TestFieldQueriesRequireContinuousModel(t *testing.T) {
	model := telephoneModel(t)
	model.Variable("desk").SetType(IntegerVariable)

	// an engine that reports relaxation duals for an integral problem
	// must not leak them through the per-field accessors
	answer := telephoneAnswer()
	sol, err := model.Solve(&stubEngine{answer: answer})
	require.NoError(t, err)

	_, err = sol.Dual(model.Constraint("machine_1"))
	assert.ErrorIs(t, err, ErrUnsupportedForIntegerModel)
	_, err = sol.ReducedCost(model.Variable("desk"))
	assert.ErrorIs(t, err, ErrUnsupportedForIntegerModel)
	_, err = sol.BasisStatus(model.Constraint("machine_1"))
	assert.ErrorIs(t, err, ErrUnsupportedForIntegerModel)
	_, err = sol.VariableBasisStatus(model.Variable("desk"))
	assert.ErrorIs(t, err, ErrUnsupportedForIntegerModel)

	// same refusal when the engine reported primal data only
	sol, err = model.Solve(&stubEngine{answer: &Answer{
		Status:    SolutionOptimal,
		Objective: 1300,
		ColValues: []float64{3, 2},
	}})
	require.NoError(t, err)

	_, err = sol.Dual(model.Constraint("machine_1"))
	assert.ErrorIs(t, err, ErrUnsupportedForIntegerModel)
	_, err = sol.ReducedCost(model.Variable("desk"))
	assert.ErrorIs(t, err, ErrUnsupportedForIntegerModel)

	// primal reads are unaffected
	val, err := sol.Value(model.Variable("desk"))
	require.NoError(t, err)
	assert.InDelta(t, 3, val, delta)
	_, err = sol.Slack(model.Constraint("factory"))
	assert.NoError(t, err)
}

func TestSensitivityUnavailableWithoutEngineData(t *testing.T) {
	model := telephoneModel(t)

	answer := telephoneAnswer()
	answer.RowDuals = nil
	answer.ColDuals = nil
	answer.ColBasis = nil
	answer.RowBasis = nil
	answer.Ranging = nil

	sol, err := model.Solve(&stubEngine{answer: answer})
	require.NoError(t, err)

	_, err = sol.Sensitivity()
	assert.ErrorIs(t, err, ErrSensitivityUnavailable)
	_, err = sol.Dual(model.Constraint("machine_1"))
	assert.ErrorIs(t, err, ErrSensitivityUnavailable)
	_, err = sol.ReducedCost(model.Variable("desk"))
	assert.ErrorIs(t, err, ErrSensitivityUnavailable)
	_, err = sol.BasisStatus(model.Constraint("machine_1"))
	assert.ErrorIs(t, err, ErrSensitivityUnavailable)

	// primal data stays readable
	_, err = sol.Value(model.Variable("desk"))
	assert.NoError(t, err)
	_, err = sol.Slack(model.Constraint("factory"))
	assert.NoError(t, err)
}

func TestSensitivityReportWrite(t *testing.T) {
	_, sol := solvedTelephone(t)

	report, err := sol.Sensitivity()
	require.NoError(t, err)

	var buf strings.Builder
	require.NoError(t, report.Write(&buf))
	out := buf.String()

	for _, name := range []string{"machine_1", "machine_2", "factory", "desk", "cell"} {
		assert.Contains(t, out, name)
	}
	assert.Contains(t, out, "133.3333")
	assert.Contains(t, out, "[4.0000, 16.0000]")
	assert.Contains(t, out, "[16.0000, +inf]")
	assert.Contains(t, out, "at upper bound")

	// constraints before variables, both in declaration order
	assert.Less(t, strings.Index(out, "machine_1"), strings.Index(out, "factory"))
	assert.Less(t, strings.Index(out, "factory"), strings.Index(out, "desk"))
	assert.Less(t, strings.Index(out, "desk"), strings.Index(out, "cell"))
}

func TestRangeString(t *testing.T) {
	assert.Equal(t, "[4.0000, 16.0000]", Range{Lower: 4, Upper: 16}.String())
	assert.Equal(t, "[-inf, +inf]", Range{Lower: math.Inf(-1), Upper: math.Inf(1)}.String())
}
