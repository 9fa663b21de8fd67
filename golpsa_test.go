/*
Copyright © 2026 LeLoMAu

This program is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

This program is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with this program.  If not, see <http://www.gnu.org/licenses/>.
*/
package golpsa

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const delta = 0.0000001 // acceptable numerical deviation for test results

// stubEngine is a canned-answer Engine for tests that exercise the
// modelling layer without a real solver.
type stubEngine struct {
	answer  *Answer
	err     error
	problem *Problem
	calls   int
}

func (s *stubEngine) Solve(ctx context.Context, p *Problem) (*Answer, error) {
	s.problem = p
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.answer, nil
}

// telephoneModel builds the production planning fixture:
// maximize 300 desk + 200 cell subject to 2d+c<=8, d+2c<=8, 3d+3c<=24.
func telephoneModel(t *testing.T) *Model {
	t.Helper()

	model, err := NewModel("telephone_production", Maximize)
	require.NoError(t, err)

	desk, err := model.AddVariable("desk")
	require.NoError(t, err)
	cell, err := model.AddVariable("cell")
	require.NoError(t, err)

	phones := []*Variable{desk, cell}
	_, err = model.AddConstraint("machine_1", phones, []float64{2, 1}, LessEqual, 8)
	require.NoError(t, err)
	_, err = model.AddConstraint("machine_2", phones, []float64{1, 2}, LessEqual, 8)
	require.NoError(t, err)
	_, err = model.AddConstraint("factory", phones, []float64{3, 3}, LessEqual, 24)
	require.NoError(t, err)

	require.NoError(t, model.SetObjective([]float64{300, 200}, phones))

	return model
}

// telephoneAnswer is the known optimum of the fixture, with full
// sensitivity data: desk = cell = 8/3, objective 4000/3.
func telephoneAnswer() *Answer {
	return &Answer{
		Status:    SolutionOptimal,
		Objective: 4000.0 / 3,
		ColValues: []float64{8.0 / 3, 8.0 / 3},
		RowValues: []float64{8, 8, 16},
		RowDuals:  []float64{400.0 / 3, 100.0 / 3, 0},
		ColDuals:  []float64{0, 0},
		ColBasis:  []BasisStatus{BasisBasic, BasisBasic},
		RowBasis:  []BasisStatus{BasisUpper, BasisUpper, BasisBasic},
		Ranging: &Ranging{
			RHS: []Range{
				{Lower: 4, Upper: 16},
				{Lower: 4, Upper: 16},
				{Lower: 16, Upper: math.Inf(1)},
			},
			Cost: []Range{
				{Lower: 100, Upper: 400},
				{Lower: 150, Upper: 600},
			},
		},
	}
}

func TestInstantiation(t *testing.T) {
	name := "test model 1"
	model, err := NewModel(name, Maximize)
	require.NoError(t, err)

	assert.Equal(t, name, model.Name())
	assert.Equal(t, Maximize, model.Direction())

	model.SetDirection(Minimize)
	assert.Equal(t, Minimize, model.Direction())
}

func TestAddVariableWithDetails(t *testing.T) {
	model, err := NewModel("test", Maximize)
	require.NoError(t, err)

	v1, err := model.AddDefinedVariable("x", BinaryVariable, 3.1416, -5, 5)
	require.NoError(t, err)

	assert.Equal(t, "x", v1.Name())
	assert.Equal(t, BinaryVariable, v1.Type())
	assert.Equal(t, 3.1416, v1.Coefficient())
	l, h := v1.Bounds()
	assert.Equal(t, 0.0, l) // binary bounds are forced
	assert.Equal(t, 1.0, h)

	v2, err := model.AddDefinedVariable("y", ContinuousVariable, -1, math.Inf(-1), 5)
	require.NoError(t, err)

	assert.Equal(t, ContinuousVariable, v2.Type())
	l, h = v2.Bounds()
	assert.Equal(t, math.Inf(-1), l)
	assert.Equal(t, 5.0, h)
}

func TestInvalidBounds(t *testing.T) {
	model, err := NewModel("test", Maximize)
	require.NoError(t, err)

	_, err = model.AddDefinedVariable("x", ContinuousVariable, 1, 3, 2)
	assert.ErrorIs(t, err, ErrInvalidBounds)
	assert.Equal(t, 0, model.VariableCount())

	v, err := model.AddVariable("y")
	require.NoError(t, err)
	assert.ErrorIs(t, v.SetBounds(10, 4), ErrInvalidBounds)

	// unchanged by the failed update
	l, h := v.Bounds()
	assert.Equal(t, 0.0, l)
	assert.True(t, math.IsInf(h, 1))

	// one-sided infinities are always fine
	assert.NoError(t, v.SetBounds(math.Inf(-1), math.Inf(1)))
}

func TestUniqueNames(t *testing.T) {
	model, err := NewModel("test", Maximize)
	require.NoError(t, err)

	x, err := model.AddVariable("x")
	require.NoError(t, err)
	_, err = model.AddVariable("x")
	assert.Error(t, err)

	_, err = model.AddConstraint("c", []*Variable{x}, []float64{1}, LessEqual, 1)
	require.NoError(t, err)
	_, err = model.AddConstraint("c", []*Variable{x}, []float64{1}, GreaterEqual, 0)
	assert.Error(t, err)
}

func TestAutoNames(t *testing.T) {
	model, err := NewModel("test", Minimize)
	require.NoError(t, err)

	v, err := model.AddVariable("")
	require.NoError(t, err)
	assert.Equal(t, "V0", v.Name())
	assert.Same(t, v, model.Variable("V0"))

	c, err := model.AddConstraint("", []*Variable{v}, []float64{1}, Equal, 1)
	require.NoError(t, err)
	assert.Equal(t, "C0", c.Name())
	assert.Same(t, c, model.Constraint("C0"))
}

func TestSetObjectiveReplaces(t *testing.T) {
	model, err := NewModel("test", Maximize)
	require.NoError(t, err)

	x, _ := model.AddVariable("x")
	y, _ := model.AddVariable("y")

	require.NoError(t, model.SetObjective([]float64{1.3, 2.7182}, []*Variable{x, y}))
	assert.Equal(t, 1.3, x.Coefficient())
	assert.Equal(t, 2.7182, y.Coefficient())

	// replacing drops coefficients of unlisted variables
	require.NoError(t, model.SetObjective([]float64{5}, []*Variable{y}))
	assert.Equal(t, 0.0, x.Coefficient())
	assert.Equal(t, 5.0, y.Coefficient())
}

func TestForeignVariableRejected(t *testing.T) {
	m1, err := NewModel("one", Maximize)
	require.NoError(t, err)
	m2, err := NewModel("two", Maximize)
	require.NoError(t, err)

	x, _ := m1.AddVariable("x")
	other, _ := m2.AddVariable("other")

	_, err = m1.AddConstraint("c", []*Variable{other}, []float64{1}, LessEqual, 1)
	assert.Error(t, err)

	assert.Error(t, m1.SetObjective([]float64{1}, []*Variable{other}))

	c, err := m1.AddConstraint("c", []*Variable{x}, []float64{1}, LessEqual, 1)
	require.NoError(t, err)
	assert.Error(t, c.SetCoefficient(other, 2))
}

func TestClone(t *testing.T) {
	model := telephoneModel(t)
	clone := model.Clone()

	assert.Equal(t, model.Name(), clone.Name())
	assert.Equal(t, model.Direction(), clone.Direction())
	assert.Equal(t, model.VariableCount(), clone.VariableCount())
	assert.Equal(t, model.ConstraintCount(), clone.ConstraintCount())

	// the clone carries its own variables and constraints
	desk := clone.Variable("desk")
	require.NotNil(t, desk)
	assert.NotSame(t, model.Variable("desk"), desk)

	// mutating the clone leaves the base untouched
	clone.Constraint("machine_1").SetRHS(12)
	assert.Equal(t, 8.0, model.Constraint("machine_1").RHS())
	desk.SetObjectiveCoefficient(1)
	assert.Equal(t, 300.0, model.Variable("desk").Coefficient())
}

func TestProblemSnapshot(t *testing.T) {
	model := telephoneModel(t)
	ge, err := model.AddConstraint("min_desk", []*Variable{model.Variable("desk")}, []float64{1}, GreaterEqual, 0)
	require.NoError(t, err)
	eq, err := model.AddConstraint("ratio", []*Variable{model.Variable("desk"), model.Variable("cell")}, []float64{1, -1}, Equal, 0)
	require.NoError(t, err)

	engine := &stubEngine{answer: &Answer{Status: SolutionOptimal, ColValues: []float64{0, 0}}}
	_, err = model.Solve(engine)
	require.NoError(t, err)

	p := engine.problem
	require.NotNil(t, p)
	assert.True(t, p.Maximize)
	assert.False(t, p.IsMIP())
	assert.Equal(t, []string{"desk", "cell"}, p.ColNames)
	assert.Equal(t, []string{"machine_1", "machine_2", "factory", "min_desk", "ratio"}, p.RowNames)
	assert.Equal(t, []float64{300, 200}, p.ColCosts)
	assert.Equal(t, []float64{0, 0}, p.ColLower)

	// relation mapping onto row bounds
	assert.True(t, math.IsInf(p.RowLower[0], -1))
	assert.Equal(t, 8.0, p.RowUpper[0])
	assert.Equal(t, 0.0, p.RowLower[3])
	assert.True(t, math.IsInf(p.RowUpper[3], 1))
	assert.Equal(t, 0.0, p.RowLower[4])
	assert.Equal(t, 0.0, p.RowUpper[4])

	assert.Equal(t, GreaterEqual, ge.Relation())
	assert.Equal(t, Equal, eq.Relation())

	// coefficients in row-major declaration order, zeros dropped
	assert.Equal(t, []Nonzero{
		{Row: 0, Col: 0, Val: 2}, {Row: 0, Col: 1, Val: 1},
		{Row: 1, Col: 0, Val: 1}, {Row: 1, Col: 1, Val: 2},
		{Row: 2, Col: 0, Val: 3}, {Row: 2, Col: 1, Val: 3},
		{Row: 3, Col: 0, Val: 1},
		{Row: 4, Col: 0, Val: 1}, {Row: 4, Col: 1, Val: -1},
	}, p.Coefficients)
}

func TestSolveErrorsPropagate(t *testing.T) {
	model := telephoneModel(t)

	_, err := model.Solve(&stubEngine{err: ErrInfeasible})
	assert.ErrorIs(t, err, ErrInfeasible)

	_, err = model.Solve(&stubEngine{err: ErrUnbounded})
	assert.ErrorIs(t, err, ErrUnbounded)

	// a failed solve leaves the model unsolved
	_, err = model.LastSolution()
	assert.ErrorIs(t, err, ErrNoSolutionAvailable)
}
