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

/*
Package golpsa is a library for modelling linear programming problems
and inspecting the sensitivity of their optimal solutions: dual values
(shadow prices), slacks, reduced costs, basis statuses and the ranges
over which right-hand sides and objective coefficients may move
without changing the optimal basis.

The numerical work is delegated to an Engine; the engines shipped with
this module live in the highs (full sensitivity support, cgo) and
gonumlp (pure Go, primal only) subpackages.

As an example, the telephone production planning problem:

	Maximize:
	  300 desk + 200 cell
	Subject to:
	  2 desk +   cell <=  8   (machine_1)
	    desk + 2 cell <=  8   (machine_2)
	  3 desk + 3 cell <= 24   (factory)
	  desk, cell >= 0

can be expressed and analysed like this:

	model, _ := golpsa.NewModel("telephone_production", golpsa.Maximize)
	desk, _ := model.AddVariable("desk")
	cell, _ := model.AddVariable("cell")

	model.AddConstraint("machine_1", []*golpsa.Variable{desk, cell}, []float64{2, 1}, golpsa.LessEqual, 8)
	model.AddConstraint("machine_2", []*golpsa.Variable{desk, cell}, []float64{1, 2}, golpsa.LessEqual, 8)
	model.AddConstraint("factory", []*golpsa.Variable{desk, cell}, []float64{3, 3}, golpsa.LessEqual, 24)
	model.SetObjective([]float64{300, 200}, []*golpsa.Variable{desk, cell})

	sol, _ := model.Solve(highs.New()) // you should check for errors

	report, _ := sol.Sensitivity()
	report.Write(os.Stdout)

A model with integer variables must be relaxed with Relax before any
ranging query; the solve itself handles integrality fine.
*/
package golpsa

import (
	"context"
	"fmt"
	"math"
	"sync"

	"github.com/pkg/errors"
)

// Direction is the optimization sense of a model's objective.
type Direction int

const (
	Minimize Direction = iota
	Maximize
)

func (d Direction) String() string {
	if d == Maximize {
		return "maximize"
	}
	return "minimize"
}

// Model holds an ordered set of variables and constraints and one
// objective. It is not safe for concurrent mutation; independent
// scenarios must operate on clones.
type Model struct {
	mu     sync.RWMutex
	name   string
	dir    Direction
	vars   []*Variable
	cons   []*Constraint
	varIdx map[string]*Variable
	conIdx map[string]*Constraint
	epoch  uint64
	last   *Solution
	logger Logger
}

// NewModel instantiates a new linear programming model, providing a
// name (purely informational) and an optimization direction (either
// Minimize or Maximize).
func NewModel(name string, dir Direction, opts ...Option) (*Model, error) {
	model := &Model{
		name:   name,
		dir:    dir,
		varIdx: make(map[string]*Variable),
		conIdx: make(map[string]*Constraint),
		logger: noopLogger{},
	}

	for _, opt := range opts {
		if err := opt(model); err != nil {
			return nil, errors.Wrap(err, "applying model option")
		}
	}

	return model, nil
}

// Name returns the name provided upon instantiation of a model.
func (model *Model) Name() string {
	model.mu.RLock()
	defer model.mu.RUnlock()

	return model.name
}

// Direction returns the model's current optimization direction.
func (model *Model) Direction() Direction {
	model.mu.RLock()
	defer model.mu.RUnlock()

	return model.dir
}

// SetDirection changes the direction of the model's optimization.
// The last solution, if any, becomes stale.
func (model *Model) SetDirection(dir Direction) {
	model.mu.Lock()
	defer model.mu.Unlock()

	model.dir = dir
	model.invalidateLocked()
}

// invalidateLocked marks the current solution, if any, as superseded.
// Must be called with the model lock held by every mutating operation.
func (model *Model) invalidateLocked() {
	model.epoch++
	model.last = nil
}

/* Variable-related functions */

// VariableCount returns the number of variables in the model.
func (model *Model) VariableCount() int {
	model.mu.RLock()
	defer model.mu.RUnlock()

	return len(model.vars)
}

// Variables returns a new slice with the model's variables in
// declaration order. Changes to the slice will not be reflected in
// the model.
func (model *Model) Variables() []*Variable {
	model.mu.RLock()
	defer model.mu.RUnlock()

	vars := make([]*Variable, len(model.vars))
	copy(vars, model.vars)
	return vars
}

// Variable returns the variable with the given name, or nil if no
// such variable was added to this model.
func (model *Model) Variable(name string) *Variable {
	model.mu.RLock()
	defer model.mu.RUnlock()

	return model.varIdx[name]
}

// AddVariable adds a continuous variable to the model and returns a
// reference to it. A freshly instantiated variable has bounds
// [0, +inf) and an objective coefficient of 0.
//
// A variable is bound to its model. Attempting to use a variable
// created in one model when querying a different model's solutions
// results in an error.
//
// Empty names will automatically be replaced by a unique name.
func (model *Model) AddVariable(name string) (*Variable, error) {
	return model.AddDefinedVariable(name, ContinuousVariable, 0, 0, math.Inf(1))
}

// AddIntegerVariable is a convenience function for adding a single
// named non-negative integer variable to the model.
func (model *Model) AddIntegerVariable(name string) (*Variable, error) {
	return model.AddDefinedVariable(name, IntegerVariable, 0, 0, math.Inf(1))
}

// AddBinaryVariable is a convenience function for adding a single
// named binary variable to the model.
func (model *Model) AddBinaryVariable(name string) (*Variable, error) {
	return model.AddDefinedVariable(name, BinaryVariable, 0, 0, 1)
}

// AddDefinedVariable adds a variable to the model with its attributes
// passed as arguments. If varType is BinaryVariable, the bounds are
// forced to [0, 1]. A finite lower bound above a finite upper bound
// is rejected immediately with ErrInvalidBounds.
// Empty names will automatically be replaced by a unique name.
func (model *Model) AddDefinedVariable(name string, varType VariableType, coefficient, lowerBound, upperBound float64) (*Variable, error) {
	if varType == BinaryVariable {
		lowerBound, upperBound = 0, 1
	}
	if err := checkBounds(lowerBound, upperBound); err != nil {
		return nil, err
	}

	model.mu.Lock()
	defer model.mu.Unlock()

	if name == "" {
		name = fmt.Sprintf("V%d", len(model.vars))
	}
	if _, ok := model.varIdx[name]; ok {
		return nil, errors.Errorf("golpsa: duplicate variable name %q", name)
	}

	v := &Variable{
		model:   model,
		index:   len(model.vars),
		name:    name,
		vtype:   varType,
		objCoef: coefficient,
		lower:   lowerBound,
		upper:   upperBound,
	}
	model.vars = append(model.vars, v)
	model.varIdx[name] = v
	model.invalidateLocked()

	return v, nil
}

func checkBounds(lower, upper float64) error {
	if !math.IsInf(lower, 0) && !math.IsInf(upper, 0) && lower > upper {
		return errors.Wrapf(ErrInvalidBounds, "%g > %g", lower, upper)
	}
	return nil
}

// SetObjective defines the objective function for the model as a
// slice of coefficients and a slice of its respective variables.
// E.g.: an objective function of the form 2x+3y is passed as:
//
//	model.SetObjective([]float64{2, 3}, []*Variable{x, y})
//
// Any previous objective is replaced entirely: variables not listed
// get a coefficient of 0. The last solution, if any, becomes stale.
func (model *Model) SetObjective(coefs []float64, vars []*Variable) error {
	if len(vars) != len(coefs) {
		return errors.Errorf("golpsa: inconsistent number of variables and coefficients: %d != %d", len(vars), len(coefs))
	}

	model.mu.Lock()
	defer model.mu.Unlock()

	for _, v := range vars {
		if v.model != model {
			return errors.Errorf("golpsa: variable %q belongs to a different model", v.name)
		}
	}

	for _, v := range model.vars {
		v.objCoef = 0
	}
	for i, v := range vars {
		v.objCoef = coefs[i]
	}
	model.invalidateLocked()

	return nil
}

/* Constraint-related functions */

// ConstraintCount returns the number of individual constraints in
// the model.
func (model *Model) ConstraintCount() int {
	model.mu.RLock()
	defer model.mu.RUnlock()

	return len(model.cons)
}

// Constraints returns a new slice with the model's constraints in
// declaration order.
func (model *Model) Constraints() []*Constraint {
	model.mu.RLock()
	defer model.mu.RUnlock()

	cons := make([]*Constraint, len(model.cons))
	copy(cons, model.cons)
	return cons
}

// Constraint returns the constraint with the given name, or nil if
// no such constraint was added to this model.
func (model *Model) Constraint(name string) *Constraint {
	model.mu.RLock()
	defer model.mu.RUnlock()

	return model.conIdx[name]
}

// AddConstraint adds a named constraint to the model as a slice of
// variables, a slice of their respective coefficients, a relational
// operator and a right-hand-side value. Empty names will
// automatically be replaced by a unique name.
func (model *Model) AddConstraint(name string, vars []*Variable, coefs []float64, rel Relation, rhs float64) (*Constraint, error) {
	if len(vars) != len(coefs) {
		return nil, errors.Errorf("golpsa: inconsistent number of variables and coefficients: %d != %d", len(vars), len(coefs))
	}

	model.mu.Lock()
	defer model.mu.Unlock()

	for _, v := range vars {
		if v.model != model {
			return nil, errors.Errorf("golpsa: variable %q belongs to a different model", v.name)
		}
	}

	if name == "" {
		name = fmt.Sprintf("C%d", len(model.cons))
	}
	if _, ok := model.conIdx[name]; ok {
		return nil, errors.Errorf("golpsa: duplicate constraint name %q", name)
	}

	c := &Constraint{
		model: model,
		index: len(model.cons),
		name:  name,
		vars:  append([]*Variable(nil), vars...),
		coefs: append([]float64(nil), coefs...),
		rel:   rel,
		rhs:   rhs,
	}
	model.cons = append(model.cons, c)
	model.conIdx[name] = c
	model.invalidateLocked()

	return c, nil
}

/* Cloning and solving */

// Clone returns a deep copy of the model. The copy starts out
// unsolved; its variables and constraints keep their names and
// declaration order and can be looked up with Variable and
// Constraint.
func (model *Model) Clone() *Model {
	model.mu.RLock()
	defer model.mu.RUnlock()

	clone := &Model{
		name:   model.name,
		dir:    model.dir,
		varIdx: make(map[string]*Variable, len(model.vars)),
		conIdx: make(map[string]*Constraint, len(model.cons)),
		logger: model.logger,
	}

	clone.vars = make([]*Variable, len(model.vars))
	for i, v := range model.vars {
		nv := &Variable{
			model:   clone,
			index:   v.index,
			name:    v.name,
			vtype:   v.vtype,
			objCoef: v.objCoef,
			lower:   v.lower,
			upper:   v.upper,
		}
		clone.vars[i] = nv
		clone.varIdx[nv.name] = nv
	}

	clone.cons = make([]*Constraint, len(model.cons))
	for i, c := range model.cons {
		nc := &Constraint{
			model: clone,
			index: c.index,
			name:  c.name,
			vars:  make([]*Variable, len(c.vars)),
			coefs: append([]float64(nil), c.coefs...),
			rel:   c.rel,
			rhs:   c.rhs,
		}
		for j, v := range c.vars {
			nc.vars[j] = clone.vars[v.index]
		}
		clone.cons[i] = nc
		clone.conIdx[nc.name] = nc
	}

	return clone
}

// hasIntegerLocked reports whether any variable carries an
// integrality restriction.
func (model *Model) hasIntegerLocked() bool {
	for _, v := range model.vars {
		if v.vtype != ContinuousVariable {
			return true
		}
	}
	return false
}

// problemLocked snapshots the model into the matrix form consumed by
// engines.
func (model *Model) problemLocked() *Problem {
	p := &Problem{
		Name:     model.name,
		Maximize: model.dir == Maximize,
		ColCosts: make([]float64, len(model.vars)),
		ColLower: make([]float64, len(model.vars)),
		ColUpper: make([]float64, len(model.vars)),
		ColNames: make([]string, len(model.vars)),
		Integral: make([]bool, len(model.vars)),
		RowLower: make([]float64, len(model.cons)),
		RowUpper: make([]float64, len(model.cons)),
		RowNames: make([]string, len(model.cons)),
	}

	for i, v := range model.vars {
		p.ColCosts[i] = v.objCoef
		p.ColLower[i] = v.lower
		p.ColUpper[i] = v.upper
		p.ColNames[i] = v.name
		p.Integral[i] = v.vtype != ContinuousVariable
	}

	for i, c := range model.cons {
		p.RowLower[i], p.RowUpper[i] = c.rowBounds()
		p.RowNames[i] = c.name
		for j, v := range c.vars {
			if c.coefs[j] == 0 {
				continue
			}
			p.Coefficients = append(p.Coefficients, Nonzero{Row: i, Col: v.index, Val: c.coefs[j]})
		}
	}

	return p
}

// checkAnswerLocked validates the dimensions of an engine's answer
// against the model before it is trusted.
func (model *Model) checkAnswerLocked(ans *Answer) error {
	nVars, nCons := len(model.vars), len(model.cons)

	if len(ans.ColValues) != nVars {
		return errors.Errorf("golpsa: engine returned %d variable values for %d variables", len(ans.ColValues), nVars)
	}

	perCol := map[string]int{"reduced costs": len(ans.ColDuals), "variable basis entries": len(ans.ColBasis)}
	for what, n := range perCol {
		if n != 0 && n != nVars {
			return errors.Errorf("golpsa: engine returned %d %s for %d variables", n, what, nVars)
		}
	}
	perRow := map[string]int{"row activities": len(ans.RowValues), "duals": len(ans.RowDuals), "row basis entries": len(ans.RowBasis)}
	for what, n := range perRow {
		if n != 0 && n != nCons {
			return errors.Errorf("golpsa: engine returned %d %s for %d constraints", n, what, nCons)
		}
	}
	if ans.Ranging != nil && (len(ans.Ranging.RHS) != nCons || len(ans.Ranging.Cost) != nVars) {
		return errors.New("golpsa: engine returned ranging data of the wrong shape")
	}

	return nil
}

// Solve attempts to find an optimal solution to the model using the
// given engine. Information about the solution can be queried from
// the returned Solution value; it stays readable until the model is
// mutated or solved again.
func (model *Model) Solve(engine Engine) (*Solution, error) {
	return model.SolveWithContext(context.Background(), engine)
}

// SolveWithContext wraps Solve with a context. Cancellation support
// depends on the engine; the engines shipped with this module honour
// at least the context deadline.
func (model *Model) SolveWithContext(ctx context.Context, engine Engine) (*Solution, error) {
	model.mu.Lock()
	defer model.mu.Unlock()

	prob := model.problemLocked()
	model.logger.Print("solving model ", model.name)

	ans, err := engine.Solve(ctx, prob)
	if err != nil {
		return nil, err
	}
	if err := model.checkAnswerLocked(ans); err != nil {
		return nil, err
	}

	// a successful solve supersedes any earlier snapshot, even
	// without an intervening mutation
	model.epoch++

	sol := &Solution{
		model:     model,
		epoch:     model.epoch,
		status:    ans.Status,
		objective: ans.Objective,
		values:    append([]float64(nil), ans.ColValues...),
		reduced:   append([]float64(nil), ans.ColDuals...),
		duals:     append([]float64(nil), ans.RowDuals...),
		colBasis:  append([]BasisStatus(nil), ans.ColBasis...),
		rowBasis:  append([]BasisStatus(nil), ans.RowBasis...),
		ranging:   ans.Ranging,
		integral:  model.hasIntegerLocked(),
	}

	sol.slacks = make([]float64, len(model.cons))
	for i, c := range model.cons {
		activity := 0.0
		if i < len(ans.RowValues) {
			activity = ans.RowValues[i]
		} else {
			for j, v := range c.vars {
				activity += c.coefs[j] * sol.values[v.index]
			}
		}
		sol.slacks[i] = c.rhs - activity
	}

	model.last = sol

	return sol, nil
}

// LastSolution returns the solution of the most recent solve, or
// ErrNoSolutionAvailable if the model was never solved or was
// mutated since.
func (model *Model) LastSolution() (*Solution, error) {
	model.mu.RLock()
	defer model.mu.RUnlock()

	if model.last == nil {
		return nil, ErrNoSolutionAvailable
	}
	return model.last, nil
}
