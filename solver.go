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
	"fmt"
	"math"
)

var (
	negInf = math.Inf(-1)
	posInf = math.Inf(1)
)

// Engine is the capability interface every solver adapter implements.
// An engine receives a fully specified problem snapshot and returns
// an answer, or ErrInfeasible / ErrUnbounded when no optimal solution
// exists. Engines are expected to be stateless between calls and
// safe for use with independent problems.
type Engine interface {
	Solve(ctx context.Context, p *Problem) (*Answer, error)
}

// Nonzero is a single entry of the constraint matrix.
type Nonzero struct {
	Row int
	Col int
	Val float64
}

// Problem is the matrix-form snapshot of a model handed to an
// engine:
//
//	optimize:    ColCosts · x
//	subject to:  RowLower ≤ A·x ≤ RowUpper
//	and:         ColLower ≤ x ≤ ColUpper
//
// where A is given by Coefficients. Engines must not retain or
// mutate it.
type Problem struct {
	Name     string
	Maximize bool

	ColCosts []float64
	ColLower []float64
	ColUpper []float64
	ColNames []string
	// Integral marks the variables carrying an integrality
	// restriction.
	Integral []bool

	RowLower []float64
	RowUpper []float64
	RowNames []string

	Coefficients []Nonzero
}

// NumCols returns the number of variables in the problem.
func (p *Problem) NumCols() int {
	return len(p.ColCosts)
}

// NumRows returns the number of constraints in the problem.
func (p *Problem) NumRows() int {
	return len(p.RowLower)
}

// IsMIP reports whether any variable is integral.
func (p *Problem) IsMIP() bool {
	for _, integral := range p.Integral {
		if integral {
			return true
		}
	}
	return false
}

// SolveStatus reports the quality of an engine's answer.
type SolveStatus int

const (
	SolutionOptimal SolveStatus = iota
	SolutionSuboptimal
)

func (s SolveStatus) String() string {
	if s == SolutionOptimal {
		return "optimal"
	}
	return "suboptimal"
}

// BasisStatus is the simplex basis status of a variable or
// constraint at the optimum.
type BasisStatus int

const (
	// BasisLower indicates the variable or constraint row is
	// nonbasic at its lower bound.
	BasisLower BasisStatus = iota
	// BasisBasic indicates the variable or constraint row is basic.
	BasisBasic
	// BasisUpper indicates the variable or constraint row is
	// nonbasic at its upper bound.
	BasisUpper
	// BasisFree indicates a free variable set to zero.
	BasisFree
	// BasisNonbasic indicates a nonbasic entry with no bound
	// information.
	BasisNonbasic
)

func (s BasisStatus) String() string {
	switch s {
	case BasisLower:
		return "at lower bound"
	case BasisBasic:
		return "basic"
	case BasisUpper:
		return "at upper bound"
	case BasisFree:
		return "free"
	case BasisNonbasic:
		return "nonbasic"
	default:
		return "unknown"
	}
}

// Range is a closed numeric interval; either end may be infinite.
type Range struct {
	Lower float64
	Upper float64
}

// Contains reports whether x lies within the range.
func (r Range) Contains(x float64) bool {
	return x >= r.Lower && x <= r.Upper
}

func (r Range) String() string {
	lower, upper := "-inf", "+inf"
	if !math.IsInf(r.Lower, 0) {
		lower = fmt.Sprintf("%.4f", r.Lower)
	}
	if !math.IsInf(r.Upper, 0) {
		upper = fmt.Sprintf("%.4f", r.Upper)
	}
	return fmt.Sprintf("[%s, %s]", lower, upper)
}

// Ranging carries the basis-preserving intervals computed by an
// engine for a continuous optimal solution: RHS has one entry per
// constraint row, Cost one entry per variable, both in declaration
// order.
type Ranging struct {
	RHS  []Range
	Cost []Range
}

// Answer is what an engine returns for a successful solve. Fields
// beyond Status, Objective and ColValues are optional: engines
// without dual, basis or ranging support leave them nil, and
// sensitivity queries on the resulting solution fail with
// ErrSensitivityUnavailable. For problems with integral variables
// all sensitivity fields must be nil.
type Answer struct {
	Status    SolveStatus
	Objective float64

	// ColValues holds the optimal value of every variable.
	ColValues []float64
	// RowValues holds the activity of every constraint row. Optional;
	// slacks are derived from the model when absent.
	RowValues []float64

	// RowDuals holds the dual value (shadow price) of every
	// constraint row.
	RowDuals []float64
	// ColDuals holds the reduced cost of every variable.
	ColDuals []float64

	ColBasis []BasisStatus
	RowBasis []BasisStatus

	Ranging *Ranging
}
