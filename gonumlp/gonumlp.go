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

// Package gonumlp adapts gonum's simplex implementation to the
// golpsa Engine interface.
//
// It is a pure-Go, primal-only engine: answers carry variable values
// and the objective, but no duals, basis or ranging, so sensitivity
// queries on its solutions fail with golpsa.ErrSensitivityUnavailable.
// Integer variables are not supported at all; relax first.
package gonumlp

import (
	"context"
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize/convex/lp"

	"github.com/LeLoMAu/golpsa"
)

// ErrIntegerNotSupported is returned when the problem contains
// integral variables; this engine has no branch-and-bound.
var ErrIntegerNotSupported = errors.New("gonumlp: integer variables not supported, relax the model first")

const defaultTol = 1e-10

// Engine solves continuous problems with gonum's simplex. The zero
// value is usable.
type Engine struct {
	// Tol is the convergence tolerance handed to the simplex;
	// defaultTol when zero.
	Tol float64
}

// New instantiates a gonum-backed engine with default tolerance.
func New() *Engine {
	return &Engine{}
}

// Solve implements golpsa.Engine.
func (e *Engine) Solve(ctx context.Context, p *golpsa.Problem) (*golpsa.Answer, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if p.IsMIP() {
		return nil, ErrIntegerNotSupported
	}

	tol := e.Tol
	if tol == 0 {
		tol = defaultTol
	}

	n := p.NumCols()
	if n == 0 {
		return &golpsa.Answer{Status: golpsa.SolutionOptimal}, nil
	}

	// gonum minimizes; negate the costs for maximization and the
	// optimum back afterwards.
	c := make([]float64, n)
	for j, cost := range p.ColCosts {
		if p.Maximize {
			c[j] = -cost
		} else {
			c[j] = cost
		}
	}

	g, h, a, b := standardize(p)

	var gm, am mat.Matrix
	if len(h) > 0 {
		gm = mat.NewDense(len(h), n, g)
	}
	if len(b) > 0 {
		am = mat.NewDense(len(b), n, a)
	}

	cNew, aNew, bNew := lp.Convert(c, gm, h, am, b)

	opt, xt, err := lp.Simplex(cNew, aNew, bNew, tol, nil)
	switch {
	case errors.Is(err, lp.ErrInfeasible):
		return nil, golpsa.ErrInfeasible
	case errors.Is(err, lp.ErrUnbounded):
		return nil, golpsa.ErrUnbounded
	case err != nil:
		return nil, errors.Wrap(err, "gonumlp: simplex")
	}

	// Convert splits x into positive and negative parts followed by
	// slacks: x[j] = xt[j] - xt[n+j].
	x := make([]float64, n)
	for j := range x {
		x[j] = xt[j] - xt[n+j]
	}

	if p.Maximize {
		opt = -opt
	}

	return &golpsa.Answer{
		Status:    golpsa.SolutionOptimal,
		Objective: opt,
		ColValues: x,
		RowValues: activities(p, x),
	}, nil
}

// standardize rewrites the problem's two-sided rows and variable
// bounds as the inequality (G·x <= h) and equality (A·x = b) blocks
// consumed by lp.Convert. Bound rows are emitted even for the
// default lower bound of zero, since Convert's variable split would
// otherwise lift non-negativity.
func standardize(p *golpsa.Problem) (g []float64, h []float64, a []float64, b []float64) {
	n := p.NumCols()

	dense := make([][]float64, p.NumRows())
	for i := range dense {
		dense[i] = make([]float64, n)
	}
	for _, nz := range p.Coefficients {
		dense[nz.Row][nz.Col] = nz.Val
	}

	addIneq := func(coeffs []float64, rhs float64) {
		g = append(g, coeffs...)
		h = append(h, rhs)
	}

	for i, row := range dense {
		lower, upper := p.RowLower[i], p.RowUpper[i]
		if lower == upper && !math.IsInf(lower, 0) {
			a = append(a, row...)
			b = append(b, lower)
			continue
		}
		if !math.IsInf(upper, 1) {
			addIneq(row, upper)
		}
		if !math.IsInf(lower, -1) {
			addIneq(scale(row, -1), -lower)
		}
	}

	for j := 0; j < n; j++ {
		lower, upper := p.ColLower[j], p.ColUpper[j]
		if lower == upper && !math.IsInf(lower, 0) {
			a = append(a, unit(n, j, 1)...)
			b = append(b, lower)
			continue
		}
		if !math.IsInf(upper, 1) {
			addIneq(unit(n, j, 1), upper)
		}
		if !math.IsInf(lower, -1) {
			addIneq(unit(n, j, -1), -lower)
		}
	}

	return g, h, a, b
}

func scale(row []float64, f float64) []float64 {
	out := make([]float64, len(row))
	for i, v := range row {
		out[i] = f * v
	}
	return out
}

func unit(n, j int, v float64) []float64 {
	row := make([]float64, n)
	row[j] = v
	return row
}

// activities computes A·x for the original rows.
func activities(p *golpsa.Problem, x []float64) []float64 {
	numRow := p.NumRows()
	if numRow == 0 {
		return nil
	}

	rows := mat.NewDense(numRow, p.NumCols(), nil)
	for _, nz := range p.Coefficients {
		rows.Set(nz.Row, nz.Col, nz.Val)
	}

	var out mat.VecDense
	out.MulVec(rows, mat.NewVecDense(len(x), x))

	acts := make([]float64, numRow)
	for i := range acts {
		acts[i] = out.AtVec(i)
	}
	return acts
}
