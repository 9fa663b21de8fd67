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

// Package highs adapts the HiGHS optimizer to the golpsa Engine
// interface. It is the full-contract engine: besides primal values
// it reports dual values, reduced costs, basis statuses and, for
// continuous problems, RHS and objective-coefficient ranging.
//
// The package links against the system HiGHS installation.
package highs

// #cgo CFLAGS: -I/usr/include/highs -I/usr/local/include/highs
// #cgo LDFLAGS: -lhighs
// #include <stdlib.h>
// #include <interfaces/highs_c_api.h>
import "C"

import (
	"context"
	"math"
	"sort"
	"time"
	"unsafe"

	"github.com/pkg/errors"

	"github.com/LeLoMAu/golpsa"
)

// Engine solves problems by handing them to HiGHS. A single Engine
// value may be reused across solves; every call builds a fresh
// underlying HiGHS instance, so concurrent solves of independent
// problems are fine.
type Engine struct {
	logger    golpsa.Logger
	timeLimit float64
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger redirects the engine's diagnostic output.
func WithLogger(logger golpsa.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithTimeLimit caps every solve at the given duration, independent
// of any context deadline.
func WithTimeLimit(d time.Duration) Option {
	return func(e *Engine) {
		e.timeLimit = d.Seconds()
	}
}

// New instantiates a HiGHS-backed engine.
func New(opts ...Option) *Engine {
	e := &Engine{logger: noopLogger{}}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

type noopLogger struct{}

func (noopLogger) Print(v ...interface{}) {}

// Solve implements golpsa.Engine. Infeasible and unbounded outcomes
// are reported as golpsa.ErrInfeasible and golpsa.ErrUnbounded; a
// context deadline is mapped onto the HiGHS time limit.
func (e *Engine) Solve(ctx context.Context, p *golpsa.Problem) (*golpsa.Answer, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	h := C.Highs_create()
	defer C.Highs_destroy(h)

	if err := setBoolOption(h, "output_flag", false); err != nil {
		return nil, err
	}

	limit := e.timeLimit
	if deadline, ok := ctx.Deadline(); ok {
		ctxLimit := time.Until(deadline).Seconds()
		if limit == 0 || ctxLimit < limit {
			limit = ctxLimit
		}
	}
	if limit > 0 {
		if err := setDoubleOption(h, "time_limit", limit); err != nil {
			return nil, err
		}
	}

	if err := passModel(h, p); err != nil {
		return nil, err
	}

	e.logger.Print("highs: solving ", p.Name)
	if C.Highs_run(h) == C.kHighsStatusError {
		return nil, errors.Errorf("highs: solver failure on model %q", p.Name)
	}

	switch status := C.Highs_getModelStatus(h); status {
	case C.kHighsModelStatusOptimal:
		// fall through to extraction
	case C.kHighsModelStatusInfeasible:
		return nil, golpsa.ErrInfeasible
	case C.kHighsModelStatusUnbounded:
		return nil, golpsa.ErrUnbounded
	case C.kHighsModelStatusUnboundedOrInfeasible:
		return nil, errors.Wrap(golpsa.ErrInfeasible, "possibly unbounded")
	case C.kHighsModelStatusTimeLimit:
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return nil, errors.Errorf("highs: time limit reached on model %q", p.Name)
	default:
		return nil, errors.Errorf("highs: unexpected model status %d", int(status))
	}

	return extractAnswer(h, p)
}

func cstr(s string) *C.char {
	return C.CString(s)
}

func setBoolOption(h unsafe.Pointer, name string, value bool) error {
	cName := cstr(name)
	defer C.free(unsafe.Pointer(cName))

	v := C.HighsInt(0)
	if value {
		v = 1
	}
	if C.Highs_setBoolOptionValue(h, cName, v) == C.kHighsStatusError {
		return errors.Errorf("highs: setting option %q", name)
	}
	return nil
}

func setDoubleOption(h unsafe.Pointer, name string, value float64) error {
	cName := cstr(name)
	defer C.free(unsafe.Pointer(cName))

	if C.Highs_setDoubleOptionValue(h, cName, C.double(value)) == C.kHighsStatusError {
		return errors.Errorf("highs: setting option %q", name)
	}
	return nil
}

// passModel loads the problem snapshot into the HiGHS instance in
// row-wise sparse form.
func passModel(h unsafe.Pointer, p *golpsa.Problem) error {
	numCol := p.NumCols()
	numRow := p.NumRows()
	inf := float64(C.Highs_getInfinity(h))

	colCosts := make([]C.double, numCol)
	colLower := make([]C.double, numCol)
	colUpper := make([]C.double, numCol)
	integrality := make([]C.HighsInt, numCol)
	for i := 0; i < numCol; i++ {
		colCosts[i] = C.double(p.ColCosts[i])
		colLower[i] = C.double(clamp(p.ColLower[i], inf))
		colUpper[i] = C.double(clamp(p.ColUpper[i], inf))
		if p.Integral[i] {
			integrality[i] = C.kHighsVarTypeInteger
		} else {
			integrality[i] = C.kHighsVarTypeContinuous
		}
	}

	rowLower := make([]C.double, numRow)
	rowUpper := make([]C.double, numRow)
	for i := 0; i < numRow; i++ {
		rowLower[i] = C.double(clamp(p.RowLower[i], inf))
		rowUpper[i] = C.double(clamp(p.RowUpper[i], inf))
	}

	aStart, aIndex, aValue := rowwise(p.Coefficients, numRow)

	sense := C.HighsInt(C.kHighsObjSenseMinimize)
	if p.Maximize {
		sense = C.kHighsObjSenseMaximize
	}

	var status C.HighsInt
	if p.IsMIP() {
		status = C.Highs_passMip(h,
			C.HighsInt(numCol), C.HighsInt(numRow), C.HighsInt(len(aValue)),
			C.kHighsMatrixFormatRowwise, sense, C.double(0),
			dptr(colCosts), dptr(colLower), dptr(colUpper),
			dptr(rowLower), dptr(rowUpper),
			iptr(aStart), iptr(aIndex), dptr(aValue),
			iptr(integrality))
	} else {
		status = C.Highs_passLp(h,
			C.HighsInt(numCol), C.HighsInt(numRow), C.HighsInt(len(aValue)),
			C.kHighsMatrixFormatRowwise, sense, C.double(0),
			dptr(colCosts), dptr(colLower), dptr(colUpper),
			dptr(rowLower), dptr(rowUpper),
			iptr(aStart), iptr(aIndex), dptr(aValue))
	}
	if status == C.kHighsStatusError {
		return errors.Errorf("highs: passing model %q", p.Name)
	}
	return nil
}

// clamp maps IEEE infinities onto the engine's infinity value.
func clamp(x, inf float64) float64 {
	switch {
	case math.IsInf(x, 1) || x > inf:
		return inf
	case math.IsInf(x, -1) || x < -inf:
		return -inf
	default:
		return x
	}
}

// rowwise converts the coefficient list to CSR with one start entry
// per row, empty rows included. Duplicate entries keep the last
// value.
func rowwise(nz []golpsa.Nonzero, numRow int) (start, index []C.HighsInt, value []C.double) {
	sorted := make([]golpsa.Nonzero, len(nz))
	copy(sorted, nz)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Row != sorted[j].Row {
			return sorted[i].Row < sorted[j].Row
		}
		return sorted[i].Col < sorted[j].Col
	})

	filtered := sorted[:0]
	for _, n := range sorted {
		if len(filtered) > 0 && filtered[len(filtered)-1].Row == n.Row && filtered[len(filtered)-1].Col == n.Col {
			filtered[len(filtered)-1].Val = n.Val
			continue
		}
		filtered = append(filtered, n)
	}

	start = make([]C.HighsInt, numRow)
	index = make([]C.HighsInt, len(filtered))
	value = make([]C.double, len(filtered))

	pos := 0
	for row := 0; row < numRow; row++ {
		start[row] = C.HighsInt(pos)
		for pos < len(filtered) && filtered[pos].Row == row {
			index[pos] = C.HighsInt(filtered[pos].Col)
			value[pos] = C.double(filtered[pos].Val)
			pos++
		}
	}

	return start, index, value
}

func extractAnswer(h unsafe.Pointer, p *golpsa.Problem) (*golpsa.Answer, error) {
	numCol := p.NumCols()
	numRow := p.NumRows()

	ans := &golpsa.Answer{
		Status:    golpsa.SolutionOptimal,
		Objective: float64(C.Highs_getObjectiveValue(h)),
	}
	if numCol == 0 {
		return ans, nil
	}

	colValue := make([]C.double, numCol)
	colDual := make([]C.double, numCol)
	rowValue := make([]C.double, max(numRow, 1))
	rowDual := make([]C.double, max(numRow, 1))
	if C.Highs_getSolution(h, dptr(colValue), dptr(colDual), dptr(rowValue), dptr(rowDual)) == C.kHighsStatusError {
		return nil, errors.Errorf("highs: reading solution of model %q", p.Name)
	}

	ans.ColValues = toFloats(colValue[:numCol])
	ans.RowValues = toFloats(rowValue[:numRow])

	// Duals, basis and ranging only exist for the continuous case.
	if p.IsMIP() {
		return ans, nil
	}

	ans.ColDuals = toFloats(colDual[:numCol])
	ans.RowDuals = toFloats(rowDual[:numRow])

	colBasis := make([]C.HighsInt, numCol)
	rowBasis := make([]C.HighsInt, max(numRow, 1))
	if C.Highs_getBasis(h, iptr(colBasis), iptr(rowBasis)) == C.kHighsStatusError {
		return nil, errors.Errorf("highs: reading basis of model %q", p.Name)
	}
	ans.ColBasis = toBases(colBasis[:numCol])
	ans.RowBasis = toBases(rowBasis[:numRow])

	ranging, err := extractRanging(h, numCol, numRow)
	if err != nil {
		return nil, err
	}
	ans.Ranging = ranging

	return ans, nil
}

// extractRanging queries Highs_getRanging and keeps the two slices
// this library reports: per-row bound (RHS) ranges and per-column
// cost ranges.
func extractRanging(h unsafe.Pointer, numCol, numRow int) (*golpsa.Ranging, error) {
	costUpValue := make([]C.double, numCol)
	costUpObjective := make([]C.double, numCol)
	costUpIn := make([]C.HighsInt, numCol)
	costUpOut := make([]C.HighsInt, numCol)
	costDnValue := make([]C.double, numCol)
	costDnObjective := make([]C.double, numCol)
	costDnIn := make([]C.HighsInt, numCol)
	costDnOut := make([]C.HighsInt, numCol)

	boundUpValue := make([]C.double, numCol)
	boundUpObjective := make([]C.double, numCol)
	boundUpIn := make([]C.HighsInt, numCol)
	boundUpOut := make([]C.HighsInt, numCol)
	boundDnValue := make([]C.double, numCol)
	boundDnObjective := make([]C.double, numCol)
	boundDnIn := make([]C.HighsInt, numCol)
	boundDnOut := make([]C.HighsInt, numCol)

	n := max(numRow, 1)
	rowUpValue := make([]C.double, n)
	rowUpObjective := make([]C.double, n)
	rowUpIn := make([]C.HighsInt, n)
	rowUpOut := make([]C.HighsInt, n)
	rowDnValue := make([]C.double, n)
	rowDnObjective := make([]C.double, n)
	rowDnIn := make([]C.HighsInt, n)
	rowDnOut := make([]C.HighsInt, n)

	status := C.Highs_getRanging(h,
		dptr(costUpValue), dptr(costUpObjective), iptr(costUpIn), iptr(costUpOut),
		dptr(costDnValue), dptr(costDnObjective), iptr(costDnIn), iptr(costDnOut),
		dptr(boundUpValue), dptr(boundUpObjective), iptr(boundUpIn), iptr(boundUpOut),
		dptr(boundDnValue), dptr(boundDnObjective), iptr(boundDnIn), iptr(boundDnOut),
		dptr(rowUpValue), dptr(rowUpObjective), iptr(rowUpIn), iptr(rowUpOut),
		dptr(rowDnValue), dptr(rowDnObjective), iptr(rowDnIn), iptr(rowDnOut))
	if status == C.kHighsStatusError {
		return nil, errors.New("highs: ranging query failed")
	}

	inf := float64(C.Highs_getInfinity(h))
	ranging := &golpsa.Ranging{
		RHS:  make([]golpsa.Range, numRow),
		Cost: make([]golpsa.Range, numCol),
	}
	for i := 0; i < numRow; i++ {
		ranging.RHS[i] = golpsa.Range{
			Lower: unclamp(float64(rowDnValue[i]), inf),
			Upper: unclamp(float64(rowUpValue[i]), inf),
		}
	}
	for j := 0; j < numCol; j++ {
		ranging.Cost[j] = golpsa.Range{
			Lower: unclamp(float64(costDnValue[j]), inf),
			Upper: unclamp(float64(costUpValue[j]), inf),
		}
	}
	return ranging, nil
}

// unclamp maps the engine's infinity value back to IEEE infinities.
func unclamp(x, inf float64) float64 {
	switch {
	case x >= inf:
		return math.Inf(1)
	case x <= -inf:
		return math.Inf(-1)
	default:
		return x
	}
}

func toFloats(src []C.double) []float64 {
	dst := make([]float64, len(src))
	for i, v := range src {
		dst[i] = float64(v)
	}
	return dst
}

func toBases(src []C.HighsInt) []golpsa.BasisStatus {
	dst := make([]golpsa.BasisStatus, len(src))
	for i, v := range src {
		switch v {
		case C.kHighsBasisStatusLower:
			dst[i] = golpsa.BasisLower
		case C.kHighsBasisStatusBasic:
			dst[i] = golpsa.BasisBasic
		case C.kHighsBasisStatusUpper:
			dst[i] = golpsa.BasisUpper
		case C.kHighsBasisStatusZero:
			dst[i] = golpsa.BasisFree
		default:
			dst[i] = golpsa.BasisNonbasic
		}
	}
	return dst
}

func dptr(s []C.double) *C.double {
	if len(s) == 0 {
		return nil
	}
	return &s[0]
}

func iptr(s []C.HighsInt) *C.HighsInt {
	if len(s) == 0 {
		return nil
	}
	return &s[0]
}
