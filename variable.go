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

// Variable is a single decision variable, bound to the model that
// created it.
type Variable struct {
	model   *Model
	index   int
	name    string
	vtype   VariableType
	objCoef float64
	lower   float64
	upper   float64
}

// VariableType is the domain of a decision variable.
type VariableType int

const (
	ContinuousVariable VariableType = iota
	IntegerVariable
	BinaryVariable
)

func (t VariableType) String() string {
	switch t {
	case ContinuousVariable:
		return "continuous"
	case IntegerVariable:
		return "integer"
	case BinaryVariable:
		return "binary"
	default:
		return "unknown"
	}
}

/* Variable-related functions (model variables, as opposed to Go variables) */

// Name returns the variable's name.
func (v *Variable) Name() string {
	return v.name
}

// Type returns the variable's domain.
func (v *Variable) Type() VariableType {
	v.model.mu.RLock()
	defer v.model.mu.RUnlock()

	return v.vtype
}

// SetType changes the variable's domain. The model's last solution,
// if any, becomes stale.
func (v *Variable) SetType(vartype VariableType) {
	v.model.mu.Lock()
	defer v.model.mu.Unlock()

	v.vtype = vartype
	if vartype == BinaryVariable {
		v.lower, v.upper = 0, 1
	}
	v.model.invalidateLocked()
}

// Bounds returns the variable's lower and upper bounds.
func (v *Variable) Bounds() (lower, upper float64) {
	v.model.mu.RLock()
	defer v.model.mu.RUnlock()

	return v.lower, v.upper
}

// SetBounds sets the boundaries for the given variable. To leave a
// side unbounded, pass math.Inf(-1) or math.Inf(1). A finite lower
// bound above a finite upper bound is rejected immediately with
// ErrInvalidBounds. The model's last solution, if any, becomes stale.
func (v *Variable) SetBounds(lower, upper float64) error {
	if err := checkBounds(lower, upper); err != nil {
		return err
	}

	v.model.mu.Lock()
	defer v.model.mu.Unlock()

	v.lower = lower
	v.upper = upper
	v.model.invalidateLocked()

	return nil
}

// Coefficient returns the variable's current objective coefficient.
func (v *Variable) Coefficient() float64 {
	v.model.mu.RLock()
	defer v.model.mu.RUnlock()

	return v.objCoef
}

// SetObjectiveCoefficient changes the variable's objective
// coefficient, leaving all other coefficients untouched. The model's
// last solution, if any, becomes stale.
func (v *Variable) SetObjectiveCoefficient(coef float64) {
	v.model.mu.Lock()
	defer v.model.mu.Unlock()

	v.objCoef = coef
	v.model.invalidateLocked()
}
