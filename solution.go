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
	"fmt"
	"io"

	"github.com/pkg/errors"
)

// Solution is an immutable snapshot of an optimal solution, tied to
// the model state at solve time. A mutation of the model or a newer
// solve makes the snapshot stale: every accessor then fails with
// ErrNoSolutionAvailable instead of returning outdated numbers.
type Solution struct {
	model     *Model
	epoch     uint64
	status    SolveStatus
	objective float64
	values    []float64
	reduced   []float64
	duals     []float64
	slacks    []float64
	colBasis  []BasisStatus
	rowBasis  []BasisStatus
	ranging   *Ranging
	integral  bool
}

// guard fails when the solution has been superseded by a model
// mutation.
func (s *Solution) guard() error {
	s.model.mu.RLock()
	defer s.model.mu.RUnlock()

	if s.model.epoch != s.epoch {
		return errors.Wrap(ErrNoSolutionAvailable, "superseded by a later mutation or solve")
	}
	return nil
}

func (s *Solution) ownVariable(v *Variable) error {
	if v.model != s.model {
		return errors.Errorf("golpsa: variable %q belongs to a different model", v.name)
	}
	return nil
}

func (s *Solution) ownConstraint(c *Constraint) error {
	if c.model != s.model {
		return errors.Errorf("golpsa: constraint %q belongs to a different model", c.name)
	}
	return nil
}

// Status reports if the solution is optimal (SolutionOptimal) or
// not (SolutionSuboptimal).
func (s *Solution) Status() SolveStatus {
	return s.status
}

// ObjectiveValue returns the value of the objective function for
// this solution.
func (s *Solution) ObjectiveValue() (float64, error) {
	if err := s.guard(); err != nil {
		return 0, err
	}
	return s.objective, nil
}

// Value returns the computed value of the given variable.
func (s *Solution) Value(v *Variable) (float64, error) {
	if err := s.ownVariable(v); err != nil {
		return 0, err
	}
	if err := s.guard(); err != nil {
		return 0, err
	}
	return s.values[v.index], nil
}

// sensitivityGuard fails dual, reduced-cost and basis queries when
// the model contained integer variables at solve time; their figures
// only exist for the linear relaxation.
func (s *Solution) sensitivityGuard() error {
	if s.integral {
		return errors.Wrap(ErrUnsupportedForIntegerModel, "relax the model and solve again")
	}
	return nil
}

// ReducedCost returns the reduced cost of the given variable: the
// marginal change in objective per unit increase of a variable
// currently at a bound.
func (s *Solution) ReducedCost(v *Variable) (float64, error) {
	if err := s.ownVariable(v); err != nil {
		return 0, err
	}
	if err := s.guard(); err != nil {
		return 0, err
	}
	if err := s.sensitivityGuard(); err != nil {
		return 0, err
	}
	if s.reduced == nil {
		return 0, errors.Wrap(ErrSensitivityUnavailable, "no reduced costs")
	}
	return s.reduced[v.index], nil
}

// VariableBasisStatus returns the basis status of the given variable
// at the optimum.
func (s *Solution) VariableBasisStatus(v *Variable) (BasisStatus, error) {
	if err := s.ownVariable(v); err != nil {
		return 0, err
	}
	if err := s.guard(); err != nil {
		return 0, err
	}
	if err := s.sensitivityGuard(); err != nil {
		return 0, err
	}
	if s.colBasis == nil {
		return 0, errors.Wrap(ErrSensitivityUnavailable, "no basis")
	}
	return s.colBasis[v.index], nil
}

// Dual returns the dual value (shadow price) of the given
// constraint: the marginal change in optimal objective value per
// unit relaxation of the constraint's RHS, at the current basis.
func (s *Solution) Dual(c *Constraint) (float64, error) {
	if err := s.ownConstraint(c); err != nil {
		return 0, err
	}
	if err := s.guard(); err != nil {
		return 0, err
	}
	if err := s.sensitivityGuard(); err != nil {
		return 0, err
	}
	if s.duals == nil {
		return 0, errors.Wrap(ErrSensitivityUnavailable, "no duals")
	}
	return s.duals[c.index], nil
}

// Slack returns the difference between the constraint's RHS and the
// value of its linear expression at the solution.
func (s *Solution) Slack(c *Constraint) (float64, error) {
	if err := s.ownConstraint(c); err != nil {
		return 0, err
	}
	if err := s.guard(); err != nil {
		return 0, err
	}
	return s.slacks[c.index], nil
}

// BasisStatus returns the basis status of the given constraint row
// at the optimum.
func (s *Solution) BasisStatus(c *Constraint) (BasisStatus, error) {
	if err := s.ownConstraint(c); err != nil {
		return 0, err
	}
	if err := s.guard(); err != nil {
		return 0, err
	}
	if err := s.sensitivityGuard(); err != nil {
		return 0, err
	}
	if s.rowBasis == nil {
		return 0, errors.Wrap(ErrSensitivityUnavailable, "no basis")
	}
	return s.rowBasis[c.index], nil
}

// Write prints the solution in a human-readable form: the objective
// value followed by one line per variable, in declaration order.
func (s *Solution) Write(w io.Writer) error {
	if err := s.guard(); err != nil {
		return err
	}

	s.model.mu.RLock()
	defer s.model.mu.RUnlock()

	if _, err := fmt.Fprintf(w, "solution for model %q: %s\nobjective: %.4f\n", s.model.name, s.status, s.objective); err != nil {
		return err
	}
	for _, v := range s.model.vars {
		if _, err := fmt.Fprintf(w, "  %s = %.4f\n", v.name, s.values[v.index]); err != nil {
			return err
		}
	}
	return nil
}
