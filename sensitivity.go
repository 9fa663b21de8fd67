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
)

// ConstraintSensitivity holds the sensitivity figures of one
// constraint: its shadow price, slack, basis status and the interval
// within which its RHS may move without changing the optimal basis.
type ConstraintSensitivity struct {
	Name     string
	Dual     float64
	Slack    float64
	Basis    BasisStatus
	RHSRange Range
}

// VariableSensitivity holds the sensitivity figures of one variable:
// its optimal value, reduced cost and the interval within which its
// objective coefficient may move without changing the optimal basis.
type VariableSensitivity struct {
	Name      string
	Value     float64
	Reduced   float64
	Basis     BasisStatus
	CostRange Range
}

// SensitivityReport is a derived, read-only view over a Solution.
// Entries appear in declaration order.
type SensitivityReport struct {
	Constraints []ConstraintSensitivity
	Variables   []VariableSensitivity
}

// Sensitivity builds the sensitivity report for this solution.
//
// Ranging is only meaningful for continuous optima: if the model
// contained integer or binary variables at solve time, the call
// fails with ErrUnsupportedForIntegerModel and the caller must Relax
// and re-solve first. Engines without dual or ranging support cause
// ErrSensitivityUnavailable.
func (s *Solution) Sensitivity() (*SensitivityReport, error) {
	if err := s.guard(); err != nil {
		return nil, err
	}
	if err := s.sensitivityGuard(); err != nil {
		return nil, err
	}
	if s.duals == nil || s.reduced == nil || s.ranging == nil {
		return nil, ErrSensitivityUnavailable
	}

	s.model.mu.RLock()
	defer s.model.mu.RUnlock()

	report := &SensitivityReport{
		Constraints: make([]ConstraintSensitivity, len(s.model.cons)),
		Variables:   make([]VariableSensitivity, len(s.model.vars)),
	}

	for i, c := range s.model.cons {
		cs := ConstraintSensitivity{
			Name:     c.name,
			Dual:     s.duals[i],
			Slack:    s.slacks[i],
			RHSRange: s.ranging.RHS[i],
		}
		if s.rowBasis != nil {
			cs.Basis = s.rowBasis[i]
		}
		report.Constraints[i] = cs
	}

	for i, v := range s.model.vars {
		vs := VariableSensitivity{
			Name:      v.name,
			Value:     s.values[i],
			Reduced:   s.reduced[i],
			CostRange: s.ranging.Cost[i],
		}
		if s.colBasis != nil {
			vs.Basis = s.colBasis[i]
		}
		report.Variables[i] = vs
	}

	return report, nil
}

// Write prints the report as two tables, constraints first, in
// declaration order.
func (r *SensitivityReport) Write(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "CONSTRAINTS\n%-12s %12s %12s   %-16s %s\n", "NAME", "DUAL", "SLACK", "STATUS", "RHS RANGE"); err != nil {
		return err
	}
	for _, c := range r.Constraints {
		if _, err := fmt.Fprintf(w, "%-12s %12.4f %12.4f   %-16s %s\n", c.Name, c.Dual, c.Slack, c.Basis, c.RHSRange); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintf(w, "VARIABLES\n%-12s %12s %12s   %-16s %s\n", "NAME", "VALUE", "REDUCED COST", "STATUS", "COST RANGE"); err != nil {
		return err
	}
	for _, v := range r.Variables {
		if _, err := fmt.Fprintf(w, "%-12s %12.4f %12.4f   %-16s %s\n", v.Name, v.Value, v.Reduced, v.Basis, v.CostRange); err != nil {
			return err
		}
	}
	return nil
}
