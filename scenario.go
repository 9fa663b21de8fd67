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

	"github.com/pkg/errors"
)

// Transform is a pure model modification applied to a scenario's
// private clone. Transforms address variables and constraints by
// name, since the clone carries its own references.
type Transform func(*Model) error

// RunScenario clones the base model, applies the given transforms in
// order and solves the result with the engine. The base model and
// any solution it holds stay untouched and valid. The scenario's
// model is returned alongside its solution so callers can look up
// variables and constraints by name.
//
// A failed solve is terminal for the scenario: the error is returned
// verbatim, with no retry or alternate formulation.
func RunScenario(ctx context.Context, base *Model, engine Engine, transforms ...Transform) (*Model, *Solution, error) {
	scenario := base.Clone()

	for _, transform := range transforms {
		if err := transform(scenario); err != nil {
			return nil, nil, errors.Wrap(err, "applying scenario transform")
		}
	}

	sol, err := scenario.SolveWithContext(ctx, engine)
	if err != nil {
		return nil, nil, err
	}

	return scenario, sol, nil
}

// ReplaceObjective returns a transform that swaps the objective for
// the given named variables and coefficients, e.g. to test whether a
// coefficient movement predicted to preserve the basis really does.
func ReplaceObjective(coefs []float64, names ...string) Transform {
	return func(m *Model) error {
		if len(names) != len(coefs) {
			return errors.Errorf("golpsa: inconsistent number of variables and coefficients: %d != %d", len(names), len(coefs))
		}
		vars := make([]*Variable, len(names))
		for i, name := range names {
			v := m.Variable(name)
			if v == nil {
				return errors.Errorf("golpsa: no variable named %q", name)
			}
			vars[i] = v
		}
		return m.SetObjective(coefs, vars)
	}
}

// BuyCapacity returns a transform modelling purchasable extra
// capacity for the named constraint: a new continuous variable
// varName with bounds [0, limit] augments the constraint's RHS, and
// unitCost per purchased unit is charged to the objective.
//
// For a binding constraint this empirically validates the ranging
// prediction: the re-solved objective improves monotonically with
// the purchased amount, bounded by shadow price times limit, and
// buying is only worthwhile while unitCost stays below the shadow
// price.
func BuyCapacity(constraint, varName string, limit, unitCost float64) Transform {
	return func(m *Model) error {
		c := m.Constraint(constraint)
		if c == nil {
			return errors.Errorf("golpsa: no constraint named %q", constraint)
		}

		charge := unitCost
		if m.Direction() == Maximize {
			charge = -unitCost
		}
		extra, err := m.AddDefinedVariable(varName, ContinuousVariable, charge, 0, limit)
		if err != nil {
			return err
		}

		// RHS + extra becomes LHS - extra on the constraint side.
		return c.SetCoefficient(extra, -1)
	}
}
