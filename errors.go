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

import "github.com/pkg/errors"

var (
	// ErrInvalidBounds is returned when a variable is declared with a
	// finite lower bound greater than its finite upper bound. The check
	// happens at construction time, never at solve time.
	ErrInvalidBounds = errors.New("golpsa: variable lower bound exceeds upper bound")

	// ErrInfeasible is returned by Solve when the engine proves that no
	// feasible point exists.
	ErrInfeasible = errors.New("golpsa: model is infeasible")

	// ErrUnbounded is returned by Solve when the objective can be
	// improved without limit.
	ErrUnbounded = errors.New("golpsa: model is unbounded")

	// ErrUnsupportedForIntegerModel is returned by sensitivity queries
	// against a model that still contains integer or binary variables.
	// Callers must Relax first.
	ErrUnsupportedForIntegerModel = errors.New("golpsa: sensitivity ranging requires a continuous model")

	// ErrNoSolutionAvailable is returned when solution values are read
	// before any solve, or after a model mutation made the last
	// solution stale.
	ErrNoSolutionAvailable = errors.New("golpsa: no solution available")

	// ErrSensitivityUnavailable is returned when the engine that
	// produced a solution did not report dual, basis or ranging data.
	ErrSensitivityUnavailable = errors.New("golpsa: engine did not report sensitivity data")
)
