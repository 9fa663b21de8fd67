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

// Command telephoneplan walks through the sensitivity analysis of a
// small telephone production planning problem: shadow prices, slacks,
// basis statuses, RHS and objective-coefficient ranging, an
// "overtime" capacity-buying scenario, and the linear relaxation of
// the integer variant of the same plan.
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/LeLoMAu/golpsa"
	"github.com/LeLoMAu/golpsa/highs"
)

func buildModel() (*golpsa.Model, error) {
	model, err := golpsa.NewModel("telephone_production", golpsa.Maximize)
	if err != nil {
		return nil, err
	}

	// desk is the production of desk telephones, cell the production
	// of cell phones, both non-negative.
	desk, err := model.AddVariable("desk")
	if err != nil {
		return nil, err
	}
	cell, err := model.AddVariable("cell")
	if err != nil {
		return nil, err
	}

	phones := []*golpsa.Variable{desk, cell}

	// Daily availability of the two production machines and the
	// factory opening hours.
	if _, err := model.AddConstraint("machine_1", phones, []float64{2, 1}, golpsa.LessEqual, 8); err != nil {
		return nil, err
	}
	if _, err := model.AddConstraint("machine_2", phones, []float64{1, 2}, golpsa.LessEqual, 8); err != nil {
		return nil, err
	}
	if _, err := model.AddConstraint("factory", phones, []float64{3, 3}, golpsa.LessEqual, 24); err != nil {
		return nil, err
	}

	if err := model.SetObjective([]float64{300, 200}, phones); err != nil {
		return nil, err
	}

	return model, nil
}

func main() {
	ctx := context.Background()
	engine := highs.New()

	model, err := buildModel()
	if err != nil {
		log.Fatalf("building model: %+v", err)
	}

	fmt.Printf("model %q: %d variables, %d constraints\n\n", model.Name(), model.VariableCount(), model.ConstraintCount())

	sol, err := model.SolveWithContext(ctx, engine)
	if err != nil {
		log.Fatalf("solving: %+v", err)
	}
	if err := sol.Write(os.Stdout); err != nil {
		log.Fatalf("printing solution: %+v", err)
	}

	report, err := sol.Sensitivity()
	if err != nil {
		log.Fatalf("sensitivity: %+v", err)
	}
	fmt.Println()
	if err := report.Write(os.Stdout); err != nil {
		log.Fatalf("printing report: %+v", err)
	}

	// machine_1 carries the greatest shadow price, so extra hours on
	// it are the most valuable: the dual value is the most we should
	// be willing to pay per hour. Buy up to 4 extra hours at 100 each
	// and check the prediction empirically.
	machine1 := report.Constraints[0]
	fmt.Printf("\nbuying up to 4 extra hours on %s (shadow price %.3f) at 100 per hour\n", machine1.Name, machine1.Dual)

	overtimeModel, overtimeSol, err := golpsa.RunScenario(ctx, model, engine,
		golpsa.BuyCapacity("machine_1", "overtime", 4, 100))
	if err != nil {
		log.Fatalf("overtime scenario: %+v", err)
	}
	if err := overtimeSol.Write(os.Stdout); err != nil {
		log.Fatalf("printing overtime solution: %+v", err)
	}
	bought, err := overtimeSol.Value(overtimeModel.Variable("overtime"))
	if err != nil {
		log.Fatalf("reading overtime: %+v", err)
	}
	fmt.Printf("hours bought: %.4f\n", bought)

	// Objective-coefficient ranging, validated with two what-if
	// replays: one inside the cell coefficient's range, one outside.
	for _, v := range report.Variables {
		fmt.Printf("\nthe %s coefficient can move within %v without changing the optimal basis", v.Name, v.CostRange)
	}
	fmt.Println()
	for _, coef := range []float64{600, 700} {
		_, whatIf, err := golpsa.RunScenario(ctx, model, engine,
			golpsa.ReplaceObjective([]float64{300, coef}, "desk", "cell"))
		if err != nil {
			log.Fatalf("what-if scenario: %+v", err)
		}
		obj, err := whatIf.ObjectiveValue()
		if err != nil {
			log.Fatalf("reading what-if objective: %+v", err)
		}
		fmt.Printf("with a cell coefficient of %.0f the optimal objective is %.4f\n", coef, obj)
	}

	fmt.Println()
	for _, v := range report.Variables {
		fmt.Printf("variable %s has reduced cost %.4f\n", v.Name, v.Reduced)
	}

	// Integer variant: whole telephones only. Ranging against the
	// integer model is refused; its linear relaxation provides it.
	integerModel, err := buildModel()
	if err != nil {
		log.Fatalf("building integer model: %+v", err)
	}
	integerModel.Variable("desk").SetType(golpsa.IntegerVariable)
	integerModel.Variable("cell").SetType(golpsa.IntegerVariable)

	intSol, err := integerModel.SolveWithContext(ctx, engine)
	if err != nil {
		log.Fatalf("solving integer model: %+v", err)
	}
	fmt.Println()
	if err := intSol.Write(os.Stdout); err != nil {
		log.Fatalf("printing integer solution: %+v", err)
	}

	if _, err := intSol.Sensitivity(); err != nil {
		fmt.Printf("ranging on the integer model: %v\n", err)
	}

	relaxedSol, err := integerModel.Relax().SolveWithContext(ctx, engine)
	if err != nil {
		log.Fatalf("solving relaxation: %+v", err)
	}
	relaxedReport, err := relaxedSol.Sensitivity()
	if err != nil {
		log.Fatalf("relaxation sensitivity: %+v", err)
	}
	fmt.Println("\nsensitivity of the linear relaxation:")
	if err := relaxedReport.Write(os.Stdout); err != nil {
		log.Fatalf("printing relaxation report: %+v", err)
	}
}
