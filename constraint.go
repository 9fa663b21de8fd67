package golpsa

import "github.com/pkg/errors"

// Relation is the relational operator of a linear constraint.
type Relation int

const (
	LessEqual Relation = iota
	GreaterEqual
	Equal
)

func (r Relation) String() string {
	switch r {
	case LessEqual:
		return "<="
	case GreaterEqual:
		return ">="
	case Equal:
		return "="
	default:
		return "?"
	}
}

// Constraint is a single linear constraint, bound to the model that
// created it and addressable by name.
type Constraint struct {
	model *Model
	index int
	name  string
	vars  []*Variable
	coefs []float64
	rel   Relation
	rhs   float64
}

// Name returns the constraint's name.
func (c *Constraint) Name() string {
	return c.name
}

// Relation returns the constraint's relational operator.
func (c *Constraint) Relation() Relation {
	c.model.mu.RLock()
	defer c.model.mu.RUnlock()

	return c.rel
}

// RHS returns the constraint's right-hand-side value.
func (c *Constraint) RHS() float64 {
	c.model.mu.RLock()
	defer c.model.mu.RUnlock()

	return c.rhs
}

// SetRHS changes the constraint's right-hand-side value. The model's
// last solution, if any, becomes stale.
func (c *Constraint) SetRHS(rhs float64) {
	c.model.mu.Lock()
	defer c.model.mu.Unlock()

	c.rhs = rhs
	c.model.invalidateLocked()
}

// Coefficient returns the coefficient of the given variable in this
// constraint, or 0 if the variable does not appear in it.
func (c *Constraint) Coefficient(v *Variable) float64 {
	c.model.mu.RLock()
	defer c.model.mu.RUnlock()

	for i, cv := range c.vars {
		if cv == v {
			return c.coefs[i]
		}
	}
	return 0
}

// SetCoefficient sets the coefficient of the given variable in this
// constraint, adding the variable to the constraint's expression if
// it was not part of it. The model's last solution, if any, becomes
// stale.
func (c *Constraint) SetCoefficient(v *Variable, coef float64) error {
	if v.model != c.model {
		return errors.Errorf("golpsa: variable %q belongs to a different model", v.name)
	}

	c.model.mu.Lock()
	defer c.model.mu.Unlock()

	for i, cv := range c.vars {
		if cv == v {
			c.coefs[i] = coef
			c.model.invalidateLocked()
			return nil
		}
	}
	c.vars = append(c.vars, v)
	c.coefs = append(c.coefs, coef)
	c.model.invalidateLocked()

	return nil
}

// rowBounds maps relation and RHS to the (lower, upper) row-bound
// pair consumed by engines.
func (c *Constraint) rowBounds() (lower, upper float64) {
	switch c.rel {
	case LessEqual:
		return negInf, c.rhs
	case GreaterEqual:
		return c.rhs, posInf
	default:
		return c.rhs, c.rhs
	}
}
