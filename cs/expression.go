package cs

import (
	"github.com/consensys/gnark/constraint"
)

// Expression is a symbolic polynomial over column queries at relative row
// offsets. Expressions are built during configuration, before any witness
// exists, and are evaluated by the checker against a concrete grid.
type Expression interface {
	// Degree is the degree of the polynomial, counting every column query
	// as degree one.
	Degree() int

	isExpression()
}

// Constant is a literal field element.
type Constant struct {
	Value constraint.Element
}

// Query reads a column at the given rotation relative to the current row.
type Query struct {
	Column   Column
	Rotation Rotation
}

// SelectorQuery evaluates to one where the selector is enabled and zero
// elsewhere.
type SelectorQuery struct {
	Selector Selector
}

// Negated is the additive inverse of the inner expression.
type Negated struct {
	Inner Expression
}

// Sum is the sum of two expressions.
type Sum struct {
	L, R Expression
}

// Product is the product of two expressions.
type Product struct {
	L, R Expression
}

// Scaled is the inner expression multiplied by a constant.
type Scaled struct {
	Inner Expression
	Coeff constraint.Element
}

func (Constant) isExpression()      {}
func (Query) isExpression()         {}
func (SelectorQuery) isExpression() {}
func (Negated) isExpression()       {}
func (Sum) isExpression()           {}
func (Product) isExpression()       {}
func (Scaled) isExpression()        {}

func (Constant) Degree() int      { return 0 }
func (Query) Degree() int         { return 1 }
func (SelectorQuery) Degree() int { return 1 }
func (e Negated) Degree() int     { return e.Inner.Degree() }
func (e Scaled) Degree() int      { return e.Inner.Degree() }

func (e Sum) Degree() int {
	l, r := e.L.Degree(), e.R.Degree()
	if l > r {
		return l
	}
	return r
}

func (e Product) Degree() int {
	return e.L.Degree() + e.R.Degree()
}

// NewConstant wraps a field element as an expression.
func NewConstant(v constraint.Element) Expression {
	return Constant{Value: v}
}

// Add returns a+b, folding any extra operands in.
func Add(a, b Expression, more ...Expression) Expression {
	res := Expression(Sum{L: a, R: b})
	for _, m := range more {
		res = Sum{L: res, R: m}
	}
	return res
}

// Sub returns a-b.
func Sub(a, b Expression) Expression {
	return Sum{L: a, R: Negated{Inner: b}}
}

// Mul returns a*b, folding any extra operands in.
func Mul(a, b Expression, more ...Expression) Expression {
	res := Expression(Product{L: a, R: b})
	for _, m := range more {
		res = Product{L: res, R: m}
	}
	return res
}

// Neg returns -a.
func Neg(a Expression) Expression {
	return Negated{Inner: a}
}

// Scale returns a*k for a constant k.
func Scale(a Expression, k constraint.Element) Expression {
	return Scaled{Inner: a, Coeff: k}
}

// Visit walks the expression tree in depth-first order, calling f on every
// node.
func Visit(e Expression, f func(Expression)) {
	f(e)
	switch t := e.(type) {
	case Negated:
		Visit(t.Inner, f)
	case Scaled:
		Visit(t.Inner, f)
	case Sum:
		Visit(t.L, f)
		Visit(t.R, f)
	case Product:
		Visit(t.L, f)
		Visit(t.R, f)
	}
}

// Rotations returns the set of distinct rotations queried by e. The checker
// uses it to bound which absolute rows an evaluation may touch.
func Rotations(e Expression) []Rotation {
	seen := make(map[Rotation]bool)
	var res []Rotation
	Visit(e, func(n Expression) {
		if q, ok := n.(Query); ok && !seen[q.Rotation] {
			seen[q.Rotation] = true
			res = append(res, q.Rotation)
		}
	})
	return res
}
