package test

import (
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/stretchr/testify/require"

	"github.com/PolyhedraZK/plonkish/circuit"
	"github.com/PolyhedraZK/plonkish/cs"
	"github.com/PolyhedraZK/plonkish/field"
)

// squareCircuit checks out = in^2 on its single row.
type squareCircuit struct {
	in, out uint64

	colIn, colOut cs.Column
	s             cs.Selector
}

func (c *squareCircuit) Configure(meta *cs.ConstraintSystem) {
	c.colIn = meta.AddAdviceColumn()
	c.colOut = meta.AddAdviceColumn()
	c.s = meta.AddSelector()
	meta.CreateGate("square", &c.s, func(vc *cs.VirtualCells) []cs.Expression {
		x := vc.QueryAdvice(c.colIn, cs.RotationCur)
		y := vc.QueryAdvice(c.colOut, cs.RotationCur)
		return []cs.Expression{cs.Sub(cs.Mul(x, x), y)}
	})
}

func (c *squareCircuit) Synthesize(l *circuit.Layouter) error {
	ff := field.GetFieldFromOrder(fr.Modulus())
	return l.AssignRegion("row", func(r *circuit.Region) error {
		if err := r.EnableSelector(c.s, 0); err != nil {
			return err
		}
		if _, err := r.AssignAdvice(c.colIn, 0, circuit.Known(ff.FromInterface(c.in))); err != nil {
			return err
		}
		_, err := r.AssignAdvice(c.colOut, 0, circuit.Known(ff.FromInterface(c.out)))
		return err
	})
}

func TestAssert(t *testing.T) {
	a := NewAssert(t, fr.Modulus(), 2)
	a.Satisfied(&squareCircuit{in: 3, out: 9})

	fails := a.NotSatisfied(&squareCircuit{in: 3, out: 10})
	require.Len(t, fails.Gates, 1)
	require.Equal(t, "square", fails.Gates[0].Gate)
}
