package cs

import (
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/stretchr/testify/require"

	"github.com/PolyhedraZK/plonkish/field"
)

func newMeta() *ConstraintSystem {
	return NewConstraintSystem(field.GetFieldFromOrder(fr.Modulus()))
}

func TestColumnIndicesArePerKind(t *testing.T) {
	meta := newMeta()
	f0 := meta.AddFixedColumn()
	a0 := meta.AddAdviceColumn()
	a1 := meta.AddAdviceColumn()
	i0 := meta.AddInstanceColumn()
	t0 := meta.AddTableColumn()

	require.Equal(t, Column{Kind: Fixed, Index: 0}, f0)
	require.Equal(t, Column{Kind: Advice, Index: 0}, a0)
	require.Equal(t, Column{Kind: Advice, Index: 1}, a1)
	require.Equal(t, Column{Kind: Instance, Index: 0}, i0)
	require.Equal(t, Column{Kind: Table, Index: 0}, t0)

	require.Equal(t, "f0", f0.String())
	require.Equal(t, "a1", a1.String())
	require.Equal(t, "i0", i0.String())
	require.Equal(t, "t0", t0.String())
}

func TestSelectors(t *testing.T) {
	meta := newMeta()
	s0 := meta.AddSelector()
	s1 := meta.AddComplexSelector()

	require.True(t, s0.Simple)
	require.False(t, s1.Simple)
	require.Equal(t, 0, s0.Index)
	require.Equal(t, 1, s1.Index)
	require.Equal(t, 2, meta.NbSelector)
}

func TestEqualityBookkeeping(t *testing.T) {
	meta := newMeta()
	a := meta.AddAdviceColumn()
	inst := meta.AddInstanceColumn()
	tbl := meta.AddTableColumn()

	require.False(t, meta.CanEqualityConstrain(a))
	meta.EnableEquality(a)
	meta.EnableEquality(inst)
	require.True(t, meta.CanEqualityConstrain(a))
	require.True(t, meta.CanEqualityConstrain(inst))

	require.Panics(t, func() { meta.EnableEquality(tbl) })
}

func TestEnableConstant(t *testing.T) {
	meta := newMeta()
	a := meta.AddAdviceColumn()
	f := meta.AddFixedColumn()

	require.Panics(t, func() { meta.EnableConstant(a) }, "only fixed columns hold constants")

	meta.EnableConstant(f)
	require.Equal(t, []Column{f}, meta.ConstantColumns())
	require.True(t, meta.CanEqualityConstrain(f), "constant columns join the permutation")
}

func TestCreateGateRecordsPolys(t *testing.T) {
	meta := newMeta()
	a := meta.AddAdviceColumn()
	b := meta.AddAdviceColumn()
	s := meta.AddSelector()

	meta.CreateGate("mul", &s, func(vc *VirtualCells) []Expression {
		x := vc.QueryAdvice(a, RotationCur)
		y := vc.QueryAdvice(b, RotationNext)
		return []Expression{Sub(Mul(x, y), vc.Constant(1))}
	})

	require.Len(t, meta.Gates, 1)
	g := meta.Gates[0]
	require.Equal(t, "mul", g.Name)
	require.Equal(t, &s, g.Selector)
	require.Len(t, g.Polys, 1)
	require.Equal(t, 2, g.Polys[0].Degree())
}

func TestCreateGateRejectsEmpty(t *testing.T) {
	meta := newMeta()
	s := meta.AddSelector()
	require.Panics(t, func() {
		meta.CreateGate("empty", &s, func(vc *VirtualCells) []Expression {
			return nil
		})
	})
}

func TestCreateLookupRequiresComplexSelector(t *testing.T) {
	meta := newMeta()
	a := meta.AddAdviceColumn()
	tbl := meta.AddTableColumn()
	simple := meta.AddSelector()

	require.Panics(t, func() {
		meta.CreateLookup("l", simple, func(vc *VirtualCells) []LookupPair {
			return []LookupPair{{Input: vc.QueryAdvice(a, RotationCur), Table: tbl}}
		})
	})
}

func TestCreateLookupRejectsNonTableColumn(t *testing.T) {
	meta := newMeta()
	a := meta.AddAdviceColumn()
	b := meta.AddAdviceColumn()
	s := meta.AddComplexSelector()

	require.Panics(t, func() {
		meta.CreateLookup("l", s, func(vc *VirtualCells) []LookupPair {
			return []LookupPair{{Input: vc.QueryAdvice(a, RotationCur), Table: b}}
		})
	})
}

func TestQueryKindChecks(t *testing.T) {
	meta := newMeta()
	a := meta.AddAdviceColumn()
	f := meta.AddFixedColumn()
	s := meta.AddSelector()

	meta.CreateGate("g", &s, func(vc *VirtualCells) []Expression {
		require.Panics(t, func() { vc.QueryAdvice(f, RotationCur) })
		require.Panics(t, func() { vc.QueryFixed(a, RotationCur) })
		return []Expression{vc.QueryAdvice(a, RotationCur)}
	})
}

func TestExpressionDegree(t *testing.T) {
	meta := newMeta()
	a := meta.AddAdviceColumn()
	s := meta.AddSelector()

	meta.CreateGate("g", &s, func(vc *VirtualCells) []Expression {
		x := vc.QueryAdvice(a, RotationCur)
		c := vc.Constant(5)
		sel := vc.QuerySelector(s)

		require.Equal(t, 0, c.Degree())
		require.Equal(t, 1, x.Degree())
		require.Equal(t, 1, sel.Degree())
		require.Equal(t, 2, Mul(x, x).Degree())
		require.Equal(t, 2, Add(Mul(x, x), x).Degree())
		require.Equal(t, 1, Neg(x).Degree())
		require.Equal(t, 3, Mul(sel, Mul(x, x)).Degree())
		return []Expression{x}
	})
}

func TestRotations(t *testing.T) {
	meta := newMeta()
	a := meta.AddAdviceColumn()
	s := meta.AddSelector()

	meta.CreateGate("g", &s, func(vc *VirtualCells) []Expression {
		e := Sub(
			Add(vc.QueryAdvice(a, RotationPrev), vc.QueryAdvice(a, RotationCur)),
			vc.QueryAdvice(a, RotationNext),
		)
		rots := Rotations(e)
		require.ElementsMatch(t, []Rotation{RotationPrev, RotationCur, RotationNext}, rots)
		return []Expression{e}
	})
}
