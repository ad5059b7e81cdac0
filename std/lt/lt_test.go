package lt

import (
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/stretchr/testify/require"

	"github.com/PolyhedraZK/plonkish/checker"
	"github.com/PolyhedraZK/plonkish/circuit"
	"github.com/PolyhedraZK/plonkish/cs"
	"github.com/PolyhedraZK/plonkish/field"
)

var order = fr.Modulus()

// sortedCircuit asserts its values are in ascending order: for every
// adjacent pair the gadget's bit (next < current) must be zero.
type sortedCircuit struct {
	value cs.Column
	q     cs.Selector
	cfg   Config

	field  field.Field
	values []uint64

	// when set, overrides the witnessed comparison bit on row 0
	forgedBit *uint64
}

func (c *sortedCircuit) Configure(meta *cs.ConstraintSystem) {
	c.value = meta.AddAdviceColumn()
	c.q = meta.AddComplexSelector()
	c.cfg = Configure(meta, c.q, 1,
		func(vc *cs.VirtualCells) cs.Expression {
			return vc.QueryAdvice(c.value, cs.RotationNext)
		},
		func(vc *cs.VirtualCells) cs.Expression {
			return vc.QueryAdvice(c.value, cs.RotationCur)
		})
	meta.CreateGate("sorted", &c.q, func(vc *cs.VirtualCells) []cs.Expression {
		return []cs.Expression{c.cfg.IsLt(vc)}
	})
}

func (c *sortedCircuit) Synthesize(l *circuit.Layouter) error {
	chip := NewChip(c.cfg, c.field)
	if err := chip.LoadTable(l); err != nil {
		return err
	}
	return l.AssignRegion("sequence", func(r *circuit.Region) error {
		for i, v := range c.values {
			if _, err := r.AssignAdvice(c.value, i, circuit.Known(c.field.FromInterface(v))); err != nil {
				return err
			}
		}
		for i := 0; i+1 < len(c.values); i++ {
			if err := r.EnableSelector(c.q, i); err != nil {
				return err
			}
			if c.forgedBit != nil && i == 0 {
				bit := c.field.FromInterface(*c.forgedBit)
				if _, err := r.AssignAdvice(c.cfg.Lt, i, circuit.Known(bit)); err != nil {
					return err
				}
				diff := c.field.Sub(
					c.field.FromInterface(c.values[i+1]),
					c.field.FromInterface(c.values[i]),
				)
				bytes := c.field.Bytes(diff)
				v := c.field.FromInterface(uint64(bytes[0]))
				if _, err := r.AssignAdvice(c.cfg.Diff[0], i, circuit.Known(v)); err != nil {
					return err
				}
				continue
			}
			next := c.field.FromInterface(c.values[i+1])
			cur := c.field.FromInterface(c.values[i])
			if err := chip.Assign(r, i, next, cur); err != nil {
				return err
			}
		}
		return nil
	})
}

func run(t *testing.T, c *sortedCircuit) error {
	t.Helper()
	c.field = field.GetFieldFromOrder(order)
	ck, err := checker.Run(order, 4, c)
	require.NoError(t, err)
	return ck.Verify()
}

func TestSortedAccepted(t *testing.T) {
	err := run(t, &sortedCircuit{values: []uint64{1, 2, 4, 6, 9}})
	require.NoError(t, err)
}

func TestEqualNeighborsAccepted(t *testing.T) {
	err := run(t, &sortedCircuit{values: []uint64{3, 3, 5}})
	require.NoError(t, err)
}

func TestUnsortedRejected(t *testing.T) {
	err := run(t, &sortedCircuit{values: []uint64{9, 4, 6, 2, 1}})
	require.Error(t, err)

	fails := err.(*checker.Failures)
	require.Empty(t, fails.Lookups, "honest difference bytes pass the range check")

	// inversions at rows 0 (9>4), 2 (6>2) and 3 (2>1)
	var rows []int
	for _, f := range fails.Gates {
		require.Equal(t, "sorted", f.Gate)
		require.Equal(t, "nonzero", f.Reason)
		rows = append(rows, f.Row)
	}
	require.Equal(t, []int{0, 2, 3}, rows)
}

func TestForgedComparisonBitRejected(t *testing.T) {
	// honest bit on row 0 of [5, 3, 7] is 1; forging 2 breaks both the
	// boolean check and the recomposition identity
	forged := uint64(2)
	err := run(t, &sortedCircuit{values: []uint64{3, 5, 7}, forgedBit: &forged})
	require.Error(t, err)

	fails := err.(*checker.Failures)
	require.Len(t, fails.Gates, 3)
	for _, f := range fails.Gates {
		require.Equal(t, 0, f.Row)
	}
	// recomposition then boolean check, plus the sorted gate seeing a
	// nonzero bit
	require.Equal(t, "lt", fails.Gates[0].Gate)
	require.Equal(t, 0, fails.Gates[0].ConstraintIndex)
	require.Equal(t, "lt", fails.Gates[1].Gate)
	require.Equal(t, 1, fails.Gates[1].ConstraintIndex)
	require.Equal(t, "sorted", fails.Gates[2].Gate)
}
