// Package lt provides a less-than gadget: it witnesses a boolean flag
// together with a byte decomposition of the bounded difference between two
// expressions, so a circuit can branch on lhs < rhs without leaving the
// field. Both operands must fit in the configured byte width.
package lt

import (
	"fmt"
	"math/big"

	"github.com/PolyhedraZK/plonkish/circuit"
	"github.com/PolyhedraZK/plonkish/cs"
	"github.com/PolyhedraZK/plonkish/field"
	"github.com/consensys/gnark/constraint"
)

// Config carries the columns claimed by Configure. Lt holds the comparison
// bit and Diff holds the little-endian bytes of lhs - rhs + lt*2^(8*n).
type Config struct {
	Lt        cs.Column
	Diff      []cs.Column
	ByteTable cs.Column

	selector cs.Selector
	rng      *big.Int
}

// IsLt is the gadget's output: a query of the comparison bit at the
// current row, usable inside other gates sharing the same rows.
func (cfg Config) IsLt(vc *cs.VirtualCells) cs.Expression {
	return vc.QueryAdvice(cfg.Lt, cs.RotationCur)
}

// Configure claims one advice column for the comparison bit, nbBytes
// advice columns for the difference bytes and a table column for the byte
// range check, then installs the comparison gate and the per-byte lookups.
// The selector must be complex since it also gates the lookups; lhs and
// rhs are evaluated inside the gate closure.
func Configure(meta *cs.ConstraintSystem, q cs.Selector, nbBytes int,
	lhs, rhs func(*cs.VirtualCells) cs.Expression) Config {
	if nbBytes < 1 {
		panic("lt: need at least one difference byte")
	}
	cfg := Config{
		Lt:        meta.AddAdviceColumn(),
		Diff:      make([]cs.Column, nbBytes),
		ByteTable: meta.AddTableColumn(),
		selector:  q,
		rng:       new(big.Int).Lsh(big.NewInt(1), uint(8*nbBytes)),
	}
	for i := range cfg.Diff {
		cfg.Diff[i] = meta.AddAdviceColumn()
	}

	meta.CreateGate("lt", &q, func(vc *cs.VirtualCells) []cs.Expression {
		ltq := cfg.IsLt(vc)
		diff := fromBytes(vc, cfg.Diff)
		rng := vc.Constant(cfg.rng)

		// lhs - rhs = diff - lt * 2^(8*nbBytes)
		checkA := cs.Sub(
			cs.Sub(lhs(vc), rhs(vc)),
			cs.Sub(diff, cs.Mul(ltq, rng)),
		)
		checkB := boolCheck(vc, ltq)
		return []cs.Expression{checkA, checkB}
	})

	for i, col := range cfg.Diff {
		col := col
		meta.CreateLookup(fmt.Sprintf("lt diff byte %d", i), q,
			func(vc *cs.VirtualCells) []cs.LookupPair {
				return []cs.LookupPair{{
					Input: vc.QueryAdvice(col, cs.RotationCur),
					Table: cfg.ByteTable,
				}}
			})
	}
	return cfg
}

// fromBytes recomposes little-endian byte columns into a field expression.
func fromBytes(vc *cs.VirtualCells, cols []cs.Column) cs.Expression {
	acc := cs.Expression(vc.QueryAdvice(cols[len(cols)-1], cs.RotationCur))
	for i := len(cols) - 2; i >= 0; i-- {
		acc = cs.Add(
			cs.Mul(acc, vc.Constant(256)),
			vc.QueryAdvice(cols[i], cs.RotationCur),
		)
	}
	return acc
}

// boolCheck constrains x to 0 or 1: x * (1 - x).
func boolCheck(vc *cs.VirtualCells, x cs.Expression) cs.Expression {
	return cs.Mul(x, cs.Sub(vc.Constant(1), x))
}

// Chip assigns witnesses matching the configured gate.
type Chip struct {
	cfg   Config
	field field.Field
}

func NewChip(cfg Config, f field.Field) *Chip {
	return &Chip{cfg: cfg, field: f}
}

func (c *Chip) Config() Config {
	return c.cfg
}

// LoadTable fills the byte range table with 0..255. Call it once per
// synthesis, before Verify.
func (c *Chip) LoadTable(l *circuit.Layouter) error {
	return l.AssignTable("u8 range", func(t *circuit.Table) error {
		for i := 0; i < 256; i++ {
			v := c.field.FromInterface(uint64(i))
			if err := t.AssignCell(c.cfg.ByteTable, i, circuit.Known(v)); err != nil {
				return err
			}
		}
		return nil
	})
}

// Assign witnesses the comparison bit and difference bytes at the given
// region offset for concrete operand values. The caller is responsible
// for enabling the chip's selector on the same row.
func (c *Chip) Assign(region *circuit.Region, offset int, lhs, rhs constraint.Element) error {
	isLt := c.field.Cmp(lhs, rhs) < 0

	var bit constraint.Element
	if isLt {
		bit = c.field.One()
	}
	if _, err := region.AssignAdvice(c.cfg.Lt, offset, circuit.Known(bit)); err != nil {
		return err
	}

	diff := c.field.Sub(lhs, rhs)
	if isLt {
		diff = c.field.Add(diff, c.field.FromInterface(c.cfg.rng))
	}
	bytes := c.field.Bytes(diff)
	if len(bytes) < len(c.cfg.Diff) {
		return fmt.Errorf("lt: difference needs %d bytes, field provides %d",
			len(c.cfg.Diff), len(bytes))
	}
	for i, col := range c.cfg.Diff {
		v := c.field.FromInterface(uint64(bytes[i]))
		if _, err := region.AssignAdvice(col, offset, circuit.Known(v)); err != nil {
			return err
		}
	}
	return nil
}
