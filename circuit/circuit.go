// Package circuit provides the synthesis layer of the engine: the witness
// grid, the region allocator, and the circuit author contract.
//
// A circuit is built in two phases. Configure runs once per circuit shape
// against a cs.ConstraintSystem and may only declare columns, selectors,
// gates and lookups; it sees no witness. Synthesize runs with a Layouter
// and fills the grid region by region, using only region-relative offsets.
package circuit

import "github.com/PolyhedraZK/plonkish/cs"

// Circuit is the author contract consumed by the checker.
type Circuit interface {
	// Configure declares the circuit shape. The circuit stores whatever
	// column and selector handles it needs for synthesis.
	Configure(meta *cs.ConstraintSystem)

	// Synthesize fills the witness grid through the layouter.
	Synthesize(l *Layouter) error
}
