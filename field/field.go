// Package field defines the field collaborator contract consumed by the
// engine. Elements are represented as gnark constraint.Element values and
// all arithmetic goes through the Field interface.
package field

import (
	"fmt"
	"math/big"

	"github.com/PolyhedraZK/plonkish/field/bn254"
	"github.com/consensys/gnark/constraint"
)

type Field interface {
	constraint.Field
	Field() *big.Int
	FieldBitLen() int
	// Exp returns a raised to the power e.
	Exp(a constraint.Element, e uint64) constraint.Element
	// Bytes returns the canonical little-endian byte representation of a,
	// always NbBytes() wide.
	Bytes(a constraint.Element) []byte
	// NbBytes is the width of the canonical byte representation.
	NbBytes() int
	// Cmp compares the canonical integer representations of a and b.
	Cmp(a, b constraint.Element) int
}

func GetFieldFromOrder(x *big.Int) Field {
	if x.Cmp(bn254.ScalarField) == 0 {
		return &bn254.Field{}
	}
	panic(fmt.Sprintf("unknown field %v", x))
}
