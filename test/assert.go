// Package test provides assertion helpers for circuit tests.
package test

import (
	"math/big"
	"testing"

	"github.com/consensys/gnark/constraint"

	"github.com/PolyhedraZK/plonkish/checker"
	"github.com/PolyhedraZK/plonkish/circuit"
)

type Assert struct {
	t     *testing.T
	order *big.Int
	k     int
}

func NewAssert(t *testing.T, order *big.Int, k int) *Assert {
	return &Assert{t: t, order: order, k: k}
}

// Satisfied synthesizes c and fails the test unless every constraint
// holds.
func (a *Assert) Satisfied(c circuit.Circuit, instances ...[]constraint.Element) {
	a.t.Helper()
	ck, err := checker.Run(a.order, a.k, c, instances...)
	if err != nil {
		a.t.Fatalf("run: %v", err)
	}
	if err := ck.Verify(); err != nil {
		a.t.Fatalf("should be satisfied:\n%v", err)
	}
}

// NotSatisfied synthesizes c, expects at least one constraint violation
// and returns the report for further inspection.
func (a *Assert) NotSatisfied(c circuit.Circuit, instances ...[]constraint.Element) *checker.Failures {
	a.t.Helper()
	ck, err := checker.Run(a.order, a.k, c, instances...)
	if err != nil {
		a.t.Fatalf("run: %v", err)
	}
	err = ck.Verify()
	if err == nil {
		a.t.Fatal("should not be satisfied")
	}
	fails, ok := err.(*checker.Failures)
	if !ok {
		a.t.Fatalf("unexpected verify error: %v", err)
	}
	return fails
}
