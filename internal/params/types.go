package params

import (
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"

	"github.com/vocdoni/poseidon254/poseidon"
)

// Alpha captures the Poseidon S-box exponent.
type Alpha struct {
	Exponent uint32
	Inverse  bool
}

// SBox is the only S-box the permutation backends implement.
var SBox = Alpha{Exponent: 5}

// Parameters bundles all constants needed by the BN254 permutation of one
// arity.
type Parameters struct {
	M             int
	StateSize     int
	FullRounds    int
	PartialRounds int
	Alpha         Alpha

	// Arc holds the round constants in the standard layout and OptimizedArc
	// the same constants after CompressRoundConstants.
	Arc          []fr.Element
	OptimizedArc []fr.Element
	MDS          []fr.Element
	MDSInverse   []fr.Element

	DomainTag fr.Element
}

// Constants returns the permutation shape.
func (p *Parameters) Constants() poseidon.Constants {
	return poseidon.Constants{
		Width:         p.StateSize,
		FullRounds:    p.FullRounds,
		PartialRounds: p.PartialRounds,
	}
}

// Arity returns the number of hash inputs.
func (p *Parameters) Arity() int { return p.StateSize - 1 }

// RoundKeys returns the round constants for the requested layout.
func (p *Parameters) RoundKeys(compressed bool) []fr.Element {
	if compressed {
		return p.OptimizedArc
	}
	return p.Arc
}
