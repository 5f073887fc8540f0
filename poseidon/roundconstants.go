package poseidon

import (
	"errors"

	"github.com/vocdoni/poseidon254/field"
)

// GenerateLFSR seeds a Grain LFSR for a prime-field Poseidon instance with
// the x^alpha S-box (alpha > 0).
func GenerateLFSR(modulusBits int, c Constants) *GrainLFSR {
	return NewGrainLFSR([]SeedBits{
		{Count: 2, Value: 1},
		{Count: 4, Value: 0},
		{Count: 12, Value: uint64(modulusBits)},
		{Count: 12, Value: uint64(c.Width)},
		{Count: 10, Value: uint64(c.FullRounds)},
		{Count: 10, Value: uint64(c.PartialRounds)},
		{Count: 30, Value: 1<<30 - 1},
	})
}

// SampleFieldElement draws modulusBits bits at a time from lfsr, big-endian,
// until they encode a value below the modulus.
func SampleFieldElement[E any, PE field.Element[E]](lfsr *GrainLFSR, modulusBits int) E {
	for {
		e, err := field.FromBitsBE[E, PE](lfsr.NextBits(modulusBits))
		if errors.Is(err, field.ErrOutOfRange) {
			continue
		}
		return e
	}
}

// GenerateRoundConstants derives the Width*(FullRounds+PartialRounds) round
// constants for c over the field E.
func GenerateRoundConstants[E any, PE field.Element[E]](c Constants) []E {
	bits := field.ModulusBits[E, PE]()
	lfsr := GenerateLFSR(bits, c)
	out := make([]E, c.AdditiveRoundKeysCount())
	for i := range out {
		out[i] = SampleFieldElement[E, PE](lfsr, bits)
	}
	return out
}
