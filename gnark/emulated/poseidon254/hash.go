package poseidon254

import (
	"fmt"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/std/math/emulated"

	"github.com/vocdoni/poseidon254/internal/params"
	"github.com/vocdoni/poseidon254/poseidon"
)

const (
	maxArity           = 7
	MaxMultiHashInputs = 256
	spongeArity        = 2
)

type (
	// Permutation is the BN254 Poseidon permutation over emulated elements.
	Permutation = poseidon.Permutation[*Element, fr.Element, *emulated.Field[FrParams], Spec]
	// Hasher is a BN254 Poseidon hasher over emulated elements.
	Hasher = poseidon.Hasher[*Element, fr.Element, *emulated.Field[FrParams], Spec]
)

// NewPermutation builds the emulated permutation for arity.
func NewPermutation(arity int, compressed bool) (*Permutation, error) {
	p, err := params.ForArity(arity)
	if err != nil {
		return nil, err
	}
	spec := NewSpec(p.Constants())
	if compressed {
		return poseidon.NewCompressedPermutation[*Element, fr.Element, *emulated.Field[FrParams]](spec, p.OptimizedArc, p.MDS), nil
	}
	return poseidon.NewPermutation[*Element, fr.Element, *emulated.Field[FrParams]](spec, p.Arc, p.MDS), nil
}

// NewHasher returns the emulated hasher for arity tagged with 2^arity - 1.
func NewHasher(arity int) (*Hasher, error) {
	perm, err := NewPermutation(arity, true)
	if err != nil {
		return nil, err
	}
	return poseidon.HasherFromPermutation[*Element, fr.Element, *emulated.Field[FrParams]](perm, poseidon.TwoPowerMinusOne[fr.Element, *fr.Element]{}), nil
}

// Hash computes the Poseidon hash over emulated BN254 field elements.
func Hash(api frontend.API, inputs ...Element) (Element, error) {
	var zero Element
	if len(inputs) < 1 {
		return zero, fmt.Errorf("poseidon254: need at least 1 input")
	}
	h, err := NewHasher(len(inputs))
	if err != nil {
		return zero, err
	}
	field, err := emulated.NewField[FrParams](api)
	if err != nil {
		return zero, err
	}

	out := h.Hash(field, pointers(field, inputs))
	// Ensure canonical output.
	return *field.Reduce(out), nil
}

// MultiHash hashes an arbitrary number of emulated elements (up to MaxMultiHashInputs) by chunking with the highest default arity (7).
func MultiHash(api frontend.API, inputs ...Element) (Element, error) {
	var zero Element
	if len(inputs) == 0 {
		return zero, fmt.Errorf("poseidon254: need at least 1 input")
	}
	if len(inputs) > MaxMultiHashInputs {
		return zero, fmt.Errorf("poseidon254: too many inputs (%d > %d)", len(inputs), MaxMultiHashInputs)
	}

	current := make([]Element, len(inputs))
	copy(current, inputs)

	for len(current) > maxArity {
		next := make([]Element, 0, (len(current)+maxArity-1)/maxArity)
		for i := 0; i < len(current); i += maxArity {
			end := min(i+maxArity, len(current))
			h, err := Hash(api, current[i:end]...)
			if err != nil {
				return zero, err
			}
			next = append(next, h)
		}
		current = next
	}

	return Hash(api, current...)
}

// SpongeHash absorbs inputs into a width-3 sponge over emulated elements and
// squeezes outputs elements, matching the native SpongeHash.
func SpongeHash(api frontend.API, inputs []Element, outputs int) ([]Element, error) {
	if outputs < 1 {
		return nil, fmt.Errorf("poseidon254: need at least 1 output")
	}
	perm, err := NewPermutation(spongeArity, true)
	if err != nil {
		return nil, err
	}
	field, err := emulated.NewField[FrParams](api)
	if err != nil {
		return nil, err
	}
	tag := poseidon.ConstantLength[fr.Element, *fr.Element]{
		Length:  uint64(len(inputs)),
		Outputs: uint64(outputs),
	}.DomainTag(spongeArity + 1)

	squeezed := poseidon.SpongeHash[*Element, fr.Element, *emulated.Field[FrParams]](perm, field, tag, pointers(field, inputs), outputs)
	out := make([]Element, len(squeezed))
	for i, e := range squeezed {
		out[i] = *field.Reduce(e)
	}
	return out, nil
}

func pointers(field *emulated.Field[FrParams], in []Element) []*Element {
	out := make([]*Element, len(in))
	for i := range in {
		out[i] = field.NewElement(in[i])
	}
	return out
}
