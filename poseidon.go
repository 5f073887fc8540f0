// Package poseidon254 hashes BN254 scalar field elements natively with the
// Poseidon permutation (x^5 S-box, Cauchy MDS matrix, Grain LFSR round
// constants, secure round numbers for 128 bits).
//
// The same permutation is available as a gnark gadget in
// gnark/poseidon254 and over emulated BN254 elements in
// gnark/emulated/poseidon254; all three agree on every output.
package poseidon254

import (
	"fmt"
	"math/big"
	"sync"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"

	"github.com/vocdoni/poseidon254/internal/params"
	"github.com/vocdoni/poseidon254/permutation"
	"github.com/vocdoni/poseidon254/poseidon"
)

const (
	maxArity           = 7
	MaxMultiHashInputs = 256
	// SpongeArity is the arity of the permutation driven by SpongeHash.
	SpongeArity = 2
)

type (
	// Permutation is the native BN254 Poseidon permutation.
	Permutation = poseidon.NativePermutation[fr.Element, *fr.Element]
	// Hasher is a native BN254 Poseidon hasher.
	Hasher = poseidon.NativeHasher[fr.Element, *fr.Element]
)

var (
	native permutation.Native

	hashersMu sync.Mutex
	hashers   = map[int]*Hasher{}
)

// NewPermutation returns the permutation for arity. With compressed set it
// evaluates the preprocessed round constants; the output is identical.
func NewPermutation(arity int, compressed bool) (*Permutation, error) {
	p, err := params.ForArity(arity)
	if err != nil {
		return nil, err
	}
	spec := poseidon.NewNativeSpec[fr.Element](p.Constants())
	if compressed {
		return poseidon.NewCompressedPermutation[fr.Element, fr.Element, permutation.Native](spec, p.OptimizedArc, p.MDS), nil
	}
	return poseidon.NewPermutation[fr.Element, fr.Element, permutation.Native](spec, p.Arc, p.MDS), nil
}

// NewHasher returns the hasher for arity tagged with 2^arity - 1.
// Hashers are cached and safe for concurrent use.
func NewHasher(arity int) (*Hasher, error) {
	hashersMu.Lock()
	defer hashersMu.Unlock()
	if h, ok := hashers[arity]; ok {
		return h, nil
	}
	perm, err := NewPermutation(arity, true)
	if err != nil {
		return nil, err
	}
	h := poseidon.HasherFromPermutation[fr.Element, fr.Element, permutation.Native](perm, poseidon.TwoPowerMinusOne[fr.Element, *fr.Element]{})
	hashers[arity] = h
	return h, nil
}

// Hash returns the Poseidon hash of 1 to 16 inputs, using the permutation of
// width len(inputs)+1.
func Hash(inputs ...fr.Element) (fr.Element, error) {
	if len(inputs) < 1 {
		return fr.Element{}, fmt.Errorf("poseidon254: need at least 1 input")
	}
	h, err := NewHasher(len(inputs))
	if err != nil {
		return fr.Element{}, err
	}
	return h.Hash(native, inputs), nil
}

// HashWithTag is Hash with an explicit domain tag in place of the default
// one.
func HashWithTag(tag fr.Element, inputs ...fr.Element) (fr.Element, error) {
	if len(inputs) < 1 {
		return fr.Element{}, fmt.Errorf("poseidon254: need at least 1 input")
	}
	h, err := NewHasher(len(inputs))
	if err != nil {
		return fr.Element{}, err
	}
	tagged := poseidon.NewHasher[fr.Element, fr.Element, permutation.Native](h.Permutation(), h.Arity(), tag)
	return tagged.Hash(native, inputs), nil
}

// DomainFromLEBytes reads data as a little-endian integer reduced modulo the
// field order.
func DomainFromLEBytes(data []byte) fr.Element {
	reversed := make([]byte, len(data))
	for i := range data {
		reversed[len(data)-1-i] = data[i]
	}
	bi := new(big.Int).SetBytes(reversed)
	var out fr.Element
	out.SetBigInt(bi)
	return out
}

// MultiHash hashes an arbitrary-length list of field elements by chunking with the highest
// default arity (7) and hashing the chunk digests again until one remains.
// Supports up to MaxMultiHashInputs inputs.
func MultiHash(inputs ...fr.Element) (fr.Element, error) {
	if len(inputs) == 0 {
		return fr.Element{}, fmt.Errorf("poseidon254: need at least 1 input")
	}
	if len(inputs) > MaxMultiHashInputs {
		return fr.Element{}, fmt.Errorf("poseidon254: too many inputs (%d > %d)", len(inputs), MaxMultiHashInputs)
	}

	current := make([]fr.Element, len(inputs))
	copy(current, inputs)

	for len(current) > maxArity {
		next := make([]fr.Element, 0, (len(current)+maxArity-1)/maxArity)
		for i := 0; i < len(current); i += maxArity {
			end := min(i+maxArity, len(current))
			h, err := Hash(current[i:end]...)
			if err != nil {
				return fr.Element{}, err
			}
			next = append(next, h)
		}
		current = next
	}

	return Hash(current...)
}

// SpongeHash absorbs any number of inputs into a width-3 sponge and squeezes
// outputs elements. The capacity is tagged with the input and output
// lengths, so inputs of different lengths never collide by padding.
func SpongeHash(inputs []fr.Element, outputs int) ([]fr.Element, error) {
	if outputs < 1 {
		return nil, fmt.Errorf("poseidon254: need at least 1 output")
	}
	h, err := NewHasher(SpongeArity)
	if err != nil {
		return nil, err
	}
	tag := poseidon.ConstantLength[fr.Element, *fr.Element]{
		Length:  uint64(len(inputs)),
		Outputs: uint64(outputs),
	}.DomainTag(SpongeArity + 1)
	return poseidon.SpongeHash[fr.Element, fr.Element, permutation.Native](h.Permutation(), native, tag, inputs, outputs), nil
}
