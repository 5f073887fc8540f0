package poseidon254

import (
	"fmt"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/consensys/gnark/frontend"

	"github.com/vocdoni/poseidon254/poseidon"
)

const (
	maxArity           = 7
	MaxMultiHashInputs = 256
	spongeArity        = 2
)

// MultiHash hashes an arbitrary-length list of field elements by chunking with the highest default arity (7).
// Supports up to MaxMultiHashInputs inputs.
func MultiHash(api frontend.API, inputs ...frontend.Variable) (frontend.Variable, error) {
	if len(inputs) == 0 {
		var zero frontend.Variable
		return zero, fmt.Errorf("poseidon254: need at least 1 input")
	}
	if len(inputs) > MaxMultiHashInputs {
		var zero frontend.Variable
		return zero, fmt.Errorf("poseidon254: too many inputs (%d > %d)", len(inputs), MaxMultiHashInputs)
	}

	current := make([]frontend.Variable, len(inputs))
	copy(current, inputs)

	for len(current) > maxArity {
		next := make([]frontend.Variable, 0, (len(current)+maxArity-1)/maxArity)
		for i := 0; i < len(current); i += maxArity {
			end := min(i+maxArity, len(current))
			h, err := Hash(api, current[i:end]...)
			if err != nil {
				var zero frontend.Variable
				return zero, err
			}
			next = append(next, h)
		}
		current = next
	}

	return Hash(api, current...)
}

// SpongeHash absorbs inputs into a width-3 sponge and squeezes outputs
// elements, matching the native SpongeHash.
func SpongeHash(api frontend.API, inputs []frontend.Variable, outputs int) ([]frontend.Variable, error) {
	if outputs < 1 {
		return nil, fmt.Errorf("poseidon254: need at least 1 output")
	}
	perm, err := NewPermutation(spongeArity, true)
	if err != nil {
		return nil, err
	}
	tag := poseidon.ConstantLength[fr.Element, *fr.Element]{
		Length:  uint64(len(inputs)),
		Outputs: uint64(outputs),
	}.DomainTag(spongeArity + 1)
	return poseidon.SpongeHash[frontend.Variable, fr.Element, frontend.API](perm, api, tag, inputs, outputs), nil
}
