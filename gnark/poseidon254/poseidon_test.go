package poseidon254_test

import (
	"testing"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/test"

	"github.com/vocdoni/poseidon254"
	gposeidon "github.com/vocdoni/poseidon254/gnark/poseidon254"
	"github.com/vocdoni/poseidon254/permutation"
	"github.com/vocdoni/poseidon254/poseidon"
)

// untruncatedCircuit checks the whole permuted state of a width-3 hash in
// both layouts.
type untruncatedCircuit struct {
	Inputs   [2]frontend.Variable
	Expected [3]frontend.Variable `gnark:",public"`
}

func (c *untruncatedCircuit) Define(api frontend.API) error {
	for _, compressed := range []bool{false, true} {
		h, err := gposeidon.NewHasher(2, compressed)
		if err != nil {
			return err
		}
		out := h.HashUntruncated(api, c.Inputs[:])
		for i := range out {
			api.AssertIsEqual(out[i], c.Expected[i])
		}
	}
	return nil
}

func TestHashUntruncatedMatchesNative(t *testing.T) {
	assert := test.NewAssert(t)

	h, err := poseidon254.NewHasher(2)
	assert.NoError(err)
	var a, b fr.Element
	a.SetUint64(11)
	b.SetUint64(13)
	state := h.HashUntruncated(permutation.Native{}, []fr.Element{a, b})

	witness := untruncatedCircuit{
		Inputs:   [2]frontend.Variable{a, b},
		Expected: [3]frontend.Variable{state[0], state[1], state[2]},
	}
	assert.NoError(test.IsSolved(&untruncatedCircuit{}, &witness, ecc.BN254.ScalarField()))
}

// permuteCircuit applies the bare permutation to a full state.
type permuteCircuit struct {
	State    [4]frontend.Variable
	Expected [4]frontend.Variable `gnark:",public"`
}

func (c *permuteCircuit) Define(api frontend.API) error {
	perm, err := gposeidon.NewPermutation(3, true)
	if err != nil {
		return err
	}
	state := poseidon.NewState(4, c.State[:]...)
	perm.Permute(api, state)
	for i := range state {
		api.AssertIsEqual(state[i], c.Expected[i])
	}
	return nil
}

func TestPermuteMatchesNative(t *testing.T) {
	assert := test.NewAssert(t)

	perm, err := poseidon254.NewPermutation(3, false)
	assert.NoError(err)
	in := make([]fr.Element, 4)
	for i := range in {
		in[i].SetUint64(uint64(100 + i))
	}
	var witness permuteCircuit
	for i := range in {
		witness.State[i] = in[i]
	}
	out := poseidon.NewState(4, in...)
	perm.Permute(permutation.Native{}, out)
	for i := range out {
		witness.Expected[i] = out[i]
	}
	assert.NoError(test.IsSolved(&permuteCircuit{}, &witness, ecc.BN254.ScalarField()))
}

type taggedCircuit struct {
	Inputs   [3]frontend.Variable
	Expected frontend.Variable `gnark:",public"`
	tag      fr.Element
}

func (c *taggedCircuit) Define(api frontend.API) error {
	out, err := gposeidon.HashWithTag(api, c.tag, c.Inputs[:]...)
	if err != nil {
		return err
	}
	api.AssertIsEqual(out, c.Expected)
	return nil
}

func TestHashWithTagMatchesNative(t *testing.T) {
	assert := test.NewAssert(t)

	tag := poseidon254.DomainFromLEBytes([]byte("poseidon254_test"))
	in := make([]fr.Element, 3)
	for i := range in {
		in[i].SetUint64(uint64(i + 1))
	}
	native, err := poseidon254.HashWithTag(tag, in...)
	assert.NoError(err)

	witness := taggedCircuit{
		Inputs:   [3]frontend.Variable{in[0], in[1], in[2]},
		Expected: native,
	}
	assert.NoError(test.IsSolved(&taggedCircuit{tag: tag}, &witness, ecc.BN254.ScalarField()))
}

type emptyCircuit struct {
	A frontend.Variable
}

func (c *emptyCircuit) Define(api frontend.API) error {
	if _, err := gposeidon.Hash(api); err == nil {
		panic("expected error for empty input")
	}
	if _, err := gposeidon.MultiHash(api); err == nil {
		panic("expected error for empty multihash")
	}
	if _, err := gposeidon.SpongeHash(api, []frontend.Variable{c.A}, 0); err == nil {
		panic("expected error for zero outputs")
	}
	api.AssertIsEqual(c.A, c.A)
	return nil
}

func TestGadgetInputErrors(t *testing.T) {
	assert := test.NewAssert(t)
	assert.NoError(test.IsSolved(&emptyCircuit{}, &emptyCircuit{A: 1}, ecc.BN254.ScalarField()))
}
