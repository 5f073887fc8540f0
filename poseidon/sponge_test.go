package poseidon_test

import (
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/stretchr/testify/require"

	"github.com/vocdoni/poseidon254/permutation"
	"github.com/vocdoni/poseidon254/poseidon"
)

func TestSpongeHashMatchesManualAbsorb(t *testing.T) {
	perm := newBNPermutation(t, poseidon.SecureConstants(2), false)
	tag := poseidon.ConstantLength[fr.Element, *fr.Element]{Length: 3, Outputs: 2}.DomainTag(3)
	inputs := elements(5, 6, 7)

	got := poseidon.SpongeHash[fr.Element, fr.Element, permutation.Native](perm, native, tag, inputs, 2)
	require.Len(t, got, 2)

	state := poseidon.NewState(3, tag, inputs[0], inputs[1])
	perm.Permute(native, state)
	state[1].Add(&state[1], &inputs[2])
	perm.Permute(native, state)
	require.Equal(t, state[1], got[0])
	perm.Permute(native, state)
	require.Equal(t, state[1], got[1])
}

func TestSpongeAbsorbOrderSensitive(t *testing.T) {
	perm := newBNPermutation(t, poseidon.SecureConstants(1), true)
	tag := poseidon.ZeroTag[fr.Element, *fr.Element]{}.DomainTag(2)

	ab := poseidon.SpongeHash[fr.Element, fr.Element, permutation.Native](perm, native, tag, elements(1, 2), 1)
	ba := poseidon.SpongeHash[fr.Element, fr.Element, permutation.Native](perm, native, tag, elements(2, 1), 1)
	require.NotEqual(t, ab, ba)
	require.Equal(t, ab, poseidon.SpongeHash[fr.Element, fr.Element, permutation.Native](perm, native, tag, elements(1, 2), 1))
}

func TestSpongeEmptyInputPermutes(t *testing.T) {
	perm := newBNPermutation(t, poseidon.SecureConstants(2), false)
	tag := poseidon.ConstantLength[fr.Element, *fr.Element]{Length: 0, Outputs: 1}.DomainTag(3)
	got := poseidon.SpongeHash[fr.Element, fr.Element, permutation.Native](perm, native, tag, nil, 1)

	state := poseidon.NewState(3, tag, fr.Element{}, fr.Element{})
	perm.Permute(native, state)
	require.Equal(t, state[1], got[0])
	require.False(t, got[0].IsZero())
}

func TestSpongeOverPoseidonPermutation(t *testing.T) {
	perm := newBNPermutation(t, poseidon.SecureConstants(2), false)
	state := poseidon.ZeroState[fr.Element, fr.Element, permutation.Native](perm.Specification(), native)
	sponge := permutation.NewSponge[poseidon.State[fr.Element], permutation.Native](perm, state)

	blocks := poseidon.Blocks[fr.Element, fr.Element, permutation.Native](perm, elements(1, 2, 3, 4, 5))
	require.Len(t, blocks, 3)
	counts := permutation.AbsorbAll[poseidon.State[fr.Element], permutation.Native, int](sponge, native, blocks)
	require.Equal(t, []int{2, 2, 1}, counts)

	first := permutation.Read[poseidon.State[fr.Element], permutation.Native, fr.Element](sponge, native, poseidon.RateReader[fr.Element, permutation.Native]{})
	squeezed := permutation.Squeeze[poseidon.State[fr.Element], permutation.Native, fr.Element](sponge, native, poseidon.RateReader[fr.Element, permutation.Native]{})
	require.Equal(t, first, squeezed)
	next := permutation.Read[poseidon.State[fr.Element], permutation.Native, fr.Element](sponge, native, poseidon.RateReader[fr.Element, permutation.Native]{})
	require.NotEqual(t, first, next)
}
