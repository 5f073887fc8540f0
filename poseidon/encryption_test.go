package poseidon_test

import (
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/stretchr/testify/require"

	"github.com/vocdoni/poseidon254/field"
	"github.com/vocdoni/poseidon254/permutation"
	"github.com/vocdoni/poseidon254/poseidon"
)

type bnEncryption = poseidon.Encryption[fr.Element, fr.Element, permutation.Native, bnSpec]

func newBNEncryption(t *testing.T, blocks int) (*bnPermutation, *poseidon.FixedEncryption[fr.Element, fr.Element, permutation.Native, bnSpec], *bnEncryption) {
	t.Helper()
	perm := newBNPermutation(t, poseidon.Constants{Width: 3, FullRounds: 8, PartialRounds: 55}, true)
	tag := field.FromUint64[fr.Element](11)
	setup := poseidon.NewFixedEncryption[fr.Element, fr.Element, permutation.Native](perm.Specification(), native, tag, blocks)
	return perm, setup, poseidon.NewEncryption[fr.Element, fr.Element, permutation.Native](perm, setup)
}

func equalElements(_ permutation.Native, a, b fr.Element) bool { return a.Equal(&b) }

func flatten(blocks []poseidon.PlaintextBlock[fr.Element, fr.Element, permutation.Native, bnSpec]) []fr.Element {
	var out []fr.Element
	for _, b := range blocks {
		out = append(out, b.Elements()...)
	}
	return out
}

func TestEncryptionRoundTrip(t *testing.T) {
	_, setup, enc := newBNEncryption(t, 3)
	key := elements(5, 6, 7)
	header := elements(100)
	msg := elements(1, 2, 3, 4, 5)

	pt, err := setup.Plaintext(native, msg)
	require.NoError(t, err)
	require.Len(t, pt, 3)

	ct := enc.Encrypt(native, key, header, pt)
	require.Len(t, ct.Message, 3)

	ok, decrypted := permutation.Open(enc, native, key, header, ct, equalElements)
	require.True(t, ok)
	require.Equal(t, append(msg, elements(0)...), flatten(decrypted))
}

func TestEncryptionFirstBlock(t *testing.T) {
	perm, setup, enc := newBNEncryption(t, 1)
	key := elements(5, 6)
	msg := elements(8, 9)
	pt, err := setup.Plaintext(native, msg)
	require.NoError(t, err)
	ct := enc.Encrypt(native, key, nil, pt)

	state := poseidon.NewState(3, field.FromUint64[fr.Element](11), key[0], key[1])
	perm.Permute(native, state)
	for i := range msg {
		var want fr.Element
		want.Add(&state[i+1], &msg[i])
		got := ct.Message[0].Elements()[i]
		require.True(t, want.Equal(&got), "position %d", i)
	}
	// The tag is position 1 after absorbing the message block.
	state[1], state[2] = ct.Message[0].Elements()[0], ct.Message[0].Elements()[1]
	perm.Permute(native, state)
	require.True(t, state[1].Equal(&ct.Tag))
}

func TestEncryptionDetectsTampering(t *testing.T) {
	_, setup, enc := newBNEncryption(t, 2)
	key := elements(1, 2)
	header := elements(3)
	pt, err := setup.Plaintext(native, elements(10, 20, 30, 40))
	require.NoError(t, err)
	ct := enc.Encrypt(native, key, header, pt)

	for block := range ct.Message {
		for pos := range 2 {
			elems := append([]fr.Element(nil), ct.Message[block].Elements()...)
			one := field.FromUint64[fr.Element](1)
			elems[pos].Add(&elems[pos], &one)

			tampered := ct
			tampered.Message = append(tampered.Message[:0:0], ct.Message...)
			tampered.Message[block] = poseidon.NewCiphertextBlock[fr.Element, fr.Element, permutation.Native](perm3Spec(), elems)
			ok, _ := permutation.Open(enc, native, key, header, tampered, equalElements)
			require.False(t, ok, "block %d position %d", block, pos)
		}
	}

	ok, _ := permutation.Open(enc, native, elements(1, 3), header, ct, equalElements)
	require.False(t, ok)
	ok, _ = permutation.Open(enc, native, key, elements(4), ct, equalElements)
	require.False(t, ok)

	forged := ct
	forged.Tag = field.FromUint64[fr.Element](0)
	ok, _ = permutation.Open(enc, native, key, header, forged, equalElements)
	require.False(t, ok)
}

func perm3Spec() bnSpec {
	return poseidon.NewNativeSpec[fr.Element](poseidon.Constants{Width: 3, FullRounds: 8, PartialRounds: 55})
}

func TestEncryptionSizes(t *testing.T) {
	perm, setup, _ := newBNEncryption(t, 2)
	require.Equal(t, 2, setup.Blocks())

	_, err := setup.Plaintext(native, elements(1, 2, 3, 4, 5))
	require.Error(t, err)
	pt, err := setup.Plaintext(native, nil)
	require.NoError(t, err)
	require.Len(t, pt, 2)

	require.Panics(t, func() {
		poseidon.NewPlaintextBlock[fr.Element, fr.Element, permutation.Native](perm3Spec(), elements(1))
	})
	require.Panics(t, func() {
		poseidon.NewCiphertextBlock[fr.Element, fr.Element, permutation.Native](perm3Spec(), elements(1, 2, 3))
	})
	require.Panics(t, func() {
		poseidon.NewFixedEncryption[fr.Element, fr.Element, permutation.Native](perm3Spec(), native, fr.Element{}, 0)
	})

	wide := poseidon.NewNativeSpec[fr.Element](poseidon.Constants{Width: 4, FullRounds: 8, PartialRounds: 56})
	other := poseidon.NewFixedEncryption[fr.Element, fr.Element, permutation.Native](wide, native, fr.Element{}, 1)
	require.Panics(t, func() {
		poseidon.NewEncryption[fr.Element, fr.Element, permutation.Native](perm, other)
	})
}
