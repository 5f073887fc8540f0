package poseidon254

import (
	"fmt"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/consensys/gnark/frontend"

	"github.com/vocdoni/poseidon254/permutation"
	"github.com/vocdoni/poseidon254/poseidon"
)

type (
	circuitSpec       = Spec[fr.Element, *fr.Element]
	circuitEncryption = poseidon.Encryption[frontend.Variable, fr.Element, frontend.API, circuitSpec]
	circuitSetup      = poseidon.FixedEncryption[frontend.Variable, fr.Element, frontend.API, circuitSpec]
)

func newEncryption(api frontend.API, blocks int) (circuitSpec, *circuitSetup, *circuitEncryption, error) {
	perm, err := NewPermutation(spongeArity, true)
	if err != nil {
		return circuitSpec{}, nil, nil, err
	}
	tag := poseidon.EncryptionTag[fr.Element, *fr.Element]{Blocks: uint64(blocks)}.DomainTag(spongeArity + 1)
	setup := poseidon.NewFixedEncryption[frontend.Variable, fr.Element, frontend.API](perm.Specification(), api, tag, blocks)
	return perm.Specification(), setup, poseidon.NewEncryption[frontend.Variable, fr.Element, frontend.API](perm, setup), nil
}

// Encrypt is the circuit version of the native Encrypt: same tag, same
// zero padded ciphertext.
func Encrypt(api frontend.API, key, header, message []frontend.Variable) (tag frontend.Variable, ciphertext []frontend.Variable, err error) {
	blocks := max((len(message)+spongeArity-1)/spongeArity, 1)
	_, setup, enc, err := newEncryption(api, blocks)
	if err != nil {
		return nil, nil, err
	}
	pt, err := setup.Plaintext(api, message)
	if err != nil {
		return nil, nil, err
	}
	ct := enc.Encrypt(api, key, header, pt)
	for _, b := range ct.Message {
		ciphertext = append(ciphertext, b.Elements()...)
	}
	return ct.Tag, ciphertext, nil
}

// Decrypt recovers the zero padded plaintext. ok is 1 if tag authenticates
// key, header and ciphertext and 0 otherwise; the caller decides whether to
// assert it.
func Decrypt(api frontend.API, key, header []frontend.Variable, tag frontend.Variable, ciphertext []frontend.Variable) (plaintext []frontend.Variable, ok frontend.Variable, err error) {
	if len(ciphertext) == 0 || len(ciphertext)%spongeArity != 0 {
		return nil, nil, fmt.Errorf("poseidon254: ciphertext length %d is not a positive multiple of %d", len(ciphertext), spongeArity)
	}
	spec, _, enc, err := newEncryption(api, len(ciphertext)/spongeArity)
	if err != nil {
		return nil, nil, err
	}
	blocks := make([]poseidon.CiphertextBlock[frontend.Variable, fr.Element, frontend.API, circuitSpec], 0, len(ciphertext)/spongeArity)
	for i := 0; i < len(ciphertext); i += spongeArity {
		blocks = append(blocks, poseidon.NewCiphertextBlock[frontend.Variable, fr.Element, frontend.API](spec, ciphertext[i:i+spongeArity]))
	}
	ok, pt := permutation.Open(enc, api, key, header,
		poseidon.EncryptionCiphertext[frontend.Variable, fr.Element, frontend.API, circuitSpec]{Tag: tag, Message: blocks},
		func(api frontend.API, a, b frontend.Variable) frontend.Variable { return api.IsZero(api.Sub(a, b)) })
	for _, b := range pt {
		plaintext = append(plaintext, b.Elements()...)
	}
	return plaintext, ok, nil
}
