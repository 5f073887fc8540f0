package poseidon254

import (
	"errors"
	"fmt"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"

	"github.com/vocdoni/poseidon254/permutation"
	"github.com/vocdoni/poseidon254/poseidon"
)

// ErrAuthentication is returned by Decrypt when the tag does not match.
var ErrAuthentication = errors.New("poseidon254: authentication failed")

type (
	nativeSpec       = poseidon.NativeSpec[fr.Element, *fr.Element]
	nativeEncryption = poseidon.Encryption[fr.Element, fr.Element, permutation.Native, nativeSpec]
	nativeSetup      = poseidon.FixedEncryption[fr.Element, fr.Element, permutation.Native, nativeSpec]
)

// EncryptionRate is the number of elements per encrypted block.
const EncryptionRate = SpongeArity

func newEncryption(blocks int) (nativeSpec, *nativeSetup, *nativeEncryption, error) {
	perm, err := NewPermutation(SpongeArity, true)
	if err != nil {
		return nativeSpec{}, nil, nil, err
	}
	tag := poseidon.EncryptionTag[fr.Element, *fr.Element]{Blocks: uint64(blocks)}.DomainTag(SpongeArity + 1)
	setup := poseidon.NewFixedEncryption[fr.Element, fr.Element, permutation.Native](perm.Specification(), native, tag, blocks)
	return perm.Specification(), setup, poseidon.NewEncryption[fr.Element, fr.Element, permutation.Native](perm, setup), nil
}

// Encrypt encrypts message under key with a width-3 Poseidon duplex sponge.
// The header is authenticated but not encrypted. The ciphertext is the
// message zero padded to a multiple of EncryptionRate; an empty message
// still yields one block.
func Encrypt(key, header, message []fr.Element) (tag fr.Element, ciphertext []fr.Element, err error) {
	blocks := max((len(message)+EncryptionRate-1)/EncryptionRate, 1)
	_, setup, enc, err := newEncryption(blocks)
	if err != nil {
		return tag, nil, err
	}
	pt, err := setup.Plaintext(native, message)
	if err != nil {
		return tag, nil, err
	}
	ct := enc.Encrypt(native, key, header, pt)
	for _, b := range ct.Message {
		ciphertext = append(ciphertext, b.Elements()...)
	}
	return ct.Tag, ciphertext, nil
}

// Decrypt reverses Encrypt. It returns ErrAuthentication, and no plaintext,
// if key, header, tag or ciphertext were altered. The plaintext keeps the
// zero padding added by Encrypt.
func Decrypt(key, header []fr.Element, tag fr.Element, ciphertext []fr.Element) ([]fr.Element, error) {
	if len(ciphertext) == 0 || len(ciphertext)%EncryptionRate != 0 {
		return nil, fmt.Errorf("poseidon254: ciphertext length %d is not a positive multiple of %d", len(ciphertext), EncryptionRate)
	}
	spec, _, enc, err := newEncryption(len(ciphertext) / EncryptionRate)
	if err != nil {
		return nil, err
	}
	blocks := make([]poseidon.CiphertextBlock[fr.Element, fr.Element, permutation.Native, nativeSpec], 0, len(ciphertext)/EncryptionRate)
	for i := 0; i < len(ciphertext); i += EncryptionRate {
		blocks = append(blocks, poseidon.NewCiphertextBlock[fr.Element, fr.Element, permutation.Native](spec, ciphertext[i:i+EncryptionRate]))
	}
	ok, pt := permutation.Open(enc, native, key, header,
		poseidon.EncryptionCiphertext[fr.Element, fr.Element, permutation.Native, nativeSpec]{Tag: tag, Message: blocks},
		func(_ permutation.Native, a, b fr.Element) bool { return a.Equal(&b) })
	if !ok {
		return nil, ErrAuthentication
	}
	var out []fr.Element
	for _, b := range pt {
		out = append(out, b.Elements()...)
	}
	return out, nil
}
