package poseidon

import (
	"fmt"

	"github.com/vocdoni/poseidon254/permutation"
)

// BlockSpecification is a Specification that can also subtract state
// elements, which decryption needs.
type BlockSpecification[F, P, C any] interface {
	Specification[F, P, C]
	// Sub returns lhs - rhs.
	Sub(c C, lhs, rhs F) F
}

// SetupBlock is a rate-sized chunk of key or header material.
type SetupBlock[F, P, C any, S BlockSpecification[F, P, C]] struct {
	spec  S
	elems []F
}

// Write adds the block into the rate part of state.
func (b SetupBlock[F, P, C, S]) Write(c C, state State[F]) struct{} {
	for i, e := range b.elems {
		state[i+1] = b.spec.Add(c, state[i+1], e)
	}
	return struct{}{}
}

// PlaintextBlock holds Width-1 message elements.
type PlaintextBlock[F, P, C any, S BlockSpecification[F, P, C]] struct {
	spec  S
	elems []F
}

// NewPlaintextBlock returns a block over elems. It panics unless
// len(elems) is Width-1.
func NewPlaintextBlock[F, P, C any, S BlockSpecification[F, P, C]](spec S, elems []F) PlaintextBlock[F, P, C, S] {
	checkBlock(spec.Constants(), len(elems))
	return PlaintextBlock[F, P, C, S]{spec: spec, elems: elems}
}

// Elements returns the block elements.
func (b PlaintextBlock[F, P, C, S]) Elements() []F { return b.elems }

// Write adds the block into the rate and returns the rate as the
// ciphertext block.
func (b PlaintextBlock[F, P, C, S]) Write(c C, state State[F]) CiphertextBlock[F, P, C, S] {
	out := make([]F, len(b.elems))
	for i, e := range b.elems {
		state[i+1] = b.spec.Add(c, state[i+1], e)
		out[i] = state[i+1]
	}
	return CiphertextBlock[F, P, C, S]{spec: b.spec, elems: out}
}

// CiphertextBlock holds Width-1 encrypted elements.
type CiphertextBlock[F, P, C any, S BlockSpecification[F, P, C]] struct {
	spec  S
	elems []F
}

// NewCiphertextBlock returns a block over elems. It panics unless
// len(elems) is Width-1.
func NewCiphertextBlock[F, P, C any, S BlockSpecification[F, P, C]](spec S, elems []F) CiphertextBlock[F, P, C, S] {
	checkBlock(spec.Constants(), len(elems))
	return CiphertextBlock[F, P, C, S]{spec: spec, elems: elems}
}

// Elements returns the block elements.
func (b CiphertextBlock[F, P, C, S]) Elements() []F { return b.elems }

// Write recovers the plaintext as ciphertext - rate and replaces the rate
// with the ciphertext, leaving the state as encryption did.
func (b CiphertextBlock[F, P, C, S]) Write(c C, state State[F]) PlaintextBlock[F, P, C, S] {
	out := make([]F, len(b.elems))
	for i, e := range b.elems {
		out[i] = b.spec.Sub(c, e, state[i+1])
		state[i+1] = e
	}
	return PlaintextBlock[F, P, C, S]{spec: b.spec, elems: out}
}

func checkBlock(c Constants, n int) {
	if n != c.Width-1 {
		panic(fmt.Sprintf("poseidon: block has %d elements, expected %d", n, c.Width-1))
	}
}

// FixedEncryption configures duplex encryption of messages with a fixed
// number of blocks. Key and header are absorbed in rate-sized chunks, the
// last one zero padded; the tag is read from state position 1.
type FixedEncryption[F, P, C any, S BlockSpecification[F, P, C]] struct {
	spec    S
	initial State[F]
	blocks  int
}

// NewFixedEncryption returns a configuration whose initial state is
// [tag, 0, ..., 0] for messages of exactly blocks blocks. It panics if
// blocks is not positive.
func NewFixedEncryption[F, P, C any, S BlockSpecification[F, P, C]](spec S, c C, tag P, blocks int) *FixedEncryption[F, P, C, S] {
	if blocks < 1 {
		panic(fmt.Sprintf("poseidon: encryption needs at least one block, got %d", blocks))
	}
	initial := ZeroState[F, P, C](spec, c)
	initial[0] = spec.FromParameter(c, tag)
	return &FixedEncryption[F, P, C, S]{spec: spec, initial: initial, blocks: blocks}
}

// Blocks returns the number of message blocks.
func (e *FixedEncryption[F, P, C, S]) Blocks() int { return e.blocks }

// Initialize returns a fresh copy of the initial state.
func (e *FixedEncryption[F, P, C, S]) Initialize(C) State[F] {
	return append(State[F](nil), e.initial...)
}

// SetupBlocks chunks key and then header into setup blocks.
func (e *FixedEncryption[F, P, C, S]) SetupBlocks(c C, key, header []F) []permutation.Writer[State[F], C, struct{}] {
	var out []permutation.Writer[State[F], C, struct{}]
	for _, chunk := range e.chunks(c, key) {
		out = append(out, SetupBlock[F, P, C, S]{spec: e.spec, elems: chunk})
	}
	for _, chunk := range e.chunks(c, header) {
		out = append(out, SetupBlock[F, P, C, S]{spec: e.spec, elems: chunk})
	}
	return out
}

// Plaintext splits message into Blocks() plaintext blocks, padding with
// zeros. It fails if the message does not fit.
func (e *FixedEncryption[F, P, C, S]) Plaintext(c C, message []F) ([]PlaintextBlock[F, P, C, S], error) {
	rate := e.spec.Constants().Width - 1
	if len(message) > e.blocks*rate {
		return nil, fmt.Errorf("poseidon: message of %d elements exceeds %d blocks of %d", len(message), e.blocks, rate)
	}
	chunks := e.chunks(c, message)
	for len(chunks) < e.blocks {
		chunks = append(chunks, e.padded(c, nil))
	}
	out := make([]PlaintextBlock[F, P, C, S], len(chunks))
	for i, chunk := range chunks {
		out[i] = PlaintextBlock[F, P, C, S]{spec: e.spec, elems: chunk}
	}
	return out, nil
}

func (e *FixedEncryption[F, P, C, S]) chunks(c C, elems []F) [][]F {
	rate := e.spec.Constants().Width - 1
	var out [][]F
	for i := 0; i < len(elems); i += rate {
		out = append(out, e.padded(c, elems[i:min(i+rate, len(elems))]))
	}
	return out
}

func (e *FixedEncryption[F, P, C, S]) padded(c C, elems []F) []F {
	rate := e.spec.Constants().Width - 1
	out := make([]F, rate)
	n := copy(out, elems)
	for i := n; i < rate; i++ {
		out[i] = e.spec.Zero(c)
	}
	return out
}

// Encryption is a duplex-sponge authenticated encryption scheme over a
// Poseidon permutation.
type Encryption[F, P, C any, S BlockSpecification[F, P, C]] = permutation.Duplexer[
	State[F], C, []F, []F, PlaintextBlock[F, P, C, S], CiphertextBlock[F, P, C, S], F]

// EncryptionCiphertext is a ciphertext produced by Encryption.
type EncryptionCiphertext[F, P, C any, S BlockSpecification[F, P, C]] = permutation.Ciphertext[F, CiphertextBlock[F, P, C, S]]

// NewEncryption returns the duplex encryption scheme over perm configured
// by setup. It panics if setup was built for another width.
func NewEncryption[F, P, C any, S BlockSpecification[F, P, C]](perm *Permutation[F, P, C, S], setup *FixedEncryption[F, P, C, S]) *Encryption[F, P, C, S] {
	if len(setup.initial) != perm.Width() {
		panic(fmt.Sprintf("poseidon: encryption state has %d elements, expected width %d", len(setup.initial), perm.Width()))
	}
	return permutation.NewDuplexer[State[F], C, []F, []F, PlaintextBlock[F, P, C, S], CiphertextBlock[F, P, C, S], F](
		perm, setup, RateReader[F, C]{})
}
