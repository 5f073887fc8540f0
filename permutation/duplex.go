package permutation

// Setup prepares a duplex state: the initial value, then the blocks
// absorbed from the key and header before the message.
type Setup[D, C, K, H any] interface {
	Initialize(c C) D
	SetupBlocks(c C, key K, header H) []Writer[D, C, struct{}]
}

// Ciphertext is an encrypted message with its authentication tag.
type Ciphertext[T, CB any] struct {
	Tag     T
	Message []CB
}

// Duplexer is a duplex-sponge authenticated encryption scheme. Writing a
// plaintext block into the state yields the ciphertext block and writing a
// ciphertext block yields the plaintext block, so encryption and decryption
// are the same absorb loop. The tag is read from the final state.
//
// A Duplexer holds no mutable state and is safe for concurrent use.
type Duplexer[D, C, K, H any, PB Writer[D, C, CB], CB Writer[D, C, PB], T any] struct {
	perm  Permutation[D, C]
	setup Setup[D, C, K, H]
	tag   Reader[D, C, T]
}

// NewDuplexer returns a duplexer over perm.
func NewDuplexer[D, C, K, H any, PB Writer[D, C, CB], CB Writer[D, C, PB], T any](
	perm Permutation[D, C], setup Setup[D, C, K, H], tag Reader[D, C, T],
) *Duplexer[D, C, K, H, PB, CB, T] {
	return &Duplexer[D, C, K, H, PB, CB, T]{perm: perm, setup: setup, tag: tag}
}

func (d *Duplexer[D, C, K, H, PB, CB, T]) start(c C, key K, header H) *Sponge[D, C] {
	s := NewSponge(d.perm, d.setup.Initialize(c))
	AbsorbAll[D, C, struct{}](s, c, d.setup.SetupBlocks(c, key, header))
	return s
}

// Encrypt absorbs plaintext after the key and header and returns the
// ciphertext blocks with the tag.
func (d *Duplexer[D, C, K, H, PB, CB, T]) Encrypt(c C, key K, header H, plaintext []PB) Ciphertext[T, CB] {
	s := d.start(c, key, header)
	message := AbsorbAll[D, C, CB](s, c, plaintext)
	return Ciphertext[T, CB]{Tag: Read(s, c, d.tag), Message: message}
}

// Decrypt recovers the plaintext blocks and recomputes the tag. The caller
// compares it with the transmitted one; Open does both.
func (d *Duplexer[D, C, K, H, PB, CB, T]) Decrypt(c C, key K, header H, message []CB) (T, []PB) {
	s := d.start(c, key, header)
	plaintext := AbsorbAll[D, C, PB](s, c, message)
	return Read(s, c, d.tag), plaintext
}

// Open decrypts ct and checks its tag with verify, which receives the
// transmitted tag first. The verification type is backend specific: a bool
// natively, a circuit variable in a constraint system.
func Open[D, C, K, H any, PB Writer[D, C, CB], CB Writer[D, C, PB], T, V any](
	d *Duplexer[D, C, K, H, PB, CB, T], c C, key K, header H, ct Ciphertext[T, CB],
	verify func(c C, encryption, decryption T) V,
) (V, []PB) {
	tag, plaintext := d.Decrypt(c, key, header, ct.Message)
	return verify(c, ct.Tag, tag), plaintext
}
