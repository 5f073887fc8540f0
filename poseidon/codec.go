package poseidon

import (
	"errors"
	"fmt"
	"io"

	"github.com/vocdoni/poseidon254/field"
)

// ErrInvalidEncoding reports malformed permutation or hasher bytes.
var ErrInvalidEncoding = errors.New("poseidon: invalid encoding")

// DecodeError is returned when decoding fails. It is recoverable: the
// caller may reject the input and try another source.
type DecodeError struct {
	Op  string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("poseidon: decode %s: %v", e.Op, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// ElementCodec encodes parameter elements with a fixed byte layout.
type ElementCodec[P any] interface {
	EncodeElement(w io.Writer, p P) error
	DecodeElement(r io.Reader) (P, error)
}

// NativeCodec encodes gnark-crypto elements as canonical big-endian bytes
// of the field's byte length.
type NativeCodec[E any, PE field.Element[E]] struct{}

func (NativeCodec[E, PE]) EncodeElement(w io.Writer, p E) error {
	_, err := w.Write(PE(&p).Marshal())
	return err
}

func (NativeCodec[E, PE]) DecodeElement(r io.Reader) (E, error) {
	var e E
	buf := make([]byte, field.ByteLen[E, PE]())
	if _, err := io.ReadFull(r, buf); err != nil {
		return e, err
	}
	if err := PE(&e).SetBytesCanonical(buf); err != nil {
		return e, fmt.Errorf("%w: %w", ErrInvalidEncoding, err)
	}
	return e, nil
}

// Encode writes the layout byte, the round keys and the MDS matrix.
func (p *Permutation[F, P, C, S]) Encode(w io.Writer, codec ElementCodec[P]) error {
	if _, err := w.Write([]byte{byte(p.layout)}); err != nil {
		return err
	}
	for _, k := range p.keys {
		if err := codec.EncodeElement(w, k); err != nil {
			return err
		}
	}
	for _, m := range p.mds {
		if err := codec.EncodeElement(w, m); err != nil {
			return err
		}
	}
	return nil
}

// DecodePermutation reads a permutation written by Encode. The element
// counts follow from spec's constants and the layout byte.
func DecodePermutation[F, P, C any, S Specification[F, P, C]](r io.Reader, spec S, codec ElementCodec[P]) (*Permutation[F, P, C, S], error) {
	var hdr [1]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		return nil, &DecodeError{Op: "layout", Err: err}
	}
	layout := Layout(hdr[0])
	c := spec.Constants()
	var nkeys int
	switch layout {
	case StandardLayout:
		nkeys = c.AdditiveRoundKeysCount()
	case CompressedLayout:
		nkeys = c.CompressedRoundKeysCount()
	default:
		return nil, &DecodeError{Op: "layout", Err: fmt.Errorf("%w: unknown %s", ErrInvalidEncoding, layout)}
	}
	keys, err := decodeElements(r, codec, nkeys)
	if err != nil {
		return nil, &DecodeError{Op: "round keys", Err: err}
	}
	mds, err := decodeElements(r, codec, c.MDSMatrixSize())
	if err != nil {
		return nil, &DecodeError{Op: "mds matrix", Err: err}
	}
	return newPermutationUnchecked[F, P, C](spec, layout, keys, mds), nil
}

func decodeElements[P any](r io.Reader, codec ElementCodec[P], n int) ([]P, error) {
	out := make([]P, n)
	for i := range out {
		e, err := codec.DecodeElement(r)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		out[i] = e
	}
	return out, nil
}

// Encode writes the permutation followed by the domain tag.
func (h *Hasher[F, P, C, S]) Encode(w io.Writer, codec ElementCodec[P]) error {
	if err := h.perm.Encode(w, codec); err != nil {
		return err
	}
	return codec.EncodeElement(w, h.tag)
}

// DecodeHasher reads a hasher written by Encode and rebuilds it through
// NewHasher, so an arity that does not match the decoded width panics just
// like at construction.
func DecodeHasher[F, P, C any, S Specification[F, P, C]](r io.Reader, spec S, arity int, codec ElementCodec[P]) (*Hasher[F, P, C, S], error) {
	perm, err := DecodePermutation[F, P, C](r, spec, codec)
	if err != nil {
		return nil, err
	}
	tag, err := codec.DecodeElement(r)
	if err != nil {
		return nil, &DecodeError{Op: "domain tag", Err: err}
	}
	return NewHasher[F, P, C](perm, arity, tag), nil
}
