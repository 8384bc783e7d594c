package fields

import (
	"fmt"
	"reflect"

	"github.com/signadot/datafields/value"
)

// Chars returns the codec for a fixed size byte array such as [8]byte.
// The array is written as a string of all its bytes, and decoding
// requires a string of exactly that many bytes. A null or absent slot
// fails with ErrMissingField.
//
// Chars panics if A is not an array of bytes.
func Chars[A any]() Codec[A] {
	t := reflect.TypeFor[A]()
	if t.Kind() != reflect.Array || t.Elem().Kind() != reflect.Uint8 {
		panic(fmt.Sprintf("fields.Chars: %s is not a byte array", t))
	}
	return charsCodec[A]{n: t.Len()}
}

type charsCodec[A any] struct {
	n int
}

func (c charsCodec[A]) EncodeValue(src *A, dst value.Value) {
	dst.SetString(string(reflect.ValueOf(src).Elem().Bytes()))
}

func (c charsCodec[A]) DecodeValue(src value.Value, dst *A, _ Policy) error {
	var s string
	if src.Kind() == value.NullKind {
		if c.n != 0 {
			return ErrMissingField
		}
	} else {
		var err error
		if s, err = src.AsString(); err != nil {
			return malformed(err)
		}
	}
	if len(s) != c.n {
		return fmt.Errorf("%w: got %d bytes, want %d", ErrSizeMismatch, len(s), c.n)
	}
	copy(reflect.ValueOf(dst).Elem().Bytes(), s)
	return nil
}
