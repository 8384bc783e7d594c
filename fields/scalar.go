package fields

import (
	"math"

	"github.com/signadot/datafields/value"
)

// Signed is the type set accepted by Int.
type Signed interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64
}

// Unsigned is the type set accepted by Uint.
type Unsigned interface {
	~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr
}

// Floating is the type set accepted by Float.
type Floating interface {
	~float32 | ~float64
}

// String and Bool read null as the zero value.
var (
	String Codec[string] = stringCodec{}
	Bool   Codec[bool]   = boolCodec{}
)

type stringCodec struct{}

func (stringCodec) EncodeValue(src *string, dst value.Value) {
	dst.SetString(*src)
}

func (stringCodec) DecodeValue(src value.Value, dst *string, _ Policy) error {
	if src.Kind() == value.NullKind {
		*dst = ""
		return nil
	}
	s, err := src.AsString()
	if err != nil {
		return malformed(err)
	}
	*dst = s
	return nil
}

type boolCodec struct{}

func (boolCodec) EncodeValue(src *bool, dst value.Value) {
	dst.SetBool(*src)
}

func (boolCodec) DecodeValue(src value.Value, dst *bool, _ Policy) error {
	if src.Kind() == value.NullKind {
		*dst = false
		return nil
	}
	b, err := src.AsBool()
	if err != nil {
		return malformed(err)
	}
	*dst = b
	return nil
}

// Int returns the codec for a signed integer type. Numbers that do not fit
// I are malformed.
func Int[I Signed]() Codec[I] {
	return intCodec[I]{}
}

type intCodec[I Signed] struct{}

func (intCodec[I]) EncodeValue(src *I, dst value.Value) {
	dst.SetInt(int64(*src))
}

func (intCodec[I]) DecodeValue(src value.Value, dst *I, _ Policy) error {
	if src.Kind() == value.NullKind {
		*dst = 0
		return nil
	}
	i, err := src.AsInt()
	if err != nil {
		return malformed(err)
	}
	v := I(i)
	if int64(v) != i {
		return malformedf("%d overflows %T", i, v)
	}
	*dst = v
	return nil
}

// Uint returns the codec for an unsigned integer type.
func Uint[U Unsigned]() Codec[U] {
	return uintCodec[U]{}
}

type uintCodec[U Unsigned] struct{}

func (uintCodec[U]) EncodeValue(src *U, dst value.Value) {
	dst.SetUint(uint64(*src))
}

func (uintCodec[U]) DecodeValue(src value.Value, dst *U, _ Policy) error {
	if src.Kind() == value.NullKind {
		*dst = 0
		return nil
	}
	u, err := src.AsUint()
	if err != nil {
		return malformed(err)
	}
	v := U(u)
	if uint64(v) != u {
		return malformedf("%d overflows %T", u, v)
	}
	*dst = v
	return nil
}

// Float returns the codec for a floating point type.
func Float[F Floating]() Codec[F] {
	return floatCodec[F]{}
}

type floatCodec[F Floating] struct{}

func (floatCodec[F]) EncodeValue(src *F, dst value.Value) {
	dst.SetFloat(float64(*src))
}

func (floatCodec[F]) DecodeValue(src value.Value, dst *F, _ Policy) error {
	if src.Kind() == value.NullKind {
		*dst = 0
		return nil
	}
	f, err := src.AsFloat()
	if err != nil {
		return malformed(err)
	}
	v := F(f)
	if math.IsInf(float64(v), 0) && !math.IsInf(f, 0) {
		return malformedf("%v overflows %T", f, v)
	}
	*dst = v
	return nil
}
