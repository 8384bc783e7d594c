package fields

import "github.com/signadot/datafields/value"

// Codec moves one Go type to and from a value.Value.
//
// EncodeValue overwrites dst with the encoding of *src and never fails.
// DecodeValue reads src into *dst, passing p unchanged to any nested
// decode.
type Codec[F any] interface {
	EncodeValue(src *F, dst value.Value)
	DecodeValue(src value.Value, dst *F, p Policy) error
}

// Initializer is implemented by codecs that know the default value of
// their type. Collections and pointers use it to start new elements from
// their defaults instead of the zero value.
type Initializer[F any] interface {
	Init(dst *F)
}

// Object is implemented by pointers to types that encode themselves,
// typically through generated methods.
type Object interface {
	EncodeValue(dst value.Value)
	DecodeValue(src value.Value, p Policy) error
}

// Defaulter is implemented by pointers to types that can reset
// themselves to their declared defaults.
type Defaulter interface {
	SetDefaults()
}

// Encode writes *src to dst with c. It works on any variable, not only
// declared structs.
func Encode[F any](c Codec[F], src *F, dst value.Value) {
	c.EncodeValue(src, dst)
}

// DecodeStrict reads src into *dst with c, failing on any absent slot.
func DecodeStrict[F any](c Codec[F], src value.Value, dst *F) error {
	return decodeErr(c.DecodeValue(src, dst, Strict))
}

// DecodeLazy reads src into *dst with c, keeping the current value of
// anything with an absent slot.
func DecodeLazy[F any](c Codec[F], src value.Value, dst *F) error {
	return decodeErr(c.DecodeValue(src, dst, Lazy))
}

func initElem[F any](c Codec[F], dst *F) {
	if in, ok := c.(Initializer[F]); ok {
		in.Init(dst)
	}
}
