package fields

import "github.com/signadot/datafields/value"

// Self returns the codec for a type whose pointer implements Object. New
// values start from SetDefaults when *F is also a Defaulter.
//
//	fields.Field("inner", func(o *Outer) *Inner { return &o.Inner }, fields.Self[Inner]())
func Self[F any, PF interface {
	*F
	Object
}]() Codec[F] {
	return selfCodec[F, PF]{}
}

type selfCodec[F any, PF interface {
	*F
	Object
}] struct{}

func (selfCodec[F, PF]) EncodeValue(src *F, dst value.Value) {
	PF(src).EncodeValue(dst)
}

func (selfCodec[F, PF]) DecodeValue(src value.Value, dst *F, p Policy) error {
	return PF(dst).DecodeValue(src, p)
}

func (selfCodec[F, PF]) Init(dst *F) {
	if d, ok := any(dst).(Defaulter); ok {
		d.SetDefaults()
	}
}
