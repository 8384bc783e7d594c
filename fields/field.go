package fields

import (
	"errors"

	"github.com/signadot/datafields/value"
)

// Member is one declared field of T. The only implementation is *Def.
type Member[T any] interface {
	name() string
	check() error
	init(t *T)
	ref(t *T) any
	encode(t *T, dst value.Value)
	decode(src value.Value, t *T, p Policy) error
}

// Def declares a field of type F stored in a T.
type Def[T, F any] struct {
	fieldName string
	get       func(*T) *F
	codec     Codec[F]
	def       func() F
}

// Field declares a field called name, reached through get and encoded with
// c. The field defaults to the zero value of F, or to the defaults of
// the codec when it is an Initializer.
func Field[T, F any](name string, get func(*T) *F, c Codec[F]) *Def[T, F] {
	return &Def[T, F]{fieldName: name, get: get, codec: c}
}

// Default sets the value the field takes on construction.
func (d *Def[T, F]) Default(v F) *Def[T, F] {
	d.def = func() F { return v }
	return d
}

// DefaultFunc is like Default but calls f on every construction. Use it
// for slices and maps so instances do not share storage.
func (d *Def[T, F]) DefaultFunc(f func() F) *Def[T, F] {
	d.def = f
	return d
}

// Name returns the field name given to Field.
func (d *Def[T, F]) Name() string {
	return d.fieldName
}

func (d *Def[T, F]) name() string {
	return d.fieldName
}

func (d *Def[T, F]) check() error {
	switch {
	case d.fieldName == "":
		return errors.New("empty field name")
	case d.get == nil:
		return errors.New("nil accessor")
	case d.codec == nil:
		return errors.New("nil codec")
	}
	return nil
}

func (d *Def[T, F]) init(t *T) {
	p := d.get(t)
	if d.def != nil {
		*p = d.def()
		return
	}
	var zero F
	*p = zero
	initElem(d.codec, p)
}

func (d *Def[T, F]) ref(t *T) any {
	return d.get(t)
}

func (d *Def[T, F]) encode(t *T, dst value.Value) {
	d.codec.EncodeValue(d.get(t), dst)
}

func (d *Def[T, F]) decode(src value.Value, t *T, p Policy) error {
	return d.codec.DecodeValue(src, d.get(t), p)
}
