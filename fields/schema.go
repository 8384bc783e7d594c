package fields

import (
	"fmt"
	"reflect"
	"slices"

	"github.com/signadot/datafields/value"
)

// Schema is the ordered field table of a struct type T. It is immutable
// once declared and safe for concurrent use.
//
// *Schema[T] is a Codec[T], so a declared struct can be a field of
// another.
type Schema[T any] struct {
	members []Member[T]
	names   []string
	index   map[string]int
}

var (
	_ Codec[struct{}]       = (*Schema[struct{}])(nil)
	_ Initializer[struct{}] = (*Schema[struct{}])(nil)
)

// Declare builds the schema of T from its fields in declaration order.
// Names must be non-empty and unique.
func Declare[T any](defs ...Member[T]) (*Schema[T], error) {
	s := &Schema[T]{
		members: make([]Member[T], 0, len(defs)),
		names:   make([]string, 0, len(defs)),
		index:   make(map[string]int, len(defs)),
	}
	for i, d := range defs {
		if d == nil {
			return nil, &DeclareError{Message: fmt.Sprintf("field %d is nil", i)}
		}
		name := d.name()
		if err := d.check(); err != nil {
			return nil, &DeclareError{Field: name, Message: err.Error(), Err: err}
		}
		if j, dup := s.index[name]; dup {
			return nil, &DeclareError{
				Field:   name,
				Message: fmt.Sprintf("fields %d and %d share a name", j, i),
				Err:     ErrDuplicateField,
			}
		}
		s.index[name] = len(s.members)
		s.names = append(s.names, name)
		s.members = append(s.members, d)
	}
	return s, nil
}

// MustDeclare is like Declare but panics on error. It is meant for
// package level variables, so bad declarations fail at startup.
func MustDeclare[T any](defs ...Member[T]) *Schema[T] {
	s, err := Declare(defs...)
	if err != nil {
		panic(err)
	}
	return s
}

// New returns a T with every declared field set to its default.
func (s *Schema[T]) New() *T {
	t := new(T)
	s.Init(t)
	return t
}

// Init sets every declared field of t to its default.
func (s *Schema[T]) Init(t *T) {
	for _, m := range s.members {
		m.init(t)
	}
}

// MemberIndex returns the declaration position of name, or MemberCount()
// when no field has that name.
func (s *Schema[T]) MemberIndex(name string) int {
	if i, ok := s.index[name]; ok {
		return i
	}
	return len(s.members)
}

// MemberNames returns the field names in declaration order.
func (s *Schema[T]) MemberNames() []string {
	return slices.Clone(s.names)
}

func (s *Schema[T]) MemberCount() int {
	return len(s.members)
}

func (s *Schema[T]) HasMember(name string) bool {
	return s.MemberIndex(name) < s.MemberCount()
}

// MemberValues returns pointers to the fields of t in declaration order.
// Element i is a *F for the type F of field i; writes through it are
// writes to t.
func (s *Schema[T]) MemberValues(t *T) []any {
	res := make([]any, len(s.members))
	for i, m := range s.members {
		res[i] = m.ref(t)
	}
	return res
}

// Equal reports whether a and b hold deeply equal values in every
// declared field. Undeclared fields are ignored.
func (s *Schema[T]) Equal(a, b *T) bool {
	for _, m := range s.members {
		if !reflect.DeepEqual(m.ref(a), m.ref(b)) {
			return false
		}
	}
	return true
}

// Ref returns a typed pointer to the field called name in t. ok is false
// when there is no such field or it is not of type F.
func Ref[F, T any](s *Schema[T], t *T, name string) (p *F, ok bool) {
	i := s.MemberIndex(name)
	if i == s.MemberCount() {
		return nil, false
	}
	p, ok = s.members[i].ref(t).(*F)
	return p, ok
}

// Encode writes each declared field of t under its name in dst, making
// dst an object if it is not one. Other entries of dst are kept.
func (s *Schema[T]) Encode(t *T, dst value.Value) {
	s.EncodeValue(t, dst)
}

func (s *Schema[T]) EncodeValue(src *T, dst value.Value) {
	if dst.Kind() != value.ObjectKind {
		dst.SetObject()
	}
	for _, m := range s.members {
		m.encode(src, dst.Field(m.name()))
	}
}

// DecodeStrict reads every declared field of t from src. A field with no
// entry in src is decoded from null, so scalars and collections take their
// zero value while durations and fixed buffers fail with ErrMissingField.
func (s *Schema[T]) DecodeStrict(src value.Value, t *T) error {
	return s.Decode(src, t, Strict)
}

// DecodeLazy reads the declared fields of t that have an entry in src and
// leaves the others alone.
func (s *Schema[T]) DecodeLazy(src value.Value, t *T) error {
	return s.Decode(src, t, Lazy)
}

// Decode reads t from src under policy p. The first failure stops the
// decode and is returned as a *DecodeError; fields decoded before it keep
// their new values.
func (s *Schema[T]) Decode(src value.Value, t *T, p Policy) error {
	return decodeErr(s.DecodeValue(src, t, p))
}

// DecodeValue reads dst from src under p. A null src has no entries.
func (s *Schema[T]) DecodeValue(src value.Value, dst *T, p Policy) error {
	if k := src.Kind(); k != value.ObjectKind && k != value.NullKind {
		return kindMismatch(value.ObjectKind, src)
	}
	for _, m := range s.members {
		name := m.name()
		if p == Lazy && !src.Has(name) {
			continue
		}
		if err := m.decode(src.Get(name), dst, p); err != nil {
			return atField(name, err)
		}
	}
	return nil
}
