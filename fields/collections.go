package fields

import (
	"cmp"
	"fmt"
	"maps"
	"slices"

	"github.com/signadot/datafields/value"
)

// Slice returns the codec for []E. A nil slice is written as null and
// null reads back as nil.
//
// Decoding keeps existing elements as the starting point for the element
// at the same index, so a Lazy decode merges into them. Elements past the
// old length start from the element defaults.
func Slice[E any](elem Codec[E]) Codec[[]E] {
	return sliceCodec[E]{elem: elem}
}

type sliceCodec[E any] struct {
	elem Codec[E]
}

func (c sliceCodec[E]) EncodeValue(src *[]E, dst value.Value) {
	dst.SetNull()
	if *src == nil {
		return
	}
	dst.Resize(len(*src))
	for i := range *src {
		c.elem.EncodeValue(&(*src)[i], dst.Index(i))
	}
}

func (c sliceCodec[E]) DecodeValue(src value.Value, dst *[]E, p Policy) error {
	switch src.Kind() {
	case value.NullKind:
		*dst = nil
		return nil
	case value.ArrayKind:
	default:
		return kindMismatch(value.ArrayKind, src)
	}
	res := make([]E, src.Len())
	n := copy(res, *dst)
	for i := n; i < len(res); i++ {
		initElem(c.elem, &res[i])
	}
	for i := range res {
		if err := c.elem.DecodeValue(src.Index(i), &res[i], p); err != nil {
			return atIndex(i, err)
		}
	}
	*dst = res
	return nil
}

// Set returns the codec for a set held as map[E]struct{}. Sets are
// written as arrays in ascending order, so equal sets encode the same
// way. Decoding replaces the set.
func Set[E cmp.Ordered](elem Codec[E]) Codec[map[E]struct{}] {
	return setCodec[E]{elem: elem}
}

type setCodec[E cmp.Ordered] struct {
	elem Codec[E]
}

func (c setCodec[E]) EncodeValue(src *map[E]struct{}, dst value.Value) {
	dst.SetNull()
	if *src == nil {
		return
	}
	keys := slices.Sorted(maps.Keys(*src))
	dst.Resize(len(keys))
	for i := range keys {
		c.elem.EncodeValue(&keys[i], dst.Index(i))
	}
}

func (c setCodec[E]) DecodeValue(src value.Value, dst *map[E]struct{}, p Policy) error {
	switch src.Kind() {
	case value.NullKind:
		*dst = nil
		return nil
	case value.ArrayKind:
	default:
		return kindMismatch(value.ArrayKind, src)
	}
	n := src.Len()
	res := make(map[E]struct{}, n)
	for i := 0; i < n; i++ {
		var e E
		initElem(c.elem, &e)
		if err := c.elem.DecodeValue(src.Index(i), &e, p); err != nil {
			return atIndex(i, err)
		}
		res[e] = struct{}{}
	}
	*dst = res
	return nil
}

// Map returns the codec for map[string]V, written as an object with one
// entry per key in key order.
//
// Decoding builds a new map holding exactly the keys of the source. Each
// value starts from the old value under the same key, or from the element
// defaults for a new key.
func Map[V any](elem Codec[V]) Codec[map[string]V] {
	return mapCodec[V]{elem: elem}
}

type mapCodec[V any] struct {
	elem Codec[V]
}

func (c mapCodec[V]) EncodeValue(src *map[string]V, dst value.Value) {
	if *src == nil {
		dst.SetNull()
		return
	}
	dst.SetObject()
	for _, k := range slices.Sorted(maps.Keys(*src)) {
		v := (*src)[k]
		c.elem.EncodeValue(&v, dst.Field(k))
	}
}

func (c mapCodec[V]) DecodeValue(src value.Value, dst *map[string]V, p Policy) error {
	switch src.Kind() {
	case value.NullKind:
		*dst = nil
		return nil
	case value.ObjectKind:
	default:
		return kindMismatch(value.ObjectKind, src)
	}
	keys := src.Keys()
	res := make(map[string]V, len(keys))
	for _, k := range keys {
		v, ok := (*dst)[k]
		if !ok {
			initElem(c.elem, &v)
		}
		if err := c.elem.DecodeValue(src.Get(k), &v, p); err != nil {
			return atField(k, err)
		}
		res[k] = v
	}
	*dst = res
	return nil
}

// Ptr returns the codec for an optional *E. nil is written as null.
// Decoding null sets nil; anything else decodes into a newly allocated E
// that starts from the element defaults.
func Ptr[E any](elem Codec[E]) Codec[*E] {
	return ptrCodec[E]{elem: elem}
}

type ptrCodec[E any] struct {
	elem Codec[E]
}

func (c ptrCodec[E]) EncodeValue(src **E, dst value.Value) {
	if *src == nil {
		dst.SetNull()
		return
	}
	c.elem.EncodeValue(*src, dst)
}

func (c ptrCodec[E]) DecodeValue(src value.Value, dst **E, p Policy) error {
	if src.Kind() == value.NullKind {
		*dst = nil
		return nil
	}
	res := new(E)
	initElem(c.elem, res)
	if err := c.elem.DecodeValue(src, res, p); err != nil {
		return err
	}
	*dst = res
	return nil
}

func kindMismatch(want value.Kind, src value.Value) error {
	return fmt.Errorf("%w: %w: expected %s, got %s", ErrMalformed, value.ErrKind, want, src.Kind())
}
