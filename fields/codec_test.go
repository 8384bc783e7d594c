package fields_test

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/signadot/datafields/fields"
	"github.com/signadot/datafields/ir"
	"github.com/signadot/datafields/parse"
	"github.com/signadot/datafields/value"
)

func mustParse(t *testing.T, s string) *ir.Node {
	t.Helper()
	n, err := parse.ParseString(s)
	if err != nil {
		t.Fatal(err)
	}
	return n
}

func TestChars(t *testing.T) {
	c := fields.Chars[[4]byte]()

	var buf [4]byte
	if err := fields.DecodeStrict(c, ir.FromString("abcd"), &buf); err != nil {
		t.Fatal(err)
	}
	if buf != [4]byte{'a', 'b', 'c', 'd'} {
		t.Errorf("got %q", buf)
	}
	for _, s := range []string{"abc", "abcde", ""} {
		err := fields.DecodeStrict(c, ir.FromString(s), &buf)
		if !errors.Is(err, fields.ErrSizeMismatch) {
			t.Errorf("%q: got %v, want ErrSizeMismatch", s, err)
		}
	}
	if buf != [4]byte{'a', 'b', 'c', 'd'} {
		t.Errorf("failed decode changed the buffer: %q", buf)
	}
	if err := fields.DecodeStrict(c, ir.FromInt(1), &buf); !errors.Is(err, fields.ErrMalformed) {
		t.Errorf("number: got %v, want ErrMalformed", err)
	}
	if err := fields.DecodeLazy(c, ir.Null(), &buf); !errors.Is(err, fields.ErrMissingField) {
		t.Errorf("null: got %v, want ErrMissingField", err)
	}
	var empty [0]byte
	if err := fields.DecodeStrict(fields.Chars[[0]byte](), ir.Null(), &empty); err != nil {
		t.Errorf("null into empty buffer: %v", err)
	}

	n := ir.Null()
	zeros := [4]byte{'x', 0, 0, 'y'}
	fields.Encode(c, &zeros, n)
	if got, _ := n.AsString(); got != "x\x00\x00y" {
		t.Errorf("encode = %q", got)
	}

	defer func() {
		if recover() == nil {
			t.Error("Chars of a non byte array did not panic")
		}
	}()
	fields.Chars[[4]int]()
}

func TestScalars(t *testing.T) {
	var i8 int8
	if err := fields.DecodeStrict(fields.Int[int8](), ir.FromInt(300), &i8); !errors.Is(err, fields.ErrMalformed) {
		t.Errorf("int8 overflow: %v", err)
	}
	if err := fields.DecodeStrict(fields.Int[int8](), ir.FromInt(-128), &i8); err != nil || i8 != -128 {
		t.Errorf("int8 min: %d, %v", i8, err)
	}

	var u uint64
	if err := fields.DecodeStrict(fields.Uint[uint64](), ir.FromUint(math.MaxUint64), &u); err != nil || u != math.MaxUint64 {
		t.Errorf("uint64 max: %d, %v", u, err)
	}
	n := ir.Null()
	fields.Encode(fields.Uint[uint64](), &u, n)
	if n.Number != "18446744073709551615" {
		t.Errorf("encode max uint64 = %q", n.Number)
	}
	var u16 uint16
	if err := fields.DecodeStrict(fields.Uint[uint16](), ir.FromInt(-1), &u16); !errors.Is(err, value.ErrRange) {
		t.Errorf("negative uint: %v, want ErrRange", err)
	}

	var f32 float32
	if err := fields.DecodeStrict(fields.Float[float32](), ir.FromFloat(1e300), &f32); !errors.Is(err, fields.ErrMalformed) {
		t.Errorf("float32 overflow: %v", err)
	}
	if err := fields.DecodeStrict(fields.Float[float32](), ir.FromInt(3), &f32); err != nil || f32 != 3 {
		t.Errorf("float from int: %v, %v", f32, err)
	}

	s := "keep"
	if err := fields.DecodeStrict(fields.String, ir.FromInt(1), &s); !errors.Is(err, value.ErrKind) {
		t.Errorf("string from number: %v, want ErrKind", err)
	}
	if err := fields.DecodeStrict(fields.String, ir.Null(), &s); err != nil || s != "" {
		t.Errorf("string from null: %q, %v", s, err)
	}
	b := true
	if err := fields.DecodeStrict(fields.Bool, ir.Null(), &b); err != nil || b {
		t.Errorf("bool from null: %v, %v", b, err)
	}
	if err := fields.DecodeStrict(fields.Bool, ir.FromString("true"), &b); !errors.Is(err, fields.ErrMalformed) {
		t.Errorf("bool from string: %v", err)
	}
}

func TestCollections(t *testing.T) {
	type doc struct {
		Set  map[string]struct{}
		Nums map[string]int
		Opt  *int
		IDs  map[int]struct{}
	}
	s := fields.MustDeclare[doc](
		fields.Field("set", func(d *doc) *map[string]struct{} { return &d.Set }, fields.Set(fields.String)),
		fields.Field("nums", func(d *doc) *map[string]int { return &d.Nums }, fields.Map(fields.Int[int]())),
		fields.Field("opt", func(d *doc) **int { return &d.Opt }, fields.Ptr(fields.Int[int]())),
		fields.Field("ids", func(d *doc) *map[int]struct{} { return &d.IDs }, fields.Set(fields.Int[int]())),
	)
	seven := 7
	orig := &doc{
		Set:  map[string]struct{}{"b": {}, "a": {}, "c": {}},
		Nums: map[string]int{"z": 1, "y": 2},
		Opt:  &seven,
		IDs:  map[int]struct{}{10: {}, -2: {}, 3: {}},
	}
	n := ir.Null()
	s.Encode(orig, n)
	want := mustParse(t, `{"set": ["a", "b", "c"], "nums": {"y": 2, "z": 1}, "opt": 7, "ids": [-2, 3, 10]}`)
	if !ir.Equal(n, want) {
		t.Errorf("encoding not canonical")
	}

	got := s.New()
	if err := s.DecodeStrict(n, got); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(orig, got); diff != "" {
		t.Errorf("round trip (-want +got):\n%s", diff)
	}

	nulls := mustParse(t, `{"set": null, "nums": null, "opt": null, "ids": null}`)
	if err := s.DecodeStrict(nulls, got); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(&doc{}, got); diff != "" {
		t.Errorf("nulls (-want +got):\n%s", diff)
	}
	n2 := ir.Null()
	s.Encode(got, n2)
	if !ir.Equal(n2, nulls) {
		t.Error("nil collections should encode as null")
	}

	bad := mustParse(t, `{"set": {}, "nums": {}, "opt": null, "ids": []}`)
	err := s.DecodeStrict(bad, got)
	var de *fields.DecodeError
	if !errors.As(err, &de) || de.FieldPath != "set" || !errors.Is(err, fields.ErrMalformed) {
		t.Errorf("got %v, want malformed at set", err)
	}
}

func TestFreeVariables(t *testing.T) {
	xs := []int{1, 2, 3}
	n := ir.Null()
	fields.Encode(fields.Slice(fields.Int[int]()), &xs, n)
	var back []int
	if err := fields.DecodeStrict(fields.Slice(fields.Int[int]()), n, &back); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(xs, back); diff != "" {
		t.Error(diff)
	}

	empty := []int{}
	fields.Encode(fields.Slice(fields.Int[int]()), &empty, n)
	back = nil
	if err := fields.DecodeStrict(fields.Slice(fields.Int[int]()), n, &back); err != nil {
		t.Fatal(err)
	}
	if back == nil || len(back) != 0 {
		t.Errorf("empty array decoded to %#v", back)
	}

	err := fields.DecodeStrict(fields.Slice(fields.Int[int]()), mustParse(t, `[1, "x"]`), &back)
	var de *fields.DecodeError
	if !errors.As(err, &de) || de.FieldPath != "[1]" {
		t.Errorf("got %v, want error at [1]", err)
	}
}
