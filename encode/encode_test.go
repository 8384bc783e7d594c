package encode

import (
	"bytes"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/signadot/datafields/format"
	"github.com/signadot/datafields/ir"
	"github.com/signadot/datafields/parse"
)

func sample() *ir.Node {
	return ir.FromKeyVals([]ir.KeyVal{
		{Key: ir.FromString("name"), Val: ir.FromString("a<b>")},
		{Key: ir.FromString("n"), Val: ir.FromInt(-3)},
		{Key: ir.FromString("f"), Val: ir.FromFloat(2)},
		{Key: ir.FromString("big"), Val: ir.FromUint(math.MaxUint64)},
		{Key: ir.FromString("tags"), Val: ir.FromSlice([]*ir.Node{ir.FromBool(true), ir.Null()})},
		{Key: ir.FromString("empty"), Val: ir.Object()},
		{Key: ir.FromString("none"), Val: ir.FromSlice(nil)},
	})
}

func TestEncodeJSON(t *testing.T) {
	tests := []struct {
		name string
		opts []EncodeOption
		want string
	}{
		{
			name: "pretty",
			want: `{
  "name": "a<b>",
  "n": -3,
  "f": 2.0,
  "big": 18446744073709551615,
  "tags": [
    true,
    null
  ],
  "empty": {},
  "none": []
}
`,
		},
		{
			name: "wire",
			opts: []EncodeOption{EncodeWire(true)},
			want: `{"name":"a<b>","n":-3,"f":2.0,"big":18446744073709551615,"tags":[true,null],"empty":{},"none":[]}`,
		},
		{
			name: "indent",
			opts: []EncodeOption{EncodeIndent(4)},
			want: "{\n    \"name\": \"a<b>\",\n    \"n\": -3,\n    \"f\": 2.0,\n    \"big\": 18446744073709551615,\n    \"tags\": [\n        true,\n        null\n    ],\n    \"empty\": {},\n    \"none\": []\n}\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := bytes.NewBuffer(nil)
			if err := Encode(sample(), buf, tt.opts...); err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(tt.want, buf.String()); diff != "" {
				t.Errorf("(-want +got):\n%s", diff)
			}
		})
	}
}

func TestEncodeFloats(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0.0"},
		{1.5, "1.5"},
		{-2, "-2.0"},
		{1e21, "1e+21"},
		{1e-7, "1e-07"},
	}
	for _, tt := range tests {
		if got := MustString(ir.FromFloat(tt.in)); got != tt.want {
			t.Errorf("%v: got %q, want %q", tt.in, got, tt.want)
		}
	}
	for _, f := range []float64{math.NaN(), math.Inf(1)} {
		err := Encode(ir.FromFloat(f), bytes.NewBuffer(nil))
		if !errors.Is(err, ErrEncoding) {
			t.Errorf("%v: got %v, want ErrEncoding", f, err)
		}
	}
}

func TestColors(t *testing.T) {
	c := NewColors()
	marks := map[Colorable]func(string, ...any) string{}
	for k := range c.Map {
		marks[k] = func(v string, _ ...any) string {
			return "<" + k.Type.String() + ">" + v
		}
	}
	c.Map = marks
	buf := bytes.NewBuffer(nil)
	node := ir.FromKeyVals([]ir.KeyVal{{Key: ir.FromString("a"), Val: ir.FromInt(1)}})
	if err := Encode(node, buf, EncodeWire(true), EncodeColors(c)); err != nil {
		t.Fatal(err)
	}
	want := `<Object>{<Object>"a"<Object>:<Number>1<Object>}`
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestRoundTrip(t *testing.T) {
	for _, f := range format.AllFormats() {
		t.Run(f.String(), func(t *testing.T) {
			buf := bytes.NewBuffer(nil)
			if err := Encode(sample(), buf, EncodeFormat(f)); err != nil {
				t.Fatal(err)
			}
			got, err := parse.Parse(buf.Bytes(), parse.ParseFormat(f))
			if err != nil {
				t.Fatalf("%v\n%s", err, buf.String())
			}
			want := sample()
			if f.IsCBOR() {
				// maps come back in sorted key order
				want = ir.FromMap(ir.ToMap(want))
			}
			if !ir.Equal(got, want) {
				t.Errorf("round trip differs:\n%s", MustString(got))
			}
		})
	}
}

func TestEncodeYAML(t *testing.T) {
	node := ir.FromKeyVals([]ir.KeyVal{
		{Key: ir.FromString("s"), Val: ir.FromString("true")},
		{Key: ir.FromString("l"), Val: ir.FromSlice([]*ir.Node{ir.FromInt(1), ir.FromInt(2)})},
	})
	buf := bytes.NewBuffer(nil)
	if err := Encode(node, buf, EncodeFormat(format.YAMLFormat)); err != nil {
		t.Fatal(err)
	}
	want := "s: \"true\"\nl:\n  - 1\n  - 2\n"
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}

	buf.Reset()
	if err := Encode(node, buf, EncodeFormat(format.YAMLFormat), EncodeWire(true)); err != nil {
		t.Fatal(err)
	}
	if got := strings.TrimSpace(buf.String()); got != `{s: "true", l: [1, 2]}` {
		t.Errorf("flow yaml = %q", got)
	}
}

func TestCBORDeterministic(t *testing.T) {
	a := ir.FromKeyVals([]ir.KeyVal{
		{Key: ir.FromString("b"), Val: ir.FromInt(1)},
		{Key: ir.FromString("a"), Val: ir.FromInt(2)},
	})
	b := ir.FromMap(ir.ToMap(a.Clone()))
	bufA, bufB := bytes.NewBuffer(nil), bytes.NewBuffer(nil)
	if err := Encode(a, bufA, EncodeFormat(format.CBORFormat)); err != nil {
		t.Fatal(err)
	}
	if err := Encode(b, bufB, EncodeFormat(format.CBORFormat)); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(bufA.Bytes(), bufB.Bytes()) {
		t.Errorf("key order changed CBOR bytes: %x vs %x", bufA.Bytes(), bufB.Bytes())
	}
}
