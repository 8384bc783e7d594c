package parse

import (
	"errors"
	"strconv"
	"strings"
	"testing"

	"github.com/fxamacker/cbor/v2"
	"github.com/google/go-cmp/cmp"
	"github.com/signadot/datafields/ir"
)

func obj(kvs ...any) *ir.Node {
	res := make([]ir.KeyVal, 0, len(kvs)/2)
	for i := 0; i+1 < len(kvs); i += 2 {
		res = append(res, ir.KeyVal{Key: ir.FromString(kvs[i].(string)), Val: kvs[i+1].(*ir.Node)})
	}
	return ir.FromKeyVals(res)
}

func arr(vs ...*ir.Node) *ir.Node {
	if vs == nil {
		vs = []*ir.Node{}
	}
	return ir.FromSlice(vs)
}

func TestParseJSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want *ir.Node
	}{
		{"null", `null`, ir.Null()},
		{"int", `42`, ir.FromInt(42)},
		{"float", `-1.25`, ir.FromFloat(-1.25)},
		{"big", `18446744073709551615`, ir.FromUint(18446744073709551615)},
		{"string", `"aé\n"`, ir.FromString("aé\n")},
		{"empty array", `[]`, arr()},
		{"empty object", `{}`, ir.Object()},
		{"key order kept", `{"z": 1, "a": [true, null]}`,
			obj("z", ir.FromInt(1), "a", arr(ir.FromBool(true), ir.Null()))},
		{"duplicate key", `{"a": 1, "b": 2, "a": 3}`,
			obj("a", ir.FromInt(3), "b", ir.FromInt(2))},
		{"comments and trailing commas", "{\n  // c\n  \"a\": [1, 2,], /* x */\n}",
			obj("a", arr(ir.FromInt(1), ir.FromInt(2)))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseString(tt.in)
			if err != nil {
				t.Fatal(err)
			}
			if !ir.Equal(got, tt.want) {
				t.Errorf("got %v, want %v", dump(got), dump(tt.want))
			}
		})
	}
}

func TestParseJSONErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
		opts []ParseOption
	}{
		{"empty", "", nil},
		{"whitespace", "  \n", nil},
		{"unterminated object", `{"a": 1`, nil},
		{"unterminated array", `[1, 2`, nil},
		{"missing colon", `{"a" 1}`, nil},
		{"bare word", `{a: 1}`, nil},
		{"trailing data", `{} {}`, nil},
		{"comment without jsonc", `[1 /* x */]`, []ParseOption{ParseJSONC(false)}},
		{"number overflow", `1e400`, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseString(tt.in, tt.opts...)
			if !errors.Is(err, ErrParse) {
				t.Errorf("got %v, want ErrParse", err)
			}
		})
	}
}

func TestTrailingOffset(t *testing.T) {
	_, err := ParseString(`[1] 2`)
	var oe *OffsetError
	if !errors.As(err, &oe) {
		t.Fatalf("got %v, want *OffsetError", err)
	}
	if !errors.Is(err, ErrTrailer) {
		t.Errorf("got %v, want ErrTrailer", err)
	}
	if oe.Offset != 3 {
		t.Errorf("offset = %d, want 3", oe.Offset)
	}
}

func TestParseYAML(t *testing.T) {
	in := `
base: &base
  port: 80
  host: example.com
server:
  <<: *base
  port: 8080
list: [1, 2.5, "3", yes, ~]
hex: 0x10
`
	got, err := ParseString(in, ParseYAML())
	if err != nil {
		t.Fatal(err)
	}
	want := obj(
		"base", obj("port", ir.FromInt(80), "host", ir.FromString("example.com")),
		"server", obj("port", ir.FromInt(8080), "host", ir.FromString("example.com")),
		"list", arr(ir.FromInt(1), ir.FromFloat(2.5), ir.FromString("3"), ir.FromString("yes"), ir.Null()),
		"hex", ir.FromInt(16),
	)
	if !ir.Equal(got, want) {
		t.Errorf("got %v, want %v", dump(got), dump(want))
	}
}

func TestParseYAMLErrors(t *testing.T) {
	for _, in := range []string{"", "a: [1", "? [1, 2]\n: x\n"} {
		if _, err := ParseString(in, ParseYAML()); !errors.Is(err, ErrParse) {
			t.Errorf("%q: got %v, want ErrParse", in, err)
		}
	}
}

func TestParseCBOR(t *testing.T) {
	d, err := cbor.Marshal(map[string]any{
		"b": []any{uint64(1), int64(-2), 1.5, "x", nil, true},
		"a": map[string]any{},
	})
	if err != nil {
		t.Fatal(err)
	}
	got, err := Parse(d, ParseCBOR())
	if err != nil {
		t.Fatal(err)
	}
	want := obj(
		"a", ir.Object(),
		"b", arr(ir.FromInt(1), ir.FromInt(-2), ir.FromFloat(1.5), ir.FromString("x"), ir.Null(), ir.FromBool(true)),
	)
	if !ir.Equal(got, want) {
		t.Errorf("got %v, want %v", dump(got), dump(want))
	}

	bad, err := cbor.Marshal(map[int]string{1: "x"})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := Parse(bad, ParseCBOR()); !errors.Is(err, ErrParse) {
		t.Errorf("int keys: got %v, want ErrParse", err)
	}
	if _, err := Parse(append(d, 0x01), ParseCBOR()); !errors.Is(err, ErrParse) {
		t.Errorf("trailing: got %v, want ErrParse", err)
	}
}

func TestParseReaderLimit(t *testing.T) {
	_, err := ParseReader(strings.NewReader(`[1, 2, 3]`), ParseMaxSize(4))
	if !errors.Is(err, ErrParse) {
		t.Errorf("got %v, want ErrParse", err)
	}
	got, err := ParseReader(strings.NewReader(`[1]`), ParseMaxSize(4))
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(1, got.Len()); diff != "" {
		t.Error(diff)
	}
}

// dump renders a node for failure messages.
func dump(n *ir.Node) string {
	var sb strings.Builder
	var rec func(*ir.Node)
	rec = func(n *ir.Node) {
		switch n.Type {
		case ir.ObjectType:
			sb.WriteByte('{')
			for i, f := range n.Fields {
				if i > 0 {
					sb.WriteByte(',')
				}
				sb.WriteString(f.String + ":")
				rec(n.Values[i])
			}
			sb.WriteByte('}')
		case ir.ArrayType:
			sb.WriteByte('[')
			for i, v := range n.Values {
				if i > 0 {
					sb.WriteByte(',')
				}
				rec(v)
			}
			sb.WriteByte(']')
		case ir.StringType:
			sb.WriteString("'" + n.String + "'")
		case ir.NumberType:
			if n.Number != "" {
				sb.WriteString(n.Number)
			} else {
				f, _ := n.AsFloat()
				sb.WriteString(strconv.FormatFloat(f, 'g', -1, 64))
			}
		case ir.BoolType:
			if n.Bool {
				sb.WriteString("true")
			} else {
				sb.WriteString("false")
			}
		default:
			sb.WriteString("null")
		}
	}
	rec(n)
	return sb.String()
}
