package debug

import (
	"bytes"
	"testing"

	"github.com/signadot/datafields/ir"
)

func TestLogf(t *testing.T) {
	var buf bytes.Buffer
	old := out
	out = &buf
	t.Cleanup(func() { out = old })

	node := ir.FromMap(map[string]*ir.Node{"b": ir.FromInt(2), "a": ir.FromBool(true)})
	Logf("%v|%s|%d\n", node, []byte("raw"), 3)
	want := "{\n  \"a\": true,\n  \"b\": 2\n}\n|raw|3\n"
	if got := buf.String(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestBoolEnv(t *testing.T) {
	t.Setenv("FIELDS_DEBUG_TEST", "true")
	if !boolEnv("FIELDS_DEBUG_TEST") {
		t.Error("true not read")
	}
	t.Setenv("FIELDS_DEBUG_TEST", "nope")
	if boolEnv("FIELDS_DEBUG_TEST") {
		t.Error("bad value read as true")
	}
	if boolEnv("FIELDS_DEBUG_UNSET") {
		t.Error("unset read as true")
	}
}
