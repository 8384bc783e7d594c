package codegen

import (
	"go/ast"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const modelsSrc = `package models

import (
	"time"

	nip "net/netip"
)

// Person is declared.
//
//fields:declare
type Person struct {
	Name    string            ` + "`field:\"name\"`" + `
	Count   int               ` + "`field:\"count,default=7\"`" + `
	Tags    []string          ` + "`field:\"tags\"`" + `
	Timeout time.Duration     ` + "`field:\"timeout,default=90s,micros\"`" + `
	Addr    nip.Addr
	Skipped int               ` + "`field:\"-\"`" + `
	hidden  int
	Inner
}

//fields:declare
type Inner struct {
	ID [4]byte ` + "`field:\"id\"`" + `
}

// Plain is not declared.
type Plain struct {
	X int
}
`

func parseSrc(t *testing.T, src string) *ast.File {
	t.Helper()
	file, err := parser.ParseFile(token.NewFileSet(), "models.go", src, parser.ParseComments)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return file
}

func TestExtractStructs(t *testing.T) {
	structs, err := ExtractStructs(parseSrc(t, modelsSrc), "models.go")
	if err != nil {
		t.Fatalf("ExtractStructs: %v", err)
	}
	type fieldSummary struct {
		Name, FieldName, Default string
		HasDefault, Micros       bool
		Embedded                 bool
	}
	got := map[string][]fieldSummary{}
	for _, s := range structs {
		if s.Package != "models" {
			t.Errorf("%s: package %q", s.Name, s.Package)
		}
		for _, f := range s.Fields {
			got[s.Name] = append(got[s.Name], fieldSummary{
				Name:       f.Name,
				FieldName:  f.FieldName,
				Default:    f.Default,
				HasDefault: f.HasDefault,
				Micros:     f.Micros,
				Embedded:   f.IsEmbedded,
			})
		}
	}
	want := map[string][]fieldSummary{
		"Person": {
			{Name: "Name", FieldName: "name"},
			{Name: "Count", FieldName: "count", Default: "7", HasDefault: true},
			{Name: "Tags", FieldName: "tags"},
			{Name: "Timeout", FieldName: "timeout", Default: "90s", HasDefault: true, Micros: true},
			{Name: "Addr", FieldName: "Addr"},
			{Name: "Inner", FieldName: "Inner", Embedded: true},
		},
		"Inner": {
			{Name: "ID", FieldName: "id"},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ExtractStructs mismatch (-want +got):\n%s", diff)
	}
	if imp := structs[0].Imports; imp["nip"] != "net/netip" || imp["time"] != "time" {
		t.Errorf("imports: %v", imp)
	}
}

func TestExtractStructsErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "duplicate names",
			src: "package p\n//fields:declare\ntype T struct {\n\tA int `field:\"x\"`\n\tB int `field:\"x\"`\n}\n",
			want: `share the name "x"`,
		},
		{
			name: "not a struct",
			src:  "package p\n//fields:declare\ntype T int\n",
			want: "is not a struct",
		},
		{
			name: "bad option",
			src:  "package p\n//fields:declare\ntype T struct {\n\tA int `field:\"a,omitempty\"`\n}\n",
			want: "unknown field tag option",
		},
		{
			name: "generic",
			src:  "package p\n//fields:declare\ntype T[E any] struct {\n\tA E\n}\n",
			want: "is generic",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ExtractStructs(parseSrc(t, tt.src), "p.go")
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("got error %v, want one containing %q", err, tt.want)
			}
		})
	}
}

func TestDiscoverAndLoad(t *testing.T) {
	dir := t.TempDir()
	write := func(rel, src string) {
		t.Helper()
		p := filepath.Join(dir, rel)
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte(src), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	write("models.go", modelsSrc)
	write("models_fields.go", "// Code generated by fields gen. DO NOT EDIT.\n\npackage models\n\n//fields:declare\ntype Stale struct{}\n")
	write("sub/sub.go", "package sub\n")
	write("_skip/skip.go", "package skip\n")

	flat, err := DiscoverPackages(dir, false)
	if err != nil {
		t.Fatal(err)
	}
	if len(flat) != 1 || flat[0].Name != "models" {
		t.Fatalf("non recursive discovery: %+v", flat)
	}
	all, err := DiscoverPackages(dir, true)
	if err != nil {
		t.Fatal(err)
	}
	var names []string
	for _, p := range all {
		names = append(names, p.Name)
	}
	if diff := cmp.Diff([]string{"models", "sub"}, names); diff != "" {
		t.Errorf("recursive discovery (-want +got):\n%s", diff)
	}

	structs, err := LoadPackage(flat[0])
	if err != nil {
		t.Fatal(err)
	}
	var got []string
	for _, s := range structs {
		got = append(got, s.Name)
	}
	if diff := cmp.Diff([]string{"Person", "Inner"}, got); diff != "" {
		t.Errorf("LoadPackage (-want +got):\n%s", diff)
	}
}
