package codegen

import (
	"fmt"
	"go/parser"
	"maps"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"unicode"

	"github.com/signadot/datafields/debug"
	"golang.org/x/tools/imports"
)

const (
	fieldsImport = "github.com/signadot/datafields/fields"
	valueImport  = "github.com/signadot/datafields/value"
)

// methodNames are the methods generated on every struct.
var methodNames = []string{"Fields", "SetDefaults", "EncodeValue", "DecodeValue", "DecodeStrict", "DecodeLazy"}

// SchemaVar returns the name of the schema variable generated for the
// struct called name.
func SchemaVar(name string) string {
	rs := []rune(name)
	n := 0
	for n < len(rs) && unicode.IsUpper(rs[n]) {
		n++
	}
	// keep the last capital of an initialism that starts a word: URLMap -> urlMap
	if n > 1 && n < len(rs) {
		n--
	}
	for i := 0; i < n; i++ {
		rs[i] = unicode.ToLower(rs[i])
	}
	return string(rs) + "Fields"
}

// GenerateDeclaration returns the schema variable declaration of s.
// declared holds the names of all generated structs of the package.
func GenerateDeclaration(s *StructInfo, declared map[string]bool) (string, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "var %s = fields.MustDeclare[%s](\n", SchemaVar(s.Name), s.Name)
	for _, f := range s.Fields {
		tc := &typeCtx{declared: declared, imports: s.Imports, micros: f.Micros}
		codec, err := tc.codecExpr(f.ASTType)
		if err != nil {
			return "", fmt.Errorf("%s.%s: %w", s.Name, f.Name, err)
		}
		def, err := tc.defaultCall(f)
		if err != nil {
			return "", fmt.Errorf("%s.%s: %w", s.Name, f.Name, err)
		}
		fmt.Fprintf(&b, "\tfields.Field(%s, func(x *%s) *%s { return &x.%s }, %s)%s,\n",
			strconv.Quote(f.FieldName), s.Name, typeString(f.ASTType), f.Name, codec, def)
	}
	b.WriteString(")\n")
	return b.String(), nil
}

// GenerateMethods returns the methods of s delegating to its schema
// variable.
func GenerateMethods(s *StructInfo) (string, error) {
	if s.ASTNode != nil && s.ASTNode.Fields != nil {
		for _, f := range s.ASTNode.Fields.List {
			names := make([]string, 0, len(f.Names))
			for _, n := range f.Names {
				names = append(names, n.Name)
			}
			if len(f.Names) == 0 {
				if n, err := getEmbeddedFieldName(f.Type); err == nil {
					names = append(names, n)
				}
			}
			for _, n := range names {
				if slices.Contains(methodNames, n) {
					return "", fmt.Errorf("%s.%s collides with a generated method", s.Name, n)
				}
			}
		}
	}
	v, t := SchemaVar(s.Name), s.Name
	var b strings.Builder
	fmt.Fprintf(&b, "// Fields returns the declared fields of %s.\n", t)
	fmt.Fprintf(&b, "func (*%s) Fields() *fields.Schema[%s] {\n\treturn %s\n}\n\n", t, t, v)
	fmt.Fprintf(&b, "// SetDefaults sets every declared field of x to its default.\n")
	fmt.Fprintf(&b, "func (x *%s) SetDefaults() {\n\t%s.Init(x)\n}\n\n", t, v)
	fmt.Fprintf(&b, "func (x *%s) EncodeValue(dst value.Value) {\n\t%s.EncodeValue(x, dst)\n}\n\n", t, v)
	fmt.Fprintf(&b, "func (x *%s) DecodeValue(src value.Value, p fields.Policy) error {\n\treturn %s.DecodeValue(src, x, p)\n}\n\n", t, v)
	fmt.Fprintf(&b, "func (x *%s) DecodeStrict(src value.Value) error {\n\treturn %s.DecodeStrict(src, x)\n}\n\n", t, v)
	fmt.Fprintf(&b, "func (x *%s) DecodeLazy(src value.Value) error {\n\treturn %s.DecodeLazy(src, x)\n}\n", t, v)
	return b.String(), nil
}

// GenerateCode returns the formatted source of the generated file for
// structs, which must all belong to one package.
func GenerateCode(structs []*StructInfo, cfg *Config) ([]byte, error) {
	if len(structs) == 0 {
		return nil, fmt.Errorf("no structs to generate")
	}
	pkgName := structs[0].Package
	if cfg != nil && cfg.Package != nil && cfg.Package.Name != "" {
		pkgName = cfg.Package.Name
	}
	log := cfg.logger()

	declared := make(map[string]bool, len(structs))
	for _, s := range structs {
		if declared[s.Name] {
			return nil, fmt.Errorf("struct %s found twice", s.Name)
		}
		declared[s.Name] = true
	}

	imps, err := collectImports(structs)
	if err != nil {
		return nil, err
	}

	var b strings.Builder
	b.WriteString("// Code generated by fields gen. DO NOT EDIT.\n\n")
	fmt.Fprintf(&b, "package %s\n\n", pkgName)
	b.WriteString("import (\n")
	fmt.Fprintf(&b, "\t%q\n\t%q\n", fieldsImport, valueImport)
	for _, name := range slices.Sorted(maps.Keys(imps)) {
		p := imps[name]
		if path.Base(p) == name {
			fmt.Fprintf(&b, "\t%q\n", p)
		} else {
			fmt.Fprintf(&b, "\t%s %q\n", name, p)
		}
	}
	b.WriteString(")\n")

	for _, s := range structs {
		log.Debug("generating", "struct", s.Name, "fields", len(s.Fields))
		decl, err := GenerateDeclaration(s, declared)
		if err != nil {
			return nil, err
		}
		methods, err := GenerateMethods(s)
		if err != nil {
			return nil, err
		}
		b.WriteString("\n")
		b.WriteString(decl)
		b.WriteString("\n")
		b.WriteString(methods)
	}

	if debug.Gen() {
		debug.Logf("generated source for %s:\n%s\n", pkgName, b.String())
	}

	filename := "fields_gen.go"
	if cfg != nil && cfg.OutputFile != "" {
		filename = cfg.OutputFile
	}
	out, err := imports.Process(filename, []byte(b.String()), &imports.Options{
		Comments:  true,
		TabIndent: true,
		TabWidth:  8,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to format generated code: %w\n%s", err, b.String())
	}
	return out, nil
}

// WriteCode generates the file for structs and writes it to the output
// file of cfg, returning the path written.
func WriteCode(structs []*StructInfo, cfg *Config) (string, error) {
	out, err := GenerateCode(structs, cfg)
	if err != nil {
		return "", err
	}
	filename := OutputPath(cfg)
	if err := os.WriteFile(filename, out, 0o644); err != nil {
		return "", fmt.Errorf("failed to write %q: %w", filename, err)
	}
	cfg.logger().Debug("wrote", "file", filename, "structs", len(structs))
	return filename, nil
}

// OutputPath returns where generated code for cfg goes.
func OutputPath(cfg *Config) string {
	if cfg.OutputFile != "" {
		return cfg.OutputFile
	}
	return filepath.Join(cfg.Package.Dir, cfg.Package.Name+"_fields.go")
}

// collectImports returns the imports referenced by field types and
// defaults, keyed by the name used in the source.
func collectImports(structs []*StructInfo) (map[string]string, error) {
	res := map[string]string{}
	for _, s := range structs {
		used := map[string]bool{}
		for _, f := range s.Fields {
			usedPackages(f.ASTType, used)
			if f.HasDefault {
				if e, err := parser.ParseExpr(f.Default); err == nil {
					usedPackages(e, used)
				}
			}
		}
		for name := range used {
			p, ok := s.Imports[name]
			if !ok {
				continue
			}
			if prev, ok := res[name]; ok && prev != p {
				return nil, fmt.Errorf("package name %s refers to both %q and %q", name, prev, p)
			}
			res[name] = p
		}
	}
	return res, nil
}
