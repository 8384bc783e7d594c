package codegen

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"reflect"
	"strconv"
	"strings"
)

// ParseFile parses a Go source file and returns its AST.
func ParseFile(filename string) (*ast.File, *token.FileSet, error) {
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, filename, nil, parser.ParseComments)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse file %q: %w", filename, err)
	}
	return file, fset, nil
}

// ExtractStructs returns the struct types of file marked with Directive.
func ExtractStructs(file *ast.File, filePath string) ([]*StructInfo, error) {
	var structs []*StructInfo
	imports := ExtractImports(file)

	for _, decl := range file.Decls {
		genDecl, ok := decl.(*ast.GenDecl)
		if !ok || genDecl.Tok != token.TYPE {
			continue
		}
		for _, spec := range genDecl.Specs {
			typeSpec, ok := spec.(*ast.TypeSpec)
			if !ok {
				continue
			}
			doc := typeSpec.Doc
			if doc == nil && len(genDecl.Specs) == 1 {
				doc = genDecl.Doc
			}
			if !hasDirective(doc) {
				continue
			}
			structType, ok := typeSpec.Type.(*ast.StructType)
			if !ok {
				return nil, fmt.Errorf("type %q is marked %s but is not a struct", typeSpec.Name.Name, Directive)
			}
			if typeSpec.TypeParams != nil && len(typeSpec.TypeParams.List) > 0 {
				return nil, fmt.Errorf("type %q is marked %s but is generic", typeSpec.Name.Name, Directive)
			}
			fields, err := extractFields(structType)
			if err != nil {
				return nil, fmt.Errorf("failed to extract fields from struct %q: %w", typeSpec.Name.Name, err)
			}
			structs = append(structs, &StructInfo{
				Name:     typeSpec.Name.Name,
				Package:  file.Name.Name,
				FilePath: filePath,
				Fields:   fields,
				Imports:  imports,
				ASTNode:  structType,
			})
		}
	}
	return structs, nil
}

func hasDirective(doc *ast.CommentGroup) bool {
	if doc == nil {
		return false
	}
	for _, c := range doc.List {
		if strings.TrimSpace(c.Text) == Directive {
			return true
		}
	}
	return false
}

// ExtractImports extracts imports from an AST file.
// Returns a map of package name -> import path.
func ExtractImports(file *ast.File) map[string]string {
	imports := make(map[string]string)
	for _, imp := range file.Imports {
		path, err := strconv.Unquote(imp.Path.Value)
		if err != nil {
			continue
		}
		var name string
		if imp.Name != nil {
			name = imp.Name.Name
		} else {
			// Default to the last component of the path
			parts := strings.Split(path, "/")
			name = parts[len(parts)-1]
		}
		if name == "_" || name == "." {
			continue
		}
		imports[name] = path
	}
	return imports
}

func extractFields(structType *ast.StructType) ([]*FieldInfo, error) {
	if structType.Fields == nil {
		return nil, nil
	}

	var fields []*FieldInfo
	seen := map[string]string{}

	add := func(goName string, field *ast.Field, embedded bool) error {
		tag, err := getFieldTag(field, "field")
		if err != nil {
			return fmt.Errorf("field %q: %w", goName, err)
		}
		if tag.Skip {
			return nil
		}
		info := &FieldInfo{
			Name:       goName,
			FieldName:  goName,
			ASTType:    field.Type,
			Default:    tag.Default,
			HasDefault: tag.HasDefault,
			Micros:     tag.Micros,
			IsEmbedded: embedded,
			ASTField:   field,
		}
		if tag.Name != "" {
			info.FieldName = tag.Name
		}
		if prev, dup := seen[info.FieldName]; dup {
			return fmt.Errorf("fields %q and %q share the name %q", prev, goName, info.FieldName)
		}
		seen[info.FieldName] = goName
		fields = append(fields, info)
		return nil
	}

	for _, field := range structType.Fields.List {
		if len(field.Names) == 0 {
			name, err := getEmbeddedFieldName(field.Type)
			if err != nil {
				return nil, fmt.Errorf("failed to get embedded field name: %w", err)
			}
			if !ast.IsExported(name) {
				continue
			}
			if err := add(name, field, true); err != nil {
				return nil, err
			}
			continue
		}
		for _, name := range field.Names {
			// Skip unexported and blank fields
			if !name.IsExported() || name.Name == "_" {
				continue
			}
			if err := add(name.Name, field, false); err != nil {
				return nil, err
			}
		}
	}
	return fields, nil
}

// getFieldTag returns the parsed tagName tag of field. A field without
// one gets an empty FieldTag.
func getFieldTag(field *ast.Field, tagName string) (*FieldTag, error) {
	if field.Tag == nil {
		return &FieldTag{}, nil
	}
	raw, err := strconv.Unquote(field.Tag.Value)
	if err != nil {
		return nil, fmt.Errorf("bad tag literal %s: %w", field.Tag.Value, err)
	}
	content, ok := reflect.StructTag(raw).Lookup(tagName)
	if !ok {
		return &FieldTag{}, nil
	}
	return ParseFieldTag(content)
}

// getEmbeddedFieldName returns the implicit field name of an embedded
// type expression.
func getEmbeddedFieldName(expr ast.Expr) (string, error) {
	switch t := expr.(type) {
	case *ast.Ident:
		return t.Name, nil
	case *ast.StarExpr:
		return getEmbeddedFieldName(t.X)
	case *ast.SelectorExpr:
		return t.Sel.Name, nil
	case *ast.IndexExpr:
		return getEmbeddedFieldName(t.X)
	case *ast.IndexListExpr:
		return getEmbeddedFieldName(t.X)
	}
	return "", fmt.Errorf("unsupported embedded type %T", expr)
}
