package codegen

import (
	"go/ast"
	"log/slog"
)

// Directive marks a struct type for generation. It must be a line of the
// type's doc comment.
const Directive = "//fields:declare"

// PackageInfo describes one Go package directory.
type PackageInfo struct {
	// Path is the import path, when known.
	Path string

	// Dir is the absolute directory.
	Dir string

	// Name is the package name.
	Name string

	// Files are the absolute paths of the non test Go files.
	Files []string
}

// StructInfo holds a struct marked for generation.
type StructInfo struct {
	// Name is the struct type name
	Name string

	// Package is the package name this struct belongs to
	Package string

	// FilePath is the path to the source file containing this struct
	FilePath string

	// Fields are the declared fields in source order
	Fields []*FieldInfo

	// Imports maps the package names used in the source file to their
	// import paths
	Imports map[string]string

	// ASTNode is the original AST node for this struct (for reference)
	ASTNode *ast.StructType
}

// FieldInfo holds one declared field.
type FieldInfo struct {
	// Name is the Go field name, or the type name for embedded fields
	Name string

	// FieldName is the declared name used in encodings
	FieldName string

	// ASTType is the type expression of the field
	ASTType ast.Expr

	// Default is the raw default option, empty when absent
	Default string

	// HasDefault reports whether a default option was given
	HasDefault bool

	// Micros selects microsecond precision for durations
	Micros bool

	// IsEmbedded indicates if this is an embedded field
	IsEmbedded bool

	// ASTField is the original AST field node (for reference)
	ASTField *ast.Field
}

// Config controls generation for one package.
type Config struct {
	// OutputFile is the generated file; defaults to <dir>/<pkg>_fields.go
	OutputFile string

	// Package is the package being generated
	Package *PackageInfo

	// Logger receives debug output; nil discards it
	Logger *slog.Logger
}

func (c *Config) logger() *slog.Logger {
	if c == nil || c.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return c.Logger
}
