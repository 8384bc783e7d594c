package codegen

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/types"
	"strconv"
	"strings"
	"time"
)

var basicCodecs = map[string]string{
	"string":  "fields.String",
	"bool":    "fields.Bool",
	"int":     "fields.Int[int]()",
	"int8":    "fields.Int[int8]()",
	"int16":   "fields.Int[int16]()",
	"int32":   "fields.Int[int32]()",
	"rune":    "fields.Int[rune]()",
	"int64":   "fields.Int[int64]()",
	"uint":    "fields.Uint[uint]()",
	"uint8":   "fields.Uint[uint8]()",
	"byte":    "fields.Uint[byte]()",
	"uint16":  "fields.Uint[uint16]()",
	"uint32":  "fields.Uint[uint32]()",
	"uint64":  "fields.Uint[uint64]()",
	"uintptr": "fields.Uint[uintptr]()",
	"float32": "fields.Float[float32]()",
	"float64": "fields.Float[float64]()",
}

var unsupportedIdents = map[string]bool{
	"any":        true,
	"error":      true,
	"complex64":  true,
	"complex128": true,
}

// typeCtx resolves the codec of field types within one package.
type typeCtx struct {
	// declared holds the struct names generated in the same package
	declared map[string]bool

	// imports of the file declaring the field
	imports map[string]string

	micros bool
}

// codecExpr returns Go source for the codec of the type expression expr.
func (c *typeCtx) codecExpr(expr ast.Expr) (string, error) {
	switch t := expr.(type) {
	case *ast.ParenExpr:
		return c.codecExpr(t.X)
	case *ast.Ident:
		if codec, ok := basicCodecs[t.Name]; ok {
			return codec, nil
		}
		if unsupportedIdents[t.Name] {
			return "", fmt.Errorf("unsupported type %s", t.Name)
		}
		if c.declared[t.Name] {
			return "fields.Self[" + t.Name + "]()", nil
		}
		return "fields.Auto[" + t.Name + "]()", nil
	case *ast.SelectorExpr:
		if c.isDuration(t) {
			if c.micros {
				return "fields.Micros", nil
			}
			return "fields.Seconds", nil
		}
		return "fields.Auto[" + typeString(t) + "]()", nil
	case *ast.StarExpr:
		elem, err := c.codecExpr(t.X)
		if err != nil {
			return "", err
		}
		return "fields.Ptr(" + elem + ")", nil
	case *ast.ArrayType:
		if t.Len == nil {
			elem, err := c.codecExpr(t.Elt)
			if err != nil {
				return "", err
			}
			return "fields.Slice(" + elem + ")", nil
		}
		if isIdent(t.Elt, "byte") || isIdent(t.Elt, "uint8") {
			return "fields.Chars[" + typeString(t) + "]()", nil
		}
		return "fields.Auto[" + typeString(t) + "]()", nil
	case *ast.MapType:
		if isEmptyStruct(t.Value) {
			if key, ok := t.Key.(*ast.Ident); ok && basicCodecs[key.Name] != "" && key.Name != "bool" {
				return "fields.Set(" + basicCodecs[key.Name] + ")", nil
			}
			return "fields.Auto[" + typeString(t) + "]()", nil
		}
		if isIdent(t.Key, "string") {
			elem, err := c.codecExpr(t.Value)
			if err != nil {
				return "", err
			}
			return "fields.Map(" + elem + ")", nil
		}
		return "fields.Auto[" + typeString(t) + "]()", nil
	case *ast.InterfaceType, *ast.FuncType, *ast.ChanType:
		return "", fmt.Errorf("unsupported type %s", typeString(t))
	}
	return "fields.Auto[" + typeString(expr) + "]()", nil
}

func (c *typeCtx) isDuration(expr ast.Expr) bool {
	sel, ok := expr.(*ast.SelectorExpr)
	if !ok || sel.Sel.Name != "Duration" {
		return false
	}
	x, ok := sel.X.(*ast.Ident)
	return ok && c.imports[x.Name] == "time"
}

// defaultCall returns the Default or DefaultFunc call for f, or "" when f
// has no default.
func (c *typeCtx) defaultCall(f *FieldInfo) (string, error) {
	if !f.HasDefault {
		return "", nil
	}
	expr := strings.TrimSpace(f.Default)
	switch {
	case isIdent(f.ASTType, "string"):
		if !isStringLit(expr) {
			expr = strconv.Quote(f.Default)
		}
	case expr == "":
		return "", fmt.Errorf("empty default")
	case c.isDuration(f.ASTType):
		if d, err := time.ParseDuration(expr); err == nil {
			expr = durationExpr(d, f.ASTType.(*ast.SelectorExpr).X.(*ast.Ident).Name)
		}
	}
	if _, err := parser.ParseExpr(expr); err != nil {
		return "", fmt.Errorf("default %q is not a Go expression: %w", f.Default, err)
	}
	switch t := f.ASTType.(type) {
	case *ast.ArrayType:
		if t.Len != nil {
			break
		}
		return fmt.Sprintf(".DefaultFunc(func() %s { return %s })", typeString(t), expr), nil
	case *ast.MapType, *ast.StarExpr:
		return fmt.Sprintf(".DefaultFunc(func() %s { return %s })", typeString(t), expr), nil
	}
	return ".Default(" + expr + ")", nil
}

var durationUnits = []struct {
	d    time.Duration
	name string
}{
	{time.Hour, "Hour"},
	{time.Minute, "Minute"},
	{time.Second, "Second"},
	{time.Millisecond, "Millisecond"},
	{time.Microsecond, "Microsecond"},
}

// durationExpr writes d as a multiple of the largest time unit dividing it.
func durationExpr(d time.Duration, timePkg string) string {
	if d == 0 {
		return "0"
	}
	for _, u := range durationUnits {
		if d%u.d == 0 {
			return fmt.Sprintf("%d*%s.%s", d/u.d, timePkg, u.name)
		}
	}
	return fmt.Sprintf("%d*%s.Nanosecond", d, timePkg)
}

func typeString(expr ast.Expr) string {
	return types.ExprString(expr)
}

func isIdent(expr ast.Expr, name string) bool {
	id, ok := expr.(*ast.Ident)
	return ok && id.Name == name
}

func isEmptyStruct(expr ast.Expr) bool {
	st, ok := expr.(*ast.StructType)
	return ok && (st.Fields == nil || len(st.Fields.List) == 0)
}

func isStringLit(expr string) bool {
	_, err := strconv.Unquote(expr)
	return err == nil && (expr[0] == '"' || expr[0] == '`')
}

// usedPackages returns the package names expr refers to.
func usedPackages(expr ast.Node, into map[string]bool) {
	ast.Inspect(expr, func(n ast.Node) bool {
		if sel, ok := n.(*ast.SelectorExpr); ok {
			if x, ok := sel.X.(*ast.Ident); ok {
				into[x.Name] = true
			}
		}
		return true
	})
}
