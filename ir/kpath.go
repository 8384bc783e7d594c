package ir

import (
	"strconv"
	"strings"
)

// KPath returns the path of this node from the root of its tree.
//
// Examples:
//   - Root node → ""
//   - Object field "a" → "a"
//   - Array element at index 0 → "[0]"
//   - Mixed "a[0].b" → "a[0].b"
//   - Field "x.y" → "\"x.y\""
func (y *Node) KPath() string {
	if y.Parent == nil {
		return ""
	}
	prefix := y.Parent.KPath()
	switch y.Parent.Type {
	case ObjectType:
		f := QuoteField(y.ParentField)
		if prefix == "" {
			return f
		}
		return prefix + "." + f
	case ArrayType:
		return prefix + "[" + strconv.Itoa(y.ParentIndex) + "]"
	default:
		panic("parent but not in container")
	}
}

// QuoteField quotes an object key when it cannot appear bare in a path.
func QuoteField(f string) string {
	if f == "" || strings.ContainsAny(f, ".[]{}\"' \t\n") {
		return strconv.Quote(f)
	}
	return f
}
