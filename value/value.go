package value

import "errors"

var (
	// ErrKind is returned by scalar accessors when the value holds a
	// different kind than the one requested.
	ErrKind = errors.New("wrong kind")

	// ErrRange is returned by numeric accessors when the number does not
	// fit the requested representation.
	ErrRange = errors.New("out of range")
)

// Value is a mutable handle onto one node of a hierarchical document.
//
// Writers (Field, Resize, Set*) replace whatever the node held before,
// except Field which keeps the entries of a node that is already an object.
type Value interface {
	Kind() Kind

	// Has reports whether the value is an object holding key.
	Has(key string) bool
	// Get returns the entry under key, or a detached null value when the
	// receiver is not an object or has no such entry.
	Get(key string) Value
	// Field returns a writable handle for the entry under key. A receiver
	// that is not an object becomes an empty object first; a missing
	// entry is appended as null.
	Field(key string) Value
	// Keys returns the object keys in document order.
	Keys() []string
	// SetObject makes the value an empty object.
	SetObject()

	// Len returns the number of elements of an array or entries of an
	// object, and 0 for scalars.
	Len() int
	// Index returns a handle on element i of an array, or a detached null
	// value when i is out of range.
	Index(i int) Value
	// Resize makes the value an array of n elements. Elements below
	// min(n, Len()) of an existing array are kept, new ones are null.
	Resize(n int)

	AsString() (string, error)
	AsInt() (int64, error)
	AsUint() (uint64, error)
	AsFloat() (float64, error)
	AsBool() (bool, error)

	SetString(v string)
	SetInt(v int64)
	SetUint(v uint64)
	SetFloat(v float64)
	SetBool(v bool)
	SetNull()
}
