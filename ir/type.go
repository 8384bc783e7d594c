package ir

import "github.com/signadot/datafields/value"

// Type is the variant tag of a Node. It is the value.Kind of the node.
type Type = value.Kind

const (
	NullType   = value.NullKind
	NumberType = value.NumberKind
	StringType = value.StringKind
	BoolType   = value.BoolKind
	ObjectType = value.ObjectKind
	ArrayType  = value.ArrayKind
)

func Types() []Type {
	return value.Kinds()
}
