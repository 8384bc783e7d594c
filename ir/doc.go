// Package ir provides the in-memory document tree used as the external
// value of declared structures.
//
// # Node Structure
//
// A Node is a recursive tagged union. The Type field selects which of the
// other fields carry the value:
//
//   - NullType: no payload
//   - BoolType: Bool
//   - NumberType: Int64, Float64, or Number (decimal text for integers that
//     do not fit an int64)
//   - StringType: String
//   - ArrayType: Values
//   - ObjectType: Fields (string key nodes) and Values, index aligned
//
// Every child records its Parent, its ParentIndex and, inside objects, its
// ParentField, so a node can report its own path (see KPath).
//
// # Creating Nodes
//
//	obj := ir.FromKeyVals([]ir.KeyVal{
//	    {Key: ir.FromString("name"), Val: ir.FromString("x")},
//	    {Key: ir.FromString("count"), Val: ir.FromInt(3)},
//	})
//	arr := ir.FromSlice([]*ir.Node{ir.FromInt(1), ir.FromInt(2)})
//
// # Value Handles
//
// *Node implements value.Value. Field, Index and Resize edit the tree in
// place; Get on a missing key returns a fresh null node that is not linked
// into the tree.
//
// # Related Packages
//
//   - github.com/signadot/datafields/value - capability interface
//   - github.com/signadot/datafields/parse - bytes to IR
//   - github.com/signadot/datafields/encode - IR to bytes
package ir
