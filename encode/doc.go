// Package encode writes IR nodes as JSON, YAML or CBOR.
//
// # Usage
//
//	node := ir.FromMap(map[string]*ir.Node{
//	    "name": ir.FromString("alice"),
//	    "age":  ir.FromInt(30),
//	})
//	err := encode.Encode(node, os.Stdout)
//
//	// compact JSON on one line
//	err := encode.Encode(node, w, encode.EncodeWire(true))
//
//	// YAML with colors
//	err := encode.Encode(node, w, encode.EncodeFormat(format.YAMLFormat))
//
// Object entries are written in document order.
//
// # Related Packages
//
//   - github.com/signadot/datafields/ir - IR representation
//   - github.com/signadot/datafields/parse - Parse text to IR
package encode
