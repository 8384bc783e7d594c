// Package parse reads JSON, YAML and CBOR documents into IR nodes.
//
// # Usage
//
//	// JSON is the default; comments and trailing commas are accepted
//	node, err := parse.Parse([]byte(`{"name": "alice", /* years */ "age": 30,}`))
//
//	// other formats
//	node, err := parse.Parse(data, parse.ParseYAML())
//	node, err := parse.Parse(data, parse.ParseFormat(format.CBORFormat))
//
// Object key order is kept as written for JSON and YAML. CBOR maps are
// read in sorted key order. A key repeated within one object keeps its
// first position and its last value.
//
// # Related Packages
//
//   - github.com/signadot/datafields/ir - IR representation
//   - github.com/signadot/datafields/encode - Encode IR to text
package parse
