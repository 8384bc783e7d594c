// Package value defines the capability interface through which declared
// structures are encoded into and decoded from a hierarchical document.
//
// A Value is a handle onto one node of an in-memory tree: an object, an
// array, a scalar or null. Handles returned by Field and Index alias the
// storage of the tree they came from, so writing through them updates the
// document in place. Get never fails: an absent key yields a detached null.
//
// The reference implementation is *ir.Node.
//
// # Related Packages
//
//   - github.com/signadot/datafields/ir - tree implementation
//   - github.com/signadot/datafields/fields - declaration and codecs
package value
