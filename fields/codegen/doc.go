// Package codegen generates field declarations for Go structs.
//
// Structs marked with a //fields:declare directive get a package level
// *fields.Schema variable and the methods Fields, SetDefaults,
// EncodeValue, DecodeValue, DecodeStrict and DecodeLazy, so the type
// satisfies fields.Object without any hand written declaration.
//
//	//fields:declare
//	type Person struct {
//		Name  string   `field:"name"`
//		Count int      `field:"count,default=7"`
//		Tags  []string `field:"tags"`
//	}
//
// Field tags take the declared name first, then options:
//
//	default=<expr>  initial value; a Go expression, or plain text for strings
//	                and time.ParseDuration text for durations
//	micros          encode durations in microseconds instead of seconds
//
// Option values containing commas may be quoted with ' or ". A tag of
// "-" skips the field. Generated code goes to <package>_fields.go.
//
// # Related Packages
//
//   - github.com/signadot/datafields/fields - the declaration runtime
package codegen
