// Package fields gives Go structs a declared field table with
// introspection and policy-driven encoding to hierarchical values.
//
// # Usage
//
// A struct declares its fields once, in order, with a name, an accessor
// and a codec. Defaults are optional.
//
//	type Person struct {
//	    Name  string
//	    Count int
//	    Tags  []string
//	}
//
//	var personFields = fields.MustDeclare[Person](
//	    fields.Field("name", func(p *Person) *string { return &p.Name }, fields.String),
//	    fields.Field("count", func(p *Person) *int { return &p.Count }, fields.Int[int]()).Default(0),
//	    fields.Field("tags", func(p *Person) *[]string { return &p.Tags }, fields.Slice(fields.String)),
//	)
//
// The schema then answers questions about the declared fields
//
//	personFields.MemberIndex("count") // 1
//	personFields.MemberNames()        // [name count tags]
//	personFields.HasMember("age")     // false
//
// and moves values between a *Person and any value.Value, such as an
// *ir.Node:
//
//	node := ir.Null()
//	personFields.Encode(p, node)
//	err := personFields.DecodeStrict(node, p) // absent fields are read as null
//	err = personFields.DecodeLazy(node, p)    // absent fields keep their value
//
// # Codecs
//
// Each field names the Codec used for its type. Scalars have String, Bool,
// Int, Uint and Float. Durations are written as unit suffixed text by
// Seconds and Micros. Fixed size byte arrays are exact length strings with
// Chars. Slice, Set, Map and Ptr compose codecs for collections and
// optional values. A *Schema is itself a Codec, so declared structs nest.
// Types with their own EncodeValue and DecodeValue methods are used through
// Self, and Auto derives a codec by reflection for anything else.
//
// # Policies
//
// Strict decoding reads a declared field with no slot as null: scalars and
// collections become their zero value, while Seconds, Micros and Chars fail
// with ErrMissingField. Lazy decoding leaves such fields untouched. A null
// struct slot has no slots of its own. The policy applies at
// every depth: nested structs, elements, map values and pointees. A slot
// that is present but cannot be decoded fails under either policy.
//
// # Related Packages
//
//   - github.com/signadot/datafields/value - the value interface codecs read and write
//   - github.com/signadot/datafields/ir - in memory documents implementing value.Value
//   - github.com/signadot/datafields/fields/codegen - generates declarations from struct tags
package fields
