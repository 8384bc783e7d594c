package fields_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/signadot/datafields/fields"
	"github.com/signadot/datafields/ir"
	"github.com/signadot/datafields/value"
)

// Endpoint is wired the way generated code wires a declared struct.
type Endpoint struct {
	Host string
	Port int
}

var endpointFields = fields.MustDeclare[Endpoint](
	fields.Field("host", func(e *Endpoint) *string { return &e.Host }, fields.String).Default("localhost"),
	fields.Field("port", func(e *Endpoint) *int { return &e.Port }, fields.Int[int]()).Default(80),
)

func (e *Endpoint) SetDefaults() { endpointFields.Init(e) }

func (e *Endpoint) EncodeValue(dst value.Value) { endpointFields.EncodeValue(e, dst) }

func (e *Endpoint) DecodeValue(src value.Value, p fields.Policy) error {
	return endpointFields.DecodeValue(src, e, p)
}

type Route struct {
	Path    string
	Target  Endpoint
	Mirrors []*Endpoint
}

var routeFields = fields.MustDeclare[Route](
	fields.Field("path", func(r *Route) *string { return &r.Path }, fields.String),
	fields.Field("target", func(r *Route) *Endpoint { return &r.Target }, fields.Self[Endpoint]()),
	fields.Field("mirrors", func(r *Route) *[]*Endpoint { return &r.Mirrors }, fields.Slice(fields.Ptr(fields.Self[Endpoint]()))),
)

func TestSelf(t *testing.T) {
	r := routeFields.New()
	if diff := cmp.Diff(&Route{Target: Endpoint{Host: "localhost", Port: 80}}, r); diff != "" {
		t.Errorf("defaults (-want +got):\n%s", diff)
	}

	in := mustParse(t, `{"path": "/", "target": {"port": 8080}, "mirrors": [{"host": "m1"}, null]}`)
	if err := routeFields.DecodeLazy(in, r); err != nil {
		t.Fatal(err)
	}
	want := &Route{
		Path:    "/",
		Target:  Endpoint{Host: "localhost", Port: 8080},
		Mirrors: []*Endpoint{{Host: "m1", Port: 80}, nil},
	}
	if diff := cmp.Diff(want, r); diff != "" {
		t.Errorf("lazy (-want +got):\n%s", diff)
	}

	n := ir.Null()
	routeFields.Encode(r, n)
	back := &Route{}
	if err := routeFields.DecodeStrict(n, back); err != nil {
		t.Fatal(err)
	}
	if !routeFields.Equal(r, back) {
		t.Errorf("round trip differs: %+v", back)
	}
}
