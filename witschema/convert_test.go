package witschema

import (
	"errors"
	"testing"

	"go.bytecodealliance.org/wit"

	oerrors "github.com/wippyai/onehot/errors"
	"github.com/wippyai/onehot/schema"
)

func strPtr(s string) *string {
	return &s
}

func named(name string, kind wit.TypeDefKind) *wit.TypeDef {
	return &wit.TypeDef{Name: strPtr(name), Kind: kind}
}

func sizeOf(t *testing.T, s schema.Type) int {
	t.Helper()
	if err := schema.Validate(s); err != nil {
		t.Fatalf("converted schema is invalid: %v", err)
	}
	return schemaSize(s)
}

// schemaSize mirrors the layout rules so these tests stay independent of
// the codec packages.
func schemaSize(s schema.Type) int {
	switch typ := s.(type) {
	case schema.Bool:
		return 2
	case schema.Unit:
		return 0
	case *schema.Ref:
		return schemaSize(typ.Elem)
	case *schema.Option:
		return 2 + schemaSize(typ.Elem)
	case *schema.Array:
		return typ.Len * schemaSize(typ.Elem)
	case *schema.Tuple:
		n := 0
		for _, e := range typ.Elems {
			n += schemaSize(e)
		}
		return n
	case *schema.Struct:
		n := 0
		for _, f := range typ.Fields {
			n += schemaSize(f.Type)
		}
		return n
	case *schema.Union:
		n := 0
		for _, v := range typ.Variants {
			n++
			for _, f := range v.Fields {
				n += schemaSize(f.Type)
			}
		}
		return n
	case *schema.Custom:
		return typ.Width
	}
	return -1
}

func TestConvert_Shapes(t *testing.T) {
	tests := []struct {
		typ  wit.Type
		name string
		str  string
		size int
	}{
		{
			name: "bool",
			typ:  wit.Bool{},
			str:  "bool",
			size: 2,
		},
		{
			name: "record",
			typ: named("piece", &wit.Record{Fields: []wit.Field{
				{Name: "king", Type: wit.Bool{}},
				{Name: "owner", Type: wit.Bool{}},
			}}),
			str:  "piece",
			size: 4,
		},
		{
			name: "variant",
			typ: named("cell", &wit.Variant{Cases: []wit.Case{
				{Name: "empty"},
				{Name: "marked", Type: wit.Bool{}},
			}}),
			str:  "cell",
			size: 4,
		},
		{
			name: "enum",
			typ: named("color", &wit.Enum{Cases: []wit.EnumCase{
				{Name: "red"}, {Name: "green"}, {Name: "blue"},
			}}),
			str:  "color",
			size: 3,
		},
		{
			name: "flags",
			typ: named("perms", &wit.Flags{Flags: []wit.Flag{
				{Name: "read"}, {Name: "write"},
			}}),
			str:  "perms",
			size: 4,
		},
		{
			name: "tuple",
			typ:  &wit.TypeDef{Kind: &wit.Tuple{Types: []wit.Type{wit.Bool{}, wit.Bool{}, wit.Bool{}}}},
			str:  "tuple<bool, bool, bool>",
			size: 6,
		},
		{
			name: "option",
			typ:  &wit.TypeDef{Kind: &wit.Option{Type: wit.Bool{}}},
			str:  "option<bool>",
			size: 4,
		},
		{
			name: "result",
			typ:  &wit.TypeDef{Kind: &wit.Result{OK: wit.Bool{}}},
			str:  "union{ok(bool), err}",
			size: 4,
		},
		{
			name: "alias",
			typ:  named("flag", wit.Bool{}),
			str:  "flag",
			size: 2,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := FromWIT(tc.typ)
			if err != nil {
				t.Fatalf("FromWIT: %v", err)
			}
			if got.String() != tc.str {
				t.Errorf("schema = %s, want %s", got, tc.str)
			}
			if size := sizeOf(t, got); size != tc.size {
				t.Errorf("size = %d, want %d", size, tc.size)
			}
		})
	}
}

func TestConvert_VariantCases(t *testing.T) {
	got, err := FromWIT(named("cell", &wit.Variant{Cases: []wit.Case{
		{Name: "empty"},
		{Name: "marked", Type: wit.Bool{}},
	}}))
	if err != nil {
		t.Fatal(err)
	}
	u := got.(*schema.Union)
	want := []string{"empty", "marked(bool)"}
	if len(u.Variants) != len(want) {
		t.Fatalf("got %d variants, want %d", len(u.Variants), len(want))
	}
	for i, w := range want {
		if u.Variants[i].String() != w {
			t.Errorf("variant %d = %s, want %s", i, u.Variants[i], w)
		}
	}
}

func TestConvert_AliasBecomesRef(t *testing.T) {
	got, err := FromWIT(named("flag", wit.Bool{}))
	if err != nil {
		t.Fatal(err)
	}
	ref, ok := got.(*schema.Ref)
	if !ok {
		t.Fatalf("got %T, want *schema.Ref", got)
	}
	if ref.Name != "flag" {
		t.Errorf("ref name = %q, want flag", ref.Name)
	}
	if _, ok := ref.Elem.(schema.Bool); !ok {
		t.Errorf("ref elem = %T, want schema.Bool", ref.Elem)
	}
}

func TestConvert_SharedTypeDef(t *testing.T) {
	piece := named("piece", &wit.Record{Fields: []wit.Field{{Name: "king", Type: wit.Bool{}}}})
	board := named("board", &wit.Record{Fields: []wit.Field{
		{Name: "a", Type: piece},
		{Name: "b", Type: piece},
	}})

	c := NewConverter()
	got, err := c.Convert(board)
	if err != nil {
		t.Fatal(err)
	}
	s := got.(*schema.Struct)
	if s.Fields[0].Type != s.Fields[1].Type {
		t.Error("a shared WIT definition should map to one schema value")
	}
	again, err := c.Convert(piece)
	if err != nil {
		t.Fatal(err)
	}
	if again != s.Fields[0].Type {
		t.Error("converting the same definition twice should hit the cache")
	}
}

func TestConvert_Nested(t *testing.T) {
	piece := named("piece", &wit.Record{Fields: []wit.Field{
		{Name: "king", Type: wit.Bool{}},
		{Name: "owner", Type: wit.Bool{}},
	}})
	cell := named("cell", &wit.Variant{Cases: []wit.Case{
		{Name: "empty"},
		{Name: "piece", Type: piece},
	}})
	game := named("game", &wit.Record{Fields: []wit.Field{
		{Name: "cell", Type: cell},
		{Name: "turn", Type: wit.Bool{}},
		{Name: "hint", Type: &wit.TypeDef{Kind: &wit.Option{Type: wit.Bool{}}}},
	}})

	got, err := FromWIT(game)
	if err != nil {
		t.Fatal(err)
	}
	// cell: 1 + (1 + 4) = 6, turn: 2, hint: 4
	if size := sizeOf(t, got); size != 12 {
		t.Errorf("size = %d, want 12", size)
	}
}

func TestConvert_Unsupported(t *testing.T) {
	tests := []struct {
		typ  wit.Type
		name string
		path []string
	}{
		{name: "u32", typ: wit.U32{}},
		{name: "string", typ: wit.String{}},
		{name: "list", typ: &wit.TypeDef{Kind: &wit.List{Type: wit.Bool{}}}},
		{name: "one_tuple", typ: &wit.TypeDef{Kind: &wit.Tuple{Types: []wit.Type{wit.Bool{}}}}},
		{
			name: "five_tuple",
			typ: &wit.TypeDef{Kind: &wit.Tuple{Types: []wit.Type{
				wit.Bool{}, wit.Bool{}, wit.Bool{}, wit.Bool{}, wit.Bool{},
			}}},
		},
		{
			name: "nested_field",
			typ: named("rec", &wit.Record{Fields: []wit.Field{
				{Name: "ok", Type: wit.Bool{}},
				{Name: "count", Type: wit.U8{}},
			}}),
			path: []string{"count"},
		},
		{
			name: "variant_payload",
			typ: named("v", &wit.Variant{Cases: []wit.Case{
				{Name: "text", Type: wit.String{}},
			}}),
			path: []string{"text"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := FromWIT(tc.typ)
			var e *oerrors.Error
			if !errors.As(err, &e) {
				t.Fatalf("err = %v, want *errors.Error", err)
			}
			if e.Kind != oerrors.KindUnsupported {
				t.Errorf("kind = %s, want unsupported", e.Kind)
			}
			if tc.path != nil && !equalPath(e.Path, tc.path) {
				t.Errorf("path = %v, want %v", e.Path, tc.path)
			}
		})
	}
}

func TestConvert_Nil(t *testing.T) {
	_, err := FromWIT(nil)
	var e *oerrors.Error
	if !errors.As(err, &e) || e.Kind != oerrors.KindNilPointer {
		t.Fatalf("err = %v, want nil_pointer", err)
	}
}

func equalPath(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
