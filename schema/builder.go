package schema

// OptionOf returns option<elem>.
func OptionOf(elem Type) *Option {
	return &Option{Elem: elem}
}

// ArrayOf returns a fixed array of n elements.
func ArrayOf(elem Type, n int) *Array {
	return &Array{Elem: elem, Len: n}
}

// TupleOf returns a tuple of the given components.
func TupleOf(elems ...Type) *Tuple {
	return &Tuple{Elems: elems}
}

// RefTo returns a named pass-through wrapper around elem.
func RefTo(name string, elem Type) *Ref {
	return &Ref{Name: name, Elem: elem}
}

// NewStruct returns a struct with the given fields in declaration order.
func NewStruct(name string, fields ...Field) *Struct {
	return &Struct{Name: name, Fields: fields}
}

// NewUnion returns a tagged union with the given variants in declaration order.
func NewUnion(name string, variants ...Variant) *Union {
	return &Union{Name: name, Variants: variants}
}

// NewCustom returns a user-implemented encoding of the given width.
func NewCustom(name string, width int) *Custom {
	return &Custom{Name: name, Width: width}
}

// Named returns a named field.
func Named(name string, t Type) Field {
	return Field{Name: name, Type: t}
}

// Positional returns unnamed fields, one per type.
func Positional(types ...Type) []Field {
	fields := make([]Field, len(types))
	for i, t := range types {
		fields[i] = Field{Type: t}
	}
	return fields
}

// Case returns a variant with the given fields. With no fields the variant is
// a unit variant and occupies only its tag slot.
func Case(name string, fields ...Field) Variant {
	return Variant{Name: name, Fields: fields}
}

// Enum returns a union whose variants are all unit variants.
func Enum(name string, cases ...string) *Union {
	variants := make([]Variant, len(cases))
	for i, c := range cases {
		variants[i] = Variant{Name: c}
	}
	return &Union{Name: name, Variants: variants}
}

// Flags returns a struct of independent boolean fields.
func Flags(name string, flags ...string) *Struct {
	fields := make([]Field, len(flags))
	for i, f := range flags {
		fields[i] = Field{Name: f, Type: Bool{}}
	}
	return &Struct{Name: name, Fields: fields}
}
