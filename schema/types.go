package schema

import (
	"strconv"
	"strings"
)

// Type is an encodable shape description.
type Type interface {
	String() string
	isType()
}

// Bool is a boolean, encoded as two one-hot slots.
type Bool struct{}

// Unit is the empty type. It occupies no slots and always scores 1.
type Unit struct{}

// Ref is a named wrapper that encodes exactly like Elem.
type Ref struct {
	Elem Type
	Name string
}

// Option is an optional value: a none slot, a some slot, then Elem.
type Option struct {
	Elem Type
}

// Array is a fixed-length sequence of Len elements of Elem.
type Array struct {
	Elem Type
	Len  int
}

// Tuple is a positional product of two to four components.
type Tuple struct {
	Elems []Type
}

// Field is a struct or variant component. An empty Name marks a positional
// field.
type Field struct {
	Type Type
	Name string
}

// Struct is a product of fields laid out in declaration order.
type Struct struct {
	Name   string
	Fields []Field
}

// Variant is one alternative of a Union.
type Variant struct {
	Name   string
	Fields []Field
}

// Union is a tagged union. Each variant reserves one tag slot followed by
// its payload, and the variants are concatenated rather than overlapped.
type Union struct {
	Name     string
	Variants []Variant
}

// RawUnion is an untagged overlay of fields. It cannot be encoded.
type RawUnion struct {
	Name   string
	Fields []Field
}

// Custom is a user-implemented encoding of a fixed Width.
type Custom struct {
	Name  string
	Width int
}

func (Bool) isType()      {}
func (Unit) isType()      {}
func (*Ref) isType()      {}
func (*Option) isType()   {}
func (*Array) isType()    {}
func (*Tuple) isType()    {}
func (*Struct) isType()   {}
func (*Union) isType()    {}
func (*RawUnion) isType() {}
func (*Custom) isType()   {}

func (Bool) String() string { return "bool" }
func (Unit) String() string { return "unit" }

func (r *Ref) String() string {
	if r.Name != "" {
		return r.Name
	}
	return "ref<" + typeString(r.Elem) + ">"
}

func (o *Option) String() string {
	return "option<" + typeString(o.Elem) + ">"
}

func (a *Array) String() string {
	return "array<" + typeString(a.Elem) + ", " + strconv.Itoa(a.Len) + ">"
}

func (t *Tuple) String() string {
	parts := make([]string, len(t.Elems))
	for i, e := range t.Elems {
		parts[i] = typeString(e)
	}
	return "tuple<" + strings.Join(parts, ", ") + ">"
}

func (s *Struct) String() string {
	if s.Name != "" {
		return s.Name
	}
	return "struct" + fieldsString(s.Fields)
}

func (u *Union) String() string {
	if u.Name != "" {
		return u.Name
	}
	parts := make([]string, len(u.Variants))
	for i, v := range u.Variants {
		parts[i] = v.String()
	}
	return "union{" + strings.Join(parts, ", ") + "}"
}

func (r *RawUnion) String() string {
	if r.Name != "" {
		return "raw-union " + r.Name
	}
	return "raw-union" + fieldsString(r.Fields)
}

func (c *Custom) String() string {
	if c.Name != "" {
		return c.Name
	}
	return "custom<" + strconv.Itoa(c.Width) + ">"
}

// String renders the variant as Name, Name(a, b) or Name{x: a}.
func (v Variant) String() string {
	if len(v.Fields) == 0 {
		return v.Name
	}
	return v.Name + fieldsString(v.Fields)
}

// IsPositional reports whether the fields are unnamed. An empty list is not
// positional.
func IsPositional(fields []Field) bool {
	return len(fields) > 0 && fields[0].Name == ""
}

// FieldLabel returns the field's name, or its index for positional fields.
func FieldLabel(fields []Field, i int) string {
	if fields[i].Name != "" {
		return fields[i].Name
	}
	return strconv.Itoa(i)
}

func fieldsString(fields []Field) string {
	if IsPositional(fields) {
		parts := make([]string, len(fields))
		for i, f := range fields {
			parts[i] = typeString(f.Type)
		}
		return "(" + strings.Join(parts, ", ") + ")"
	}
	parts := make([]string, len(fields))
	for i, f := range fields {
		parts[i] = f.Name + ": " + typeString(f.Type)
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

func typeString(t Type) string {
	if t == nil {
		return "<nil>"
	}
	return t.String()
}
