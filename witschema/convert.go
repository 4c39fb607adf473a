package witschema

import (
	"strconv"

	"go.bytecodealliance.org/wit"

	"github.com/wippyai/onehot/errors"
	"github.com/wippyai/onehot/schema"
)

// Converter turns WIT types into schemas. Each TypeDef converts once, so a
// definition shared by several types maps to a single schema value.
type Converter struct {
	cache  map[*wit.TypeDef]schema.Type
	active map[*wit.TypeDef]bool
}

func NewConverter() *Converter {
	return &Converter{
		cache:  make(map[*wit.TypeDef]schema.Type),
		active: make(map[*wit.TypeDef]bool),
	}
}

// FromWIT converts a single WIT type with a fresh Converter.
func FromWIT(t wit.Type) (schema.Type, error) {
	return NewConverter().Convert(t)
}

// Convert returns the schema for t.
func (c *Converter) Convert(t wit.Type) (schema.Type, error) {
	return c.convert(t, nil)
}

func (c *Converter) convert(t wit.Type, path []string) (schema.Type, error) {
	switch typ := t.(type) {
	case nil:
		return nil, errors.New(errors.PhaseCompile, errors.KindNilPointer).
			Path(path...).
			Detail("missing WIT type").
			Build()
	case wit.Bool:
		return schema.Bool{}, nil
	case *wit.TypeDef:
		return c.convertTypeDef(typ, path)
	default:
		return nil, unsupported(path, t)
	}
}

func (c *Converter) convertTypeDef(td *wit.TypeDef, path []string) (schema.Type, error) {
	if cached, ok := c.cache[td]; ok {
		return cached, nil
	}
	if c.active[td] {
		return nil, errors.Recursive(errors.PhaseCompile, path, typeDefName(td))
	}
	c.active[td] = true
	defer delete(c.active, td)

	name := typeDefName(td)

	var out schema.Type
	var err error
	switch kind := td.Kind.(type) {
	case *wit.Record:
		out, err = c.convertRecord(name, kind, path)
	case *wit.Variant:
		out, err = c.convertVariant(name, kind, path)
	case *wit.Enum:
		cases := make([]string, len(kind.Cases))
		for i, ec := range kind.Cases {
			cases[i] = ec.Name
		}
		out = schema.Enum(name, cases...)
	case *wit.Flags:
		flags := make([]string, len(kind.Flags))
		for i, f := range kind.Flags {
			flags[i] = f.Name
		}
		out = schema.Flags(name, flags...)
	case *wit.Tuple:
		out, err = c.convertTuple(kind, path)
	case *wit.Option:
		var elem schema.Type
		elem, err = c.convert(kind.Type, appendPath(path, "[some]"))
		out = schema.OptionOf(elem)
	case *wit.Result:
		out, err = c.convertResult(name, kind, path)
	case wit.Type:
		var elem schema.Type
		elem, err = c.convert(kind, path)
		if err == nil && name != "" {
			out = schema.RefTo(name, elem)
		} else {
			out = elem
		}
	default:
		return nil, errors.New(errors.PhaseCompile, errors.KindUnsupported).
			Path(path...).
			SchemaType(name).
			Detail("WIT %T has no one-hot layout", td.Kind).
			Build()
	}
	if err != nil {
		return nil, err
	}

	c.cache[td] = out
	return out, nil
}

func (c *Converter) convertRecord(name string, r *wit.Record, path []string) (schema.Type, error) {
	fields := make([]schema.Field, len(r.Fields))
	for i, f := range r.Fields {
		ft, err := c.convert(f.Type, appendPath(path, f.Name))
		if err != nil {
			return nil, err
		}
		fields[i] = schema.Named(f.Name, ft)
	}
	return schema.NewStruct(name, fields...), nil
}

func (c *Converter) convertVariant(name string, v *wit.Variant, path []string) (schema.Type, error) {
	variants := make([]schema.Variant, len(v.Cases))
	for i, vc := range v.Cases {
		if vc.Type == nil {
			variants[i] = schema.Case(vc.Name)
			continue
		}
		ft, err := c.convert(vc.Type, appendPath(path, vc.Name))
		if err != nil {
			return nil, err
		}
		variants[i] = schema.Case(vc.Name, schema.Positional(ft)...)
	}
	return schema.NewUnion(name, variants...), nil
}

func (c *Converter) convertTuple(t *wit.Tuple, path []string) (schema.Type, error) {
	if len(t.Types) < schema.MinTupleLen || len(t.Types) > schema.MaxTupleLen {
		return nil, errors.New(errors.PhaseCompile, errors.KindUnsupported).
			Path(path...).
			Detail("tuples must have %d to %d components, got %d", schema.MinTupleLen, schema.MaxTupleLen, len(t.Types)).
			Build()
	}
	elems := make([]schema.Type, len(t.Types))
	for i, e := range t.Types {
		et, err := c.convert(e, appendPath(path, "["+strconv.Itoa(i)+"]"))
		if err != nil {
			return nil, err
		}
		elems[i] = et
	}
	return schema.TupleOf(elems...), nil
}

func (c *Converter) convertResult(name string, r *wit.Result, path []string) (schema.Type, error) {
	ok := schema.Case("ok")
	if r.OK != nil {
		t, err := c.convert(r.OK, appendPath(path, "[ok]"))
		if err != nil {
			return nil, err
		}
		ok = schema.Case("ok", schema.Positional(t)...)
	}
	bad := schema.Case("err")
	if r.Err != nil {
		t, err := c.convert(r.Err, appendPath(path, "[err]"))
		if err != nil {
			return nil, err
		}
		bad = schema.Case("err", schema.Positional(t)...)
	}
	return schema.NewUnion(name, ok, bad), nil
}

func typeDefName(td *wit.TypeDef) string {
	if td.Name != nil {
		return *td.Name
	}
	return ""
}

func unsupported(path []string, t wit.Type) error {
	return errors.New(errors.PhaseCompile, errors.KindUnsupported).
		Path(path...).
		Detail("WIT %T has no one-hot layout", t).
		Build()
}

func appendPath(path []string, elem string) []string {
	return append(append([]string{}, path...), elem)
}
