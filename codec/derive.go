package codec

import (
	"reflect"
	"strconv"

	"go.uber.org/zap"

	"github.com/wippyai/onehot/errors"
	"github.com/wippyai/onehot/schema"
)

var tupleShapeType = reflect.TypeOf((*tupleShape)(nil)).Elem()

// DeriveSchema infers a schema from a Go type with the default compiler.
func DeriveSchema(goType reflect.Type) (schema.Type, error) {
	return defaultCompiler.DeriveSchema(goType)
}

// DeriveSchema infers a schema from a Go type:
//
//	Encodable                 custom of its EncodingSize
//	bool                      bool
//	struct{}                  unit
//	*T                        option<T>
//	[N]T                      array<T, N>
//	Tuple2, Tuple3, Tuple4    tuple
//	struct embedding Union    union, one variant per field
//	struct                    struct, one field per exported field
//	named bool or array       ref to the underlying shape
//
// Any other kind, and any type that contains itself, is rejected. Derived
// schemas are cached, so a Go type always maps to the same schema value.
func (c *Compiler) DeriveSchema(goType reflect.Type) (schema.Type, error) {
	if goType == nil {
		return nil, errors.New(errors.PhaseCompile, errors.KindNilPointer).
			Detail("Go type cannot be nil").
			Build()
	}
	if cached, ok := c.derived.Load(goType); ok {
		return cached.(schema.Type), nil
	}
	d := deriver{c: c, visiting: make(map[reflect.Type]bool)}
	s, err := d.derive(goType, nil)
	if err != nil {
		return nil, err
	}
	c.logger().Debug("derived schema",
		zap.Stringer("go_type", goType),
		zap.Stringer("schema", s))
	return s, nil
}

type deriver struct {
	c        *Compiler
	visiting map[reflect.Type]bool
}

func (d *deriver) derive(t reflect.Type, path []string) (schema.Type, error) {
	if cached, ok := d.c.derived.Load(t); ok {
		return cached.(schema.Type), nil
	}
	if d.visiting[t] {
		return nil, errors.Recursive(errors.PhaseCompile, path, t.String())
	}
	d.visiting[t] = true
	defer delete(d.visiting, t)

	s, err := d.deriveType(t, path)
	if err != nil {
		return nil, err
	}
	actual, _ := d.c.derived.LoadOrStore(t, s)
	return actual.(schema.Type), nil
}

func (d *deriver) deriveType(t reflect.Type, path []string) (schema.Type, error) {
	// *T implements Encodable whenever T does, so pointers are options
	// before they are anything else.
	if t.Kind() != reflect.Pointer && implementsEncodable(t) {
		return schema.NewCustom(t.Name(), encodableWidth(t)), nil
	}

	switch t.Kind() {
	case reflect.Bool:
		if t.PkgPath() != "" {
			return schema.RefTo(t.Name(), schema.Bool{}), nil
		}
		return schema.Bool{}, nil

	case reflect.Pointer:
		elem, err := d.derive(t.Elem(), appendPath(path, "[some]"))
		if err != nil {
			return nil, err
		}
		return schema.OptionOf(elem), nil

	case reflect.Array:
		elem, err := d.derive(t.Elem(), appendPath(path, "[elem]"))
		if err != nil {
			return nil, err
		}
		arr := schema.ArrayOf(elem, t.Len())
		if t.Name() != "" {
			return schema.RefTo(t.Name(), arr), nil
		}
		return arr, nil

	case reflect.Struct:
		switch {
		case t.NumField() == 0:
			return schema.Unit{}, nil
		case t.Implements(tupleShapeType):
			return d.deriveTuple(t, path)
		case isUnionStruct(t):
			return d.deriveUnion(t, path)
		default:
			fields, err := d.deriveFields(t, path)
			if err != nil {
				return nil, err
			}
			return schema.NewStruct(t.Name(), fields...), nil
		}

	default:
		return nil, errors.New(errors.PhaseCompile, errors.KindUnsupported).
			Path(path...).
			GoType(t.String()).
			Detail("no encoding for %s values", t.Kind()).
			Build()
	}
}

func isUnionStruct(t reflect.Type) bool {
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.Anonymous && f.Type == unionType {
			return true
		}
	}
	return false
}

func (d *deriver) deriveTuple(t reflect.Type, path []string) (schema.Type, error) {
	elems := make([]schema.Type, t.NumField())
	for i := range elems {
		elem, err := d.derive(t.Field(i).Type, appendPath(path, strconv.Itoa(i)))
		if err != nil {
			return nil, err
		}
		elems[i] = elem
	}
	return schema.TupleOf(elems...), nil
}

func (d *deriver) deriveFields(t reflect.Type, path []string) ([]schema.Field, error) {
	goFields := d.c.exportedFields(t)
	fields := make([]schema.Field, len(goFields))
	for i, gf := range goFields {
		name := fieldName(gf, d.c.tag)
		ft, err := d.derive(gf.Type, appendPath(path, name))
		if err != nil {
			return nil, err
		}
		fields[i] = schema.Named(name, ft)
	}
	return fields, nil
}

func (d *deriver) deriveUnion(t reflect.Type, path []string) (schema.Type, error) {
	goFields := d.c.exportedFields(t)
	variants := make([]schema.Variant, len(goFields))
	for i, gf := range goFields {
		name := fieldName(gf, d.c.tag)
		casePath := appendPath(path, name)

		switch gf.Type.Kind() {
		case reflect.Bool:
			variants[i] = schema.Case(name)
		case reflect.Pointer:
			fields, err := d.derivePayload(gf.Type.Elem(), casePath)
			if err != nil {
				return nil, err
			}
			variants[i] = schema.Case(name, fields...)
		default:
			return nil, errors.TypeMismatch(errors.PhaseCompile, casePath, gf.Type.String(), "bool or pointer")
		}
	}
	return schema.NewUnion(t.Name(), variants...), nil
}

// derivePayload turns a variant payload type into variant fields. A plain
// struct contributes its fields; any other type is a single positional
// field.
func (d *deriver) derivePayload(p reflect.Type, path []string) ([]schema.Field, error) {
	plain := p.Kind() == reflect.Struct &&
		!implementsEncodable(p) &&
		!p.Implements(tupleShapeType) &&
		!isUnionStruct(p)
	if plain {
		if d.visiting[p] {
			return nil, errors.Recursive(errors.PhaseCompile, path, p.String())
		}
		d.visiting[p] = true
		defer delete(d.visiting, p)
		return d.deriveFields(p, path)
	}

	ft, err := d.derive(p, path)
	if err != nil {
		return nil, err
	}
	return schema.Positional(ft), nil
}

func fieldName(f reflect.StructField, tag string) string {
	if name := tagName(f, tag); name != "" {
		return name
	}
	return f.Name
}
