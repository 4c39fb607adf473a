package schema

import (
	"strconv"

	"github.com/wippyai/onehot/errors"
)

// MinTupleLen and MaxTupleLen bound the arity of Tuple.
const (
	MinTupleLen = 2
	MaxTupleLen = 4
)

// Validate checks that t describes a finite, encodable layout. It rejects nil
// types, raw unions, tuples outside 2..4 components, negative lengths and
// widths, duplicate or mixed named/positional fields, duplicate variants, and
// types that contain themselves.
func Validate(t Type) error {
	v := validator{active: make(map[Type]bool)}
	return v.validate(t, nil)
}

type validator struct {
	active map[Type]bool
}

func (v *validator) validate(t Type, path []string) error {
	if t == nil {
		return errors.New(errors.PhaseValidate, errors.KindNilPointer).
			Path(path...).
			Detail("missing type").
			Build()
	}

	switch t.(type) {
	case Bool, Unit:
		return nil
	}

	if v.active[t] {
		return errors.Recursive(errors.PhaseValidate, path, t.String())
	}
	v.active[t] = true
	defer delete(v.active, t)

	switch typ := t.(type) {
	case *Ref:
		return v.validate(typ.Elem, path)
	case *Option:
		return v.validate(typ.Elem, appendPath(path, "[some]"))
	case *Array:
		if typ.Len < 0 {
			return errors.New(errors.PhaseValidate, errors.KindInvalidData).
				Path(path...).
				SchemaType(typ.String()).
				Detail("negative array length %d", typ.Len).
				Build()
		}
		return v.validate(typ.Elem, appendPath(path, "[elem]"))
	case *Tuple:
		if len(typ.Elems) < MinTupleLen || len(typ.Elems) > MaxTupleLen {
			return errors.New(errors.PhaseValidate, errors.KindUnsupported).
				Path(path...).
				SchemaType(typ.String()).
				Detail("tuples must have %d to %d components, got %d", MinTupleLen, MaxTupleLen, len(typ.Elems)).
				Build()
		}
		for i, e := range typ.Elems {
			if err := v.validate(e, appendPath(path, "["+strconv.Itoa(i)+"]")); err != nil {
				return err
			}
		}
		return nil
	case *Struct:
		return v.validateFields(typ.Fields, path)
	case *Union:
		seen := make(map[string]bool, len(typ.Variants))
		for _, vr := range typ.Variants {
			if vr.Name == "" {
				return errors.New(errors.PhaseValidate, errors.KindInvalidData).
					Path(path...).
					SchemaType(typ.String()).
					Detail("variant without a name").
					Build()
			}
			if seen[vr.Name] {
				return errors.Duplicate(errors.PhaseValidate, path, "variant", vr.Name)
			}
			seen[vr.Name] = true
			if err := v.validateFields(vr.Fields, appendPath(path, vr.Name)); err != nil {
				return err
			}
		}
		return nil
	case *RawUnion:
		return errors.New(errors.PhaseValidate, errors.KindUnsupported).
			Path(path...).
			SchemaType(typ.String()).
			Detail("untagged unions have no slot layout").
			Build()
	case *Custom:
		if typ.Width < 0 {
			return errors.New(errors.PhaseValidate, errors.KindInvalidData).
				Path(path...).
				SchemaType(typ.String()).
				Detail("negative width %d", typ.Width).
				Build()
		}
		return nil
	default:
		return errors.New(errors.PhaseValidate, errors.KindUnsupported).
			Path(path...).
			Detail("unknown schema type %T", t).
			Build()
	}
}

func (v *validator) validateFields(fields []Field, path []string) error {
	positional := IsPositional(fields)
	seen := make(map[string]bool, len(fields))
	for i, f := range fields {
		if (f.Name == "") != positional {
			return errors.New(errors.PhaseValidate, errors.KindInvalidData).
				Path(path...).
				Detail("field %d mixes named and positional fields", i).
				Build()
		}
		if f.Name != "" {
			if seen[f.Name] {
				return errors.Duplicate(errors.PhaseValidate, path, "field", f.Name)
			}
			seen[f.Name] = true
		}
		if err := v.validate(f.Type, appendPath(path, FieldLabel(fields, i))); err != nil {
			return err
		}
	}
	return nil
}

func appendPath(path []string, elem string) []string {
	return append(append([]string{}, path...), elem)
}
