package codec

import (
	"reflect"
	"slices"
	"sort"

	"github.com/wippyai/onehot/codec/internal/layout"
	"github.com/wippyai/onehot/codec/internal/slots"
	"github.com/wippyai/onehot/errors"
	"github.com/wippyai/onehot/schema"
)

// Dynamic values mirror decoded JSON:
//
//	bool            bool
//	unit            anything, ignored
//	option<T>       nil when absent, else a T value
//	array, tuple    []any (any slice or array of matching length)
//	named fields    map[string]any with exactly the declared keys
//	positional      []any
//	union           "Variant" for unit variants, or {"Variant": payload}
//	custom          a value implementing Encodable
//
// A variant with one positional field takes that field's value as its
// payload; other payloads follow the named or positional rule.

// CompileDynamic compiles s for the JSON-shaped values described above.
func (c *Compiler) CompileDynamic(s schema.Type) (*CompiledType, error) {
	return c.Compile(s, anyType)
}

func (c *Compiler) compileDynamic(s schema.Type, info layout.Info, path []string) (*CompiledType, error) {
	ct := &CompiledType{Schema: s, GoType: anyType, Size: info.Size, Dynamic: true}

	switch t := s.(type) {
	case schema.Bool:
		ct.Kind = KindBool
	case schema.Unit:
		ct.Kind = KindUnit
	case *schema.Ref:
		elem, err := c.compile(t.Elem, anyType, path)
		if err != nil {
			return nil, err
		}
		ct.Kind, ct.Elem = KindRef, elem
	case *schema.Option:
		elem, err := c.compile(t.Elem, anyType, appendPath(path, "[some]"))
		if err != nil {
			return nil, err
		}
		ct.Kind, ct.Elem = KindOption, elem
	case *schema.Array:
		elem, err := c.compile(t.Elem, anyType, appendPath(path, "[elem]"))
		if err != nil {
			return nil, err
		}
		ct.Kind, ct.Elem, ct.Len = KindArray, elem, t.Len
	case *schema.Tuple:
		fields, err := c.compileDynamicFields(schema.Positional(t.Elems...), path)
		if err != nil {
			return nil, err
		}
		ct.Kind, ct.Fields = KindTuple, fields
	case *schema.Struct:
		fields, err := c.compileDynamicFields(t.Fields, path)
		if err != nil {
			return nil, err
		}
		ct.Kind, ct.Fields = KindStruct, fields
	case *schema.Union:
		ct.Kind = KindUnion
		ct.Cases = make([]CompiledCase, len(t.Variants))
		for i, v := range t.Variants {
			fields, err := c.compileDynamicFields(v.Fields, appendPath(path, v.Name))
			if err != nil {
				return nil, err
			}
			ct.Cases[i] = CompiledCase{
				Name:   v.Name,
				Fields: fields,
				Offset: info.Parts[i].Offset,
				Size:   info.Parts[i].Size - 1,
				Flag:   len(v.Fields) == 0,
			}
		}
	case *schema.Custom:
		ct.Kind = KindCustom
	default:
		return nil, errors.New(errors.PhaseCompile, errors.KindUnsupported).
			Path(path...).
			SchemaType(s.String()).
			Detail("unsupported schema type: %T", s).
			Build()
	}
	return ct, nil
}

// compileDynamicFields compiles fields against any. Positional fields carry
// their index in GoIndex; named fields are looked up by Name.
func (c *Compiler) compileDynamicFields(fields []schema.Field, path []string) ([]CompiledField, error) {
	out := make([]CompiledField, len(fields))
	offset := 0
	for i, f := range fields {
		name := schema.FieldLabel(fields, i)
		ft, err := c.compile(f.Type, anyType, appendPath(path, name))
		if err != nil {
			return nil, err
		}
		out[i] = CompiledField{Type: ft, Name: name, Offset: offset}
		if f.Name == "" {
			out[i].GoIndex = []int{i}
		}
		offset += ft.Size
	}
	return out, nil
}

func encodeDynamic(ct *CompiledType, x any, target []float64, path []string) {
	switch ct.Kind {
	case KindBool:
		if dynamicBool(ct, x, errors.PhaseEncode, path) {
			target[0] = 1
		} else {
			target[1] = 1
		}

	case KindUnit:

	case KindRef:
		encodeDynamic(ct.Elem, x, target, path)

	case KindOption:
		if x == nil {
			target[0] = 1
			return
		}
		target[1] = 1
		encodeDynamic(ct.Elem, x, target[2:], append(path, "[some]"))

	case KindArray:
		items := dynamicSeq(ct, x, ct.Len, errors.PhaseEncode, path)
		stride := ct.Elem.Size
		for i := 0; i < ct.Len; i++ {
			encodeDynamic(ct.Elem, items.Index(i).Interface(), slots.Sub(target, i*stride, stride), append(path, indexSeg(i)))
		}

	case KindTuple, KindStruct:
		parts := dynamicFields(ct, ct.Fields, x, errors.PhaseEncode, path)
		for i := range ct.Fields {
			f := &ct.Fields[i]
			encodeDynamic(f.Type, parts[i], slots.Sub(target, f.Offset, f.Type.Size), append(path, f.Name))
		}

	case KindUnion:
		cc, payload := dynamicCase(ct, x, errors.PhaseEncode, path)
		target[cc.Offset] = 1
		if len(cc.Fields) == 0 {
			return
		}
		casePath := append(path, cc.Name)
		parts := dynamicPayload(ct, cc, payload, errors.PhaseEncode, casePath)
		sub := slots.Sub(target, cc.Offset+1, cc.Size)
		for i := range cc.Fields {
			f := &cc.Fields[i]
			encodeDynamic(f.Type, parts[i], slots.Sub(sub, f.Offset, f.Type.Size), append(casePath, f.Name))
		}

	case KindCustom:
		dynamicCustom(ct, x, errors.PhaseEncode, path).EncodeInto(target)
	}
}

func likelihoodDynamic(ct *CompiledType, x any, source []float64, path []string) float64 {
	switch ct.Kind {
	case KindBool:
		if dynamicBool(ct, x, errors.PhaseLikelihood, path) {
			return source[0]
		}
		return source[1]

	case KindUnit:
		return 1

	case KindRef:
		return likelihoodDynamic(ct.Elem, x, source, path)

	case KindOption:
		if x == nil {
			return source[0]
		}
		return source[1] * likelihoodDynamic(ct.Elem, x, source[2:], append(path, "[some]"))

	case KindArray:
		items := dynamicSeq(ct, x, ct.Len, errors.PhaseLikelihood, path)
		stride := ct.Elem.Size
		p := 1.0
		for i := 0; i < ct.Len; i++ {
			p *= likelihoodDynamic(ct.Elem, items.Index(i).Interface(), slots.Sub(source, i*stride, stride), append(path, indexSeg(i)))
		}
		return p

	case KindTuple, KindStruct:
		parts := dynamicFields(ct, ct.Fields, x, errors.PhaseLikelihood, path)
		p := 1.0
		for i := range ct.Fields {
			f := &ct.Fields[i]
			p *= likelihoodDynamic(f.Type, parts[i], slots.Sub(source, f.Offset, f.Type.Size), append(path, f.Name))
		}
		return p

	case KindUnion:
		cc, payload := dynamicCase(ct, x, errors.PhaseLikelihood, path)
		tag := source[cc.Offset]
		if len(cc.Fields) == 0 {
			return tag
		}
		casePath := append(path, cc.Name)
		parts := dynamicPayload(ct, cc, payload, errors.PhaseLikelihood, casePath)
		sub := slots.Sub(source, cc.Offset+1, cc.Size)
		p := 1.0
		for i := range cc.Fields {
			f := &cc.Fields[i]
			p *= likelihoodDynamic(f.Type, parts[i], slots.Sub(sub, f.Offset, f.Type.Size), append(casePath, f.Name))
		}
		return tag * p

	case KindCustom:
		return dynamicCustom(ct, x, errors.PhaseLikelihood, path).Likelihood(source)
	}
	return 1
}

func dynamicBool(ct *CompiledType, x any, phase errors.Phase, path []string) bool {
	b, ok := x.(bool)
	if !ok {
		panic(errors.TypeMismatch(phase, slices.Clone(path), typeName(x), ct.Schema.String()))
	}
	return b
}

// dynamicSeq accepts any slice or array of exactly n elements.
func dynamicSeq(ct *CompiledType, x any, n int, phase errors.Phase, path []string) reflect.Value {
	rv := reflect.ValueOf(x)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		panic(errors.TypeMismatch(phase, slices.Clone(path), typeName(x), ct.Schema.String()))
	}
	if rv.Len() != n {
		panic(errors.New(phase, errors.KindLengthMismatch).
			Path(slices.Clone(path)...).
			SchemaType(ct.Schema.String()).
			Value(rv.Len()).
			Detail("expected %d elements, got %d", n, rv.Len()).
			Build())
	}
	return rv
}

// dynamicFields returns the component values of a product, in field order.
func dynamicFields(ct *CompiledType, fields []CompiledField, x any, phase errors.Phase, path []string) []any {
	if len(fields) == 0 {
		return nil
	}
	if fields[0].GoIndex != nil {
		seq := dynamicSeq(ct, x, len(fields), phase, path)
		out := make([]any, len(fields))
		for i := range out {
			out[i] = seq.Index(i).Interface()
		}
		return out
	}

	m, ok := x.(map[string]any)
	if !ok {
		panic(errors.TypeMismatch(phase, slices.Clone(path), typeName(x), ct.Schema.String()))
	}
	out := make([]any, len(fields))
	for i, f := range fields {
		v, ok := m[f.Name]
		if !ok {
			panic(errors.FieldMissing(phase, slices.Clone(path), f.Name))
		}
		out[i] = v
	}
	if len(m) != len(fields) {
		for _, key := range sortedKeys(m) {
			if !slices.ContainsFunc(fields, func(f CompiledField) bool { return f.Name == key }) {
				panic(errors.FieldUnknown(phase, slices.Clone(path), key))
			}
		}
	}
	return out
}

// dynamicCase resolves the variant a dynamic union value names, along with
// its payload.
func dynamicCase(ct *CompiledType, x any, phase errors.Phase, path []string) (*CompiledCase, any) {
	var name string
	var payload any
	switch v := x.(type) {
	case string:
		name = v
	case map[string]any:
		if len(v) != 1 {
			panic(errors.InvalidVariant(phase, slices.Clone(path), len(v)))
		}
		for k, p := range v {
			name, payload = k, p
		}
	default:
		panic(errors.TypeMismatch(phase, slices.Clone(path), typeName(x), ct.Schema.String()))
	}

	for i := range ct.Cases {
		if ct.Cases[i].Name == name {
			return &ct.Cases[i], payload
		}
	}
	panic(errors.UnknownVariant(phase, slices.Clone(path), name))
}

func dynamicPayload(ct *CompiledType, cc *CompiledCase, payload any, phase errors.Phase, path []string) []any {
	if len(cc.Fields) == 1 && cc.Fields[0].GoIndex != nil {
		return []any{payload}
	}
	return dynamicFields(ct, cc.Fields, payload, phase, path)
}

func dynamicCustom(ct *CompiledType, x any, phase errors.Phase, path []string) Encodable {
	e, ok := x.(Encodable)
	if !ok {
		panic(errors.TypeMismatch(phase, slices.Clone(path), typeName(x), ct.Schema.String()))
	}
	if e.EncodingSize() != ct.Size {
		panic(errors.New(phase, errors.KindLengthMismatch).
			Path(slices.Clone(path)...).
			SchemaType(ct.Schema.String()).
			Detail("EncodingSize %d does not match declared width %d", e.EncodingSize(), ct.Size).
			Build())
	}
	return e
}

func typeName(x any) string {
	if x == nil {
		return "nil"
	}
	return reflect.TypeOf(x).String()
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
