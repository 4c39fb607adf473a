package codec

import (
	"reflect"
	"slices"
	"strconv"

	"github.com/wippyai/onehot/codec/internal/slots"
	"github.com/wippyai/onehot/errors"
)

// EncodeInto writes v into target, which must hold exactly ct.Size slots.
// Only the selected slots are written: target is expected to be zeroed.
//
// A buffer of the wrong length, a nil reference, a union with other than
// one active variant, or a value that does not fit ct panics with an
// *errors.Error.
func EncodeInto(ct *CompiledType, v any, target []float64) {
	slots.Require(errors.PhaseEncode, nil, target, ct.Size)
	if ct.Dynamic {
		encodeDynamic(ct, v, target, nil)
		return
	}
	encodeValue(ct, valueOf(ct, v, errors.PhaseEncode), target, nil)
}

// Encode returns a fresh buffer of ct.Size slots holding v.
func Encode(ct *CompiledType, v any) []float64 {
	target := make([]float64, ct.Size)
	EncodeInto(ct, v, target)
	return target
}

// valueOf unwraps v into a reflect.Value of ct.GoType. A pointer to the
// expected type is dereferenced.
func valueOf(ct *CompiledType, v any, phase errors.Phase) reflect.Value {
	rv := reflect.ValueOf(v)
	if !rv.IsValid() {
		panic(errors.NilPointer(phase, nil, ct.GoType.String()))
	}
	if rv.Type() == ct.GoType {
		return rv
	}
	if rv.Kind() == reflect.Pointer && rv.Type().Elem() == ct.GoType {
		if rv.IsNil() {
			panic(errors.NilPointer(phase, nil, rv.Type().String()))
		}
		return rv.Elem()
	}
	panic(errors.TypeMismatch(phase, nil, rv.Type().String(), ct.GoType.String()))
}

func encodeValue(ct *CompiledType, v reflect.Value, target []float64, path []string) {
	if ct.Dynamic {
		encodeDynamic(ct, v.Interface(), target, path)
		return
	}

	switch ct.Kind {
	case KindBool:
		if v.Bool() {
			target[0] = 1
		} else {
			target[1] = 1
		}

	case KindUnit:

	case KindRef:
		if ct.Deref {
			if v.IsNil() {
				panic(errors.NilPointer(errors.PhaseEncode, slices.Clone(path), ct.GoType.String()))
			}
			v = v.Elem()
		}
		encodeValue(ct.Elem, v, target, path)

	case KindOption:
		if v.IsNil() {
			target[0] = 1
			return
		}
		target[1] = 1
		encodeValue(ct.Elem, v.Elem(), target[2:], append(path, "[some]"))

	case KindArray:
		checkArrayLen(ct, v, errors.PhaseEncode, path)
		stride := ct.Elem.Size
		for i := 0; i < ct.Len; i++ {
			encodeValue(ct.Elem, v.Index(i), slots.Sub(target, i*stride, stride), append(path, indexSeg(i)))
		}

	case KindTuple, KindStruct:
		encodeFields(ct.Fields, v, target, path)

	case KindUnion:
		cc := activeCase(ct, v, errors.PhaseEncode, path)
		target[cc.Offset] = 1
		if cc.Flag {
			return
		}
		payload := v.FieldByIndex(cc.GoIndex).Elem()
		encodeFields(cc.Fields, payload, slots.Sub(target, cc.Offset+1, cc.Size), append(path, cc.Name))

	case KindCustom:
		customOf(ct, v, errors.PhaseEncode, path).EncodeInto(target)
	}
}

func encodeFields(fields []CompiledField, v reflect.Value, target []float64, path []string) {
	for i := range fields {
		f := &fields[i]
		encodeValue(f.Type, fieldValue(v, f), slots.Sub(target, f.Offset, f.Type.Size), append(path, f.Name))
	}
}

// fieldValue selects a component of a product value. Fields without a Go
// index stand for the value itself.
func fieldValue(v reflect.Value, f *CompiledField) reflect.Value {
	switch {
	case f.GoIndex == nil:
		return v
	case v.Kind() == reflect.Array:
		return v.Index(f.GoIndex[0])
	default:
		return v.FieldByIndex(f.GoIndex)
	}
}

func checkArrayLen(ct *CompiledType, v reflect.Value, phase errors.Phase, path []string) {
	if v.Kind() == reflect.Slice && v.Len() != ct.Len {
		panic(errors.New(phase, errors.KindLengthMismatch).
			Path(slices.Clone(path)...).
			GoType(ct.GoType.String()).
			Value(v.Len()).
			Detail("array expects %d elements, got %d", ct.Len, v.Len()).
			Build())
	}
}

// activeCase returns the single variant a union value holds.
func activeCase(ct *CompiledType, v reflect.Value, phase errors.Phase, path []string) *CompiledCase {
	var held *CompiledCase
	active := 0
	for i := range ct.Cases {
		cc := &ct.Cases[i]
		f := v.FieldByIndex(cc.GoIndex)
		var set bool
		if cc.Flag {
			set = f.Bool()
		} else {
			set = !f.IsNil()
		}
		if set {
			held = cc
			active++
		}
	}
	if active != 1 {
		panic(errors.InvalidVariant(phase, slices.Clone(path), active))
	}
	return held
}

func customOf(ct *CompiledType, v reflect.Value, phase errors.Phase, path []string) Encodable {
	if v.Kind() == reflect.Pointer && v.IsNil() {
		panic(errors.NilPointer(phase, slices.Clone(path), ct.GoType.String()))
	}
	return encodableOf(v)
}

var indexSegs = func() [64]string {
	var segs [64]string
	for i := range segs {
		segs[i] = "[" + strconv.Itoa(i) + "]"
	}
	return segs
}()

func indexSeg(i int) string {
	if i < len(indexSegs) {
		return indexSegs[i]
	}
	return "[" + strconv.Itoa(i) + "]"
}
