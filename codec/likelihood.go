package codec

import (
	"reflect"
	"slices"

	"github.com/wippyai/onehot/codec/internal/slots"
	"github.com/wippyai/onehot/errors"
)

// Likelihood scores v against a parameter buffer of exactly ct.Size slots:
// the product of the slots v's encoding would select.
//
// For a union only the held variant's region is read. Its tag slot is
// multiplied by the payload's likelihood; the slots of every other variant
// are ignored and nothing is normalized.
func Likelihood(ct *CompiledType, v any, source []float64) float64 {
	slots.Require(errors.PhaseLikelihood, nil, source, ct.Size)
	if ct.Dynamic {
		return likelihoodDynamic(ct, v, source, nil)
	}
	return likelihoodValue(ct, valueOf(ct, v, errors.PhaseLikelihood), source, nil)
}

func likelihoodValue(ct *CompiledType, v reflect.Value, source []float64, path []string) float64 {
	if ct.Dynamic {
		return likelihoodDynamic(ct, v.Interface(), source, path)
	}

	switch ct.Kind {
	case KindBool:
		if v.Bool() {
			return source[0]
		}
		return source[1]

	case KindUnit:
		return 1

	case KindRef:
		if ct.Deref {
			if v.IsNil() {
				panic(errors.NilPointer(errors.PhaseLikelihood, slices.Clone(path), ct.GoType.String()))
			}
			v = v.Elem()
		}
		return likelihoodValue(ct.Elem, v, source, path)

	case KindOption:
		if v.IsNil() {
			return source[0]
		}
		return source[1] * likelihoodValue(ct.Elem, v.Elem(), source[2:], append(path, "[some]"))

	case KindArray:
		checkArrayLen(ct, v, errors.PhaseLikelihood, path)
		stride := ct.Elem.Size
		p := 1.0
		for i := 0; i < ct.Len; i++ {
			p *= likelihoodValue(ct.Elem, v.Index(i), slots.Sub(source, i*stride, stride), append(path, indexSeg(i)))
		}
		return p

	case KindTuple, KindStruct:
		return likelihoodFields(ct.Fields, v, source, path)

	case KindUnion:
		cc := activeCase(ct, v, errors.PhaseLikelihood, path)
		tag := source[cc.Offset]
		if cc.Flag {
			return tag
		}
		payload := v.FieldByIndex(cc.GoIndex).Elem()
		return tag * likelihoodFields(cc.Fields, payload, slots.Sub(source, cc.Offset+1, cc.Size), append(path, cc.Name))

	case KindCustom:
		return customOf(ct, v, errors.PhaseLikelihood, path).Likelihood(source)
	}
	return 1
}

func likelihoodFields(fields []CompiledField, v reflect.Value, source []float64, path []string) float64 {
	p := 1.0
	for i := range fields {
		f := &fields[i]
		p *= likelihoodValue(f.Type, fieldValue(v, f), slots.Sub(source, f.Offset, f.Type.Size), append(path, f.Name))
	}
	return p
}
