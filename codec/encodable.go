package codec

import (
	"reflect"
)

// Encodable is implemented by types that provide their own slot encoding.
// A schema.Custom of the same width describes them.
//
// EncodeInto and Likelihood always receive a slice of exactly EncodingSize
// slots. EncodeInto may assume the slice is zeroed.
type Encodable interface {
	EncodingSize() int
	EncodeInto(target []float64)
	Likelihood(source []float64) float64
}

var encodableType = reflect.TypeOf((*Encodable)(nil)).Elem()

// implementsEncodable reports whether T or *T satisfies Encodable. Interface
// types never qualify.
func implementsEncodable(t reflect.Type) bool {
	if t.Kind() == reflect.Interface {
		return false
	}
	return t.Implements(encodableType) || reflect.PointerTo(t).Implements(encodableType)
}

// encodableOf returns v as an Encodable, taking its address or a copy when
// only the pointer receiver implements the interface.
func encodableOf(v reflect.Value) Encodable {
	if v.Type().Implements(encodableType) {
		return v.Interface().(Encodable)
	}
	if v.CanAddr() {
		return v.Addr().Interface().(Encodable)
	}
	p := reflect.New(v.Type())
	p.Elem().Set(v)
	return p.Interface().(Encodable)
}

// encodableWidth reports the EncodingSize of a fresh value of t.
func encodableWidth(t reflect.Type) int {
	switch {
	case t.Kind() == reflect.Pointer && t.Implements(encodableType):
		return reflect.New(t.Elem()).Interface().(Encodable).EncodingSize()
	case t.Implements(encodableType):
		return reflect.Zero(t).Interface().(Encodable).EncodingSize()
	default:
		return reflect.New(t).Interface().(Encodable).EncodingSize()
	}
}
