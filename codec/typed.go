package codec

import (
	"reflect"

	"github.com/wippyai/onehot/codec/internal/slots"
	"github.com/wippyai/onehot/errors"
	"github.com/wippyai/onehot/schema"
)

// Codec encodes and scores values of T under one schema.
type Codec[T any] struct {
	compiler *Compiler
	ct       *CompiledType
}

// New binds s to T with the default compiler.
func New[T any](s schema.Type) (*Codec[T], error) {
	return NewWithCompiler[T](defaultCompiler, s)
}

func NewWithCompiler[T any](c *Compiler, s schema.Type) (*Codec[T], error) {
	ct, err := c.Compile(s, reflect.TypeFor[T]())
	if err != nil {
		return nil, err
	}
	return &Codec[T]{compiler: c, ct: ct}, nil
}

// Derive infers the schema of T and binds it with the default compiler.
func Derive[T any]() (*Codec[T], error) {
	return DeriveWithCompiler[T](defaultCompiler)
}

func DeriveWithCompiler[T any](c *Compiler) (*Codec[T], error) {
	s, err := c.DeriveSchema(reflect.TypeFor[T]())
	if err != nil {
		return nil, err
	}
	return NewWithCompiler[T](c, s)
}

// Must panics if err is not nil.
func Must[T any](c *Codec[T], err error) *Codec[T] {
	if err != nil {
		panic(err)
	}
	return c
}

// MustDerive is Derive that panics on error. Use it for package-level codecs.
func MustDerive[T any]() *Codec[T] {
	return Must(Derive[T]())
}

// Size returns the number of slots of an encoding.
func (c *Codec[T]) Size() int {
	return c.ct.Size
}

func (c *Codec[T]) Schema() schema.Type {
	return c.ct.Schema
}

func (c *Codec[T]) Compiled() *CompiledType {
	return c.ct
}

// EncodeInto writes v into a zeroed target of exactly Size slots.
func (c *Codec[T]) EncodeInto(v T, target []float64) {
	slots.Require(errors.PhaseEncode, nil, target, c.ct.Size)
	encodeValue(c.ct, reflect.ValueOf(&v).Elem(), target, nil)
}

// Encode returns a fresh encoding of v.
func (c *Codec[T]) Encode(v T) []float64 {
	target := make([]float64, c.ct.Size)
	c.EncodeInto(v, target)
	return target
}

// Likelihood scores v against a parameter buffer of exactly Size slots.
func (c *Codec[T]) Likelihood(v T, source []float64) float64 {
	slots.Require(errors.PhaseLikelihood, nil, source, c.ct.Size)
	return likelihoodValue(c.ct, reflect.ValueOf(&v).Elem(), source, nil)
}

// Check returns the violation EncodeInto would panic with for v, or nil.
func (c *Codec[T]) Check(v T) (err error) {
	buf := getScratch(c.ct.Size)
	defer putScratch(buf)
	defer Recover(&err)
	c.EncodeInto(v, *buf)
	return nil
}

// Slots lists every slot of the encoding in offset order.
func (c *Codec[T]) Slots() ([]Slot, error) {
	return c.compiler.layout.Flatten(c.ct.Schema, "")
}
