package codec

import (
	"math"
	"testing"

	"github.com/wippyai/onehot/errors"
	"github.com/wippyai/onehot/schema"
)

// fooPair is the payload of Foo's B variant.
type fooPair struct {
	V0, V1 bool
}

// foo binds to fooSchema: {A, B(bool, bool), C(bool)}.
type foo struct {
	A bool
	B *fooPair
	C *bool
}

func fooSchema() *schema.Union {
	return schema.NewUnion("Foo",
		schema.Case("A"),
		schema.Case("B", schema.Positional(schema.Bool{}, schema.Bool{})...),
		schema.Case("C", schema.Positional(schema.Bool{})...),
	)
}

type piece struct {
	King  bool
	Owner bool
}

type cell struct {
	Union
	Empty bool
	Piece *piece
}

type game struct {
	Board [4]cell
	Turn  bool
	Hint  *bool
	Last  *Tuple2[bool, bool]
}

// die is a six-sided die with a hand-written one-hot encoding.
type die struct {
	Face int
}

func (die) EncodingSize() int { return 6 }

func (d die) EncodeInto(target []float64) {
	target[d.Face-1] = 1
}

func (d die) Likelihood(source []float64) float64 {
	return source[d.Face-1]
}

func ptr[T any](v T) *T {
	return &v
}

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-12
}

func equalSlots(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// mustPanic runs fn and returns the *errors.Error it panicked with.
func mustPanic(t *testing.T, kind errors.Kind, fn func()) *errors.Error {
	t.Helper()
	var got any
	func() {
		defer func() { got = recover() }()
		fn()
	}()
	if got == nil {
		t.Fatalf("expected panic with %s", kind)
	}
	e, ok := got.(*errors.Error)
	if !ok {
		t.Fatalf("panic value %T (%v), want *errors.Error", got, got)
	}
	if e.Kind != kind {
		t.Fatalf("panic kind = %s, want %s (%v)", e.Kind, kind, e)
	}
	return e
}

func wantKind(t *testing.T, err error, kind errors.Kind) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s error, got nil", kind)
	}
	e, ok := err.(*errors.Error)
	if !ok {
		t.Fatalf("error %T (%v), want *errors.Error", err, err)
	}
	if e.Kind != kind {
		t.Fatalf("error kind = %s, want %s (%v)", e.Kind, kind, e)
	}
}
