package codec

// Tuple2 is the Go shape of a two-component tuple.
type Tuple2[T0, T1 any] struct {
	V0 T0
	V1 T1
}

// Tuple3 is the Go shape of a three-component tuple.
type Tuple3[T0, T1, T2 any] struct {
	V0 T0
	V1 T1
	V2 T2
}

// Tuple4 is the Go shape of a four-component tuple.
type Tuple4[T0, T1, T2, T3 any] struct {
	V0 T0
	V1 T1
	V2 T2
	V3 T3
}

// Union marks a struct as a tagged union for Derive. Each other exported
// field is one variant: a bool for a unit variant, or a pointer to the
// variant's payload. Exactly one variant must be set.
type Union struct{}

type tupleShape interface {
	tupleArity() int
}

func (Tuple2[T0, T1]) tupleArity() int { return 2 }
func (Tuple3[T0, T1, T2]) tupleArity() int { return 3 }
func (Tuple4[T0, T1, T2, T3]) tupleArity() int { return 4 }

// NewTuple2 builds a Tuple2.
func NewTuple2[T0, T1 any](v0 T0, v1 T1) Tuple2[T0, T1] {
	return Tuple2[T0, T1]{V0: v0, V1: v1}
}

// NewTuple3 builds a Tuple3.
func NewTuple3[T0, T1, T2 any](v0 T0, v1 T1, v2 T2) Tuple3[T0, T1, T2] {
	return Tuple3[T0, T1, T2]{V0: v0, V1: v1, V2: v2}
}

// NewTuple4 builds a Tuple4.
func NewTuple4[T0, T1, T2, T3 any](v0 T0, v1 T1, v2 T2, v3 T3) Tuple4[T0, T1, T2, T3] {
	return Tuple4[T0, T1, T2, T3]{V0: v0, V1: v1, V2: v2, V3: v3}
}
