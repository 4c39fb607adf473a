package slots

import (
	"errors"
	"math"
	"testing"

	oerrors "github.com/wippyai/onehot/errors"
)

func TestSafeMul(t *testing.T) {
	tests := []struct {
		name string
		a, b int
		want int
		ok   bool
	}{
		{"zero", 0, 10, 0, true},
		{"small", 9, 2, 18, true},
		{"by_zero", math.MaxInt, 0, 0, true},
		{"overflow", math.MaxInt/2 + 1, 2, 0, false},
		{"negative", -1, 2, 0, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := SafeMul(tc.a, tc.b)
			if ok != tc.ok || got != tc.want {
				t.Errorf("SafeMul(%d, %d) = %d, %v; want %d, %v", tc.a, tc.b, got, ok, tc.want, tc.ok)
			}
		})
	}
}

func TestSafeAdd(t *testing.T) {
	if got, ok := SafeAdd(2, 3); !ok || got != 5 {
		t.Errorf("SafeAdd(2, 3) = %d, %v", got, ok)
	}
	if _, ok := SafeAdd(math.MaxInt, 1); ok {
		t.Error("SafeAdd should report overflow")
	}
	if _, ok := SafeAdd(-1, 1); ok {
		t.Error("SafeAdd should reject negative sizes")
	}
}

func TestSub(t *testing.T) {
	buf := []float64{0, 1, 2, 3, 4}
	sub := Sub(buf, 1, 2)
	if len(sub) != 2 || cap(sub) != 2 {
		t.Fatalf("len=%d cap=%d, want 2/2", len(sub), cap(sub))
	}
	if sub[0] != 1 || sub[1] != 2 {
		t.Errorf("sub = %v, want [1 2]", sub)
	}

	empty := Sub(buf, 5, 0)
	if len(empty) != 0 {
		t.Errorf("zero-width range at end should be empty, got %v", empty)
	}
}

func TestRequire(t *testing.T) {
	Require(oerrors.PhaseEncode, nil, make([]float64, 3), 3)

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("Require should panic on mismatch")
		}
		err, ok := r.(error)
		if !ok {
			t.Fatalf("panic value %T is not an error", r)
		}
		var e *oerrors.Error
		if !errors.As(err, &e) || e.Kind != oerrors.KindLengthMismatch {
			t.Errorf("panic = %v, want length_mismatch", err)
		}
	}()
	Require(oerrors.PhaseEncode, nil, make([]float64, 2), 3)
}

func TestZero(t *testing.T) {
	buf := []float64{1, 2, 3}
	Zero(buf)
	for i, v := range buf {
		if v != 0 {
			t.Errorf("buf[%d] = %v, want 0", i, v)
		}
	}
}
