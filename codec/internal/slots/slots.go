package slots

import (
	"math"

	"github.com/wippyai/onehot/errors"
)

// DefaultMaxSize caps the number of slots a single type may occupy.
const DefaultMaxSize = 1 << 24

func SafeMul(a, b int) (int, bool) {
	if a < 0 || b < 0 {
		return 0, false
	}
	if b != 0 && a > math.MaxInt/b {
		return 0, false
	}
	return a * b, true
}

func SafeAdd(a, b int) (int, bool) {
	if a < 0 || b < 0 || a > math.MaxInt-b {
		return 0, false
	}
	return a + b, true
}

// Sub returns buf[offset:offset+size] with its capacity clipped, so a
// nested write cannot spill into a neighbouring range.
func Sub(buf []float64, offset, size int) []float64 {
	return buf[offset : offset+size : offset+size]
}

// Require panics with a length_mismatch error when len(buf) != size.
func Require(phase errors.Phase, path []string, buf []float64, size int) {
	if len(buf) != size {
		panic(errors.LengthMismatch(phase, path, size, len(buf)))
	}
}

// Zero clears the buffer.
func Zero(buf []float64) {
	clear(buf)
}
