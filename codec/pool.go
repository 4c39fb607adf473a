package codec

import "sync"

const (
	// Pool limits to prevent memory bloat
	poolMaxCap  = 1 << 16 // max float64 slots
	poolInitCap = 64
)

// scratch buffers for Check
var scratchPool = sync.Pool{
	New: func() any {
		buf := make([]float64, 0, poolInitCap)
		return &buf
	},
}

// getScratch returns a zeroed buffer of n slots.
func getScratch(n int) *[]float64 {
	buf := scratchPool.Get().(*[]float64)
	if cap(*buf) < n {
		*buf = make([]float64, n)
		return buf
	}
	*buf = (*buf)[:n]
	clear(*buf)
	return buf
}

func putScratch(buf *[]float64) {
	if buf == nil || cap(*buf) > poolMaxCap {
		return // reject oversized
	}
	*buf = (*buf)[:0]
	scratchPool.Put(buf)
}
