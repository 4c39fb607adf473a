package guestmem

import (
	"math"

	"go.uber.org/zap"

	"github.com/wippyai/onehot"
	"github.com/wippyai/onehot/codec"
	"github.com/wippyai/onehot/errors"
)

const slotBytes = 8

// Write stores vec at offset.
func Write(mem onehot.Memory, offset uint32, vec []float64) error {
	if err := checkRange(mem, offset, len(vec)); err != nil {
		return err
	}
	for i, v := range vec {
		if err := mem.WriteFloat64(offset+uint32(i*slotBytes), v); err != nil {
			return err
		}
	}
	return nil
}

// Read loads n slots starting at offset.
func Read(mem onehot.Memory, offset uint32, n int) ([]float64, error) {
	if n < 0 {
		return nil, errors.InvalidInput(errors.PhaseMemory, "negative slot count")
	}
	if err := checkRange(mem, offset, n); err != nil {
		return nil, err
	}
	vec := make([]float64, n)
	for i := range vec {
		v, err := mem.ReadFloat64(offset + uint32(i*slotBytes))
		if err != nil {
			return nil, err
		}
		vec[i] = v
	}
	return vec, nil
}

// Encode writes the full encoding of v at offset. Slots v does not select
// are written as zero.
func Encode[T any](mem onehot.Memory, offset uint32, c *codec.Codec[T], v T) (err error) {
	if mem == nil {
		return errors.NilPointer(errors.PhaseMemory, nil, "Memory")
	}
	if err := checkRange(mem, offset, c.Size()); err != nil {
		return err
	}

	vec := make([]float64, c.Size())
	func() {
		defer codec.Recover(&err)
		c.EncodeInto(v, vec)
	}()
	if err != nil {
		return err
	}

	if err := Write(mem, offset, vec); err != nil {
		return err
	}
	Logger().Debug("encoded into guest memory",
		zap.String("schema", c.Schema().String()),
		zap.Uint32("offset", offset),
		zap.Int("slots", len(vec)),
	)
	return nil
}

// Likelihood scores v against the parameter vector stored at offset.
func Likelihood[T any](mem onehot.Memory, offset uint32, c *codec.Codec[T], v T) (p float64, err error) {
	if mem == nil {
		return 0, errors.NilPointer(errors.PhaseMemory, nil, "Memory")
	}
	params, err := Read(mem, offset, c.Size())
	if err != nil {
		return 0, err
	}
	defer codec.Recover(&err)
	return c.Likelihood(v, params), nil
}

// checkRange rejects vectors that would run past the end of a sized memory
// or past the 32-bit address space.
func checkRange(mem onehot.Memory, offset uint32, n int) error {
	if n == 0 {
		return nil
	}
	end := uint64(offset) + uint64(n)*slotBytes
	if end > math.MaxUint32+1 {
		return errors.Overflow(errors.PhaseMemory, nil, end, math.MaxUint32)
	}
	if sizer, ok := mem.(onehot.MemorySizer); ok && end > uint64(sizer.Size()) {
		return errors.OutOfBounds(errors.PhaseMemory, nil, int(end-1), int(sizer.Size()))
	}
	return nil
}
