package guestmem

import (
	"github.com/tetratelabs/wazero/api"

	"github.com/wippyai/onehot"
	"github.com/wippyai/onehot/errors"
)

// WrapMemory wraps a wazero api.Memory to implement onehot.Memory.
func WrapMemory(mem api.Memory) onehot.Memory {
	if mem == nil {
		return nil
	}
	return &Wrapper{Mem: mem}
}

// Wrapper adapts wazero api.Memory to the onehot.Memory interface.
type Wrapper struct {
	Mem api.Memory
}

// ReadFloat64 reads one slot.
func (m *Wrapper) ReadFloat64(offset uint32) (float64, error) {
	v, ok := m.Mem.ReadFloat64Le(offset)
	if !ok {
		return 0, m.outOfBounds(offset)
	}
	return v, nil
}

// WriteFloat64 writes one slot.
func (m *Wrapper) WriteFloat64(offset uint32, v float64) error {
	if !m.Mem.WriteFloat64Le(offset, v) {
		return m.outOfBounds(offset)
	}
	return nil
}

// Size returns the memory size in bytes.
func (m *Wrapper) Size() uint32 {
	return m.Mem.Size()
}

func (m *Wrapper) outOfBounds(offset uint32) error {
	return errors.OutOfBounds(errors.PhaseMemory, nil, int(offset), int(m.Mem.Size()))
}
