package onehot

// Memory is a linear memory that slot vectors can be stored in. Values are
// little-endian IEEE 754 doubles.
type Memory interface {
	ReadFloat64(offset uint32) (float64, error)
	WriteFloat64(offset uint32, v float64) error
}

// MemorySizer provides the current size of a memory in bytes.
type MemorySizer interface {
	Size() uint32
}
