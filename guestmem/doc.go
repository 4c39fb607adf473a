// Package guestmem moves slot vectors in and out of WebAssembly linear
// memory.
//
// Vectors are stored as consecutive little-endian float64 values, so a
// vector of n slots at offset p occupies bytes [p, p+8n). Encoding writes
// the whole range, zeroes included, so stale guest data never leaks into a
// vector.
//
//	mem := guestmem.WrapMemory(mod.ExportedMemory("memory"))
//	err := guestmem.Encode(mem, ptr, c, move)
//	p, err := guestmem.Likelihood(mem, ptr, c, move)
package guestmem
