// Package types defines the compiled type structures for fast encoding.
//
// CompiledType holds precomputed layout information (size, slot offsets,
// Go field indices) for a schema bound to a Go type. By compiling type
// metadata once, the codec avoids repeated layout calculations and
// reflection lookups on the encode and likelihood paths.
//
// # Key Types
//
//   - CompiledType: Cached type metadata with layout info
//   - Kind: Type discriminator (bool, option, struct, union, etc.)
//
// This package is internal to the codec.
package types
