// Package codec encodes Go values as fixed-length one-hot vectors and scores
// values against parameter vectors of the same layout.
//
// # Layout
//
// Every schema type has a fixed slot count and its components occupy
// disjoint, contiguous ranges in declaration order:
//
//	Type            Slots
//	──────────────────────────────────────────────
//	bool            [true, false]
//	unit            none
//	option<T>       [none, some, T...]
//	array<T, N>     T × N
//	struct / tuple  fields back to back
//	union           per variant: [tag, payload...]
//
// Unions do not overlap their variants: each variant owns a private tag
// slot followed by its payload, so the size is the sum over all variants.
//
// # Key Types
//
//	Compiler      - Binds schemas to Go types, caches the result
//	CompiledType  - Bound layout walked by the encoder
//	Codec[T]      - Typed entry point for one schema
//	Encodable     - User-implemented encoding for schema.Custom
//
// # Encoding Flow
//
//  1. Compiler.Compile(schema, goType) → CompiledType
//     or Derive[T]() → Codec[T]
//  2. EncodeInto(ct, value, zeroed buffer)
//  3. Likelihood(ct, value, parameters) → product of selected slots
//
// # Contract Violations
//
// Schema and Go type mismatches are reported by Compile. Buffers of the
// wrong length, unions without exactly one active variant, nil references
// and wrongly shaped dynamic values are programmer errors: EncodeInto and
// Likelihood panic with an *errors.Error. Check and Recover turn them into
// ordinary errors.
//
// # Concurrency
//
// A Compiler and the CompiledTypes it returns are safe for concurrent use.
// Encoding and scoring only touch the caller's buffer.
package codec
