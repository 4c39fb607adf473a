// Package layout computes slot sizes and offset ranges for schema types.
//
// Layouts follow the composition rules of the codec:
//
//	Type            Size
//	────────────────────────────────────────
//	bool            2
//	unit            0
//	ref<T>          size(T)
//	option<T>       2 + size(T)
//	array<T, N>     N × size(T)
//	tuple / struct  Σ size(field)
//	union           Σ (1 + size(variant fields))
//	custom          declared width
//
// Fields and variants receive contiguous, disjoint ranges in declaration
// order. Calculator memoizes layouts of composite types by identity.
package layout
