// Package witschema builds encoding schemas from WebAssembly Interface Types.
//
// WIT shapes map onto schemas as follows:
//
//	WIT             Schema
//	──────────────────────────────────────────
//	bool            bool
//	record          struct, named fields
//	tuple<...>      tuple (2 to 4 components)
//	option<T>       option<T>
//	variant         union, one positional field per payload case
//	enum            union of unit variants
//	flags           struct of bool fields
//	result<T, E>    union{ok(T), err(E)}
//	type x = T      ref named x
//
// Numbers, chars, strings, lists and resource handles have no one-hot
// layout and are rejected.
package witschema
