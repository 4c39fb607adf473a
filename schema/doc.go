// Package schema describes the shapes the codec knows how to lay out.
//
// A schema is a tree of Type values drawn from a closed set:
//
//	Bool      two slots, one-hot true/false
//	Unit      zero slots
//	Ref       pass-through wrapper around another type
//	Option    none slot, some slot, payload
//	Array     fixed number of elements of one type
//	Tuple     two to four positional components
//	Struct    named or positional fields in declaration order
//	Union     tagged union; every variant owns a tag slot plus its payload
//	Custom    a user type that implements its own encoding of fixed width
//
// RawUnion describes an untagged overlay of fields. It exists so that
// foreign type descriptions can be represented faithfully, but it has no
// layout: Validate rejects it and the codec refuses to compile it.
//
// Primitive types are values (Bool{}, Unit{}); composite types are pointers so
// that layouts can be memoized by identity. A schema is immutable once built;
// sharing a sub-schema between several parents is fine.
package schema
