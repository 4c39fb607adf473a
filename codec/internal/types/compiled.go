package types

import (
	"reflect"

	"github.com/wippyai/onehot/schema"
)

type CompiledType struct {
	Schema  schema.Type
	GoType  reflect.Type
	Elem    *CompiledType
	Fields  []Field
	Cases   []Case
	Size    int
	Len     int
	Kind    Kind
	Dynamic bool
	Deref   bool
}

// Field is a struct or tuple component, or a variant payload field. Offset
// is relative to the start of the enclosing product (for variants, the
// start of the payload, one slot past the tag).
type Field struct {
	Type    *CompiledType
	Name    string
	GoName  string
	GoIndex []int
	Offset  int
}

// Case is a union variant. Offset is the tag slot; the payload follows it.
type Case struct {
	Payload reflect.Type
	Name    string
	Fields  []Field
	GoIndex []int
	Offset  int
	Size    int
	Flag    bool
}

func (ct *CompiledType) IsLeaf() bool {
	return ct.Kind.IsLeaf()
}

// Width returns the slot range of a case: tag slot plus payload.
func (c *Case) Width() int {
	return 1 + c.Size
}

// IsOneHot returns true if every slot the type writes is a 0/1 indicator,
// so that encode followed by likelihood yields exactly 1.
func (ct *CompiledType) IsOneHot() bool {
	switch ct.Kind {
	case KindBool, KindUnit:
		return true
	case KindCustom:
		return false
	case KindRef, KindOption, KindArray:
		return ct.Elem != nil && ct.Elem.IsOneHot()
	case KindTuple, KindStruct:
		for _, f := range ct.Fields {
			if !f.Type.IsOneHot() {
				return false
			}
		}
		return true
	case KindUnion:
		for _, c := range ct.Cases {
			for _, f := range c.Fields {
				if !f.Type.IsOneHot() {
					return false
				}
			}
		}
		return true
	default:
		return false
	}
}
