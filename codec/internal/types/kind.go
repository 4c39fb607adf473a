package types

type Kind uint8

const (
	KindBool Kind = iota
	KindUnit
	KindRef
	KindOption
	KindArray
	KindTuple
	KindStruct
	KindUnion
	KindCustom
)

var kindNames = [...]string{
	KindBool:   "bool",
	KindUnit:   "unit",
	KindRef:    "ref",
	KindOption: "option",
	KindArray:  "array",
	KindTuple:  "tuple",
	KindStruct: "struct",
	KindUnion:  "union",
	KindCustom: "custom",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// IsLeaf reports whether the kind has no compiled children.
func (k Kind) IsLeaf() bool {
	switch k {
	case KindBool, KindUnit, KindCustom:
		return true
	default:
		return false
	}
}

// IsProduct reports whether the kind lays its children out back to back
// through Fields.
func (k Kind) IsProduct() bool {
	return k == KindTuple || k == KindStruct
}
