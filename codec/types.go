package codec

import (
	"github.com/wippyai/onehot/codec/internal/types"
)

type TypeKind = types.Kind

const (
	KindBool   = types.KindBool
	KindUnit   = types.KindUnit
	KindRef    = types.KindRef
	KindOption = types.KindOption
	KindArray  = types.KindArray
	KindTuple  = types.KindTuple
	KindStruct = types.KindStruct
	KindUnion  = types.KindUnion
	KindCustom = types.KindCustom
)

type CompiledType = types.CompiledType
type CompiledField = types.Field
type CompiledCase = types.Case
