package codec

import (
	"github.com/wippyai/onehot/codec/internal/layout"
	"github.com/wippyai/onehot/schema"
)

// Slot names one position of an encoding: its offset, what it stands for,
// and the path of the component that owns it.
type Slot = layout.Slot

type SlotRole = layout.Role

const (
	RoleTrue   = layout.RoleTrue
	RoleFalse  = layout.RoleFalse
	RoleNone   = layout.RoleNone
	RoleSome   = layout.RoleSome
	RoleTag    = layout.RoleTag
	RoleCustom = layout.RoleCustom
)

// Slots lists every slot of s in offset order. root prefixes each path.
func (c *Compiler) Slots(s schema.Type, root string) ([]Slot, error) {
	if err := schema.Validate(s); err != nil {
		return nil, err
	}
	return c.layout.Flatten(s, root)
}

// Slots lists every slot of s with the default compiler.
func Slots(s schema.Type, root string) ([]Slot, error) {
	return defaultCompiler.Slots(s, root)
}

// Size returns the slot count of s with the default compiler.
func Size(s schema.Type) (int, error) {
	return defaultCompiler.Size(s)
}
