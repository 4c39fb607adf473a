package layout

import (
	"strconv"

	"github.com/wippyai/onehot/schema"
)

// Role says what a single slot stands for.
type Role string

const (
	RoleTrue   Role = "true"
	RoleFalse  Role = "false"
	RoleNone   Role = "none"
	RoleSome   Role = "some"
	RoleTag    Role = "tag"
	RoleCustom Role = "custom"
)

// Slot names one scalar position of a layout.
type Slot struct {
	Path   string
	Role   Role
	Offset int
}

// Flatten lists every slot of t in offset order, labelled with the path of
// the component that owns it. root prefixes every path.
func (c *Calculator) Flatten(t schema.Type, root string) ([]Slot, error) {
	size, err := c.Size(t)
	if err != nil {
		return nil, err
	}
	f := flattener{calc: c, out: make([]Slot, 0, size)}
	if err := f.walk(t, root, 0); err != nil {
		return nil, err
	}
	return f.out, nil
}

type flattener struct {
	calc *Calculator
	out  []Slot
}

func (f *flattener) emit(path string, role Role, offset int) {
	f.out = append(f.out, Slot{Path: path, Role: role, Offset: offset})
}

func (f *flattener) walk(t schema.Type, path string, base int) error {
	switch typ := t.(type) {
	case schema.Bool:
		f.emit(path, RoleTrue, base)
		f.emit(path, RoleFalse, base+1)
	case schema.Unit:
	case *schema.Ref:
		return f.walk(typ.Elem, path, base)
	case *schema.Option:
		f.emit(path, RoleNone, base)
		f.emit(path, RoleSome, base+1)
		return f.walk(typ.Elem, JoinPath(path, "some"), base+2)
	case *schema.Array:
		stride, err := f.calc.Size(typ.Elem)
		if err != nil {
			return err
		}
		for i := 0; i < typ.Len; i++ {
			if err := f.walk(typ.Elem, JoinPath(path, "["+strconv.Itoa(i)+"]"), base+i*stride); err != nil {
				return err
			}
		}
	case *schema.Tuple:
		offset := base
		for i, e := range typ.Elems {
			if err := f.walk(e, JoinPath(path, strconv.Itoa(i)), offset); err != nil {
				return err
			}
			size, err := f.calc.Size(e)
			if err != nil {
				return err
			}
			offset += size
		}
	case *schema.Struct:
		return f.walkFields(typ.Fields, path, base)
	case *schema.Union:
		offset := base
		for _, v := range typ.Variants {
			vpath := JoinPath(path, v.Name)
			f.emit(vpath, RoleTag, offset)
			if err := f.walkFields(v.Fields, vpath, offset+1); err != nil {
				return err
			}
			payload, err := f.fieldsSize(v.Fields)
			if err != nil {
				return err
			}
			offset += 1 + payload
		}
	case *schema.Custom:
		for i := 0; i < typ.Width; i++ {
			f.emit(JoinPath(path, "["+strconv.Itoa(i)+"]"), RoleCustom, base+i)
		}
	default:
		_, err := f.calc.Size(t)
		return err
	}
	return nil
}

func (f *flattener) walkFields(fields []schema.Field, path string, base int) error {
	offset := base
	for i, fd := range fields {
		if err := f.walk(fd.Type, JoinPath(path, schema.FieldLabel(fields, i)), offset); err != nil {
			return err
		}
		size, err := f.calc.Size(fd.Type)
		if err != nil {
			return err
		}
		offset += size
	}
	return nil
}

func (f *flattener) fieldsSize(fields []schema.Field) (int, error) {
	total := 0
	for _, fd := range fields {
		size, err := f.calc.Size(fd.Type)
		if err != nil {
			return 0, err
		}
		total += size
	}
	return total, nil
}

// JoinPath appends a path segment. Index segments ("[3]") attach without a
// separator.
func JoinPath(base, seg string) string {
	switch {
	case base == "":
		return seg
	case len(seg) > 0 && seg[0] == '[':
		return base + seg
	default:
		return base + "." + seg
	}
}
