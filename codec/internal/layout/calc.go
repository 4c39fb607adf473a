package layout

import (
	"sync"

	"github.com/wippyai/onehot/codec/internal/slots"
	"github.com/wippyai/onehot/errors"
	"github.com/wippyai/onehot/schema"
)

// Part is a named sub-range of a layout.
type Part struct {
	Name   string
	Offset int
	Size   int
}

// End returns the first offset past the part.
func (p Part) End() int {
	return p.Offset + p.Size
}

// Info describes the layout of one type. Parts holds field ranges for
// products, tag-plus-payload ranges for unions, and the none, some and
// payload ranges for options. Arrays report their element Stride instead.
type Info struct {
	Parts  []Part
	Size   int
	Stride int
}

type Calculator struct {
	cache   map[schema.Type]Info
	maxSize int
	mu      sync.Mutex
}

func NewCalculator() *Calculator {
	return NewCalculatorWithLimit(slots.DefaultMaxSize)
}

// NewCalculatorWithLimit returns a calculator that rejects layouts larger
// than maxSize slots.
func NewCalculatorWithLimit(maxSize int) *Calculator {
	if maxSize <= 0 {
		maxSize = slots.DefaultMaxSize
	}
	return &Calculator{
		cache:   make(map[schema.Type]Info),
		maxSize: maxSize,
	}
}

// Size returns the slot count of t.
func (c *Calculator) Size(t schema.Type) (int, error) {
	info, err := c.Calculate(t)
	if err != nil {
		return 0, err
	}
	return info.Size, nil
}

// Calculate returns the layout of t. The schema is expected to have passed
// schema.Validate; Calculate only guards against unknown types and sizes
// that exceed the limit.
func (c *Calculator) Calculate(t schema.Type) (Info, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calculate(t, nil)
}

func (c *Calculator) calculate(t schema.Type, path []string) (Info, error) {
	switch t.(type) {
	case schema.Bool:
		return Info{Size: 2, Parts: []Part{{Name: "true", Offset: 0, Size: 1}, {Name: "false", Offset: 1, Size: 1}}}, nil
	case schema.Unit:
		return Info{Size: 0}, nil
	case nil:
		return Info{}, errors.New(errors.PhaseCompile, errors.KindNilPointer).
			Path(path...).
			Detail("missing type").
			Build()
	}

	if cached, ok := c.cache[t]; ok {
		return cached, nil
	}

	var info Info
	var err error

	switch typ := t.(type) {
	case *schema.Ref:
		info, err = c.calculate(typ.Elem, path)
	case *schema.Option:
		info, err = c.calculateOption(typ, path)
	case *schema.Array:
		info, err = c.calculateArray(typ, path)
	case *schema.Tuple:
		fields := make([]schema.Field, len(typ.Elems))
		for i, e := range typ.Elems {
			fields[i] = schema.Field{Type: e}
		}
		info, err = c.calculateFields(fields, path)
	case *schema.Struct:
		info, err = c.calculateFields(typ.Fields, path)
	case *schema.Union:
		info, err = c.calculateUnion(typ, path)
	case *schema.Custom:
		info = Info{Size: typ.Width}
	default:
		return Info{}, errors.New(errors.PhaseCompile, errors.KindUnsupported).
			Path(path...).
			SchemaType(t.String()).
			Detail("no slot layout for %T", t).
			Build()
	}
	if err != nil {
		return Info{}, err
	}
	if info.Size > c.maxSize {
		return Info{}, errors.Overflow(errors.PhaseCompile, path, info.Size, c.maxSize)
	}

	c.cache[t] = info
	return info, nil
}

func (c *Calculator) calculateOption(o *schema.Option, path []string) (Info, error) {
	inner, err := c.calculate(o.Elem, appendPath(path, "[some]"))
	if err != nil {
		return Info{}, err
	}
	size, ok := slots.SafeAdd(2, inner.Size)
	if !ok {
		return Info{}, errors.Overflow(errors.PhaseCompile, path, "option", c.maxSize)
	}
	return Info{
		Size: size,
		Parts: []Part{
			{Name: "none", Offset: 0, Size: 1},
			{Name: "some", Offset: 1, Size: 1},
			{Name: "payload", Offset: 2, Size: inner.Size},
		},
	}, nil
}

func (c *Calculator) calculateArray(a *schema.Array, path []string) (Info, error) {
	elem, err := c.calculate(a.Elem, appendPath(path, "[elem]"))
	if err != nil {
		return Info{}, err
	}
	size, ok := slots.SafeMul(a.Len, elem.Size)
	if !ok || size > c.maxSize {
		return Info{}, errors.Overflow(errors.PhaseCompile, path, a.String(), c.maxSize)
	}
	return Info{Size: size, Stride: elem.Size}, nil
}

func (c *Calculator) calculateFields(fields []schema.Field, path []string) (Info, error) {
	parts := make([]Part, 0, len(fields))
	offset := 0
	for i, f := range fields {
		name := schema.FieldLabel(fields, i)
		fl, err := c.calculate(f.Type, appendPath(path, name))
		if err != nil {
			return Info{}, err
		}
		parts = append(parts, Part{Name: name, Offset: offset, Size: fl.Size})
		next, ok := slots.SafeAdd(offset, fl.Size)
		if !ok || next > c.maxSize {
			return Info{}, errors.Overflow(errors.PhaseCompile, path, "fields", c.maxSize)
		}
		offset = next
	}
	return Info{Size: offset, Parts: parts}, nil
}

func (c *Calculator) calculateUnion(u *schema.Union, path []string) (Info, error) {
	parts := make([]Part, 0, len(u.Variants))
	offset := 0
	for _, v := range u.Variants {
		payload, err := c.calculateFields(v.Fields, appendPath(path, v.Name))
		if err != nil {
			return Info{}, err
		}
		width := 1 + payload.Size
		parts = append(parts, Part{Name: v.Name, Offset: offset, Size: width})
		next, ok := slots.SafeAdd(offset, width)
		if !ok || next > c.maxSize {
			return Info{}, errors.Overflow(errors.PhaseCompile, path, "variants", c.maxSize)
		}
		offset = next
	}
	return Info{Size: offset, Parts: parts}, nil
}

func appendPath(path []string, elem string) []string {
	return append(append([]string{}, path...), elem)
}
