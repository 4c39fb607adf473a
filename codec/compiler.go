package codec

import (
	"reflect"
	"slices"
	"strings"
	"sync"
	"unicode"

	"go.uber.org/zap"

	"github.com/wippyai/onehot/codec/internal/layout"
	"github.com/wippyai/onehot/errors"
	"github.com/wippyai/onehot/schema"
)

var (
	anyType   = reflect.TypeOf((*any)(nil)).Elem()
	unionType = reflect.TypeOf(Union{})
)

// Compiler binds schemas to Go types. Compiled types are cached per
// (schema, Go type) pair and are safe for concurrent use.
type Compiler struct {
	layout  *layout.Calculator
	log     *zap.Logger
	tag     string
	cache   sync.Map // cacheKey -> *CompiledType
	derived sync.Map // reflect.Type -> schema.Type
}

type cacheKey struct {
	schema schema.Type
	goType reflect.Type
}

func NewCompiler() *Compiler {
	return NewCompilerWithConfig(nil)
}

// NewCompilerWithConfig creates a compiler with custom configuration
func NewCompilerWithConfig(cfg *Config) *Compiler {
	c := cfg.withDefaults()
	return &Compiler{
		layout: layout.NewCalculatorWithLimit(c.MaxSize),
		log:    c.Logger,
		tag:    c.TagName,
	}
}

var defaultCompiler = NewCompiler()

// logger resolves the package logger on each use so SetLogger reaches
// compilers created before it was called.
func (c *Compiler) logger() *zap.Logger {
	if c.log != nil {
		return c.log
	}
	return Logger()
}

// Compile binds s to goType. The schema is validated once per pair; a Go
// type of any selects the dynamic value representation.
func (c *Compiler) Compile(s schema.Type, goType reflect.Type) (*CompiledType, error) {
	if goType == nil {
		return nil, errors.New(errors.PhaseCompile, errors.KindNilPointer).
			Detail("Go type cannot be nil").
			Build()
	}
	if s == nil {
		return nil, errors.New(errors.PhaseCompile, errors.KindNilPointer).
			GoType(goType.String()).
			Detail("schema cannot be nil").
			Build()
	}

	key := cacheKey{schema: s, goType: goType}
	if cached, ok := c.cache.Load(key); ok {
		return cached.(*CompiledType), nil
	}

	if err := schema.Validate(s); err != nil {
		return nil, err
	}

	ct, err := c.compile(s, goType, nil)
	if err != nil {
		c.logger().Debug("compile failed",
			zap.Stringer("schema", s),
			zap.Stringer("go_type", goType),
			zap.Error(err))
		return nil, err
	}

	actual, _ := c.cache.LoadOrStore(key, ct)
	c.logger().Debug("compiled type",
		zap.Stringer("schema", s),
		zap.Stringer("go_type", goType),
		zap.Stringer("kind", ct.Kind),
		zap.Int("size", ct.Size))
	return actual.(*CompiledType), nil
}

// Size returns the slot count of s without binding a Go type.
func (c *Compiler) Size(s schema.Type) (int, error) {
	if err := schema.Validate(s); err != nil {
		return 0, err
	}
	return c.layout.Size(s)
}

func (c *Compiler) compile(s schema.Type, goType reflect.Type, path []string) (*CompiledType, error) {
	info, err := c.layout.Calculate(s)
	if err != nil {
		return nil, err
	}
	if goType == anyType {
		return c.compileDynamic(s, info, path)
	}

	switch t := s.(type) {
	case schema.Bool:
		if goType.Kind() != reflect.Bool {
			return nil, errors.TypeMismatch(errors.PhaseCompile, path, goType.String(), "bool")
		}
		return &CompiledType{Schema: s, GoType: goType, Size: info.Size, Kind: KindBool}, nil
	case schema.Unit:
		if goType.Kind() != reflect.Struct || goType.NumField() != 0 {
			return nil, errors.TypeMismatch(errors.PhaseCompile, path, goType.String(), "struct{}")
		}
		return &CompiledType{Schema: s, GoType: goType, Kind: KindUnit}, nil
	case *schema.Ref:
		return c.compileRef(t, goType, info, path)
	case *schema.Option:
		return c.compileOption(t, goType, info, path)
	case *schema.Array:
		return c.compileArray(t, goType, info, path)
	case *schema.Tuple:
		return c.compileTuple(t, goType, info, path)
	case *schema.Struct:
		return c.compileStruct(t, goType, info, path)
	case *schema.Union:
		return c.compileUnion(t, goType, info, path)
	case *schema.Custom:
		return c.compileCustom(t, goType, info, path)
	default:
		return nil, errors.New(errors.PhaseCompile, errors.KindUnsupported).
			Path(path...).
			SchemaType(s.String()).
			Detail("unsupported schema type: %T", s).
			Build()
	}
}

func (c *Compiler) compileRef(r *schema.Ref, goType reflect.Type, info layout.Info, path []string) (*CompiledType, error) {
	deref := goType.Kind() == reflect.Pointer && !isOption(r.Elem)
	elemGo := goType
	if deref {
		elemGo = goType.Elem()
	}
	elem, err := c.compile(r.Elem, elemGo, path)
	if err != nil {
		return nil, err
	}
	return &CompiledType{
		Schema: r,
		GoType: goType,
		Elem:   elem,
		Size:   info.Size,
		Kind:   KindRef,
		Deref:  deref,
	}, nil
}

func isOption(s schema.Type) bool {
	for {
		switch t := s.(type) {
		case *schema.Option:
			return true
		case *schema.Ref:
			s = t.Elem
		default:
			return false
		}
	}
}

func (c *Compiler) compileOption(o *schema.Option, goType reflect.Type, info layout.Info, path []string) (*CompiledType, error) {
	if goType.Kind() != reflect.Pointer {
		return nil, errors.TypeMismatch(errors.PhaseCompile, path, goType.String(), "pointer")
	}

	elem, err := c.compile(o.Elem, goType.Elem(), appendPath(path, "[some]"))
	if err != nil {
		return nil, err
	}

	return &CompiledType{
		Schema: o,
		GoType: goType,
		Elem:   elem,
		Size:   info.Size,
		Kind:   KindOption,
	}, nil
}

func (c *Compiler) compileArray(a *schema.Array, goType reflect.Type, info layout.Info, path []string) (*CompiledType, error) {
	switch goType.Kind() {
	case reflect.Array:
		if goType.Len() != a.Len {
			return nil, errors.New(errors.PhaseCompile, errors.KindLengthMismatch).
				Path(path...).
				GoType(goType.String()).
				SchemaType(a.String()).
				Detail("array length %d does not match %d", goType.Len(), a.Len).
				Build()
		}
	case reflect.Slice:
	default:
		return nil, errors.TypeMismatch(errors.PhaseCompile, path, goType.String(), "array or slice")
	}

	elem, err := c.compile(a.Elem, goType.Elem(), appendPath(path, "[elem]"))
	if err != nil {
		return nil, err
	}

	return &CompiledType{
		Schema: a,
		GoType: goType,
		Elem:   elem,
		Size:   info.Size,
		Len:    a.Len,
		Kind:   KindArray,
	}, nil
}

func (c *Compiler) compileTuple(t *schema.Tuple, goType reflect.Type, info layout.Info, path []string) (*CompiledType, error) {
	fields := make([]schema.Field, len(t.Elems))
	for i, e := range t.Elems {
		fields[i] = schema.Field{Type: e}
	}

	var compiled []CompiledField
	var err error
	switch goType.Kind() {
	case reflect.Array:
		if goType.Len() != len(t.Elems) {
			return nil, errors.New(errors.PhaseCompile, errors.KindTypeMismatch).
				Path(path...).
				Detail("tuple has %d elements but array has %d", len(t.Elems), goType.Len()).
				Build()
		}
		compiled = make([]CompiledField, len(fields))
		offset := 0
		for i, f := range fields {
			name := schema.FieldLabel(fields, i)
			ft, err := c.compile(f.Type, goType.Elem(), appendPath(path, name))
			if err != nil {
				return nil, err
			}
			compiled[i] = CompiledField{
				Type:    ft,
				Name:    name,
				GoIndex: []int{i},
				Offset:  offset,
			}
			offset += ft.Size
		}
	case reflect.Struct:
		compiled, err = c.compileFields(fields, goType, path)
		if err != nil {
			return nil, err
		}
	default:
		return nil, errors.TypeMismatch(errors.PhaseCompile, path, goType.String(), "struct or array")
	}

	return &CompiledType{
		Schema: t,
		GoType: goType,
		Fields: compiled,
		Size:   info.Size,
		Kind:   KindTuple,
	}, nil
}

func (c *Compiler) compileStruct(s *schema.Struct, goType reflect.Type, info layout.Info, path []string) (*CompiledType, error) {
	if goType.Kind() != reflect.Struct {
		return nil, errors.TypeMismatch(errors.PhaseCompile, path, goType.String(), "struct")
	}

	fields, err := c.compileFields(s.Fields, goType, path)
	if err != nil {
		return nil, err
	}

	return &CompiledType{
		Schema: s,
		GoType: goType,
		Fields: fields,
		Size:   info.Size,
		Kind:   KindStruct,
	}, nil
}

// compileFields binds schema fields to the fields of a Go struct. Named
// fields are looked up by name; positional fields map onto the exported
// fields in order.
func (c *Compiler) compileFields(fields []schema.Field, goType reflect.Type, path []string) ([]CompiledField, error) {
	var positional []reflect.StructField
	if schema.IsPositional(fields) {
		positional = c.exportedFields(goType)
		if len(positional) != len(fields) {
			return nil, errors.New(errors.PhaseCompile, errors.KindTypeMismatch).
				Path(path...).
				GoType(goType.String()).
				Detail("expected %d exported fields, found %d", len(fields), len(positional)).
				Build()
		}
	}

	out := make([]CompiledField, len(fields))
	offset := 0
	for i, f := range fields {
		name := schema.FieldLabel(fields, i)

		var goField reflect.StructField
		if positional != nil {
			goField = positional[i]
		} else {
			var found bool
			goField, found = c.findGoField(goType, f.Name)
			if !found {
				return nil, errors.FieldMissing(errors.PhaseCompile, path, f.Name)
			}
		}

		ft, err := c.compile(f.Type, goField.Type, appendPath(path, name))
		if err != nil {
			return nil, err
		}

		out[i] = CompiledField{
			Type:    ft,
			Name:    name,
			GoName:  goField.Name,
			GoIndex: goField.Index,
			Offset:  offset,
		}
		offset += ft.Size
	}
	return out, nil
}

func (c *Compiler) compileUnion(u *schema.Union, goType reflect.Type, info layout.Info, path []string) (*CompiledType, error) {
	if goType.Kind() != reflect.Struct {
		return nil, errors.TypeMismatch(errors.PhaseCompile, path, goType.String(), "struct")
	}

	cases := make([]CompiledCase, len(u.Variants))
	for i, v := range u.Variants {
		casePath := appendPath(path, v.Name)
		goField, found := c.findGoField(goType, v.Name)
		if !found {
			return nil, errors.FieldMissing(errors.PhaseCompile, path, v.Name)
		}

		cc := CompiledCase{
			Name:    v.Name,
			GoIndex: goField.Index,
			Offset:  info.Parts[i].Offset,
			Size:    info.Parts[i].Size - 1,
		}

		switch {
		case goField.Type.Kind() == reflect.Bool && len(v.Fields) == 0:
			cc.Flag = true
		case goField.Type.Kind() == reflect.Pointer:
			cc.Payload = goField.Type.Elem()
			fields, err := c.compileCaseFields(v, cc.Payload, casePath)
			if err != nil {
				return nil, err
			}
			cc.Fields = fields
		default:
			want := "pointer"
			if len(v.Fields) == 0 {
				want = "bool or pointer"
			}
			return nil, errors.TypeMismatch(errors.PhaseCompile, casePath, goField.Type.String(), want)
		}
		cases[i] = cc
	}

	return &CompiledType{
		Schema: u,
		GoType: goType,
		Cases:  cases,
		Size:   info.Size,
		Kind:   KindUnion,
	}, nil
}

// compileCaseFields binds a variant payload. A variant with a single
// positional field takes that field's value directly; any other payload is
// a struct holding the variant's fields.
func (c *Compiler) compileCaseFields(v schema.Variant, payload reflect.Type, path []string) ([]CompiledField, error) {
	switch {
	case len(v.Fields) == 0:
		return nil, nil
	case len(v.Fields) == 1 && v.Fields[0].Name == "":
		ft, err := c.compile(v.Fields[0].Type, payload, appendPath(path, "0"))
		if err != nil {
			return nil, err
		}
		return []CompiledField{{Type: ft, Name: "0"}}, nil
	}

	if payload.Kind() != reflect.Struct {
		return nil, errors.TypeMismatch(errors.PhaseCompile, path, payload.String(), "struct")
	}
	return c.compileFields(v.Fields, payload, path)
}

func (c *Compiler) compileCustom(cu *schema.Custom, goType reflect.Type, info layout.Info, path []string) (*CompiledType, error) {
	if !implementsEncodable(goType) {
		return nil, errors.TypeMismatch(errors.PhaseCompile, path, goType.String(), "codec.Encodable")
	}
	if width := encodableWidth(goType); width != cu.Width {
		return nil, errors.New(errors.PhaseCompile, errors.KindLengthMismatch).
			Path(path...).
			GoType(goType.String()).
			SchemaType(cu.String()).
			Detail("EncodingSize %d does not match declared width %d", width, cu.Width).
			Build()
	}
	return &CompiledType{
		Schema: cu,
		GoType: goType,
		Size:   info.Size,
		Kind:   KindCustom,
	}, nil
}

// findGoField matches by: 1) onehot:"name" tag, 2) case-insensitive,
// 3) kebab or snake case of the Go name.
func (c *Compiler) findGoField(goType reflect.Type, name string) (reflect.StructField, bool) {
	for _, field := range c.exportedFields(goType) {
		if tag := tagName(field, c.tag); tag != "" {
			if tag == name {
				return field, true
			}
			continue
		}

		if strings.EqualFold(field.Name, name) {
			return field, true
		}

		kebab := toKebabCase(field.Name)
		if kebab == name || strings.ReplaceAll(kebab, "-", "_") == name {
			return field, true
		}
	}
	return reflect.StructField{}, false
}

// exportedFields lists the fields of a struct that take part in encoding:
// exported, not tagged "-", and not the Union marker.
func (c *Compiler) exportedFields(goType reflect.Type) []reflect.StructField {
	out := make([]reflect.StructField, 0, goType.NumField())
	for i := 0; i < goType.NumField(); i++ {
		field := goType.Field(i)
		if !field.IsExported() || field.Type == unionType {
			continue
		}
		if field.Tag.Get(c.tag) == "-" {
			continue
		}
		out = append(out, field)
	}
	return out
}

func tagName(field reflect.StructField, key string) string {
	tag, _, _ := strings.Cut(field.Tag.Get(key), ",")
	return tag
}

func toKebabCase(s string) string {
	var result strings.Builder
	for i, r := range s {
		if unicode.IsUpper(r) {
			if i > 0 {
				result.WriteByte('-')
			}
			result.WriteRune(unicode.ToLower(r))
		} else {
			result.WriteRune(r)
		}
	}
	return result.String()
}

func appendPath(path []string, elem string) []string {
	return append(slices.Clip(path), elem)
}
