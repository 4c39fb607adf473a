package witschema

import (
	"io"
	"sort"

	"go.bytecodealliance.org/wit"
	"go.uber.org/zap"

	"github.com/wippyai/onehot/errors"
	"github.com/wippyai/onehot/schema"
)

// Registry holds the schemas of every named type in a WIT resolve. Types
// that cannot be encoded keep their conversion error, which Lookup returns.
type Registry struct {
	types  map[string]schema.Type
	failed map[string]error
	log    *zap.Logger
}

// LoadJSON decodes the JSON form of a WIT resolve, as produced by
// `wasm-tools component wit --json`, and registers its named types.
func LoadJSON(r io.Reader, log *zap.Logger) (*Registry, error) {
	res, err := wit.DecodeJSON(r)
	if err != nil {
		return nil, errors.ParseFailed("WIT JSON", err)
	}
	return FromResolve(res, log), nil
}

// FromResolve registers the named type definitions of res. Types declared
// in an interface are reachable both by bare name and as "iface/name". When
// several definitions share a name the last one wins, whether or not it
// converts.
func FromResolve(res *wit.Resolve, log *zap.Logger) *Registry {
	if log == nil {
		log = zap.NewNop()
	}
	reg := &Registry{
		types:  make(map[string]schema.Type),
		failed: make(map[string]error),
		log:    log,
	}
	if res == nil {
		return reg
	}

	conv := NewConverter()
	for _, td := range res.TypeDefs {
		if td == nil || td.Name == nil {
			continue
		}
		names := []string{*td.Name}
		if iface, ok := td.Owner.(*wit.Interface); ok && iface.Name != nil {
			names = append(names, *iface.Name+"/"+*td.Name)
		}

		t, err := conv.Convert(td)
		for _, name := range names {
			if err != nil {
				delete(reg.types, name)
				reg.failed[name] = err
				continue
			}
			if _, dup := reg.types[name]; dup {
				log.Debug("shadowed WIT type", zap.String("name", name))
			}
			reg.types[name] = t
			delete(reg.failed, name)
		}
		if err != nil {
			log.Debug("skipped WIT type", zap.String("name", *td.Name), zap.Error(err))
		}
	}

	log.Debug("loaded WIT types",
		zap.Int("encodable", len(reg.types)),
		zap.Int("skipped", len(reg.failed)),
	)
	return reg
}

// Lookup returns the schema registered under name.
func (r *Registry) Lookup(name string) (schema.Type, error) {
	if t, ok := r.types[name]; ok {
		return t, nil
	}
	if err, ok := r.failed[name]; ok {
		return nil, err
	}
	return nil, errors.NotFound(errors.PhaseParse, "WIT type", name)
}

// Names lists the encodable type names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.types))
	for name := range r.types {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
