package codec

import (
	"go.uber.org/zap"

	"github.com/wippyai/onehot/codec/internal/slots"
)

// DefaultTagName is the struct tag consulted when matching schema field and
// variant names to Go struct fields.
const DefaultTagName = "onehot"

// DefaultMaxSize caps the slot count of a single compiled type.
const DefaultMaxSize = slots.DefaultMaxSize

// Config holds configuration for compiler creation
type Config struct {
	// Logger receives compile diagnostics. Nil means the package logger.
	Logger *zap.Logger
	// TagName overrides the struct tag key. Empty means DefaultTagName.
	TagName string
	// MaxSize rejects layouts wider than this many slots. Zero means
	// DefaultMaxSize.
	MaxSize int
}

func (c *Config) withDefaults() Config {
	out := Config{}
	if c != nil {
		out = *c
	}
	if out.TagName == "" {
		out.TagName = DefaultTagName
	}
	if out.MaxSize <= 0 {
		out.MaxSize = DefaultMaxSize
	}
	return out
}
