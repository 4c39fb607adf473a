package codec

import (
	"github.com/wippyai/onehot/errors"
)

// Check reports whether v can be encoded as ct. It returns the violation
// EncodeInto would panic with, or nil.
func Check(ct *CompiledType, v any) (err error) {
	buf := getScratch(ct.Size)
	defer putScratch(buf)
	defer Recover(&err)
	EncodeInto(ct, v, *buf)
	return nil
}

// Recover converts a contract violation panic into an error. Use it as
// defer codec.Recover(&err) around EncodeInto or Likelihood calls on
// untrusted input. Other panics propagate.
func Recover(err *error) {
	r := recover()
	if r == nil {
		return
	}
	if e, ok := r.(*errors.Error); ok {
		*err = e
		return
	}
	panic(r)
}
