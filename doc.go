// Package onehot encodes structured values as fixed-length one-hot vectors
// and scores them against probability vectors of the same shape.
//
// A schema fixes the layout. Every bool takes two slots, every option a
// none and a some slot ahead of its payload, and every union one tag slot
// per variant ahead of that variant's payload. Encoding a value writes 1.0
// into the slots it selects. Scoring a value multiplies the parameters found
// in those same slots.
//
// # Architecture Overview
//
//	onehot/              Root package with the Memory interface
//	├── schema/          Type descriptions and validation
//	├── codec/           Compilation, encoding, likelihood and slot layouts
//	├── witschema/       Schemas from WebAssembly Interface Types
//	├── guestmem/        Slot vectors in wazero linear memory
//	├── errors/          Structured error types
//	└── cmd/onehot/      Command-line inspector
//
// # Quick Start
//
// Describe a Go type and encode it:
//
//	type Move struct {
//	    Capture bool
//	    Promote *bool
//	}
//
//	c := codec.MustDerive[Move]()
//	vec := c.Encode(Move{Capture: true})    // [1 0 1 0 0 0]
//	p := c.Likelihood(Move{}, params)       // product of selected params
//
// Or build the schema explicitly and bind any Go type whose fields match:
//
//	s := schema.NewStruct("Move",
//	    schema.Named("capture", schema.Bool{}),
//	    schema.Named("promote", schema.OptionOf(schema.Bool{})),
//	)
//	c, err := codec.New[Move](s)
//
// # Contract Violations
//
// Buffers of the wrong length, unions with zero or several active variants
// and values that disagree with the schema are programming errors. The
// encoding and scoring methods panic with an *errors.Error; Check reports
// the same conditions as an error without panicking.
package onehot
