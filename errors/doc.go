// Package errors provides structured error types for the onehot codec.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// The Error type carries rich context: field path, Go/schema type names, and cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseCompile, errors.KindTypeMismatch).
//		Path("board", "cells").
//		GoType("string").
//		SchemaType("bool").
//		Detail("cannot encode string as bool").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.TypeMismatch(errors.PhaseCompile, path, "string", "bool")
//	err := errors.LengthMismatch(errors.PhaseEncode, path, 9, 4)
//
// Contract violations detected while encoding or scoring are raised as
// panics carrying an *Error, so they can be told apart from unrelated
// runtime panics with errors.As.
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
