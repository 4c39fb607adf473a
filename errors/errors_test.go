package errors

import (
	"errors"
	"strings"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		contains []string
	}{
		{
			name: "full error",
			err: &Error{
				Phase:      PhaseCompile,
				Kind:       KindTypeMismatch,
				Path:       []string{"board", "cells", "[3]"},
				GoType:     "string",
				SchemaType: "bool",
				Detail:     "cannot encode",
			},
			contains: []string{"[compile]", "type_mismatch", "board.cells.[3]", "string", "bool", "cannot encode"},
		},
		{
			name: "minimal error",
			err: &Error{
				Phase: PhaseLikelihood,
				Kind:  KindLengthMismatch,
			},
			contains: []string{"[likelihood]", "length_mismatch"},
		},
		{
			name: "schema type only",
			err: &Error{
				Phase:      PhaseValidate,
				Kind:       KindUnsupported,
				SchemaType: "raw-union",
				Detail:     "untagged unions have no layout",
			},
			contains: []string{"[validate]", "schema type raw-union", " - untagged unions"},
		},
		{
			name: "error with cause",
			err: &Error{
				Phase:  PhaseParse,
				Kind:   KindInvalidData,
				Detail: "parse wit json",
				Cause:  errors.New("unexpected EOF"),
			},
			contains: []string{"[parse]", "invalid_data", "parse wit json", "caused by", "unexpected EOF"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, s := range tt.contains {
				if !strings.Contains(msg, s) {
					t.Errorf("error message %q does not contain %q", msg, s)
				}
			}
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := &Error{
		Phase: PhaseMemory,
		Kind:  KindOutOfBounds,
		Cause: cause,
	}

	if !errors.Is(err.Unwrap(), cause) {
		t.Error("Unwrap did not return cause")
	}

	if !errors.Is(errors.Unwrap(err), cause) {
		t.Error("errors.Unwrap did not return cause")
	}
}

func TestError_Is(t *testing.T) {
	err := &Error{
		Phase: PhaseEncode,
		Kind:  KindLengthMismatch,
		Path:  []string{"foo"},
	}

	if !err.Is(&Error{Phase: PhaseEncode, Kind: KindLengthMismatch}) {
		t.Error("Is should match same phase and kind")
	}

	if err.Is(&Error{Phase: PhaseLikelihood, Kind: KindLengthMismatch}) {
		t.Error("Is should not match different phase")
	}

	if err.Is(&Error{Phase: PhaseEncode, Kind: KindOutOfBounds}) {
		t.Error("Is should not match different kind")
	}

	target := &Error{Phase: PhaseEncode, Kind: KindLengthMismatch}
	if !errors.Is(err, target) {
		t.Error("errors.Is should match")
	}
}

func TestBuilder(t *testing.T) {
	cause := errors.New("root")
	err := New(PhaseCompile, KindTypeMismatch).
		Path("state", "turn").
		GoType("int").
		SchemaType("bool").
		Value(42).
		Cause(cause).
		Detail("expected %s, got %s", "bool", "int").
		Build()

	if err.Phase != PhaseCompile {
		t.Errorf("Phase = %v, want %v", err.Phase, PhaseCompile)
	}
	if err.Kind != KindTypeMismatch {
		t.Errorf("Kind = %v, want %v", err.Kind, KindTypeMismatch)
	}
	if len(err.Path) != 2 || err.Path[0] != "state" || err.Path[1] != "turn" {
		t.Errorf("Path = %v, want [state turn]", err.Path)
	}
	if err.GoType != "int" {
		t.Errorf("GoType = %v, want 'int'", err.GoType)
	}
	if err.SchemaType != "bool" {
		t.Errorf("SchemaType = %v, want 'bool'", err.SchemaType)
	}
	if err.Value != 42 {
		t.Errorf("Value = %v, want 42", err.Value)
	}
	if !errors.Is(err.Cause, cause) {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}
	if err.Detail != "expected bool, got int" {
		t.Errorf("Detail = %v, want 'expected bool, got int'", err.Detail)
	}
}

func TestConvenienceConstructors(t *testing.T) {
	t.Run("TypeMismatch", func(t *testing.T) {
		err := TypeMismatch(PhaseCompile, []string{"field"}, "int", "bool")
		if err.Kind != KindTypeMismatch {
			t.Errorf("Kind = %v, want %v", err.Kind, KindTypeMismatch)
		}
		if err.GoType != "int" || err.SchemaType != "bool" {
			t.Errorf("GoType=%v SchemaType=%v", err.GoType, err.SchemaType)
		}
	})

	t.Run("LengthMismatch", func(t *testing.T) {
		err := LengthMismatch(PhaseEncode, nil, 9, 4)
		if err.Kind != KindLengthMismatch {
			t.Errorf("Kind = %v, want %v", err.Kind, KindLengthMismatch)
		}
		if !strings.Contains(err.Detail, "expected 9") || !strings.Contains(err.Detail, "got 4") {
			t.Errorf("Detail = %q, should mention both lengths", err.Detail)
		}
		if err.Value != 4 {
			t.Errorf("Value = %v, want 4", err.Value)
		}
	})

	t.Run("FieldMissing", func(t *testing.T) {
		err := FieldMissing(PhaseCompile, []string{"record"}, "name")
		if err.Kind != KindFieldMissing {
			t.Errorf("Kind = %v, want %v", err.Kind, KindFieldMissing)
		}
	})

	t.Run("Duplicate", func(t *testing.T) {
		err := Duplicate(PhaseValidate, []string{"Foo"}, "variant", "A")
		if err.Kind != KindDuplicate {
			t.Errorf("Kind = %v, want %v", err.Kind, KindDuplicate)
		}
		if !strings.Contains(err.Detail, `variant "A"`) {
			t.Errorf("Detail = %q", err.Detail)
		}
	})

	t.Run("InvalidVariant", func(t *testing.T) {
		err := InvalidVariant(PhaseEncode, []string{"move"}, 2)
		if err.Kind != KindInvalidVariant {
			t.Errorf("Kind = %v, want %v", err.Kind, KindInvalidVariant)
		}
		if err.Value != 2 {
			t.Errorf("Value = %v, want 2", err.Value)
		}
	})

	t.Run("UnknownVariant", func(t *testing.T) {
		err := UnknownVariant(PhaseValidate, nil, "Nope")
		if err.Kind != KindInvalidVariant {
			t.Errorf("Kind = %v, want %v", err.Kind, KindInvalidVariant)
		}
	})

	t.Run("Unsupported", func(t *testing.T) {
		err := Unsupported(PhaseCompile, "string fields")
		if err.Kind != KindUnsupported {
			t.Errorf("Kind = %v, want %v", err.Kind, KindUnsupported)
		}
	})

	t.Run("Recursive", func(t *testing.T) {
		err := Recursive(PhaseCompile, []string{"next"}, "Node")
		if err.Kind != KindRecursive {
			t.Errorf("Kind = %v, want %v", err.Kind, KindRecursive)
		}
		if err.GoType != "Node" {
			t.Errorf("GoType = %v, want 'Node'", err.GoType)
		}
	})

	t.Run("OutOfBounds", func(t *testing.T) {
		err := OutOfBounds(PhaseMemory, nil, 10, 5)
		if err.Kind != KindOutOfBounds {
			t.Errorf("Kind = %v, want %v", err.Kind, KindOutOfBounds)
		}
		if err.Value != 10 {
			t.Errorf("Value = %v, want 10", err.Value)
		}
	})

	t.Run("NilPointer", func(t *testing.T) {
		err := NilPointer(PhaseEncode, []string{"ptr"}, "*Board")
		if err.Kind != KindNilPointer {
			t.Errorf("Kind = %v, want %v", err.Kind, KindNilPointer)
		}
		if err.GoType != "*Board" {
			t.Errorf("GoType = %v, want '*Board'", err.GoType)
		}
	})

	t.Run("Overflow", func(t *testing.T) {
		err := Overflow(PhaseCompile, []string{"grid"}, uint64(1)<<40, 1<<24)
		if err.Kind != KindOverflow {
			t.Errorf("Kind = %v, want %v", err.Kind, KindOverflow)
		}
		if !strings.Contains(err.Detail, "16777216") {
			t.Errorf("Detail = %q, should contain the limit", err.Detail)
		}
	})

	t.Run("FieldUnknown", func(t *testing.T) {
		err := FieldUnknown(PhaseValidate, []string{"record"}, "extra")
		if err.Kind != KindFieldUnknown {
			t.Errorf("Kind = %v, want %v", err.Kind, KindFieldUnknown)
		}
	})

	t.Run("NotFound", func(t *testing.T) {
		err := NotFound(PhaseParse, "type", "board")
		if err.Kind != KindNotFound {
			t.Errorf("Kind = %v, want %v", err.Kind, KindNotFound)
		}
		if !strings.Contains(err.Error(), `type "board" not found`) {
			t.Errorf("Error() = %q", err.Error())
		}
	})

	t.Run("ParseFailed", func(t *testing.T) {
		cause := errors.New("bad json")
		err := ParseFailed("wit json", cause)
		if err.Phase != PhaseParse || err.Kind != KindInvalidData {
			t.Errorf("got %v/%v", err.Phase, err.Kind)
		}
		if !errors.Is(err, cause) {
			t.Error("ParseFailed should wrap its cause")
		}
	})

	t.Run("Wrap", func(t *testing.T) {
		cause := errors.New("short write")
		err := Wrap(PhaseMemory, KindOutOfBounds, cause, "write slots")
		if !errors.Is(err, cause) {
			t.Error("Wrap should keep cause reachable")
		}
	})
}

func TestErrorsAs(t *testing.T) {
	var wrapped error = Wrap(PhaseParse, KindInvalidData, InvalidInput(PhaseParse, "empty"), "outer")

	var target *Error
	if !errors.As(wrapped, &target) {
		t.Fatal("errors.As should find *Error")
	}
	if target.Detail != "outer" {
		t.Errorf("errors.As returned %q, want outermost error", target.Detail)
	}
}
