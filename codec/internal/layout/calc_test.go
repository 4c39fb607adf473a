package layout

import (
	"errors"
	"testing"

	oerrors "github.com/wippyai/onehot/errors"
	"github.com/wippyai/onehot/schema"
)

// scenarioUnion is {A, B(bool, bool), C(bool)}.
func scenarioUnion() *schema.Union {
	return schema.NewUnion("Foo",
		schema.Case("A"),
		schema.Case("B", schema.Positional(schema.Bool{}, schema.Bool{})...),
		schema.Case("C", schema.Positional(schema.Bool{})...),
	)
}

func TestCalculatePrimitives(t *testing.T) {
	c := NewCalculator()

	tests := []struct {
		typ  schema.Type
		name string
		size int
	}{
		{schema.Bool{}, "bool", 2},
		{schema.Unit{}, "unit", 0},
		{schema.RefTo("Flag", schema.Bool{}), "ref", 2},
		{schema.NewCustom("Dice", 6), "custom", 6},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			info, err := c.Calculate(tc.typ)
			if err != nil {
				t.Fatalf("Calculate: %v", err)
			}
			if info.Size != tc.size {
				t.Errorf("size: got %d, want %d", info.Size, tc.size)
			}
		})
	}
}

func TestCalculateOption(t *testing.T) {
	c := NewCalculator()
	info, err := c.Calculate(schema.OptionOf(schema.Bool{}))
	if err != nil {
		t.Fatal(err)
	}
	if info.Size != 4 {
		t.Errorf("size: got %d, want 4", info.Size)
	}
	want := []Part{{"none", 0, 1}, {"some", 1, 1}, {"payload", 2, 2}}
	for i, p := range want {
		if info.Parts[i] != p {
			t.Errorf("part %d: got %+v, want %+v", i, info.Parts[i], p)
		}
	}
}

func TestCalculateArray(t *testing.T) {
	c := NewCalculator()

	t.Run("bools", func(t *testing.T) {
		info, err := c.Calculate(schema.ArrayOf(schema.Bool{}, 5))
		if err != nil {
			t.Fatal(err)
		}
		if info.Size != 10 || info.Stride != 2 {
			t.Errorf("size=%d stride=%d, want 10/2", info.Size, info.Stride)
		}
	})

	t.Run("empty", func(t *testing.T) {
		info, err := c.Calculate(schema.ArrayOf(schema.OptionOf(schema.Bool{}), 0))
		if err != nil {
			t.Fatal(err)
		}
		if info.Size != 0 {
			t.Errorf("size: got %d, want 0", info.Size)
		}
	})

	t.Run("of_units", func(t *testing.T) {
		info, err := c.Calculate(schema.ArrayOf(schema.Unit{}, 1000))
		if err != nil {
			t.Fatal(err)
		}
		if info.Size != 0 {
			t.Errorf("size: got %d, want 0", info.Size)
		}
	})
}

func TestCalculateStruct(t *testing.T) {
	c := NewCalculator()

	t.Run("empty", func(t *testing.T) {
		info, err := c.Calculate(schema.NewStruct("Empty"))
		if err != nil {
			t.Fatal(err)
		}
		if info.Size != 0 || len(info.Parts) != 0 {
			t.Errorf("got %+v, want empty layout", info)
		}
	})

	t.Run("zero_width_field", func(t *testing.T) {
		s := schema.NewStruct("S",
			schema.Named("a", schema.Bool{}),
			schema.Named("gap", schema.Unit{}),
			schema.Named("b", schema.OptionOf(schema.Bool{})),
		)
		info, err := c.Calculate(s)
		if err != nil {
			t.Fatal(err)
		}
		if info.Size != 6 {
			t.Errorf("size: got %d, want 6", info.Size)
		}
		want := []Part{{"a", 0, 2}, {"gap", 2, 0}, {"b", 2, 4}}
		for i, p := range want {
			if info.Parts[i] != p {
				t.Errorf("part %d: got %+v, want %+v", i, info.Parts[i], p)
			}
		}
	})

	t.Run("positional", func(t *testing.T) {
		s := schema.NewStruct("P", schema.Positional(schema.Bool{}, schema.Bool{})...)
		info, err := c.Calculate(s)
		if err != nil {
			t.Fatal(err)
		}
		if info.Parts[1].Name != "1" || info.Parts[1].Offset != 2 {
			t.Errorf("part 1: got %+v", info.Parts[1])
		}
	})
}

func TestCalculateTuple(t *testing.T) {
	c := NewCalculator()
	info, err := c.Calculate(schema.TupleOf(schema.Bool{}, schema.Unit{}, schema.OptionOf(schema.Bool{})))
	if err != nil {
		t.Fatal(err)
	}
	if info.Size != 6 {
		t.Errorf("size: got %d, want 6", info.Size)
	}
	if info.Parts[2].Offset != 2 {
		t.Errorf("third component offset: got %d, want 2", info.Parts[2].Offset)
	}
}

func TestCalculateUnion(t *testing.T) {
	c := NewCalculator()
	info, err := c.Calculate(scenarioUnion())
	if err != nil {
		t.Fatal(err)
	}
	if info.Size != 9 {
		t.Errorf("size: got %d, want 9", info.Size)
	}
	want := []Part{{"A", 0, 1}, {"B", 1, 5}, {"C", 6, 3}}
	for i, p := range want {
		if info.Parts[i] != p {
			t.Errorf("variant %d: got %+v, want %+v", i, info.Parts[i], p)
		}
	}
}

func TestCalculateCache(t *testing.T) {
	c := NewCalculator()
	u := scenarioUnion()
	first, err := c.Calculate(u)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := c.cache[u]; !ok {
		t.Fatal("union layout should be cached")
	}
	second, err := c.Calculate(u)
	if err != nil {
		t.Fatal(err)
	}
	if first.Size != second.Size || &first.Parts[0] != &second.Parts[0] {
		t.Error("cached layout should be returned as-is")
	}
}

func TestCalculateErrors(t *testing.T) {
	t.Run("overflow", func(t *testing.T) {
		c := NewCalculatorWithLimit(100)
		_, err := c.Calculate(schema.ArrayOf(schema.Bool{}, 51))
		var e *oerrors.Error
		if !errors.As(err, &e) || e.Kind != oerrors.KindOverflow {
			t.Fatalf("err = %v, want overflow", err)
		}
	})

	t.Run("nested_overflow", func(t *testing.T) {
		c := NewCalculator()
		huge := schema.ArrayOf(schema.ArrayOf(schema.Bool{}, 1<<20), 1<<20)
		if _, err := c.Calculate(huge); err == nil {
			t.Fatal("expected overflow error")
		}
	})

	t.Run("raw_union", func(t *testing.T) {
		c := NewCalculator()
		_, err := c.Calculate(&schema.RawUnion{Name: "Bits"})
		var e *oerrors.Error
		if !errors.As(err, &e) || e.Kind != oerrors.KindUnsupported {
			t.Fatalf("err = %v, want unsupported", err)
		}
	})

	t.Run("nil_field", func(t *testing.T) {
		c := NewCalculator()
		_, err := c.Calculate(schema.NewStruct("S", schema.Named("a", nil)))
		var e *oerrors.Error
		if !errors.As(err, &e) || e.Kind != oerrors.KindNilPointer {
			t.Fatalf("err = %v, want nil_pointer", err)
		}
	})
}
