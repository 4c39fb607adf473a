package types //nolint:revive // package name is used by internal consumers

import "testing"

func TestKindString(t *testing.T) {
	tests := []struct {
		want string
		kind Kind
	}{
		{"bool", KindBool},
		{"unit", KindUnit},
		{"ref", KindRef},
		{"option", KindOption},
		{"array", KindArray},
		{"tuple", KindTuple},
		{"struct", KindStruct},
		{"union", KindUnion},
		{"custom", KindCustom},
		{"unknown", Kind(255)},
	}

	for _, tc := range tests {
		t.Run(tc.want, func(t *testing.T) {
			if got := tc.kind.String(); got != tc.want {
				t.Errorf("String() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestKindIsLeaf(t *testing.T) {
	leaves := []Kind{KindBool, KindUnit, KindCustom}
	for _, k := range leaves {
		if !k.IsLeaf() {
			t.Errorf("%s should be a leaf", k)
		}
	}

	composites := []Kind{KindRef, KindOption, KindArray, KindTuple, KindStruct, KindUnion}
	for _, k := range composites {
		if k.IsLeaf() {
			t.Errorf("%s should not be a leaf", k)
		}
	}
}

func TestKindIsProduct(t *testing.T) {
	if !KindTuple.IsProduct() || !KindStruct.IsProduct() {
		t.Error("tuple and struct should be products")
	}
	if KindUnion.IsProduct() || KindArray.IsProduct() {
		t.Error("union and array should not be products")
	}
}
