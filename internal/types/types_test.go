package types

import "testing"

func TestEquals(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Type
		expected bool
	}{
		{"same primitive", IntType, IntType, true},
		{"different primitive kind", IntType, FloatType, false},
		{"same array kind", NewArray(Int), NewArray(Int), true},
		{"different array kind", NewArray(Int), NewArray(Float), false},
		{"primitive vs array, same kind", IntType, NewArray(Int), false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.a.Equals(tc.b); got != tc.expected {
				t.Errorf("%s.Equals(%s) = %v, expected %v", tc.a, tc.b, got, tc.expected)
			}
		})
	}
}

func TestIrType(t *testing.T) {
	tests := []struct {
		name     string
		typ      Type
		expected string
	}{
		{"int", IntType, "i64"},
		{"float", FloatType, "double"},
		{"int array", NewArray(Int), "i64*"},
		{"float array", NewArray(Float), "double*"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.typ.IrType(); got != tc.expected {
				t.Errorf("IrType() = %q, expected %q", got, tc.expected)
			}
		})
	}
}

func TestParseTypeName(t *testing.T) {
	if typ, err := ParseTypeName("int"); err != nil || !typ.Equals(IntType) {
		t.Errorf("ParseTypeName(int) = %v, %v", typ, err)
	}
	if typ, err := ParseTypeName("float"); err != nil || !typ.Equals(FloatType) {
		t.Errorf("ParseTypeName(float) = %v, %v", typ, err)
	}
	if _, err := ParseTypeName("string"); err == nil {
		t.Error("expected an error for an unknown type name")
	}
}

func TestIsArray(t *testing.T) {
	if IntType.IsArray() {
		t.Error("Primitive should not be an array")
	}
	if !NewArray(Int).IsArray() {
		t.Error("Array should report IsArray() == true")
	}
}
