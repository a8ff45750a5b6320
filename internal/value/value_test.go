package value

import (
	"testing"
)

func TestFrom(t *testing.T) {
	tests := []struct {
		name string
		in   any
		kind Kind
	}{
		{name: "nil", in: nil, kind: KindNull},
		{name: "bool", in: true, kind: KindBool},
		{name: "int", in: 42, kind: KindInt},
		{name: "int64", in: int64(42), kind: KindInt},
		{name: "uint32", in: uint32(42), kind: KindInt},
		{name: "float64", in: 3.14, kind: KindFloat},
		{name: "float32", in: float32(1.5), kind: KindFloat},
		{name: "string", in: "hello", kind: KindString},
		{name: "slice", in: []any{1, "two"}, kind: KindArray},
		{name: "map", in: map[string]any{"a": 1}, kind: KindMap},
		{name: "nested value", in: Int(7), kind: KindInt},
		{name: "struct falls back to JSON", in: struct {
			A int `json:"a"`
		}{A: 1}, kind: KindMap},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := From(tt.in).Kind(); got != tt.kind {
				t.Errorf("expected kind %s, got %s", tt.kind, got)
			}
		})
	}
}

func TestAccessors_ExactVariant(t *testing.T) {
	// The float accessor widens integers; every other accessor is
	// exact-variant only.
	if _, ok := Int(3).AsFloat(); !ok {
		t.Error("expected integer to widen to float")
	}
	if f, _ := Int(3).AsFloat(); f != 3.0 {
		t.Errorf("expected 3.0, got %v", f)
	}
	if _, ok := Float(3.0).AsInt(); ok {
		t.Error("expected float to not narrow to integer")
	}
	if _, ok := String("3").AsFloat(); ok {
		t.Error("expected string to not coerce to float")
	}
	if _, ok := Int(3).AsString(); ok {
		t.Error("expected integer to not coerce to string")
	}
	if _, ok := Null().AsFloat(); ok {
		t.Error("expected null to not coerce to float")
	}
}

func TestInterface_RoundTrip(t *testing.T) {
	in := map[string]any{
		"name":  "report",
		"count": int64(3),
		"ratio": 0.5,
		"tags":  []any{"a", "b"},
		"meta":  map[string]any{"ok": true, "note": nil},
	}
	out := From(in).Interface()
	if !From(out).Equal(From(in)) {
		t.Errorf("round trip changed value: %v vs %v", in, out)
	}
}

func TestRepr(t *testing.T) {
	tests := []struct {
		name     string
		in       Value
		expected string
	}{
		{name: "null", in: Null(), expected: "null"},
		{name: "bool", in: Bool(true), expected: "true"},
		{name: "int", in: Int(-3), expected: "-3"},
		{name: "float", in: Float(1.5), expected: "1.5"},
		{name: "string is quoted", in: String("x"), expected: `"x"`},
		{name: "array", in: Array(Int(1), String("a")), expected: `[1, "a"]`},
		{
			name:     "map keys sorted",
			in:       Map(map[string]Value{"b": Int(2), "a": Int(1)}),
			expected: `{"a": 1, "b": 2}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.in.Repr(); got != tt.expected {
				t.Errorf("expected %s, got %s", tt.expected, got)
			}
		})
	}
}

func TestEqual(t *testing.T) {
	tests := []struct {
		name  string
		a, b  Value
		equal bool
	}{
		{name: "int equals float", a: Int(2), b: Float(2.0), equal: true},
		{name: "different numbers", a: Int(2), b: Float(2.5), equal: false},
		{name: "string vs int", a: String("2"), b: Int(2), equal: false},
		{name: "nulls", a: Null(), b: Null(), equal: true},
		{
			name:  "deep arrays",
			a:     Array(Int(1), Array(String("x"))),
			b:     Array(Float(1), Array(String("x"))),
			equal: true,
		},
		{
			name:  "maps differ by key",
			a:     Map(map[string]Value{"a": Int(1)}),
			b:     Map(map[string]Value{"b": Int(1)}),
			equal: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Equal(tt.b); got != tt.equal {
				t.Errorf("Equal(%s, %s) = %v, expected %v", tt.a.Repr(), tt.b.Repr(), got, tt.equal)
			}
		})
	}
}
