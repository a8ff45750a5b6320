// Package value provides the dynamic value type flowing through template
// rendering. A Value is a tagged union over the data types a template context
// can hold: null, bool, integer, float, string, array, and map.
//
// Values are immutable from the caller's point of view: filters and the
// renderer never modify a Value they receive, they construct new ones.
package value

import (
	"encoding/json"
	"sort"
	"strconv"
	"strings"
)

// Kind identifies the variant stored in a Value.
type Kind uint8

// Value variants.
const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindFloat
	KindString
	KindArray
	KindMap
)

// String returns the human-readable name of the kind, used in error messages.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindInt:
		return "integer"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindMap:
		return "map"
	default:
		return "unknown"
	}
}

// Value is a dynamically typed template value.
// The zero Value is null.
type Value struct {
	kind    Kind
	boolean bool
	integer int64
	number  float64
	str     string
	items   []Value
	fields  map[string]Value
}

// Null returns the null value.
func Null() Value {
	return Value{}
}

// Bool returns a boolean value.
func Bool(b bool) Value {
	return Value{kind: KindBool, boolean: b}
}

// Int returns an integer value.
func Int(i int64) Value {
	return Value{kind: KindInt, integer: i}
}

// Float returns a float value.
func Float(f float64) Value {
	return Value{kind: KindFloat, number: f}
}

// String returns a string value.
func String(s string) Value {
	return Value{kind: KindString, str: s}
}

// Array returns an array value holding the given elements.
func Array(items ...Value) Value {
	return Value{kind: KindArray, items: items}
}

// Map returns a map value holding the given fields.
func Map(fields map[string]Value) Value {
	if fields == nil {
		fields = map[string]Value{}
	}
	return Value{kind: KindMap, fields: fields}
}

// From converts arbitrary Go data into a Value. It handles all integer and
// float widths, strings, bools, nil, []any, map[string]any, and nested
// combinations thereof (the shapes produced by YAML/JSON decoding and by the
// expression and script engines). Unrecognized types fall back to their
// string representation via JSON encoding, or null if that fails.
func From(v any) Value {
	switch t := v.(type) {
	case nil:
		return Null()
	case Value:
		return t
	case bool:
		return Bool(t)
	case int:
		return Int(int64(t))
	case int8:
		return Int(int64(t))
	case int16:
		return Int(int64(t))
	case int32:
		return Int(int64(t))
	case int64:
		return Int(t)
	case uint:
		return Int(int64(t))
	case uint8:
		return Int(int64(t))
	case uint16:
		return Int(int64(t))
	case uint32:
		return Int(int64(t))
	case uint64:
		return Int(int64(t))
	case float32:
		return Float(float64(t))
	case float64:
		return Float(t)
	case string:
		return String(t)
	case []any:
		items := make([]Value, len(t))
		for i, item := range t {
			items[i] = From(item)
		}
		return Value{kind: KindArray, items: items}
	case []Value:
		items := make([]Value, len(t))
		copy(items, t)
		return Value{kind: KindArray, items: items}
	case map[string]any:
		fields := make(map[string]Value, len(t))
		for k, item := range t {
			fields[k] = From(item)
		}
		return Value{kind: KindMap, fields: fields}
	case map[string]Value:
		fields := make(map[string]Value, len(t))
		for k, item := range t {
			fields[k] = item
		}
		return Value{kind: KindMap, fields: fields}
	default:
		// Last resort: round-trip through JSON to flatten structs and
		// exotic map/slice types into plain data.
		b, err := json.Marshal(v)
		if err != nil {
			return Null()
		}
		var plain any
		if err := json.Unmarshal(b, &plain); err != nil {
			return Null()
		}
		// json.Unmarshal produces nil, bool, float64, string, []any,
		// or map[string]any, all handled above.
		return From(plain)
	}
}

// Kind returns the variant tag of the value.
func (v Value) Kind() Kind {
	return v.kind
}

// IsNull reports whether the value is null.
func (v Value) IsNull() bool {
	return v.kind == KindNull
}

// IsNumber reports whether the value is an integer or a float.
func (v Value) IsNumber() bool {
	return v.kind == KindInt || v.kind == KindFloat
}

// AsBool extracts the boolean variant.
func (v Value) AsBool() (bool, bool) {
	if v.kind != KindBool {
		return false, false
	}
	return v.boolean, true
}

// AsInt extracts the integer variant. Floats are not accepted, even when
// they hold a whole number; truncation is never implicit.
func (v Value) AsInt() (int64, bool) {
	if v.kind != KindInt {
		return 0, false
	}
	return v.integer, true
}

// AsFloat extracts the numeric value as a float. Both the float and the
// integer variants are accepted; integer-to-float is a lossless widening
// within the numeric domain used here.
func (v Value) AsFloat() (float64, bool) {
	switch v.kind {
	case KindFloat:
		return v.number, true
	case KindInt:
		return float64(v.integer), true
	default:
		return 0, false
	}
}

// AsString extracts the string variant. No numeric-to-string coercion is
// performed.
func (v Value) AsString() (string, bool) {
	if v.kind != KindString {
		return "", false
	}
	return v.str, true
}

// AsArray extracts the array variant.
func (v Value) AsArray() ([]Value, bool) {
	if v.kind != KindArray {
		return nil, false
	}
	return v.items, true
}

// AsMap extracts the map variant.
func (v Value) AsMap() (map[string]Value, bool) {
	if v.kind != KindMap {
		return nil, false
	}
	return v.fields, true
}

// Interface converts the value back into plain Go data: nil, bool, int64,
// float64, string, []any, or map[string]any.
func (v Value) Interface() any {
	switch v.kind {
	case KindNull:
		return nil
	case KindBool:
		return v.boolean
	case KindInt:
		return v.integer
	case KindFloat:
		return v.number
	case KindString:
		return v.str
	case KindArray:
		items := make([]any, len(v.items))
		for i, item := range v.items {
			items[i] = item.Interface()
		}
		return items
	case KindMap:
		fields := make(map[string]any, len(v.fields))
		for k, item := range v.fields {
			fields[k] = item.Interface()
		}
		return fields
	default:
		return nil
	}
}

// Repr returns a compact JSON-style rendering of the value for use in error
// messages. Map keys are emitted in sorted order so the output is stable.
func (v Value) Repr() string {
	var b strings.Builder
	v.repr(&b)
	return b.String()
}

func (v Value) repr(b *strings.Builder) {
	switch v.kind {
	case KindNull:
		b.WriteString("null")
	case KindBool:
		b.WriteString(strconv.FormatBool(v.boolean))
	case KindInt:
		b.WriteString(strconv.FormatInt(v.integer, 10))
	case KindFloat:
		b.WriteString(strconv.FormatFloat(v.number, 'g', -1, 64))
	case KindString:
		b.WriteString(strconv.Quote(v.str))
	case KindArray:
		b.WriteByte('[')
		for i, item := range v.items {
			if i > 0 {
				b.WriteString(", ")
			}
			item.repr(b)
		}
		b.WriteByte(']')
	case KindMap:
		keys := make([]string, 0, len(v.fields))
		for k := range v.fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		b.WriteByte('{')
		for i, k := range keys {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(strconv.Quote(k))
			b.WriteString(": ")
			v.fields[k].repr(b)
		}
		b.WriteByte('}')
	}
}

// Equal reports deep structural equality. Integer and float variants compare
// by numeric value, so Int(2) equals Float(2.0).
func (v Value) Equal(o Value) bool {
	if v.IsNumber() && o.IsNumber() {
		vf, _ := v.AsFloat()
		of, _ := o.AsFloat()
		return vf == of
	}
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindBool:
		return v.boolean == o.boolean
	case KindString:
		return v.str == o.str
	case KindArray:
		if len(v.items) != len(o.items) {
			return false
		}
		for i := range v.items {
			if !v.items[i].Equal(o.items[i]) {
				return false
			}
		}
		return true
	case KindMap:
		if len(v.fields) != len(o.fields) {
			return false
		}
		for k, item := range v.fields {
			other, ok := o.fields[k]
			if !ok || !item.Equal(other) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
