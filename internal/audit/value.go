package audit

import (
	"encoding/json"
	"fmt"
	"reflect"
)

// Kind discriminates the closed set of value shapes an audited field can
// hold. Anything that is not a scalar is carried as a serialized object.
type Kind int

const (
	KindNull Kind = iota
	KindString
	KindNumber
	KindBool
	KindObject
)

// Value is one side of a field diff. The zero value is null.
type Value struct {
	Kind Kind
	Str  string
	Num  float64
	Bool bool
	Obj  json.RawMessage
}

// Null is the null Value
var Null = Value{Kind: KindNull}

// String wraps a string
func String(s string) Value { return Value{Kind: KindString, Str: s} }

// Number wraps a number
func Number(n float64) Value { return Value{Kind: KindNumber, Num: n} }

// Bool wraps a bool
func Boolean(b bool) Value { return Value{Kind: KindBool, Bool: b} }

// FromAny converts any JSON-encodable value. Pointers are dereferenced,
// nil becomes null, composites become serialized objects.
func FromAny(v any) (Value, error) {
	if v == nil {
		return Null, nil
	}
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return Null, nil
		}
		rv = rv.Elem()
	}
	switch rv.Kind() {
	case reflect.String:
		return String(rv.String()), nil
	case reflect.Bool:
		return Boolean(rv.Bool()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Number(float64(rv.Int())), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return Number(float64(rv.Uint())), nil
	case reflect.Float32, reflect.Float64:
		return Number(rv.Float()), nil
	default:
		raw, err := json.Marshal(rv.Interface())
		if err != nil {
			return Null, fmt.Errorf("field value not serializable: %w", err)
		}
		if string(raw) == "null" {
			return Null, nil
		}
		return Value{Kind: KindObject, Obj: raw}, nil
	}
}

// Equal compares two values. Objects are compared structurally after
// decoding, so key order in the serialized form never affects the result.
func (v Value) Equal(o Value) bool {
	if v.Kind != o.Kind {
		return false
	}
	switch v.Kind {
	case KindNull:
		return true
	case KindString:
		return v.Str == o.Str
	case KindNumber:
		return v.Num == o.Num
	case KindBool:
		return v.Bool == o.Bool
	case KindObject:
		var a, b any
		if json.Unmarshal(v.Obj, &a) != nil || json.Unmarshal(o.Obj, &b) != nil {
			return string(v.Obj) == string(o.Obj)
		}
		return reflect.DeepEqual(a, b)
	}
	return false
}

// MarshalJSON writes the native JSON form (null, string, number, bool,
// or the serialized object verbatim)
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case KindNull:
		return []byte("null"), nil
	case KindString:
		return json.Marshal(v.Str)
	case KindNumber:
		return json.Marshal(v.Num)
	case KindBool:
		return json.Marshal(v.Bool)
	case KindObject:
		return v.Obj, nil
	}
	return []byte("null"), nil
}

// UnmarshalJSON reads the native JSON form back into the sum type
func (v *Value) UnmarshalJSON(data []byte) error {
	var probe any
	if err := json.Unmarshal(data, &probe); err != nil {
		return err
	}
	switch x := probe.(type) {
	case nil:
		*v = Null
	case string:
		*v = String(x)
	case float64:
		*v = Number(x)
	case bool:
		*v = Boolean(x)
	default:
		*v = Value{Kind: KindObject, Obj: append(json.RawMessage(nil), data...)}
	}
	return nil
}

// Interface returns the value as a plain Go value (for replay merges)
func (v Value) Interface() any {
	switch v.Kind {
	case KindString:
		return v.Str
	case KindNumber:
		return v.Num
	case KindBool:
		return v.Bool
	case KindObject:
		var out any
		if err := json.Unmarshal(v.Obj, &out); err != nil {
			return string(v.Obj)
		}
		return out
	}
	return nil
}
