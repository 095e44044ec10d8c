// Package plist decodes Apple property lists into a generic value tree.
//
// Property lists in the wild are duck typed: a key expected to hold a string
// may hold a bool, an array, or nothing at all. Value keeps the three-way
// distinction between missing, wrong type, and present that the rule engine
// depends on, so accessors report absence instead of returning errors.
package plist

import "time"

type Kind int

const (
	KindAbsent Kind = iota
	KindString
	KindBool
	KindNumber
	KindArray
	KindDict
	KindDate
	KindData
)

// Value is a tagged union over the types a plist node can hold.
// The zero value is the absent marker.
type Value struct {
	kind Kind
	str  string
	b    bool
	num  float64
	arr  []Value
	dict map[string]Value
	date time.Time
	data []byte
}

// Absent is returned by lookups that found nothing.
var Absent = Value{}

func String(s string) Value { return Value{kind: KindString, str: s} }
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }
func Number(n float64) Value { return Value{kind: KindNumber, num: n} }
func Array(vs ...Value) Value { return Value{kind: KindArray, arr: vs} }
func Dict(m map[string]Value) Value { return Value{kind: KindDict, dict: m} }

func (v Value) Kind() Kind { return v.kind }
func (v Value) Present() bool { return v.kind != KindAbsent }

// AsString returns the string form of v, reporting false when v is absent
// or holds a non-string type.
func (v Value) AsString() (string, bool) {
	if v.kind != KindString {
		return "", false
	}

	return v.str, true
}

func (v Value) AsBool() (bool, bool) {
	if v.kind != KindBool {
		return false, false
	}

	return v.b, true
}

func (v Value) AsNumber() (float64, bool) {
	if v.kind != KindNumber {
		return 0, false
	}

	return v.num, true
}

func (v Value) AsArray() ([]Value, bool) {
	if v.kind != KindArray {
		return nil, false
	}

	return v.arr, true
}

func (v Value) AsDict() (map[string]Value, bool) {
	if v.kind != KindDict {
		return nil, false
	}

	return v.dict, true
}

// Get looks up key in a dict value, returning Absent when v is not a dict
// or the key is missing.
func (v Value) Get(key string) Value {
	if v.kind != KindDict {
		return Absent
	}

	val, ok := v.dict[key]
	if !ok {
		return Absent
	}

	return val
}

// Keys returns the keys of a dict value in unspecified order.
func (v Value) Keys() []string {
	if v.kind != KindDict {
		return nil
	}

	keys := make([]string, 0, len(v.dict))
	for k := range v.dict {
		keys = append(keys, k)
	}

	return keys
}
