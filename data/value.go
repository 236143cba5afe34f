// Package data defines the JSON value model shared by the template engine,
// the virtual filesystem and the metadata exporter.
package data

import (
	"reflect"
	"strconv"
	"strings"
)

// Value represents a JSON data value, which may be one of the enumerated types.
type Value interface {
	// String formats this value for insertion into template output.
	String() string

	// Equals returns true if the two values are equal.  Specifically, if:
	// - They are comparable: they have the same Type, or they are Int and Float
	// - (Primitives) They have the same value
	// - (Lists, Maps) They are the same instance
	// Uncomparable types and unequal values return false.
	Equals(other Value) bool

	// Type returns the JSON name of the value's type, for diagnostics.
	Type() string
}

// Value types
type (
	Null   struct{}
	Bool   bool
	Int    int64
	Float  float64
	String string
	List   []Value
	Map    map[string]Value
)

// Index retrieves a value from this list, or Null if out of bounds.
func (v List) Index(i int) Value {
	if !(0 <= i && i < len(v)) {
		return Null{}
	}
	return v[i]
}

// Key retrieves a value under the named key, or Null if it doesn't exist.
func (v Map) Key(k string) Value {
	var result, ok = v[k]
	if !ok {
		return Null{}
	}
	return result
}

// Get navigates a dotted path within a value.  Each path element is tried as
// an object key first, then as an integer list index.  A step that resolves
// nothing yields Null.
func Get(v Value, path ...string) Value {
	var current = v
	for _, part := range path {
		switch obj := current.(type) {
		case Map:
			if val, ok := obj[part]; ok {
				current = val
				continue
			}
		case List:
			if i, err := strconv.Atoi(part); err == nil && 0 <= i && i < len(obj) {
				current = obj[i]
				continue
			}
		}
		return Null{}
	}
	return current
}

// SplitPath splits a dotted variable reference into its head name and the
// trailing navigation path.
func SplitPath(ref string) (string, []string) {
	var parts = strings.Split(ref, ".")
	return parts[0], parts[1:]
}

// String ----------

func (v Null) String() string   { return "null" }
func (v Bool) String() string   { return strconv.FormatBool(bool(v)) }
func (v Int) String() string    { return strconv.FormatInt(int64(v), 10) }
func (v Float) String() string  { return strconv.FormatFloat(float64(v), 'g', -1, 64) }
func (v String) String() string { return string(v) }

func (v List) String() string {
	var items = make([]string, len(v))
	for i, item := range v {
		items[i] = item.String()
	}
	return "[" + strings.Join(items, ", ") + "]"
}

func (v Map) String() string {
	var items = make([]string, len(v))
	var i = 0
	for k, val := range v {
		items[i] = k + ": " + val.String()
		i++
	}
	return "{" + strings.Join(items, ", ") + "}"
}

// Type ----------

func (v Null) Type() string   { return "null" }
func (v Bool) Type() string   { return "bool" }
func (v Int) Type() string    { return "number" }
func (v Float) Type() string  { return "number" }
func (v String) Type() string { return "string" }
func (v List) Type() string   { return "array" }
func (v Map) Type() string    { return "object" }

// Equals ----------

func (v Null) Equals(other Value) bool {
	_, ok := other.(Null)
	return ok
}

func (v Bool) Equals(other Value) bool {
	if o, ok := other.(Bool); ok {
		return bool(v) == bool(o)
	}
	return false
}

func (v String) Equals(other Value) bool {
	if o, ok := other.(String); ok {
		return string(v) == string(o)
	}
	return false
}

func (v List) Equals(other Value) bool {
	if o, ok := other.(List); ok {
		return reflect.ValueOf(v).Pointer() == reflect.ValueOf(o).Pointer()
	}
	return false
}

func (v Map) Equals(other Value) bool {
	if o, ok := other.(Map); ok {
		return reflect.ValueOf(v).Pointer() == reflect.ValueOf(o).Pointer()
	}
	return false
}

func (v Int) Equals(other Value) bool {
	switch o := other.(type) {
	case Int:
		return v == o
	case Float:
		return float64(v) == float64(o)
	}
	return false
}

func (v Float) Equals(other Value) bool {
	switch o := other.(type) {
	case Int:
		return float64(v) == float64(o)
	case Float:
		return v == o
	}
	return false
}
