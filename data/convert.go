package data

import (
	"encoding/json"
	"fmt"
	"reflect"
)

// New converts the given Go data into a Value.
func New(value interface{}) Value {
	// quick return if we're passed an existing data.Value
	if val, ok := value.(Value); ok {
		return val
	}

	if value == nil {
		return Null{}
	}

	if num, ok := value.(json.Number); ok {
		if i, err := num.Int64(); err == nil {
			return Int(i)
		}
		if f, err := num.Float64(); err == nil {
			return Float(f)
		}
		return String(num.String())
	}

	// drill through pointers and interfaces to the underlying type
	var v = reflect.ValueOf(value)
	for v.Kind() == reflect.Interface || v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	if !v.IsValid() {
		return Null{}
	}

	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Int(v.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return Int(v.Uint())
	case reflect.Float32, reflect.Float64:
		return Float(v.Float())
	case reflect.Bool:
		return Bool(v.Bool())
	case reflect.String:
		return String(v.String())
	case reflect.Slice:
		if v.IsNil() {
			return List(nil)
		}
		var slice = make(List, 0, v.Len())
		for i := 0; i < v.Len(); i++ {
			slice = append(slice, New(v.Index(i).Interface()))
		}
		return slice
	case reflect.Map:
		var m = make(Map)
		for _, key := range v.MapKeys() {
			if key.Kind() != reflect.String {
				panic("map keys must be strings")
			}
			m[key.String()] = New(v.MapIndex(key).Interface())
		}
		return m
	default:
		panic(fmt.Errorf("unexpected data type: %T (%v)", value, value))
	}
}
