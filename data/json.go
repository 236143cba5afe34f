package data

import (
	"bytes"
	"encoding/json"
)

// Decode parses JSON text into a Value.  Numbers keep their integer identity
// where the source text allows it.
func Decode(b []byte) (Value, error) {
	var dec = json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	var raw interface{}
	if err := dec.Decode(&raw); err != nil {
		return nil, err
	}
	return New(raw), nil
}

// Marshal serializes a Value back to JSON text.
func Marshal(v Value) ([]byte, error) {
	return json.Marshal(unwrap(v))
}

// unwrap converts a Value to the equivalent encoding/json-friendly Go value.
func unwrap(v Value) interface{} {
	switch v := v.(type) {
	case nil, Null:
		return nil
	case Bool:
		return bool(v)
	case Int:
		return int64(v)
	case Float:
		return float64(v)
	case String:
		return string(v)
	case List:
		var items = make([]interface{}, len(v))
		for i, item := range v {
			items[i] = unwrap(item)
		}
		return items
	case Map:
		var m = make(map[string]interface{}, len(v))
		for k, val := range v {
			m[k] = unwrap(val)
		}
		return m
	}
	return nil
}
