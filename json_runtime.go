package obf

import (
	stdjson "encoding/json"
	"fmt"
)

// Marshal converts a Go value into a Value using JSON semantics: struct
// fields follow their json tags and the result is built as by FromJSON.
func Marshal(v any) (Value, error) {
	data, err := stdjson.Marshal(v)
	if err != nil {
		return Value{}, err
	}
	return FromJSON(data)
}

// Unmarshal stores v into the Go value pointed to by out using JSON semantics.
func Unmarshal(v Value, out any) error {
	if out == nil {
		return fmt.Errorf("nil target")
	}
	return stdjson.Unmarshal([]byte(ToJSON(v)), out)
}
