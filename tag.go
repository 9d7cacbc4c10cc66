// Package obf implements OBF, a self-describing binary format for trees of
// dynamically typed values.
package obf

import "strconv"

// Type is the tag byte selecting which payload of a Value is active.
type Type uint8

const (
	TypeNone Type = iota
	TypeInt8
	TypeInt16
	TypeInt32
	TypeInt64
	TypeFloat
	TypeDouble
	TypeString
	TypeLongString
	TypeByteArray
	TypeObject
	TypeArray
	TypeDictionary
)

// MaxStringLen is the longest payload that is tagged String rather than LongString.
const MaxStringLen = 0xFFFF

// MaxKeyLen is the longest Dictionary key the wire format can carry.
const MaxKeyLen = 0xFFFF

var typeNames = [...]string{
	TypeNone:       "none",
	TypeInt8:       "int8",
	TypeInt16:      "int16",
	TypeInt32:      "int32",
	TypeInt64:      "int64",
	TypeFloat:      "float",
	TypeDouble:     "double",
	TypeString:     "string",
	TypeLongString: "longstring",
	TypeByteArray:  "bytearray",
	TypeObject:     "object",
	TypeArray:      "array",
	TypeDictionary: "dictionary",
}

func (t Type) String() string {
	if t.Valid() {
		return typeNames[t]
	}
	return "type(" + strconv.Itoa(int(t)) + ")"
}

// Valid reports whether t is one of the known tags.
func (t Type) Valid() bool {
	return t <= TypeDictionary
}

// IsInteger reports whether t is one of the four integer tags.
func (t Type) IsInteger() bool {
	return t >= TypeInt8 && t <= TypeInt64
}

// IsFloating reports whether t is Float or Double.
func (t Type) IsFloating() bool {
	return t == TypeFloat || t == TypeDouble
}

// IsString reports whether t is String or LongString.
func (t Type) IsString() bool {
	return t == TypeString || t == TypeLongString
}

// IsContainer reports whether t is Object, Array or Dictionary.
func (t Type) IsContainer() bool {
	return t == TypeObject || t == TypeArray || t == TypeDictionary
}

// intWidth returns the payload width in bytes for an integer tag.
func intWidth(t Type) int {
	switch t {
	case TypeInt8:
		return 1
	case TypeInt16:
		return 2
	case TypeInt32:
		return 4
	default:
		return 8
	}
}

// intMask truncates bits to the width implied by an integer tag.
func intMask(t Type, bits uint64) uint64 {
	switch t {
	case TypeInt8:
		return bits & 0xFF
	case TypeInt16:
		return bits & 0xFFFF
	case TypeInt32:
		return bits & 0xFFFFFFFF
	default:
		return bits
	}
}

// minimalIntType picks the narrowest integer tag that holds v losslessly.
func minimalIntType(v uint64) Type {
	switch {
	case v <= 0xFF:
		return TypeInt8
	case v <= 0xFFFF:
		return TypeInt16
	case v <= 0xFFFFFFFF:
		return TypeInt32
	default:
		return TypeInt64
	}
}

func stringType(n int) Type {
	if n > MaxStringLen {
		return TypeLongString
	}
	return TypeString
}
