package obf

import (
	"fmt"
	"math"
)

// Value is a node of an OBF tree. Exactly one payload is active, selected by
// Type. The zero Value is None.
//
// Containers own their children: ObjectSet, DictSet and Append store deep
// copies, and ObjectGet, DictGet, Index and Elements return deep copies, so a
// tree never shares nodes. Plain Go assignment of a container Value copies
// only the header; use Clone to get an independent tree.
type Value struct {
	typ   Type
	bits  uint64 // integer payload, or the IEEE bits of a Float
	f64   float64
	text  string
	bytes []byte
	obj   map[uint32]*Value
	arr   []Value
	dict  map[string]*Value
}

// Unsigned is the set of Go types accepted by Uint.
type Unsigned interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uint
}

// Uint returns an integer Value tagged with the narrowest width that holds v.
// The tag depends on the value, not on the declared width of T.
func Uint[T Unsigned](v T) Value {
	var out Value
	out.SetUint(uint64(v))
	return out
}

// NewInt8 returns a Value tagged Int8 regardless of magnitude.
func NewInt8(v int8) Value { return Value{typ: TypeInt8, bits: uint64(uint8(v))} }

// NewInt16 returns a Value tagged Int16 regardless of magnitude.
func NewInt16(v int16) Value { return Value{typ: TypeInt16, bits: uint64(uint16(v))} }

// NewInt32 returns a Value tagged Int32 regardless of magnitude.
func NewInt32(v int32) Value { return Value{typ: TypeInt32, bits: uint64(uint32(v))} }

// NewInt64 returns a Value tagged Int64 regardless of magnitude.
func NewInt64(v int64) Value { return Value{typ: TypeInt64, bits: uint64(v)} }

// NewTyped returns an integer Value with an explicit tag. bits is truncated
// to the tag width.
func NewTyped(t Type, bits uint64) (Value, error) {
	if !t.IsInteger() {
		return Value{}, mismatch("NewTyped", t)
	}
	return Value{typ: t, bits: intMask(t, bits)}, nil
}

// NewFloat returns a Value tagged Float.
func NewFloat(v float32) Value { return Value{typ: TypeFloat, bits: uint64(math.Float32bits(v))} }

// NewDouble returns a Value tagged Double.
func NewDouble(v float64) Value { return Value{typ: TypeDouble, f64: v} }

// NewString returns a String or LongString Value depending on len(s).
func NewString(s string) Value { return Value{typ: stringType(len(s)), text: s} }

// NewBytes returns a ByteArray Value holding a copy of b.
func NewBytes(b []byte) Value {
	return Value{typ: TypeByteArray, bytes: append([]byte{}, b...)}
}

// NewObject returns an empty Object.
func NewObject() Value { return Value{typ: TypeObject, obj: map[uint32]*Value{}} }

// NewDictionary returns an empty Dictionary.
func NewDictionary() Value { return Value{typ: TypeDictionary, dict: map[string]*Value{}} }

// NewArray returns an Array holding deep copies of values.
func NewArray(values ...Value) Value {
	arr := make([]Value, len(values))
	for i := range values {
		arr[i] = values[i].Clone()
	}
	return Value{typ: TypeArray, arr: arr}
}

// Type returns the active tag.
func (v Value) Type() Type { return v.typ }

// IsNone reports whether v carries no payload.
func (v Value) IsNone() bool { return v.typ == TypeNone }

// Reset re-tags v with the empty payload of t. Integer tags hold zero,
// containers are empty.
func (v *Value) Reset(t Type) error {
	switch {
	case !t.Valid():
		return fmt.Errorf("%w: unknown type %d", ErrTypeMismatch, t)
	case t == TypeObject:
		*v = NewObject()
	case t == TypeDictionary:
		*v = NewDictionary()
	case t == TypeArray:
		*v = Value{typ: TypeArray, arr: []Value{}}
	case t == TypeByteArray:
		*v = Value{typ: TypeByteArray, bytes: []byte{}}
	default:
		*v = Value{typ: t}
	}
	return nil
}

// SetNone clears v.
func (v *Value) SetNone() { *v = Value{} }

// SetUint assigns an integer using minimal-width promotion.
func (v *Value) SetUint(x uint64) {
	*v = Value{typ: minimalIntType(x), bits: x}
}

// SetFloat assigns a single precision float.
func (v *Value) SetFloat(x float32) { *v = NewFloat(x) }

// SetDouble assigns a double precision float.
func (v *Value) SetDouble(x float64) { *v = NewDouble(x) }

// SetString assigns text, tagging String or LongString by length.
func (v *Value) SetString(s string) { *v = NewString(s) }

// SetBytes assigns a copy of b as a ByteArray.
func (v *Value) SetBytes(b []byte) { *v = NewBytes(b) }

// Set replaces v with a deep copy of other.
func (v *Value) Set(other Value) { *v = other.Clone() }

func floatBits(v Value) uint64 {
	if v.typ == TypeFloat {
		return v.bits
	}
	return math.Float64bits(v.f64)
}

// double widens a Float or Double payload to float64.
func (v Value) double() float64 {
	if v.typ == TypeFloat {
		return float64(math.Float32frombits(uint32(v.bits)))
	}
	return v.f64
}
