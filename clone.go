package obf

import "bytes"

// Clone returns a deep copy of v that shares no containers or byte slices
// with the original.
func (v Value) Clone() Value {
	switch v.typ {
	case TypeByteArray:
		return Value{typ: TypeByteArray, bytes: append([]byte{}, v.bytes...)}
	case TypeObject:
		obj := make(map[uint32]*Value, len(v.obj))
		for k, e := range v.obj {
			c := e.Clone()
			obj[k] = &c
		}
		return Value{typ: TypeObject, obj: obj}
	case TypeDictionary:
		dict := make(map[string]*Value, len(v.dict))
		for k, e := range v.dict {
			c := e.Clone()
			dict[k] = &c
		}
		return Value{typ: TypeDictionary, dict: dict}
	case TypeArray:
		arr := make([]Value, len(v.arr))
		for i := range v.arr {
			arr[i] = v.arr[i].Clone()
		}
		return Value{typ: TypeArray, arr: arr}
	default:
		return v
	}
}

// Equal reports whether a and b carry the same tags and payloads throughout.
// Floats compare by bit pattern, so NaN payloads equal themselves.
func Equal(a, b Value) bool {
	if a.typ != b.typ {
		return false
	}
	switch a.typ {
	case TypeNone:
		return true
	case TypeInt8, TypeInt16, TypeInt32, TypeInt64:
		return a.bits == b.bits
	case TypeFloat, TypeDouble:
		return floatBits(a) == floatBits(b)
	case TypeString, TypeLongString:
		return a.text == b.text
	case TypeByteArray:
		return bytes.Equal(a.bytes, b.bytes)
	case TypeObject:
		if len(a.obj) != len(b.obj) {
			return false
		}
		for k, e := range a.obj {
			o, ok := b.obj[k]
			if !ok || !Equal(*e, *o) {
				return false
			}
		}
		return true
	case TypeDictionary:
		if len(a.dict) != len(b.dict) {
			return false
		}
		for k, e := range a.dict {
			o, ok := b.dict[k]
			if !ok || !Equal(*e, *o) {
				return false
			}
		}
		return true
	case TypeArray:
		if len(a.arr) != len(b.arr) {
			return false
		}
		for i := range a.arr {
			if !Equal(a.arr[i], b.arr[i]) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
