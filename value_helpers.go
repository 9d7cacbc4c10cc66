package obf

import "math"

// Integer readers accept any integer tag and reinterpret the stored 64-bit
// pattern at the requested width. Float tags are a mismatch; the bit pattern
// of a float is never truncated into an integer.

func (v Value) intBits(op string) (uint64, error) {
	if !v.typ.IsInteger() {
		return 0, mismatch(op, v.typ)
	}
	return v.bits, nil
}

// AsInt8 returns the low 8 bits of an integer Value as int8.
func (v Value) AsInt8() (int8, error) {
	b, err := v.intBits("AsInt8")
	return int8(b), err
}

// AsUint8 returns the low 8 bits of an integer Value.
func (v Value) AsUint8() (uint8, error) {
	b, err := v.intBits("AsUint8")
	return uint8(b), err
}

// AsInt16 returns the low 16 bits of an integer Value as int16.
func (v Value) AsInt16() (int16, error) {
	b, err := v.intBits("AsInt16")
	return int16(b), err
}

// AsUint16 returns the low 16 bits of an integer Value.
func (v Value) AsUint16() (uint16, error) {
	b, err := v.intBits("AsUint16")
	return uint16(b), err
}

// AsInt32 returns the low 32 bits of an integer Value as int32.
func (v Value) AsInt32() (int32, error) {
	b, err := v.intBits("AsInt32")
	return int32(b), err
}

// AsUint32 returns the low 32 bits of an integer Value.
func (v Value) AsUint32() (uint32, error) {
	b, err := v.intBits("AsUint32")
	return uint32(b), err
}

// AsInt64 returns the stored bits of an integer Value as int64.
func (v Value) AsInt64() (int64, error) {
	b, err := v.intBits("AsInt64")
	return int64(b), err
}

// AsUint64 returns the stored bits of an integer Value.
func (v Value) AsUint64() (uint64, error) {
	return v.intBits("AsUint64")
}

// AsFloat returns a Float or Double Value narrowed to float32.
func (v Value) AsFloat() (float32, error) {
	if !v.typ.IsFloating() {
		return 0, mismatch("AsFloat", v.typ)
	}
	if v.typ == TypeFloat {
		return math.Float32frombits(uint32(v.bits)), nil
	}
	return float32(v.f64), nil
}

// AsDouble returns a Float or Double Value as float64.
func (v Value) AsDouble() (float64, error) {
	if !v.typ.IsFloating() {
		return 0, mismatch("AsDouble", v.typ)
	}
	return v.double(), nil
}

// AsString returns the text of a String or LongString Value.
func (v Value) AsString() (string, error) {
	if !v.typ.IsString() {
		return "", mismatch("AsString", v.typ)
	}
	return v.text, nil
}

// AsBytes returns a copy of the payload of a ByteArray Value.
func (v Value) AsBytes() ([]byte, error) {
	if v.typ != TypeByteArray {
		return nil, mismatch("AsBytes", v.typ)
	}
	return append([]byte{}, v.bytes...), nil
}

// Len returns the number of entries of a container Value.
func (v Value) Len() (int, error) {
	switch v.typ {
	case TypeObject:
		return len(v.obj), nil
	case TypeArray:
		return len(v.arr), nil
	case TypeDictionary:
		return len(v.dict), nil
	default:
		return 0, mismatch("Len", v.typ)
	}
}
