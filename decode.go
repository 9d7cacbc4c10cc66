package obf

import (
	"encoding/binary"
	"math"
)

// MaxDepth bounds container nesting accepted by the decoder so hostile input
// cannot exhaust the stack.
const MaxDepth = 10000

// Smallest possible encodings, used to cap preallocation from untrusted counts.
const (
	minValueLen     = 1
	minObjectEntry  = 4 + minValueLen
	minDictEntry    = 2 + minValueLen
	minArrayElement = minValueLen
)

// Decode parses one Value starting at offset and returns it together with the
// number of bytes consumed. On failure the error wraps ErrMalformedData and no
// partial Value is returned.
func Decode(b []byte, offset int) (Value, int, error) {
	if offset < 0 || offset > len(b) {
		return Value{}, 0, malformed(offset, "offset outside buffer of %d bytes", len(b))
	}
	d := decoder{buf: b}
	v, end, err := d.value(offset, 0)
	if err != nil {
		return Value{}, 0, err
	}
	return v, end - offset, nil
}

// DecodeAll parses b as exactly one Value with no trailing bytes.
func DecodeAll(b []byte) (Value, error) {
	v, n, err := Decode(b, 0)
	if err != nil {
		return Value{}, err
	}
	if n != len(b) {
		return Value{}, malformed(n, "%d trailing bytes after value", len(b)-n)
	}
	return v, nil
}

type decoder struct {
	buf []byte
}

// need checks that n bytes are available at off.
func (d *decoder) need(off int, n uint64, what string) error {
	if uint64(len(d.buf)-off) < n {
		return malformed(off, "%s needs %d bytes, %d remaining", what, n, len(d.buf)-off)
	}
	return nil
}

func (d *decoder) u16(off int, what string) (uint16, int, error) {
	if err := d.need(off, 2, what); err != nil {
		return 0, 0, err
	}
	return binary.BigEndian.Uint16(d.buf[off:]), off + 2, nil
}

func (d *decoder) u32(off int, what string) (uint32, int, error) {
	if err := d.need(off, 4, what); err != nil {
		return 0, 0, err
	}
	return binary.BigEndian.Uint32(d.buf[off:]), off + 4, nil
}

func (d *decoder) u64(off int, what string) (uint64, int, error) {
	if err := d.need(off, 8, what); err != nil {
		return 0, 0, err
	}
	return binary.BigEndian.Uint64(d.buf[off:]), off + 8, nil
}

// raw returns n bytes at off without copying.
func (d *decoder) raw(off int, n uint64, what string) ([]byte, int, error) {
	if err := d.need(off, n, what); err != nil {
		return nil, 0, err
	}
	end := off + int(n)
	return d.buf[off:end], end, nil
}

func (d *decoder) value(off, depth int) (Value, int, error) {
	if err := d.need(off, 1, "tag"); err != nil {
		return Value{}, 0, err
	}
	t := Type(d.buf[off])
	off++
	switch t {
	case TypeNone:
		return Value{}, off, nil
	case TypeInt8:
		if err := d.need(off, 1, "int8"); err != nil {
			return Value{}, 0, err
		}
		return Value{typ: t, bits: uint64(d.buf[off])}, off + 1, nil
	case TypeInt16:
		x, next, err := d.u16(off, "int16")
		return Value{typ: t, bits: uint64(x)}, next, err
	case TypeInt32:
		x, next, err := d.u32(off, "int32")
		return Value{typ: t, bits: uint64(x)}, next, err
	case TypeInt64:
		x, next, err := d.u64(off, "int64")
		return Value{typ: t, bits: x}, next, err
	case TypeFloat:
		x, next, err := d.u32(off, "float")
		return Value{typ: t, bits: uint64(x)}, next, err
	case TypeDouble:
		x, next, err := d.u64(off, "double")
		return Value{typ: t, f64: math.Float64frombits(x)}, next, err
	case TypeString:
		n, next, err := d.u16(off, "string length")
		if err != nil {
			return Value{}, 0, err
		}
		s, next, err := d.raw(next, uint64(n), "string")
		if err != nil {
			return Value{}, 0, err
		}
		return Value{typ: t, text: string(s)}, next, nil
	case TypeLongString:
		n, next, err := d.u32(off, "long string length")
		if err != nil {
			return Value{}, 0, err
		}
		s, next, err := d.raw(next, uint64(n), "long string")
		if err != nil {
			return Value{}, 0, err
		}
		return Value{typ: t, text: string(s)}, next, nil
	case TypeByteArray:
		n, next, err := d.u32(off, "byte array length")
		if err != nil {
			return Value{}, 0, err
		}
		b, next, err := d.raw(next, uint64(n), "byte array")
		if err != nil {
			return Value{}, 0, err
		}
		return Value{typ: t, bytes: append([]byte{}, b...)}, next, nil
	case TypeObject, TypeArray, TypeDictionary:
		if depth >= MaxDepth {
			return Value{}, 0, malformed(off-1, "nesting deeper than %d", MaxDepth)
		}
		switch t {
		case TypeObject:
			return d.object(off, depth+1)
		case TypeArray:
			return d.array(off, depth+1)
		default:
			return d.dictionary(off, depth+1)
		}
	default:
		return Value{}, 0, malformed(off-1, "unknown tag %d", uint8(t))
	}
}

// capacity bounds a preallocation by what the remaining bytes could hold.
func (d *decoder) capacity(off int, count uint32, minEntry int) int {
	limit := (len(d.buf) - off) / minEntry
	if int64(count) < int64(limit) {
		return int(count)
	}
	return limit
}

func (d *decoder) object(off, depth int) (Value, int, error) {
	count, off, err := d.u32(off, "object count")
	if err != nil {
		return Value{}, 0, err
	}
	obj := make(map[uint32]*Value, d.capacity(off, count, minObjectEntry))
	for i := uint32(0); i < count; i++ {
		var key uint32
		key, off, err = d.u32(off, "object key")
		if err != nil {
			return Value{}, 0, err
		}
		var e Value
		e, off, err = d.value(off, depth)
		if err != nil {
			return Value{}, 0, err
		}
		obj[key] = &e
	}
	return Value{typ: TypeObject, obj: obj}, off, nil
}

func (d *decoder) array(off, depth int) (Value, int, error) {
	count, off, err := d.u32(off, "array count")
	if err != nil {
		return Value{}, 0, err
	}
	arr := make([]Value, 0, d.capacity(off, count, minArrayElement))
	for i := uint32(0); i < count; i++ {
		var e Value
		e, off, err = d.value(off, depth)
		if err != nil {
			return Value{}, 0, err
		}
		arr = append(arr, e)
	}
	return Value{typ: TypeArray, arr: arr}, off, nil
}

func (d *decoder) dictionary(off, depth int) (Value, int, error) {
	count, off, err := d.u32(off, "dictionary count")
	if err != nil {
		return Value{}, 0, err
	}
	dict := make(map[string]*Value, d.capacity(off, count, minDictEntry))
	for i := uint32(0); i < count; i++ {
		var n uint16
		n, off, err = d.u16(off, "dictionary key length")
		if err != nil {
			return Value{}, 0, err
		}
		var key []byte
		key, off, err = d.raw(off, uint64(n), "dictionary key")
		if err != nil {
			return Value{}, 0, err
		}
		var e Value
		e, off, err = d.value(off, depth)
		if err != nil {
			return Value{}, 0, err
		}
		dict[string(key)] = &e
	}
	return Value{typ: TypeDictionary, dict: dict}, off, nil
}
