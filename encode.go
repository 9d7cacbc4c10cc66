package obf

import (
	"encoding/binary"
	"io"
	"math"
	"slices"

	"github.com/delaneyj/toolbelt/bytebufferpool"
)

// Encode serializes v. Every Value has an encoding, so Encode cannot fail.
func Encode(v Value) []byte {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)
	encodeValueToBuffer(buf, v)
	out := append([]byte{}, buf.Bytes()...)
	return out
}

// AppendEncode appends the encoding of v to dst and returns the extended slice.
func AppendEncode(dst []byte, v Value) []byte {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)
	encodeValueToBuffer(buf, v)
	return append(dst, buf.Bytes()...)
}

// EncodeTo writes the encoding of v to w.
func EncodeTo(w io.Writer, v Value) (int, error) {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)
	encodeValueToBuffer(buf, v)
	return w.Write(buf.Bytes())
}

// EncodedLen returns the number of bytes Encode would produce for v.
func EncodedLen(v Value) int {
	switch v.typ {
	case TypeNone:
		return 1
	case TypeInt8, TypeInt16, TypeInt32, TypeInt64:
		return 1 + intWidth(v.typ)
	case TypeFloat:
		return 1 + 4
	case TypeDouble:
		return 1 + 8
	case TypeString:
		return 1 + 2 + len(v.text)
	case TypeLongString:
		return 1 + 4 + len(v.text)
	case TypeByteArray:
		return 1 + 4 + len(v.bytes)
	case TypeObject:
		n := 1 + 4
		for _, e := range v.obj {
			n += 4 + EncodedLen(*e)
		}
		return n
	case TypeArray:
		n := 1 + 4
		for i := range v.arr {
			n += EncodedLen(v.arr[i])
		}
		return n
	case TypeDictionary:
		n := 1 + 4
		for k, e := range v.dict {
			n += 2 + len(k) + EncodedLen(*e)
		}
		return n
	default:
		return 1
	}
}

func encodeValueToBuffer(buf *bytebufferpool.ByteBuffer, v Value) {
	var tmp [8]byte
	buf.WriteByte(byte(v.typ))
	switch v.typ {
	case TypeInt8:
		buf.WriteByte(byte(v.bits))
	case TypeInt16:
		binary.BigEndian.PutUint16(tmp[:2], uint16(v.bits))
		buf.Write(tmp[:2])
	case TypeInt32:
		binary.BigEndian.PutUint32(tmp[:4], uint32(v.bits))
		buf.Write(tmp[:4])
	case TypeInt64:
		binary.BigEndian.PutUint64(tmp[:], v.bits)
		buf.Write(tmp[:])
	case TypeFloat:
		binary.BigEndian.PutUint32(tmp[:4], uint32(v.bits))
		buf.Write(tmp[:4])
	case TypeDouble:
		binary.BigEndian.PutUint64(tmp[:], math.Float64bits(v.f64))
		buf.Write(tmp[:])
	case TypeString:
		binary.BigEndian.PutUint16(tmp[:2], uint16(len(v.text)))
		buf.Write(tmp[:2])
		buf.WriteString(v.text)
	case TypeLongString:
		binary.BigEndian.PutUint32(tmp[:4], uint32(len(v.text)))
		buf.Write(tmp[:4])
		buf.WriteString(v.text)
	case TypeByteArray:
		binary.BigEndian.PutUint32(tmp[:4], uint32(len(v.bytes)))
		buf.Write(tmp[:4])
		buf.Write(v.bytes)
	case TypeObject:
		encodeObjectToBuffer(buf, v.obj)
	case TypeArray:
		binary.BigEndian.PutUint32(tmp[:4], uint32(len(v.arr)))
		buf.Write(tmp[:4])
		for i := range v.arr {
			encodeValueToBuffer(buf, v.arr[i])
		}
	case TypeDictionary:
		encodeDictToBuffer(buf, v.dict)
	}
}

func encodeObjectToBuffer(buf *bytebufferpool.ByteBuffer, obj map[uint32]*Value) {
	var tmp [4]byte
	binary.BigEndian.PutUint32(tmp[:], uint32(len(obj)))
	buf.Write(tmp[:])
	if len(obj) == 0 {
		return
	}
	keys := getObjectKeys(len(obj))
	defer func() { putObjectKeys(keys) }()
	for k := range obj {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		binary.BigEndian.PutUint32(tmp[:], k)
		buf.Write(tmp[:])
		encodeValueToBuffer(buf, *obj[k])
	}
}

func encodeDictToBuffer(buf *bytebufferpool.ByteBuffer, dict map[string]*Value) {
	var tmp [4]byte
	binary.BigEndian.PutUint32(tmp[:], uint32(len(dict)))
	buf.Write(tmp[:])
	if len(dict) == 0 {
		return
	}
	keys := getDictKeys(len(dict))
	defer func() { putDictKeys(keys) }()
	for k := range dict {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		binary.BigEndian.PutUint16(tmp[:2], uint16(len(k)))
		buf.Write(tmp[:2])
		buf.WriteString(k)
		encodeValueToBuffer(buf, *dict[k])
	}
}
