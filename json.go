package obf

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/minio/simdjson-go"
)

// JSON has no byte array type; byte arrays travel as strings with this prefix.
const bytesPrefix = "b64:"

// FromJSON converts JSON into a Value. Objects become Dictionaries, arrays
// become Arrays, non-negative integers use minimal-width promotion, negative
// integers are tagged Int64, other numbers are Doubles, booleans become Int8
// 0 or 1 and "b64:" strings become ByteArrays.
func FromJSON(data []byte) (Value, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return Value{}, fmt.Errorf("json input is empty")
	}
	if (trimmed[0] == '{' || trimmed[0] == '[') && simdjson.SupportedCPU() {
		return fromJSONSIMD(trimmed)
	}
	return fromJSONStd(trimmed)
}

func fromJSONSIMD(data []byte) (Value, error) {
	parsed, err := simdjson.Parse(data, nil)
	if err != nil {
		return Value{}, err
	}
	it := parsed.Iter()
	if it.Advance() != simdjson.TypeRoot {
		return Value{}, fmt.Errorf("json root not found")
	}
	typ, root, err := it.Root(nil)
	if err != nil {
		return Value{}, err
	}
	return valueFromJSONIter(typ, root)
}

func valueFromJSONIter(typ simdjson.Type, it *simdjson.Iter) (Value, error) {
	switch typ {
	case simdjson.TypeNull:
		return Value{}, nil
	case simdjson.TypeBool:
		b, err := it.Bool()
		if err != nil {
			return Value{}, err
		}
		return boolValue(b), nil
	case simdjson.TypeInt:
		n, err := it.Int()
		if err != nil {
			return Value{}, err
		}
		return intValue(n), nil
	case simdjson.TypeUint:
		n, err := it.Uint()
		if err != nil {
			return Value{}, err
		}
		return Uint(n), nil
	case simdjson.TypeFloat:
		f, err := it.Float()
		if err != nil {
			return Value{}, err
		}
		return NewDouble(f), nil
	case simdjson.TypeString:
		b, err := it.StringBytes()
		if err != nil {
			return Value{}, err
		}
		return stringOrBytes(string(b)), nil
	case simdjson.TypeObject:
		obj, err := it.Object(nil)
		if err != nil {
			return Value{}, err
		}
		out := NewDictionary()
		var parseErr error
		err = obj.ForEach(func(key []byte, elem simdjson.Iter) {
			if parseErr != nil {
				return
			}
			if len(key) > MaxKeyLen {
				parseErr = fmt.Errorf("%w: %d bytes", ErrKeyTooLong, len(key))
				return
			}
			val, err := valueFromJSONIter(elem.Type(), &elem)
			if err != nil {
				parseErr = err
				return
			}
			out.dict[string(key)] = &val
		}, nil)
		if err != nil {
			return Value{}, err
		}
		if parseErr != nil {
			return Value{}, parseErr
		}
		return out, nil
	case simdjson.TypeArray:
		arr, err := it.Array(nil)
		if err != nil {
			return Value{}, err
		}
		out := Value{typ: TypeArray, arr: []Value{}}
		iter := arr.Iter()
		for {
			t := iter.Advance()
			if t == simdjson.TypeNone {
				break
			}
			elem := iter
			val, err := valueFromJSONIter(t, &elem)
			if err != nil {
				return Value{}, err
			}
			out.arr = append(out.arr, val)
		}
		return out, nil
	default:
		return Value{}, fmt.Errorf("unsupported json type: %v", typ)
	}
}

// fromJSONStd handles scalar documents and CPUs without simdjson support.
func fromJSONStd(data []byte) (Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return Value{}, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return Value{}, fmt.Errorf("invalid character after top-level value")
	}
	return valueFromAny(v)
}

// valueFromAny converts the output of encoding/json (with UseNumber) and
// similar generic decoders into a Value.
func valueFromAny(v any) (Value, error) {
	switch val := v.(type) {
	case nil:
		return Value{}, nil
	case bool:
		return boolValue(val), nil
	case json.Number:
		return numberValue(string(val))
	case float64:
		return NewDouble(val), nil
	case string:
		return stringOrBytes(val), nil
	case []any:
		out := Value{typ: TypeArray, arr: make([]Value, 0, len(val))}
		for _, e := range val {
			ev, err := valueFromAny(e)
			if err != nil {
				return Value{}, err
			}
			out.arr = append(out.arr, ev)
		}
		return out, nil
	case map[string]any:
		out := NewDictionary()
		for k, e := range val {
			if err := checkKey(k); err != nil {
				return Value{}, err
			}
			ev, err := valueFromAny(e)
			if err != nil {
				return Value{}, err
			}
			out.dict[k] = &ev
		}
		return out, nil
	default:
		return Value{}, fmt.Errorf("unsupported json type %T", v)
	}
}

func numberValue(s string) (Value, error) {
	if u, err := strconv.ParseUint(s, 10, 64); err == nil {
		return Uint(u), nil
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return intValue(i), nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return Value{}, fmt.Errorf("invalid json number: %s", s)
	}
	return NewDouble(f), nil
}

func boolValue(b bool) Value {
	if b {
		return Uint(uint8(1))
	}
	return Uint(uint8(0))
}

func intValue(n int64) Value {
	if n >= 0 {
		return Uint(uint64(n))
	}
	return NewInt64(n)
}

func stringOrBytes(s string) Value {
	if rest, ok := strings.CutPrefix(s, bytesPrefix); ok {
		if decoded, err := base64.StdEncoding.DecodeString(rest); err == nil {
			return Value{typ: TypeByteArray, bytes: decoded}
		}
	}
	return NewString(s)
}

// ToJSON renders v as JSON. Object keys become decimal strings, Int64 values
// are written signed and narrower integers unsigned, non-finite floats become
// null and byte arrays become "b64:" strings.
func ToJSON(v Value) string {
	var sb strings.Builder
	WriteJSON(&sb, v)
	return sb.String()
}

// WriteJSON appends the JSON rendering of v to sb.
func WriteJSON(sb *strings.Builder, v Value) {
	switch v.typ {
	case TypeNone:
		sb.WriteString("null")
	case TypeInt8, TypeInt16, TypeInt32:
		sb.WriteString(strconv.FormatUint(v.bits, 10))
	case TypeInt64:
		sb.WriteString(strconv.FormatInt(int64(v.bits), 10))
	case TypeFloat, TypeDouble:
		f := v.double()
		if math.IsNaN(f) || math.IsInf(f, 0) {
			sb.WriteString("null")
			return
		}
		bitSize := 64
		if v.typ == TypeFloat {
			bitSize = 32
		}
		sb.WriteString(strconv.FormatFloat(f, 'g', -1, bitSize))
	case TypeString, TypeLongString:
		writeJSONString(sb, v.text)
	case TypeByteArray:
		sb.WriteByte('"')
		sb.WriteString(bytesPrefix)
		sb.WriteString(base64.StdEncoding.EncodeToString(v.bytes))
		sb.WriteByte('"')
	case TypeObject:
		keys, _ := v.ObjectKeys()
		sb.WriteByte('{')
		for i, k := range keys {
			if i > 0 {
				sb.WriteByte(',')
			}
			sb.WriteByte('"')
			sb.WriteString(strconv.FormatUint(uint64(k), 10))
			sb.WriteString(`":`)
			WriteJSON(sb, *v.obj[k])
		}
		sb.WriteByte('}')
	case TypeDictionary:
		keys, _ := v.DictKeys()
		sb.WriteByte('{')
		for i, k := range keys {
			if i > 0 {
				sb.WriteByte(',')
			}
			writeJSONString(sb, k)
			sb.WriteByte(':')
			WriteJSON(sb, *v.dict[k])
		}
		sb.WriteByte('}')
	case TypeArray:
		sb.WriteByte('[')
		for i := range v.arr {
			if i > 0 {
				sb.WriteByte(',')
			}
			WriteJSON(sb, v.arr[i])
		}
		sb.WriteByte(']')
	}
}

func writeJSONString(sb *strings.Builder, s string) {
	sb.WriteByte('"')
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch c {
		case '"', '\\':
			sb.WriteByte('\\')
			sb.WriteByte(c)
		case '\b':
			sb.WriteString(`\b`)
		case '\f':
			sb.WriteString(`\f`)
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
			sb.WriteString(`\r`)
		case '\t':
			sb.WriteString(`\t`)
		default:
			if c < 0x20 {
				sb.WriteString(`\u00`)
				sb.WriteByte(hexDigit(c >> 4))
				sb.WriteByte(hexDigit(c & 0xF))
			} else {
				sb.WriteByte(c)
			}
		}
	}
	sb.WriteByte('"')
}

func hexDigit(n byte) byte {
	if n < 10 {
		return '0' + n
	}
	return 'A' + (n - 10)
}
