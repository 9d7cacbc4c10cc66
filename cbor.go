package obf

import (
	"fmt"
	"math"
	"reflect"

	"github.com/fxamacker/cbor/v2"
)

var (
	cborEnc cbor.EncMode
	cborDec cbor.DecMode
)

func init() {
	var err error
	cborEnc, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic(err)
	}
	cborDec, err = cbor.DecOptions{
		DefaultMapType:  reflect.TypeOf(map[any]any{}),
		MaxNestedLevels: 256,
	}.DecMode()
	if err != nil {
		panic(err)
	}
}

// ToCBOR converts v into deterministic CBOR. Objects become maps with
// unsigned keys and Dictionaries maps with text keys. CBOR has no width
// tags, so FromCBOR re-derives integer widths by promotion.
func ToCBOR(v Value) ([]byte, error) {
	return cborEnc.Marshal(valueToAny(v))
}

// FromCBOR converts CBOR into a Value. A map whose keys are all unsigned
// integers below 2^32 becomes an Object, a map with text keys a Dictionary.
// An empty map carries no key type and always becomes an empty Dictionary,
// so an empty Object does not survive a ToCBOR round trip.
func FromCBOR(data []byte) (Value, error) {
	var raw any
	if err := cborDec.Unmarshal(data, &raw); err != nil {
		return Value{}, err
	}
	return valueFromCBOR(raw)
}

// MarshalCBOR implements cbor.Marshaler.
func (v Value) MarshalCBOR() ([]byte, error) {
	return ToCBOR(v)
}

// UnmarshalCBOR implements cbor.Unmarshaler.
func (v *Value) UnmarshalCBOR(data []byte) error {
	out, err := FromCBOR(data)
	if err != nil {
		return err
	}
	*v = out
	return nil
}

// valueToAny converts v into plain Go values.
func valueToAny(v Value) any {
	switch v.typ {
	case TypeInt8, TypeInt16, TypeInt32:
		return v.bits
	case TypeInt64:
		return int64(v.bits)
	case TypeFloat:
		return math.Float32frombits(uint32(v.bits))
	case TypeDouble:
		return v.f64
	case TypeString, TypeLongString:
		return v.text
	case TypeByteArray:
		if v.bytes == nil {
			return []byte{}
		}
		return v.bytes
	case TypeObject:
		out := make(map[uint64]any, len(v.obj))
		for k, e := range v.obj {
			out[uint64(k)] = valueToAny(*e)
		}
		return out
	case TypeDictionary:
		out := make(map[string]any, len(v.dict))
		for k, e := range v.dict {
			out[k] = valueToAny(*e)
		}
		return out
	case TypeArray:
		out := make([]any, len(v.arr))
		for i := range v.arr {
			out[i] = valueToAny(v.arr[i])
		}
		return out
	default:
		return nil
	}
}

func valueFromCBOR(raw any) (Value, error) {
	switch val := raw.(type) {
	case nil:
		return Value{}, nil
	case bool:
		return boolValue(val), nil
	case uint64:
		return Uint(val), nil
	case int64:
		return intValue(val), nil
	case float32:
		return NewFloat(val), nil
	case float64:
		return NewDouble(val), nil
	case string:
		return NewString(val), nil
	case []byte:
		return NewBytes(val), nil
	case []any:
		out := Value{typ: TypeArray, arr: make([]Value, 0, len(val))}
		for _, e := range val {
			ev, err := valueFromCBOR(e)
			if err != nil {
				return Value{}, err
			}
			out.arr = append(out.arr, ev)
		}
		return out, nil
	case map[any]any:
		return mapFromCBOR(val)
	default:
		return Value{}, fmt.Errorf("unsupported cbor item %T", raw)
	}
}

func mapFromCBOR(m map[any]any) (Value, error) {
	numeric := len(m) > 0
	for k := range m {
		if u, ok := k.(uint64); !ok || u > math.MaxUint32 {
			numeric = false
			break
		}
	}
	if numeric {
		out := NewObject()
		for k, e := range m {
			ev, err := valueFromCBOR(e)
			if err != nil {
				return Value{}, err
			}
			out.obj[uint32(k.(uint64))] = &ev
		}
		return out, nil
	}
	out := NewDictionary()
	for k, e := range m {
		key, ok := k.(string)
		if !ok {
			return Value{}, fmt.Errorf("unsupported cbor map key %T", k)
		}
		if err := checkKey(key); err != nil {
			return Value{}, err
		}
		ev, err := valueFromCBOR(e)
		if err != nil {
			return Value{}, err
		}
		out.dict[key] = &ev
	}
	return out, nil
}
