package obf

import "fmt"

// GetOrInsertArray returns a mutable slot at index i, promoting a None Value
// to an empty Array first. An index equal to the current length appends a
// None element; anything further is ErrIndexOutOfRange.
//
// The returned pointer is valid until the array grows again. After that,
// writes through it no longer reach v; call GetOrInsertArray again.
func (v *Value) GetOrInsertArray(i int) (*Value, error) {
	if v.typ != TypeArray && v.typ != TypeNone {
		return nil, mismatch("GetOrInsertArray", v.typ)
	}
	if i < 0 || i > len(v.arr) {
		return nil, fmt.Errorf("%w: index %d, length %d", ErrIndexOutOfRange, i, len(v.arr))
	}
	v.typ = TypeArray
	if i == len(v.arr) {
		v.arr = append(v.arr, Value{})
	}
	return &v.arr[i], nil
}

// Append adds a deep copy of val to the end of an Array.
func (v *Value) Append(val Value) error {
	if v.typ != TypeArray {
		return mismatch("Append", v.typ)
	}
	v.arr = append(v.arr, val.Clone())
	return nil
}

// Index returns a deep copy of element i of an Array, or a None Value when i is
// out of range.
func (v Value) Index(i int) (Value, error) {
	if v.typ != TypeArray {
		return Value{}, mismatch("Index", v.typ)
	}
	if i < 0 || i >= len(v.arr) {
		return Value{}, nil
	}
	return v.arr[i].Clone(), nil
}

// Elements returns deep copies of the elements of an Array in order.
func (v Value) Elements() ([]Value, error) {
	if v.typ != TypeArray {
		return nil, mismatch("Elements", v.typ)
	}
	out := make([]Value, len(v.arr))
	for i := range v.arr {
		out[i] = v.arr[i].Clone()
	}
	return out, nil
}
