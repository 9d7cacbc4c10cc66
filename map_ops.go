package obf

import (
	"fmt"
	"slices"
)

// Object and Dictionary operations require the Value to already carry the
// matching tag. Unlike GetOrInsertArray they never promote a None Value.

// ObjectGet returns a deep copy of the Value stored under key, or a None Value
// when the key is absent. Use ObjectRef to modify the entry in place.
func (v Value) ObjectGet(key uint32) (Value, error) {
	if v.typ != TypeObject {
		return Value{}, mismatch("ObjectGet", v.typ)
	}
	if e, ok := v.obj[key]; ok {
		return e.Clone(), nil
	}
	return Value{}, nil
}

// ObjectHas reports whether key is present.
func (v Value) ObjectHas(key uint32) (bool, error) {
	if v.typ != TypeObject {
		return false, mismatch("ObjectHas", v.typ)
	}
	_, ok := v.obj[key]
	return ok, nil
}

// ObjectSet stores a deep copy of val under key, replacing any previous entry.
func (v *Value) ObjectSet(key uint32, val Value) error {
	if v.typ != TypeObject {
		return mismatch("ObjectSet", v.typ)
	}
	c := val.Clone()
	v.objMap()[key] = &c
	return nil
}

// ObjectRef returns a mutable slot for key, inserting a None Value when the
// key is absent.
func (v *Value) ObjectRef(key uint32) (*Value, error) {
	if v.typ != TypeObject {
		return nil, mismatch("ObjectRef", v.typ)
	}
	m := v.objMap()
	e, ok := m[key]
	if !ok {
		e = &Value{}
		m[key] = e
	}
	return e, nil
}

// ObjectDelete removes key. Deleting an absent key is a no-op.
func (v *Value) ObjectDelete(key uint32) error {
	if v.typ != TypeObject {
		return mismatch("ObjectDelete", v.typ)
	}
	delete(v.obj, key)
	return nil
}

// ObjectKeys returns the keys in ascending order.
func (v Value) ObjectKeys() ([]uint32, error) {
	if v.typ != TypeObject {
		return nil, mismatch("ObjectKeys", v.typ)
	}
	keys := make([]uint32, 0, len(v.obj))
	for k := range v.obj {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys, nil
}

func (v *Value) objMap() map[uint32]*Value {
	if v.obj == nil {
		v.obj = map[uint32]*Value{}
	}
	return v.obj
}

// DictGet returns a deep copy of the Value stored under key, or a None Value
// when the key is absent. Use DictRef to modify the entry in place.
func (v Value) DictGet(key string) (Value, error) {
	if v.typ != TypeDictionary {
		return Value{}, mismatch("DictGet", v.typ)
	}
	if e, ok := v.dict[key]; ok {
		return e.Clone(), nil
	}
	return Value{}, nil
}

// DictHas reports whether key is present.
func (v Value) DictHas(key string) (bool, error) {
	if v.typ != TypeDictionary {
		return false, mismatch("DictHas", v.typ)
	}
	_, ok := v.dict[key]
	return ok, nil
}

// DictSet stores a deep copy of val under key, replacing any previous entry.
func (v *Value) DictSet(key string, val Value) error {
	if v.typ != TypeDictionary {
		return mismatch("DictSet", v.typ)
	}
	if err := checkKey(key); err != nil {
		return err
	}
	c := val.Clone()
	v.dictMap()[key] = &c
	return nil
}

// DictRef returns a mutable slot for key, inserting a None Value when the key
// is absent.
func (v *Value) DictRef(key string) (*Value, error) {
	if v.typ != TypeDictionary {
		return nil, mismatch("DictRef", v.typ)
	}
	if err := checkKey(key); err != nil {
		return nil, err
	}
	m := v.dictMap()
	e, ok := m[key]
	if !ok {
		e = &Value{}
		m[key] = e
	}
	return e, nil
}

// DictDelete removes key. Deleting an absent key is a no-op.
func (v *Value) DictDelete(key string) error {
	if v.typ != TypeDictionary {
		return mismatch("DictDelete", v.typ)
	}
	delete(v.dict, key)
	return nil
}

// DictKeys returns the keys in ascending byte-wise order.
func (v Value) DictKeys() ([]string, error) {
	if v.typ != TypeDictionary {
		return nil, mismatch("DictKeys", v.typ)
	}
	keys := make([]string, 0, len(v.dict))
	for k := range v.dict {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys, nil
}

func (v *Value) dictMap() map[string]*Value {
	if v.dict == nil {
		v.dict = map[string]*Value{}
	}
	return v.dict
}

func checkKey(key string) error {
	if len(key) > MaxKeyLen {
		return fmt.Errorf("%w: %d bytes", ErrKeyTooLong, len(key))
	}
	return nil
}
