package obf

import (
	"errors"
	"slices"
	"strings"
	"testing"
)

func TestObjectOps(t *testing.T) {
	v := NewObject()
	for _, k := range []uint32{5, 1, 3} {
		if err := v.ObjectSet(k, Uint(uint64(k)*10)); err != nil {
			t.Fatalf("ObjectSet(%d): %v", k, err)
		}
	}
	keys, err := v.ObjectKeys()
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(keys, []uint32{1, 3, 5}) {
		t.Fatalf("keys = %v", keys)
	}
	got, err := v.ObjectGet(3)
	if err != nil {
		t.Fatal(err)
	}
	if n, _ := got.AsUint32(); n != 30 {
		t.Fatalf("ObjectGet(3) = %d", n)
	}
	missing, err := v.ObjectGet(4)
	if err != nil || !missing.IsNone() {
		t.Fatalf("ObjectGet(absent) = %s, %v", missing, err)
	}
	if ok, _ := v.ObjectHas(4); ok {
		t.Fatalf("ObjectHas(4) = true")
	}
	if err := v.ObjectSet(3, NewString("x")); err != nil {
		t.Fatal(err)
	}
	got, _ = v.ObjectGet(3)
	if s, _ := got.AsString(); s != "x" {
		t.Fatalf("overwrite failed: %s", got)
	}
	if err := v.ObjectDelete(3); err != nil {
		t.Fatal(err)
	}
	if ok, _ := v.ObjectHas(3); ok {
		t.Fatalf("ObjectDelete left key")
	}
	slot, err := v.ObjectRef(9)
	if err != nil {
		t.Fatal(err)
	}
	slot.SetDouble(2.5)
	got, _ = v.ObjectGet(9)
	if d, _ := got.AsDouble(); d != 2.5 {
		t.Fatalf("ObjectRef write not visible: %s", got)
	}
	if n, _ := v.Len(); n != 3 {
		t.Fatalf("Len = %d, want 3", n)
	}
}

func TestObjectRequiresTag(t *testing.T) {
	var none Value
	if err := none.ObjectSet(1, Value{}); !errors.Is(err, ErrTypeMismatch) {
		t.Fatalf("ObjectSet on none err = %v", err)
	}
	if !none.IsNone() {
		t.Fatalf("failed ObjectSet promoted the value to %s", none.Type())
	}
	arr := NewArray()
	if err := arr.ObjectSet(1, Value{}); !errors.Is(err, ErrTypeMismatch) {
		t.Fatalf("ObjectSet on array err = %v", err)
	}
	if _, err := arr.ObjectGet(1); !errors.Is(err, ErrTypeMismatch) {
		t.Fatalf("ObjectGet on array err = %v", err)
	}
	if _, err := none.ObjectRef(1); !errors.Is(err, ErrTypeMismatch) {
		t.Fatalf("ObjectRef on none err = %v", err)
	}
}

func TestObjectSetStoresCopy(t *testing.T) {
	obj := NewObject()
	child := NewArray()
	if err := obj.ObjectSet(1, child); err != nil {
		t.Fatal(err)
	}
	if err := child.Append(Uint(uint8(1))); err != nil {
		t.Fatal(err)
	}
	stored, _ := obj.ObjectGet(1)
	if n, _ := stored.Len(); n != 0 {
		t.Fatalf("stored child aliases caller value: len %d", n)
	}
}

func TestObjectGetReturnsCopy(t *testing.T) {
	obj := NewObject()
	if err := obj.ObjectSet(1, NewDictionary()); err != nil {
		t.Fatal(err)
	}
	got, _ := obj.ObjectGet(1)
	if err := got.DictSet("leak", Uint(uint8(1))); err != nil {
		t.Fatal(err)
	}
	stored, _ := obj.ObjectGet(1)
	if n, _ := stored.Len(); n != 0 {
		t.Fatalf("write through ObjectGet result reached the owner: len %d", n)
	}

	slot, err := obj.ObjectRef(1)
	if err != nil {
		t.Fatal(err)
	}
	if err := slot.DictSet("kept", Uint(uint8(1))); err != nil {
		t.Fatal(err)
	}
	stored, _ = obj.ObjectGet(1)
	if n, _ := stored.Len(); n != 1 {
		t.Fatalf("write through ObjectRef was lost: len %d", n)
	}
}

func TestDictGetReturnsCopy(t *testing.T) {
	root := NewDictionary()
	if err := root.DictSet("child", NewDictionary()); err != nil {
		t.Fatal(err)
	}
	if err := root.DictSet("blob", NewBytes([]byte{1, 2})); err != nil {
		t.Fatal(err)
	}

	child, _ := root.DictGet("child")
	if err := child.DictSet("leak", NewString("x")); err != nil {
		t.Fatal(err)
	}
	child, _ = root.DictGet("child")
	if n, _ := child.Len(); n != 0 {
		t.Fatalf("write through DictGet result reached the owner: len %d", n)
	}

	blob, _ := root.DictGet("blob")
	b, _ := blob.AsBytes()
	b[0] = 9
	blob, _ = root.DictGet("blob")
	if b, _ := blob.AsBytes(); b[0] != 1 {
		t.Fatalf("byte payload shared with the owner: %v", b)
	}
}

func TestDictionaryOps(t *testing.T) {
	v := NewDictionary()
	if err := v.DictSet("b", Uint(uint8(2))); err != nil {
		t.Fatal(err)
	}
	if err := v.DictSet("a", Uint(uint8(1))); err != nil {
		t.Fatal(err)
	}
	keys, _ := v.DictKeys()
	if !slices.Equal(keys, []string{"a", "b"}) {
		t.Fatalf("keys = %v", keys)
	}
	if ok, _ := v.DictHas("a"); !ok {
		t.Fatalf("DictHas(a) = false")
	}
	missing, err := v.DictGet("zz")
	if err != nil || !missing.IsNone() {
		t.Fatalf("DictGet(absent) = %s, %v", missing, err)
	}
	if err := v.DictDelete("a"); err != nil {
		t.Fatal(err)
	}
	if ok, _ := v.DictHas("a"); ok {
		t.Fatalf("DictDelete left key")
	}
	slot, err := v.DictRef("c")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := slot.GetOrInsertArray(0); err != nil {
		t.Fatal(err)
	}
	c, _ := v.DictGet("c")
	if c.Type() != TypeArray {
		t.Fatalf("DictRef slot promotion not visible: %s", c)
	}
}

func TestDictionaryRequiresTag(t *testing.T) {
	var none Value
	if err := none.DictSet("a", Value{}); !errors.Is(err, ErrTypeMismatch) {
		t.Fatalf("DictSet on none err = %v", err)
	}
	obj := NewObject()
	if _, err := obj.DictGet("a"); !errors.Is(err, ErrTypeMismatch) {
		t.Fatalf("DictGet on object err = %v", err)
	}
	if _, err := obj.DictHas("a"); !errors.Is(err, ErrTypeMismatch) {
		t.Fatalf("DictHas on object err = %v", err)
	}
}

func TestDictionaryKeyTooLong(t *testing.T) {
	v := NewDictionary()
	key := strings.Repeat("k", MaxKeyLen+1)
	if err := v.DictSet(key, Value{}); !errors.Is(err, ErrKeyTooLong) {
		t.Fatalf("DictSet long key err = %v", err)
	}
	if err := v.DictSet(key[:MaxKeyLen], Value{}); err != nil {
		t.Fatalf("DictSet max key: %v", err)
	}
}
