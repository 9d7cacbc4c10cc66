package obf

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func mustJSON(t *testing.T, s string) Value {
	t.Helper()
	v, err := FromJSON([]byte(s))
	require.NoError(t, err)
	return v
}

func TestMergePatchDictionary(t *testing.T) {
	target := mustJSON(t, `{"a":"b","c":{"d":"e","f":"g"},"keep":[1,2]}`)
	patch := mustJSON(t, `{"a":"z","c":{"f":null},"new":{"x":1}}`)

	got := MergePatch(target, patch)
	want := mustJSON(t, `{"a":"z","c":{"d":"e"},"keep":[1,2],"new":{"x":1}}`)
	require.Truef(t, Equal(got, want), "got %s, want %s", got, want)

	unchanged := mustJSON(t, `{"a":"b","c":{"d":"e","f":"g"},"keep":[1,2]}`)
	require.True(t, Equal(target, unchanged), "target was modified")
}

func TestMergePatchReplaces(t *testing.T) {
	target := mustJSON(t, `{"a":1}`)
	patch := NewArray(NewString("x"))
	require.True(t, Equal(MergePatch(target, patch), patch))

	dict := mustJSON(t, `{"a":1}`)
	require.True(t, Equal(MergePatch(NewString("old"), dict), dict))
}

func TestMergePatchObject(t *testing.T) {
	target := NewObject()
	require.NoError(t, target.ObjectSet(1, NewString("one")))
	require.NoError(t, target.ObjectSet(2, NewString("two")))

	patch := NewObject()
	require.NoError(t, patch.ObjectSet(2, Value{}))
	require.NoError(t, patch.ObjectSet(3, NewString("three")))

	got := MergePatch(target, patch)
	keys, err := got.ObjectKeys()
	require.NoError(t, err)
	require.Equal(t, []uint32{1, 3}, keys)
}

func TestMergeBinary(t *testing.T) {
	target := Encode(mustJSON(t, `{"a":1,"b":2}`))
	patch := Encode(mustJSON(t, `{"b":null}`))
	out, err := MergeBinary(target, patch)
	require.NoError(t, err)

	v, err := DecodeAll(out)
	require.NoError(t, err)
	require.True(t, Equal(v, mustJSON(t, `{"a":1}`)))

	_, err = MergeBinary([]byte{0xFF}, patch)
	require.ErrorIs(t, err, ErrMalformedData)
}
