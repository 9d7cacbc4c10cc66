package obf

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFromJSONTypes(t *testing.T) {
	v, err := FromJSON([]byte(`{
		"small": 10,
		"wide": 70000,
		"neg": -3,
		"frac": 1.25,
		"flag": true,
		"off": false,
		"nil": null,
		"name": "ouzel",
		"blob": "b64:AQID",
		"list": [1, "two", [3]],
		"nested": {"k": "v"}
	}`))
	require.NoError(t, err)
	require.Equal(t, TypeDictionary, v.Type())

	check := func(key string, want Value) {
		t.Helper()
		got, err := v.DictGet(key)
		require.NoError(t, err)
		require.Truef(t, Equal(got, want), "%s = %s, want %s", key, got, want)
	}
	check("small", Uint(uint8(10)))
	check("wide", Uint(uint32(70000)))
	check("neg", NewInt64(-3))
	check("frac", NewDouble(1.25))
	check("flag", Uint(uint8(1)))
	check("off", Uint(uint8(0)))
	check("nil", Value{})
	check("name", NewString("ouzel"))
	check("blob", NewBytes([]byte{1, 2, 3}))
	check("list", NewArray(Uint(uint8(1)), NewString("two"), NewArray(Uint(uint8(3)))))

	nested := NewDictionary()
	require.NoError(t, nested.DictSet("k", NewString("v")))
	check("nested", nested)
}

func TestFromJSONScalars(t *testing.T) {
	v, err := FromJSON([]byte(" 42 "))
	require.NoError(t, err)
	require.True(t, Equal(v, Uint(uint8(42))))

	v, err = FromJSON([]byte(`"b64:not base64!"`))
	require.NoError(t, err)
	require.Equal(t, TypeString, v.Type())

	_, err = FromJSON([]byte("  "))
	require.Error(t, err)
	_, err = FromJSON([]byte("1 2"))
	require.Error(t, err)
	_, err = FromJSON([]byte(`{"a":`))
	require.Error(t, err)
}

func TestFromJSONStdMatchesSIMD(t *testing.T) {
	doc := []byte(`{"a":[1,-2,3.5,"x",null,true],"b":{"c":18446744073709551615}}`)
	fast, err := FromJSON(doc)
	require.NoError(t, err)
	slow, err := fromJSONStd(doc)
	require.NoError(t, err)
	require.Truef(t, Equal(fast, slow), "simd %s != std %s", fast, slow)
}

func TestToJSON(t *testing.T) {
	obj := NewObject()
	require.NoError(t, obj.ObjectSet(2, NewFloat(0.5)))
	require.NoError(t, obj.ObjectSet(1, NewInt64(-1)))

	root := NewDictionary()
	require.NoError(t, root.DictSet("obj", obj))
	require.NoError(t, root.DictSet("bin", NewBytes([]byte{0xFF})))
	require.NoError(t, root.DictSet("text", NewString("a\"b\n")))
	require.NoError(t, root.DictSet("arr", NewArray(Value{}, Uint(uint16(300)))))

	require.Equal(t,
		`{"arr":[null,300],"bin":"b64:/w==","obj":{"1":-1,"2":0.5},"text":"a\"b\n"}`,
		ToJSON(root))
}

func TestMarshalUnmarshal(t *testing.T) {
	type asset struct {
		Name  string   `json:"name"`
		Size  uint32   `json:"size"`
		Scale float64  `json:"scale"`
		Tags  []string `json:"tags"`
	}
	in := asset{Name: "tree", Size: 70000, Scale: 0.5, Tags: []string{"a", "b"}}
	v, err := Marshal(in)
	require.NoError(t, err)

	size, err := v.DictGet("size")
	require.NoError(t, err)
	require.Equal(t, TypeInt32, size.Type())

	dec, err := DecodeAll(Encode(v))
	require.NoError(t, err)

	var out asset
	require.NoError(t, Unmarshal(dec, &out))
	require.Equal(t, in, out)
	require.Error(t, Unmarshal(dec, nil))
}
