package obf

import (
	"encoding/json"
	"reflect"
	"strconv"
	"testing"

	"github.com/fxamacker/cbor/v2"
)

var (
	benchTree   Value
	benchOBF    []byte
	benchCBOR   []byte
	benchJSON   []byte
	benchAny    any
	benchCBORDe cbor.DecMode
)

var sinkBytes []byte
var sinkAny any
var sinkValue Value

func init() {
	benchTree = buildBenchTree()
	benchOBF = Encode(benchTree)
	benchAny = valueToAny(benchTree)
	encoded, err := cbor.Marshal(benchAny)
	if err != nil {
		panic(err)
	}
	benchCBOR = encoded
	benchJSON = []byte(ToJSON(benchTree))
	dm, err := cbor.DecOptions{
		DefaultMapType: reflect.TypeOf(map[string]any{}),
	}.DecMode()
	if err != nil {
		panic(err)
	}
	benchCBORDe = dm
}

// buildBenchTree mimics a scene resource: a list of nodes with transforms,
// names and small binary blobs.
func buildBenchTree() Value {
	root := NewDictionary()
	nodes := NewArray()
	for i := 0; i < 512; i++ {
		node := NewDictionary()
		_ = node.DictSet("name", NewString("node-"+strconv.Itoa(i)))
		_ = node.DictSet("id", Uint(uint64(i)))
		transform := NewArray()
		for j := 0; j < 16; j++ {
			_ = transform.Append(NewFloat(float32(i*j) * 0.5))
		}
		_ = node.DictSet("transform", transform)
		_ = node.DictSet("mesh", NewBytes(make([]byte, 64)))
		_ = nodes.Append(node)
	}
	_ = root.DictSet("nodes", nodes)
	_ = root.DictSet("version", Uint(uint8(3)))
	return root
}

func BenchmarkOBFEncode(b *testing.B) {
	b.ReportAllocs()
	b.SetBytes(int64(len(benchOBF)))
	for i := 0; i < b.N; i++ {
		sinkBytes = Encode(benchTree)
	}
}

func BenchmarkOBFDecode(b *testing.B) {
	b.ReportAllocs()
	b.SetBytes(int64(len(benchOBF)))
	for i := 0; i < b.N; i++ {
		v, err := DecodeAll(benchOBF)
		if err != nil {
			b.Fatal(err)
		}
		sinkValue = v
	}
}

func BenchmarkOBFFingerprint(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		sinkAny = Fingerprint(benchTree)
	}
}

func BenchmarkCBOREncode(b *testing.B) {
	b.ReportAllocs()
	b.SetBytes(int64(len(benchCBOR)))
	for i := 0; i < b.N; i++ {
		out, err := cbor.Marshal(benchAny)
		if err != nil {
			b.Fatal(err)
		}
		sinkBytes = out
	}
}

func BenchmarkCBORDecode(b *testing.B) {
	b.ReportAllocs()
	b.SetBytes(int64(len(benchCBOR)))
	for i := 0; i < b.N; i++ {
		var out any
		if err := benchCBORDe.Unmarshal(benchCBOR, &out); err != nil {
			b.Fatal(err)
		}
		sinkAny = out
	}
}

func BenchmarkJSONDecode(b *testing.B) {
	b.ReportAllocs()
	b.SetBytes(int64(len(benchJSON)))
	for i := 0; i < b.N; i++ {
		var out any
		if err := json.Unmarshal(benchJSON, &out); err != nil {
			b.Fatal(err)
		}
		sinkAny = out
	}
}

func BenchmarkFromJSON(b *testing.B) {
	b.ReportAllocs()
	b.SetBytes(int64(len(benchJSON)))
	for i := 0; i < b.N; i++ {
		v, err := FromJSON(benchJSON)
		if err != nil {
			b.Fatal(err)
		}
		sinkValue = v
	}
}

func TestBenchTreeSizes(t *testing.T) {
	if len(benchOBF) == 0 || len(benchCBOR) == 0 {
		t.Fatalf("bench fixtures not initialised")
	}
	if len(benchOBF) != EncodedLen(benchTree) {
		t.Fatalf("EncodedLen = %d, encoding = %d", EncodedLen(benchTree), len(benchOBF))
	}
}
