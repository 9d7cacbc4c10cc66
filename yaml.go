package obf

import (
	"encoding/base64"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	maxYAMLDepth = 256

	// Nodes that may be produced by expanding aliases in one document.
	maxYAMLAliasNodes = 1 << 18
)

// FromYAML converts a single YAML document into a Value. Mappings become
// Dictionaries, sequences Arrays and !!binary scalars ByteArrays; the other
// scalars follow the same rules as FromJSON.
func FromYAML(data []byte) (Value, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Value{}, err
	}
	if doc.Kind == 0 {
		return Value{}, nil
	}
	var w yamlWalker
	return w.value(&doc, 0)
}

type yamlWalker struct {
	aliasDepth int
	aliasNodes int
}

func (w *yamlWalker) value(n *yaml.Node, depth int) (Value, error) {
	if depth > maxYAMLDepth {
		return Value{}, fmt.Errorf("yaml nesting deeper than %d", maxYAMLDepth)
	}
	if w.aliasDepth > 0 {
		w.aliasNodes++
		if w.aliasNodes > maxYAMLAliasNodes {
			return Value{}, fmt.Errorf("line %d: yaml aliases expand to more than %d nodes", n.Line, maxYAMLAliasNodes)
		}
	}
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return Value{}, nil
		}
		return w.value(n.Content[0], depth+1)
	case yaml.AliasNode:
		w.aliasDepth++
		defer func() { w.aliasDepth-- }()
		return w.value(n.Alias, depth+1)
	case yaml.SequenceNode:
		out := Value{typ: TypeArray, arr: make([]Value, 0, len(n.Content))}
		for _, c := range n.Content {
			ev, err := w.value(c, depth+1)
			if err != nil {
				return Value{}, err
			}
			out.arr = append(out.arr, ev)
		}
		return out, nil
	case yaml.MappingNode:
		out := NewDictionary()
		for i := 0; i+1 < len(n.Content); i += 2 {
			k, e := n.Content[i], n.Content[i+1]
			if k.Kind != yaml.ScalarNode {
				return Value{}, fmt.Errorf("line %d: yaml mapping key must be a scalar", k.Line)
			}
			if err := checkKey(k.Value); err != nil {
				return Value{}, err
			}
			ev, err := w.value(e, depth+1)
			if err != nil {
				return Value{}, err
			}
			out.dict[k.Value] = &ev
		}
		return out, nil
	case yaml.ScalarNode:
		return scalarFromYAML(n)
	default:
		return Value{}, fmt.Errorf("line %d: unsupported yaml node kind %d", n.Line, n.Kind)
	}
}

func scalarFromYAML(n *yaml.Node) (Value, error) {
	switch n.ShortTag() {
	case "!!null":
		return Value{}, nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return Value{}, err
		}
		return boolValue(b), nil
	case "!!int":
		var u uint64
		if err := n.Decode(&u); err == nil {
			return Uint(u), nil
		}
		var i int64
		if err := n.Decode(&i); err != nil {
			return Value{}, err
		}
		return intValue(i), nil
	case "!!float":
		var f float64
		if err := n.Decode(&f); err != nil {
			return Value{}, err
		}
		return NewDouble(f), nil
	case "!!binary":
		b, err := base64.StdEncoding.DecodeString(strings.Join(strings.Fields(n.Value), ""))
		if err != nil {
			return Value{}, fmt.Errorf("line %d: %w", n.Line, err)
		}
		return Value{typ: TypeByteArray, bytes: b}, nil
	default:
		return NewString(n.Value), nil
	}
}
