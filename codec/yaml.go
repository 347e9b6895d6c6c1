package codec

import (
	"bytes"
	"math"
	"sort"
	"strconv"

	"github.com/emirpasic/gods/maps/linkedhashmap"
	"github.com/rayleeriver/jsonmap/format"
	"github.com/rayleeriver/jsonmap/log"
	"github.com/rayleeriver/jsonmap/xerrors"
	"gopkg.in/yaml.v3"
)

type yamlCodec struct{}

func (yamlCodec) Format() format.Format { return format.YAML }

func (yamlCodec) Unmarshal(text string) (*linkedhashmap.Map, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(text), &doc); err != nil {
		return nil, xerrors.WithCodef(err, xerrors.CodeDecodeSyntax, "parse yaml document")
	}
	root := &doc
	if root.Kind == yaml.DocumentNode {
		if len(root.Content) == 0 {
			return nil, xerrors.NewKV(xerrors.CodeDecodeRootKind, "document is empty")
		}
		root = root.Content[0]
	}
	m, err := decodeMapping(root, make(map[*yaml.Node]bool))
	if err != nil {
		return nil, err
	}
	log.Debugf("decoded yaml document: %d members", m.Size())
	return m, nil
}

func (yamlCodec) Marshal(m *linkedhashmap.Map, setters ...Option) (string, error) {
	opts := ParseOptions(setters...)
	root, err := encodeMappingNode(m)
	if err != nil {
		return "", err
	}
	doc := &yaml.Node{Kind: yaml.DocumentNode, Content: []*yaml.Node{root}}
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	indent := 2
	if opts.Pretty {
		indent = 4
	}
	enc.SetIndent(indent)
	if err := enc.Encode(doc); err != nil {
		return "", xerrors.WithCodef(err, xerrors.CodeEncodeType, "encode yaml document")
	}
	if err := enc.Close(); err != nil {
		return "", xerrors.WithCodef(err, xerrors.CodeEncodeType, "close yaml encoder")
	}
	return buf.String(), nil
}

// resolving tracks anchor nodes whose aliases are currently being
// expanded; re-entering one means the anchor's value contains itself.
func decodeMapping(n *yaml.Node, resolving map[*yaml.Node]bool) (*linkedhashmap.Map, error) {
	if n.Kind == yaml.AliasNode && n.Alias != nil {
		if resolving[n.Alias] {
			return nil, xerrors.NewKV(xerrors.CodeDecodeSyntax, "anchor value contains itself", xerrors.KeyKey, n.Value)
		}
		resolving[n.Alias] = true
		defer delete(resolving, n.Alias)
		n = n.Alias
	}
	if n.Kind != yaml.MappingNode {
		return nil, xerrors.NewKV(xerrors.CodeDecodeRootKind, "document root is not a mapping", xerrors.KeyType, n.Tag)
	}
	m := linkedhashmap.New()
	for i := 0; i+1 < len(n.Content); i += 2 {
		keyNode, valNode := n.Content[i], n.Content[i+1]
		if keyNode.Kind == yaml.AliasNode && keyNode.Alias != nil {
			keyNode = keyNode.Alias
		}
		if keyNode.Kind != yaml.ScalarNode || keyNode.Tag != "!!str" {
			return nil, xerrors.NewKV(xerrors.CodeDecodeKeyKind, "mapping key is not a string", xerrors.KeyKey, keyNode.Value)
		}
		v, err := decodeNode(valNode, resolving)
		if err != nil {
			return nil, xerrors.WrapKV(err, xerrors.KeyKey, keyNode.Value)
		}
		m.Put(keyNode.Value, boxNull(v))
	}
	return m, nil
}

func decodeNode(n *yaml.Node, resolving map[*yaml.Node]bool) (any, error) {
	if n.Kind == yaml.AliasNode {
		if n.Alias == nil {
			return nil, nil
		}
		if resolving[n.Alias] {
			return nil, xerrors.NewKV(xerrors.CodeDecodeSyntax, "anchor value contains itself", xerrors.KeyKey, n.Value)
		}
		resolving[n.Alias] = true
		defer delete(resolving, n.Alias)
		n = n.Alias
	}
	switch n.Kind {
	case yaml.MappingNode:
		return decodeMapping(n, resolving)
	case yaml.SequenceNode:
		list := make([]any, 0, len(n.Content))
		for _, item := range n.Content {
			v, err := decodeNode(item, resolving)
			if err != nil {
				return nil, err
			}
			list = append(list, v)
		}
		return list, nil
	case yaml.ScalarNode:
		return decodeScalar(n)
	default:
		return nil, xerrors.NewKV(xerrors.CodeDecodeSyntax, "unhandled yaml node kind", xerrors.KeyType, n.Tag)
	}
}

func decodeScalar(n *yaml.Node) (any, error) {
	switch n.Tag {
	case "!!null":
		return nil, nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return nil, xerrors.WithCodef(err, xerrors.CodeDecodeSyntax, "decode yaml bool")
		}
		return b, nil
	case "!!int":
		var i int64
		if err := n.Decode(&i); err == nil {
			return i, nil
		}
		// out of int64 range, keep it as a float like the json path does
		var f float64
		if err := n.Decode(&f); err != nil {
			return nil, xerrors.WithCodef(err, xerrors.CodeDecodeSyntax, "decode yaml int")
		}
		return f, nil
	case "!!float":
		var f float64
		if err := n.Decode(&f); err != nil {
			return nil, xerrors.WithCodef(err, xerrors.CodeDecodeSyntax, "decode yaml float")
		}
		return f, nil
	case "!!str":
		return n.Value, nil
	default:
		// timestamps, binary, and custom tags keep their raw text
		return n.Value, nil
	}
}

func encodeMappingNode(m *linkedhashmap.Map) (*yaml.Node, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	it := m.Iterator()
	for it.Next() {
		key, ok := it.Key().(string)
		if !ok {
			return nil, xerrors.NewKV(xerrors.CodeEncodeKeyKind, "container key is not a string", xerrors.KeyKey, it.Key())
		}
		child, err := encodeNode(it.Value())
		if err != nil {
			return nil, xerrors.WrapKV(err, xerrors.KeyKey, key)
		}
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key},
			child,
		)
	}
	return node, nil
}

func encodeNode(v any) (*yaml.Node, error) {
	if w, ok := v.(containerProvider); ok {
		// a typed nil wrapper provides no container and falls through
		// to the unsupported-type error
		if c := w.Container(); c != nil {
			v = c
		}
	}
	switch val := v.(type) {
	case nil:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}, nil
	case nullValue:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}, nil
	case bool:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: strconv.FormatBool(val)}, nil
	case string:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: val}, nil
	case int:
		return intNode(int64(val)), nil
	case int8:
		return intNode(int64(val)), nil
	case int16:
		return intNode(int64(val)), nil
	case int32:
		return intNode(int64(val)), nil
	case int64:
		return intNode(val), nil
	case uint:
		return uintNode(uint64(val)), nil
	case uint8:
		return uintNode(uint64(val)), nil
	case uint16:
		return uintNode(uint64(val)), nil
	case uint32:
		return uintNode(uint64(val)), nil
	case uint64:
		return uintNode(val), nil
	case uintptr:
		return uintNode(uint64(val)), nil
	case float32:
		return floatNode(float64(val)), nil
	case float64:
		return floatNode(val), nil
	case *linkedhashmap.Map:
		if val == nil {
			return nil, xerrors.NewKV(xerrors.CodeEncodeType, "value type has no yaml representation", xerrors.KeyType, typeName(v))
		}
		return encodeMappingNode(val)
	case []any:
		node := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, item := range val {
			child, err := encodeNode(item)
			if err != nil {
				return nil, err
			}
			node.Content = append(node.Content, child)
		}
		return node, nil
	case map[string]any:
		// unordered native maps encode with sorted keys for stable output
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for _, k := range keys {
			child, err := encodeNode(val[k])
			if err != nil {
				return nil, xerrors.WrapKV(err, xerrors.KeyKey, k)
			}
			node.Content = append(node.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k},
				child,
			)
		}
		return node, nil
	default:
		return nil, xerrors.NewKV(xerrors.CodeEncodeType, "value type has no yaml representation", xerrors.KeyType, typeName(v))
	}
}

func intNode(n int64) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.FormatInt(n, 10)}
}

func uintNode(n uint64) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.FormatUint(n, 10)}
}

func floatNode(f float64) *yaml.Node {
	var s string
	switch {
	case math.IsNaN(f):
		s = ".nan"
	case math.IsInf(f, 1):
		s = ".inf"
	case math.IsInf(f, -1):
		s = "-.inf"
	default:
		s = formatFloat(f)
	}
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!float", Value: s}
}
