package codec

import (
	"bytes"
	"encoding/json"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/emirpasic/gods/maps/linkedhashmap"
	"github.com/rayleeriver/jsonmap/format"
	"github.com/rayleeriver/jsonmap/log"
	"github.com/rayleeriver/jsonmap/xerrors"
	"github.com/valyala/fastjson"
)

type jsonCodec struct{}

func (jsonCodec) Format() format.Format { return format.JSON }

func (jsonCodec) Unmarshal(text string) (*linkedhashmap.Map, error) {
	v, err := fastjson.Parse(text)
	if err != nil {
		return nil, xerrors.WithCodef(err, xerrors.CodeDecodeSyntax, "parse json document")
	}
	if v.Type() != fastjson.TypeObject {
		return nil, xerrors.NewKV(xerrors.CodeDecodeRootKind, "document root is not an object", xerrors.KeyType, v.Type())
	}
	m, err := decodeObject(v)
	if err != nil {
		return nil, err
	}
	log.Debugf("decoded json document: %d members", m.Size())
	return m, nil
}

func (jsonCodec) Marshal(m *linkedhashmap.Map, setters ...Option) (string, error) {
	opts := ParseOptions(setters...)
	var arena fastjson.Arena
	root, err := encodeObject(&arena, m)
	if err != nil {
		return "", err
	}
	out := root.MarshalTo(nil)
	if opts.Pretty {
		// fastjson emits compact output only
		var pretty bytes.Buffer
		if err := json.Indent(&pretty, out, "", "    "); err != nil {
			return "", xerrors.Wrapf(err, "indent json document")
		}
		return pretty.String(), nil
	}
	return string(out), nil
}

func decodeObject(v *fastjson.Value) (*linkedhashmap.Map, error) {
	obj, err := v.Object()
	if err != nil {
		return nil, xerrors.WithCodef(err, xerrors.CodeDecodeSyntax, "read json object")
	}
	m := linkedhashmap.New()
	var verr error
	obj.Visit(func(key []byte, item *fastjson.Value) {
		if verr != nil {
			return
		}
		dv, err := decodeValue(item)
		if err != nil {
			verr = err
			return
		}
		// a duplicated key keeps its first position, last value wins
		m.Put(string(key), boxNull(dv))
	})
	if verr != nil {
		return nil, verr
	}
	return m, nil
}

func decodeValue(v *fastjson.Value) (any, error) {
	switch v.Type() {
	case fastjson.TypeObject:
		return decodeObject(v)
	case fastjson.TypeArray:
		items, err := v.Array()
		if err != nil {
			return nil, xerrors.WithCodef(err, xerrors.CodeDecodeSyntax, "read json array")
		}
		list := make([]any, 0, len(items))
		for _, item := range items {
			dv, err := decodeValue(item)
			if err != nil {
				return nil, err
			}
			list = append(list, dv)
		}
		return list, nil
	case fastjson.TypeString:
		b, err := v.StringBytes()
		if err != nil {
			return nil, xerrors.WithCodef(err, xerrors.CodeDecodeSyntax, "read json string")
		}
		return string(b), nil
	case fastjson.TypeNumber:
		// integral literals in int64 range decode as int64, all
		// others fall back to float64
		if n, err := v.Int64(); err == nil {
			return n, nil
		}
		f, err := v.Float64()
		if err != nil {
			return nil, xerrors.WithCodef(err, xerrors.CodeDecodeSyntax, "read json number")
		}
		return f, nil
	case fastjson.TypeTrue:
		return true, nil
	case fastjson.TypeFalse:
		return false, nil
	case fastjson.TypeNull:
		return nil, nil
	default:
		return nil, xerrors.NewKV(xerrors.CodeDecodeSyntax, "unhandled json node type", xerrors.KeyType, v.Type())
	}
}

func encodeObject(arena *fastjson.Arena, m *linkedhashmap.Map) (*fastjson.Value, error) {
	obj := arena.NewObject()
	it := m.Iterator()
	for it.Next() {
		key, ok := it.Key().(string)
		if !ok {
			return nil, xerrors.NewKV(xerrors.CodeEncodeKeyKind, "container key is not a string", xerrors.KeyKey, it.Key())
		}
		child, err := encodeValue(arena, it.Value())
		if err != nil {
			return nil, xerrors.WrapKV(err, xerrors.KeyKey, key)
		}
		obj.Set(key, child)
	}
	return obj, nil
}

func encodeValue(arena *fastjson.Arena, v any) (*fastjson.Value, error) {
	if w, ok := v.(containerProvider); ok {
		// a typed nil wrapper provides no container and falls through
		// to the unsupported-type error
		if c := w.Container(); c != nil {
			v = c
		}
	}
	switch val := v.(type) {
	case nil:
		return arena.NewNull(), nil
	case nullValue:
		return arena.NewNull(), nil
	case bool:
		if val {
			return arena.NewTrue(), nil
		}
		return arena.NewFalse(), nil
	case string:
		return arena.NewString(val), nil
	case int:
		return arena.NewNumberString(strconv.FormatInt(int64(val), 10)), nil
	case int8:
		return arena.NewNumberString(strconv.FormatInt(int64(val), 10)), nil
	case int16:
		return arena.NewNumberString(strconv.FormatInt(int64(val), 10)), nil
	case int32:
		return arena.NewNumberString(strconv.FormatInt(int64(val), 10)), nil
	case int64:
		return arena.NewNumberString(strconv.FormatInt(val, 10)), nil
	case uint:
		return arena.NewNumberString(strconv.FormatUint(uint64(val), 10)), nil
	case uint8:
		return arena.NewNumberString(strconv.FormatUint(uint64(val), 10)), nil
	case uint16:
		return arena.NewNumberString(strconv.FormatUint(uint64(val), 10)), nil
	case uint32:
		return arena.NewNumberString(strconv.FormatUint(uint64(val), 10)), nil
	case uint64:
		return arena.NewNumberString(strconv.FormatUint(val, 10)), nil
	case uintptr:
		return arena.NewNumberString(strconv.FormatUint(uint64(val), 10)), nil
	case float32:
		return encodeFloat(arena, float64(val))
	case float64:
		return encodeFloat(arena, val)
	case *linkedhashmap.Map:
		if val == nil {
			return nil, xerrors.NewKV(xerrors.CodeEncodeType, "value type has no json representation", xerrors.KeyType, typeName(v))
		}
		return encodeObject(arena, val)
	case []any:
		arr := arena.NewArray()
		for i, item := range val {
			child, err := encodeValue(arena, item)
			if err != nil {
				return nil, err
			}
			arr.SetArrayItem(i, child)
		}
		return arr, nil
	case map[string]any:
		// unordered native maps encode with sorted keys for stable output
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		obj := arena.NewObject()
		for _, k := range keys {
			child, err := encodeValue(arena, val[k])
			if err != nil {
				return nil, xerrors.WrapKV(err, xerrors.KeyKey, k)
			}
			obj.Set(k, child)
		}
		return obj, nil
	default:
		return nil, xerrors.NewKV(xerrors.CodeEncodeType, "value type has no json representation", xerrors.KeyType, typeName(v))
	}
}

func encodeFloat(arena *fastjson.Arena, f float64) (*fastjson.Value, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, xerrors.NewKV(xerrors.CodeEncodeNumber, "number has no json representation", xerrors.KeyValue, f)
	}
	return arena.NewNumberString(formatFloat(f)), nil
}

// formatFloat renders f so that it decodes back as a float: whole values
// keep a trailing ".0" which the integer fast path rejects.
func formatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}
