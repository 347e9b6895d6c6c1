// Package jsonmap implements a string-keyed, insertion-ordered container
// for heterogeneous values, as produced by decoding a JSON document, with
// loosely typed accessors on top.
//
// Stored values belong to the canonical set: string, int64, float64, bool,
// nil, *linkedhashmap.Map for nested objects, and []any for arrays. The
// typed accessors in coerce.go translate stored values into the caller's
// requested type and report failure with a comma-ok false, never an error.
// Structural failures (malformed documents, unencodable values, invalid
// wrap targets) are coded errors, see the xerrors package.
//
// Map is not safe for concurrent use.
package jsonmap

import (
	"fmt"
	"sort"

	"github.com/emirpasic/gods/maps/linkedhashmap"
	"github.com/rayleeriver/jsonmap/codec"
	"github.com/rayleeriver/jsonmap/format"
	"github.com/rayleeriver/jsonmap/xerrors"
)

// Map is an insertion-ordered container of string-keyed heterogeneous
// values.
type Map struct {
	data *linkedhashmap.Map
}

// New creates an empty Map.
func New() *Map {
	return &Map{data: linkedhashmap.New()}
}

// FromJSON decodes JSON text into a Map. The document root must be a JSON
// object.
func FromJSON(text string) (*Map, error) {
	return FromText(text, format.JSON)
}

// FromText decodes document text of the given format into a Map.
func FromText(text string, f format.Format) (*Map, error) {
	c, err := codec.For(f)
	if err != nil {
		return nil, err
	}
	data, err := c.Unmarshal(text)
	if err != nil {
		return nil, err
	}
	return &Map{data: data}, nil
}

// Wrap adapts an existing container without copying it. Accepted container
// types:
//   - *Map: returned unchanged
//   - *linkedhashmap.Map: storage is shared with the returned Map; raw nil
//     values are rewritten to codec.Null
//   - map[string]any: copied into fresh ordered storage with sorted keys,
//     since native map order is undefined
//
// Wrapping nil or any other type is an error.
func Wrap(container any) (*Map, error) {
	switch c := container.(type) {
	case nil:
		return nil, xerrors.NewKV(xerrors.CodeNilContainer, "cannot wrap nil container")
	case *Map:
		if c == nil {
			return nil, xerrors.NewKV(xerrors.CodeNilContainer, "cannot wrap nil container")
		}
		return c, nil
	case *linkedhashmap.Map:
		if c == nil {
			return nil, xerrors.NewKV(xerrors.CodeNilContainer, "cannot wrap nil container")
		}
		// the backing map reports raw nil values as absent from lookups,
		// store the boxed marker instead
		it := c.Iterator()
		for it.Next() {
			if it.Value() == nil {
				c.Put(it.Key(), codec.Null)
			}
		}
		return &Map{data: c}, nil
	case map[string]any:
		if c == nil {
			return nil, xerrors.NewKV(xerrors.CodeNilContainer, "cannot wrap nil container")
		}
		m := New()
		keys := make([]string, 0, len(c))
		for k := range c {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			m.data.Put(k, boxNull(c[k]))
		}
		return m, nil
	default:
		return nil, xerrors.NewKV(xerrors.CodeWrongContainer, "unsupported container type", xerrors.KeyType, fmt.Sprintf("%T", container))
	}
}

// Get returns the raw value stored under key. A stored null comes back as
// nil with a true second return.
func (m *Map) Get(key string) (any, bool) {
	v, found := m.data.Get(key)
	return unboxNull(v), found
}

// Put stores value under key and returns the value it replaced, if any.
// Re-putting an existing key keeps the key's original position; removing
// and re-adding moves it to the end.
func (m *Map) Put(key string, value any) (prev any, replaced bool) {
	prev, replaced = m.data.Get(key)
	m.data.Put(key, boxNull(value))
	return unboxNull(prev), replaced
}

// PutAll copies all entries from src in its insertion order. A nil src is a
// no-op.
func (m *Map) PutAll(src *Map) {
	if src == nil {
		return
	}
	it := src.data.Iterator()
	for it.Next() {
		m.data.Put(it.Key(), boxNull(it.Value()))
	}
}

// PutValue stores value under key and returns the Map itself for chaining:
//
//	m.PutValue("a", 1).PutValue("b", 2)
func (m *Map) PutValue(key string, value any) *Map {
	m.data.Put(key, boxNull(value))
	return m
}

// Remove deletes key and returns the value it held, if any.
func (m *Map) Remove(key string) (any, bool) {
	v, found := m.data.Get(key)
	if !found {
		return nil, false
	}
	m.data.Remove(key)
	return unboxNull(v), true
}

// ContainsKey reports whether key is present.
func (m *Map) ContainsKey(key string) bool {
	_, found := m.data.Get(key)
	return found
}

// ContainsValue reports whether any entry holds a value structurally equal
// to value.
func (m *Map) ContainsValue(value any) bool {
	it := m.data.Iterator()
	for it.Next() {
		if equalValue(it.Value(), value) {
			return true
		}
	}
	return false
}

// Size returns the number of entries.
func (m *Map) Size() int {
	return m.data.Size()
}

// IsEmpty reports whether the Map holds no entries.
func (m *Map) IsEmpty() bool {
	return m.data.Empty()
}

// Clear removes all entries.
func (m *Map) Clear() {
	m.data.Clear()
}

// Keys returns all keys in insertion order.
func (m *Map) Keys() []string {
	keys := make([]string, 0, m.data.Size())
	it := m.data.Iterator()
	for it.Next() {
		if k, ok := it.Key().(string); ok {
			keys = append(keys, k)
		}
	}
	return keys
}

// Values returns all values in insertion order.
func (m *Map) Values() []any {
	values := m.data.Values()
	for i, v := range values {
		values[i] = unboxNull(v)
	}
	return values
}

// Each calls f for every entry in insertion order.
func (m *Map) Each(f func(key string, value any)) {
	it := m.data.Iterator()
	for it.Next() {
		if k, ok := it.Key().(string); ok {
			f(k, unboxNull(it.Value()))
		}
	}
}

// Equal reports whether both maps hold the same key set with structurally
// equal values. Entry order does not matter, at any nesting level. Numbers
// compare strictly by type: int64(3) does not equal float64(3).
func (m *Map) Equal(other *Map) bool {
	if other == nil {
		return false
	}
	if m == other {
		return true
	}
	return equalContainer(m.data, other.data)
}

// ToJSON encodes the Map to JSON text in insertion order.
func (m *Map) ToJSON(setters ...codec.Option) (string, error) {
	return m.ToText(format.JSON, setters...)
}

// ToText encodes the Map in the given format.
func (m *Map) ToText(f format.Format, setters ...codec.Option) (string, error) {
	c, err := codec.For(f)
	if err != nil {
		return "", err
	}
	return c.Marshal(m.data, setters...)
}

// String implements fmt.Stringer with a best-effort JSON rendering.
func (m *Map) String() string {
	s, err := m.ToJSON()
	if err != nil {
		return fmt.Sprintf("jsonmap.Map[%d entries]", m.Size())
	}
	return s
}

// Container exposes the backing ordered map. The storage is shared, not
// copied, so mutations through either side are visible to the other. Null
// members live in the backing map as codec.Null, never as raw nil, which
// the map would report as absent.
func (m *Map) Container() *linkedhashmap.Map {
	if m == nil {
		return nil
	}
	return m.data
}

func boxNull(v any) any {
	if v == nil {
		return codec.Null
	}
	return v
}

func unboxNull(v any) any {
	if codec.IsNull(v) {
		return nil
	}
	return v
}
