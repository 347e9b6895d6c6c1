package jsonmap

import (
	"testing"

	"github.com/emirpasic/gods/maps/linkedhashmap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rayleeriver/jsonmap/codec"
	"github.com/rayleeriver/jsonmap/format"
	"github.com/rayleeriver/jsonmap/xerrors"
)

func TestFromJSON(t *testing.T) {
	t.Run("member order and canonical types", func(t *testing.T) {
		m, err := FromJSON(`{"name":"starter pack","count":3,"price":9.5,"active":true,"note":null}`)
		require.NoError(t, err)

		assert.Equal(t, []string{"name", "count", "price", "active", "note"}, m.Keys())

		v, found := m.Get("count")
		require.True(t, found)
		assert.Equal(t, int64(3), v)

		v, found = m.Get("price")
		require.True(t, found)
		assert.Equal(t, 9.5, v)

		v, found = m.Get("note")
		require.True(t, found)
		assert.Nil(t, v)
	})

	t.Run("nested members become containers", func(t *testing.T) {
		m, err := FromJSON(`{"outer":{"inner":7},"list":[1,"two"]}`)
		require.NoError(t, err)

		v, found := m.Get("outer")
		require.True(t, found)
		inner, ok := v.(*linkedhashmap.Map)
		require.True(t, ok)
		iv, found := inner.Get("inner")
		require.True(t, found)
		assert.Equal(t, int64(7), iv)

		v, found = m.Get("list")
		require.True(t, found)
		assert.Equal(t, []any{int64(1), "two"}, v)
	})

	t.Run("malformed text", func(t *testing.T) {
		_, err := FromJSON(`{"a":`)
		require.Error(t, err)
		assert.Equal(t, xerrors.CodeDecodeSyntax, xerrors.Code(err))
	})

	t.Run("non object root", func(t *testing.T) {
		_, err := FromJSON(`[1,2,3]`)
		require.Error(t, err)
		assert.Equal(t, xerrors.CodeDecodeRootKind, xerrors.Code(err))
	})
}

func TestFromText(t *testing.T) {
	m, err := FromText("name: starter pack\ncount: 3\n", format.YAML)
	require.NoError(t, err)
	assert.Equal(t, []string{"name", "count"}, m.Keys())

	_, err = FromText("{}", format.Format("toml"))
	require.Error(t, err)
	assert.Equal(t, xerrors.CodeUnknownFormat, xerrors.Code(err))
}

// Decode failures arrive as coded errors, while failed lookups on a
// healthy container only show up as a false second return.
func TestFailureChannels(t *testing.T) {
	_, err := FromJSON(`not json`)
	require.Error(t, err)
	assert.NotEqual(t, xerrors.CodeUnknown, xerrors.Code(err))

	m, err := FromJSON(`{"a":1}`)
	require.NoError(t, err)
	v, ok := m.GetInt64("zzz")
	assert.False(t, ok)
	assert.Equal(t, int64(0), v)
}

func TestWrap(t *testing.T) {
	t.Run("wrapping a wrapper returns it unchanged", func(t *testing.T) {
		m := New().PutValue("a", int64(1))
		w, err := Wrap(m)
		require.NoError(t, err)
		assert.Same(t, m, w)
	})

	t.Run("raw container is shared not copied", func(t *testing.T) {
		raw := linkedhashmap.New()
		raw.Put("a", int64(1))
		w, err := Wrap(raw)
		require.NoError(t, err)

		w.Put("b", int64(2))
		_, found := raw.Get("b")
		assert.True(t, found)

		raw.Put("c", int64(3))
		assert.True(t, w.ContainsKey("c"))
	})

	t.Run("raw nil values stay reachable", func(t *testing.T) {
		raw := linkedhashmap.New()
		raw.Put("n", nil)
		raw.Put("x", int64(1))
		w, err := Wrap(raw)
		require.NoError(t, err)

		assert.True(t, w.ContainsKey("n"))
		v, found := w.Get("n")
		assert.True(t, found)
		assert.Nil(t, v)
		assert.Equal(t, []string{"n", "x"}, w.Keys())
	})

	t.Run("plain map copies with sorted keys", func(t *testing.T) {
		w, err := Wrap(map[string]any{"b": int64(2), "a": int64(1), "c": int64(3), "n": nil})
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b", "c", "n"}, w.Keys())
		assert.True(t, w.ContainsKey("n"))
	})

	t.Run("nil input", func(t *testing.T) {
		_, err := Wrap(nil)
		require.Error(t, err)
		assert.Equal(t, xerrors.CodeNilContainer, xerrors.Code(err))
	})

	t.Run("typed nil wrapper", func(t *testing.T) {
		var m *Map
		_, err := Wrap(m)
		require.Error(t, err)
		assert.Equal(t, xerrors.CodeNilContainer, xerrors.Code(err))
	})

	t.Run("typed nil raw container", func(t *testing.T) {
		var raw *linkedhashmap.Map
		_, err := Wrap(raw)
		require.Error(t, err)
		assert.Equal(t, xerrors.CodeNilContainer, xerrors.Code(err))
	})

	t.Run("unsupported input", func(t *testing.T) {
		_, err := Wrap(42)
		require.Error(t, err)
		assert.Equal(t, xerrors.CodeWrongContainer, xerrors.Code(err))
	})
}

func TestPut(t *testing.T) {
	m := New()

	prev, replaced := m.Put("a", int64(1))
	assert.False(t, replaced)
	assert.Nil(t, prev)

	prev, replaced = m.Put("a", int64(2))
	assert.True(t, replaced)
	assert.Equal(t, int64(1), prev)

	// Replacing keeps the original position.
	m.Put("b", int64(3))
	m.Put("a", int64(4))
	assert.Equal(t, []string{"a", "b"}, m.Keys())

	// Removing and re-adding moves the key to the end.
	m.Remove("a")
	m.Put("a", int64(5))
	assert.Equal(t, []string{"b", "a"}, m.Keys())
}

func TestPutAll(t *testing.T) {
	src := New().PutValue("x", int64(1)).PutValue("y", int64(2))
	dst := New().PutValue("a", int64(0)).PutValue("x", int64(9))

	dst.PutAll(src)
	assert.Equal(t, []string{"a", "x", "y"}, dst.Keys())
	v, _ := dst.Get("x")
	assert.Equal(t, int64(1), v)

	dst.PutAll(nil)
	assert.Equal(t, 3, dst.Size())
}

func TestPutValue(t *testing.T) {
	m := New().PutValue("a", int64(1)).PutValue("b", "two")
	assert.Equal(t, []string{"a", "b"}, m.Keys())
	assert.Equal(t, 2, m.Size())
}

func TestRemove(t *testing.T) {
	m := New().PutValue("a", int64(1))

	prev, removed := m.Remove("a")
	assert.True(t, removed)
	assert.Equal(t, int64(1), prev)
	assert.False(t, m.ContainsKey("a"))

	prev, removed = m.Remove("a")
	assert.False(t, removed)
	assert.Nil(t, prev)
}

func TestContains(t *testing.T) {
	m := New().
		PutValue("a", int64(1)).
		PutValue("b", nil).
		PutValue("c", []any{int64(1), "two"})

	assert.True(t, m.ContainsKey("a"))
	assert.True(t, m.ContainsKey("b"))
	assert.False(t, m.ContainsKey("z"))

	assert.True(t, m.ContainsValue(int64(1)))
	assert.True(t, m.ContainsValue(nil))
	assert.True(t, m.ContainsValue([]any{int64(1), "two"}))
	assert.False(t, m.ContainsValue(float64(1)))
	assert.False(t, m.ContainsValue("missing"))
}

// Null members stay reachable through every container operation.
func TestNullMembers(t *testing.T) {
	m, err := FromJSON(`{"note":null,"x":1}`)
	require.NoError(t, err)

	assert.True(t, m.ContainsKey("note"))
	v, found := m.Get("note")
	assert.True(t, found)
	assert.Nil(t, v)

	prev, replaced := m.Put("note", int64(7))
	assert.True(t, replaced)
	assert.Nil(t, prev)

	prev, replaced = m.Put("note", nil)
	assert.True(t, replaced)
	assert.Equal(t, int64(7), prev)

	out, err := m.ToJSON()
	require.NoError(t, err)
	assert.Equal(t, `{"note":null,"x":1}`, out)

	removed, ok := m.Remove("note")
	assert.True(t, ok)
	assert.Nil(t, removed)
	assert.False(t, m.ContainsKey("note"))
	assert.Equal(t, 1, m.Size())
	assert.Equal(t, []string{"x"}, m.Keys())

	m2 := New().PutValue("a", nil).PutValue("b", int64(2))
	assert.Equal(t, []any{nil, int64(2)}, m2.Values())
	var seen []any
	m2.Each(func(_ string, value any) {
		seen = append(seen, value)
	})
	assert.Equal(t, []any{nil, int64(2)}, seen)
}

func TestSizeEmptyClear(t *testing.T) {
	m := New()
	assert.True(t, m.IsEmpty())
	assert.Equal(t, 0, m.Size())

	m.PutValue("a", int64(1)).PutValue("b", int64(2))
	assert.False(t, m.IsEmpty())
	assert.Equal(t, 2, m.Size())

	m.Clear()
	assert.True(t, m.IsEmpty())
	assert.Equal(t, 0, m.Size())
}

func TestKeysValuesEach(t *testing.T) {
	m := New().
		PutValue("zebra", int64(1)).
		PutValue("apple", "two").
		PutValue("mango", true)

	assert.Equal(t, []string{"zebra", "apple", "mango"}, m.Keys())
	assert.Equal(t, []any{int64(1), "two", true}, m.Values())

	var keys []string
	var values []any
	m.Each(func(key string, value any) {
		keys = append(keys, key)
		values = append(values, value)
	})
	assert.Equal(t, []string{"zebra", "apple", "mango"}, keys)
	assert.Equal(t, []any{int64(1), "two", true}, values)
}

func TestEqual(t *testing.T) {
	type args struct {
		a *Map
		b *Map
	}
	tests := []struct {
		name string
		args args
		want bool
	}{
		{
			name: "same members different order",
			args: args{
				a: New().PutValue("a", int64(1)).PutValue("b", "two"),
				b: New().PutValue("b", "two").PutValue("a", int64(1)),
			},
			want: true,
		},
		{
			name: "different sizes",
			args: args{
				a: New().PutValue("a", int64(1)),
				b: New().PutValue("a", int64(1)).PutValue("b", int64(2)),
			},
			want: false,
		},
		{
			name: "different values",
			args: args{
				a: New().PutValue("a", int64(1)),
				b: New().PutValue("a", int64(2)),
			},
			want: false,
		},
		{
			name: "numeric types stay distinct",
			args: args{
				a: New().PutValue("a", int64(3)),
				b: New().PutValue("a", float64(3)),
			},
			want: false,
		},
		{
			name: "nested containers compare structurally",
			args: args{
				a: New().PutValue("o", New().PutValue("x", int64(1))),
				b: New().PutValue("o", New().PutValue("x", int64(1))),
			},
			want: true,
		},
		{
			name: "nested wrapper equals raw container",
			args: args{
				a: New().PutValue("o", New().PutValue("x", int64(1))),
				b: func() *Map {
					raw := linkedhashmap.New()
					raw.Put("x", int64(1))
					return New().PutValue("o", raw)
				}(),
			},
			want: true,
		},
		{
			name: "arrays compare elementwise",
			args: args{
				a: New().PutValue("l", []any{int64(1), nil}),
				b: New().PutValue("l", []any{int64(1), nil}),
			},
			want: true,
		},
		{
			name: "null members compare equal",
			args: args{
				a: New().PutValue("a", nil).PutValue("b", int64(2)),
				b: New().PutValue("b", int64(2)).PutValue("a", nil),
			},
			want: true,
		},
		{
			name: "null member is not a missing key",
			args: args{
				a: New().PutValue("a", nil),
				b: New().PutValue("c", nil),
			},
			want: false,
		},
		{
			name: "raw nil written through the backing store",
			args: args{
				a: New().PutValue("a", nil),
				b: func() *Map {
					m := New()
					m.Container().Put("a", nil)
					return m
				}(),
			},
			want: true,
		},
		{
			name: "nil other",
			args: args{
				a: New(),
				b: nil,
			},
			want: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.args.a.Equal(tt.args.b))
		})
	}

	t.Run("self", func(t *testing.T) {
		m := New().PutValue("a", int64(1))
		assert.True(t, m.Equal(m))
	})
}

func TestToJSON(t *testing.T) {
	m := New().
		PutValue("name", "starter pack").
		PutValue("count", int64(3)).
		PutValue("price", 9.5)

	out, err := m.ToJSON()
	require.NoError(t, err)
	assert.Equal(t, `{"name":"starter pack","count":3,"price":9.5}`, out)

	out, err = m.ToText(format.JSON, codec.Pretty(true))
	require.NoError(t, err)
	assert.Equal(t, "{\n    \"name\": \"starter pack\",\n    \"count\": 3,\n    \"price\": 9.5\n}", out)

	// nested wrappers encode through their backing container
	nested := New().PutValue("o", New().PutValue("x", int64(1)))
	out, err = nested.ToJSON()
	require.NoError(t, err)
	assert.Equal(t, `{"o":{"x":1}}`, out)
}

func TestToText(t *testing.T) {
	m := New().PutValue("name", "starter pack").PutValue("count", int64(3))

	out, err := m.ToText(format.YAML)
	require.NoError(t, err)
	assert.Equal(t, "name: starter pack\ncount: 3\n", out)

	nested := New().PutValue("o", New().PutValue("x", int64(1)))
	out, err = nested.ToText(format.YAML)
	require.NoError(t, err)
	assert.Equal(t, "o:\n  x: 1\n", out)

	_, err = m.ToText(format.Format("csv"))
	require.Error(t, err)
	assert.Equal(t, xerrors.CodeUnknownFormat, xerrors.Code(err))

	m.PutValue("bad", make(chan int))
	_, err = m.ToJSON()
	require.Error(t, err)
	assert.Equal(t, xerrors.CodeEncodeType, xerrors.Code(err))
}

// A typed nil wrapper stored as a value is unencodable, not a crash.
func TestNilWrapperValue(t *testing.T) {
	m := New().PutValue("child", (*Map)(nil))

	_, err := m.ToJSON()
	require.Error(t, err)
	assert.Equal(t, xerrors.CodeEncodeType, xerrors.Code(err))

	_, err = m.ToText(format.YAML)
	require.Error(t, err)
	assert.Equal(t, xerrors.CodeEncodeType, xerrors.Code(err))

	assert.False(t, m.ContainsValue(New()))
	assert.True(t, m.ContainsValue((*Map)(nil)))

	other := New().PutValue("child", (*Map)(nil))
	assert.True(t, m.Equal(other))
}

func TestString(t *testing.T) {
	m := New().PutValue("a", int64(1))
	assert.Equal(t, `{"a":1}`, m.String())

	m.PutValue("bad", make(chan int))
	assert.Equal(t, "jsonmap.Map[2 entries]", m.String())
}

func TestRoundTrip(t *testing.T) {
	t.Run("canonical values survive", func(t *testing.T) {
		in := `{"s":"hi","i":42,"f":2.5,"whole":3.0,"b":true,"n":null,"o":{"x":1},"l":[1,"two",false,null]}`
		m, err := FromJSON(in)
		require.NoError(t, err)

		out, err := m.ToJSON()
		require.NoError(t, err)

		back, err := FromJSON(out)
		require.NoError(t, err)
		assert.True(t, m.Equal(back))

		// A whole float must come back as a float, not an integer.
		v, found := back.Get("whole")
		require.True(t, found)
		assert.IsType(t, float64(0), v)
	})

	t.Run("native widths normalize to the canonical set", func(t *testing.T) {
		m := New().
			PutValue("i8", int8(5)).
			PutValue("u16", uint16(7)).
			PutValue("f32", float32(2.5))

		out, err := m.ToJSON()
		require.NoError(t, err)

		back, err := FromJSON(out)
		require.NoError(t, err)

		v, _ := back.Get("i8")
		assert.Equal(t, int64(5), v)
		v, _ = back.Get("u16")
		assert.Equal(t, int64(7), v)
		v, _ = back.Get("f32")
		assert.Equal(t, 2.5, v)
	})

	t.Run("yaml and json agree", func(t *testing.T) {
		m, err := FromText("name: starter pack\ncount: 3\nprice: 9.5\n", format.YAML)
		require.NoError(t, err)

		out, err := m.ToJSON()
		require.NoError(t, err)
		assert.Equal(t, `{"name":"starter pack","count":3,"price":9.5}`, out)
	})
}
