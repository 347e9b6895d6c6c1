package jsonmap

import (
	"reflect"

	"github.com/emirpasic/gods/maps/linkedhashmap"
)

func equalContainer(a, b *linkedhashmap.Map) bool {
	if a.Size() != b.Size() {
		return false
	}
	it := a.Iterator()
	for it.Next() {
		bv, found := b.Get(it.Key())
		if !found {
			// the backing map reports raw nil values as absent, check
			// the key list before treating the entry as missing
			if !hasKey(b, it.Key()) {
				return false
			}
			bv = nil
		}
		if !equalValue(it.Value(), bv) {
			return false
		}
	}
	return true
}

func hasKey(m *linkedhashmap.Map, key any) bool {
	for _, k := range m.Keys() {
		if k == key {
			return true
		}
	}
	return false
}

// equalValue compares two stored values structurally: containers by key set,
// lists elementwise, everything else by reflect.DeepEqual. The boxed null
// marker compares equal to nil.
func equalValue(a, b any) bool {
	a = unboxNull(a)
	b = unboxNull(b)
	ac, aok := asContainer(a)
	bc, bok := asContainer(b)
	if aok || bok {
		return aok && bok && equalContainer(ac, bc)
	}
	al, aok := a.([]any)
	bl, bok := b.([]any)
	if aok || bok {
		if !aok || !bok || len(al) != len(bl) {
			return false
		}
		for i := range al {
			if !equalValue(al[i], bl[i]) {
				return false
			}
		}
		return true
	}
	return reflect.DeepEqual(a, b)
}

func asContainer(v any) (*linkedhashmap.Map, bool) {
	switch c := v.(type) {
	case *Map:
		if c == nil {
			return nil, false
		}
		return c.data, true
	case *linkedhashmap.Map:
		if c == nil {
			return nil, false
		}
		return c, true
	}
	return nil, false
}
