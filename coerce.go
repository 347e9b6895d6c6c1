package jsonmap

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Typed accessors translating stored values into the requested type. The
// lookup order for every numeric target is:
//  1. a value of exactly the target type
//  2. any other numeric value, converted: fractions truncate toward zero,
//     narrowing may wrap
//  3. a string value, parsed for the target: base-10 signed integers
//     (range-checked for the target width) or decimal/scientific floats
//     (out-of-range magnitudes saturate to an infinity, like the numeric
//     conversion path)
//
// Anything else, a missing key, and a stored null report absence. Accessors
// never return errors, failed coercion and missing keys look the same.

// GetBool returns the bool stored under key. The strings "true" and
// "false" qualify, compared case-insensitively. Numbers never do.
func (m *Map) GetBool(key string) (bool, bool) {
	v, found := m.Get(key)
	if !found {
		return false, false
	}
	switch val := v.(type) {
	case bool:
		return val, true
	case string:
		if strings.EqualFold(val, "true") {
			return true, true
		}
		if strings.EqualFold(val, "false") {
			return false, true
		}
	}
	return false, false
}

// GetString returns the string stored under key. Any non-null value
// qualifies and renders in Go display form.
func (m *Map) GetString(key string) (string, bool) {
	v, found := m.Get(key)
	if !found || v == nil {
		return "", false
	}
	if s, ok := v.(string); ok {
		return s, true
	}
	return fmt.Sprint(v), true
}

// GetRune returns the rune stored under key. A string qualifies when it
// holds exactly one rune. Since rune is an alias of int32, stored int32
// numbers satisfy the exact-type case.
func (m *Map) GetRune(key string) (rune, bool) {
	v, found := m.Get(key)
	if !found {
		return 0, false
	}
	switch val := v.(type) {
	case rune:
		return val, true
	case string:
		if utf8.RuneCountInString(val) == 1 {
			r, _ := utf8.DecodeRuneInString(val)
			return r, true
		}
	}
	return 0, false
}

// GetInt8 returns the int8 stored under key.
func (m *Map) GetInt8(key string) (int8, bool) {
	v, found := m.Get(key)
	if !found {
		return 0, false
	}
	switch val := v.(type) {
	case int8:
		return val, true
	case string:
		n, err := strconv.ParseInt(val, 10, 8)
		if err != nil {
			return 0, false
		}
		return int8(n), true
	}
	n, ok := asInt64(v)
	return int8(n), ok
}

// GetInt16 returns the int16 stored under key.
func (m *Map) GetInt16(key string) (int16, bool) {
	v, found := m.Get(key)
	if !found {
		return 0, false
	}
	switch val := v.(type) {
	case int16:
		return val, true
	case string:
		n, err := strconv.ParseInt(val, 10, 16)
		if err != nil {
			return 0, false
		}
		return int16(n), true
	}
	n, ok := asInt64(v)
	return int16(n), ok
}

// GetInt32 returns the int32 stored under key.
func (m *Map) GetInt32(key string) (int32, bool) {
	v, found := m.Get(key)
	if !found {
		return 0, false
	}
	switch val := v.(type) {
	case int32:
		return val, true
	case string:
		n, err := strconv.ParseInt(val, 10, 32)
		if err != nil {
			return 0, false
		}
		return int32(n), true
	}
	n, ok := asInt64(v)
	return int32(n), ok
}

// GetInt64 returns the int64 stored under key.
func (m *Map) GetInt64(key string) (int64, bool) {
	v, found := m.Get(key)
	if !found {
		return 0, false
	}
	switch val := v.(type) {
	case int64:
		return val, true
	case string:
		n, err := strconv.ParseInt(val, 10, 64)
		if err != nil {
			return 0, false
		}
		return n, true
	}
	return asInt64(v)
}

// GetInt returns the int stored under key.
func (m *Map) GetInt(key string) (int, bool) {
	v, found := m.Get(key)
	if !found {
		return 0, false
	}
	switch val := v.(type) {
	case int:
		return val, true
	case string:
		n, err := strconv.ParseInt(val, 10, strconv.IntSize)
		if err != nil {
			return 0, false
		}
		return int(n), true
	}
	n, ok := asInt64(v)
	return int(n), ok
}

// GetFloat32 returns the float32 stored under key.
func (m *Map) GetFloat32(key string) (float32, bool) {
	v, found := m.Get(key)
	if !found {
		return 0, false
	}
	switch val := v.(type) {
	case float32:
		return val, true
	case string:
		f, err := strconv.ParseFloat(val, 32)
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			return 0, false
		}
		return float32(f), true
	}
	f, ok := asFloat64(v)
	return float32(f), ok
}

// GetFloat64 returns the float64 stored under key.
func (m *Map) GetFloat64(key string) (float64, bool) {
	v, found := m.Get(key)
	if !found {
		return 0, false
	}
	switch val := v.(type) {
	case float64:
		return val, true
	case string:
		f, err := strconv.ParseFloat(val, 64)
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			return 0, false
		}
		return f, true
	}
	return asFloat64(v)
}

// asInt64 converts any native numeric value to int64. Floats truncate
// toward zero.
func asInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int8:
		return int64(n), true
	case int16:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case uint:
		return int64(n), true
	case uint8:
		return int64(n), true
	case uint16:
		return int64(n), true
	case uint32:
		return int64(n), true
	case uint64:
		return int64(n), true
	case uintptr:
		return int64(n), true
	case float32:
		return int64(n), true
	case float64:
		return int64(n), true
	}
	return 0, false
}

// asFloat64 converts any native numeric value to float64.
func asFloat64(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case uintptr:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}
