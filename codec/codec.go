// Package codec decodes document text into insertion-ordered container
// trees and encodes such trees back to text.
//
// Decoded values belong to the canonical set: string, int64, float64, bool,
// nil, *linkedhashmap.Map for nested mappings, and []any for sequences.
// Mapping members hold decoded nulls as the Null marker, since the backing
// map reports raw nil values as absent; sequence elements keep plain nil.
package codec

import (
	"fmt"

	"github.com/emirpasic/gods/maps/linkedhashmap"
	"github.com/rayleeriver/jsonmap/format"
	"github.com/rayleeriver/jsonmap/xerrors"
)

// Codec translates between document text and ordered container trees of one
// wire format.
type Codec interface {
	// Format returns the wire format this codec handles.
	Format() format.Format

	// Unmarshal parses text into an ordered container, preserving the
	// document's member order. The document root must be a mapping.
	Unmarshal(text string) (*linkedhashmap.Map, error)

	// Marshal renders the container in insertion order.
	Marshal(m *linkedhashmap.Map, setters ...Option) (string, error)
}

// For returns the codec of the given format.
func For(f format.Format) (Codec, error) {
	switch f {
	case format.JSON:
		return jsonCodec{}, nil
	case format.YAML:
		return yamlCodec{}, nil
	default:
		return nil, xerrors.NewKV(xerrors.CodeUnknownFormat, "no codec for format", xerrors.KeyFormat, f)
	}
}

// containerProvider is how nested wrapper values expose their backing
// container to the encoders.
type containerProvider interface {
	Container() *linkedhashmap.Map
}

// Null marks a stored null inside a mapping container, where a raw nil
// value would read back as absent.
var Null nullValue

type nullValue struct{}

func (nullValue) String() string { return "null" }

// IsNull reports whether v is the boxed null marker.
func IsNull(v any) bool {
	_, ok := v.(nullValue)
	return ok
}

func boxNull(v any) any {
	if v == nil {
		return Null
	}
	return v
}

func typeName(v any) string {
	return fmt.Sprintf("%T", v)
}

type Options struct {
	// Pretty indents the marshalled output for human reading.
	//
	// Default: false.
	Pretty bool
}

// Option is the functional option type.
type Option func(*Options)

// Pretty indents the marshalled output for human reading.
func Pretty(pretty bool) Option {
	return func(opts *Options) {
		opts.Pretty = pretty
	}
}

func newDefault() *Options {
	return &Options{}
}

// ParseOptions parses functional options and merge them to default Options.
func ParseOptions(setters ...Option) *Options {
	opts := newDefault()
	for _, setter := range setters {
		setter(opts)
	}
	return opts
}
