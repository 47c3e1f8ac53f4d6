package lookup

//go:generate go tool stringer --linecomment --type Kind --output kind_string.go

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/goccy/go-yaml"
)

// Kind indicates which member of a [Value] is populated.
type Kind int

const (
	// KindScalar is a plain string value.
	KindScalar Kind = iota // scalar

	// KindList is an ordered sequence of values.
	KindList // list

	// KindMap is an ordered mapping from string keys to values.
	KindMap // map

	// KindLiteral is a non-string scalar from a structured data file (bool,
	// number or null). Literals are never interpolated.
	KindLiteral // literal
)

// Value is the result of a lookup. Exactly one of the fields is meaningful,
// selected by Kind.
type Value struct {
	Kind    Kind
	Scalar  string
	List    []Value
	Map     Map
	Literal any
}

// Entry is a single key-value association in a [Map].
type Entry struct {
	Key   string
	Value Value
}

// Map is an insertion-ordered mapping from string keys to values.
type Map []Entry

// Get returns the value associated with key.
func (m Map) Get(key string) (Value, bool) {
	for _, e := range m {
		if e.Key == key {
			return e.Value, true
		}
	}

	return Value{}, false
}

// Keys returns the keys of m in insertion order.
func (m Map) Keys() []string {
	keys := make([]string, len(m))
	for i, e := range m {
		keys[i] = e.Key
	}

	return keys
}

// Scalar returns a scalar value.
func Scalar(s string) Value {
	return Value{Kind: KindScalar, Scalar: s}
}

// List returns a list value containing the given scalars.
func List(items ...string) Value {
	list := make([]Value, len(items))
	for i, s := range items {
		list[i] = Scalar(s)
	}

	return Value{Kind: KindList, List: list}
}

// MapOf returns a map value with the given entries.
func MapOf(entries ...Entry) Value {
	return Value{Kind: KindMap, Map: Map(entries)}
}

// Literal returns a literal value wrapping v.
func Literal(v any) Value {
	return Value{Kind: KindLiteral, Literal: v}
}

// Clone returns a deep copy of v that shares no list or map storage with it.
func (v Value) Clone() Value {
	switch v.Kind {
	case KindList:
		if v.List == nil {
			return v
		}

		list := make([]Value, len(v.List))
		for i, item := range v.List {
			list[i] = item.Clone()
		}

		v.List = list

	case KindMap:
		if v.Map == nil {
			return v
		}

		m := make(Map, len(v.Map))
		for i, e := range v.Map {
			m[i] = Entry{Key: e.Key, Value: e.Value.Clone()}
		}

		v.Map = m
	}

	return v
}

// Native converts v to plain Go values: string, []any, [yaml.MapSlice] (to
// keep key order when encoded) or the literal itself.
func (v Value) Native() any {
	switch v.Kind {
	case KindScalar:
		return v.Scalar

	case KindList:
		list := make([]any, len(v.List))
		for i, item := range v.List {
			list[i] = item.Native()
		}

		return list

	case KindMap:
		ms := make(yaml.MapSlice, len(v.Map))
		for i, e := range v.Map {
			ms[i] = yaml.MapItem{Key: e.Key, Value: e.Value.Native()}
		}

		return ms

	case KindLiteral:
		return v.Literal

	default:
		return nil
	}
}

// String renders v for display. Scalars are returned verbatim, lists are
// joined with commas and maps are rendered in YAML flow style.
func (v Value) String() string {
	switch v.Kind {
	case KindScalar:
		return v.Scalar

	case KindList:
		part := make([]string, len(v.List))
		for i, item := range v.List {
			part[i] = item.String()
		}

		return strings.Join(part, ",")

	default:
		b, err := yaml.MarshalWithOptions(v.Native(), yaml.Flow(true))
		if err != nil {
			return ""
		}

		return strings.TrimSpace(string(b))
	}
}

// MarshalYAML implements [yaml.InterfaceMarshaler].
func (v Value) MarshalYAML() (any, error) {
	return v.Native(), nil
}

// MarshalJSON implements [json.Marshaler]. Map entries keep their order.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case KindList:
		if v.List == nil {
			return []byte("[]"), nil
		}

		return json.Marshal(v.List)

	case KindMap:
		var buf bytes.Buffer

		buf.WriteByte('{')

		for i, e := range v.Map {
			if i > 0 {
				buf.WriteByte(',')
			}

			key, err := json.Marshal(e.Key)
			if err != nil {
				return nil, err
			}

			val, err := e.Value.MarshalJSON()
			if err != nil {
				return nil, err
			}

			buf.Write(key)
			buf.WriteByte(':')
			buf.Write(val)
		}

		buf.WriteByte('}')

		return buf.Bytes(), nil

	default:
		return json.Marshal(v.Native())
	}
}

// valueOf converts a value decoded by go-yaml with ordered maps enabled.
func valueOf(raw any) Value {
	switch x := raw.(type) {
	case string:
		return Scalar(x)

	case []any:
		list := make([]Value, len(x))
		for i, item := range x {
			list[i] = valueOf(item)
		}

		return Value{Kind: KindList, List: list}

	case yaml.MapSlice:
		m := make(Map, 0, len(x))
		for _, item := range x {
			m = append(m, Entry{Key: keyString(item.Key), Value: valueOf(item.Value)})
		}

		return Value{Kind: KindMap, Map: m}

	default:
		return Literal(x)
	}
}
