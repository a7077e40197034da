package document

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Kind identifies which variant a Value holds.
type Kind uint8

// Value kinds.
const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindFloat
	KindString
	KindSequence
	KindMapping
)

var kindNames = [...]string{ //nolint:gochecknoglobals
	KindNull:     "null",
	KindBool:     "bool",
	KindInt:      "int",
	KindFloat:    "float",
	KindString:   "string",
	KindSequence: "sequence",
	KindMapping:  "mapping",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}

	return "kind(" + strconv.Itoa(int(k)) + ")"
}

// Entry is a single key/value pair of a mapping.
type Entry struct {
	Key   string
	Value Value
}

// Value is a schema-less document node. The zero Value is null.
type Value struct {
	kind    Kind
	boolean bool
	integer int64
	float   float64
	str     string
	items   []Value
	entries []Entry
}

// Null returns the null value.
func Null() Value { return Value{} }

// Bool returns a boolean value.
func Bool(b bool) Value { return Value{kind: KindBool, boolean: b} }

// Int returns an integer value.
func Int(i int64) Value { return Value{kind: KindInt, integer: i} }

// Float returns a floating point value.
func Float(f float64) Value { return Value{kind: KindFloat, float: f} }

// String returns a string value.
func String(s string) Value { return Value{kind: KindString, str: s} }

// List returns a sequence holding items in order.
func List(items ...Value) Value {
	return Value{kind: KindSequence, items: append([]Value{}, items...)}
}

// Field is shorthand for building mapping entries.
func Field(key string, value Value) Entry {
	return Entry{Key: key, Value: value}
}

// Map returns a mapping holding entries in order. A repeated key keeps its
// first position and takes the last value.
func Map(entries ...Entry) Value {
	out := Value{kind: KindMapping, entries: make([]Entry, 0, len(entries))}

	for _, e := range entries {
		out.entries = setEntry(out.entries, e.Key, e.Value)
	}

	return out
}

func setEntry(entries []Entry, key string, value Value) []Entry {
	for i := range entries {
		if entries[i].Key == key {
			entries[i].Value = value

			return entries
		}
	}

	return append(entries, Entry{Key: key, Value: value})
}

// Kind reports the variant held by v.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is null.
func (v Value) IsNull() bool { return v.kind == KindNull }

// AsBool returns the boolean held by v.
func (v Value) AsBool() (bool, bool) {
	return v.boolean, v.kind == KindBool
}

// AsInt returns the integer held by v. Floats with no fractional part
// convert as well.
func (v Value) AsInt() (int64, bool) {
	switch v.kind {
	case KindInt:
		return v.integer, true
	case KindFloat:
		if v.float == math.Trunc(v.float) && v.float >= math.MinInt64 && v.float < math.MaxInt64 {
			return int64(v.float), true
		}
	default:
	}

	return 0, false
}

// AsFloat returns the number held by v as a float64.
func (v Value) AsFloat() (float64, bool) {
	switch v.kind {
	case KindFloat:
		return v.float, true
	case KindInt:
		return float64(v.integer), true
	default:
		return 0, false
	}
}

// AsString returns the string held by v.
func (v Value) AsString() (string, bool) {
	return v.str, v.kind == KindString
}

// Len returns the number of items of a sequence or entries of a mapping,
// and zero for scalars.
func (v Value) Len() int {
	switch v.kind {
	case KindSequence:
		return len(v.items)
	case KindMapping:
		return len(v.entries)
	default:
		return 0
	}
}

// Items returns a copy of the items of a sequence.
func (v Value) Items() []Value {
	if v.kind != KindSequence {
		return nil
	}

	return append([]Value{}, v.items...)
}

// Index returns the i-th item of a sequence.
func (v Value) Index(i int) (Value, bool) {
	if v.kind != KindSequence || i < 0 || i >= len(v.items) {
		return Value{}, false
	}

	return v.items[i], true
}

// Entries returns a copy of the entries of a mapping, in order.
func (v Value) Entries() []Entry {
	if v.kind != KindMapping {
		return nil
	}

	return append([]Entry{}, v.entries...)
}

// Keys returns the keys of a mapping, in order.
func (v Value) Keys() []string {
	if v.kind != KindMapping {
		return nil
	}

	keys := make([]string, len(v.entries))
	for i, e := range v.entries {
		keys[i] = e.Key
	}

	return keys
}

// Get returns the value stored under key in a mapping.
func (v Value) Get(key string) (Value, bool) {
	if v.kind != KindMapping {
		return Value{}, false
	}

	for _, e := range v.entries {
		if e.Key == key {
			return e.Value, true
		}
	}

	return Value{}, false
}

// With returns a copy of the mapping v with key set to value. A null v is
// treated as an empty mapping.
func (v Value) With(key string, value Value) (Value, error) {
	switch v.kind {
	case KindNull:
		return Map(Field(key, value)), nil
	case KindMapping:
		entries := append(make([]Entry, 0, len(v.entries)+1), v.entries...)

		return Value{kind: KindMapping, entries: setEntry(entries, key, value)}, nil
	default:
		return Value{}, fmt.Errorf("%w: cannot set key %q on %s", ErrKindMismatch, key, v.kind)
	}
}

// Append returns a copy of the sequence v with items added at the end. A
// null v is treated as an empty sequence.
func (v Value) Append(items ...Value) (Value, error) {
	switch v.kind {
	case KindNull, KindSequence:
		out := append(make([]Value, 0, len(v.items)+len(items)), v.items...)

		return Value{kind: KindSequence, items: append(out, items...)}, nil
	default:
		return Value{}, fmt.Errorf("%w: cannot append to %s", ErrKindMismatch, v.kind)
	}
}

// Lookup navigates a colon-separated path. Mapping steps match keys, sequence
// steps are decimal indexes: "cobras:12:center". An empty path returns v.
func (v Value) Lookup(path string) (Value, bool) {
	if path == "" {
		return v, true
	}

	cur := v

	for step := range strings.SplitSeq(path, ":") {
		var ok bool

		switch cur.kind {
		case KindMapping:
			cur, ok = cur.Get(step)
		case KindSequence:
			idx, err := strconv.Atoi(step)
			if err != nil {
				return Value{}, false
			}

			cur, ok = cur.Index(idx)
		default:
			return Value{}, false
		}

		if !ok {
			return Value{}, false
		}
	}

	return cur, true
}

// Equal reports whether v and other hold the same variant and content.
// Mapping comparison is order sensitive.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}

	switch v.kind {
	case KindNull:
		return true
	case KindBool:
		return v.boolean == other.boolean
	case KindInt:
		return v.integer == other.integer
	case KindFloat:
		return v.float == other.float || (math.IsNaN(v.float) && math.IsNaN(other.float))
	case KindString:
		return v.str == other.str
	case KindSequence:
		if len(v.items) != len(other.items) {
			return false
		}

		for i := range v.items {
			if !v.items[i].Equal(other.items[i]) {
				return false
			}
		}

		return true
	case KindMapping:
		if len(v.entries) != len(other.entries) {
			return false
		}

		for i := range v.entries {
			if v.entries[i].Key != other.entries[i].Key || !v.entries[i].Value.Equal(other.entries[i].Value) {
				return false
			}
		}

		return true
	default:
		return false
	}
}

// String renders v for debugging. It is not a serialization format.
func (v Value) String() string {
	switch v.kind {
	case KindNull:
		return "null"
	case KindBool:
		return strconv.FormatBool(v.boolean)
	case KindInt:
		return strconv.FormatInt(v.integer, 10)
	case KindFloat:
		return strconv.FormatFloat(v.float, 'g', -1, 64)
	case KindString:
		return strconv.Quote(v.str)
	case KindSequence:
		parts := make([]string, len(v.items))
		for i, item := range v.items {
			parts[i] = item.String()
		}

		return "[" + strings.Join(parts, ", ") + "]"
	case KindMapping:
		parts := make([]string, len(v.entries))
		for i, e := range v.entries {
			parts[i] = strconv.Quote(e.Key) + ": " + e.Value.String()
		}

		return "{" + strings.Join(parts, ", ") + "}"
	default:
		return v.kind.String()
	}
}
