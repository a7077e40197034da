package document

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"reflect"
	"slices"
	"strconv"
	"time"
)

// ErrKindMismatch is returned when an operation does not apply to the kind of a value.
var ErrKindMismatch = errors.New("kind mismatch")

// ErrUnsupportedType is returned when a Go value has no document representation.
var ErrUnsupportedType = errors.New("unsupported type")

// FromAny converts plain Go data into a Value. It accepts nil, booleans,
// every integer and float type, strings, time.Time (RFC 3339 string),
// slices, arrays, maps with string keys (in sorted key order), Values and
// Entry slices (in order). Unsigned integers above math.MaxInt64 do not fit
// an Int and become the nearest Float, losing precision.
func FromAny(in any) (Value, error) {
	switch val := in.(type) {
	case nil:
		return Null(), nil
	case Value:
		return val, nil
	case []Entry:
		return Map(val...), nil
	case bool:
		return Bool(val), nil
	case string:
		return String(val), nil
	case time.Time:
		return String(val.Format(time.RFC3339Nano)), nil
	case float32:
		return Float(float64(val)), nil
	case float64:
		return Float(val), nil
	default:
	}

	return fromReflect(reflect.ValueOf(in))
}

func fromReflect(rv reflect.Value) (Value, error) {
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Int(rv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		u := rv.Uint()
		if u > math.MaxInt64 {
			return Float(float64(u)), nil
		}

		return Int(int64(u)), nil
	case reflect.Float32, reflect.Float64:
		return Float(rv.Float()), nil
	case reflect.Bool:
		return Bool(rv.Bool()), nil
	case reflect.String:
		return String(rv.String()), nil
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return Null(), nil
		}

		return FromAny(rv.Elem().Interface())
	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.IsNil() {
			return List(), nil
		}

		items := make([]Value, rv.Len())

		for i := range rv.Len() {
			item, err := FromAny(rv.Index(i).Interface())
			if err != nil {
				return Value{}, fmt.Errorf("index %d: %w", i, err)
			}

			items[i] = item
		}

		return Value{kind: KindSequence, items: items}, nil
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return Value{}, fmt.Errorf("%w: map key type %s", ErrUnsupportedType, rv.Type().Key())
		}

		keys := make([]string, 0, rv.Len())
		for _, k := range rv.MapKeys() {
			keys = append(keys, k.String())
		}

		slices.Sort(keys)

		entries := make([]Entry, 0, len(keys))

		for _, k := range keys {
			item, err := FromAny(rv.MapIndex(reflect.ValueOf(k).Convert(rv.Type().Key())).Interface())
			if err != nil {
				return Value{}, fmt.Errorf("key %q: %w", k, err)
			}

			entries = append(entries, Entry{Key: k, Value: item})
		}

		return Value{kind: KindMapping, entries: entries}, nil
	default:
		if !rv.IsValid() {
			return Null(), nil
		}

		return Value{}, fmt.Errorf("%w: %s", ErrUnsupportedType, rv.Type())
	}
}

// MustFromAny is FromAny for literals known to be convertible. It panics on error.
func MustFromAny(in any) Value {
	v, err := FromAny(in)
	if err != nil {
		panic(err)
	}

	return v
}

// Interface converts v back to plain Go data: nil, bool, int64, float64,
// string, []any and map[string]any. Key order is lost.
func (v Value) Interface() any {
	switch v.kind {
	case KindNull:
		return nil
	case KindBool:
		return v.boolean
	case KindInt:
		return v.integer
	case KindFloat:
		return v.float
	case KindString:
		return v.str
	case KindSequence:
		out := make([]any, len(v.items))
		for i, item := range v.items {
			out[i] = item.Interface()
		}

		return out
	case KindMapping:
		out := make(map[string]any, len(v.entries))
		for _, e := range v.entries {
			out[e.Key] = e.Value.Interface()
		}

		return out
	default:
		return nil
	}
}

// MarshalJSON renders v as JSON, keeping mapping order. Non-finite floats
// have no JSON form and are rendered as strings.
func (v Value) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer

	err := v.writeJSON(&buf)
	if err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func (v Value) writeJSON(buf *bytes.Buffer) error {
	switch v.kind {
	case KindNull:
		buf.WriteString("null")
	case KindBool:
		buf.WriteString(strconv.FormatBool(v.boolean))
	case KindInt:
		buf.WriteString(strconv.FormatInt(v.integer, 10))
	case KindFloat:
		if math.IsNaN(v.float) || math.IsInf(v.float, 0) {
			return writeJSONString(buf, strconv.FormatFloat(v.float, 'g', -1, 64))
		}

		buf.WriteString(strconv.FormatFloat(v.float, 'g', -1, 64))
	case KindString:
		return writeJSONString(buf, v.str)
	case KindSequence:
		buf.WriteByte('[')

		for i, item := range v.items {
			if i > 0 {
				buf.WriteByte(',')
			}

			err := item.writeJSON(buf)
			if err != nil {
				return err
			}
		}

		buf.WriteByte(']')
	case KindMapping:
		buf.WriteByte('{')

		for i, e := range v.entries {
			if i > 0 {
				buf.WriteByte(',')
			}

			err := writeJSONString(buf, e.Key)
			if err != nil {
				return err
			}

			buf.WriteByte(':')

			err = e.Value.writeJSON(buf)
			if err != nil {
				return err
			}
		}

		buf.WriteByte('}')
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedType, v.kind)
	}

	return nil
}

func writeJSONString(buf *bytes.Buffer, s string) error {
	encoded, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encoding string: %w", err)
	}

	buf.Write(encoded)

	return nil
}
