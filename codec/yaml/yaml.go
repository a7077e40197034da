package yaml

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/subaru-pfs/instdata/document"

	"github.com/goccy/go-yaml"
	"github.com/goccy/go-yaml/parser"
)

const (
	// Extension is the file extension of YAML documents.
	Extension = ".yaml"
	// MediaType is the content type used when YAML documents are served.
	MediaType = "application/yaml"
)

// ErrEmptyData is returned by Parse when the input data is empty.
var ErrEmptyData = errors.New("empty data")

// ErrPathNotFound is returned when the specified path is not found in the YAML document.
var ErrPathNotFound = errors.New("path not found")

// ErrSyntax is returned when the input is not well-formed YAML.
var ErrSyntax = errors.New("invalid yaml")

// ErrMultipleDocuments is returned when the input holds more than one YAML document.
var ErrMultipleDocuments = errors.New("expected a single document")

// Codec converts documents to and from YAML.
type Codec struct{}

// NewCodec creates a new YAML codec instance.
func NewCodec() *Codec {
	return &Codec{}
}

// Decode parses a YAML document. Blank input decodes to a null document.
func (c *Codec) Decode(data []byte) (document.Value, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return document.Null(), nil
	}

	err := requireSingleDocument(data)
	if err != nil {
		return document.Null(), err
	}

	var raw any

	err = yaml.UnmarshalWithOptions(data, &raw, yaml.UseOrderedMap())
	if err != nil {
		return document.Null(), fmt.Errorf("%w: %w", ErrSyntax, err)
	}

	return fromYAML(raw)
}

// requireSingleDocument rejects streams with more than one non-empty document.
func requireSingleDocument(data []byte) error {
	file, err := parser.ParseBytes(data, 0)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSyntax, err)
	}

	docs := 0

	for _, doc := range file.Docs {
		if doc != nil && doc.Body != nil {
			docs++
		}
	}

	if docs > 1 {
		return fmt.Errorf("%w: %w, found %d", ErrSyntax, ErrMultipleDocuments, docs)
	}

	return nil
}

// Encode serializes a document, keeping mapping order.
func (c *Codec) Encode(doc document.Value) ([]byte, error) {
	out, err := yaml.Marshal(toYAML(doc))
	if err != nil {
		return nil, fmt.Errorf("marshal error: %w", err)
	}

	return out, nil
}

// Parse parses YAML data and unmarshals it into the target.
// The path parameter specifies a navigation path using colon (:) as separator.
// Empty path parses the entire document.
func (c *Codec) Parse(data []byte, target any, path string) error {
	if len(data) == 0 {
		return ErrEmptyData
	}

	err := requireSingleDocument(data)
	if err != nil {
		return err
	}

	if path == "" {
		err := yaml.Unmarshal(data, target)
		if err != nil {
			return fmt.Errorf("unmarshal error: %w", err)
		}

		return nil
	}

	pathObj, err := yaml.PathString(convertToYAMLPath(path))
	if err != nil {
		return fmt.Errorf("invalid path %q: %w", path, err)
	}

	err = pathObj.Read(bytes.NewReader(data), target)
	if err != nil {
		if yaml.IsNotFoundNodeError(err) {
			return fmt.Errorf("%w: %s", ErrPathNotFound, path)
		}

		return fmt.Errorf("reading path %q: %w", path, err)
	}

	return nil
}

// convertToYAMLPath converts a colon-separated path to goccy/go-yaml PathString format.
func convertToYAMLPath(path string) string {
	return "$." + strings.ReplaceAll(path, ":", ".")
}

func fromYAML(raw any) (document.Value, error) {
	switch val := raw.(type) {
	case yaml.MapSlice:
		entries := make([]document.Entry, 0, len(val))

		for _, item := range val {
			key := mapKey(item.Key)

			child, err := fromYAML(item.Value)
			if err != nil {
				return document.Null(), fmt.Errorf("key %q: %w", key, err)
			}

			entries = append(entries, document.Field(key, child))
		}

		return document.Map(entries...), nil
	case []any:
		items := make([]document.Value, len(val))

		for i, item := range val {
			child, err := fromYAML(item)
			if err != nil {
				return document.Null(), fmt.Errorf("index %d: %w", i, err)
			}

			items[i] = child
		}

		return document.List(items...), nil
	default:
		v, err := document.FromAny(raw)
		if err != nil {
			return document.Null(), fmt.Errorf("decoding value: %w", err)
		}

		return v, nil
	}
}

func mapKey(key any) string {
	switch k := key.(type) {
	case string:
		return k
	case nil:
		return "null"
	default:
		return fmt.Sprint(k)
	}
}

// floatScalar writes floats so that they are read back as floats.
type floatScalar float64

func (f floatScalar) MarshalYAML() ([]byte, error) {
	v := float64(f)

	switch {
	case math.IsNaN(v):
		return []byte(".nan"), nil
	case math.IsInf(v, 1):
		return []byte(".inf"), nil
	case math.IsInf(v, -1):
		return []byte("-.inf"), nil
	default:
	}

	text := strconv.FormatFloat(v, 'g', -1, 64)

	mantissa, exponent, hasExponent := strings.Cut(text, "e")
	if !strings.Contains(mantissa, ".") {
		mantissa += ".0"
	}

	if hasExponent {
		return []byte(mantissa + "e" + exponent), nil
	}

	return []byte(mantissa), nil
}

// reservedScalars are plain scalars that YAML resolves to something other
// than a string.
var reservedScalars = map[string]bool{ //nolint:gochecknoglobals
	"~": true, "null": true, "true": true, "false": true,
	"yes": true, "no": true, "on": true, "off": true, "y": true, "n": true,
	".inf": true, "+.inf": true, "-.inf": true, ".nan": true,
}

// quotedString is written in double-quoted form, which keeps control
// characters and reserved words intact.
type quotedString string

func (q quotedString) MarshalYAML() ([]byte, error) {
	return []byte(strconv.Quote(string(q))), nil
}

func needsQuoting(s string) bool {
	if s == "" || s != strings.TrimSpace(s) || reservedScalars[strings.ToLower(s)] {
		return true
	}

	if _, err := strconv.ParseFloat(s, 64); err == nil {
		return true
	}

	if _, err := strconv.ParseInt(s, 0, 64); err == nil {
		return true
	}

	return strings.IndexFunc(s, func(r rune) bool { return r < 0x20 || r == 0x7f }) >= 0
}

func toYAML(v document.Value) any {
	switch v.Kind() {
	case document.KindMapping:
		entries := v.Entries()
		out := make(yaml.MapSlice, len(entries))

		for i, e := range entries {
			out[i] = yaml.MapItem{Key: e.Key, Value: toYAML(e.Value)}
		}

		return out
	case document.KindSequence:
		items := v.Items()
		out := make([]any, len(items))

		for i, item := range items {
			out[i] = toYAML(item)
		}

		return out
	case document.KindFloat:
		f, _ := v.AsFloat()

		return floatScalar(f)
	case document.KindString:
		str, _ := v.AsString()
		if needsQuoting(str) {
			return quotedString(str)
		}

		return str
	case document.KindNull, document.KindBool, document.KindInt:
		return v.Interface()
	default:
		return nil
	}
}
