// Package yaml serializes instrument-data documents as YAML.
//
// It uses github.com/goccy/go-yaml. Mappings are decoded as ordered maps so
// that key order survives a load/dump cycle, and floats are always written
// with a fractional part so they read back as floats.
//
// Besides whole-document Decode/Encode, Parse decodes a section of a
// document into a typed Go value using a colon-separated path, which is
// converted to a YAML path internally:
//   - Empty path "" -> entire document
//   - Single key "key" -> "$.key"
//   - Nested path "motor:theta" -> "$.motor.theta"
package yaml
