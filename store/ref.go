package store

import (
	"fmt"
	"path"
	"path/filepath"

	yamlcodec "github.com/subaru-pfs/instdata/codec/yaml"
)

// Kind is a top-level root of the instrument-data tree.
type Kind string

// Roots of the instrument-data tree.
const (
	KindConfig Kind = "config"
	KindData   Kind = "data"
)

// Extension is appended to every document name.
const Extension = yamlcodec.Extension

// ParseKind validates a root name.
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindConfig, KindData:
		return Kind(s), nil
	default:
		return "", fmt.Errorf("%w: unknown root %q", ErrInvalidRef, s)
	}
}

// Ref is a logical reference to a document: a root, an ordered list of
// subdirectory segments and a file stem.
type Ref struct {
	Kind   Kind
	SubDir []string
	Name   string
}

// ConfigRef references a document under the config root.
func ConfigRef(name string, subDir ...string) Ref {
	return Ref{Kind: KindConfig, SubDir: subDir, Name: name}
}

// DataRef references a document under the data root.
func DataRef(name string, subDir ...string) Ref {
	return Ref{Kind: KindData, SubDir: subDir, Name: name}
}

// Validate checks that the reference names a known root and a file.
func (r Ref) Validate() error {
	_, err := ParseKind(string(r.Kind))
	if err != nil {
		return err
	}

	if r.Name == "" {
		return fmt.Errorf("%w: empty file name", ErrInvalidRef)
	}

	return nil
}

// String renders the reference as a slash-separated relative path without extension.
func (r Ref) String() string {
	parts := append([]string{string(r.Kind)}, r.SubDir...)

	return path.Join(append(parts, r.Name)...)
}

// join maps the reference under base.
func (r Ref) join(base string) string {
	parts := make([]string, 0, len(r.SubDir)+3)
	parts = append(parts, base, string(r.Kind))
	parts = append(parts, r.SubDir...)
	parts = append(parts, r.Name+Extension)

	return filepath.Join(parts...)
}
