package store

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	yamlcodec "github.com/subaru-pfs/instdata/codec/yaml"
	"github.com/subaru-pfs/instdata/document"
)

// Codec serializes documents and decodes typed sections of them.
type Codec interface {
	Decode(data []byte) (document.Value, error)
	Encode(doc document.Value) ([]byte, error)
	Parse(data []byte, target any, path string) error
}

// Option configures a Store.
type Option func(*Store)

// WithCodec replaces the default YAML codec.
func WithCodec(codec Codec) Option {
	return func(s *Store) {
		s.codec = codec
	}
}

// Store reads and writes documents of the instrument-data tree.
// It holds no mutable state and is safe for concurrent use.
type Store struct {
	locator Locator
	codec   Codec
}

// New creates a Store resolving its base directory through locator.
func New(locator Locator, opts ...Option) *Store {
	s := &Store{
		locator: locator,
		codec:   yamlcodec.NewCodec(),
	}

	for _, apply := range opts {
		apply(s)
	}

	return s
}

// NewFromConfig validates cfg and creates a Store on its base directory.
func NewFromConfig(cfg Config) (*Store, error) {
	err := cfg.Validate()
	if err != nil {
		return nil, err
	}

	return New(Static(cfg.BaseDir)), nil
}

// BaseDir returns the base directory currently established by the locator.
func (s *Store) BaseDir() (string, error) {
	if s == nil || s.locator == nil {
		return "", fmt.Errorf("%w: no locator", ErrConfiguration)
	}

	return s.locator.BaseDir()
}

// CheckBaseDir resolves the base directory and confirms it exists and is a
// directory. It returns the resolved path.
func (s *Store) CheckBaseDir() (string, error) {
	base, err := s.BaseDir()
	if err != nil {
		return "", err
	}

	info, err := os.Stat(base)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrConfiguration, err)
	}

	if !info.IsDir() {
		return "", fmt.Errorf("%w: %s is not a directory", ErrConfiguration, base)
	}

	return base, nil
}

// Path resolves ref to an absolute document path. It touches no file.
func (s *Store) Path(ref Ref) (string, error) {
	base, err := s.BaseDir()
	if err != nil {
		return "", err
	}

	err = ref.Validate()
	if err != nil {
		return "", err
	}

	return ref.join(base), nil
}

// ResolvePath maps (kind, subDir, name) to <base>/<kind>/<subDir...>/<name>.yaml.
func (s *Store) ResolvePath(kind Kind, subDir []string, name string) (string, error) {
	return s.Path(Ref{Kind: kind, SubDir: subDir, Name: name})
}

// Load reads and parses the document referenced by ref.
func (s *Store) Load(ref Ref) (document.Value, error) {
	fpath, err := s.Path(ref)
	if err != nil {
		return document.Null(), err
	}

	data, err := readFile(fpath)
	if err != nil {
		return document.Null(), err
	}

	doc, err := s.codec.Decode(data)
	if err != nil {
		return document.Null(), fmt.Errorf("%w: %q: %w", ErrParse, fpath, err)
	}

	slog.Debug("document loaded", slog.String("ref", ref.String()), slog.String("path", fpath))

	return doc, nil
}

// Dump serializes doc to the document referenced by ref, replacing any
// existing file. The parent directory must exist.
func (s *Store) Dump(ref Ref, doc document.Value) error {
	fpath, err := s.Path(ref)
	if err != nil {
		return err
	}

	data, err := s.codec.Encode(doc)
	if err != nil {
		return fmt.Errorf("%w: encoding %q: %w", ErrIO, fpath, err)
	}

	err = writeFile(fpath, data)
	if err != nil {
		return err
	}

	slog.Debug("document written", slog.String("ref", ref.String()), slog.String("path", fpath),
		slog.Int("bytes", len(data)))

	return nil
}

// Section decodes the colon-separated path of the referenced document into
// target. An empty path decodes the whole document.
func (s *Store) Section(ref Ref, path string, target any) error {
	fpath, err := s.Path(ref)
	if err != nil {
		return err
	}

	data, err := readFile(fpath)
	if err != nil {
		return err
	}

	err = s.codec.Parse(data, target, path)
	if err != nil {
		if errors.Is(err, yamlcodec.ErrPathNotFound) {
			return fmt.Errorf("%w: %q in %q", ErrNotFound, path, fpath)
		}

		return fmt.Errorf("%w: %q: %w", ErrParse, fpath, err)
	}

	return nil
}

// Exists reports whether the referenced document is present.
func (s *Store) Exists(ref Ref) (bool, error) {
	fpath, err := s.Path(ref)
	if err != nil {
		return false, err
	}

	stat, err := os.Stat(fpath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}

		return false, fmt.Errorf("%w: stat %q: %w", ErrIO, fpath, err)
	}

	return !stat.IsDir(), nil
}

// LoadDocument reads the document <kind>/<subDir...>/<name>.
func (s *Store) LoadDocument(kind Kind, name string, subDir ...string) (document.Value, error) {
	return s.Load(Ref{Kind: kind, SubDir: subDir, Name: name})
}

// DumpDocument writes doc to <kind>/<subDir...>/<name>.
func (s *Store) DumpDocument(kind Kind, name string, doc document.Value, subDir ...string) error {
	return s.Dump(Ref{Kind: kind, SubDir: subDir, Name: name}, doc)
}

// LoadConfig reads a document from the config root.
func (s *Store) LoadConfig(name string, subDir ...string) (document.Value, error) {
	return s.Load(ConfigRef(name, subDir...))
}

// LoadData reads a document from the data root.
func (s *Store) LoadData(name string, subDir ...string) (document.Value, error) {
	return s.Load(DataRef(name, subDir...))
}

// DumpData writes a document to the data root.
func (s *Store) DumpData(name string, doc document.Value, subDir ...string) error {
	return s.Dump(DataRef(name, subDir...), doc)
}
