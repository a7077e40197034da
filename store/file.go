package store

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// FileMode is the permission used when a document is created.
const FileMode fs.FileMode = 0o644

// readFile reads a document. The handle is released on every exit path.
func readFile(fpath string) ([]byte, error) {
	cleanPath := filepath.Clean(fpath)

	file, err := os.Open(cleanPath) // #nosec G304 -- path is built from a validated reference
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %q", ErrNotFound, cleanPath)
		}

		return nil, fmt.Errorf("%w: opening %q: %w", ErrIO, cleanPath, err)
	}

	defer func() { _ = file.Close() }()

	stat, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("%w: stat %q: %w", ErrIO, cleanPath, err)
	}

	if stat.IsDir() {
		return nil, fmt.Errorf("%w: %q: %w", ErrIO, cleanPath, ErrPathIsDirectory)
	}

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %q: %w", ErrIO, cleanPath, err)
	}

	return data, nil
}

// writeFile truncates or creates the document and writes data. The parent
// directory must exist.
func writeFile(fpath string, data []byte) (err error) {
	cleanPath := filepath.Clean(fpath)

	file, err := os.OpenFile(cleanPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, FileMode) // #nosec G304
	if err != nil {
		return fmt.Errorf("%w: opening %q for writing: %w", ErrIO, cleanPath, err)
	}

	defer func() {
		closeErr := file.Close()
		if err == nil && closeErr != nil {
			err = fmt.Errorf("%w: closing %q: %w", ErrIO, cleanPath, closeErr)
		}
	}()

	_, err = file.Write(data)
	if err != nil {
		return fmt.Errorf("%w: writing %q: %w", ErrIO, cleanPath, err)
	}

	return nil
}
