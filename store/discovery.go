package store

import (
	"fmt"
	"os"
	"path/filepath"
)

// Discovery derives the base directory from where instdata is installed.
//
// Two layouts are recognized around Anchor (the directory holding the
// executable):
//   - repository: the parent of Anchor contains data/ and config/
//     (a binary built into <checkout>/bin);
//   - bundled: Anchor itself contains data/ and config/.
type Discovery struct {
	Anchor string
}

// DiscoverFromExecutable anchors discovery at the running executable's directory.
func DiscoverFromExecutable() (Discovery, error) {
	exe, err := os.Executable()
	if err != nil {
		return Discovery{}, fmt.Errorf("%w: locating executable: %w", ErrConfiguration, err)
	}

	resolved, err := filepath.EvalSymlinks(exe)
	if err == nil {
		exe = resolved
	}

	return Discovery{Anchor: filepath.Dir(exe)}, nil
}

func (d Discovery) repoRoot() string {
	return filepath.Dir(filepath.Clean(d.Anchor))
}

func (d Discovery) bundledRoot() string {
	return filepath.Clean(d.Anchor)
}

// Root returns the base directory, preferring the repository layout over the
// bundled one.
func (d Discovery) Root() (string, error) {
	for _, root := range []string{d.repoRoot(), d.bundledRoot()} {
		if isDir(filepath.Join(root, string(KindData))) && isDir(filepath.Join(root, string(KindConfig))) {
			return root, nil
		}
	}

	return "", fmt.Errorf("%w: no data and config directories near %q", ErrConfiguration, d.Anchor)
}

// DataDir returns the data directory, preferring the bundled copy.
func (d Discovery) DataDir() (string, error) {
	return d.rootDir(KindData)
}

// ConfigDir returns the config directory, preferring the bundled copy.
func (d Discovery) ConfigDir() (string, error) {
	return d.rootDir(KindConfig)
}

func (d Discovery) rootDir(kind Kind) (string, error) {
	for _, root := range []string{d.bundledRoot(), d.repoRoot()} {
		dir := filepath.Join(root, string(kind))
		if isDir(dir) {
			return dir, nil
		}
	}

	return "", fmt.Errorf("%w: no %s directory near %q", ErrConfiguration, kind, d.Anchor)
}

// Env returns the environment that points legacy tools at the discovered root.
func (d Discovery) Env() (map[string]string, error) {
	root, err := d.Root()
	if err != nil {
		return nil, err
	}

	return map[string]string{EnvVar: root}, nil
}

// BaseDir implements Locator.
func (d Discovery) BaseDir() (string, error) {
	return d.Root()
}

func isDir(p string) bool {
	stat, err := os.Stat(p)

	return err == nil && stat.IsDir()
}
