package store

import (
	"errors"
	"fmt"
	"os"
)

// EnvVar is the environment variable holding the base directory.
const EnvVar = "PFS_INSTDATA_DIR"

// Locator establishes the base directory of the instrument-data tree.
type Locator interface {
	BaseDir() (string, error)
}

// LocatorFunc adapts a function to the Locator interface.
type LocatorFunc func() (string, error)

// BaseDir calls f.
func (f LocatorFunc) BaseDir() (string, error) {
	return f()
}

// LookupFunc reads an environment variable, like os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// Static returns a Locator for a fixed directory. An empty directory fails
// with ErrConfiguration on use.
func Static(dir string) Locator {
	return LocatorFunc(func() (string, error) {
		if dir == "" {
			return "", fmt.Errorf("%w: empty base directory", ErrConfiguration)
		}

		return dir, nil
	})
}

// Environment returns a Locator reading PFS_INSTDATA_DIR through lookup on
// every call, so a change of the variable affects subsequent resolutions.
// A nil lookup uses os.LookupEnv.
func Environment(lookup LookupFunc) Locator {
	if lookup == nil {
		lookup = os.LookupEnv
	}

	return LocatorFunc(func() (string, error) {
		return baseFromEnv(lookup)
	})
}

// Chain returns a Locator trying each locator in turn and using the first
// that succeeds.
func Chain(locators ...Locator) Locator {
	return LocatorFunc(func() (string, error) {
		errs := make([]error, 0, len(locators))

		for _, loc := range locators {
			dir, err := loc.BaseDir()
			if err == nil {
				return dir, nil
			}

			errs = append(errs, err)
		}

		if len(errs) == 0 {
			return "", fmt.Errorf("%w: no locator", ErrConfiguration)
		}

		return "", errors.Join(errs...)
	})
}

// baseFromEnv rejects an absent or empty variable and one still holding its
// own unexpanded reference.
func baseFromEnv(lookup LookupFunc) (string, error) {
	value, ok := lookup(EnvVar)

	switch {
	case !ok, value == "":
		return "", fmt.Errorf("%w: environment variable %s not set", ErrConfiguration, EnvVar)
	case value == "$"+EnvVar, value == "${"+EnvVar+"}":
		return "", fmt.Errorf("%w: environment variable %s not expanded", ErrConfiguration, EnvVar)
	default:
		return value, nil
	}
}

// Config holds the store configuration.
type Config struct {
	BaseDir string `yaml:"base_dir"`
}

// Validate validates the Config.
func (c *Config) Validate() error {
	if c.BaseDir == "" {
		return fmt.Errorf("%w: base directory must not be empty", ErrConfiguration)
	}

	return nil
}

// ConfigFromEnv reads PFS_INSTDATA_DIR once through lookup. A nil lookup
// uses os.LookupEnv.
func ConfigFromEnv(lookup LookupFunc) (Config, error) {
	if lookup == nil {
		lookup = os.LookupEnv
	}

	dir, err := baseFromEnv(lookup)
	if err != nil {
		return Config{}, err
	}

	return Config{BaseDir: dir}, nil
}
