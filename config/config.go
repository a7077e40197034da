package config

import (
	"fmt"
	"log/slog"

	"github.com/subaru-pfs/instdata/store"
)

// Source decodes the colon-separated path of a referenced document into target.
type Source interface {
	Section(ref store.Ref, path string, target any) error
}

// Validator defines an interface for validating configuration structures.
type Validator interface {
	Validate() error
}

// Defaulter defines an interface for setting default values in configuration structures.
type Defaulter interface {
	SetDefaults() (changed bool)
}

// Load decodes the section, applies defaults and validates target.
func Load[T any](source Source, target *T, ref store.Ref, path string) (*T, error) {
	err := source.Section(ref, path, target)
	if err != nil {
		return nil, fmt.Errorf("loading %s section %q: %w", ref, path, err)
	}

	targetDefaulter, isDefaulter := any(target).(Defaulter)
	if isDefaulter {
		changed := targetDefaulter.SetDefaults()
		if changed {
			slog.Info("defaults applied", slog.String("ref", ref.String()), slog.String("path", path))
		}
	}

	targetValidatable, isValidatable := any(target).(Validator)
	if isValidatable {
		err := targetValidatable.Validate()
		if err != nil {
			return nil, fmt.Errorf("validating %s section %q: %w", ref, path, err)
		}
	}

	return target, nil
}

// Provider returns a constructor that loads the section of ref into target
// from a store. It is shaped for fx.Provide.
func Provider[T any](target *T, ref store.Ref, path string) func(*store.Store) (*T, error) {
	return func(s *store.Store) (*T, error) {
		return Load(s, target, ref, path)
	}
}
