package store

import (
	"go.uber.org/fx"
)

// ModuleOption configures how NewModule obtains the store Config.
type ModuleOption func(*moduleOptions)

type moduleOptions struct {
	cfg     *Config
	fromEnv bool
	lookup  LookupFunc
}

// WithBaseDir supplies a fixed base directory.
func WithBaseDir(dir string) ModuleOption {
	return func(o *moduleOptions) {
		o.cfg = &Config{BaseDir: dir}
		o.fromEnv = false
	}
}

// FromEnv reads PFS_INSTDATA_DIR once through lookup when the container starts.
// A nil lookup uses os.LookupEnv.
func FromEnv(lookup LookupFunc) ModuleOption {
	return func(o *moduleOptions) {
		o.cfg = nil
		o.fromEnv = true
		o.lookup = lookup
	}
}

// NewModule creates an Fx module providing *Store.
// With WithBaseDir or FromEnv the module supplies Config itself;
// otherwise Config must be provided externally (e.g., with fx.Supply).
//
//nolint:ireturn // fx.Option is the standard return type for Fx modules
func NewModule(opts ...ModuleOption) fx.Option {
	var options moduleOptions

	for _, apply := range opts {
		apply(&options)
	}

	moduleOpts := []fx.Option{fx.Provide(NewFromConfig)}

	switch {
	case options.cfg != nil:
		moduleOpts = append(moduleOpts, fx.Supply(*options.cfg))
	case options.fromEnv:
		lookup := options.lookup
		moduleOpts = append(moduleOpts, fx.Provide(func() (Config, error) {
			return ConfigFromEnv(lookup)
		}))
	default:
	}

	return fx.Module("store", moduleOpts...)
}
