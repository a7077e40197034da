package instdata

import (
	"github.com/subaru-pfs/instdata/server"
	"github.com/subaru-pfs/instdata/store"

	"go.uber.org/fx"
)

// Options holds configuration settings for the application.
type Options struct {
	Modules      []fx.Option
	StoreOptions []store.ModuleOption
	LogLevel     string
	LogFormat    string
}

// Option defines a function type for applying configuration options.
type Option func(*Options)

// WithModules adds Fx modules to the application.
func WithModules(modules ...fx.Option) Option {
	return func(opts *Options) {
		opts.Modules = append(opts.Modules, modules...)
	}
}

// WithBaseDir roots the store at dir instead of PFS_INSTDATA_DIR.
func WithBaseDir(dir string) Option {
	return func(opts *Options) {
		opts.StoreOptions = append(opts.StoreOptions, store.WithBaseDir(dir))
	}
}

// WithEnvironment reads PFS_INSTDATA_DIR through lookup. A nil lookup uses
// the process environment.
func WithEnvironment(lookup store.LookupFunc) Option {
	return func(opts *Options) {
		opts.StoreOptions = append(opts.StoreOptions, store.FromEnv(lookup))
	}
}

// WithHTTPListener adds the document service to the application.
// When options are provided (e.g., server.WithAddress), server.Config is
// supplied to DI automatically; otherwise it must be provided by a module.
func WithHTTPListener(opts ...server.Option) Option {
	return func(o *Options) {
		o.Modules = append(o.Modules, server.NewModule(opts...))
	}
}

// WithLogLevel sets the log level for the application.
// Valid levels are: "debug", "info", "warn", "error".
// If not set or invalid, defaults to "info".
func WithLogLevel(level string) Option {
	return func(opts *Options) {
		opts.LogLevel = level
	}
}

// WithLogFormat selects "json" (the default) or "text" output.
func WithLogFormat(format string) Option {
	return func(opts *Options) {
		opts.LogFormat = format
	}
}
