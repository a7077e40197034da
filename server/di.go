package server

import (
	"log/slog"
	"net/http"

	"go.uber.org/fx"

	"github.com/subaru-pfs/instdata/store"
)

// NewModule creates an Fx module serving the *store.Store of the container.
// If any options are passed, the module supplies Config from those options.
// Otherwise, Config must be provided externally.
//
//nolint:ireturn // fx.Option is the standard return type for Fx modules
func NewModule(opts ...Option) fx.Option {
	var moduleOpts []fx.Option

	if len(opts) > 0 {
		var cfg Config

		for _, apply := range opts {
			apply(&cfg)
		}

		moduleOpts = append(moduleOpts, fx.Supply(cfg))
	}

	moduleOpts = append(moduleOpts,
		fx.Provide(NewHandler),
		fx.Provide(func(
			lifecycle fx.Lifecycle, shutdowner fx.Shutdowner, cfg Config, handler http.Handler, docs *store.Store,
		) (*Server, error) {
			srv, err := NewServer(handler, docs, cfg, func() {
				shutdownErr := shutdowner.Shutdown()
				if shutdownErr != nil {
					slog.Error("failed to trigger shutdown", "error", shutdownErr)
				}
			})
			if err != nil {
				return nil, err
			}

			lifecycle.Append(fx.Hook{
				OnStart: srv.Start,
				OnStop:  srv.Stop,
			})

			return srv, nil
		}),
		fx.Invoke(func(*Server) {}),
	)

	return fx.Module("server", moduleOpts...)
}
