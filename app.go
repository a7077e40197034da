package instdata

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/subaru-pfs/instdata/logging"
	"github.com/subaru-pfs/instdata/store"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
)

var errAppNotInitialized = errors.New("app not initialized")

// App wires logging, the document store and any extra modules into an Fx
// application.
type App struct {
	app *fx.App
}

// NewApp creates a new instance of App with Fx configured.
// Without WithBaseDir or WithEnvironment the store reads PFS_INSTDATA_DIR
// from the process environment when first requested.
func NewApp(opts ...Option) *App {
	var options Options

	for _, apply := range opts {
		apply(&options)
	}

	return &App{
		app: configure(&options),
	}
}

func configure(options *Options) *fx.App {
	loggerCfg := logging.LoggerConfig{Level: options.LogLevel, Format: options.LogFormat}

	logger := logging.NewLogger(loggerCfg, os.Stderr)
	slog.SetDefault(logger)

	storeOpts := options.StoreOptions
	if len(storeOpts) == 0 {
		storeOpts = []store.ModuleOption{store.FromEnv(nil)}
	}

	return fx.New(
		fx.WithLogger(func() fxevent.Logger {
			return &fxevent.SlogLogger{Logger: logger}
		}),
		fx.Supply(loggerCfg),
		fx.Supply(logger),
		store.NewModule(storeOpts...),
		fx.Options(options.Modules...),
	)
}

// Err returns any error encountered while building the dependency graph.
func (app *App) Err() error {
	if app == nil || app.app == nil {
		return errAppNotInitialized
	}

	return app.app.Err()
}

// Start starts the Fx application.
func (app *App) Start() error {
	if app == nil || app.app == nil {
		return errAppNotInitialized
	}

	err := app.app.Start(context.Background())
	if err != nil {
		return fmt.Errorf("failed to start app: %w", err)
	}

	return nil
}

// Wait returns a channel receiving the signal that asks the application to
// shut down, either from the OS or from a module calling fx.Shutdowner.
func (app *App) Wait() <-chan fx.ShutdownSignal {
	if app == nil || app.app == nil {
		closed := make(chan fx.ShutdownSignal)
		close(closed)

		return closed
	}

	return app.app.Wait()
}

// Run starts the application and blocks until an OS signal is received, then shuts down gracefully.
func (app *App) Run() {
	if app == nil || app.app == nil {
		slog.Error("attempted to run an uninitialized app")

		return
	}

	app.app.Run()
}

// Stop stops the Fx application gracefully.
func (app *App) Stop() error {
	if app == nil || app.app == nil {
		return errAppNotInitialized
	}

	err := app.app.Stop(context.Background())
	if err != nil {
		return fmt.Errorf("failed to stop app: %w", err)
	}

	return nil
}
