package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/subaru-pfs/instdata/logging"
	"github.com/subaru-pfs/instdata/store"
)

// globalOptions are the persistent flags shared by every command.
type globalOptions struct {
	baseDir   string
	discover  bool
	logLevel  string
	logFormat string
	lookup    store.LookupFunc
}

func newRootCmd(lookup store.LookupFunc) *cobra.Command {
	opts := &globalOptions{lookup: lookup}

	rootCmd := &cobra.Command{
		Use:   "instdata",
		Short: "Access the PFS instrument configuration and data tree",
		Long: `instdata resolves, reads and writes the YAML documents kept under
$PFS_INSTDATA_DIR/config and $PFS_INSTDATA_DIR/data.

The base directory is taken from --base-dir, then from PFS_INSTDATA_DIR and,
with --discover, from the installation layout around the executable.`,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			logger := logging.NewLogger(logging.LoggerConfig{Level: opts.logLevel, Format: opts.logFormat},
				cmd.ErrOrStderr())
			slog.SetDefault(logger)
			slog.Debug("command started", slog.String("command", cmd.Name()))
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.baseDir, "base-dir", "", "base directory (overrides "+store.EnvVar+")")
	flags.BoolVar(&opts.discover, "discover", false, "fall back to the installation layout when "+store.EnvVar+" is unset")
	flags.StringVar(&opts.logLevel, "log-level", "warn", "log level: debug, info, warn, error")
	flags.StringVar(&opts.logFormat, "log-format", logging.FormatText, "log format: text or json")

	rootCmd.AddCommand(
		newPathCmd(opts),
		newGetCmd(opts),
		newPutCmd(opts),
		newEnvCmd(),
		newServeCmd(opts),
		newVersionCmd(),
	)

	return rootCmd
}

// locator resolves the base directory: --base-dir, then the environment,
// then discovery when requested.
//
//nolint:ireturn // callers only need the Locator behavior
func (o *globalOptions) locator() store.Locator {
	if o.baseDir != "" {
		return store.Static(o.baseDir)
	}

	locators := []store.Locator{store.Environment(o.lookup)}

	if o.discover {
		locators = append(locators, store.LocatorFunc(func() (string, error) {
			discovery, err := store.DiscoverFromExecutable()
			if err != nil {
				return "", err
			}

			return discovery.Root()
		}))
	}

	return store.Chain(locators...)
}

func (o *globalOptions) store() *store.Store {
	return store.New(o.locator())
}
