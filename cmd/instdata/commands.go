package main

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/subaru-pfs/instdata"
	"github.com/subaru-pfs/instdata/server"
	"github.com/subaru-pfs/instdata/store"
)

func newEnvCmd() *cobra.Command {
	var anchor string

	cmd := &cobra.Command{
		Use:     "env",
		Short:   "Print shell exports pointing at the installed instrument-data tree",
		Example: `  eval "$(instdata env)"`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			discovery := store.Discovery{Anchor: anchor}

			if anchor == "" {
				var err error

				discovery, err = store.DiscoverFromExecutable()
				if err != nil {
					return err
				}
			}

			env, err := discovery.Env()
			if err != nil {
				return err
			}

			for _, key := range slices.Sorted(maps.Keys(env)) {
				_, err = fmt.Fprintf(cmd.OutOrStdout(), "export %s=%s\n", key, shellQuote(env[key]))
				if err != nil {
					return err
				}
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&anchor, "anchor", "", "directory to discover from instead of the executable's")
	_ = cmd.Flags().MarkHidden("anchor")

	return cmd
}

func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

func newServeCmd(opts *globalOptions) *cobra.Command {
	var (
		addr     string
		readOnly bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve documents over HTTP",
		Long: `serve exposes GET /{config|data}/{subdir...}/{name} and PUT /data/{subdir...}/{name}
until interrupted.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			base, err := opts.locator().BaseDir()
			if err != nil {
				return err
			}

			app := instdata.NewApp(
				instdata.WithLogLevel(opts.logLevel),
				instdata.WithLogFormat(opts.logFormat),
				instdata.WithBaseDir(base),
				instdata.WithHTTPListener(server.WithAddress(addr), server.WithReadOnly(readOnly)),
			)

			err = app.Start()
			if err != nil {
				return err
			}

			select {
			case <-cmd.Context().Done():
			case <-app.Wait():
			}

			return app.Stop()
		},
	}

	cmd.Flags().StringVar(&addr, "addr", server.DefaultAddress, "listen address")
	cmd.Flags().BoolVar(&readOnly, "read-only", false, "reject PUT requests")

	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "instdata %s (compiled %s)\n", instdata.Version, instdata.CompiledAt)

			return err
		},
	}
}
