// Command instdata resolves, reads and writes documents of the PFS
// instrument-data tree and serves them over HTTP.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/subaru-pfs/instdata/store"
)

const (
	exitFailure       = 1
	exitConfiguration = 2
	exitNotFound      = 3
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := newRootCmd(os.LookupEnv).ExecuteContext(ctx)

	stop()

	if err != nil {
		fmt.Fprintf(os.Stderr, "instdata: %v\n", err)
		os.Exit(exitCode(err))
	}
}

func exitCode(err error) int {
	switch {
	case errors.Is(err, store.ErrConfiguration):
		return exitConfiguration
	case errors.Is(err, store.ErrNotFound):
		return exitNotFound
	default:
		return exitFailure
	}
}
