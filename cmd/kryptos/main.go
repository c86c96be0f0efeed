// Command kryptos is the scytale workbench CLI and API server.
package main

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/matzehuels/kryptos/internal/cli"
	"github.com/matzehuels/kryptos/pkg/errors"
)

// Exit codes. Usage errors (bad flags, bad input, bad config) are told
// apart from runtime failures so scripts can branch on them.
const (
	exitOK          = 0
	exitFailure     = 1
	exitUsage       = 2
	exitInterrupted = 130
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, os.Args[1:])
	stop()
	os.Exit(report(os.Stderr, err))
}

// run builds the command tree and executes args. --verbose is parsed by
// cobra before any command runs, so the level is applied in the root's
// pre-run hook ahead of the hook that attaches the logger to the context.
func run(ctx context.Context, args []string) error {
	var verbose bool

	c := cli.New(os.Stderr, cli.LogInfo)
	root := c.RootCommand()
	root.SetArgs(args)
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging (grid builds, store lookups, requests)")

	attachLogger := root.PersistentPreRunE
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if verbose {
			c.SetLogLevel(cli.LogDebug)
		}
		if attachLogger == nil {
			return nil
		}
		return attachLogger(cmd, args)
	}

	return root.ExecuteContext(ctx)
}

// report prints err to w and returns the process exit code for it.
func report(w io.Writer, err error) int {
	if err == nil {
		return exitOK
	}
	if stderrors.Is(err, context.Canceled) {
		return exitInterrupted
	}
	fmt.Fprintln(w, "kryptos:", err)
	return exitCode(err)
}

func exitCode(err error) int {
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidDiameter, errors.ErrCodeInvalidKey,
		errors.ErrCodeInvalidJSON, errors.ErrCodeInvalidConfig:
		return exitUsage
	}
	return exitFailure
}
