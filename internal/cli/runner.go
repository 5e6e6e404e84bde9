// Package cli wires the tada command tree.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Makepad-fr/tada/internal/ui"
)

// Options tune output behavior from root flags.
type Options struct {
	Group bool // list grouped by pending/done
}

// exitError carries the process exit code for a failure.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }
func (e *exitError) ExitCode() int { return e.code }

// usageError reports bad invocation (exit code 2).
func usageError(format string, args ...any) error {
	return &exitError{code: 2, err: fmt.Errorf(format, args...)}
}

// Run executes args and returns an exit code (0 ok, 1 error, 2 usage).
func Run(args []string) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	a := &app{}
	defer a.close()

	root := newRootCmd(a)
	root.SetArgs(args)
	root.SetOut(os.Stdout)
	root.SetErr(os.Stderr)

	err := root.ExecuteContext(ctx)
	if err == nil {
		return 0
	}
	ui.Fail(os.Stderr, err.Error())

	var exitErr interface{ ExitCode() int }
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	if strings.HasPrefix(err.Error(), "unknown command") || strings.HasPrefix(err.Error(), "unknown flag") {
		return 2
	}
	return 1
}

// between validates the positional argument count, reporting the usage line
// on mismatch.
func between(lo, hi int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) < lo || (hi >= 0 && len(args) > hi) {
			return usageError("usage: %s", cmd.UseLine())
		}
		return nil
	}
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:               "tada",
		Short:             "tada - a tiny todo manager and calculator",
		SilenceUsage:      true,
		SilenceErrors:     true,
		CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},
		Example: `  tada add "Buy milk"
  tada ls
  tada done 2
  tada mv 3 1
  tada calc --keys "12+3="`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.open(cmd.Context())
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.Help()
			return &exitError{code: 2, err: errors.New("missing subcommand")}
		},
	}
	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return usageError("%v", err)
	})

	// Root flags (apply to every subcommand)
	pf := root.PersistentFlags()
	pf.StringVar(&a.configPath, "config", "", "config file (default ~/.config/tada/config.toml)")
	pf.StringVar(&a.backend, "backend", "", "store backend: json or sqlite")
	pf.StringVar(&a.dataDir, "data-dir", "", "directory holding the store (default: current directory)")
	pf.BoolVar(&a.opts.Group, "group", false, "group output by pending/done")
	pf.BoolVar(&a.noColor, "no-color", false, "disable colors")
	pf.BoolVar(&a.forceColor, "color", false, "force colors even when not a terminal")

	root.AddCommand(
		newAddCmd(a),
		newListCmd(a),
		newDoneCmd(a),
		newEditCmd(a),
		newRemoveCmd(a),
		newMoveCmd(a),
		newClearCmd(a),
		newThemeCmd(a),
		newCalcCmd(a),
		newExportCmd(a),
	)
	return root
}
