// Command topdown runs the TopDown differential privacy engine end to end:
// reading a census CSV, measuring it under a discrete noise mechanism,
// estimating non-negative integer vectors consistent with the tree's
// hierarchy, and writing synthetic microdata.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"

	"github.com/yiruzz/topdowndp/obslog"
	"github.com/yiruzz/topdowndp/topdownerr"
)

// CLI is the root command tree. Subcommands live in run.go/resume.go/extend.go.
var CLI struct {
	LogLevel  string `help:"Log level (debug, info, warn, error)." default:"info" enum:"debug,info,warn,error"`
	LogFormat string `help:"Log format." default:"text" enum:"text,json"`

	Run    RunCmd    `cmd:"" help:"Run a fresh TopDown pass from a CSV input and a config file."`
	Resume ResumeCmd `cmd:"" help:"Resume a TopDown pass from a checkpoint."`
	Extend ExtendCmd `cmd:"" help:"Extend a checkpointed tree to a deeper level and re-estimate."`
}

func main() {
	kctx := kong.Parse(&CLI,
		kong.Name("topdown"),
		kong.Description("TopDown differential privacy synthetic microdata engine."),
		kong.UsageOnError(),
	)

	obslog.Configure(obslog.ParseLevel(CLI.LogLevel), obslog.ParseFormat(CLI.LogFormat), nil)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := kctx.Run(ctx)
	os.Exit(exitCode(err))
}

// exitCode maps the engine's sentinel error kinds onto the CLI's exit code
// contract: 0 success, 1 configuration error, 2 input error, 3 infeasible
// constraints, 4 solver error, 5 interrupted.
func exitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		slog.Warn("run interrupted, checkpoint written")
		return 5
	case errors.Is(err, topdownerr.ErrInfeasible):
		slog.Error("infeasible constraints", "error", err)
		return 3
	case errors.Is(err, topdownerr.ErrSolver):
		slog.Error("solver error", "error", err)
		return 4
	case errors.Is(err, topdownerr.ErrInput):
		slog.Error("input error", "error", err)
		return 2
	case errors.Is(err, topdownerr.ErrConfig), errors.Is(err, topdownerr.ErrParameter), errors.Is(err, topdownerr.ErrState):
		slog.Error("configuration error", "error", err)
		return 1
	default:
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 1
	}
}
