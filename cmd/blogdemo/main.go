package main

import (
	"context"
	"fmt"
	goerrors "github.com/goliatone/go-errors"
	"io"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	os.Exit(run(ctx, os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the CLI and maps the error category to an exit code:
// 2 for invalid content or configuration, 1 for anything else.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	err := execute(ctx, args, stdout, stderr)
	switch {
	case err == nil:
		return 0
	case goerrors.IsCategory(err, goerrors.CategoryValidation):
		return 2
	default:
		return 1
	}
}

func execute(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	root := newRootCmd(stdout, stderr)
	root.SetArgs(args)
	err := root.ExecuteContext(ctx)
	if err != nil && !goerrors.IsWrapped(err) {
		// flag and argument errors never reach a RunE
		fmt.Fprintln(stderr, "Error:", err)
		return goerrors.Wrap(err, goerrors.CategoryCommand, "invalid usage").
			WithTextCode(commandUsageErrorCode)
	}
	return err
}
