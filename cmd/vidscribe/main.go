package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"vidscribe/internal/services"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	cmd := newRootCommand()
	err := cmd.ExecuteContext(ctx)
	stop()
	os.Exit(exitCode(os.Stdout, err))
}

// reportedError marks an error whose diagnostic was already written.
type reportedError struct {
	err error
}

func (e *reportedError) Error() string { return e.err.Error() }

func (e *reportedError) Unwrap() error { return e.err }

// exitCode prints err unless it was already reported and maps it to a process
// exit status. Errors raised outside the pipeline are usage errors.
func exitCode(out io.Writer, err error) int {
	if err == nil {
		return services.ExitOK
	}
	var reported *reportedError
	if errors.As(err, &reported) {
		return services.ExitCode(reported.err)
	}
	if errors.Is(err, context.Canceled) {
		return services.ExitInterrupted
	}
	fmt.Fprintln(out, "Error:", err)
	return services.ExitUsage
}
