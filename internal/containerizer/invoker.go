package containerizer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
)

// invoker runs a single runtime command per call. Two modes: captured
// (for output the engine parses) and interactive (inherited terminal I/O
// for logs -f and exec). Bounded waits are expressed through the context
// deadline; expiry surfaces as ErrTimeout so callers can escalate rather
// than just report.
type invoker struct {
	binary string
}

func (v invoker) captured(ctx context.Context, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, v.binary, args...)

	var stdoutBuf, stderrBuf bytes.Buffer
	cmd.Stdout = &stdoutBuf
	cmd.Stderr = &stderrBuf

	runErr := cmd.Run()

	if ctx.Err() == context.DeadlineExceeded {
		return "", ErrTimeout
	}

	if runErr != nil {
		var exitErr *exec.ExitError
		if errors.As(runErr, &exitErr) {
			return stdoutBuf.String(), &InvocationError{
				Args:     args,
				ExitCode: exitErr.ExitCode(),
				Stderr:   stderrBuf.String(),
			}
		}
		return "", fmt.Errorf("executing %s: %w", v.binary, runErr)
	}

	return stdoutBuf.String(), nil
}

func (v invoker) interactive(ctx context.Context, args ...string) error {
	cmd := exec.CommandContext(ctx, v.binary, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	runErr := cmd.Run()
	if runErr != nil {
		var exitErr *exec.ExitError
		if errors.As(runErr, &exitErr) {
			return &InvocationError{
				Args:     args,
				ExitCode: exitErr.ExitCode(),
			}
		}
		return fmt.Errorf("executing %s: %w", v.binary, runErr)
	}

	return nil
}
