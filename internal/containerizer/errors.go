package containerizer

import (
	"errors"
	"fmt"
	"strings"
)

// ErrTimeout signals that a bounded runtime invocation exceeded its
// deadline. Callers escalate on it instead of reporting a failure.
var ErrTimeout = errors.New("runtime command timed out")

// InvocationError is a runtime command that ran and exited nonzero.
type InvocationError struct {
	Args     []string
	ExitCode int
	Stderr   string
}

func (e *InvocationError) Error() string {
	msg := fmt.Sprintf("runtime command %q failed with exit code %d", strings.Join(e.Args, " "), e.ExitCode)
	if stderr := strings.TrimSpace(e.Stderr); stderr != "" {
		msg += ": " + stderr
	}
	return msg
}

// absencePatterns are the stderr fragments the runtime emits when asked
// to act on a container it has no record of.
var absencePatterns = []string{
	"no such container",
	"not found",
}

// IsAbsent reports whether err indicates the container does not exist.
// Absence is a benign outcome at every stage of the stop protocol, never
// a failure.
func IsAbsent(err error) bool {
	var invErr *InvocationError
	if !errors.As(err, &invErr) {
		return false
	}
	stderr := strings.ToLower(invErr.Stderr)
	for _, pattern := range absencePatterns {
		if strings.Contains(stderr, pattern) {
			return true
		}
	}
	return false
}
