package orchestrator

import (
	"context"
	"fmt"
	"time"

	"composectl/internal/containerizer"
	"composectl/internal/reporting"
)

// fakeRuntime is a scripted containerizer.ContainerRuntime that records
// every call in order.
type fakeRuntime struct {
	// calls holds one entry per invocation, e.g. "run web" or "stop db".
	calls []string

	// Function hooks for testing
	runFunc    func(ctx context.Context, cfg containerizer.RunConfig) (string, error)
	stopFunc   func(ctx context.Context, name string, timeout time.Duration) error
	killFunc   func(ctx context.Context, name string) error
	removeFunc func(ctx context.Context, name string) error
	listFunc   func(ctx context.Context, includeStopped bool) ([]containerizer.ContainerInfo, error)
	logsFunc   func(ctx context.Context, name string, follow bool) error
	execFunc   func(ctx context.Context, name string, command []string) error
	pullFunc   func(ctx context.Context, image string) error
}

func (f *fakeRuntime) record(format string, args ...interface{}) {
	f.calls = append(f.calls, fmt.Sprintf(format, args...))
}

// callsMatching returns the recorded calls whose first word equals verb.
func (f *fakeRuntime) callsMatching(verb string) []string {
	var matched []string
	prefix := verb + " "
	for _, call := range f.calls {
		if call == verb || len(call) > len(prefix) && call[:len(prefix)] == prefix {
			matched = append(matched, call)
		}
	}
	return matched
}

func (f *fakeRuntime) RunDetached(ctx context.Context, cfg containerizer.RunConfig) (string, error) {
	f.record("run %s", cfg.Name)
	if f.runFunc != nil {
		return f.runFunc(ctx, cfg)
	}
	return cfg.Name + "-id", nil
}

func (f *fakeRuntime) StopContainer(ctx context.Context, name string, timeout time.Duration) error {
	f.record("stop %s", name)
	if f.stopFunc != nil {
		return f.stopFunc(ctx, name, timeout)
	}
	return nil
}

func (f *fakeRuntime) KillContainer(ctx context.Context, name string) error {
	f.record("kill %s", name)
	if f.killFunc != nil {
		return f.killFunc(ctx, name)
	}
	return nil
}

func (f *fakeRuntime) RemoveContainer(ctx context.Context, name string) error {
	f.record("rm %s", name)
	if f.removeFunc != nil {
		return f.removeFunc(ctx, name)
	}
	return nil
}

func (f *fakeRuntime) ListContainers(ctx context.Context, includeStopped bool) ([]containerizer.ContainerInfo, error) {
	f.record("list %t", includeStopped)
	if f.listFunc != nil {
		return f.listFunc(ctx, includeStopped)
	}
	return nil, nil
}

func (f *fakeRuntime) StreamLogs(ctx context.Context, name string, follow bool) error {
	f.record("logs %s %t", name, follow)
	if f.logsFunc != nil {
		return f.logsFunc(ctx, name, follow)
	}
	return nil
}

func (f *fakeRuntime) ExecInteractive(ctx context.Context, name string, command []string) error {
	f.record("exec %s %v", name, command)
	if f.execFunc != nil {
		return f.execFunc(ctx, name, command)
	}
	return nil
}

func (f *fakeRuntime) PullImage(ctx context.Context, image string) error {
	f.record("pull %s", image)
	if f.pullFunc != nil {
		return f.pullFunc(ctx, image)
	}
	return nil
}

// recordingReporter captures updates and table rows for assertions.
type recordingReporter struct {
	updates []reporting.Update
	rows    []reporting.StatusRow
}

func (r *recordingReporter) Report(update reporting.Update) {
	r.updates = append(r.updates, update)
}

func (r *recordingReporter) Table(rows []reporting.StatusRow) {
	r.rows = rows
}

func (r *recordingReporter) messagesAt(level reporting.Level) []string {
	var messages []string
	for _, update := range r.updates {
		if update.Level == level {
			messages = append(messages, update.Message)
		}
	}
	return messages
}
