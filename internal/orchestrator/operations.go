package orchestrator

import (
	"context"
	"errors"
	"fmt"

	"composectl/internal/containerizer"
	"composectl/internal/reporting"
)

// Logs streams the log output of one service's container to the terminal.
// The container name is the service name, so no roster lookup is needed.
func (o *Orchestrator) Logs(ctx context.Context, service string, follow bool) error {
	if _, ok := o.cfg.Services[service]; !ok {
		return &ServiceNotFoundError{Name: service}
	}
	return o.runtime.StreamLogs(ctx, service, follow)
}

// Exec runs a command inside a service's container with the terminal
// attached. An empty command defaults to an interactive shell.
func (o *Orchestrator) Exec(ctx context.Context, service string, command []string) error {
	if _, ok := o.cfg.Services[service]; !ok {
		return &ServiceNotFoundError{Name: service}
	}
	if len(command) == 0 {
		command = []string{"sh"}
	}

	err := o.runtime.ExecInteractive(ctx, service, command)
	if err != nil {
		var invErr *containerizer.InvocationError
		if errors.As(err, &invErr) {
			return fmt.Errorf("command failed in container %q with exit code %d", service, invErr.ExitCode)
		}
		return err
	}
	return nil
}

// Pull fetches the image of one service, or of every configured service in
// declared order when service is empty. The first failure aborts the rest.
func (o *Orchestrator) Pull(ctx context.Context, service string) error {
	var names []string
	if service != "" {
		if _, ok := o.cfg.Services[service]; !ok {
			return &ServiceNotFoundError{Name: service}
		}
		names = []string{service}
	} else {
		names = o.cfg.ServiceOrder
	}

	for _, name := range names {
		image := o.cfg.Services[name].Image
		o.reporter.Report(reporting.InfoUpdate(fmt.Sprintf("Pulling image for service %q", name)))
		if err := o.runtime.PullImage(ctx, image); err != nil {
			return fmt.Errorf("failed to pull image %q: %w", image, err)
		}
		o.reporter.Report(reporting.SuccessUpdate("Successfully pulled: " + image))
	}

	o.reporter.Report(reporting.SuccessUpdate("All images pulled successfully"))
	return nil
}
