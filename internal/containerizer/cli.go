package containerizer

import (
	"context"
	"errors"
	"strings"
	"time"

	"composectl/pkg/logging"
)

// CLIRuntime drives the runtime binary through its command-line
// interface. Roster queries are a best-effort parse of the binary's
// human-readable list output; the runtime offers no structured mode.
type CLIRuntime struct {
	inv invoker

	// echo, when set, receives the rendered command line just before each
	// invocation. The orchestrator wires it to the reporter's verbose
	// command channel.
	echo func(cmdline string)
}

var _ ContainerRuntime = (*CLIRuntime)(nil)

// NewCLIRuntime creates a CLIRuntime for the given binary name. echo may
// be nil.
func NewCLIRuntime(binary string, echo func(cmdline string)) *CLIRuntime {
	return &CLIRuntime{
		inv:  invoker{binary: binary},
		echo: echo,
	}
}

func (r *CLIRuntime) announce(args []string) {
	if r.echo != nil {
		r.echo(r.inv.binary + " " + strings.Join(args, " "))
	}
}

// RunDetached starts a container and returns the identifier the runtime
// prints on stdout.
func (r *CLIRuntime) RunDetached(ctx context.Context, cfg RunConfig) (string, error) {
	args := []string{"run", "--detach", "--name", cfg.Name}
	for _, mount := range cfg.Mounts {
		args = append(args, "--volume", mount)
	}
	for _, env := range cfg.Env {
		args = append(args, "--env", env)
	}
	if cfg.WorkDir != "" {
		args = append(args, "--workdir", cfg.WorkDir)
	}
	args = append(args, cfg.Image)
	args = append(args, cfg.Command...)

	r.announce(args)
	out, err := r.inv.captured(ctx, args...)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// StopContainer requests a graceful stop. With timeout > 0 the wait is
// bounded; expiry yields ErrTimeout and abandons the stop attempt.
func (r *CLIRuntime) StopContainer(ctx context.Context, name string, timeout time.Duration) error {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	r.announce([]string{"stop", name})
	_, err := r.inv.captured(ctx, "stop", name)
	return err
}

func (r *CLIRuntime) KillContainer(ctx context.Context, name string) error {
	r.announce([]string{"kill", name})
	_, err := r.inv.captured(ctx, "kill", name)
	return err
}

func (r *CLIRuntime) RemoveContainer(ctx context.Context, name string) error {
	r.announce([]string{"rm", name})
	_, err := r.inv.captured(ctx, "rm", name)
	return err
}

// ListContainers queries the runtime's roster. A roster query the runtime
// rejects is treated as an empty roster: the callers' job is classifying
// configured services, and an unreadable roster classifies everything as
// absent, same as the runtime having no containers.
func (r *CLIRuntime) ListContainers(ctx context.Context, includeStopped bool) ([]ContainerInfo, error) {
	args := []string{"list"}
	if includeStopped {
		args = append(args, "--all")
	}

	r.announce(args)
	out, err := r.inv.captured(ctx, args...)
	if err != nil {
		var invErr *InvocationError
		if errors.As(err, &invErr) {
			logging.Debug("CLIRuntime", "list command failed, treating roster as empty: %v", err)
			return nil, nil
		}
		return nil, err
	}

	return parseContainerList(out), nil
}

// parseContainerList extracts names and images from the runtime's
// columnar list output: one header line, then one container per line with
// the name in the first whitespace-delimited column and the image in the
// second.
func parseContainerList(out string) []ContainerInfo {
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) <= 1 {
		return nil
	}

	var infos []ContainerInfo
	for _, line := range lines[1:] {
		if strings.TrimSpace(line) == "" {
			continue
		}
		fields := strings.Fields(line)
		info := ContainerInfo{Name: fields[0]}
		if len(fields) > 1 {
			info.Image = fields[1]
		}
		infos = append(infos, info)
	}
	return infos
}

func (r *CLIRuntime) StreamLogs(ctx context.Context, name string, follow bool) error {
	args := []string{"logs"}
	if follow {
		args = append(args, "-f")
	}
	args = append(args, name)

	r.announce(args)
	return r.inv.interactive(ctx, args...)
}

func (r *CLIRuntime) ExecInteractive(ctx context.Context, name string, command []string) error {
	args := append([]string{"exec", name}, command...)

	r.announce(args)
	return r.inv.interactive(ctx, args...)
}

func (r *CLIRuntime) PullImage(ctx context.Context, image string) error {
	args := []string{"images", "pull", image}

	r.announce(args)
	_, err := r.inv.captured(ctx, args...)
	return err
}
