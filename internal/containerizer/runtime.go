// Package containerizer abstracts the external container runtime binary.
// Everything the engine knows about containers goes through the
// ContainerRuntime interface, so tests can substitute a fake and a future
// structured-output runtime can replace the text parsing without touching
// callers.
package containerizer

import (
	"context"
	"time"
)

// ContainerInfo is one entry of the runtime's container roster.
type ContainerInfo struct {
	Name  string
	Image string
}

// RunConfig describes a single detached container launch.
type RunConfig struct {
	Name    string
	Image   string
	Mounts  []string // resolved host:container[:opts] arguments
	Env     []string // KEY=VALUE entries
	WorkDir string
	Command []string
}

// ContainerRuntime is the injected capability for driving the external
// runtime. Implementations spawn external processes; no method blocks
// past its context.
type ContainerRuntime interface {
	// RunDetached starts a container in detached mode and returns the
	// identifier reported by the runtime.
	RunDetached(ctx context.Context, cfg RunConfig) (string, error)

	// StopContainer requests a graceful stop, bounded by timeout when
	// timeout > 0. A bound that expires yields ErrTimeout, distinct from
	// a stop that completed and failed.
	StopContainer(ctx context.Context, name string, timeout time.Duration) error

	// KillContainer forcefully terminates a container.
	KillContainer(ctx context.Context, name string) error

	// RemoveContainer removes a stopped container.
	RemoveContainer(ctx context.Context, name string) error

	// ListContainers returns the runtime's roster, optionally including
	// stopped containers.
	ListContainers(ctx context.Context, includeStopped bool) ([]ContainerInfo, error)

	// StreamLogs streams a container's logs to the terminal, optionally
	// following.
	StreamLogs(ctx context.Context, name string, follow bool) error

	// ExecInteractive runs a command inside a container with inherited
	// terminal I/O.
	ExecInteractive(ctx context.Context, name string, command []string) error

	// PullImage pulls an image.
	PullImage(ctx context.Context, image string) error
}
