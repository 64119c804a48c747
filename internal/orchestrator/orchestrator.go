// Package orchestrator sequences service lifecycle operations against the
// external container runtime: dependency-ordered starts, reverse-order
// escalating stops, status classification, and the pass-through
// operations (logs, exec, pull).
package orchestrator

import (
	"fmt"
	"time"

	"composectl/internal/config"
	"composectl/internal/containerizer"
	"composectl/internal/reporting"
	"composectl/internal/volume"
)

// ServiceNotFoundError reports an operation against a service name that
// is not declared in the compose file.
type ServiceNotFoundError struct {
	Name string
}

func (e *ServiceNotFoundError) Error() string {
	return fmt.Sprintf("service %q not found", e.Name)
}

// ContainerStatus is the orchestrator's view of one service's container.
type ContainerStatus int

const (
	StatusRunning ContainerStatus = iota
	StatusStopped
)

// ContainerRecord tracks a service the orchestrator started during this
// process's lifetime. Records are a short-lived cache: the authoritative
// roster always comes from the runtime, because the engine is stateless
// across invocations.
type ContainerRecord struct {
	Service     string
	Status      ContainerStatus
	ContainerID string
}

// Options carries the tunable stop-protocol policy values.
type Options struct {
	// StopTimeout bounds a graceful stop before escalating to a kill.
	StopTimeout time.Duration
	// KillRetryDelay is the pause before the single kill retry.
	KillRetryDelay time.Duration
	// Verbose enables advisory output that is noise in normal runs.
	Verbose bool
}

// Orchestrator drives the configured services through the runtime. It is
// the only component with cross-cutting authority; it owns the record map
// and mutates it from a single control thread, so no locking is needed.
type Orchestrator struct {
	cfg       *config.Config
	runtime   containerizer.ContainerRuntime
	volumes   *volume.Resolver
	reporter  reporting.Reporter
	inspector *statusInspector

	stopTimeout    time.Duration
	killRetryDelay time.Duration
	verbose        bool

	records map[string]*ContainerRecord
}

// New creates an Orchestrator for one command invocation. The config must
// already be validated; the runtime is the injected capability tests can
// fake.
func New(cfg *config.Config, runtime containerizer.ContainerRuntime, volumes *volume.Resolver, reporter reporting.Reporter, opts Options) *Orchestrator {
	if opts.StopTimeout <= 0 {
		opts.StopTimeout = 10 * time.Second
	}
	if opts.KillRetryDelay <= 0 {
		opts.KillRetryDelay = 500 * time.Millisecond
	}

	return &Orchestrator{
		cfg:            cfg,
		runtime:        runtime,
		volumes:        volumes,
		reporter:       reporter,
		inspector:      newStatusInspector(runtime, cfg),
		stopTimeout:    opts.StopTimeout,
		killRetryDelay: opts.KillRetryDelay,
		verbose:        opts.Verbose,
		records:        make(map[string]*ContainerRecord),
	}
}

// requireServices validates that every requested name is declared,
// returning the full declared set when names is empty.
func (o *Orchestrator) requireServices(names []string) (map[string]struct{}, error) {
	requested := make(map[string]struct{}, len(names))
	if len(names) == 0 {
		for _, name := range o.cfg.ServiceOrder {
			requested[name] = struct{}{}
		}
		return requested, nil
	}

	for _, name := range names {
		if _, ok := o.cfg.Services[name]; !ok {
			return nil, &ServiceNotFoundError{Name: name}
		}
		requested[name] = struct{}{}
	}
	return requested, nil
}
