package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"composectl/internal/containerizer"
	"composectl/internal/dependency"
	"composectl/internal/reporting"
	"composectl/pkg/logging"
)

// Up starts every configured service in dependency order. The first
// failure aborts the remaining starts: later services may depend on the
// failed one, and started containers are deliberately left running.
func (o *Orchestrator) Up(ctx context.Context) error {
	o.reporter.Report(reporting.InfoUpdate("Starting services"))
	return o.startServices(ctx, nil)
}

// Start starts the named services (all of them when names is empty) in
// dependency order. Like Up, it is fail-fast.
func (o *Orchestrator) Start(ctx context.Context, names []string) error {
	return o.startServices(ctx, names)
}

func (o *Orchestrator) startServices(ctx context.Context, names []string) error {
	var requested map[string]struct{}
	if len(names) > 0 {
		var err error
		requested, err = o.requireServices(names)
		if err != nil {
			return err
		}
	}

	if err := o.volumes.EnsureNamedVolumes(); err != nil {
		return err
	}
	if n := len(o.cfg.Volumes); n > 0 {
		logging.Debug("Orchestrator", "initialized %d named volume(s)", n)
	}

	order, err := o.startOrder()
	if err != nil {
		return err
	}

	running, err := o.inspector.listKnown(ctx, false)
	if err != nil {
		return err
	}

	started := 0
	for _, name := range order {
		if requested != nil {
			if _, ok := requested[name]; !ok {
				continue
			}
		}
		if err := o.startService(ctx, name, running); err != nil {
			return err
		}
		started++
	}

	o.reporter.Report(reporting.SuccessUpdate(fmt.Sprintf("Started %d service(s)", started)))
	return nil
}

// startOrder computes the topological start order from the dependency
// graph: every service appears after all of its dependencies.
func (o *Orchestrator) startOrder() ([]string, error) {
	g := dependency.New()
	for _, name := range o.cfg.ServiceOrder {
		g.AddNode(dependency.Node{
			Name:      name,
			DependsOn: o.cfg.Services[name].DependsOn,
		})
	}
	return g.Resolve()
}

func (o *Orchestrator) startService(ctx context.Context, name string, running map[string]struct{}) error {
	svc, ok := o.cfg.Services[name]
	if !ok {
		// The validator guarantees dependencies exist, but the resolver
		// carries unknown names through; defend here rather than crash.
		return &ServiceNotFoundError{Name: name}
	}

	if rec := o.records[name]; rec != nil && rec.Status == StatusRunning {
		o.reporter.Report(reporting.WarnUpdate(name + " already running"))
		return nil
	}
	if _, isRunning := running[name]; isRunning {
		o.reporter.Report(reporting.WarnUpdate(name + " already running"))
		return nil
	}

	if o.verbose && len(svc.Ports) > 0 {
		o.reporter.Report(reporting.WarnUpdate("Port mappings are not supported by the container runtime"))
		o.reporter.Report(reporting.WarnUpdate(fmt.Sprintf("Ports specified for %s: %v", name, svc.Ports)))
		o.reporter.Report(reporting.WarnUpdate("You may need to configure networking separately"))
	}

	mounts := make([]string, 0, len(svc.Volumes))
	for _, raw := range svc.Volumes {
		mount, warning, err := o.volumes.Resolve(raw)
		if err != nil {
			return fmt.Errorf("service %q: %w", name, err)
		}
		if warning != "" {
			o.reporter.Report(reporting.WarnUpdate(warning))
		}
		mounts = append(mounts, mount)
	}

	id, err := o.runtime.RunDetached(ctx, containerizer.RunConfig{
		Name:    name,
		Image:   svc.Image,
		Mounts:  mounts,
		Env:     svc.Environment,
		WorkDir: svc.WorkingDir,
		Command: svc.Command,
	})
	if err != nil {
		return fmt.Errorf("failed to start service %q: %w", name, err)
	}

	o.records[name] = &ContainerRecord{Service: name, Status: StatusRunning, ContainerID: id}
	o.reporter.Report(reporting.SuccessUpdate(fmt.Sprintf("%s started (%s)", name, id)))
	return nil
}

// Down stops every existing container among the configured services,
// processing the reverse of declared order. Stop is fail-soft: a service
// that resists stopping is reported as a warning and the loop continues,
// because leftover running services are a lesser harm than giving up
// early. With removeVolumes, the managed named-volume directories are
// deleted afterwards.
func (o *Orchestrator) Down(ctx context.Context, removeVolumes bool) error {
	o.reporter.Report(reporting.InfoUpdate("Stopping services"))

	existing, err := o.inspector.listKnown(ctx, true)
	if err != nil {
		return err
	}

	if len(existing) == 0 {
		o.reporter.Report(reporting.InfoUpdate("No containers to stop"))
	} else {
		processed, err := o.stopInOrder(ctx, nil, existing)
		if err != nil {
			return err
		}
		o.reporter.Report(reporting.SuccessUpdate(fmt.Sprintf("Processed %d service(s)", processed)))
	}

	if removeVolumes {
		return o.removeNamedVolumes()
	}
	return nil
}

// Stop stops the named services (all when names is empty) that currently
// exist, fail-soft, in reverse declared order.
func (o *Orchestrator) Stop(ctx context.Context, names []string) error {
	requested, err := o.requireServices(names)
	if err != nil {
		return err
	}

	existing, err := o.inspector.listKnown(ctx, true)
	if err != nil {
		return err
	}

	processed, err := o.stopInOrder(ctx, requested, existing)
	if err != nil {
		return err
	}
	if processed == 0 {
		o.reporter.Report(reporting.InfoUpdate("No containers to stop"))
		return nil
	}
	o.reporter.Report(reporting.SuccessUpdate(fmt.Sprintf("Processed %d service(s)", processed)))
	return nil
}

// Restart stops and then starts the named services (all when names is
// empty).
func (o *Orchestrator) Restart(ctx context.Context, names []string) error {
	o.reporter.Report(reporting.InfoUpdate("Restarting services"))
	if err := o.Stop(ctx, names); err != nil {
		return err
	}
	return o.Start(ctx, names)
}

// stopInOrder walks the declared service order in reverse, stopping each
// service that exists in the runtime roster (and, when requested is
// non-nil, was asked for). The reverse of declared order is not
// guaranteed to be the reverse of dependency order; see DESIGN.md.
func (o *Orchestrator) stopInOrder(ctx context.Context, requested, existing map[string]struct{}) (int, error) {
	processed := 0
	for i := len(o.cfg.ServiceOrder) - 1; i >= 0; i-- {
		name := o.cfg.ServiceOrder[i]
		if requested != nil {
			if _, ok := requested[name]; !ok {
				continue
			}
		}
		if _, ok := existing[name]; !ok {
			continue
		}
		if err := o.stopService(ctx, name); err != nil {
			return processed, err
		}
		processed++
	}
	return processed, nil
}

// stopService runs the escalating stop protocol for one service:
// graceful stop bounded by the stop timeout; on timeout or failure a
// forceful kill; if the kill fails, one retry after a short delay. A
// "container absent" response at any stage is informational, not a
// failure. The returned error is reserved for the runtime itself being
// unusable; protocol failures are reported and swallowed.
func (o *Orchestrator) stopService(ctx context.Context, name string) error {
	err := o.runtime.StopContainer(ctx, name, o.stopTimeout)

	needKill := false
	switch {
	case errors.Is(err, containerizer.ErrTimeout):
		logging.Debug("Orchestrator", "%s unresponsive to graceful stop, escalating to kill", name)
		needKill = true
	case err != nil && !containerizer.IsAbsent(err):
		needKill = true
	}

	if needKill {
		err = o.runtime.KillContainer(ctx, name)
		if err != nil && !containerizer.IsAbsent(err) {
			time.Sleep(o.killRetryDelay)
			err = o.runtime.KillContainer(ctx, name)
		}
	}

	switch {
	case err == nil:
		// Removal is a cleanup nicety; its failure never surfaces.
		if rmErr := o.runtime.RemoveContainer(ctx, name); rmErr != nil {
			logging.Debug("Orchestrator", "removal of %s failed: %v", name, rmErr)
		}
		delete(o.records, name)
		o.reporter.Report(reporting.SuccessUpdate(name + " stopped"))
	case containerizer.IsAbsent(err):
		delete(o.records, name)
		o.reporter.Report(reporting.InfoUpdate(name + " not found"))
	default:
		var invErr *containerizer.InvocationError
		if !errors.As(err, &invErr) {
			// The runtime binary itself failed to execute.
			return err
		}
		o.reporter.Report(reporting.WarnUpdate(name + " failed to stop (tried stop and kill)"))
	}

	return nil
}

func (o *Orchestrator) removeNamedVolumes() error {
	names := make([]string, 0, len(o.cfg.Volumes))
	for name := range o.cfg.Volumes {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if err := o.volumes.RemoveNamedVolume(name); err != nil {
			o.reporter.Report(reporting.WarnUpdate(fmt.Sprintf("failed to remove volume %s: %v", name, err)))
			continue
		}
		o.reporter.Report(reporting.InfoUpdate("Removed volume " + name))
	}
	return nil
}
