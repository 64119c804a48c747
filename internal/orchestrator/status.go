package orchestrator

import (
	"context"

	"composectl/internal/config"
	"composectl/internal/containerizer"
	"composectl/internal/reporting"
	"composectl/pkg/logging"
)

// statusInspector classifies configured services against the runtime's
// container roster. It is the only consumer of the runtime's list
// operation, so replacing the roster source touches nothing else.
type statusInspector struct {
	runtime containerizer.ContainerRuntime
	cfg     *config.Config
}

func newStatusInspector(runtime containerizer.ContainerRuntime, cfg *config.Config) *statusInspector {
	return &statusInspector{runtime: runtime, cfg: cfg}
}

// listKnown returns the names in the runtime roster that correspond to
// configured services, as a set.
func (s *statusInspector) listKnown(ctx context.Context, includeStopped bool) (map[string]struct{}, error) {
	infos, err := s.runtime.ListContainers(ctx, includeStopped)
	if err != nil {
		return nil, err
	}

	known := make(map[string]struct{})
	for _, info := range infos {
		if _, ok := s.cfg.Services[info.Name]; ok {
			known[info.Name] = struct{}{}
		}
	}
	return known, nil
}

// details returns the container identifier and image for a service,
// falling back to the service name and the configured image when the
// runtime has no record of it.
func (s *statusInspector) details(ctx context.Context, name string) (string, string) {
	infos, err := s.runtime.ListContainers(ctx, true)
	if err != nil {
		logging.Debug("StatusInspector", "roster query failed for %s: %v", name, err)
	}
	for _, info := range infos {
		if info.Name == name && info.Image != "" {
			return info.Name, info.Image
		}
	}

	if svc, ok := s.cfg.Services[name]; ok {
		return name, svc.Image
	}
	return name, "unknown"
}

// Ps emits one status row per configured service, in declared order,
// whether or not a container exists for it. Status is re-derived from the
// runtime on every call; the in-memory records are never trusted alone.
func (o *Orchestrator) Ps(ctx context.Context) error {
	all, err := o.inspector.listKnown(ctx, true)
	if err != nil {
		return err
	}
	running, err := o.inspector.listKnown(ctx, false)
	if err != nil {
		return err
	}

	rows := make([]reporting.StatusRow, 0, len(o.cfg.ServiceOrder))
	for _, name := range o.cfg.ServiceOrder {
		if _, exists := all[name]; exists {
			state := reporting.StateStopped
			if _, isRunning := running[name]; isRunning {
				state = reporting.StateRunning
			}
			id, image := o.inspector.details(ctx, name)
			rows = append(rows, reporting.StatusRow{
				Service:     name,
				State:       state,
				ContainerID: id,
				Image:       image,
			})
		} else {
			rows = append(rows, reporting.StatusRow{
				Service:     name,
				State:       reporting.StateNotCreated,
				ContainerID: "N/A",
				Image:       o.cfg.Services[name].Image,
			})
		}
	}

	o.reporter.Table(rows)
	return nil
}
