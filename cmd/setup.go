package cmd

import (
	"fmt"
	"os"
	"time"

	"composectl/internal/config"
	"composectl/internal/containerizer"
	"composectl/internal/orchestrator"
	"composectl/internal/reporting"
	"composectl/internal/volume"
)

// buildOrchestrator assembles the engine for one command invocation:
// settings, compose file, reporter, runtime, and volume resolver. Every
// subcommand that touches services goes through here so they all agree
// on wiring.
func buildOrchestrator() (*orchestrator.Orchestrator, error) {
	settings, err := config.LoadSettings()
	if err != nil {
		return nil, fmt.Errorf("loading settings: %w", err)
	}

	cfg, err := config.Load(composeFile)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	reporter := reporting.NewConsoleReporter(os.Stdout, verbose)

	runtime := containerizer.NewCLIRuntime(settings.Runtime.Binary, func(cmdline string) {
		reporter.Report(reporting.CommandUpdate(cmdline))
	})

	volumeNames := make([]string, 0, len(cfg.Volumes))
	for name := range cfg.Volumes {
		volumeNames = append(volumeNames, name)
	}
	volumes, err := volume.NewFromEnv(volumeNames)
	if err != nil {
		return nil, err
	}

	return orchestrator.New(cfg, runtime, volumes, reporter, orchestrator.Options{
		StopTimeout:    time.Duration(settings.Runtime.StopTimeout),
		KillRetryDelay: time.Duration(settings.Runtime.KillRetryDelay),
		Verbose:        verbose,
	}), nil
}
