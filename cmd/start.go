package cmd

import (
	"github.com/spf13/cobra"
)

func newStartCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "start [SERVICE...]",
		Short: "Start services",
		Long: `Starts the named services, or every service when none are named.
Starts happen in dependency order; already-running services are skipped.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			orch, err := buildOrchestrator()
			if err != nil {
				return err
			}
			return orch.Start(cmd.Context(), args)
		},
	}
}
