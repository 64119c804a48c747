package cmd

import (
	"github.com/spf13/cobra"
)

func newStopCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stop [SERVICE...]",
		Short: "Stop services",
		Long: `Stops the named services, or every service when none are named,
in the reverse of declared order. Unresponsive containers are killed.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			orch, err := buildOrchestrator()
			if err != nil {
				return err
			}
			return orch.Stop(cmd.Context(), args)
		},
	}
}
