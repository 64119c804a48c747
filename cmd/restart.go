package cmd

import (
	"github.com/spf13/cobra"
)

func newRestartCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "restart [SERVICE...]",
		Short: "Restart services",
		Long:  `Stops and then starts the named services, or every service when none are named.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			orch, err := buildOrchestrator()
			if err != nil {
				return err
			}
			return orch.Restart(cmd.Context(), args)
		},
	}
}
