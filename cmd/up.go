package cmd

import (
	"github.com/spf13/cobra"
)

func newUpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Create and start all services",
		Long: `Starts every service declared in the compose file in dependency
order. Services that are already running are skipped with a notice.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			orch, err := buildOrchestrator()
			if err != nil {
				return err
			}
			return orch.Up(cmd.Context())
		},
	}
}
