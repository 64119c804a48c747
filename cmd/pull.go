package cmd

import (
	"github.com/spf13/cobra"
)

func newPullCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pull [SERVICE]",
		Short: "Pull service images",
		Long: `Pulls the image for one service, or for every declared service
when none is named.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			orch, err := buildOrchestrator()
			if err != nil {
				return err
			}
			service := ""
			if len(args) == 1 {
				service = args[0]
			}
			return orch.Pull(cmd.Context(), service)
		},
	}
}
