package cmd

import (
	"github.com/spf13/cobra"
)

func newPsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ps",
		Short: "List services and their status",
		Long: `Shows one row per declared service with its current status, whether
or not a container exists for it. Status is read from the runtime on
every call.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			orch, err := buildOrchestrator()
			if err != nil {
				return err
			}
			return orch.Ps(cmd.Context())
		},
	}
}
