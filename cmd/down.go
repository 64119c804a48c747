package cmd

import (
	"github.com/spf13/cobra"
)

func newDownCmd() *cobra.Command {
	var removeVolumes bool

	cmd := &cobra.Command{
		Use:   "down",
		Short: "Stop and remove all services",
		Long: `Stops every existing container for the declared services, in the
reverse of declared order. Containers that refuse a graceful stop are
killed. With --volumes, the managed named-volume directories are
deleted afterwards.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			orch, err := buildOrchestrator()
			if err != nil {
				return err
			}
			return orch.Down(cmd.Context(), removeVolumes)
		},
	}

	cmd.Flags().BoolVar(&removeVolumes, "volumes", false, "Remove managed named volumes")

	return cmd
}
