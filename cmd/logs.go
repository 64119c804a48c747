package cmd

import (
	"github.com/spf13/cobra"
)

func newLogsCmd() *cobra.Command {
	var follow bool

	cmd := &cobra.Command{
		Use:   "logs SERVICE",
		Short: "Show logs for a service",
		Long: `Streams the log output of a service's container to the terminal.
With --follow, keeps streaming until interrupted.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			orch, err := buildOrchestrator()
			if err != nil {
				return err
			}
			return orch.Logs(cmd.Context(), args[0], follow)
		},
	}

	// -f is taken by the persistent --file flag.
	cmd.Flags().BoolVar(&follow, "follow", false, "Follow log output")

	return cmd
}
