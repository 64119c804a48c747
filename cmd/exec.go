package cmd

import (
	"github.com/spf13/cobra"
)

func newExecCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "exec SERVICE [COMMAND...]",
		Short: "Run a command in a service's container",
		Long: `Runs a command inside a running service's container with the
terminal attached. Without a command, opens an interactive shell.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			orch, err := buildOrchestrator()
			if err != nil {
				return err
			}
			return orch.Exec(cmd.Context(), args[0], args[1:])
		},
	}
}
