package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"composectl/pkg/logging"
)

var (
	composeFile string
	verbose     bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "composectl",
	Short: "Define and run multi-container applications with the container CLI",
	Long: `composectl reads a compose file and drives the external container
runtime through its command-line interface: starting services in
dependency order, stopping them in reverse, and reporting status.`,
	// SilenceUsage is set to true to prevent printing usage message on errors
	// handled by us (e.g. invalid compose files, failed runtime invocations)
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := logging.LevelWarn
		if verbose {
			level = logging.LevelDebug
		}
		logging.Init(level, os.Stderr)
	},
}

// SetVersion sets the version for the root command
func SetVersion(v string) {
	rootCmd.Version = v
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "composectl version %s\n" .Version}}`)

	err := rootCmd.Execute()
	if err != nil {
		// Cobra prints the error, we just exit non-zero
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&composeFile, "file", "f", "container-compose.yml", "Path to the compose file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Show runtime commands and extra diagnostics")

	rootCmd.AddCommand(newUpCmd())
	rootCmd.AddCommand(newDownCmd())
	rootCmd.AddCommand(newStartCmd())
	rootCmd.AddCommand(newStopCmd())
	rootCmd.AddCommand(newRestartCmd())
	rootCmd.AddCommand(newPsCmd())
	rootCmd.AddCommand(newLogsCmd())
	rootCmd.AddCommand(newExecCmd())
	rootCmd.AddCommand(newPullCmd())
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newSelfUpdateCmd())
}
