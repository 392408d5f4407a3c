package cmd

import (
	"github.com/mobiplan/taskdeps/internal/logger"
	"github.com/spf13/cobra"
)

var (
	debug    bool
	verbose  bool
	jsonLogs bool
	quiet    bool
	version  = "v0.1.0"

	rootCmd = &cobra.Command{
		Use:   "taskdeps",
		Short: "Validate task dependency graphs",
		Long:  `taskdeps checks task snapshots for structural defects (self-dependencies, dangling references, cycles) and reports which tasks are ready to start.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger.Setup(verbose || debug, jsonLogs, quiet)
		},
	}
)

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.Version = version
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().BoolVar(&jsonLogs, "json", false, "Output logs in JSON format")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress non-error output")

	rootCmd.AddCommand(checkCmd)
}
