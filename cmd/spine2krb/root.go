package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	var configFlag string
	var logLevelFlag string
	var logFormatFlag string

	rootCmd := &cobra.Command{
		Use:           "spine2krb",
		Short:         "Convert Spine 3.8 JSON skeletons to the compact binary format",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "", "Override the configured log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormatFlag, "log-format", "", "Override the configured log format (console, json)")

	rootCmd.AddCommand(newConvertCommand(&configFlag, &logLevelFlag, &logFormatFlag))
	rootCmd.AddCommand(newInitConfigCommand())

	return rootCmd
}
