package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/waozixyz/spine2krb/internal/config"
)

func newInitConfigCommand() *cobra.Command {
	var outputFlag string

	cmd := &cobra.Command{
		Use:   "init-config",
		Short: "Write a sample configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := outputFlag
			if path == "" {
				defaultPath, err := config.DefaultConfigPath()
				if err != nil {
					return fmt.Errorf("spine2krb: %w", err)
				}
				path = defaultPath
			}

			if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
				return fmt.Errorf("spine2krb: %w", err)
			}
			if err := os.WriteFile(path, []byte(config.SampleConfig()), 0o644); err != nil {
				return fmt.Errorf("spine2krb: write config: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
			return nil
		},
	}

	cmd.Flags().StringVar(&outputFlag, "output", "", "Path to write the sample config (default ~/.config/spine2krb/config.toml)")

	return cmd
}
