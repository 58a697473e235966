package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jcorbin/softbreak/internal/config"
)

func newConfigCmd(flags *rootFlags) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Show the effective settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, path, err := flags.settings()
			if err != nil {
				return err
			}
			if path == "" {
				path = "(defaults)"
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "file: %v\n", path)
			fmt.Fprintf(out, "col: %q (effective %v)\n", cfg.Col, cfg.Column())
			return nil
		},
	}

	setCmd := &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Change a setting",
		Long:  "Change a setting. The only key is col, the column limit.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, value := args[0], args[1]
			if key != "col" {
				return fmt.Errorf("unknown setting %q", key)
			}
			path, err := config.SavePath(flags.configPath)
			if err != nil {
				return fmt.Errorf("config: %w", err)
			}
			cfg, err := config.LoadOrDefault(path)
			if err != nil {
				return fmt.Errorf("config: %w", err)
			}
			cfg.Col = value
			if err := config.Save(path, cfg); err != nil {
				return err
			}
			verbose(flags.verbose, cmd.ErrOrStderr()).Printf("saved col=%q to %v", value, path)
			return nil
		},
	}

	configCmd.AddCommand(setCmd)
	return configCmd
}
