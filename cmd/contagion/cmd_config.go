package main

import (
	"encoding/json"
	"fmt"

	"github.com/nvandessel/contagion/internal/config"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect contagion configuration",
		Long: `View the effective contagion configuration.

Settings come from built-in defaults, then ~/.contagion/config.yaml (or the
file given with --config), then CONTAGION_* environment variables.

Examples:
  contagion config list                 # Show effective settings
  contagion config list --json          # Same, as JSON
  CONTAGION_P=0.5 contagion config list # Environment overrides win`,
	}

	cmd.AddCommand(newConfigListCmd())
	return cmd
}

func newConfigListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all configuration settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonOut, _ := cmd.Flags().GetBool("json")

			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if jsonOut {
				return json.NewEncoder(out).Encode(cfg)
			}

			data, err := yaml.Marshal(cfg)
			if err != nil {
				return fmt.Errorf("failed to encode config: %w", err)
			}
			_, err = out.Write(data)
			return err
		},
	}
}

// loadConfig resolves configuration for a command, honoring the global
// --config and --log-level flags.
func loadConfig(cmd *cobra.Command) (*config.ContagionConfig, error) {
	path, _ := cmd.Flags().GetString("config")

	var (
		cfg *config.ContagionConfig
		err error
	)
	if path != "" {
		cfg, err = config.LoadPath(path)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if level, _ := cmd.Flags().GetString("log-level"); level != "" {
		cfg.Logging.Level = level
	}
	return cfg, nil
}
