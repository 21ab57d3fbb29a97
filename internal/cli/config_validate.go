package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rshade/vtable/internal/config"
	"github.com/rshade/vtable/internal/render"
)

// NewConfigValidateCmd creates the config validate command for validating configuration.
func NewConfigValidateCmd() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate configuration file",
		Long: `Validates a configuration file for syntax and semantic correctness.

This includes:
- YAML syntax
- Schema version compatibility
- Value ranges (row height, overscan, scrollbar size, height)
- Theme name`,
		Example: `  # Validate the user configuration
  vtable config validate

  # Validate a project overlay
  vtable config validate --file .vtable.yaml`,
		Annotations: map[string]string{annotationTolerateConfig: "true"},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigValidate(cmd, file)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "configuration file (default: user configuration)")

	return cmd
}

// runConfigValidate executes the configuration validation logic.
func runConfigValidate(cmd *cobra.Command, file string) error {
	if file == "" {
		var err error
		if file, err = config.DefaultPath(); err != nil {
			return err
		}
	}
	if _, err := os.Stat(file); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	cfg, err := config.Load(file)
	if err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}
	if _, err := render.ThemeByName(cfg.Table.Theme); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	cmd.Printf("Configuration is valid: %s\n", file)
	return nil
}
