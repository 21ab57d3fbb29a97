package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/rshade/vtable/internal/config"
)

// NewConfigInitCmd creates the config init command for initializing configuration.
// By default it writes ~/.vtable/config.yaml and a .gitignore that keeps the log
// file out of version control. With --project it writes a .vtable.yaml overlay
// in the current directory instead.
func NewConfigInitCmd() *cobra.Command {
	var (
		force   bool
		project bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize configuration file with default values",
		Long: `Creates a new configuration file with default values.

The user configuration lives at ~/.vtable/config.yaml (or $VTABLE_HOME/config.yaml).
Use --project to create a ` + config.ProjectFileName + ` overlay in the current directory;
its sections replace the matching user sections when vtable runs below it.`,
		Example: `  # Create the user configuration
  vtable config init

  # Create a project overlay
  vtable config init --project

  # Create configuration, overwriting existing
  vtable config init --force`,
		Annotations: map[string]string{annotationTolerateConfig: "true"},
		RunE: func(cmd *cobra.Command, _ []string) error {
			if project {
				cwd, err := os.Getwd()
				if err != nil {
					return fmt.Errorf("resolving working directory: %w", err)
				}
				return initProjectConfig(cmd, filepath.Join(cwd, config.ProjectFileName), force)
			}
			return initUserConfig(cmd, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite existing configuration file")
	cmd.Flags().BoolVar(&project, "project", false, "create "+config.ProjectFileName+" in the current directory")

	return cmd
}

// checkWritable refuses to overwrite path unless force is set.
func checkWritable(path string, force bool) error {
	if force {
		return nil
	}
	_, err := os.Stat(path)
	if err == nil {
		return errors.New("configuration file already exists, use --force to overwrite")
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("cannot access config path %s: %w", path, err)
	}
	return nil
}

// initProjectConfig writes the table section of the defaults to path.
func initProjectConfig(cmd *cobra.Command, path string, force bool) error {
	if err := checkWritable(path, force); err != nil {
		return err
	}

	// The overlay replaces whole sections, so only the table section is written.
	defaults := config.Default()
	data, err := yaml.Marshal(map[string]any{
		"version": defaults.Version,
		"table":   defaults.Table,
	})
	if err != nil {
		return fmt.Errorf("encoding configuration: %w", err)
	}
	//nolint:gosec // Project files are meant to be committed and shared.
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}

	cmd.Printf("Project configuration initialized at %s\n", path)
	return nil
}

// initUserConfig creates the user config and its .gitignore.
func initUserConfig(cmd *cobra.Command, force bool) error {
	path, err := config.DefaultPath()
	if err != nil {
		return err
	}
	if err := checkWritable(path, force); err != nil {
		return err
	}

	cfg := config.Default()
	if err := cfg.Save(path); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}

	// Create .gitignore (never overwrites existing)
	created, err := config.EnsureGitignore(filepath.Dir(path))
	if err != nil {
		return fmt.Errorf("failed to create .gitignore: %w", err)
	}

	cmd.Printf("Configuration initialized successfully\n")
	cmd.Printf("Configuration file: %s\n", path)
	if created {
		cmd.Printf("Created .gitignore to keep logs out of version control\n")
	}

	return nil
}
