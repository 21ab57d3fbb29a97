package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/rshade/vtable/internal/config"
	"github.com/rshade/vtable/internal/logging"
)

// isTerminal checks if the given file is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// logger is the package-level logger for CLI operations.
var logger zerolog.Logger //nolint:gochecknoglobals // Required for zerolog context integration

// annotationTolerateConfig marks commands that run with the defaults when
// the configuration cannot be loaded.
const annotationTolerateConfig = "vtable/tolerate-config-error"

type configKey struct{}

// withConfig stores the effective configuration on ctx.
func withConfig(ctx context.Context, cfg *config.Config) context.Context {
	return context.WithValue(ctx, configKey{}, cfg)
}

// configFromContext returns the configuration loaded by the root command, or
// the defaults when the command runs outside it.
func configFromContext(ctx context.Context) *config.Config {
	if cfg, ok := ctx.Value(configKey{}).(*config.Config); ok && cfg != nil {
		return cfg
	}
	return config.Default()
}

// NewRootCmd creates the root Cobra command for the vtable CLI.
// It loads configuration, wires up logging and tracing, and registers the
// view, demo, frame and config subcommands.
func NewRootCmd(ver string) *cobra.Command {
	var (
		logResult   *logging.LogPathResult
		projectFile string
	)

	cmd := &cobra.Command{
		Use:     "vtable",
		Short:   "Browse large tabular datasets in the terminal",
		Long:    "vtable: a virtualized table viewer with pinned columns for JSON Lines, JSON, CSV and YAML data",
		Version: ver,
		Example: rootCmdExample,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			cwd, _ := os.Getwd()
			resolved := config.ResolveProjectFile(ctx, projectFile, cwd)
			cfg, err := config.NewWithProjectFile(ctx, resolved)
			if err != nil {
				if cmd.Annotations[annotationTolerateConfig] == "" {
					return fmt.Errorf("loading configuration: %w", err)
				}
				cmd.PrintErrf("Warning: ignoring configuration: %v\n", err)
				cfg = config.Default()
			}

			cmd.SetContext(withConfig(ctx, cfg))
			result := setupLogging(cmd, cfg)
			logResult = &result
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			return cleanupLogging(cmd, logResult)
		},
		SilenceUsage: true,
	}

	cmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	cmd.PersistentFlags().StringVar(&projectFile, "project-file", "",
		"project configuration overlay (default: nearest "+config.ProjectFileName+")")
	cmd.AddCommand(NewViewCmd(), NewDemoCmd(), NewFrameCmd(), newConfigCmd())

	return cmd
}

const rootCmdExample = `  # Browse a JSON Lines file
  vtable view events.jsonl

  # Sort and filter before browsing
  vtable view users.csv --sort age:desc --where "age >= 18"

  # Use a column definition file with pinned columns
  vtable view users.csv --columns columns.yaml

  # Try the built-in demo table
  vtable demo

  # Print a single frame without a terminal UI
  vtable frame users.csv --top 100 --width 120 --height 20

  # Initialize configuration
  vtable config init`

// newConfigCmd creates the config command group with configuration subcommands.
func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "config", Short: "Configuration management commands"}
	cmd.AddCommand(NewConfigInitCmd(), NewConfigShowCmd(), NewConfigValidateCmd())
	return cmd
}
