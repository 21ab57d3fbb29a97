package cli

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/rshade/vtable/internal/tui"
)

// NewViewCmd creates the view command that browses dataset files.
func NewViewCmd() *cobra.Command {
	var (
		flags tableFlags
		plain bool
	)

	cmd := &cobra.Command{
		Use:   "view <file>...",
		Short: "Browse dataset files in an interactive table",
		Long: `Loads one or more JSON Lines, JSON, CSV or YAML files and opens them in a
scrollable table. Only the rows and columns inside the window are rendered, so
large files stay responsive.

When standard output is not a terminal, or --plain is set, the first frame is
printed instead.`,
		Example: `  # Browse a file
  vtable view events.jsonl

  # Merge two CSV exports, newest first
  vtable view jan.csv feb.csv --sort created:desc

  # Pin columns with a column definition file
  vtable view users.yaml --columns columns.yaml --key id`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			src, err := loadFiles(ctx, args, flags)
			if err != nil {
				return err
			}
			return showTable(cmd, src, flags, plain)
		},
	}

	flags.register(cmd, true)
	cmd.Flags().BoolVar(&plain, "plain", false, "print one frame instead of starting the interactive table")

	return cmd
}

// showTable prepares src and either runs the interactive table or prints a
// single frame.
func showTable(cmd *cobra.Command, src tableSource, flags tableFlags, plain bool) error {
	ctx := cmd.Context()
	cfg := configFromContext(ctx)

	src, err := prepare(ctx, cfg, src, flags)
	if err != nil {
		return err
	}
	opts, err := viewOptions(ctx, cfg, src, flags)
	if err != nil {
		return err
	}

	if plain || !isTerminal(os.Stdout) {
		width, height := terminalSize(cfg)
		return renderFrame(cmd.OutOrStdout(), src, opts, frameParams{
			width: width, height: height, row: -1,
		})
	}
	return runInteractive(ctx, src, opts)
}

func runInteractive(ctx context.Context, src tableSource, opts tui.Options) error {
	logger.Info().Ctx(ctx).
		Int("rows", len(src.rows)).
		Int("columns", len(src.cols)).
		Msg("starting interactive table")

	p := tea.NewProgram(
		tui.NewModel(ctx, src.rows, opts),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to run interactive table: %w", err)
	}
	return nil
}
