package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rshade/vtable/internal/dataset"
	"github.com/rshade/vtable/internal/layout"
)

const demoRowsDefault = dataset.DemoRows

// demoSource returns the generated demo dataset with its pinned columns.
func demoSource(rows int) tableSource {
	return tableSource{
		rows:   dataset.Demo(rows),
		cols:   dataset.DemoColumns(),
		rowKey: layout.FieldKey("id"),
		title:  fmt.Sprintf("demo (%d rows)", rows),
	}
}

// NewDemoCmd creates the demo command.
func NewDemoCmd() *cobra.Command {
	var (
		flags tableFlags
		rows  int
		plain bool
	)

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Open a generated table with pinned left and right columns",
		Example: `  # Ten thousand rows
  vtable demo

  # A million rows, plain frame
  vtable demo --rows 1000000 --plain`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if rows < 0 {
				return fmt.Errorf("--rows must be >= 0, got %d", rows)
			}
			return showTable(cmd, demoSource(rows), flags, plain)
		},
	}

	flags.register(cmd, false)
	cmd.Flags().IntVar(&rows, "rows", demoRowsDefault, "number of generated rows")
	cmd.Flags().BoolVar(&plain, "plain", false, "print one frame instead of starting the interactive table")

	return cmd
}
