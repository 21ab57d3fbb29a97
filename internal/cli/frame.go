package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/rshade/vtable/internal/config"
	"github.com/rshade/vtable/internal/render"
	"github.com/rshade/vtable/internal/table"
	"github.com/rshade/vtable/internal/tui"
)

// Frame size used when standard output is not a terminal.
const (
	fallbackWidth  = 80
	fallbackHeight = 24
)

var errFrameTooSmall = errors.New("frame too small")

type frameParams struct {
	width  int
	height int
	top    int
	left   int
	row    int
	styled bool
}

// NewFrameCmd creates the frame command that prints one rendered frame.
func NewFrameCmd() *cobra.Command {
	var (
		flags  tableFlags
		params frameParams
		demo   int
	)

	cmd := &cobra.Command{
		Use:   "frame [file]...",
		Short: "Print a single table frame at a scroll position",
		Long: `Renders one frame of the table exactly as the interactive view would and
prints it. Without files the demo dataset is used.

The frame size defaults to the terminal size, then to the configured table
height, then to 80x24.`,
		Example: `  # Rows 1000 onwards of the demo table
  vtable frame --top 1000

  # Bring row 250 into view in a 100x15 frame
  vtable frame data.jsonl --row 250 --width 100 --height 15`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := configFromContext(ctx)

			src := demoSource(demo)
			if len(args) > 0 {
				var err error
				if src, err = loadFiles(ctx, args, flags); err != nil {
					return err
				}
			}
			src, err := prepare(ctx, cfg, src, flags)
			if err != nil {
				return err
			}
			opts, err := viewOptions(ctx, cfg, src, flags)
			if err != nil {
				return err
			}

			width, height := terminalSize(cfg)
			if !cmd.Flags().Changed("width") {
				params.width = width
			}
			if !cmd.Flags().Changed("height") {
				params.height = height
			}
			return renderFrame(cmd.OutOrStdout(), src, opts, params)
		},
	}

	flags.register(cmd, true)
	cmd.Flags().IntVar(&params.width, "width", fallbackWidth, "frame width in cells")
	cmd.Flags().IntVar(&params.height, "height", fallbackHeight, "frame height in lines, header included")
	cmd.Flags().IntVar(&params.top, "top", 0, "vertical scroll offset")
	cmd.Flags().IntVar(&params.left, "left", 0, "horizontal scroll offset")
	cmd.Flags().IntVar(&params.row, "row", -1, "scroll the given row index into view (overrides --top)")
	cmd.Flags().BoolVar(&params.styled, "styled", false, "keep theme colors in the output")
	cmd.Flags().IntVar(&demo, "demo-rows", demoRowsDefault, "rows in the demo dataset when no file is given")

	return cmd
}

// terminalSize returns the size of standard output, falling back to the
// configured table height and then to 80x24.
func terminalSize(cfg *config.Config) (int, int) {
	width, height, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 || height <= 0 {
		width, height = fallbackWidth, fallbackHeight
	}
	if cfg.Table.Height > 0 {
		height = cfg.Table.Height
	}
	return width, height
}

// renderFrame builds a table for src at the requested position and writes
// one painted frame to w.
func renderFrame(w io.Writer, src tableSource, opts tui.Options, p frameParams) error {
	// One line for the header.
	bodyHeight := p.height - 1
	if p.width <= opts.ScrollbarSize || bodyHeight <= opts.ScrollbarSize {
		return fmt.Errorf("%w: %dx%d", errFrameTooSmall, p.width, p.height)
	}

	tbl := table.New(table.Props{
		Columns:       src.cols,
		DataSource:    src.rows,
		RowKey:        src.rowKey,
		Scroll:        table.Scroll{X: p.width, Y: bodyHeight},
		RowHeight:     opts.RowHeight,
		Overscan:      opts.Overscan,
		ScrollbarSize: table.Int(opts.ScrollbarSize),
		Logger:        opts.Logger,
	})
	tbl.ScrollTo(p.top, p.left)
	if p.row >= 0 {
		tbl.ScrollToRow(p.row)
	}

	ro := render.DefaultOptions()
	if p.row >= 0 && p.row < tbl.Len() {
		ro.Selected = p.row
	}
	canvas := render.Paint(tbl.Frame(), ro)

	out := canvas.Plain()
	if p.styled {
		out = canvas.Render(opts.Theme)
	}
	_, err := fmt.Fprintln(w, out)
	return err
}
