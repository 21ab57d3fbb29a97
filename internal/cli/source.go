package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rshade/vtable/internal/config"
	"github.com/rshade/vtable/internal/dataset"
	"github.com/rshade/vtable/internal/layout"
	"github.com/rshade/vtable/internal/logging"
	"github.com/rshade/vtable/internal/render"
	"github.com/rshade/vtable/internal/table"
	"github.com/rshade/vtable/internal/tui"
)

// tableFlags holds the data and presentation flags shared by view, demo and
// frame.
type tableFlags struct {
	format    string
	sortExpr  string
	where     string
	query     string
	rowKey    string
	columns   string
	theme     string
	title     string
	rowHeight int
	overscan  int
}

func (f *tableFlags) register(cmd *cobra.Command, withFormat bool) {
	if withFormat {
		cmd.Flags().StringVar(&f.format, "format", "",
			"dataset format: jsonl, json, csv, yaml (default: from file extension)")
	}
	cmd.Flags().StringVar(&f.sortExpr, "sort", "", "sort rows by field[:asc|desc]")
	cmd.Flags().StringVar(&f.where, "where", "", `keep rows matching an expression, e.g. "age > 18 && name != 'Bob'"`)
	cmd.Flags().StringVar(&f.query, "filter", "", "keep rows with a field containing this text")
	cmd.Flags().StringVar(&f.rowKey, "key", "", "field identifying each row (default: config row_key, then row position)")
	cmd.Flags().StringVar(&f.columns, "columns", "", "column definition file (YAML)")
	cmd.Flags().StringVar(&f.theme, "theme", "", "color theme: plain, dark, light (default: config theme)")
	cmd.Flags().StringVar(&f.title, "title", "", "title shown in the status line")
	cmd.Flags().IntVar(&f.rowHeight, "row-height", 0, "row height in lines (default: config row_height)")
	cmd.Flags().IntVar(&f.overscan, "overscan", -1, "extra rows rendered past each edge (default: config overscan)")
}

// tableSource is a dataset ready to hand to the table.
type tableSource struct {
	rows   []layout.Record
	cols   []layout.Column
	rowKey layout.RowKey
	title  string
}

// loadFiles reads the dataset files and infers columns from them.
func loadFiles(ctx context.Context, files []string, flags tableFlags) (tableSource, error) {
	var opts dataset.Options
	if flags.format != "" {
		format, err := dataset.ParseFormat(flags.format)
		if err != nil {
			return tableSource{}, err
		}
		opts.Format = format
	}

	rows, err := dataset.LoadFiles(ctx, files, opts)
	if err != nil {
		return tableSource{}, err
	}

	title := files[0]
	if len(files) > 1 {
		title = fmt.Sprintf("%s (+%d)", files[0], len(files)-1)
	}
	return tableSource{rows: rows, cols: dataset.InferColumns(rows), title: title}, nil
}

// prepare applies the column file, row key, filter and sort flags to src.
func prepare(ctx context.Context, cfg *config.Config, src tableSource, flags tableFlags) (tableSource, error) {
	if flags.columns != "" {
		cf, err := dataset.LoadColumns(flags.columns)
		if err != nil {
			return tableSource{}, err
		}
		cols, err := dataset.Build(cf.Columns)
		if err != nil {
			return tableSource{}, fmt.Errorf("%s: %w", flags.columns, err)
		}
		src.cols = cols
		if cf.RowKey != "" {
			src.rowKey = layout.FieldKey(cf.RowKey)
		}
	}

	switch {
	case flags.rowKey != "":
		src.rowKey = layout.FieldKey(flags.rowKey)
	case src.rowKey.Field == "" && src.rowKey.Func == nil && cfg.Table.RowKey != "":
		src.rowKey = layout.FieldKey(cfg.Table.RowKey)
	}

	criteria := dataset.Criteria{Query: flags.query, Expr: flags.where}
	if !criteria.Empty() {
		f, err := dataset.NewFilter(criteria)
		if err != nil {
			return tableSource{}, err
		}
		before := len(src.rows)
		src.rows = f.Apply(src.rows)
		logging.FromContext(ctx).Debug().
			Str("where", flags.where).
			Str("filter", flags.query).
			Int("before", before).
			Int("after", len(src.rows)).
			Msg("rows filtered")
	}

	if flags.sortExpr != "" {
		field, order, err := dataset.ParseSortExpression(flags.sortExpr)
		if err != nil {
			return tableSource{}, err
		}
		if src.rows, err = dataset.SorterForColumns(src.cols).Sort(src.rows, field, order); err != nil {
			return tableSource{}, err
		}
	}

	if flags.title != "" {
		src.title = flags.title
	}
	return src, nil
}

// viewOptions resolves the TUI options from the flags and configuration.
func viewOptions(ctx context.Context, cfg *config.Config, src tableSource, flags tableFlags) (tui.Options, error) {
	themeName := cfg.Table.Theme
	if flags.theme != "" {
		themeName = flags.theme
	}
	theme, err := render.ThemeByName(themeName)
	if err != nil {
		return tui.Options{}, err
	}

	opts := tui.Options{
		Columns:       src.cols,
		RowKey:        src.rowKey,
		RowHeight:     cfg.Table.RowHeight,
		Overscan:      table.Int(cfg.Table.Overscan),
		ScrollbarSize: cfg.Table.ScrollbarSize,
		Theme:         theme,
		Title:         src.title,
		Logger:        logging.FromContext(ctx),
	}
	if flags.rowHeight > 0 {
		opts.RowHeight = flags.rowHeight
	}
	if flags.overscan >= 0 {
		opts.Overscan = table.Int(flags.overscan)
	}
	return opts, nil
}
