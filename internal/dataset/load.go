package dataset

import (
	"bufio"
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/rshade/vtable/internal/layout"
)

// Format is a dataset file format.
type Format string

// Supported formats.
const (
	FormatJSONL Format = "jsonl"
	FormatJSON  Format = "json"
	FormatCSV   Format = "csv"
	FormatYAML  Format = "yaml"
)

// maxLineSize bounds a single JSON Lines record.
const maxLineSize = 4 * 1024 * 1024

// Load errors.
var (
	ErrUnsupportedFormat = errors.New("unsupported dataset format")
	ErrEmptyDataset      = errors.New("dataset contains no records")
	ErrMalformedRecord   = errors.New("malformed record")
)

// ParseFormat parses a format name.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "jsonl", "ndjson":
		return FormatJSONL, nil
	case "json":
		return FormatJSON, nil
	case "csv":
		return FormatCSV, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
	}
}

// DetectFormat picks a format from the file extension.
func DetectFormat(path string) (Format, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return "", fmt.Errorf("%w: %s has no extension", ErrUnsupportedFormat, path)
	}
	return ParseFormat(ext)
}

// Options controls decoding.
type Options struct {
	// Format overrides extension-based detection.
	Format Format

	// BatchSize is the JSON Lines batch size (default DefaultBatchSize).
	BatchSize int

	// Workers bounds concurrent decoding (default GOMAXPROCS).
	Workers int
}

func (o Options) withDefaults() Options {
	if o.BatchSize <= 0 {
		o.BatchSize = DefaultBatchSize
	}
	if o.Workers <= 0 {
		o.Workers = runtime.GOMAXPROCS(0)
	}
	return o
}

// LoadFiles loads every path concurrently and concatenates the records in
// argument order.
func LoadFiles(ctx context.Context, paths []string, opts Options) ([]layout.Record, error) {
	parts := make([][]layout.Record, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			rows, err := Load(gctx, path, opts)
			if err != nil {
				return err
			}
			parts[i] = rows
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	total := 0
	for _, p := range parts {
		total += len(p)
	}
	out := make([]layout.Record, 0, total)
	for _, p := range parts {
		out = append(out, p...)
	}
	if len(out) == 0 {
		return nil, ErrEmptyDataset
	}
	return out, nil
}

// Load reads one dataset file.
func Load(ctx context.Context, path string, opts Options) ([]layout.Record, error) {
	format := opts.Format
	if format == "" {
		var err error
		if format, err = DetectFormat(path); err != nil {
			return nil, err
		}
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening dataset: %w", err)
	}
	defer f.Close()

	rows, err := Decode(ctx, f, format, opts)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	zerolog.Ctx(ctx).Debug().
		Str("component", "dataset").
		Str("path", path).
		Str("format", string(format)).
		Int("rows", len(rows)).
		Msg("dataset loaded")
	return rows, nil
}

// Decode reads records in format from r.
func Decode(ctx context.Context, r io.Reader, format Format, opts Options) ([]layout.Record, error) {
	opts = opts.withDefaults()
	switch format {
	case FormatJSONL:
		return decodeJSONL(ctx, r, opts)
	case FormatJSON:
		return decodeJSON(r)
	case FormatCSV:
		return decodeCSV(r)
	case FormatYAML:
		return decodeYAML(r)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// decodeJSONL splits the input into lines, then decodes them in concurrent
// batches.
func decodeJSONL(ctx context.Context, r io.Reader, opts Options) ([]layout.Record, error) {
	var lines [][]byte
	var lineNos []int
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for n := 1; sc.Scan(); n++ {
		line := bytes.TrimSpace(sc.Bytes())
		if len(line) == 0 {
			continue
		}
		lines = append(lines, append([]byte(nil), line...))
		lineNos = append(lineNos, n)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading lines: %w", err)
	}

	rows := make([]layout.Record, len(lines))
	p, err := NewProcessor[[]byte](min(opts.BatchSize, MaxBatchSize), opts.Workers)
	if err != nil {
		return nil, err
	}
	err = p.Process(ctx, lines, func(_ context.Context, batch [][]byte, start int) error {
		for i, line := range batch {
			var rec map[string]any
			if err := json.Unmarshal(line, &rec); err != nil {
				return fmt.Errorf("%w: line %d: %w", ErrMalformedRecord, lineNos[start+i], err)
			}
			rows[start+i] = layout.Record(rec)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func decodeJSON(r io.Reader) ([]layout.Record, error) {
	var raw []map[string]any
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedRecord, err)
	}
	return toRecords(raw), nil
}

func decodeYAML(r io.Reader) ([]layout.Record, error) {
	var raw []map[string]any
	if err := yaml.NewDecoder(r).Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %w", ErrMalformedRecord, err)
	}
	return toRecords(raw), nil
}

func toRecords(raw []map[string]any) []layout.Record {
	rows := make([]layout.Record, len(raw))
	for i, m := range raw {
		rows[i] = layout.Record(m)
	}
	return rows
}

// decodeCSV reads a header row followed by records. Numeric fields become
// numbers so they sort and filter as such.
func decodeCSV(r io.Reader) ([]layout.Record, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: header: %w", ErrMalformedRecord, err)
	}

	var rows []layout.Record
	for {
		fields, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMalformedRecord, err)
		}
		rec := make(layout.Record, len(header))
		for i, name := range header {
			if i < len(fields) {
				rec[name] = parseScalar(fields[i])
			}
		}
		rows = append(rows, rec)
	}
	return rows, nil
}

func parseScalar(s string) any {
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return s
}
