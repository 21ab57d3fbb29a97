package dataset

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/vtable/internal/layout"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		path    string
		want    Format
		wantErr bool
	}{
		{path: "rows.jsonl", want: FormatJSONL},
		{path: "rows.NDJSON", want: FormatJSONL},
		{path: "rows.json", want: FormatJSON},
		{path: "/tmp/a/rows.csv", want: FormatCSV},
		{path: "rows.yml", want: FormatYAML},
		{path: "rows.yaml", want: FormatYAML},
		{path: "rows.parquet", wantErr: true},
		{path: "rows", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := DetectFormat(tt.path)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrUnsupportedFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

// TestLoad_JSONLBatches verifies lines decode in order across several batches
// and blank lines are skipped.
func TestLoad_JSONLBatches(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 25; i++ {
		if i == 10 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "{\"id\":%d,\"n\":\"row%c\"}\n", i+1, 'a'+i)
	}
	path := writeFile(t, "rows.jsonl", b.String())

	rows, err := Load(context.Background(), path, Options{BatchSize: 4, Workers: 3})
	require.NoError(t, err)
	require.Len(t, rows, 25)
	for i, r := range rows {
		assert.Equal(t, "row"+string(rune('a'+i)), r["n"])
	}
	assert.InDelta(t, 1.0, rows[0]["id"], 0)
	assert.InDelta(t, 25.0, rows[24]["id"], 0)
}

func TestLoad_JSONLMalformedLine(t *testing.T) {
	path := writeFile(t, "bad.jsonl", "{\"a\":1}\n{\"a\":2}\n{oops\n")

	_, err := Load(context.Background(), path, Options{BatchSize: 1})
	require.ErrorIs(t, err, ErrMalformedRecord)
	assert.Contains(t, err.Error(), "line 3")
	assert.Contains(t, err.Error(), "bad.jsonl")
}

func TestLoad_JSONArray(t *testing.T) {
	path := writeFile(t, "rows.json", `[{"id": 1, "owner": {"name": "ann"}}, {"id": 2}]`)

	rows, err := Load(context.Background(), path, Options{})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "ann", layout.Field(rows[0], "owner.name"))
	assert.Nil(t, layout.Field(rows[1], "owner.name"))
}

func TestLoad_CSVCoercesNumbers(t *testing.T) {
	path := writeFile(t, "rows.csv", "id,name,score\n1,Bob,2.5\n2, Ann,x\n3,Eve\n")

	rows, err := Load(context.Background(), path, Options{})
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, int64(1), rows[0]["id"])
	assert.Equal(t, "Bob", rows[0]["name"])
	assert.InDelta(t, 2.5, rows[0]["score"], 1e-9)
	assert.Equal(t, "Ann", rows[1]["name"], "leading space trimmed")
	assert.Equal(t, "x", rows[1]["score"])
	assert.NotContains(t, rows[2], "score", "short records leave fields missing")
}

func TestLoad_YAML(t *testing.T) {
	path := writeFile(t, "rows.yaml", "- id: 1\n  name: Bob\n- id: 2\n  name: Ann\n")

	rows, err := Load(context.Background(), path, Options{})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, 2, rows[1]["id"])
	assert.Equal(t, "Ann", rows[1]["name"])
}

func TestLoad_FormatOverride(t *testing.T) {
	path := writeFile(t, "rows.txt", "{\"a\":1}\n")

	_, err := Load(context.Background(), path, Options{})
	require.ErrorIs(t, err, ErrUnsupportedFormat)

	rows, err := Load(context.Background(), path, Options{Format: FormatJSONL})
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(context.Background(), filepath.Join(t.TempDir(), "none.csv"), Options{})
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadFiles_KeepsArgumentOrder(t *testing.T) {
	a := writeFile(t, "a.csv", "id\n1\n2\n")
	b := writeFile(t, "b.yaml", "- id: 3\n")
	c := writeFile(t, "c.jsonl", "{\"id\":4}\n")

	rows, err := LoadFiles(context.Background(), []string{a, b, c}, Options{})
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, int64(1), rows[0]["id"])
	assert.Equal(t, int64(2), rows[1]["id"])
	assert.Equal(t, 3, rows[2]["id"])
	assert.InDelta(t, 4.0, rows[3]["id"], 0)
}

func TestLoadFiles_Empty(t *testing.T) {
	empty := writeFile(t, "empty.csv", "")

	_, err := LoadFiles(context.Background(), []string{empty}, Options{})
	require.ErrorIs(t, err, ErrEmptyDataset)
}

func TestDecode_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Decode(ctx, strings.NewReader("{\"a\":1}\n{\"a\":2}\n"), FormatJSONL, Options{BatchSize: 1})
	require.ErrorIs(t, err, context.Canceled)
}
