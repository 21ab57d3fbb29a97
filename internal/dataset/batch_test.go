package dataset

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProcessor_ValidatesSize(t *testing.T) {
	tests := []struct {
		name    string
		size    int
		wantErr bool
	}{
		{name: "min", size: MinBatchSize},
		{name: "max", size: MaxBatchSize},
		{name: "zero", size: 0, wantErr: true},
		{name: "too large", size: MaxBatchSize + 1, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewProcessor[int](tt.size, 2)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidBatchSize)
				assert.Nil(t, p)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, p)
		})
	}
}

func TestProcessor_Batches(t *testing.T) {
	p, err := NewProcessor[int](4, 1)
	require.NoError(t, err)

	assert.Equal(t, [][2]int{{0, 4}, {4, 8}, {8, 10}}, p.Batches(10))
	assert.Equal(t, [][2]int{{0, 4}}, p.Batches(4))
	assert.Empty(t, p.Batches(0))
}

// TestProcessor_ProcessCoversEveryItem verifies each item is visited once and
// progress reaches the totals.
func TestProcessor_ProcessCoversEveryItem(t *testing.T) {
	items := make([]int, 103)
	for i := range items {
		items[i] = i
	}
	p, err := NewProcessor[int](10, 4)
	require.NoError(t, err)

	var last Progress
	var calls int
	p.WithProgress(func(pr Progress) {
		calls++
		last = pr
	})

	seen := make([]int32, len(items))
	err = p.Process(context.Background(), items, func(_ context.Context, batch []int, start int) error {
		for i, v := range batch {
			assert.Equal(t, start+i, v)
			atomic.AddInt32(&seen[v], 1)
		}
		return nil
	})
	require.NoError(t, err)

	for i, n := range seen {
		assert.Equal(t, int32(1), n, "item %d", i)
	}
	assert.Equal(t, 11, calls)
	assert.Equal(t, Progress{TotalItems: 103, ProcessedItems: 103, TotalBatches: 11, ProcessedBatches: 11}, last)
}

func TestProcessor_ProcessReturnsFirstError(t *testing.T) {
	p, err := NewProcessor[int](1, 1)
	require.NoError(t, err)
	boom := errors.New("boom")

	var visited int32
	err = p.Process(context.Background(), []int{0, 1, 2, 3}, func(_ context.Context, _ []int, start int) error {
		atomic.AddInt32(&visited, 1)
		if start == 1 {
			return boom
		}
		return nil
	})
	require.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "batch at 1")
	assert.Less(t, atomic.LoadInt32(&visited), int32(4), "later batches are cancelled")
}

func TestProcessor_NilCallback(t *testing.T) {
	p, err := NewProcessor[int](1, 1)
	require.NoError(t, err)
	require.ErrorIs(t, p.Process(context.Background(), []int{1}, nil), ErrNilCallback)
}
