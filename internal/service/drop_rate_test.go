package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputePairStats(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	t.Run("no clears yields a zero-rate row", func(t *testing.T) {
		stats := computePairStats(1, 100, 0, 0, now)
		require.NotNil(t, stats)
		assert.Equal(t, 0, stats.SampleSize)
		assert.Equal(t, 0, stats.DropCount)
		assert.Zero(t, stats.DropRate)
		assert.Equal(t, now, stats.LastComputed)
	})

	t.Run("rate is drops over clears", func(t *testing.T) {
		stats := computePairStats(1, 100, 200, 3, now)
		assert.Equal(t, 200, stats.SampleSize)
		assert.Equal(t, 3, stats.DropCount)
		assert.InDelta(t, 0.015, stats.DropRate, 1e-12)
	})

	t.Run("guaranteed drop reaches a full rate", func(t *testing.T) {
		stats := computePairStats(2, 200, 50, 50, now)
		assert.InDelta(t, 1.0, stats.DropRate, 1e-12)
	})

	t.Run("drop rows can outnumber clears", func(t *testing.T) {
		// drop_count counts ledger rows, which include repeat drops
		// within a run and drops logged on non-clear runs
		stats := computePairStats(2, 200, 10, 13, now)
		assert.Equal(t, 13, stats.DropCount)
		assert.InDelta(t, 1.3, stats.DropRate, 1e-12)
	})
}
