package service

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gmstracker/backend/internal/model"
	"github.com/gmstracker/backend/internal/pkg/xptable"
)

func testXPService() *XP {
	table := xptable.New([]xptable.Requirement{
		{
			Level:     260,
			Actual:    decimal.RequireFromString("100000000000"),
			Billions:  decimal.RequireFromString("100"),
			Trillions: decimal.RequireFromString("0.1"),
		},
		{
			Level:     210,
			Actual:    decimal.RequireFromString("40000000000"),
			Billions:  decimal.RequireFromString("40"),
			Trillions: decimal.RequireFromString("0.04"),
		},
	})
	return &XP{XPTable: &XPTable{table: table}}
}

func TestComputeGain(t *testing.T) {
	s := testXPService()

	t.Run("plain gain from percent pair", func(t *testing.T) {
		entry := &model.XPEntry{
			Level:      260,
			OldPercent: decimal.RequireFromString("10"),
			NewPercent: decimal.RequireFromString("35"),
		}
		require.NoError(t, s.computeGain(entry))
		assert.True(t, entry.XPGainedBillions.Equal(decimal.RequireFromString("25")), "billions: %s", entry.XPGainedBillions)
		assert.True(t, entry.XPGainedTrillions.Equal(decimal.RequireFromString("0.025")), "trillions: %s", entry.XPGainedTrillions)
		assert.True(t, entry.TotalDailyXPBillions.Equal(entry.XPGainedBillions))
		assert.False(t, entry.EpicXPBillions.Valid)
	})

	t.Run("equal percents are rejected", func(t *testing.T) {
		entry := &model.XPEntry{
			Level:      260,
			OldPercent: decimal.RequireFromString("50"),
			NewPercent: decimal.RequireFromString("50"),
		}
		assert.Error(t, s.computeGain(entry))
	})

	t.Run("decreasing percents are rejected", func(t *testing.T) {
		entry := &model.XPEntry{
			Level:      260,
			OldPercent: decimal.RequireFromString("60"),
			NewPercent: decimal.RequireFromString("40"),
		}
		assert.Error(t, s.computeGain(entry))
	})

	t.Run("level outside the table", func(t *testing.T) {
		entry := &model.XPEntry{
			Level:      180,
			OldPercent: decimal.Zero,
			NewPercent: decimal.RequireFromString("10"),
		}
		assert.Error(t, s.computeGain(entry))
	})

	t.Run("epic bonus tier four means five times base", func(t *testing.T) {
		entry := &model.XPEntry{
			Level:                 260,
			OldPercent:            decimal.Zero,
			NewPercent:            decimal.RequireFromString("10"),
			EpicDungeon:           true,
			EpicDungeonMultiplier: 4,
		}
		require.NoError(t, s.computeGain(entry))
		require.True(t, entry.EpicXPBillions.Valid)
		// base 194.6 at level 260, tier 4 is base + 4x bonus
		assert.True(t, entry.EpicXPBillions.Decimal.Equal(decimal.RequireFromString("973")), "epic: %s", entry.EpicXPBillions.Decimal)
		assert.True(t, entry.TotalDailyXPBillions.Equal(decimal.RequireFromString("983")), "total: %s", entry.TotalDailyXPBillions)
	})

	t.Run("epic bonus unsupported at level", func(t *testing.T) {
		entry := &model.XPEntry{
			Level:       210,
			OldPercent:  decimal.Zero,
			NewPercent:  decimal.RequireFromString("10"),
			EpicDungeon: true,
		}
		assert.Error(t, s.computeGain(entry))
	})

	t.Run("disabling epic clears the bonus columns", func(t *testing.T) {
		entry := &model.XPEntry{
			Level:                 260,
			OldPercent:            decimal.Zero,
			NewPercent:            decimal.RequireFromString("10"),
			EpicDungeonMultiplier: 8,
		}
		require.NoError(t, s.computeGain(entry))
		assert.Zero(t, entry.EpicDungeonMultiplier)
		assert.False(t, entry.EpicXPBillions.Valid)
		assert.True(t, entry.TotalDailyXPBillions.Equal(entry.XPGainedBillions))
	})
}

func TestComputeXPStats(t *testing.T) {
	t.Run("empty window", func(t *testing.T) {
		stats := computeXPStats(nil, 7)
		assert.Equal(t, 7, stats.Days)
		assert.Zero(t, stats.TotalEntries)
		assert.Nil(t, stats.BestDay)
		assert.Nil(t, stats.FirstEntryDate)
		assert.True(t, stats.TotalBillions.IsZero())
		assert.True(t, stats.AvgTrillions.IsZero())
	})

	t.Run("totals and best day", func(t *testing.T) {
		day := func(d int) time.Time { return time.Date(2026, 8, d, 0, 0, 0, 0, time.UTC) }
		entries := []*model.XPEntry{
			{EntryDate: day(1), Level: 260, TotalDailyXPBillions: decimal.RequireFromString("120"), TotalDailyXPTrillions: decimal.RequireFromString("0.12")},
			{EntryDate: day(2), Level: 260, TotalDailyXPBillions: decimal.RequireFromString("300"), TotalDailyXPTrillions: decimal.RequireFromString("0.3")},
			{EntryDate: day(3), Level: 261, TotalDailyXPBillions: decimal.RequireFromString("90"), TotalDailyXPTrillions: decimal.RequireFromString("0.09")},
		}

		stats := computeXPStats(entries, 7)
		assert.Equal(t, 7, stats.Days)
		assert.Equal(t, 3, stats.TotalEntries)
		assert.True(t, stats.TotalBillions.Equal(decimal.RequireFromString("510")))
		assert.True(t, stats.TotalTrillions.Equal(decimal.RequireFromString("0.51")))
		assert.True(t, stats.AvgBillions.Equal(decimal.RequireFromString("170")))
		assert.True(t, stats.AvgTrillions.Equal(decimal.RequireFromString("0.17")))
		require.NotNil(t, stats.BestDay)
		assert.Equal(t, day(2), stats.BestDay.EntryDate)
		assert.Equal(t, 261, stats.CurrentLevel)
		assert.Equal(t, day(1), *stats.FirstEntryDate)
		assert.Equal(t, day(3), *stats.LastEntryDate)
	})
}
