package service

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/guregu/null.v3"

	"github.com/gmstracker/backend/internal/model"
)

func TestBuildSnapshotHistory(t *testing.T) {
	day := func(d int) time.Time { return time.Date(2026, 8, d, 0, 0, 0, 0, time.UTC) }

	t.Run("no snapshots", func(t *testing.T) {
		history := buildSnapshotHistory(nil)
		assert.Empty(t, history.Points)
	})

	t.Run("deltas between consecutive snapshots", func(t *testing.T) {
		snapshots := []*model.CharacterXPSnapshot{
			{SnapshotDate: day(1), TotalXP: decimal.RequireFromString("1000"), Level: null.IntFrom(260)},
			{SnapshotDate: day(2), TotalXP: decimal.RequireFromString("1500"), Level: null.IntFrom(260)},
			{SnapshotDate: day(5), TotalXP: decimal.RequireFromString("2100")},
		}

		history := buildSnapshotHistory(snapshots)
		require.Len(t, history.Points, 3)

		assert.True(t, history.Points[0].GainedXP.IsZero())
		require.NotNil(t, history.Points[0].Level)
		assert.Equal(t, 260, *history.Points[0].Level)

		assert.True(t, history.Points[1].GainedXP.Equal(decimal.RequireFromString("500")))
		assert.True(t, history.Points[2].GainedXP.Equal(decimal.RequireFromString("600")))
		assert.Nil(t, history.Points[2].Level)
	})

	t.Run("a regression reads as zero gain", func(t *testing.T) {
		snapshots := []*model.CharacterXPSnapshot{
			{SnapshotDate: day(1), TotalXP: decimal.RequireFromString("5000")},
			{SnapshotDate: day(2), TotalXP: decimal.RequireFromString("4000")},
			{SnapshotDate: day(3), TotalXP: decimal.RequireFromString("4500")},
		}

		history := buildSnapshotHistory(snapshots)
		require.Len(t, history.Points, 3)
		assert.True(t, history.Points[1].GainedXP.IsZero())
		assert.True(t, history.Points[2].GainedXP.Equal(decimal.RequireFromString("500")))
	})
}

func TestComputeSnapshotGains(t *testing.T) {
	day := func(d int) time.Time { return time.Date(2026, 8, d, 0, 0, 0, 0, time.UTC) }
	today := day(20)

	t.Run("no snapshots", func(t *testing.T) {
		gains := computeSnapshotGains(nil, today)
		assert.Nil(t, gains.XPToday)
		assert.Nil(t, gains.XPYesterday)
		assert.Nil(t, gains.AvgDailyXP)
		assert.Nil(t, gains.TotalGained)
		assert.Zero(t, gains.DaysTracked)
	})

	t.Run("consecutive days", func(t *testing.T) {
		snapshots := []*model.CharacterXPSnapshot{
			{SnapshotDate: day(18), TotalXP: decimal.RequireFromString("1000")},
			{SnapshotDate: day(19), TotalXP: decimal.RequireFromString("1600")},
			{SnapshotDate: day(20), TotalXP: decimal.RequireFromString("2400")},
		}

		gains := computeSnapshotGains(snapshots, today)
		require.NotNil(t, gains.XPToday)
		assert.True(t, gains.XPToday.Equal(decimal.RequireFromString("800")))
		require.NotNil(t, gains.XPYesterday)
		assert.True(t, gains.XPYesterday.Equal(decimal.RequireFromString("600")))
		require.NotNil(t, gains.TotalGained)
		assert.True(t, gains.TotalGained.Equal(decimal.RequireFromString("1400")))
		require.NotNil(t, gains.AvgDailyXP)
		assert.True(t, gains.AvgDailyXP.Equal(decimal.RequireFromString("700")))
		assert.Equal(t, 3, gains.DaysTracked)
	})

	t.Run("gap before today falls back to the latest earlier snapshot", func(t *testing.T) {
		snapshots := []*model.CharacterXPSnapshot{
			{SnapshotDate: day(16), TotalXP: decimal.RequireFromString("1000")},
			{SnapshotDate: day(20), TotalXP: decimal.RequireFromString("1300")},
		}

		gains := computeSnapshotGains(snapshots, today)
		require.NotNil(t, gains.XPToday)
		assert.True(t, gains.XPToday.Equal(decimal.RequireFromString("300")))
		assert.Nil(t, gains.XPYesterday)
		assert.Equal(t, 2, gains.DaysTracked)
	})

	t.Run("regression yields no gains", func(t *testing.T) {
		snapshots := []*model.CharacterXPSnapshot{
			{SnapshotDate: day(19), TotalXP: decimal.RequireFromString("5000")},
			{SnapshotDate: day(20), TotalXP: decimal.RequireFromString("4000")},
		}

		gains := computeSnapshotGains(snapshots, today)
		assert.Nil(t, gains.XPToday)
		assert.Nil(t, gains.TotalGained)
		assert.Nil(t, gains.AvgDailyXP)
		assert.Equal(t, 2, gains.DaysTracked)
	})

	t.Run("week window excludes older snapshots", func(t *testing.T) {
		snapshots := []*model.CharacterXPSnapshot{
			{SnapshotDate: day(12), TotalXP: decimal.RequireFromString("100")},
			{SnapshotDate: day(14), TotalXP: decimal.RequireFromString("500")},
			{SnapshotDate: day(20), TotalXP: decimal.RequireFromString("900")},
		}

		gains := computeSnapshotGains(snapshots, today)
		assert.Equal(t, 2, gains.DaysTracked)
		require.NotNil(t, gains.TotalGained)
		assert.True(t, gains.TotalGained.Equal(decimal.RequireFromString("400")))
	})
}
