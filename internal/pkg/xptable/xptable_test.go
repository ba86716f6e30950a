package xptable

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func testTable() *Table {
	return New([]Requirement{
		{Level: 249, Actual: dec("400000000000"), Billions: dec("400"), Trillions: dec("0.4")},
		{Level: 250, Actual: dec("500000000000"), Billions: dec("500"), Trillions: dec("0.5")},
		{Level: 251, Actual: dec("600000000000"), Billions: dec("600"), Trillions: dec("0.6")},
	})
}

func TestGained(t *testing.T) {
	tbl := testTable()

	t.Run("simple delta", func(t *testing.T) {
		g, err := tbl.Gained(250, dec("10.00"), dec("15.00"))
		require.NoError(t, err)
		assert.True(t, g.Actual.Equal(dec("25000000000")), "actual: %s", g.Actual)
		assert.True(t, g.Billions.Equal(dec("25")), "billions: %s", g.Billions)
		assert.True(t, g.Trillions.Equal(dec("0.025")), "trillions: %s", g.Trillions)
	})

	t.Run("full level equals the requirement exactly", func(t *testing.T) {
		g, err := tbl.Gained(250, dec("0"), dec("100"))
		require.NoError(t, err)
		assert.True(t, g.Actual.Equal(dec("500000000000")))
	})

	t.Run("equal percents yield zero", func(t *testing.T) {
		g, err := tbl.Gained(250, dec("42.42"), dec("42.42"))
		require.NoError(t, err)
		assert.True(t, g.Actual.IsZero())
		assert.True(t, g.Billions.IsZero())
		assert.True(t, g.Trillions.IsZero())
	})

	t.Run("decreasing percents rejected", func(t *testing.T) {
		_, err := tbl.Gained(250, dec("50"), dec("49.99"))
		assert.ErrorIs(t, err, ErrPercentOutOfOrder)
	})

	t.Run("level outside table", func(t *testing.T) {
		_, err := tbl.Gained(199, dec("0"), dec("1"))
		assert.ErrorIs(t, err, ErrLevelOutOfRange)
	})
}

func TestGainAddKeepsScalingsConsistent(t *testing.T) {
	tbl := testTable()
	a, err := tbl.Gained(250, dec("0"), dec("10"))
	require.NoError(t, err)
	b, err := tbl.Gained(251, dec("0"), dec("10"))
	require.NoError(t, err)

	sum := a.Add(b)
	assert.True(t, sum.Actual.Equal(dec("110000000000")))
	assert.True(t, sum.Billions.Equal(dec("110")))
	assert.True(t, sum.Trillions.Equal(dec("0.11")))
}

func TestCumulativeStart(t *testing.T) {
	tbl := testTable()

	start, err := tbl.CumulativeStart(249)
	require.NoError(t, err)
	assert.True(t, start.IsZero())

	start, err = tbl.CumulativeStart(251)
	require.NoError(t, err)
	assert.True(t, start.Equal(dec("900000000000")))

	_, err = tbl.CumulativeStart(300)
	assert.ErrorIs(t, err, ErrLevelOutOfRange)
}

func TestProgressPercent(t *testing.T) {
	tbl := testTable()

	pct, err := tbl.ProgressPercent(250, dec("650000000000"))
	require.NoError(t, err)
	assert.True(t, pct.Equal(dec("50")), "got %s", pct)

	// readings below the level floor clamp to 0
	pct, err = tbl.ProgressPercent(250, dec("100000000000"))
	require.NoError(t, err)
	assert.True(t, pct.IsZero())

	// readings past the level ceiling clamp to 100
	pct, err = tbl.ProgressPercent(250, dec("2000000000000"))
	require.NoError(t, err)
	assert.True(t, pct.Equal(dec("100")))
}

func TestEpicBonus(t *testing.T) {
	t.Run("base tier", func(t *testing.T) {
		g, ok := EpicBonus(260, 1)
		require.True(t, ok)
		assert.True(t, g.Billions.Equal(dec("194.6")), "got %s", g.Billions)
		assert.True(t, g.Trillions.Equal(dec("0.1946")))
	})

	t.Run("tier four is five times base", func(t *testing.T) {
		g, ok := EpicBonus(260, 4)
		require.True(t, ok)
		assert.True(t, g.Billions.Equal(dec("973")), "got %s", g.Billions)
	})

	t.Run("tier eight is nine times base", func(t *testing.T) {
		g, ok := EpicBonus(260, 8)
		require.True(t, ok)
		assert.True(t, g.Billions.Equal(dec("1751.4")), "got %s", g.Billions)
	})

	t.Run("unsupported level", func(t *testing.T) {
		_, ok := EpicBonus(268, 1)
		assert.False(t, ok)
		_, ok = EpicBonus(259, 1)
		assert.False(t, ok)
		assert.False(t, EpicSupported(295))
		assert.True(t, EpicSupported(294))
	})
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "xp_table.csv")
	csv := "level,actual,billions,trillions\n" +
		"200,1000000000,1,0.001\n" +
		"201,2000000000,2,0.002\n"
	require.NoError(t, os.WriteFile(path, []byte(csv), 0o644))

	tbl, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []int{200, 201}, tbl.Levels())

	req, err := tbl.Require(200)
	require.NoError(t, err)
	assert.True(t, req.Actual.Equal(dec("1000000000")))

	_, err = Load(filepath.Join(dir, "missing.csv"))
	assert.Error(t, err)
}
