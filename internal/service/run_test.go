package service

import (
	"context"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/guregu/null.v3"

	"github.com/gmstracker/backend/internal/constant"
	"github.com/gmstracker/backend/internal/model"
	"github.com/gmstracker/backend/internal/model/types"
	"github.com/gmstracker/backend/internal/pkg/pgerr"
)

func TestAssembleWeeklyProgress(t *testing.T) {
	weekStart := time.Date(2026, 8, 27, 0, 0, 0, 0, time.UTC)
	weekEnd := weekStart.AddDate(0, 0, 7)

	bosses := []*model.Boss{
		{BossID: 1, Name: "Lotus", Difficulty: null.StringFrom("Hard"), PartySize: 2, CrystalMeso: null.IntFrom(250_000_000)},
		{BossID: 2, Name: "Damien", Difficulty: null.StringFrom("Hard"), PartySize: 2, CrystalMeso: null.IntFrom(160_000_000)},
		{BossID: 3, Name: "Lucid", Difficulty: null.StringFrom("Normal"), PartySize: 6},
	}

	char := &model.Character{CharacterID: uuid.New(), Name: "Hero"}
	alt := &model.Character{CharacterID: uuid.New(), Name: "Bishop"}

	t.Run("empty week", func(t *testing.T) {
		progress := assembleWeeklyProgress(weekStart, weekEnd, bosses, nil)
		require.Len(t, progress.Bosses, 3)
		assert.Equal(t, 0, progress.Summary.ClearedCount)
		assert.Equal(t, 3, progress.Summary.TotalBosses)
		assert.EqualValues(t, 0, progress.Summary.EstimatedMesoShare)
		for _, state := range progress.Bosses {
			assert.False(t, state.Cleared)
			assert.Nil(t, state.ClearedAt)
		}
	})

	t.Run("first clear wins", func(t *testing.T) {
		early := weekStart.Add(2 * time.Hour)
		late := weekStart.Add(48 * time.Hour)
		clears := []*model.BossRun{
			{BossID: 1, ClearedAt: early, PartySize: 2, Character: char},
			{BossID: 1, ClearedAt: late, PartySize: 1, Character: alt},
		}

		progress := assembleWeeklyProgress(weekStart, weekEnd, bosses, clears)
		state := progress.Bosses[0]
		require.True(t, state.Cleared)
		assert.Equal(t, early, *state.ClearedAt)
		assert.Equal(t, "Hero", state.CharacterName.String)
		assert.Equal(t, 1, progress.Summary.ClearedCount)
	})

	t.Run("meso share splits by party size with truncation", func(t *testing.T) {
		clears := []*model.BossRun{
			{BossID: 1, ClearedAt: weekStart, PartySize: 3, Character: char},
			{BossID: 2, ClearedAt: weekStart, PartySize: 2, Character: char},
			// no crystal value on Lucid; contributes nothing
			{BossID: 3, ClearedAt: weekStart, PartySize: 6, Character: char},
		}

		progress := assembleWeeklyProgress(weekStart, weekEnd, bosses, clears)
		assert.Equal(t, 3, progress.Summary.ClearedCount)
		assert.EqualValues(t, 250_000_000/3+160_000_000/2, progress.Summary.EstimatedMesoShare)
	})

	t.Run("clear for unknown boss is ignored", func(t *testing.T) {
		clears := []*model.BossRun{
			{BossID: 99, ClearedAt: weekStart, PartySize: 1, Character: char},
		}

		progress := assembleWeeklyProgress(weekStart, weekEnd, bosses, clears)
		assert.Equal(t, 0, progress.Summary.ClearedCount)
	})
}

func TestFilterDrops(t *testing.T) {
	run := &model.BossRun{RunID: uuid.New(), BossID: 1}
	items := map[int]*model.Item{
		100: {ItemID: 100, Name: "Berserked"},
		101: {ItemID: 101, Name: "Magic Eyepatch"},
	}

	t.Run("unknown items are skipped silently", func(t *testing.T) {
		drops := filterDrops(run, []types.RunDrop{
			{ItemID: 100, Quantity: 1},
			{ItemID: 999, Quantity: 1},
			{ItemID: 101, Quantity: 2},
		}, items)

		require.Len(t, drops, 2)
		assert.Equal(t, 100, drops[0].ItemID)
		assert.Equal(t, 101, drops[1].ItemID)
		assert.Equal(t, 2, drops[1].Quantity)
		assert.Equal(t, run.RunID, drops[0].RunID)
	})

	t.Run("quantity defaults to one", func(t *testing.T) {
		drops := filterDrops(run, []types.RunDrop{{ItemID: 100}}, items)
		require.Len(t, drops, 1)
		assert.Equal(t, 1, drops[0].Quantity)
	})

	t.Run("all unknown yields an empty batch", func(t *testing.T) {
		drops := filterDrops(run, []types.RunDrop{{ItemID: 998}, {ItemID: 999}}, items)
		assert.Empty(t, drops)
	})
}

func TestWeeklyClearGuard(t *testing.T) {
	weekly := &model.Boss{BossID: 1, Name: "Lotus", Difficulty: null.StringFrom("Hard"), ResetType: constant.ResetTypeWeekly}
	daily := &model.Boss{BossID: 2, Name: "Zakum", ResetType: constant.ResetTypeDaily}

	t.Run("only weekly clears are guarded", func(t *testing.T) {
		assert.True(t, needsWeeklyClearGuard(weekly, true))
		assert.False(t, needsWeeklyClearGuard(weekly, false))
		assert.False(t, needsWeeklyClearGuard(daily, true))
	})

	t.Run("duplicate weekly clear conflicts", func(t *testing.T) {
		weekStart := time.Date(2026, 8, 27, 0, 0, 0, 0, time.UTC)
		err := weeklyClearConflict(weekly, weekStart)
		var trackerErr *pgerr.TrackerError
		require.ErrorAs(t, err, &trackerErr)
		assert.Equal(t, fiber.StatusConflict, trackerErr.StatusCode)
		assert.Equal(t, pgerr.CodeConflict, trackerErr.ErrorCode)
		assert.Contains(t, trackerErr.Message, "2026-08-27")
	})
}

func TestWeeklyProgressCharacterFilter(t *testing.T) {
	s := &Run{}
	_, err := s.WeeklyProgress(context.Background(), 1, "not-a-uuid")
	var trackerErr *pgerr.TrackerError
	require.ErrorAs(t, err, &trackerErr)
	assert.Equal(t, fiber.StatusBadRequest, trackerErr.StatusCode)
}
