package service

import (
	"context"
	"time"

	"github.com/go-redsync/redsync/v4"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/uptrace/bun"
	"gopkg.in/guregu/null.v3"

	"github.com/gmstracker/backend/internal/constant"
	"github.com/gmstracker/backend/internal/model"
	"github.com/gmstracker/backend/internal/model/types"
	modelv1 "github.com/gmstracker/backend/internal/model/v1"
	"github.com/gmstracker/backend/internal/pkg/gameweek"
	"github.com/gmstracker/backend/internal/pkg/pgerr"
	"github.com/gmstracker/backend/internal/repo"
)

type Run struct {
	BossRunRepo      *repo.BossRun
	BossService      *Boss
	ItemService      *Item
	CharacterService *Character
	RedSync          *redsync.Redsync
}

func NewRun(bossRunRepo *repo.BossRun, bossService *Boss, itemService *Item, characterService *Character, redSync *redsync.Redsync) *Run {
	return &Run{
		BossRunRepo:      bossRunRepo,
		BossService:      bossService,
		ItemService:      itemService,
		CharacterService: characterService,
		RedSync:          redSync,
	}
}

// RecordRun logs one boss-clear attempt with its drops. For weekly
// bosses a successful clear is unique per (character, boss, week);
// the check-then-insert runs under a per-character-boss-week mutex so
// concurrent duplicate submissions cannot both pass the check.
func (s *Run) RecordRun(ctx context.Context, accountId int, req *types.RecordRunRequest) (*model.BossRun, error) {
	characterId, err := uuid.Parse(req.CharacterID)
	if err != nil {
		return nil, pgerr.ErrInvalidReq.Msg("invalid character id: %s", req.CharacterID)
	}

	character, err := s.CharacterService.GetOwnedCharacter(ctx, accountId, characterId)
	if err != nil {
		return nil, err
	}

	boss, err := s.BossService.GetBossById(ctx, req.BossID)
	if err != nil {
		return nil, err
	}

	clearedAt := time.Now()
	if req.ClearedAt != "" {
		clearedAt, err = time.Parse(time.RFC3339, req.ClearedAt)
		if err != nil {
			return nil, pgerr.ErrInvalidReq.Msg("invalid clearedAt: %s", req.ClearedAt)
		}
	}

	partySize := req.PartySize
	if partySize == 0 {
		partySize = boss.PartySize
	}

	isClear := req.IsClear != nil && *req.IsClear
	weekStart := gameweek.StartDate(clearedAt)

	run := &model.BossRun{
		RunID:       uuid.New(),
		CharacterID: character.CharacterID,
		BossID:      boss.BossID,
		ClearedAt:   clearedAt,
		WeekStart:   weekStart,
		PartySize:   partySize,
		IsClear:     isClear,
		CreatedAt:   time.Now(),
	}
	if req.Notes != "" {
		run.Notes = null.StringFrom(req.Notes)
	}

	drops, err := s.buildDrops(ctx, run, req.Drops)
	if err != nil {
		return nil, err
	}

	if needsWeeklyClearGuard(boss, isClear) {
		mutex := s.RedSync.NewMutex(
			constant.ClearLockKey+":"+character.CharacterID.String()+":"+boss.FullName()+":"+weekStart.Format(constant.ISODateFormat),
			redsync.WithExpiry(8*time.Second),
			redsync.WithTries(16),
		)
		if err := mutex.Lock(); err != nil {
			return nil, err
		}
		defer func() {
			if _, err := mutex.Unlock(); err != nil {
				log.Warn().Err(err).Msg("failed to release weekly clear lock")
			}
		}()
	}

	err = s.BossRunRepo.DB.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if needsWeeklyClearGuard(boss, isClear) {
			exists, err := s.BossRunRepo.HasWeeklyClear(ctx, tx, []uuid.UUID{character.CharacterID}, boss.BossID, weekStart)
			if err != nil {
				return err
			}
			if exists {
				return weeklyClearConflict(boss, weekStart)
			}
		}
		if err := s.BossRunRepo.InsertRun(ctx, tx, run); err != nil {
			return err
		}
		return s.BossRunRepo.InsertDrops(ctx, tx, drops)
	})
	if err != nil {
		return nil, err
	}

	return s.BossRunRepo.GetRunById(ctx, run.RunID)
}

// needsWeeklyClearGuard reports whether a run falls under the weekly
// uniqueness rule: only successful clears of weekly bosses are unique
// per character and reset week. Attempts and daily/monthly bosses may
// repeat freely.
func needsWeeklyClearGuard(boss *model.Boss, isClear bool) bool {
	return boss.ResetType == constant.ResetTypeWeekly && isClear
}

func weeklyClearConflict(boss *model.Boss, weekStart time.Time) error {
	return pgerr.ErrConflict.Msg("%s already cleared for this character in the week of %s", boss.FullName(), weekStart.Format(constant.ISODateFormat))
}

// buildDrops validates the submitted drops against the item catalog.
// Unknown item ids are skipped silently rather than failing the run.
func (s *Run) buildDrops(ctx context.Context, run *model.BossRun, reqDrops []types.RunDrop) ([]*model.BossRunDrop, error) {
	if len(reqDrops) == 0 {
		return nil, nil
	}
	items, err := s.ItemService.GetItemsMap(ctx)
	if err != nil {
		return nil, err
	}
	return filterDrops(run, reqDrops, items), nil
}

// filterDrops keeps the drops whose item exists in the catalog. The
// boss's registered drop table is not consulted: it is curated and can
// lag behind what actually drops.
func filterDrops(run *model.BossRun, reqDrops []types.RunDrop, items map[int]*model.Item) []*model.BossRunDrop {
	drops := make([]*model.BossRunDrop, 0, len(reqDrops))
	for _, d := range reqDrops {
		if _, ok := items[d.ItemID]; !ok {
			log.Debug().
				Int("bossId", run.BossID).
				Int("itemId", d.ItemID).
				Msg("skipping drop for unknown item")
			continue
		}
		quantity := d.Quantity
		if quantity == 0 {
			quantity = 1
		}
		drops = append(drops, &model.BossRunDrop{
			RunID:    run.RunID,
			ItemID:   d.ItemID,
			Quantity: quantity,
		})
	}
	return drops
}

// AddDrop appends a drop to an existing run after the fact.
func (s *Run) AddDrop(ctx context.Context, accountId int, runId uuid.UUID, req *types.AddDropRequest) (*model.BossRun, error) {
	run, err := s.getOwnedRun(ctx, accountId, runId)
	if err != nil {
		return nil, err
	}

	// unlike bulk submission, a standalone drop names one item, so an
	// unknown id is an error rather than a skip
	if _, err := s.ItemService.GetItemById(ctx, req.ItemID); err != nil {
		return nil, pgerr.ErrNotFound.Msg("item %d does not exist", req.ItemID)
	}

	quantity := req.Quantity
	if quantity == 0 {
		quantity = 1
	}
	drops := []*model.BossRunDrop{{
		RunID:    run.RunID,
		ItemID:   req.ItemID,
		Quantity: quantity,
	}}
	if err := s.BossRunRepo.InsertDrops(ctx, nil, drops); err != nil {
		return nil, err
	}

	return s.BossRunRepo.GetRunById(ctx, runId)
}

// GetRun returns a single run with its drops. Runs owned by another
// account are visible as existing but not readable.
func (s *Run) GetRun(ctx context.Context, accountId int, runId uuid.UUID) (*model.BossRun, error) {
	return s.getOwnedRun(ctx, accountId, runId)
}

func (s *Run) getOwnedRun(ctx context.Context, accountId int, runId uuid.UUID) (*model.BossRun, error) {
	run, err := s.BossRunRepo.GetRunById(ctx, runId)
	if err != nil {
		return nil, err
	}
	if run.Character == nil || run.Character.AccountID != accountId {
		return nil, pgerr.ErrForbidden
	}
	return run, nil
}

type RunList struct {
	Runs     []*model.BossRun `json:"runs"`
	Total    int              `json:"total"`
	Page     int              `json:"page"`
	PageSize int              `json:"pageSize"`
}

func (s *Run) ListRuns(ctx context.Context, accountId int, query *types.ListRunsQuery) (*RunList, error) {
	characterIds, err := s.CharacterService.OwnedCharacterIds(ctx, accountId)
	if err != nil {
		return nil, err
	}
	if query.CharacterID != "" {
		characterId, err := uuid.Parse(query.CharacterID)
		if err != nil {
			return nil, pgerr.ErrInvalidReq.Msg("invalid character id: %s", query.CharacterID)
		}
		found := false
		for _, id := range characterIds {
			if id == characterId {
				found = true
				break
			}
		}
		if !found {
			return nil, pgerr.ErrNotFound
		}
		characterIds = []uuid.UUID{characterId}
	}

	filter := repo.RunFilter{
		CharacterIds: characterIds,
		BossID:       query.BossID,
	}
	if query.WeekStart != "" {
		filter.WeekStart, err = time.Parse(constant.ISODateFormat, query.WeekStart)
		if err != nil {
			return nil, pgerr.ErrInvalidReq.Msg("invalid weekStart date: %s", query.WeekStart)
		}
	}
	if query.From != "" {
		filter.From, err = time.Parse(constant.ISODateFormat, query.From)
		if err != nil {
			return nil, pgerr.ErrInvalidReq.Msg("invalid from date: %s", query.From)
		}
	}
	if query.To != "" {
		to, err := time.Parse(constant.ISODateFormat, query.To)
		if err != nil {
			return nil, pgerr.ErrInvalidReq.Msg("invalid to date: %s", query.To)
		}
		filter.To = to.AddDate(0, 0, 1)
	}

	page := query.Page
	if page == 0 {
		page = 1
	}
	pageSize := query.PageSize
	if pageSize == 0 {
		pageSize = constant.DefaultPageSize
	}

	if len(characterIds) == 0 {
		return &RunList{Runs: []*model.BossRun{}, Page: page, PageSize: pageSize}, nil
	}

	total, err := s.BossRunRepo.CountRuns(ctx, filter)
	if err != nil {
		return nil, err
	}
	runs, err := s.BossRunRepo.ListRuns(ctx, filter, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, err
	}

	return &RunList{
		Runs:     runs,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

func (s *Run) DeleteRun(ctx context.Context, accountId int, runId uuid.UUID) error {
	if _, err := s.getOwnedRun(ctx, accountId, runId); err != nil {
		return err
	}
	return s.BossRunRepo.DeleteRun(ctx, runId)
}

// WeeklyProgress assembles the current week's clear checklist across all
// of the account's characters, or one of them when characterId is given.
// The first clear of a boss wins; later clears by other characters do
// not double count. The meso estimate sums
// crystal_meso / party_size_of_clearing_run with integer truncation.
func (s *Run) WeeklyProgress(ctx context.Context, accountId int, characterId string) (*modelv1.WeeklyProgress, error) {
	now := time.Now()
	weekStart := gameweek.StartDate(now)

	var characterIds []uuid.UUID
	if characterId != "" {
		id, err := uuid.Parse(characterId)
		if err != nil {
			return nil, pgerr.ErrInvalidReq.Msg("invalid character id: %s", characterId)
		}
		character, err := s.CharacterService.GetOwnedCharacter(ctx, accountId, id)
		if err != nil {
			return nil, err
		}
		characterIds = []uuid.UUID{character.CharacterID}
	} else {
		var err error
		characterIds, err = s.CharacterService.OwnedCharacterIds(ctx, accountId)
		if err != nil {
			return nil, err
		}
	}

	bosses, err := s.BossService.GetWeeklyBosses(ctx)
	if err != nil {
		return nil, err
	}

	clears, err := s.BossRunRepo.GetWeeklyClears(ctx, characterIds, weekStart)
	if err != nil {
		return nil, err
	}

	return assembleWeeklyProgress(weekStart, gameweek.EndDate(now), bosses, clears), nil
}

// assembleWeeklyProgress is pure so the first-clear-wins and meso math
// can be tested without a database.
func assembleWeeklyProgress(weekStart, weekEnd time.Time, bosses []*model.Boss, clears []*model.BossRun) *modelv1.WeeklyProgress {
	// clears arrive oldest first, so the first run per boss wins
	firstClears := make(map[int]*model.BossRun)
	for _, run := range clears {
		if _, ok := firstClears[run.BossID]; !ok {
			firstClears[run.BossID] = run
		}
	}

	states := make([]*modelv1.WeeklyBossState, 0, len(bosses))
	summary := &modelv1.WeeklySummary{TotalBosses: len(bosses)}
	for _, boss := range bosses {
		state := &modelv1.WeeklyBossState{
			BossID:      boss.BossID,
			Name:        boss.Name,
			Difficulty:  boss.Difficulty,
			CrystalMeso: boss.CrystalMeso,
			PartySize:   boss.PartySize,
		}
		if run, ok := firstClears[boss.BossID]; ok {
			state.Cleared = true
			clearedAt := run.ClearedAt
			state.ClearedAt = &clearedAt
			if run.Character != nil {
				state.CharacterID = null.StringFrom(run.Character.CharacterID.String())
				state.CharacterName = null.StringFrom(run.Character.Name)
			}
			summary.ClearedCount++
			if boss.CrystalMeso.Valid && run.PartySize > 0 {
				summary.EstimatedMesoShare += boss.CrystalMeso.Int64 / int64(run.PartySize)
			}
		}
		states = append(states, state)
	}

	return &modelv1.WeeklyProgress{
		WeekStart: weekStart,
		WeekEnd:   weekEnd,
		Bosses:    states,
		Summary:   summary,
	}
}
