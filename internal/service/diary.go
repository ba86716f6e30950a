package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/gmstracker/backend/internal/constant"
	"github.com/gmstracker/backend/internal/model/types"
	modelv1 "github.com/gmstracker/backend/internal/model/v1"
	"github.com/gmstracker/backend/internal/pkg/pgerr"
	"github.com/gmstracker/backend/internal/repo"
)

// Diary is the read side of the personal run ledger: per-account
// aggregates over everything the account's characters have recorded.
type Diary struct {
	BossRunRepo      *repo.BossRun
	BossService      *Boss
	ItemService      *Item
	CharacterService *Character
}

func NewDiary(bossRunRepo *repo.BossRun, bossService *Boss, itemService *Item, characterService *Character) *Diary {
	return &Diary{
		BossRunRepo:      bossRunRepo,
		BossService:      bossService,
		ItemService:      itemService,
		CharacterService: characterService,
	}
}

type DiaryList struct {
	Entries  []*repo.DropLedgerRow `json:"entries"`
	Total    int                   `json:"total"`
	Page     int                   `json:"page"`
	PageSize int                   `json:"pageSize"`
}

// ListEntries pages through the account's drop ledger, newest first.
// A character filter naming a character the account does not own reads
// as not found rather than leaking another account's ledger.
func (s *Diary) ListEntries(ctx context.Context, accountId int, query *types.ListDiaryQuery) (*DiaryList, error) {
	characterIds, err := s.CharacterService.OwnedCharacterIds(ctx, accountId)
	if err != nil {
		return nil, err
	}
	if query.CharacterID != "" {
		characterId, err := uuid.Parse(query.CharacterID)
		if err != nil {
			return nil, pgerr.ErrInvalidReq.Msg("invalid character id: %s", query.CharacterID)
		}
		if !lo.Contains(characterIds, characterId) {
			return nil, pgerr.ErrNotFound
		}
		characterIds = []uuid.UUID{characterId}
	}

	filter := repo.DropFilter{
		CharacterIds: characterIds,
		BossID:       query.BossID,
		ItemID:       query.ItemID,
		Search:       query.Search,
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

	total, err := s.BossRunRepo.CountDrops(ctx, filter)
	if err != nil {
		return nil, err
	}
	entries, err := s.BossRunRepo.ListDrops(ctx, filter, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, err
	}

	return &DiaryList{
		Entries:  entries,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

func (s *Diary) GetStats(ctx context.Context, accountId int) (*modelv1.DiaryStats, error) {
	characterIds, err := s.CharacterService.OwnedCharacterIds(ctx, accountId)
	if err != nil {
		return nil, err
	}

	totals, err := s.BossRunRepo.GetRunTotals(ctx, characterIds)
	if err != nil {
		return nil, err
	}

	bossTallies, err := s.BossRunRepo.TallyRunsByBoss(ctx, characterIds)
	if err != nil {
		return nil, err
	}

	weekTallies, err := s.BossRunRepo.TallyRunsByWeek(ctx, characterIds)
	if err != nil {
		return nil, err
	}

	totalDrops := 0
	for _, week := range weekTallies {
		totalDrops += week.Drops
	}

	bossesMap, err := s.BossService.GetBossesMap(ctx)
	if err != nil {
		return nil, err
	}

	runsByBoss := make([]*modelv1.DiaryBossRuns, 0, len(bossTallies))
	for _, tally := range bossTallies {
		entry := &modelv1.DiaryBossRuns{
			BossID: tally.BossID,
			Runs:   tally.Runs,
			Clears: tally.Clears,
		}
		if boss, ok := bossesMap[tally.BossID]; ok {
			entry.BossName = boss.Name
			entry.Difficulty = boss.Difficulty
		}
		runsByBoss = append(runsByBoss, entry)
	}

	return &modelv1.DiaryStats{
		TotalRuns:     totals.TotalRuns,
		TotalClears:   totals.TotalClears,
		TotalDrops:    totalDrops,
		FirstRunAt:    totals.FirstRunAt,
		LastRunAt:     totals.LastRunAt,
		RunsByBoss:    runsByBoss,
		WeeksRecorded: len(weekTallies),
	}, nil
}

func (s *Diary) GetItems(ctx context.Context, accountId int) (*modelv1.DiaryItems, error) {
	characterIds, err := s.CharacterService.OwnedCharacterIds(ctx, accountId)
	if err != nil {
		return nil, err
	}

	tallies, err := s.BossRunRepo.TallyDropsByItem(ctx, characterIds)
	if err != nil {
		return nil, err
	}

	itemsMap, err := s.ItemService.GetItemsMap(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]*modelv1.DiaryItemTotal, 0, len(tallies))
	for _, tally := range tallies {
		entry := &modelv1.DiaryItemTotal{
			ItemID:        tally.ItemID,
			TotalQuantity: tally.TotalQuantity,
			TimesDropped:  tally.TimesDropped,
			FirstSeenAt:   tally.FirstSeenAt,
			LastSeenAt:    tally.LastSeenAt,
		}
		if item, ok := itemsMap[tally.ItemID]; ok {
			entry.ItemName = item.Name
			entry.Rarity = item.Rarity
		}
		items = append(items, entry)
	}

	return &modelv1.DiaryItems{Items: items}, nil
}

func (s *Diary) GetTimeline(ctx context.Context, accountId int) (*modelv1.DiaryTimeline, error) {
	characterIds, err := s.CharacterService.OwnedCharacterIds(ctx, accountId)
	if err != nil {
		return nil, err
	}

	tallies, err := s.BossRunRepo.TallyRunsByWeek(ctx, characterIds)
	if err != nil {
		return nil, err
	}

	weeks := make([]*modelv1.DiaryWeek, 0, len(tallies))
	for _, tally := range tallies {
		weeks = append(weeks, &modelv1.DiaryWeek{
			WeekStart: tally.WeekStart,
			Runs:      tally.Runs,
			Clears:    tally.Clears,
			Drops:     tally.Drops,
		})
	}

	return &modelv1.DiaryTimeline{Weeks: weeks}, nil
}
