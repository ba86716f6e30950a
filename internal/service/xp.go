package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"gopkg.in/guregu/null.v3"

	"github.com/gmstracker/backend/internal/constant"
	"github.com/gmstracker/backend/internal/model"
	"github.com/gmstracker/backend/internal/model/types"
	modelv1 "github.com/gmstracker/backend/internal/model/v1"
	"github.com/gmstracker/backend/internal/pkg/pgerr"
	"github.com/gmstracker/backend/internal/pkg/xptable"
	"github.com/gmstracker/backend/internal/repo"
)

// XP manages the daily progression ledger: manual percent-pair entries
// converted to absolute experience through the requirement table.
type XP struct {
	XPEntryRepo *repo.XPEntry
	XPTable     *XPTable
}

func NewXP(xpEntryRepo *repo.XPEntry, xpTable *XPTable) *XP {
	return &XP{
		XPEntryRepo: xpEntryRepo,
		XPTable:     xpTable,
	}
}

var hundred = decimal.NewFromInt(100)

func parsePercent(raw string) (decimal.Decimal, error) {
	pct, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, pgerr.ErrInvalidReq.Msg("invalid percent value: %s", raw)
	}
	if pct.IsNegative() || pct.GreaterThan(hundred) {
		return decimal.Zero, pgerr.ErrInvalidReq.Msg("percent must be within [0, 100], got %s", raw)
	}
	return pct, nil
}

// computeGain derives the gained-experience columns of an entry from its
// level, percent pair and epic dungeon settings. Both magnitude scalings
// are produced together from the same absolute quantity.
func (s *XP) computeGain(entry *model.XPEntry) error {
	table, err := s.XPTable.Table()
	if err != nil {
		return err
	}

	if !entry.NewPercent.GreaterThan(entry.OldPercent) {
		return pgerr.ErrInvalidReq.Msg("new percent must be strictly greater than old percent")
	}

	gain, err := table.Gained(entry.Level, entry.OldPercent, entry.NewPercent)
	if err != nil {
		if errors.Is(err, xptable.ErrLevelOutOfRange) {
			return pgerr.ErrInvalidReq.Msg("level %d is outside the requirement table (%d-%d)",
				entry.Level, constant.XPTableMinLevel, constant.XPTableMaxLevel)
		}
		return err
	}

	entry.XPGainedBillions = gain.Billions
	entry.XPGainedTrillions = gain.Trillions

	total := gain
	if entry.EpicDungeon {
		if entry.EpicDungeonMultiplier == 0 {
			entry.EpicDungeonMultiplier = 1
		}
		bonus, ok := xptable.EpicBonus(entry.Level, entry.EpicDungeonMultiplier)
		if !ok {
			return pgerr.ErrUnsupported.Msg("epic dungeon bonus is not available at level %d", entry.Level)
		}
		entry.EpicXPBillions = decimal.NewNullDecimal(bonus.Billions)
		entry.EpicXPTrillions = decimal.NewNullDecimal(bonus.Trillions)
		total = total.Add(bonus)
	} else {
		entry.EpicDungeonMultiplier = 0
		entry.EpicXPBillions = decimal.NullDecimal{}
		entry.EpicXPTrillions = decimal.NullDecimal{}
	}

	entry.TotalDailyXPBillions = total.Billions
	entry.TotalDailyXPTrillions = total.Trillions
	return nil
}

func (s *XP) CreateEntry(ctx context.Context, accountId int, req *types.CreateXPEntryRequest) (*model.XPEntry, error) {
	entryDate, err := time.Parse(constant.ISODateFormat, req.EntryDate)
	if err != nil {
		return nil, pgerr.ErrInvalidReq.Msg("invalid entry date: %s", req.EntryDate)
	}

	oldPct, err := parsePercent(req.OldPercent)
	if err != nil {
		return nil, err
	}
	newPct, err := parsePercent(req.NewPercent)
	if err != nil {
		return nil, err
	}

	entry := &model.XPEntry{
		AccountID:             accountId,
		EntryDate:             entryDate,
		Level:                 req.Level,
		OldPercent:            oldPct,
		NewPercent:            newPct,
		EpicDungeon:           req.EpicDungeon,
		EpicDungeonMultiplier: req.EpicDungeonMultiplier,
	}
	if req.Notes != "" {
		entry.Notes = null.StringFrom(req.Notes)
	}

	if err := s.computeGain(entry); err != nil {
		return nil, err
	}

	if err := s.XPEntryRepo.CreateEntry(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// UpdateEntry patches an entry and recomputes every derived column, so a
// change to any input keeps both magnitude scalings consistent.
func (s *XP) UpdateEntry(ctx context.Context, accountId int, entryId uuid.UUID, req *types.UpdateXPEntryRequest) (*model.XPEntry, error) {
	entry, err := s.XPEntryRepo.GetEntryById(ctx, accountId, entryId)
	if err != nil {
		return nil, err
	}

	if req.Level != nil {
		entry.Level = *req.Level
	}
	if req.OldPercent != nil {
		entry.OldPercent, err = parsePercent(*req.OldPercent)
		if err != nil {
			return nil, err
		}
	}
	if req.NewPercent != nil {
		entry.NewPercent, err = parsePercent(*req.NewPercent)
		if err != nil {
			return nil, err
		}
	}
	if req.EpicDungeon != nil {
		entry.EpicDungeon = *req.EpicDungeon
	}
	if req.EpicDungeonMultiplier != nil {
		entry.EpicDungeonMultiplier = *req.EpicDungeonMultiplier
	}
	if req.Notes != nil {
		if *req.Notes == "" {
			entry.Notes = null.String{}
		} else {
			entry.Notes = null.StringFrom(*req.Notes)
		}
	}

	if err := s.computeGain(entry); err != nil {
		return nil, err
	}

	if err := s.XPEntryRepo.UpdateEntry(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *XP) DeleteEntry(ctx context.Context, accountId int, entryId uuid.UUID) error {
	return s.XPEntryRepo.DeleteEntry(ctx, accountId, entryId)
}

type XPEntryList struct {
	Entries  []*model.XPEntry `json:"entries"`
	Total    int              `json:"total"`
	Page     int              `json:"page"`
	PageSize int              `json:"pageSize"`
}

func (s *XP) ListEntries(ctx context.Context, accountId int, query *types.ListXPEntriesQuery) (*XPEntryList, error) {
	var from, to time.Time
	var err error
	if query.From != "" {
		from, err = time.Parse(constant.ISODateFormat, query.From)
		if err != nil {
			return nil, pgerr.ErrInvalidReq.Msg("invalid from date: %s", query.From)
		}
	}
	if query.To != "" {
		to, err = time.Parse(constant.ISODateFormat, query.To)
		if err != nil {
			return nil, pgerr.ErrInvalidReq.Msg("invalid to date: %s", query.To)
		}
	}

	page := query.Page
	if page == 0 {
		page = 1
	}
	pageSize := query.PageSize
	if pageSize == 0 {
		pageSize = constant.DefaultPageSize
	}

	total, err := s.XPEntryRepo.CountEntries(ctx, accountId, from, to)
	if err != nil {
		return nil, err
	}
	entries, err := s.XPEntryRepo.ListEntries(ctx, accountId, from, to, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, err
	}

	return &XPEntryList{
		Entries:  entries,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

func (s *XP) GetEntry(ctx context.Context, accountId int, entryId uuid.UUID) (*model.XPEntry, error) {
	return s.XPEntryRepo.GetEntryById(ctx, accountId, entryId)
}

// GetStats folds the trailing window of the ledger into rolling totals.
// Days defaults to 7, matching the headline weekly average.
func (s *XP) GetStats(ctx context.Context, accountId int, days int) (*modelv1.XPStats, error) {
	if days == 0 {
		days = constant.DefaultXPStatsDays
	}
	cutoff := time.Now().UTC().Truncate(24 * time.Hour).AddDate(0, 0, -days)
	entries, err := s.XPEntryRepo.GetEntriesSince(ctx, accountId, cutoff)
	if err != nil {
		return nil, err
	}
	return computeXPStats(entries, days), nil
}

// computeXPStats folds window entries into display totals. Entries
// arrive ordered by date ascending.
func computeXPStats(entries []*model.XPEntry, days int) *modelv1.XPStats {
	stats := &modelv1.XPStats{
		Days:           days,
		TotalEntries:   len(entries),
		TotalBillions:  decimal.Zero,
		TotalTrillions: decimal.Zero,
		AvgBillions:    decimal.Zero,
		AvgTrillions:   decimal.Zero,
	}
	if len(entries) == 0 {
		return stats
	}

	var best *model.XPEntry
	for _, entry := range entries {
		stats.TotalBillions = stats.TotalBillions.Add(entry.TotalDailyXPBillions)
		stats.TotalTrillions = stats.TotalTrillions.Add(entry.TotalDailyXPTrillions)
		if best == nil || entry.TotalDailyXPBillions.GreaterThan(best.TotalDailyXPBillions) {
			best = entry
		}
	}

	entryCount := decimal.NewFromInt(int64(len(entries)))
	stats.AvgBillions = stats.TotalBillions.Div(entryCount).Round(6)
	stats.AvgTrillions = stats.TotalTrillions.Div(entryCount).Round(6)
	stats.BestDay = &modelv1.XPBestDay{
		EntryDate: best.EntryDate,
		Billions:  best.TotalDailyXPBillions,
	}

	first := entries[0].EntryDate
	last := entries[len(entries)-1].EntryDate
	stats.FirstEntryDate = &first
	stats.LastEntryDate = &last
	stats.CurrentLevel = entries[len(entries)-1].Level

	return stats
}
