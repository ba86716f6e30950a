package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gopkg.in/guregu/null.v3"

	"github.com/gmstracker/backend/internal/constant"
	"github.com/gmstracker/backend/internal/model"
	"github.com/gmstracker/backend/internal/model/types"
	modelv1 "github.com/gmstracker/backend/internal/model/v1"
	"github.com/gmstracker/backend/internal/pkg/pgerr"
	"github.com/gmstracker/backend/internal/repo"
)

// XPSnapshot tracks cumulative per-character experience readings and
// derives growth curves from them.
type XPSnapshot struct {
	XPSnapshotRepo   *repo.XPSnapshot
	CharacterService *Character
	XPTable          *XPTable
}

func NewXPSnapshot(xpSnapshotRepo *repo.XPSnapshot, characterService *Character, xpTable *XPTable) *XPSnapshot {
	return &XPSnapshot{
		XPSnapshotRepo:   xpSnapshotRepo,
		CharacterService: characterService,
		XPTable:          xpTable,
	}
}

// UpsertSnapshot records a reading for a character and date. Re-recording
// the same date overwrites: the snapshot ledger keeps one value per day.
func (s *XPSnapshot) UpsertSnapshot(ctx context.Context, accountId int, characterId uuid.UUID, req *types.UpsertXPSnapshotRequest) (*model.CharacterXPSnapshot, error) {
	character, err := s.CharacterService.GetOwnedCharacter(ctx, accountId, characterId)
	if err != nil {
		return nil, err
	}

	snapshotDate, err := time.Parse(constant.ISODateFormat, req.SnapshotDate)
	if err != nil {
		return nil, pgerr.ErrInvalidReq.Msg("invalid snapshot date: %s", req.SnapshotDate)
	}

	totalXP, err := decimal.NewFromString(req.TotalXP)
	if err != nil || totalXP.IsNegative() {
		return nil, pgerr.ErrInvalidReq.Msg("invalid totalXp: %s", req.TotalXP)
	}

	snapshot := &model.CharacterXPSnapshot{
		CharacterID:  character.CharacterID,
		SnapshotDate: snapshotDate,
		TotalXP:      totalXP,
	}
	if req.Level != nil {
		snapshot.Level = null.IntFrom(int64(*req.Level))
	}

	if err := s.XPSnapshotRepo.UpsertSnapshot(ctx, snapshot); err != nil {
		return nil, err
	}
	return snapshot, nil
}

// GetHistory returns the snapshot curve of one character with day-over-day
// gains. Negative deltas (rollbacks, corrections) surface as zero gain.
func (s *XPSnapshot) GetHistory(ctx context.Context, accountId int, characterId uuid.UUID) (*modelv1.SnapshotHistory, error) {
	if _, err := s.CharacterService.GetOwnedCharacter(ctx, accountId, characterId); err != nil {
		return nil, err
	}

	snapshots, err := s.XPSnapshotRepo.GetSnapshotsByCharacterId(ctx, characterId)
	if err != nil {
		return nil, err
	}

	return buildSnapshotHistory(snapshots), nil
}

func buildSnapshotHistory(snapshots []*model.CharacterXPSnapshot) *modelv1.SnapshotHistory {
	history := &modelv1.SnapshotHistory{Points: make([]*modelv1.SnapshotPoint, 0, len(snapshots))}
	var prev *model.CharacterXPSnapshot
	for _, snapshot := range snapshots {
		point := &modelv1.SnapshotPoint{
			SnapshotDate: snapshot.SnapshotDate,
			TotalXP:      snapshot.TotalXP,
			GainedXP:     decimal.Zero,
		}
		if snapshot.Level.Valid {
			level := int(snapshot.Level.Int64)
			point.Level = &level
		}
		if prev != nil {
			delta := snapshot.TotalXP.Sub(prev.TotalXP)
			if delta.IsPositive() {
				point.GainedXP = delta
			}
		}
		history.Points = append(history.Points, point)
		prev = snapshot
	}
	return history
}

// GetOverview returns the latest snapshot per character, with a
// percent-into-level figure when both the level and the requirement
// table are available, plus today/yesterday and trailing-week gains.
func (s *XPSnapshot) GetOverview(ctx context.Context, accountId int) (*modelv1.SnapshotOverview, error) {
	characters, err := s.CharacterService.GetCharacters(ctx, accountId)
	if err != nil {
		return nil, err
	}

	today := time.Now().UTC().Truncate(24 * time.Hour)

	overview := &modelv1.SnapshotOverview{Characters: make([]*modelv1.SnapshotCharacterState, 0, len(characters))}
	for _, character := range characters {
		state := &modelv1.SnapshotCharacterState{
			CharacterID:   character.CharacterID.String(),
			CharacterName: character.Name,
			TotalXP:       decimal.Zero,
		}

		snapshot, err := s.XPSnapshotRepo.GetLatestSnapshot(ctx, character.CharacterID)
		if err == nil {
			snapshotDate := snapshot.SnapshotDate
			state.SnapshotDate = &snapshotDate
			state.TotalXP = snapshot.TotalXP
			if snapshot.Level.Valid {
				level := int(snapshot.Level.Int64)
				state.Level = &level

				if table, err := s.XPTable.Table(); err == nil {
					if pct, err := table.ProgressPercent(level, snapshot.TotalXP); err == nil {
						progress, _ := pct.Round(2).Float64()
						state.ProgressPercent = &progress
					}
				}
			}

			recent, err := s.XPSnapshotRepo.GetSnapshotsSince(ctx, character.CharacterID, today.AddDate(0, 0, -8))
			if err == nil {
				gains := computeSnapshotGains(recent, today)
				state.XPToday = gains.XPToday
				state.XPYesterday = gains.XPYesterday
				state.AvgDailyXP = gains.AvgDailyXP
				state.TotalGained = gains.TotalGained
				state.DaysTracked = gains.DaysTracked
			}
		}

		overview.Characters = append(overview.Characters, state)
	}

	return overview, nil
}

type snapshotGains struct {
	XPToday     *decimal.Decimal
	XPYesterday *decimal.Decimal
	AvgDailyXP  *decimal.Decimal
	TotalGained *decimal.Decimal
	DaysTracked int
}

// computeSnapshotGains derives day-over-day and trailing-week gains from a
// character's recent snapshots, ordered by date ascending. Negative deltas
// (rollbacks, corrections) read as no gain rather than as losses.
func computeSnapshotGains(snapshots []*model.CharacterXPSnapshot, today time.Time) snapshotGains {
	gains := snapshotGains{}

	byDate := make(map[string]*model.CharacterXPSnapshot, len(snapshots))
	for _, snapshot := range snapshots {
		byDate[snapshot.SnapshotDate.Format(constant.ISODateFormat)] = snapshot
	}

	yesterday := today.AddDate(0, 0, -1)

	if current, ok := byDate[today.Format(constant.ISODateFormat)]; ok {
		if prev, ok := byDate[yesterday.Format(constant.ISODateFormat)]; ok {
			gains.XPToday = positiveDelta(current.TotalXP, prev.TotalXP)
		} else if prev := latestSnapshotBefore(snapshots, today); prev != nil {
			gains.XPToday = positiveDelta(current.TotalXP, prev.TotalXP)
		}
	}
	if current, ok := byDate[yesterday.Format(constant.ISODateFormat)]; ok {
		if prev, ok := byDate[yesterday.AddDate(0, 0, -1).Format(constant.ISODateFormat)]; ok {
			gains.XPYesterday = positiveDelta(current.TotalXP, prev.TotalXP)
		}
	}

	weekStart := today.AddDate(0, 0, -7)
	window := make([]*model.CharacterXPSnapshot, 0, len(snapshots))
	for _, snapshot := range snapshots {
		if !snapshot.SnapshotDate.Before(weekStart) {
			window = append(window, snapshot)
		}
	}
	gains.DaysTracked = len(window)
	if len(window) >= 2 {
		gained := positiveDelta(window[len(window)-1].TotalXP, window[0].TotalXP)
		if gained != nil {
			gains.TotalGained = gained
			avg := gained.Div(decimal.NewFromInt(int64(len(window) - 1))).Round(0)
			gains.AvgDailyXP = &avg
		}
	}

	return gains
}

func positiveDelta(current, previous decimal.Decimal) *decimal.Decimal {
	delta := current.Sub(previous)
	if !delta.IsPositive() {
		return nil
	}
	return &delta
}

func latestSnapshotBefore(snapshots []*model.CharacterXPSnapshot, day time.Time) *model.CharacterXPSnapshot {
	key := day.Format(constant.ISODateFormat)
	var latest *model.CharacterXPSnapshot
	for _, snapshot := range snapshots {
		if snapshot.SnapshotDate.Format(constant.ISODateFormat) < key {
			latest = snapshot
		}
	}
	return latest
}
