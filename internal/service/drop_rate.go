package service

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/gmstracker/backend/internal/model"
	"github.com/gmstracker/backend/internal/repo"
)

// DropRate recomputes the community drop-rate aggregates from the raw
// run ledger. Rates are lifetime: every successful clear ever recorded
// counts toward the sample.
type DropRate struct {
	BossRunRepo       *repo.BossRun
	DropTableRepo     *repo.DropTable
	DropRateStatsRepo *repo.DropRateStats
}

func NewDropRate(bossRunRepo *repo.BossRun, dropTableRepo *repo.DropTable, dropRateStatsRepo *repo.DropRateStats) *DropRate {
	return &DropRate{
		BossRunRepo:       bossRunRepo,
		DropTableRepo:     dropTableRepo,
		DropRateStatsRepo: dropRateStatsRepo,
	}
}

// RecomputeAll walks every registered (boss, item) pair and rewrites its
// stats row, returning the number of pairs updated. Each pair commits
// independently: a failure mid-batch leaves earlier pairs fresh and
// later pairs stale, which readers must tolerate by looking at per-row
// last_computed. Safe to re-run at any time.
func (s *DropRate) RecomputeAll(ctx context.Context) (int, error) {
	start := time.Now()

	pairs, err := s.DropTableRepo.GetBossItemPairs(ctx)
	if err != nil {
		return 0, err
	}

	sampleSizes := make(map[int]int)
	var updated, failed int
	for _, pair := range pairs {
		if err := ctx.Err(); err != nil {
			return updated, err
		}

		sampleSize, ok := sampleSizes[pair.BossID]
		if !ok {
			sampleSize, err = s.BossRunRepo.CountClearRunsForBoss(ctx, pair.BossID)
			if err != nil {
				log.Error().Err(err).Int("bossId", pair.BossID).Msg("drop rate: failed to count clear runs")
				failed++
				continue
			}
			sampleSizes[pair.BossID] = sampleSize
		}

		dropCount, err := s.BossRunRepo.CountDropsOfItem(ctx, pair.BossID, pair.ItemID)
		if err != nil {
			log.Error().Err(err).Int("bossId", pair.BossID).Int("itemId", pair.ItemID).Msg("drop rate: failed to count drops")
			failed++
			continue
		}

		stats := computePairStats(pair.BossID, pair.ItemID, sampleSize, dropCount, time.Now())

		if err := s.DropRateStatsRepo.UpsertStats(ctx, stats); err != nil {
			log.Error().Err(err).Int("bossId", pair.BossID).Int("itemId", pair.ItemID).Msg("drop rate: failed to upsert stats")
			failed++
			continue
		}
		updated++
	}

	log.Info().
		Int("pairs", len(pairs)).
		Int("updated", updated).
		Int("failed", failed).
		Dur("elapsed", time.Since(start)).
		Msg("drop rate: recompute finished")

	return updated, nil
}

// computePairStats derives one stats row. A boss with no recorded clears
// yields a zero-rate row rather than a missing one, so the read side can
// tell "never dropped in N runs" apart from "not yet computed".
func computePairStats(bossId, itemId, sampleSize, dropCount int, now time.Time) *model.DropRateStats {
	rate := 0.0
	if sampleSize > 0 {
		rate = float64(dropCount) / float64(sampleSize)
	}
	return &model.DropRateStats{
		BossID:       bossId,
		ItemID:       itemId,
		SampleSize:   sampleSize,
		DropCount:    dropCount,
		DropRate:     rate,
		LastComputed: now,
	}
}
