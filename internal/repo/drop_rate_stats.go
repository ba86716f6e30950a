package repo

import (
	"context"

	"github.com/uptrace/bun"

	"github.com/gmstracker/backend/internal/model"
	"github.com/gmstracker/backend/internal/repo/selector"
)

type DropRateStats struct {
	db  *bun.DB
	sel selector.S[model.DropRateStats]
}

func NewDropRateStats(db *bun.DB) *DropRateStats {
	return &DropRateStats{
		db:  db,
		sel: selector.New[model.DropRateStats](db),
	}
}

// UpsertStats commits one recomputed (boss, item) pair. Each pair is
// written independently so a failed pair never holds back the rest of a
// recompute batch.
func (r *DropRateStats) UpsertStats(ctx context.Context, stats *model.DropRateStats) error {
	_, err := r.db.NewInsert().
		Model(stats).
		On("CONFLICT (boss_id, item_id) DO UPDATE").
		Set("sample_size = EXCLUDED.sample_size").
		Set("drop_count = EXCLUDED.drop_count").
		Set("drop_rate = EXCLUDED.drop_rate").
		Set("last_computed = EXCLUDED.last_computed").
		Exec(ctx)
	return err
}

func (r *DropRateStats) GetStatsByBossId(ctx context.Context, bossId int) ([]*model.DropRateStats, error) {
	return r.sel.SelectMany(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Relation("Item").
			Where("drs.boss_id = ?", bossId).
			Order("drs.item_id ASC")
	})
}

func (r *DropRateStats) GetStatsByItemId(ctx context.Context, itemId int) ([]*model.DropRateStats, error) {
	return r.sel.SelectMany(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Relation("Boss").
			Where("drs.item_id = ?", itemId).
			Order("drs.boss_id ASC")
	})
}

// GetRareLeaderboard returns the lowest observed drop rates with at
// least minSampleSize runs behind them.
func (r *DropRateStats) GetRareLeaderboard(ctx context.Context, minSampleSize, limit int) ([]*model.DropRateStats, error) {
	return r.sel.SelectMany(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Relation("Boss").
			Relation("Item").
			Where("drs.sample_size >= ?", minSampleSize).
			Where("drs.drop_count > 0").
			Order("drs.drop_rate ASC").
			Limit(limit)
	})
}

func (r *DropRateStats) GetLastComputed(ctx context.Context) (*model.DropRateStats, error) {
	return r.sel.SelectOne(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Order("last_computed DESC").Limit(1)
	})
}
