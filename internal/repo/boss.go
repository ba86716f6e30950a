package repo

import (
	"context"

	"github.com/uptrace/bun"

	"github.com/gmstracker/backend/internal/model"
	"github.com/gmstracker/backend/internal/repo/selector"
)

type Boss struct {
	db  *bun.DB
	sel selector.S[model.Boss]
}

func NewBoss(db *bun.DB) *Boss {
	return &Boss{
		db:  db,
		sel: selector.New[model.Boss](db),
	}
}

func (r *Boss) GetBosses(ctx context.Context) ([]*model.Boss, error) {
	return r.sel.SelectMany(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Order("sort_order ASC", "boss_id ASC")
	})
}

func (r *Boss) GetActiveBosses(ctx context.Context) ([]*model.Boss, error) {
	return r.sel.SelectMany(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("is_active = TRUE").Order("sort_order ASC", "boss_id ASC")
	})
}

func (r *Boss) GetBossById(ctx context.Context, bossId int) (*model.Boss, error) {
	return r.sel.SelectOne(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("boss_id = ?", bossId)
	})
}

func (r *Boss) GetWeeklyBosses(ctx context.Context) ([]*model.Boss, error) {
	return r.sel.SelectMany(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("is_active = TRUE").
			Where("reset_type = ?", "weekly").
			Order("sort_order ASC", "boss_id ASC")
	})
}

func (r *Boss) UpsertBosses(ctx context.Context, tx bun.Tx, bosses []*model.Boss) error {
	if len(bosses) == 0 {
		return nil
	}
	_, err := tx.NewInsert().
		Model(&bosses).
		On("CONFLICT (boss_id) DO UPDATE").
		Set("name = EXCLUDED.name").
		Set("difficulty = EXCLUDED.difficulty").
		Set("reset_type = EXCLUDED.reset_type").
		Set("party_size = EXCLUDED.party_size").
		Set("crystal_meso = EXCLUDED.crystal_meso").
		Set("image_url = EXCLUDED.image_url").
		Set("sort_order = EXCLUDED.sort_order").
		Set("is_active = EXCLUDED.is_active").
		Exec(ctx)
	return err
}
