package repo

import (
	"context"

	"github.com/uptrace/bun"

	"github.com/gmstracker/backend/internal/model"
	"github.com/gmstracker/backend/internal/repo/selector"
)

type DropTable struct {
	db  *bun.DB
	sel selector.S[model.BossDropTable]
}

func NewDropTable(db *bun.DB) *DropTable {
	return &DropTable{
		db:  db,
		sel: selector.New[model.BossDropTable](db),
	}
}

func (r *DropTable) GetDropTable(ctx context.Context) ([]*model.BossDropTable, error) {
	return r.sel.SelectMany(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Order("boss_id ASC", "item_id ASC")
	})
}

func (r *DropTable) GetDropTableByBossId(ctx context.Context, bossId int) ([]*model.BossDropTable, error) {
	return r.sel.SelectMany(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Relation("Item").
			Where("bdt.boss_id = ?", bossId).
			Order("bdt.item_id ASC")
	})
}

// GetDroppableItemIds returns the set of item ids registered for a boss.
// Used to silently filter unknown items out of incoming drop reports.
func (r *DropTable) GetDroppableItemIds(ctx context.Context, bossId int) ([]int, error) {
	var itemIds []int
	err := r.db.NewSelect().
		Model((*model.BossDropTable)(nil)).
		Column("item_id").
		Where("boss_id = ?", bossId).
		Scan(ctx, &itemIds)
	if err != nil {
		return nil, err
	}
	return itemIds, nil
}

func (r *DropTable) GetBossItemPairs(ctx context.Context) ([]*model.BossDropTable, error) {
	return r.sel.SelectMany(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Column("drop_table_id", "boss_id", "item_id").
			Order("boss_id ASC", "item_id ASC")
	})
}

func (r *DropTable) UpsertEntries(ctx context.Context, tx bun.Tx, entries []*model.BossDropTable) error {
	if len(entries) == 0 {
		return nil
	}
	_, err := tx.NewInsert().
		Model(&entries).
		On("CONFLICT (boss_id, item_id) DO UPDATE").
		Set("guaranteed = EXCLUDED.guaranteed").
		Exec(ctx)
	return err
}
