package repo

import (
	"context"

	"github.com/uptrace/bun"

	"github.com/gmstracker/backend/internal/model"
	"github.com/gmstracker/backend/internal/repo/selector"
)

type Item struct {
	db  *bun.DB
	sel selector.S[model.Item]
}

func NewItem(db *bun.DB) *Item {
	return &Item{
		db:  db,
		sel: selector.New[model.Item](db),
	}
}

func (r *Item) GetItems(ctx context.Context) ([]*model.Item, error) {
	return r.sel.SelectMany(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Order("item_id ASC")
	})
}

func (r *Item) GetItemById(ctx context.Context, itemId int) (*model.Item, error) {
	return r.sel.SelectOne(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("item_id = ?", itemId)
	})
}

func (r *Item) SearchItemByName(ctx context.Context, name string) ([]*model.Item, error) {
	return r.sel.SelectMany(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("\"name\"::TEXT ILIKE ?", "%"+name+"%").Order("item_id ASC")
	})
}

func (r *Item) UpsertItems(ctx context.Context, tx bun.Tx, items []*model.Item) error {
	if len(items) == 0 {
		return nil
	}
	_, err := tx.NewInsert().
		Model(&items).
		On("CONFLICT (item_id) DO UPDATE").
		Set("name = EXCLUDED.name").
		Set("category = EXCLUDED.category").
		Set("subcategory = EXCLUDED.subcategory").
		Set("rarity = EXCLUDED.rarity").
		Set("is_active = EXCLUDED.is_active").
		Exec(ctx)
	return err
}
