package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/gmstracker/backend/internal/model"
	"github.com/gmstracker/backend/internal/repo/selector"
)

type XPSnapshot struct {
	db  *bun.DB
	sel selector.S[model.CharacterXPSnapshot]
}

func NewXPSnapshot(db *bun.DB) *XPSnapshot {
	return &XPSnapshot{
		db:  db,
		sel: selector.New[model.CharacterXPSnapshot](db),
	}
}

// UpsertSnapshot records a character's cumulative XP for a date,
// overwriting a same-day snapshot when one exists.
func (r *XPSnapshot) UpsertSnapshot(ctx context.Context, snapshot *model.CharacterXPSnapshot) error {
	snapshot.CreatedAt = time.Now()
	_, err := r.db.NewInsert().
		Model(snapshot).
		On("CONFLICT (character_id, snapshot_date) DO UPDATE").
		Set("total_xp = EXCLUDED.total_xp").
		Set("level = EXCLUDED.level").
		Set("created_at = EXCLUDED.created_at").
		Returning("*").
		Exec(ctx)
	return err
}

func (r *XPSnapshot) GetSnapshotsByCharacterId(ctx context.Context, characterId uuid.UUID) ([]*model.CharacterXPSnapshot, error) {
	return r.sel.SelectMany(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("character_id = ?", characterId).
			Order("snapshot_date ASC")
	})
}

func (r *XPSnapshot) GetSnapshotsSince(ctx context.Context, characterId uuid.UUID, since time.Time) ([]*model.CharacterXPSnapshot, error) {
	return r.sel.SelectMany(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("character_id = ?", characterId).
			Where("snapshot_date >= ?", since).
			Order("snapshot_date ASC")
	})
}

func (r *XPSnapshot) GetLatestSnapshot(ctx context.Context, characterId uuid.UUID) (*model.CharacterXPSnapshot, error) {
	return r.sel.SelectOne(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("character_id = ?", characterId).
			Order("snapshot_date DESC").
			Limit(1)
	})
}

func (r *XPSnapshot) DeleteSnapshotsByCharacterId(ctx context.Context, characterId uuid.UUID) error {
	_, err := r.db.NewDelete().
		Model((*model.CharacterXPSnapshot)(nil)).
		Where("character_id = ?", characterId).
		Exec(ctx)
	return err
}
