package repo

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/driver/pgdriver"

	"github.com/gmstracker/backend/internal/model"
	"github.com/gmstracker/backend/internal/pkg/pgerr"
	"github.com/gmstracker/backend/internal/repo/selector"
)

type XPEntry struct {
	db  *bun.DB
	sel selector.S[model.XPEntry]
}

func NewXPEntry(db *bun.DB) *XPEntry {
	return &XPEntry{
		db:  db,
		sel: selector.New[model.XPEntry](db),
	}
}

const pgUniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pgErr pgdriver.Error
	if errors.As(err, &pgErr) {
		return pgErr.Field('C') == pgUniqueViolation
	}
	return false
}

func (r *XPEntry) CreateEntry(ctx context.Context, entry *model.XPEntry) error {
	entry.EntryID = uuid.New()
	now := time.Now()
	entry.CreatedAt = now
	entry.UpdatedAt = now
	_, err := r.db.NewInsert().
		Model(entry).
		Exec(ctx)
	if isUniqueViolation(err) {
		return pgerr.ErrConflict.Msg("an entry for date %s already exists", entry.EntryDate.Format("2006-01-02"))
	}
	return err
}

func (r *XPEntry) UpdateEntry(ctx context.Context, entry *model.XPEntry) error {
	entry.UpdatedAt = time.Now()
	_, err := r.db.NewUpdate().
		Model(entry).
		WherePK().
		Exec(ctx)
	return err
}

func (r *XPEntry) DeleteEntry(ctx context.Context, accountId int, entryId uuid.UUID) error {
	result, err := r.db.NewDelete().
		Model((*model.XPEntry)(nil)).
		Where("entry_id = ?", entryId).
		Where("account_id = ?", accountId).
		Exec(ctx)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return pgerr.ErrNotFound
	}
	return nil
}

func (r *XPEntry) GetEntryById(ctx context.Context, accountId int, entryId uuid.UUID) (*model.XPEntry, error) {
	return r.sel.SelectOne(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("entry_id = ?", entryId).
			Where("account_id = ?", accountId)
	})
}

func (r *XPEntry) ListEntries(ctx context.Context, accountId int, from, to time.Time, limit, offset int) ([]*model.XPEntry, error) {
	return r.sel.SelectMany(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		q = q.Where("account_id = ?", accountId)
		if !from.IsZero() {
			q = q.Where("entry_date >= ?", from)
		}
		if !to.IsZero() {
			q = q.Where("entry_date <= ?", to)
		}
		return q.Order("entry_date DESC").
			Limit(limit).
			Offset(offset)
	})
}

func (r *XPEntry) CountEntries(ctx context.Context, accountId int, from, to time.Time) (int, error) {
	q := r.db.NewSelect().
		Model((*model.XPEntry)(nil)).
		Where("account_id = ?", accountId)
	if !from.IsZero() {
		q = q.Where("entry_date >= ?", from)
	}
	if !to.IsZero() {
		q = q.Where("entry_date <= ?", to)
	}
	return q.Count(ctx)
}

func (r *XPEntry) GetAllEntries(ctx context.Context, accountId int) ([]*model.XPEntry, error) {
	return r.sel.SelectMany(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("account_id = ?", accountId).
			Order("entry_date ASC")
	})
}

func (r *XPEntry) GetEntriesSince(ctx context.Context, accountId int, cutoff time.Time) ([]*model.XPEntry, error) {
	return r.sel.SelectMany(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("account_id = ?", accountId).
			Where("entry_date >= ?", cutoff).
			Order("entry_date ASC")
	})
}
