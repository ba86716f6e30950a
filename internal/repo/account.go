package repo

import (
	"context"
	"time"

	"github.com/uptrace/bun"

	"github.com/gmstracker/backend/internal/model"
	"github.com/gmstracker/backend/internal/repo/selector"
)

type Account struct {
	db  *bun.DB
	sel selector.S[model.Account]
}

func NewAccount(db *bun.DB) *Account {
	return &Account{
		db:  db,
		sel: selector.New[model.Account](db),
	}
}

func (r *Account) GetAccountById(ctx context.Context, accountId int) (*model.Account, error) {
	return r.sel.SelectOne(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("account_id = ?", accountId)
	})
}

func (r *Account) GetAccountByProviderRef(ctx context.Context, providerRef string) (*model.Account, error) {
	return r.sel.SelectOne(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("provider_ref = ?", providerRef)
	})
}

// GetOrCreateAccount resolves providerRef to an existing account, or
// inserts a fresh one when none exists yet.
func (r *Account) GetOrCreateAccount(ctx context.Context, providerRef, displayName string) (*model.Account, error) {
	account := &model.Account{
		ProviderRef: providerRef,
		DisplayName: displayName,
		CreatedAt:   time.Now(),
	}

	_, err := r.db.NewInsert().
		Model(account).
		On("CONFLICT (provider_ref) DO UPDATE").
		Set("display_name = EXCLUDED.display_name").
		Returning("*").
		Exec(ctx)
	if err != nil {
		return nil, err
	}

	return account, nil
}

func (r *Account) CountAccounts(ctx context.Context) (int, error) {
	return r.db.NewSelect().
		Model((*model.Account)(nil)).
		Count(ctx)
}
