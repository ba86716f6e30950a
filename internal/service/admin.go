package service

import (
	"context"

	"github.com/jinzhu/copier"
	"github.com/uptrace/bun"

	"github.com/gmstracker/backend/internal/model"
	"github.com/gmstracker/backend/internal/model/cache"
	"github.com/gmstracker/backend/internal/model/types"
	"github.com/gmstracker/backend/internal/pkg/pgerr"
	"github.com/gmstracker/backend/internal/pkg/session"
	"github.com/gmstracker/backend/internal/repo"
)

// Admin seeds the reference data (bosses, items, drop table) and mints
// sessions on behalf of the identity provider callback.
type Admin struct {
	DB            *bun.DB
	BossRepo      *repo.Boss
	ItemRepo      *repo.Item
	DropTableRepo *repo.DropTable
	AccountRepo   *repo.Account
	Sessions      *session.Store
}

func NewAdmin(db *bun.DB, bossRepo *repo.Boss, itemRepo *repo.Item, dropTableRepo *repo.DropTable, accountRepo *repo.Account, sessions *session.Store) *Admin {
	return &Admin{
		DB:            db,
		BossRepo:      bossRepo,
		ItemRepo:      itemRepo,
		DropTableRepo: dropTableRepo,
		AccountRepo:   accountRepo,
		Sessions:      sessions,
	}
}

// Seed upserts the submitted reference data in one transaction and
// flushes the reference caches afterwards.
func (s *Admin) Seed(ctx context.Context, req *types.SeedRequest) error {
	bosses := make([]*model.Boss, 0, len(req.Bosses))
	for _, in := range req.Bosses {
		var boss model.Boss
		if err := copier.Copy(&boss, in); err != nil {
			return err
		}
		bosses = append(bosses, &boss)
	}

	items := make([]*model.Item, 0, len(req.Items))
	for _, in := range req.Items {
		var item model.Item
		if err := copier.Copy(&item, in); err != nil {
			return err
		}
		items = append(items, &item)
	}

	entries := make([]*model.BossDropTable, 0, len(req.DropTable))
	for _, in := range req.DropTable {
		var entry model.BossDropTable
		if err := copier.Copy(&entry, in); err != nil {
			return err
		}
		entries = append(entries, &entry)
	}

	err := s.DB.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if err := s.BossRepo.UpsertBosses(ctx, tx, bosses); err != nil {
			return err
		}
		if err := s.ItemRepo.UpsertItems(ctx, tx, items); err != nil {
			return err
		}
		return s.DropTableRepo.UpsertEntries(ctx, tx, entries)
	})
	if err != nil {
		return err
	}

	for _, name := range []string{"bosses", "bossesMapById", "items", "itemsMapById", "dropTableByBossId"} {
		if flush, ok := cache.SingularFlusherMap[name]; ok {
			if err := flush(); err != nil {
				return err
			}
		}
	}
	return nil
}

// CreateSession resolves (or creates) the account for an identity
// provider reference and mints a bearer token for it.
func (s *Admin) CreateSession(ctx context.Context, req *types.CreateSessionRequest) (string, *model.Account, error) {
	account, err := s.AccountRepo.GetOrCreateAccount(ctx, req.ProviderRef, req.DisplayName)
	if err != nil {
		return "", nil, err
	}
	if account.Banned {
		return "", nil, pgerr.ErrForbidden.Msg("account is banned")
	}

	token, err := s.Sessions.Create(account.AccountID)
	if err != nil {
		return "", nil, err
	}
	return token, account, nil
}

// PurgeCache flushes named caches on demand.
func (s *Admin) PurgeCache(ctx context.Context, req *types.PurgeCacheRequest) error {
	for _, pair := range req.Pairs {
		if err := cache.Delete(pair.Name, pair.Key); err != nil {
			return err
		}
	}
	return nil
}
