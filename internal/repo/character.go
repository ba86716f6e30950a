package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/gmstracker/backend/internal/model"
	"github.com/gmstracker/backend/internal/pkg/pgerr"
	"github.com/gmstracker/backend/internal/repo/selector"
)

type Character struct {
	db  *bun.DB
	sel selector.S[model.Character]
}

func NewCharacter(db *bun.DB) *Character {
	return &Character{
		db:  db,
		sel: selector.New[model.Character](db),
	}
}

func (r *Character) GetCharactersByAccountId(ctx context.Context, accountId int) ([]*model.Character, error) {
	return r.sel.SelectMany(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("account_id = ?", accountId).
			Order("sort_order ASC", "created_at ASC")
	})
}

func (r *Character) GetCharacterById(ctx context.Context, characterId uuid.UUID) (*model.Character, error) {
	return r.sel.SelectOne(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("character_id = ?", characterId)
	})
}

func (r *Character) CreateCharacter(ctx context.Context, character *model.Character) error {
	character.CharacterID = uuid.New()
	character.CreatedAt = time.Now()
	_, err := r.db.NewInsert().
		Model(character).
		Exec(ctx)
	if isUniqueViolation(err) {
		return pgerr.ErrConflict.Msg("character %s on %s already exists", character.Name, character.World)
	}
	return err
}

func (r *Character) UpdateCharacter(ctx context.Context, character *model.Character) error {
	_, err := r.db.NewUpdate().
		Model(character).
		WherePK().
		Exec(ctx)
	return err
}

// ClearMainFlag unsets is_main on every other character of the account,
// keeping at most one main per account.
func (r *Character) ClearMainFlag(ctx context.Context, accountId int, exceptCharacterId uuid.UUID) error {
	_, err := r.db.NewUpdate().
		Model((*model.Character)(nil)).
		Set("is_main = FALSE").
		Where("account_id = ?", accountId).
		Where("character_id != ?", exceptCharacterId).
		Exec(ctx)
	return err
}

func (r *Character) DeleteCharacter(ctx context.Context, characterId uuid.UUID) error {
	_, err := r.db.NewDelete().
		Model((*model.Character)(nil)).
		Where("character_id = ?", characterId).
		Exec(ctx)
	return err
}

func (r *Character) CountCharacters(ctx context.Context) (int, error) {
	return r.db.NewSelect().
		Model((*model.Character)(nil)).
		Count(ctx)
}
