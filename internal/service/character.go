package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"gopkg.in/guregu/null.v3"

	"github.com/gmstracker/backend/internal/model"
	"github.com/gmstracker/backend/internal/model/types"
	"github.com/gmstracker/backend/internal/pkg/pgerr"
	"github.com/gmstracker/backend/internal/repo"
)

type Character struct {
	CharacterRepo  *repo.Character
	XPSnapshotRepo *repo.XPSnapshot
}

func NewCharacter(characterRepo *repo.Character, xpSnapshotRepo *repo.XPSnapshot) *Character {
	return &Character{
		CharacterRepo:  characterRepo,
		XPSnapshotRepo: xpSnapshotRepo,
	}
}

func (s *Character) GetCharacters(ctx context.Context, accountId int) ([]*model.Character, error) {
	return s.CharacterRepo.GetCharactersByAccountId(ctx, accountId)
}

// GetOwnedCharacter resolves characterId and verifies it belongs to the
// account. Characters of other accounts surface as not found.
func (s *Character) GetOwnedCharacter(ctx context.Context, accountId int, characterId uuid.UUID) (*model.Character, error) {
	character, err := s.CharacterRepo.GetCharacterById(ctx, characterId)
	if err != nil {
		return nil, err
	}
	if character.AccountID != accountId {
		return nil, pgerr.ErrNotFound
	}
	return character, nil
}

// OwnedCharacterIds is the id set used to scope run and diary queries to
// the caller's account.
func (s *Character) OwnedCharacterIds(ctx context.Context, accountId int) ([]uuid.UUID, error) {
	characters, err := s.CharacterRepo.GetCharactersByAccountId(ctx, accountId)
	if err != nil {
		return nil, err
	}
	return lo.Map(characters, func(c *model.Character, _ int) uuid.UUID {
		return c.CharacterID
	}), nil
}

func newCharacter(accountId int, req *types.CreateCharacterRequest) *model.Character {
	character := &model.Character{
		AccountID: accountId,
		Name:      req.Name,
		World:     req.World,
		Job:       null.StringFrom(req.Job),
		IconURL:   null.StringFrom(req.IconURL),
		IsMain:    req.IsMain,
		SortOrder: req.SortOrder,
	}
	if req.Level != nil {
		character.Level = null.IntFrom(int64(*req.Level))
	}
	return character
}

func applyCharacterUpdate(character *model.Character, req *types.UpdateCharacterRequest) {
	if req.Name != nil {
		character.Name = *req.Name
	}
	if req.World != nil {
		character.World = *req.World
	}
	if req.Level != nil {
		character.Level = null.IntFrom(int64(*req.Level))
	}
	if req.Job != nil {
		character.Job = null.StringFrom(*req.Job)
	}
	if req.IconURL != nil {
		character.IconURL = null.StringFrom(*req.IconURL)
	}
	if req.IsMain != nil {
		character.IsMain = *req.IsMain
	}
	if req.SortOrder != nil {
		character.SortOrder = *req.SortOrder
	}
}

func (s *Character) CreateCharacter(ctx context.Context, accountId int, req *types.CreateCharacterRequest) (*model.Character, error) {
	character := newCharacter(accountId, req)
	if err := s.CharacterRepo.CreateCharacter(ctx, character); err != nil {
		return nil, err
	}
	if character.IsMain {
		if err := s.CharacterRepo.ClearMainFlag(ctx, accountId, character.CharacterID); err != nil {
			return nil, err
		}
	}
	return character, nil
}

func (s *Character) UpdateCharacter(ctx context.Context, accountId int, characterId uuid.UUID, req *types.UpdateCharacterRequest) (*model.Character, error) {
	character, err := s.GetOwnedCharacter(ctx, accountId, characterId)
	if err != nil {
		return nil, err
	}

	applyCharacterUpdate(character, req)

	if err := s.CharacterRepo.UpdateCharacter(ctx, character); err != nil {
		return nil, err
	}
	if character.IsMain {
		if err := s.CharacterRepo.ClearMainFlag(ctx, accountId, character.CharacterID); err != nil {
			return nil, err
		}
	}
	return character, nil
}

// DeleteCharacter removes the character together with its XP snapshots.
// Boss runs cascade at the schema level; the community aggregates pick
// the removal up on the next recompute.
func (s *Character) DeleteCharacter(ctx context.Context, accountId int, characterId uuid.UUID) error {
	if _, err := s.GetOwnedCharacter(ctx, accountId, characterId); err != nil {
		return err
	}
	if err := s.XPSnapshotRepo.DeleteSnapshotsByCharacterId(ctx, characterId); err != nil {
		return err
	}
	return s.CharacterRepo.DeleteCharacter(ctx, characterId)
}
