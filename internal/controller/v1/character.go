package v1

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/fx"

	"github.com/gmstracker/backend/internal/model/types"
	"github.com/gmstracker/backend/internal/pkg/pgerr"
	"github.com/gmstracker/backend/internal/server/svr"
	"github.com/gmstracker/backend/internal/service"
	"github.com/gmstracker/backend/internal/util/rekuest"
)

type Character struct {
	fx.In

	CharacterService *service.Character
	AccountService   *service.Account
}

func RegisterCharacter(v1 *svr.V1, c Character) {
	v1.Get("/characters", c.ListCharacters)
	v1.Post("/characters", c.CreateCharacter)
	v1.Patch("/characters/:characterId", c.UpdateCharacter)
	v1.Delete("/characters/:characterId", c.DeleteCharacter)
}

func (c *Character) ListCharacters(ctx *fiber.Ctx) error {
	account, err := c.AccountService.GetAccountFromRequest(ctx)
	if err != nil {
		return err
	}

	characters, err := c.CharacterService.GetCharacters(ctx.UserContext(), account.AccountID)
	if err != nil {
		return err
	}
	return ctx.JSON(characters)
}

func (c *Character) CreateCharacter(ctx *fiber.Ctx) error {
	account, err := c.AccountService.GetAccountFromRequest(ctx)
	if err != nil {
		return err
	}

	var request types.CreateCharacterRequest
	if err := rekuest.ValidBody(ctx, &request); err != nil {
		return err
	}

	character, err := c.CharacterService.CreateCharacter(ctx.UserContext(), account.AccountID, &request)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(character)
}

func (c *Character) UpdateCharacter(ctx *fiber.Ctx) error {
	account, err := c.AccountService.GetAccountFromRequest(ctx)
	if err != nil {
		return err
	}

	characterId, err := uuid.Parse(ctx.Params("characterId"))
	if err != nil {
		return pgerr.ErrInvalidReq.Msg("invalid character id")
	}

	var request types.UpdateCharacterRequest
	if err := rekuest.ValidBody(ctx, &request); err != nil {
		return err
	}

	character, err := c.CharacterService.UpdateCharacter(ctx.UserContext(), account.AccountID, characterId, &request)
	if err != nil {
		return err
	}
	return ctx.JSON(character)
}

func (c *Character) DeleteCharacter(ctx *fiber.Ctx) error {
	account, err := c.AccountService.GetAccountFromRequest(ctx)
	if err != nil {
		return err
	}

	characterId, err := uuid.Parse(ctx.Params("characterId"))
	if err != nil {
		return pgerr.ErrInvalidReq.Msg("invalid character id")
	}

	if err := c.CharacterService.DeleteCharacter(ctx.UserContext(), account.AccountID, characterId); err != nil {
		return err
	}
	return ctx.SendStatus(fiber.StatusNoContent)
}
