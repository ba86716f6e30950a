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

type XPSnapshot struct {
	fx.In

	XPSnapshotService *service.XPSnapshot
	AccountService    *service.Account
}

func RegisterXPSnapshot(v1 *svr.V1, c XPSnapshot) {
	v1.Post("/character-xp/snapshot", c.UpsertSnapshot)
	v1.Get("/character-xp/history/:characterId", c.GetHistory)
	v1.Get("/character-xp/overview", c.GetOverview)
}

func (c *XPSnapshot) UpsertSnapshot(ctx *fiber.Ctx) error {
	account, err := c.AccountService.GetAccountFromRequest(ctx)
	if err != nil {
		return err
	}

	var request types.UpsertXPSnapshotRequest
	if err := rekuest.ValidBody(ctx, &request); err != nil {
		return err
	}

	characterId, err := uuid.Parse(request.CharacterID)
	if err != nil {
		return pgerr.ErrInvalidReq.Msg("invalid character id")
	}

	snapshot, err := c.XPSnapshotService.UpsertSnapshot(ctx.UserContext(), account.AccountID, characterId, &request)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(snapshot)
}

func (c *XPSnapshot) GetHistory(ctx *fiber.Ctx) error {
	account, err := c.AccountService.GetAccountFromRequest(ctx)
	if err != nil {
		return err
	}

	characterId, err := uuid.Parse(ctx.Params("characterId"))
	if err != nil {
		return pgerr.ErrInvalidReq.Msg("invalid character id")
	}

	history, err := c.XPSnapshotService.GetHistory(ctx.UserContext(), account.AccountID, characterId)
	if err != nil {
		return err
	}
	return ctx.JSON(history)
}

func (c *XPSnapshot) GetOverview(ctx *fiber.Ctx) error {
	account, err := c.AccountService.GetAccountFromRequest(ctx)
	if err != nil {
		return err
	}

	overview, err := c.XPSnapshotService.GetOverview(ctx.UserContext(), account.AccountID)
	if err != nil {
		return err
	}
	return ctx.JSON(overview)
}
