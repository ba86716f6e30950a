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

type XP struct {
	fx.In

	XPService      *service.XP
	AccountService *service.Account
}

func RegisterXP(v1 *svr.V1, c XP) {
	v1.Post("/xp", c.CreateEntry)
	v1.Get("/xp", c.ListEntries)
	v1.Get("/xp/stats", c.GetStats)
	v1.Get("/xp/:entryId", c.GetEntry)
	v1.Put("/xp/:entryId", c.UpdateEntry)
	v1.Delete("/xp/:entryId", c.DeleteEntry)
}

func (c *XP) CreateEntry(ctx *fiber.Ctx) error {
	account, err := c.AccountService.GetAccountFromRequest(ctx)
	if err != nil {
		return err
	}

	var request types.CreateXPEntryRequest
	if err := rekuest.ValidBody(ctx, &request); err != nil {
		return err
	}

	entry, err := c.XPService.CreateEntry(ctx.UserContext(), account.AccountID, &request)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(entry)
}

func (c *XP) ListEntries(ctx *fiber.Ctx) error {
	account, err := c.AccountService.GetAccountFromRequest(ctx)
	if err != nil {
		return err
	}

	var query types.ListXPEntriesQuery
	if err := rekuest.ValidQuery(ctx, &query); err != nil {
		return err
	}

	entries, err := c.XPService.ListEntries(ctx.UserContext(), account.AccountID, &query)
	if err != nil {
		return err
	}
	return ctx.JSON(entries)
}

func (c *XP) GetStats(ctx *fiber.Ctx) error {
	account, err := c.AccountService.GetAccountFromRequest(ctx)
	if err != nil {
		return err
	}

	var query types.GetXPStatsQuery
	if err := rekuest.ValidQuery(ctx, &query); err != nil {
		return err
	}

	stats, err := c.XPService.GetStats(ctx.UserContext(), account.AccountID, query.Days)
	if err != nil {
		return err
	}
	return ctx.JSON(stats)
}

func (c *XP) GetEntry(ctx *fiber.Ctx) error {
	account, err := c.AccountService.GetAccountFromRequest(ctx)
	if err != nil {
		return err
	}

	entryId, err := uuid.Parse(ctx.Params("entryId"))
	if err != nil {
		return pgerr.ErrInvalidReq.Msg("invalid entry id")
	}

	entry, err := c.XPService.GetEntry(ctx.UserContext(), account.AccountID, entryId)
	if err != nil {
		return err
	}
	return ctx.JSON(entry)
}

func (c *XP) UpdateEntry(ctx *fiber.Ctx) error {
	account, err := c.AccountService.GetAccountFromRequest(ctx)
	if err != nil {
		return err
	}

	entryId, err := uuid.Parse(ctx.Params("entryId"))
	if err != nil {
		return pgerr.ErrInvalidReq.Msg("invalid entry id")
	}

	var request types.UpdateXPEntryRequest
	if err := rekuest.ValidBody(ctx, &request); err != nil {
		return err
	}

	entry, err := c.XPService.UpdateEntry(ctx.UserContext(), account.AccountID, entryId, &request)
	if err != nil {
		return err
	}
	return ctx.JSON(entry)
}

func (c *XP) DeleteEntry(ctx *fiber.Ctx) error {
	account, err := c.AccountService.GetAccountFromRequest(ctx)
	if err != nil {
		return err
	}

	entryId, err := uuid.Parse(ctx.Params("entryId"))
	if err != nil {
		return pgerr.ErrInvalidReq.Msg("invalid entry id")
	}

	if err := c.XPService.DeleteEntry(ctx.UserContext(), account.AccountID, entryId); err != nil {
		return err
	}
	return ctx.SendStatus(fiber.StatusNoContent)
}
