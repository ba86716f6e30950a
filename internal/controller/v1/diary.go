package v1

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/fx"

	"github.com/gmstracker/backend/internal/model/types"
	"github.com/gmstracker/backend/internal/server/svr"
	"github.com/gmstracker/backend/internal/service"
	"github.com/gmstracker/backend/internal/util/rekuest"
)

type Diary struct {
	fx.In

	DiaryService   *service.Diary
	AccountService *service.Account
}

func RegisterDiary(v1 *svr.V1, c Diary) {
	v1.Get("/diary", c.ListEntries)
	v1.Get("/diary/stats", c.GetStats)
	v1.Get("/diary/items", c.GetItems)
	v1.Get("/diary/timeline", c.GetTimeline)
}

func (c *Diary) ListEntries(ctx *fiber.Ctx) error {
	account, err := c.AccountService.GetAccountFromRequest(ctx)
	if err != nil {
		return err
	}

	var query types.ListDiaryQuery
	if err := rekuest.ValidQuery(ctx, &query); err != nil {
		return err
	}

	entries, err := c.DiaryService.ListEntries(ctx.UserContext(), account.AccountID, &query)
	if err != nil {
		return err
	}
	return ctx.JSON(entries)
}

func (c *Diary) GetStats(ctx *fiber.Ctx) error {
	account, err := c.AccountService.GetAccountFromRequest(ctx)
	if err != nil {
		return err
	}

	stats, err := c.DiaryService.GetStats(ctx.UserContext(), account.AccountID)
	if err != nil {
		return err
	}
	return ctx.JSON(stats)
}

func (c *Diary) GetItems(ctx *fiber.Ctx) error {
	account, err := c.AccountService.GetAccountFromRequest(ctx)
	if err != nil {
		return err
	}

	items, err := c.DiaryService.GetItems(ctx.UserContext(), account.AccountID)
	if err != nil {
		return err
	}
	return ctx.JSON(items)
}

func (c *Diary) GetTimeline(ctx *fiber.Ctx) error {
	account, err := c.AccountService.GetAccountFromRequest(ctx)
	if err != nil {
		return err
	}

	timeline, err := c.DiaryService.GetTimeline(ctx.UserContext(), account.AccountID)
	if err != nil {
		return err
	}
	return ctx.JSON(timeline)
}
