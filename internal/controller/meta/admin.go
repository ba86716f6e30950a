package meta

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/fx"

	"github.com/gmstracker/backend/internal/model/cache"
	"github.com/gmstracker/backend/internal/model/types"
	"github.com/gmstracker/backend/internal/server/svr"
	"github.com/gmstracker/backend/internal/service"
	"github.com/gmstracker/backend/internal/util/rekuest"
)

type AdminController struct {
	fx.In

	AdminService    *service.Admin
	DropRateService *service.DropRate
}

func RegisterAdmin(admin *svr.Admin, c AdminController) {
	admin.Post("/seed", c.Seed)
	admin.Post("/sessions", c.CreateSession)
	admin.Post("/purge", c.PurgeCache)
	admin.Post("/recompute", c.Recompute)
}

func (c *AdminController) Seed(ctx *fiber.Ctx) error {
	var request types.SeedRequest
	if err := rekuest.ValidBody(ctx, &request); err != nil {
		return err
	}

	if err := c.AdminService.Seed(ctx.UserContext(), &request); err != nil {
		return err
	}

	return ctx.JSON(fiber.Map{
		"bosses":    len(request.Bosses),
		"items":     len(request.Items),
		"dropTable": len(request.DropTable),
	})
}

func (c *AdminController) CreateSession(ctx *fiber.Ctx) error {
	var request types.CreateSessionRequest
	if err := rekuest.ValidBody(ctx, &request); err != nil {
		return err
	}

	token, account, err := c.AdminService.CreateSession(ctx.UserContext(), &request)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{
		"token":   token,
		"account": account,
	})
}

func (c *AdminController) PurgeCache(ctx *fiber.Ctx) error {
	var request types.PurgeCacheRequest
	if err := rekuest.ValidBody(ctx, &request); err != nil {
		return err
	}
	return c.AdminService.PurgeCache(ctx.UserContext(), &request)
}

// Recompute rebuilds the drop rate stats outside of the worker schedule.
func (c *AdminController) Recompute(ctx *fiber.Ctx) error {
	updated, err := c.DropRateService.RecomputeAll(ctx.UserContext())
	if err != nil {
		return err
	}

	for _, clear := range []func() error{
		cache.BossRates.Clear,
		cache.ItemRates.Clear,
		cache.RareLeaderboard.Clear,
		cache.SiteStats.Clear,
	} {
		if err := clear(); err != nil {
			return err
		}
	}

	return ctx.Status(fiber.StatusAccepted).JSON(fiber.Map{
		"pairsUpdated": updated,
	})
}
