package v1

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/fx"

	"github.com/gmstracker/backend/internal/constant"
	"github.com/gmstracker/backend/internal/pkg/pgerr"
	"github.com/gmstracker/backend/internal/server/svr"
	"github.com/gmstracker/backend/internal/service"
	"github.com/gmstracker/backend/internal/util/rekuest"
)

type Stats struct {
	fx.In

	StatsService    *service.Stats
	DropRateService *service.DropRate
}

func RegisterStats(v1 *svr.V1, c Stats) {
	v1.Get("/stats/boss/:bossId", c.GetBossRates)
	v1.Get("/stats/item/:itemId", c.GetItemRates)
	v1.Get("/stats/leaderboard/rare", c.GetRareLeaderboard)
	v1.Get("/stats/overview", c.GetSiteStats)
	v1.Post("/stats/compute", c.Compute)
}

func (c *Stats) GetBossRates(ctx *fiber.Ctx) error {
	bossId, err := ctx.ParamsInt("bossId")
	if err != nil {
		return pgerr.ErrInvalidReq.Msg("invalid boss id")
	}

	minSampleSize := ctx.QueryInt("min_sample_size", constant.DefaultMinSampleSize)
	if err := rekuest.ValidVar(ctx, minSampleSize, "gte=1"); err != nil {
		return err
	}

	result, err := c.StatsService.GetBossRates(ctx.UserContext(), bossId, minSampleSize)
	if err != nil {
		return err
	}
	return ctx.JSON(result)
}

func (c *Stats) GetItemRates(ctx *fiber.Ctx) error {
	itemId, err := ctx.ParamsInt("itemId")
	if err != nil {
		return pgerr.ErrInvalidReq.Msg("invalid item id")
	}

	minSampleSize := ctx.QueryInt("min_sample_size", constant.DefaultMinSampleSize)
	if err := rekuest.ValidVar(ctx, minSampleSize, "gte=1"); err != nil {
		return err
	}

	result, err := c.StatsService.GetItemRates(ctx.UserContext(), itemId, minSampleSize)
	if err != nil {
		return err
	}
	return ctx.JSON(result)
}

func (c *Stats) GetRareLeaderboard(ctx *fiber.Ctx) error {
	limit := ctx.QueryInt("limit", constant.DefaultLeaderboardLimit)
	if err := rekuest.ValidVar(ctx, limit, "gte=1,lte=100"); err != nil {
		return err
	}

	minSampleSize := ctx.QueryInt("min_sample_size", constant.LeaderboardMinSampleSize)
	if err := rekuest.ValidVar(ctx, minSampleSize, "gte=10"); err != nil {
		return err
	}

	result, err := c.StatsService.GetRareLeaderboard(ctx.UserContext(), minSampleSize, limit)
	if err != nil {
		return err
	}
	return ctx.JSON(result)
}

func (c *Stats) GetSiteStats(ctx *fiber.Ctx) error {
	result, err := c.StatsService.GetSiteStats(ctx.UserContext())
	if err != nil {
		return err
	}
	return ctx.JSON(result)
}

// Compute triggers a full synchronous aggregator recompute. The 202
// acknowledges the per-pair commit model: some pairs may already be
// visible to readers before the response returns.
func (c *Stats) Compute(ctx *fiber.Ctx) error {
	updated, err := c.DropRateService.RecomputeAll(ctx.UserContext())
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusAccepted).JSON(fiber.Map{
		"pairsUpdated": updated,
	})
}
