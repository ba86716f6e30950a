package v1

import (
	"github.com/gofiber/fiber/v2"
	"github.com/samber/lo"
	"go.uber.org/fx"

	"github.com/gmstracker/backend/internal/model"
	"github.com/gmstracker/backend/internal/pkg/pgerr"
	"github.com/gmstracker/backend/internal/server/svr"
	"github.com/gmstracker/backend/internal/service"
	"github.com/gmstracker/backend/internal/util/rekuest"
)

type Boss struct {
	fx.In

	BossService      *service.Boss
	DropTableService *service.DropTable
}

func RegisterBoss(v1 *svr.V1, c Boss) {
	v1.Get("/bosses", c.GetBosses)
	v1.Get("/bosses/:bossId", c.GetBossById)
	v1.Get("/bosses/:bossId/droptable", c.GetDropTable)
}

func (c *Boss) GetBosses(ctx *fiber.Ctx) error {
	resetType := ctx.Query("resetType")
	if resetType != "" {
		if err := rekuest.ValidVar(ctx, resetType, "oneof=daily weekly monthly"); err != nil {
			return err
		}
	}
	activeOnly := ctx.QueryBool("activeOnly", true)

	bosses, err := c.BossService.GetBosses(ctx.UserContext())
	if err != nil {
		return err
	}

	filtered := lo.Filter(bosses, func(boss *model.Boss, _ int) bool {
		if activeOnly && !boss.IsActive {
			return false
		}
		return resetType == "" || boss.ResetType == resetType
	})
	return ctx.JSON(filtered)
}

func (c *Boss) GetBossById(ctx *fiber.Ctx) error {
	bossId, err := ctx.ParamsInt("bossId")
	if err != nil {
		return pgerr.ErrInvalidReq.Msg("invalid boss id")
	}
	if err := rekuest.ValidVar(ctx, bossId, "gte=1"); err != nil {
		return err
	}

	boss, err := c.BossService.GetBossById(ctx.UserContext(), bossId)
	if err != nil {
		return err
	}
	return ctx.JSON(boss)
}

func (c *Boss) GetDropTable(ctx *fiber.Ctx) error {
	bossId, err := ctx.ParamsInt("bossId")
	if err != nil {
		return pgerr.ErrInvalidReq.Msg("invalid boss id")
	}
	if err := rekuest.ValidVar(ctx, bossId, "gte=1"); err != nil {
		return err
	}

	entries, err := c.DropTableService.GetDropTableByBossId(ctx.UserContext(), bossId)
	if err != nil {
		return err
	}
	return ctx.JSON(entries)
}
