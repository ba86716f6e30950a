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

type Tracking struct {
	fx.In

	RunService     *service.Run
	AccountService *service.Account
}

func RegisterTracking(v1 *svr.V1, c Tracking) {
	v1.Post("/tracking/runs", c.RecordRun)
	v1.Get("/tracking/runs", c.ListRuns)
	v1.Get("/tracking/runs/:runId", c.GetRun)
	v1.Delete("/tracking/runs/:runId", c.DeleteRun)
	v1.Post("/tracking/runs/:runId/drops", c.AddDrop)
	v1.Get("/tracking/weekly", c.WeeklyProgress)
}

func (c *Tracking) RecordRun(ctx *fiber.Ctx) error {
	account, err := c.AccountService.GetAccountFromRequest(ctx)
	if err != nil {
		return err
	}

	var request types.RecordRunRequest
	if err := rekuest.ValidBody(ctx, &request); err != nil {
		return err
	}

	run, err := c.RunService.RecordRun(ctx.UserContext(), account.AccountID, &request)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(run)
}

func (c *Tracking) ListRuns(ctx *fiber.Ctx) error {
	account, err := c.AccountService.GetAccountFromRequest(ctx)
	if err != nil {
		return err
	}

	var query types.ListRunsQuery
	if err := rekuest.ValidQuery(ctx, &query); err != nil {
		return err
	}

	runs, err := c.RunService.ListRuns(ctx.UserContext(), account.AccountID, &query)
	if err != nil {
		return err
	}

	return ctx.JSON(runs)
}

func (c *Tracking) GetRun(ctx *fiber.Ctx) error {
	account, err := c.AccountService.GetAccountFromRequest(ctx)
	if err != nil {
		return err
	}

	runId, err := uuid.Parse(ctx.Params("runId"))
	if err != nil {
		return pgerr.ErrInvalidReq.Msg("invalid run id")
	}

	run, err := c.RunService.GetRun(ctx.UserContext(), account.AccountID, runId)
	if err != nil {
		return err
	}

	return ctx.JSON(run)
}

func (c *Tracking) DeleteRun(ctx *fiber.Ctx) error {
	account, err := c.AccountService.GetAccountFromRequest(ctx)
	if err != nil {
		return err
	}

	runId, err := uuid.Parse(ctx.Params("runId"))
	if err != nil {
		return pgerr.ErrInvalidReq.Msg("invalid run id")
	}

	if err := c.RunService.DeleteRun(ctx.UserContext(), account.AccountID, runId); err != nil {
		return err
	}

	return ctx.SendStatus(fiber.StatusNoContent)
}

func (c *Tracking) AddDrop(ctx *fiber.Ctx) error {
	account, err := c.AccountService.GetAccountFromRequest(ctx)
	if err != nil {
		return err
	}

	runId, err := uuid.Parse(ctx.Params("runId"))
	if err != nil {
		return pgerr.ErrInvalidReq.Msg("invalid run id")
	}

	var request types.AddDropRequest
	if err := rekuest.ValidBody(ctx, &request); err != nil {
		return err
	}

	run, err := c.RunService.AddDrop(ctx.UserContext(), account.AccountID, runId, &request)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(run)
}

func (c *Tracking) WeeklyProgress(ctx *fiber.Ctx) error {
	account, err := c.AccountService.GetAccountFromRequest(ctx)
	if err != nil {
		return err
	}

	characterId := ctx.Query("characterId")
	if characterId != "" {
		if err := rekuest.ValidVar(ctx, characterId, "uuid4"); err != nil {
			return err
		}
	}

	progress, err := c.RunService.WeeklyProgress(ctx.UserContext(), account.AccountID, characterId)
	if err != nil {
		return err
	}

	return ctx.JSON(progress)
}
