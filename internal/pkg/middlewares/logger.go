package middlewares

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/gmstracker/backend/internal/constant"
	"github.com/gmstracker/backend/internal/pkg/flog"
)

func Logger(app *fiber.App) {
	chained(
		app,
		flog.NewHandlerMiddleware(log.With().Logger()),
		flog.RequestIDHandler("request_id", constant.RequestIDHeader),
		flog.FieldHandler("ip", func(ctx *fiber.Ctx) string { return ctx.IP() }),
		flog.FieldHandler("method", func(ctx *fiber.Ctx) string { return ctx.Method() }),
		flog.FieldHandler("url", func(ctx *fiber.Ctx) string { return ctx.Path() }),
		requestLogger(),
	)
}

func requestLogger() fiber.Handler {
	return flog.AccessHandler(func(ctx *fiber.Ctx, duration time.Duration) {
		flog.FromFiberCtx(ctx).Info().
			Str("component", "httpreq").
			Int("status", ctx.Response().StatusCode()).
			Int("size", len(ctx.Response().Body())).
			Dur("duration", duration).
			Msg("received request")
	})
}

func chained(app *fiber.App, middlewares ...fiber.Handler) {
	for _, middleware := range middlewares {
		app.Use(middleware)
	}
}
