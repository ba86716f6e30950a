// Package flog provides fiber.Ctx helpers for zerolog, so every request
// handler can log with the request's contextual fields attached.
package flog

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/xid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type idKey struct{}

// FromFiberCtx gets the logger in the request's user context.
func FromFiberCtx(ctx *fiber.Ctx) *zerolog.Logger {
	return log.Ctx(ctx.UserContext())
}

// NewHandlerMiddleware injects a logger into the request's user context.
func NewHandlerMiddleware(logger zerolog.Logger) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		// copy the logger (including its internal context slice) to prevent
		// data races when handlers use UpdateContext
		l := logger.With().Logger()
		ctx.SetUserContext(l.WithContext(ctx.UserContext()))
		return ctx.Next()
	}
}

// IDFromFiberCtx returns the request id previously set by RequestIDHandler.
func IDFromFiberCtx(ctx *fiber.Ctx) (xid.ID, bool) {
	id, ok := ctx.UserContext().Value(idKey{}).(xid.ID)
	return id, ok
}

// RequestIDHandler assigns each request a unique xid, records it as a
// logger field under fieldKey and echoes it back via headerName when
// non-empty.
func RequestIDHandler(fieldKey, headerName string) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		id, ok := IDFromFiberCtx(ctx)
		if !ok {
			id = xid.New()
			ctx.SetUserContext(context.WithValue(ctx.UserContext(), idKey{}, id))
		}
		if fieldKey != "" {
			l := FromFiberCtx(ctx)
			l.UpdateContext(func(c zerolog.Context) zerolog.Context {
				return c.Str(fieldKey, id.String())
			})
		}
		if headerName != "" {
			ctx.Set(headerName, id.String())
		}
		return ctx.Next()
	}
}

// FieldHandler adds a per-request string field to the context's logger.
func FieldHandler(fieldKey string, value func(ctx *fiber.Ctx) string) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		l := zerolog.Ctx(ctx.UserContext())
		l.UpdateContext(func(c zerolog.Context) zerolog.Context {
			return c.Str(fieldKey, value(ctx))
		})
		return ctx.Next()
	}
}

// AccessHandler calls f with the elapsed duration after each request.
func AccessHandler(f func(ctx *fiber.Ctx, duration time.Duration)) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		start := time.Now()
		err := ctx.Next()
		f(ctx, time.Since(start))
		return err
	}
}

func DebugFrom(ctx *fiber.Ctx) *zerolog.Event {
	return FromFiberCtx(ctx).Debug()
}

func InfoFrom(ctx *fiber.Ctx) *zerolog.Event {
	return FromFiberCtx(ctx).Info()
}

func WarnFrom(ctx *fiber.Ctx) *zerolog.Event {
	return FromFiberCtx(ctx).Warn()
}

func ErrorFrom(ctx *fiber.Ctx) *zerolog.Event {
	return FromFiberCtx(ctx).Error()
}
