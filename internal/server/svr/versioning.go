package svr

import (
	"crypto/subtle"

	"github.com/gofiber/fiber/v2"

	"github.com/gmstracker/backend/internal/appconfig"
	"github.com/gmstracker/backend/internal/constant"
	"github.com/gmstracker/backend/internal/pkg/pgerr"
)

type V1 struct {
	fiber.Router
}

type Admin struct {
	fiber.Router
}

type Meta struct {
	fiber.Router
}

func CreateEndpointGroups(app *fiber.App, conf *appconfig.Config) (*V1, *Admin, *Meta) {
	v1 := app.Group("/api/v1")
	admin := app.Group("/api/_/admin", adminGuard(conf))
	meta := app.Group("/api/_")

	return &V1{Router: v1}, &Admin{Router: admin}, &Meta{Router: meta}
}

// adminGuard rejects all admin requests unless the configured admin key is
// set and matches the request header. An empty key disables the group.
func adminGuard(conf *appconfig.Config) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		if conf.AdminKey == "" {
			return pgerr.ErrNotFound.Msg("not found")
		}
		key := ctx.Get(constant.AdminKeyHeader)
		if subtle.ConstantTimeCompare([]byte(key), []byte(conf.AdminKey)) != 1 {
			return pgerr.ErrUnauthorized.Msg("invalid admin key")
		}
		return ctx.Next()
	}
}
