package appentry

import (
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"

	"github.com/gmstracker/backend/internal/appconfig"
	"github.com/gmstracker/backend/internal/controller"
	"github.com/gmstracker/backend/internal/infra"
	"github.com/gmstracker/backend/internal/model/cache"
	"github.com/gmstracker/backend/internal/pkg/logger"
	"github.com/gmstracker/backend/internal/pkg/session"
	"github.com/gmstracker/backend/internal/repo"
	"github.com/gmstracker/backend/internal/server"
	"github.com/gmstracker/backend/internal/service"
	"github.com/gmstracker/backend/internal/workers/statswkr"
)

func ProvideOptions() []fx.Option {
	opts := []fx.Option{
		// Misc
		fx.Provide(appconfig.Parse),
		fx.Provide(newSessionStore),

		// Infrastructures
		infra.Module(),

		// Repositories
		repo.Module(),

		// Services
		service.Module(),

		// HTTP server & endpoint groups
		server.Module(),

		// Global Singleton Inits: Keep those before controllers to ensure they are initialized
		// before controllers are registered as controllers are also fx#Invoke functions which
		// are called in the order of their registration.
		fx.Invoke(logger.Configure),
		fx.Invoke(infra.SentryInit),
		fx.Invoke(cache.Initialize),
		fx.WithLogger(logger.Fx),

		// Controllers
		controller.Module(),

		// Workers
		fx.Invoke(statswkr.Start),

		// fx Extra Options
		fx.StartTimeout(1 * time.Second),
		// StopTimeout is not typically needed, since we're using fiber's Shutdown(),
		// in which fiber has its own IdleTimeout for controlling the shutdown timeout.
		// It acts as a countermeasure in case the fiber app is not properly shutting down.
		fx.StopTimeout(5 * time.Minute),
	}

	return opts
}

func newSessionStore(conf *appconfig.Config, client *redis.Client) *session.Store {
	return session.NewStore(client, conf.SessionTTL)
}
