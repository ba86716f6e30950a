package server

import (
	"context"
	"net"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"go.uber.org/fx"

	"github.com/gmstracker/backend/internal/appconfig"
	"github.com/gmstracker/backend/internal/appentry"
)

func Run() {
	opts := append(appentry.ProvideOptions(), fx.Invoke(serve))

	app := fx.New(opts...)

	if err := app.Start(context.Background()); err != nil {
		panic(err)
	}

	<-app.Done()

	if err := app.Stop(context.Background()); err != nil {
		panic(err)
	}
}

func serve(app *fiber.App, conf *appconfig.Config, lc fx.Lifecycle) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			ln, err := net.Listen("tcp", conf.ServiceAddress)
			if err != nil {
				return err
			}

			go func() {
				if err := app.Listener(ln); err != nil {
					log.Error().Err(err).Msg("server terminated unexpectedly")
				}
			}()

			return nil
		},
		OnStop: func(ctx context.Context) error {
			return app.Shutdown()
		},
	})
}
