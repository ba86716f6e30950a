package app

import (
	"os"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"github.com/gmstracker/backend/cmd/app/server"
	"github.com/gmstracker/backend/internal/pkg/bininfo"
)

func Run() {
	app := &cli.App{
		Name:        "gmsbackend",
		Description: "The GMSTracker backend: boss-clear tracking, community drop-rate statistics and XP progression. Built with Go, fiber, bun and go.uber.org/fx.",
		Version:     bininfo.Version,
		Commands: []*cli.Command{
			server.Command(),
		},
	}
	if err := app.Run(os.Args); err != nil {
		log.Fatal().Err(err).Msg("failed to run app")
	}
}
