package v1

import (
	"go.uber.org/fx"
)

func Module() fx.Option {
	opts := []fx.Option{
		fx.Invoke(
			RegisterXP,
			RegisterBoss,
			RegisterItem,
			RegisterDiary,
			RegisterStats,
			RegisterTracking,
			RegisterCharacter,
			RegisterXPSnapshot,
		),
	}
	return fx.Module("controllers.v1", opts...)
}
