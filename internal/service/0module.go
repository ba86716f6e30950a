package service

import (
	"go.uber.org/fx"
)

func Module() fx.Option {
	return fx.Module("service", fx.Provide(
		NewXP,
		NewRun,
		NewBoss,
		NewItem,
		NewAdmin,
		NewDiary,
		NewStats,
		NewHealth,
		NewAccount,
		NewXPTable,
		NewDropRate,
		NewCharacter,
		NewDropTable,
		NewXPSnapshot,
	))
}
