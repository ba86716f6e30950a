package repo

import (
	"go.uber.org/fx"
)

func Module() fx.Option {
	return fx.Module("repo", fx.Provide(
		NewBoss,
		NewItem,
		NewAccount,
		NewBossRun,
		NewXPEntry,
		NewCharacter,
		NewDropTable,
		NewXPSnapshot,
		NewDropRateStats,
	))
}
