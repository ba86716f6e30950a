package model

import (
	"github.com/uptrace/bun"
)

// BossDropTable declares which items are possible drops from which boss.
// It is the population universe for the drop-rate aggregator: every pair
// present here gets a statistic row whether or not a drop was ever
// observed.
type BossDropTable struct {
	bun.BaseModel `bun:"boss_drop_table,alias:bdt"`

	DropTableID int  `bun:"drop_table_id,pk,autoincrement" json:"id"`
	BossID      int  `bun:"boss_id" json:"bossId"`
	ItemID      int  `bun:"item_id" json:"itemId"`
	Guaranteed  bool `bun:"guaranteed" json:"guaranteed"`

	Boss *Boss `bun:"rel:belongs-to,join:boss_id=boss_id" json:"-"`
	Item *Item `bun:"rel:belongs-to,join:item_id=item_id" json:"-"`
}
