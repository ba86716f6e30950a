package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/uptrace/bun"
	"gopkg.in/guregu/null.v3"
)

// XPEntry is one manually-logged daily progression snapshot, unique per
// (account, entry date). The gained and total columns are derived from
// level and the percent pair; both magnitude scalings are recomputed
// together on every write.
type XPEntry struct {
	bun.BaseModel `bun:"xp_entries,alias:xe"`

	EntryID   uuid.UUID `bun:"entry_id,pk,type:uuid" json:"id"`
	AccountID int       `bun:"account_id" json:"-"`
	EntryDate time.Time `bun:"entry_date,type:date" json:"entryDate"`

	Level      int             `bun:"level" json:"level"`
	OldPercent decimal.Decimal `bun:"old_percent,type:numeric(5,2)" json:"oldPercent"`
	NewPercent decimal.Decimal `bun:"new_percent,type:numeric(5,2)" json:"newPercent"`

	XPGainedBillions  decimal.Decimal `bun:"xp_gained_billions,type:numeric(20,6)" json:"xpGainedBillions"`
	XPGainedTrillions decimal.Decimal `bun:"xp_gained_trillions,type:numeric(20,9)" json:"xpGainedTrillions"`

	EpicDungeon           bool                `bun:"epic_dungeon" json:"epicDungeon"`
	EpicDungeonMultiplier int                 `bun:"epic_dungeon_multiplier" json:"epicDungeonMultiplier"`
	EpicXPBillions        decimal.NullDecimal `bun:"epic_xp_billions,type:numeric(20,6)" json:"epicXpBillions"`
	EpicXPTrillions       decimal.NullDecimal `bun:"epic_xp_trillions,type:numeric(20,9)" json:"epicXpTrillions"`

	TotalDailyXPBillions  decimal.Decimal `bun:"total_daily_xp_billions,type:numeric(20,6)" json:"totalDailyXpBillions"`
	TotalDailyXPTrillions decimal.Decimal `bun:"total_daily_xp_trillions,type:numeric(20,9)" json:"totalDailyXpTrillions"`

	Notes     null.String `bun:"notes" json:"notes"`
	CreatedAt time.Time   `bun:"created_at" json:"createdAt"`
	UpdatedAt time.Time   `bun:"updated_at" json:"updatedAt"`
}
