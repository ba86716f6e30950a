package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/uptrace/bun"
	"gopkg.in/guregu/null.v3"
)

// CharacterXPSnapshot records a character's cumulative experience on a
// given date. One row per (character, date); recording again on the same
// date overwrites the previous snapshot.
type CharacterXPSnapshot struct {
	bun.BaseModel `bun:"character_xp_snapshots,alias:cxs"`

	SnapshotID   int             `bun:"snapshot_id,pk,autoincrement" json:"-"`
	CharacterID  uuid.UUID       `bun:"character_id,type:uuid" json:"characterId"`
	SnapshotDate time.Time       `bun:"snapshot_date,type:date" json:"snapshotDate"`
	TotalXP      decimal.Decimal `bun:"total_xp,type:numeric(24,0)" json:"totalXp"`
	Level        null.Int        `bun:"level" json:"level"`
	CreatedAt    time.Time       `bun:"created_at" json:"createdAt"`

	Character *Character `bun:"rel:belongs-to,join:character_id=character_id" json:"-"`
}
