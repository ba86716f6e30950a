package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
	"gopkg.in/guregu/null.v3"
)

// BossRun is one user-generated clear/attempt event. WeekStart is the
// reset-period start derived from ClearedAt, denormalized for fast
// grouping and the weekly-duplicate check. Rows are immutable after
// creation except for deletion by their owner.
type BossRun struct {
	bun.BaseModel `bun:"boss_runs,alias:br"`

	RunID       uuid.UUID   `bun:"run_id,pk,type:uuid" json:"id"`
	CharacterID uuid.UUID   `bun:"character_id,type:uuid" json:"characterId"`
	BossID      int         `bun:"boss_id" json:"bossId"`
	ClearedAt   time.Time   `bun:"cleared_at" json:"clearedAt"`
	WeekStart   time.Time   `bun:"week_start,type:date" json:"weekStart"`
	PartySize   int         `bun:"party_size" json:"partySize"`
	Notes       null.String `bun:"notes" json:"notes"`
	IsClear     bool        `bun:"is_clear" json:"isClear"`
	CreatedAt   time.Time   `bun:"created_at" json:"createdAt"`

	Character *Character     `bun:"rel:belongs-to,join:character_id=character_id" json:"-"`
	Boss      *Boss          `bun:"rel:belongs-to,join:boss_id=boss_id" json:"-"`
	Drops     []*BossRunDrop `bun:"rel:has-many,join:run_id=run_id" json:"-"`
}

// BossRunDrop records one item obtained during a run; append-only and
// cascade-deleted with its parent.
type BossRunDrop struct {
	bun.BaseModel `bun:"boss_run_drops,alias:brd"`

	DropID   int       `bun:"drop_id,pk,autoincrement" json:"id"`
	RunID    uuid.UUID `bun:"run_id,type:uuid" json:"runId"`
	ItemID   int       `bun:"item_id" json:"itemId"`
	Quantity int       `bun:"quantity" json:"quantity"`

	Run  *BossRun `bun:"rel:belongs-to,join:run_id=run_id" json:"-"`
	Item *Item    `bun:"rel:belongs-to,join:item_id=item_id" json:"-"`
}
