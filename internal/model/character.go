package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
	"gopkg.in/guregu/null.v3"
)

// Character belongs to exactly one account; (account, name, world) is
// unique. Display fields may be enriched from an external provider, which
// is never allowed to block ledger operations.
type Character struct {
	bun.BaseModel `bun:"characters,alias:c"`

	CharacterID uuid.UUID   `bun:"character_id,pk,type:uuid" json:"id"`
	AccountID   int         `bun:"account_id" json:"-"`
	Name        string      `bun:"name" json:"name"`
	World       string      `bun:"world" json:"world"`
	Level       null.Int    `bun:"level" json:"level"`
	Job         null.String `bun:"job" json:"job"`
	IconURL     null.String `bun:"icon_url" json:"iconUrl"`
	IsMain      bool        `bun:"is_main" json:"isMain"`
	SortOrder   int         `bun:"sort_order" json:"sortOrder"`
	CreatedAt   time.Time   `bun:"created_at" json:"createdAt"`
}
