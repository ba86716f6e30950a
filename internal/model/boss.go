package model

import (
	"github.com/uptrace/bun"
	"gopkg.in/guregu/null.v3"
)

// Boss is a static reference entity seeded administratively; (Name,
// Difficulty) is unique, with difficulty distinguishing variants of the
// same named boss.
type Boss struct {
	bun.BaseModel `bun:"bosses,alias:b"`

	BossID      int         `bun:"boss_id,pk,autoincrement" json:"id"`
	Name        string      `bun:"name" json:"name"`
	Difficulty  null.String `bun:"difficulty" json:"difficulty"`
	ResetType   string      `bun:"reset_type" json:"resetType"`
	PartySize   int         `bun:"party_size" json:"partySize"`
	CrystalMeso null.Int    `bun:"crystal_meso" json:"crystalMeso"`
	ImageURL    null.String `bun:"image_url" json:"imageUrl"`
	SortOrder   int         `bun:"sort_order" json:"sortOrder"`
	IsActive    bool        `bun:"is_active" json:"isActive"`
}

// FullName is the display name with the difficulty prefix when present.
func (b *Boss) FullName() string {
	if b.Difficulty.Valid && b.Difficulty.String != "" {
		return b.Difficulty.String + " " + b.Name
	}
	return b.Name
}
