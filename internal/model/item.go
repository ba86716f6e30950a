package model

import (
	"github.com/uptrace/bun"
	"gopkg.in/guregu/null.v3"
)

// Item is a static reference entity with a globally unique name.
type Item struct {
	bun.BaseModel `bun:"items,alias:i"`

	ItemID      int         `bun:"item_id,pk,autoincrement" json:"id"`
	Name        string      `bun:"name" json:"name"`
	Category    null.String `bun:"category" json:"category"`
	Subcategory null.String `bun:"subcategory" json:"subcategory"`
	Rarity      null.String `bun:"rarity" json:"rarity"`
	IsActive    bool        `bun:"is_active" json:"isActive"`
}
