package types

import "gopkg.in/guregu/null.v3"

// admin seeding request structs

type SeedBoss struct {
	BossID      int         `json:"bossId" validate:"required"`
	Name        string      `json:"name" validate:"required,lte=128"`
	Difficulty  null.String `json:"difficulty"`
	ResetType   string      `json:"resetType" validate:"required,oneof=daily weekly monthly"`
	PartySize   int         `json:"partySize" validate:"omitempty,gte=1,lte=6"`
	CrystalMeso null.Int    `json:"crystalMeso"`
	ImageURL    string      `json:"imageUrl" validate:"omitempty,lte=512"`
	SortOrder   int         `json:"sortOrder"`
	IsActive    bool        `json:"isActive"`
}

type SeedItem struct {
	ItemID      int         `json:"itemId" validate:"required"`
	Name        string      `json:"name" validate:"required,lte=128"`
	Category    null.String `json:"category"`
	Subcategory null.String `json:"subcategory"`
	Rarity      null.String `json:"rarity"`
	IsActive    bool        `json:"isActive"`
}

type SeedDropTableEntry struct {
	BossID     int  `json:"bossId" validate:"required"`
	ItemID     int  `json:"itemId" validate:"required"`
	Guaranteed bool `json:"guaranteed"`
}

type SeedRequest struct {
	Bosses    []SeedBoss           `json:"bosses" validate:"dive"`
	Items     []SeedItem           `json:"items" validate:"dive"`
	DropTable []SeedDropTableEntry `json:"dropTable" validate:"dive"`
}

type CreateSessionRequest struct {
	ProviderRef string `json:"providerRef" validate:"required,lte=128"`
	DisplayName string `json:"displayName" validate:"omitempty,lte=64"`
}

type PurgeCacheRequest struct {
	Pairs []PurgeCachePair `json:"pairs" validate:"required,dive"`
}

type PurgeCachePair struct {
	Name string      `json:"name" validate:"required"`
	Key  null.String `json:"key"`
}
