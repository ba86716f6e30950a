package model

import (
	"time"

	"github.com/uptrace/bun"
)

// Account is a registered user. Identity itself is established by the
// external OAuth provider; we only keep the provider subject reference
// and display metadata.
type Account struct {
	bun.BaseModel `bun:"accounts,alias:ac"`

	AccountID   int       `bun:"account_id,pk,autoincrement" json:"id"`
	ProviderRef string    `bun:"provider_ref" json:"-"`
	DisplayName string    `bun:"display_name" json:"displayName"`
	Banned      bool      `bun:"banned" json:"-"`
	CreatedAt   time.Time `bun:"created_at" json:"createdAt"`
}
