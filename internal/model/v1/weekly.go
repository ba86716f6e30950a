package v1

import (
	"time"

	"gopkg.in/guregu/null.v3"
)

// WeeklyProgress is the clear checklist for one account and one reset
// week. A boss counts as cleared once any of the account's characters
// has a clear run inside the week.
type WeeklyProgress struct {
	WeekStart time.Time          `json:"weekStart"`
	WeekEnd   time.Time          `json:"weekEnd"`
	Bosses    []*WeeklyBossState `json:"bosses"`
	Summary   *WeeklySummary     `json:"summary"`
}

type WeeklyBossState struct {
	BossID        int         `json:"bossId"`
	Name          string      `json:"name"`
	Difficulty    null.String `json:"difficulty"`
	CrystalMeso   null.Int    `json:"crystalMeso"`
	PartySize     int         `json:"partySize"`
	Cleared       bool        `json:"cleared"`
	ClearedAt     *time.Time  `json:"clearedAt,omitempty"`
	CharacterID   null.String `json:"characterId,omitempty"`
	CharacterName null.String `json:"characterName,omitempty"`
}

type WeeklySummary struct {
	ClearedCount       int   `json:"clearedCount"`
	TotalBosses        int   `json:"totalBosses"`
	EstimatedMesoShare int64 `json:"estimatedMesoShare"`
}
