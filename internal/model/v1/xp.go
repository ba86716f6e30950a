package v1

import (
	"time"

	"github.com/shopspring/decimal"
)

// xp progression query results

type XPStats struct {
	Days           int             `json:"days"`
	TotalEntries   int             `json:"totalEntries"`
	TotalBillions  decimal.Decimal `json:"totalBillions"`
	TotalTrillions decimal.Decimal `json:"totalTrillions"`
	AvgBillions    decimal.Decimal `json:"avgDailyBillions"`
	AvgTrillions   decimal.Decimal `json:"avgDailyTrillions"`
	BestDay        *XPBestDay      `json:"bestDay,omitempty"`
	CurrentLevel   int             `json:"currentLevel"`
	FirstEntryDate *time.Time      `json:"firstEntryDate,omitempty"`
	LastEntryDate  *time.Time      `json:"lastEntryDate,omitempty"`
}

type XPBestDay struct {
	EntryDate time.Time       `json:"entryDate"`
	Billions  decimal.Decimal `json:"billions"`
}

type SnapshotHistory struct {
	Points []*SnapshotPoint `json:"points"`
}

type SnapshotPoint struct {
	SnapshotDate time.Time       `json:"snapshotDate"`
	TotalXP      decimal.Decimal `json:"totalXp"`
	Level        *int            `json:"level,omitempty"`
	GainedXP     decimal.Decimal `json:"gainedXp"`
}

type SnapshotOverview struct {
	Characters []*SnapshotCharacterState `json:"characters"`
}

type SnapshotCharacterState struct {
	CharacterID     string           `json:"characterId"`
	CharacterName   string           `json:"characterName"`
	SnapshotDate    *time.Time       `json:"snapshotDate,omitempty"`
	TotalXP         decimal.Decimal  `json:"totalXp"`
	Level           *int             `json:"level,omitempty"`
	ProgressPercent *float64         `json:"progressPercent,omitempty"`
	XPToday         *decimal.Decimal `json:"xpToday,omitempty"`
	XPYesterday     *decimal.Decimal `json:"xpYesterday,omitempty"`
	AvgDailyXP      *decimal.Decimal `json:"avgDailyXp,omitempty"`
	TotalGained     *decimal.Decimal `json:"totalGained,omitempty"`
	DaysTracked     int              `json:"daysTracked"`
}
