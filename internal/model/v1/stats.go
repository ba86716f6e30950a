package v1

import (
	"time"

	"gopkg.in/guregu/null.v3"
)

// community drop-rate query results

type BossRatesResult struct {
	BossID int            `json:"bossId"`
	Name   string         `json:"name"`
	Rates  []*OneItemRate `json:"rates"`
}

type OneItemRate struct {
	ItemID       int         `json:"itemId"`
	ItemName     string      `json:"itemName"`
	Rarity       null.String `json:"rarity,omitempty"`
	SampleSize   int         `json:"sampleSize"`
	DropCount    int         `json:"dropCount"`
	DropRate     float64     `json:"dropRate"`
	LastComputed time.Time   `json:"lastComputed"`
}

type ItemRatesResult struct {
	ItemID int            `json:"itemId"`
	Name   string         `json:"name"`
	Rates  []*OneBossRate `json:"rates"`
}

type OneBossRate struct {
	BossID       int         `json:"bossId"`
	BossName     string      `json:"bossName"`
	Difficulty   null.String `json:"difficulty,omitempty"`
	SampleSize   int         `json:"sampleSize"`
	DropCount    int         `json:"dropCount"`
	DropRate     float64     `json:"dropRate"`
	LastComputed time.Time   `json:"lastComputed"`
}

type LeaderboardResult struct {
	MinSampleSize int                 `json:"minSampleSize"`
	Entries       []*LeaderboardEntry `json:"entries"`
}

type LeaderboardEntry struct {
	BossID     int     `json:"bossId"`
	BossName   string  `json:"bossName"`
	ItemID     int     `json:"itemId"`
	ItemName   string  `json:"itemName"`
	SampleSize int     `json:"sampleSize"`
	DropRate   float64 `json:"dropRate"`
}

type SiteStats struct {
	TotalRuns       int        `json:"totalRuns"`
	TotalRuns24H    int        `json:"totalRuns_24h"`
	TotalDrops      int        `json:"totalDrops"`
	TotalAccounts   int        `json:"totalAccounts"`
	TotalCharacters int        `json:"totalCharacters"`
	LastComputed    *time.Time `json:"lastComputed,omitempty"`
}
