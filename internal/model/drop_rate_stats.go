package model

import (
	"time"

	"github.com/uptrace/bun"
)

// DropRateStats is the materialized community statistic for one
// (boss, item) pair from BossDropTable. Only the aggregator writes it;
// LastComputed is per-row because the aggregator commits per pair.
type DropRateStats struct {
	bun.BaseModel `bun:"drop_rate_stats,alias:drs"`

	StatsID      int       `bun:"stats_id,pk,autoincrement" json:"-"`
	BossID       int       `bun:"boss_id" json:"bossId"`
	ItemID       int       `bun:"item_id" json:"itemId"`
	SampleSize   int       `bun:"sample_size" json:"sampleSize"`
	DropCount    int       `bun:"drop_count" json:"dropCount"`
	DropRate     float64   `bun:"drop_rate" json:"dropRate"`
	LastComputed time.Time `bun:"last_computed" json:"lastComputed"`

	Boss *Boss `bun:"rel:belongs-to,join:boss_id=boss_id" json:"-"`
	Item *Item `bun:"rel:belongs-to,join:item_id=item_id" json:"-"`
}
