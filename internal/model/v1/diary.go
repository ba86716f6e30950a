package v1

import (
	"time"

	"gopkg.in/guregu/null.v3"
)

// drop diary query results

type DiaryStats struct {
	TotalRuns     int              `json:"totalRuns"`
	TotalClears   int              `json:"totalClears"`
	TotalDrops    int              `json:"totalDrops"`
	FirstRunAt    *time.Time       `json:"firstRunAt,omitempty"`
	LastRunAt     *time.Time       `json:"lastRunAt,omitempty"`
	RunsByBoss    []*DiaryBossRuns `json:"runsByBoss"`
	WeeksRecorded int              `json:"weeksRecorded"`
}

type DiaryBossRuns struct {
	BossID     int         `json:"bossId"`
	BossName   string      `json:"bossName"`
	Difficulty null.String `json:"difficulty,omitempty"`
	Runs       int         `json:"runs"`
	Clears     int         `json:"clears"`
}

type DiaryItems struct {
	Items []*DiaryItemTotal `json:"items"`
}

type DiaryItemTotal struct {
	ItemID        int         `json:"itemId"`
	ItemName      string      `json:"itemName"`
	Rarity        null.String `json:"rarity,omitempty"`
	TotalQuantity int         `json:"totalQuantity"`
	TimesDropped  int         `json:"timesDropped"`
	FirstSeenAt   time.Time   `json:"firstSeenAt"`
	LastSeenAt    time.Time   `json:"lastSeenAt"`
}

type DiaryTimeline struct {
	Weeks []*DiaryWeek `json:"weeks"`
}

type DiaryWeek struct {
	WeekStart time.Time `json:"weekStart"`
	Runs      int       `json:"runs"`
	Clears    int       `json:"clears"`
	Drops     int       `json:"drops"`
}
