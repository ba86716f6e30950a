package service

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/gmstracker/backend/internal/model/cache"
	modelv1 "github.com/gmstracker/backend/internal/model/v1"
	"github.com/gmstracker/backend/internal/pkg/pgerr"
	"github.com/gmstracker/backend/internal/repo"
)

// Stats serves the public community drop-rate queries from the
// materialized aggregates, fronted by short-lived redis caches.
type Stats struct {
	DropRateStatsRepo *repo.DropRateStats
	BossRunRepo       *repo.BossRun
	AccountRepo       *repo.Account
	CharacterRepo     *repo.Character
	BossService       *Boss
	ItemService       *Item
}

func NewStats(dropRateStatsRepo *repo.DropRateStats, bossRunRepo *repo.BossRun, accountRepo *repo.Account, characterRepo *repo.Character, bossService *Boss, itemService *Item) *Stats {
	return &Stats{
		DropRateStatsRepo: dropRateStatsRepo,
		BossRunRepo:       bossRunRepo,
		AccountRepo:       accountRepo,
		CharacterRepo:     characterRepo,
		BossService:       bossService,
		ItemService:       itemService,
	}
}

// Cache: bossRates#bossId|minSampleSize:{bossId}|{minSampleSize}, 10min
func (s *Stats) GetBossRates(ctx context.Context, bossId, minSampleSize int) (*modelv1.BossRatesResult, error) {
	key := strconv.Itoa(bossId) + "|" + strconv.Itoa(minSampleSize)
	var result modelv1.BossRatesResult
	err := cache.BossRates.Get(key, &result)
	if err == nil {
		return &result, nil
	}

	boss, err := s.BossService.GetBossById(ctx, bossId)
	if err != nil {
		return nil, err
	}

	stats, err := s.DropRateStatsRepo.GetStatsByBossId(ctx, bossId)
	if err != nil && !errors.Is(err, pgerr.ErrNotFound) {
		return nil, err
	}

	slowResult := &modelv1.BossRatesResult{
		BossID: boss.BossID,
		Name:   boss.FullName(),
		Rates:  make([]*modelv1.OneItemRate, 0, len(stats)),
	}
	for _, row := range stats {
		if row.SampleSize < minSampleSize {
			continue
		}
		rate := &modelv1.OneItemRate{
			ItemID:       row.ItemID,
			SampleSize:   row.SampleSize,
			DropCount:    row.DropCount,
			DropRate:     row.DropRate,
			LastComputed: row.LastComputed,
		}
		if row.Item != nil {
			rate.ItemName = row.Item.Name
			rate.Rarity = row.Item.Rarity
		}
		slowResult.Rates = append(slowResult.Rates, rate)
	}

	go cache.BossRates.Set(key, *slowResult, 10*time.Minute)
	return slowResult, nil
}

// Cache: itemRates#itemId|minSampleSize:{itemId}|{minSampleSize}, 10min
func (s *Stats) GetItemRates(ctx context.Context, itemId, minSampleSize int) (*modelv1.ItemRatesResult, error) {
	key := strconv.Itoa(itemId) + "|" + strconv.Itoa(minSampleSize)
	var result modelv1.ItemRatesResult
	err := cache.ItemRates.Get(key, &result)
	if err == nil {
		return &result, nil
	}

	item, err := s.ItemService.GetItemById(ctx, itemId)
	if err != nil {
		return nil, err
	}

	stats, err := s.DropRateStatsRepo.GetStatsByItemId(ctx, itemId)
	if err != nil && !errors.Is(err, pgerr.ErrNotFound) {
		return nil, err
	}

	slowResult := &modelv1.ItemRatesResult{
		ItemID: item.ItemID,
		Name:   item.Name,
		Rates:  make([]*modelv1.OneBossRate, 0, len(stats)),
	}
	for _, row := range stats {
		if row.SampleSize < minSampleSize {
			continue
		}
		rate := &modelv1.OneBossRate{
			BossID:       row.BossID,
			SampleSize:   row.SampleSize,
			DropCount:    row.DropCount,
			DropRate:     row.DropRate,
			LastComputed: row.LastComputed,
		}
		if row.Boss != nil {
			rate.BossName = row.Boss.Name
			rate.Difficulty = row.Boss.Difficulty
		}
		slowResult.Rates = append(slowResult.Rates, rate)
	}

	go cache.ItemRates.Set(key, *slowResult, 10*time.Minute)
	return slowResult, nil
}

// Cache: rareLeaderboard#minSampleSize|limit:{minSampleSize}|{limit}, 10min
func (s *Stats) GetRareLeaderboard(ctx context.Context, minSampleSize, limit int) (*modelv1.LeaderboardResult, error) {
	key := strconv.Itoa(minSampleSize) + "|" + strconv.Itoa(limit)
	var result modelv1.LeaderboardResult
	err := cache.RareLeaderboard.Get(key, &result)
	if err == nil {
		return &result, nil
	}

	stats, err := s.DropRateStatsRepo.GetRareLeaderboard(ctx, minSampleSize, limit)
	if err != nil && !errors.Is(err, pgerr.ErrNotFound) {
		return nil, err
	}

	slowResult := &modelv1.LeaderboardResult{
		MinSampleSize: minSampleSize,
		Entries:       make([]*modelv1.LeaderboardEntry, 0, len(stats)),
	}
	for _, row := range stats {
		entry := &modelv1.LeaderboardEntry{
			BossID:     row.BossID,
			ItemID:     row.ItemID,
			SampleSize: row.SampleSize,
			DropRate:   row.DropRate,
		}
		if row.Boss != nil {
			entry.BossName = row.Boss.FullName()
		}
		if row.Item != nil {
			entry.ItemName = row.Item.Name
		}
		slowResult.Entries = append(slowResult.Entries, entry)
	}

	go cache.RareLeaderboard.Set(key, *slowResult, 10*time.Minute)
	return slowResult, nil
}

// Cache: siteStats, 1hr
func (s *Stats) GetSiteStats(ctx context.Context) (*modelv1.SiteStats, error) {
	var result modelv1.SiteStats
	err := cache.SiteStats.Get("global", &result)
	if err == nil {
		return &result, nil
	}

	totalRuns, err := s.BossRunRepo.CountAllRuns(ctx)
	if err != nil {
		return nil, err
	}
	totalRuns24h, err := s.BossRunRepo.CountRunsSince(ctx, time.Now().Add(-24*time.Hour))
	if err != nil {
		return nil, err
	}
	totalDrops, err := s.BossRunRepo.CountAllDrops(ctx)
	if err != nil {
		return nil, err
	}
	totalAccounts, err := s.AccountRepo.CountAccounts(ctx)
	if err != nil {
		return nil, err
	}
	totalCharacters, err := s.CharacterRepo.CountCharacters(ctx)
	if err != nil {
		return nil, err
	}

	slowResult := &modelv1.SiteStats{
		TotalRuns:       totalRuns,
		TotalRuns24H:    totalRuns24h,
		TotalDrops:      totalDrops,
		TotalAccounts:   totalAccounts,
		TotalCharacters: totalCharacters,
	}
	if last, err := s.DropRateStatsRepo.GetLastComputed(ctx); err == nil {
		lastComputed := last.LastComputed
		slowResult.LastComputed = &lastComputed
	}

	go cache.SiteStats.Set("global", *slowResult, time.Hour)
	return slowResult, nil
}
