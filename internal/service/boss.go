package service

import (
	"context"
	"time"

	"github.com/ahmetb/go-linq/v3"

	"github.com/gmstracker/backend/internal/model"
	"github.com/gmstracker/backend/internal/model/cache"
	"github.com/gmstracker/backend/internal/repo"
)

type Boss struct {
	BossRepo *repo.Boss
}

func NewBoss(bossRepo *repo.Boss) *Boss {
	return &Boss{
		BossRepo: bossRepo,
	}
}

// Cache: (singular) bosses, 1hr
func (s *Boss) GetBosses(ctx context.Context) ([]*model.Boss, error) {
	var bosses []*model.Boss
	err := cache.Bosses.Get(&bosses)
	if err == nil {
		return bosses, nil
	}

	bosses, err = s.BossRepo.GetBosses(ctx)
	if err != nil {
		return nil, err
	}
	go cache.Bosses.Set(bosses, time.Hour)
	return bosses, nil
}

// Cache: (singular) bossesMapById, 1hr
func (s *Boss) GetBossesMap(ctx context.Context) (map[int]*model.Boss, error) {
	var bossesMap map[int]*model.Boss
	err := cache.BossesMapByID.Get(&bossesMap)
	if err == nil {
		return bossesMap, nil
	}

	bosses, err := s.GetBosses(ctx)
	if err != nil {
		return nil, err
	}
	bossesMap = make(map[int]*model.Boss)
	linq.From(bosses).
		ToMapByT(
			&bossesMap,
			func(boss *model.Boss) int { return boss.BossID },
			func(boss *model.Boss) *model.Boss { return boss })
	go cache.BossesMapByID.Set(bossesMap, time.Hour)
	return bossesMap, nil
}

func (s *Boss) GetBossById(ctx context.Context, bossId int) (*model.Boss, error) {
	bossesMap, err := s.GetBossesMap(ctx)
	if err == nil {
		if boss, ok := bossesMap[bossId]; ok {
			return boss, nil
		}
	}
	return s.BossRepo.GetBossById(ctx, bossId)
}

func (s *Boss) GetWeeklyBosses(ctx context.Context) ([]*model.Boss, error) {
	return s.BossRepo.GetWeeklyBosses(ctx)
}
