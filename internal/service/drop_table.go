package service

import (
	"context"
	"time"

	"github.com/samber/lo"

	"github.com/gmstracker/backend/internal/model"
	"github.com/gmstracker/backend/internal/model/cache"
	"github.com/gmstracker/backend/internal/repo"
)

type DropTable struct {
	DropTableRepo *repo.DropTable
}

func NewDropTable(dropTableRepo *repo.DropTable) *DropTable {
	return &DropTable{
		DropTableRepo: dropTableRepo,
	}
}

// Cache: (singular) dropTableByBossId, 1hr
func (s *DropTable) GetDropTableMap(ctx context.Context) (map[int][]*model.BossDropTable, error) {
	var tableMap map[int][]*model.BossDropTable
	err := cache.DropTableByBossID.Get(&tableMap)
	if err == nil {
		return tableMap, nil
	}

	entries, err := s.DropTableRepo.GetDropTable(ctx)
	if err != nil {
		return nil, err
	}
	tableMap = lo.GroupBy(entries, func(entry *model.BossDropTable) int {
		return entry.BossID
	})
	go cache.DropTableByBossID.Set(tableMap, time.Hour)
	return tableMap, nil
}

func (s *DropTable) GetDropTableByBossId(ctx context.Context, bossId int) ([]*model.BossDropTable, error) {
	tableMap, err := s.GetDropTableMap(ctx)
	if err == nil {
		if entries, ok := tableMap[bossId]; ok {
			return entries, nil
		}
	}
	return s.DropTableRepo.GetDropTableByBossId(ctx, bossId)
}
