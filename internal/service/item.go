package service

import (
	"context"
	"time"

	"github.com/ahmetb/go-linq/v3"

	"github.com/gmstracker/backend/internal/model"
	"github.com/gmstracker/backend/internal/model/cache"
	"github.com/gmstracker/backend/internal/repo"
)

type Item struct {
	ItemRepo *repo.Item
}

func NewItem(itemRepo *repo.Item) *Item {
	return &Item{
		ItemRepo: itemRepo,
	}
}

// Cache: (singular) items, 1hr
func (s *Item) GetItems(ctx context.Context) ([]*model.Item, error) {
	var items []*model.Item
	err := cache.Items.Get(&items)
	if err == nil {
		return items, nil
	}

	items, err = s.ItemRepo.GetItems(ctx)
	if err != nil {
		return nil, err
	}
	go cache.Items.Set(items, time.Hour)
	return items, nil
}

// Cache: (singular) itemsMapById, 1hr
func (s *Item) GetItemsMap(ctx context.Context) (map[int]*model.Item, error) {
	var itemsMap map[int]*model.Item
	err := cache.ItemsMapByID.Get(&itemsMap)
	if err == nil {
		return itemsMap, nil
	}

	items, err := s.GetItems(ctx)
	if err != nil {
		return nil, err
	}
	itemsMap = make(map[int]*model.Item)
	linq.From(items).
		ToMapByT(
			&itemsMap,
			func(item *model.Item) int { return item.ItemID },
			func(item *model.Item) *model.Item { return item })
	go cache.ItemsMapByID.Set(itemsMap, time.Hour)
	return itemsMap, nil
}

func (s *Item) GetItemById(ctx context.Context, itemId int) (*model.Item, error) {
	itemsMap, err := s.GetItemsMap(ctx)
	if err == nil {
		if item, ok := itemsMap[itemId]; ok {
			return item, nil
		}
	}
	return s.ItemRepo.GetItemById(ctx, itemId)
}

func (s *Item) SearchItemByName(ctx context.Context, name string) ([]*model.Item, error) {
	return s.ItemRepo.SearchItemByName(ctx, name)
}
