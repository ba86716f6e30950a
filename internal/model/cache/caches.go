package cache

import (
	"sync"

	"github.com/redis/go-redis/v9"
	"gopkg.in/guregu/null.v3"

	"github.com/gmstracker/backend/internal/model"
	modelv1 "github.com/gmstracker/backend/internal/model/v1"
	"github.com/gmstracker/backend/internal/pkg/cache"
)

type Flusher func() error

var (
	Bosses       *cache.Singular[[]*model.Boss]
	BossesMapByID *cache.Singular[map[int]*model.Boss]

	Items        *cache.Singular[[]*model.Item]
	ItemsMapByID *cache.Singular[map[int]*model.Item]

	DropTableByBossID *cache.Singular[map[int][]*model.BossDropTable]

	BossRates       *cache.Set[modelv1.BossRatesResult]
	ItemRates       *cache.Set[modelv1.ItemRatesResult]
	RareLeaderboard *cache.Set[modelv1.LeaderboardResult]
	SiteStats       *cache.Set[modelv1.SiteStats]

	once sync.Once

	SetFlusherMap      map[string]Flusher
	SingularFlusherMap map[string]Flusher
)

func Initialize(client *redis.Client) {
	once.Do(func() {
		initializeCaches(client)
	})
}

// Delete flushes the named cache. A keyed cache with a concrete key is
// flushed wholesale as well; per-key invalidation is not worth the
// bookkeeping at this cardinality.
func Delete(name string, key null.String) error {
	if flush, ok := SingularFlusherMap[name]; ok {
		return flush()
	}
	if flush, ok := SetFlusherMap[name]; ok {
		return flush()
	}
	return nil
}

func initializeCaches(client *redis.Client) {
	SetFlusherMap = make(map[string]Flusher)
	SingularFlusherMap = make(map[string]Flusher)

	// reference data
	Bosses = cache.NewSingular[[]*model.Boss]("bosses")
	BossesMapByID = cache.NewSingular[map[int]*model.Boss]("bossesMapById")
	Items = cache.NewSingular[[]*model.Item]("items")
	ItemsMapByID = cache.NewSingular[map[int]*model.Item]("itemsMapById")
	DropTableByBossID = cache.NewSingular[map[int][]*model.BossDropTable]("dropTableByBossId")

	SingularFlusherMap["bosses"] = Bosses.Delete
	SingularFlusherMap["bossesMapById"] = BossesMapByID.Delete
	SingularFlusherMap["items"] = Items.Delete
	SingularFlusherMap["itemsMapById"] = ItemsMapByID.Delete
	SingularFlusherMap["dropTableByBossId"] = DropTableByBossID.Delete

	// community stats
	BossRates = cache.NewSet[modelv1.BossRatesResult](client, "bossRates#bossId|minSampleSize")
	ItemRates = cache.NewSet[modelv1.ItemRatesResult](client, "itemRates#itemId|minSampleSize")
	RareLeaderboard = cache.NewSet[modelv1.LeaderboardResult](client, "rareLeaderboard#minSampleSize|limit")
	SiteStats = cache.NewSet[modelv1.SiteStats](client, "siteStats")

	SetFlusherMap["bossRates#bossId|minSampleSize"] = BossRates.Clear
	SetFlusherMap["itemRates#itemId|minSampleSize"] = ItemRates.Clear
	SetFlusherMap["rareLeaderboard#minSampleSize|limit"] = RareLeaderboard.Clear
	SetFlusherMap["siteStats"] = SiteStats.Clear
}
