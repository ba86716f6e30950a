package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
	"gopkg.in/guregu/null.v3"

	"github.com/gmstracker/backend/internal/model"
	"github.com/gmstracker/backend/internal/repo/selector"
)

type BossRun struct {
	DB  *bun.DB
	sel selector.S[model.BossRun]
}

func NewBossRun(db *bun.DB) *BossRun {
	return &BossRun{
		DB:  db,
		sel: selector.New[model.BossRun](db),
	}
}

func (r *BossRun) GetRunById(ctx context.Context, runId uuid.UUID) (*model.BossRun, error) {
	return r.sel.SelectOne(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Relation("Character").
			Relation("Boss").
			Relation("Drops").
			Relation("Drops.Item").
			Where("br.run_id = ?", runId)
	})
}

// HasWeeklyClear reports whether any of the given characters already has
// a clear run for the boss within the week starting at weekStart. Runs
// inside the enclosing transaction when tx is non-nil.
func (r *BossRun) HasWeeklyClear(ctx context.Context, tx bun.IDB, characterIds []uuid.UUID, bossId int, weekStart time.Time) (bool, error) {
	if tx == nil {
		tx = r.DB
	}
	if len(characterIds) == 0 {
		return false, nil
	}
	return tx.NewSelect().
		Model((*model.BossRun)(nil)).
		Where("character_id IN (?)", bun.In(characterIds)).
		Where("boss_id = ?", bossId).
		Where("week_start = ?", weekStart).
		Where("is_clear = TRUE").
		Exists(ctx)
}

func (r *BossRun) InsertRun(ctx context.Context, tx bun.Tx, run *model.BossRun) error {
	_, err := tx.NewInsert().
		Model(run).
		Exec(ctx)
	return err
}

func (r *BossRun) InsertDrops(ctx context.Context, tx bun.IDB, drops []*model.BossRunDrop) error {
	if len(drops) == 0 {
		return nil
	}
	if tx == nil {
		tx = r.DB
	}
	_, err := tx.NewInsert().
		Model(&drops).
		Exec(ctx)
	return err
}

type RunFilter struct {
	CharacterIds []uuid.UUID
	BossID       int
	WeekStart    time.Time
	From         time.Time
	To           time.Time
}

func (f RunFilter) apply(q *bun.SelectQuery) *bun.SelectQuery {
	q = q.Where("br.character_id IN (?)", bun.In(f.CharacterIds))
	if f.BossID != 0 {
		q = q.Where("br.boss_id = ?", f.BossID)
	}
	if !f.WeekStart.IsZero() {
		q = q.Where("br.week_start = ?", f.WeekStart)
	}
	if !f.From.IsZero() {
		q = q.Where("br.cleared_at >= ?", f.From)
	}
	if !f.To.IsZero() {
		q = q.Where("br.cleared_at < ?", f.To)
	}
	return q
}

func (r *BossRun) ListRuns(ctx context.Context, filter RunFilter, limit, offset int) ([]*model.BossRun, error) {
	return r.sel.SelectMany(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return filter.apply(q).
			Relation("Character").
			Relation("Boss").
			Relation("Drops").
			Relation("Drops.Item").
			Order("br.cleared_at DESC").
			Limit(limit).
			Offset(offset)
	})
}

func (r *BossRun) CountRuns(ctx context.Context, filter RunFilter) (int, error) {
	return filter.apply(r.DB.NewSelect().Model((*model.BossRun)(nil))).Count(ctx)
}

func (r *BossRun) DeleteRun(ctx context.Context, runId uuid.UUID) error {
	return r.DB.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewDelete().
			Model((*model.BossRunDrop)(nil)).
			Where("run_id = ?", runId).
			Exec(ctx); err != nil {
			return err
		}
		_, err := tx.NewDelete().
			Model((*model.BossRun)(nil)).
			Where("run_id = ?", runId).
			Exec(ctx)
		return err
	})
}

// GetWeeklyClears returns the clear runs of the given characters inside
// one reset week, oldest first so the first clear of each boss wins.
func (r *BossRun) GetWeeklyClears(ctx context.Context, characterIds []uuid.UUID, weekStart time.Time) ([]*model.BossRun, error) {
	if len(characterIds) == 0 {
		return []*model.BossRun{}, nil
	}
	return r.sel.SelectMany(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Relation("Character").
			Where("br.character_id IN (?)", bun.In(characterIds)).
			Where("br.week_start = ?", weekStart).
			Where("br.is_clear = TRUE").
			Order("br.cleared_at ASC")
	})
}

// CountClearRunsForBoss is the community sample size of one boss: every
// successful clear ever recorded against it, lifetime.
func (r *BossRun) CountClearRunsForBoss(ctx context.Context, bossId int) (int, error) {
	return r.DB.NewSelect().
		Model((*model.BossRun)(nil)).
		Where("boss_id = ?", bossId).
		Where("is_clear = TRUE").
		Count(ctx)
}

// CountDropsOfItem counts the recorded drop rows of the item across every
// run of the boss. Each drop row counts, including repeats within one run
// and drops logged on non-clear runs.
func (r *BossRun) CountDropsOfItem(ctx context.Context, bossId, itemId int) (int, error) {
	return r.DB.NewSelect().
		Model((*model.BossRunDrop)(nil)).
		Join("JOIN boss_runs AS br ON br.run_id = brd.run_id").
		Where("br.boss_id = ?", bossId).
		Where("brd.item_id = ?", itemId).
		Count(ctx)
}

type BossRunTally struct {
	BossID int `bun:"boss_id"`
	Runs   int `bun:"runs"`
	Clears int `bun:"clears"`
}

func (r *BossRun) TallyRunsByBoss(ctx context.Context, characterIds []uuid.UUID) ([]*BossRunTally, error) {
	if len(characterIds) == 0 {
		return []*BossRunTally{}, nil
	}
	var results []*BossRunTally
	err := r.DB.NewSelect().
		Model((*model.BossRun)(nil)).
		Column("boss_id").
		ColumnExpr("COUNT(*) AS runs").
		ColumnExpr("COUNT(*) FILTER (WHERE is_clear) AS clears").
		Where("character_id IN (?)", bun.In(characterIds)).
		Group("boss_id").
		Order("boss_id ASC").
		Scan(ctx, &results)
	if err != nil {
		return nil, err
	}
	return results, nil
}

type WeekTally struct {
	WeekStart time.Time `bun:"week_start"`
	Runs      int       `bun:"runs"`
	Clears    int       `bun:"clears"`
	Drops     int       `bun:"drops"`
}

func (r *BossRun) TallyRunsByWeek(ctx context.Context, characterIds []uuid.UUID) ([]*WeekTally, error) {
	if len(characterIds) == 0 {
		return []*WeekTally{}, nil
	}
	var results []*WeekTally
	err := r.DB.NewSelect().
		Model((*model.BossRun)(nil)).
		ColumnExpr("br.week_start AS week_start").
		ColumnExpr("COUNT(DISTINCT br.run_id) AS runs").
		ColumnExpr("COUNT(DISTINCT br.run_id) FILTER (WHERE br.is_clear) AS clears").
		ColumnExpr("COALESCE(SUM(brd.quantity), 0) AS drops").
		Join("LEFT JOIN boss_run_drops AS brd ON brd.run_id = br.run_id").
		Where("br.character_id IN (?)", bun.In(characterIds)).
		GroupExpr("br.week_start").
		OrderExpr("br.week_start DESC").
		Scan(ctx, &results)
	if err != nil {
		return nil, err
	}
	return results, nil
}

type RunTotals struct {
	TotalRuns   int        `bun:"total_runs"`
	TotalClears int        `bun:"total_clears"`
	FirstRunAt  *time.Time `bun:"first_run_at"`
	LastRunAt   *time.Time `bun:"last_run_at"`
}

func (r *BossRun) GetRunTotals(ctx context.Context, characterIds []uuid.UUID) (*RunTotals, error) {
	totals := &RunTotals{}
	if len(characterIds) == 0 {
		return totals, nil
	}
	err := r.DB.NewSelect().
		Model((*model.BossRun)(nil)).
		ColumnExpr("COUNT(*) AS total_runs").
		ColumnExpr("COUNT(*) FILTER (WHERE is_clear) AS total_clears").
		ColumnExpr("MIN(cleared_at) AS first_run_at").
		ColumnExpr("MAX(cleared_at) AS last_run_at").
		Where("character_id IN (?)", bun.In(characterIds)).
		Scan(ctx, totals)
	if err != nil {
		return nil, err
	}
	return totals, nil
}

type ItemTally struct {
	ItemID        int       `bun:"item_id"`
	TotalQuantity int       `bun:"total_quantity"`
	TimesDropped  int       `bun:"times_dropped"`
	FirstSeenAt   time.Time `bun:"first_seen_at"`
	LastSeenAt    time.Time `bun:"last_seen_at"`
}

func (r *BossRun) TallyDropsByItem(ctx context.Context, characterIds []uuid.UUID) ([]*ItemTally, error) {
	if len(characterIds) == 0 {
		return []*ItemTally{}, nil
	}
	var results []*ItemTally
	err := r.DB.NewSelect().
		Model((*model.BossRunDrop)(nil)).
		ColumnExpr("brd.item_id AS item_id").
		ColumnExpr("SUM(brd.quantity) AS total_quantity").
		ColumnExpr("COUNT(*) AS times_dropped").
		ColumnExpr("MIN(br.cleared_at) AS first_seen_at").
		ColumnExpr("MAX(br.cleared_at) AS last_seen_at").
		Join("JOIN boss_runs AS br ON br.run_id = brd.run_id").
		Where("br.character_id IN (?)", bun.In(characterIds)).
		GroupExpr("brd.item_id").
		OrderExpr("total_quantity DESC").
		Scan(ctx, &results)
	if err != nil {
		return nil, err
	}
	return results, nil
}

type DropFilter struct {
	CharacterIds []uuid.UUID
	BossID       int
	ItemID       int
	Search       string
	From         time.Time
	To           time.Time
}

func (f DropFilter) apply(q *bun.SelectQuery) *bun.SelectQuery {
	q = q.Where("br.character_id IN (?)", bun.In(f.CharacterIds))
	if f.BossID != 0 {
		q = q.Where("br.boss_id = ?", f.BossID)
	}
	if f.ItemID != 0 {
		q = q.Where("brd.item_id = ?", f.ItemID)
	}
	if f.Search != "" {
		q = q.Where("i.name ILIKE ?", "%"+f.Search+"%")
	}
	if !f.From.IsZero() {
		q = q.Where("br.cleared_at >= ?", f.From)
	}
	if !f.To.IsZero() {
		q = q.Where("br.cleared_at < ?", f.To)
	}
	return q
}

// DropLedgerRow is one drop event denormalized with its run, character,
// boss and item for ledger listings.
type DropLedgerRow struct {
	DropID        int         `bun:"drop_id" json:"id"`
	RunID         uuid.UUID   `bun:"run_id,type:uuid" json:"runId"`
	ItemID        int         `bun:"item_id" json:"itemId"`
	ItemName      string      `bun:"item_name" json:"itemName"`
	Quantity      int         `bun:"quantity" json:"quantity"`
	CharacterID   uuid.UUID   `bun:"character_id,type:uuid" json:"characterId"`
	CharacterName string      `bun:"character_name" json:"characterName"`
	BossID        int         `bun:"boss_id" json:"bossId"`
	BossName      string      `bun:"boss_name" json:"bossName"`
	Difficulty    null.String `bun:"difficulty" json:"difficulty"`
	ClearedAt     time.Time   `bun:"cleared_at" json:"clearedAt"`
}

func (r *BossRun) dropLedgerQuery(filter DropFilter) *bun.SelectQuery {
	q := r.DB.NewSelect().
		Model((*model.BossRunDrop)(nil)).
		Join("JOIN boss_runs AS br ON br.run_id = brd.run_id").
		Join("JOIN characters AS c ON c.character_id = br.character_id").
		Join("JOIN bosses AS b ON b.boss_id = br.boss_id").
		Join("JOIN items AS i ON i.item_id = brd.item_id")
	return filter.apply(q)
}

func (r *BossRun) ListDrops(ctx context.Context, filter DropFilter, limit, offset int) ([]*DropLedgerRow, error) {
	if len(filter.CharacterIds) == 0 {
		return []*DropLedgerRow{}, nil
	}
	var results []*DropLedgerRow
	err := r.dropLedgerQuery(filter).
		ColumnExpr("brd.drop_id, brd.run_id, brd.item_id, brd.quantity").
		ColumnExpr("i.name AS item_name").
		ColumnExpr("br.character_id, c.name AS character_name").
		ColumnExpr("br.boss_id, b.name AS boss_name, b.difficulty").
		ColumnExpr("br.cleared_at").
		OrderExpr("br.cleared_at DESC, brd.drop_id DESC").
		Limit(limit).
		Offset(offset).
		Scan(ctx, &results)
	if err != nil {
		return nil, err
	}
	return results, nil
}

func (r *BossRun) CountDrops(ctx context.Context, filter DropFilter) (int, error) {
	if len(filter.CharacterIds) == 0 {
		return 0, nil
	}
	return r.dropLedgerQuery(filter).Count(ctx)
}

func (r *BossRun) CountAllRuns(ctx context.Context) (int, error) {
	return r.DB.NewSelect().
		Model((*model.BossRun)(nil)).
		Count(ctx)
}

func (r *BossRun) CountRunsSince(ctx context.Context, since time.Time) (int, error) {
	return r.DB.NewSelect().
		Model((*model.BossRun)(nil)).
		Where("created_at >= ?", since).
		Count(ctx)
}

func (r *BossRun) CountAllDrops(ctx context.Context) (int, error) {
	return r.DB.NewSelect().
		Model((*model.BossRunDrop)(nil)).
		Count(ctx)
}
