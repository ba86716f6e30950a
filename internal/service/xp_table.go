package service

import (
	"github.com/rs/zerolog/log"

	"github.com/gmstracker/backend/internal/appconfig"
	"github.com/gmstracker/backend/internal/pkg/pgerr"
	"github.com/gmstracker/backend/internal/pkg/xptable"
)

// XPTable owns the process-wide requirement table. The table is loaded
// once at startup and read-only afterwards. A missing or unparsable
// table file degrades the XP surfaces instead of failing startup.
type XPTable struct {
	table *xptable.Table
}

func NewXPTable(conf *appconfig.Config) *XPTable {
	table, err := xptable.Load(conf.XPTablePath)
	if err != nil {
		log.Warn().Err(err).Str("path", conf.XPTablePath).Msg("xp table unavailable; xp calculations degraded")
		return &XPTable{}
	}
	log.Info().Int("levels", len(table.Levels())).Str("path", conf.XPTablePath).Msg("loaded xp requirement table")
	return &XPTable{table: table}
}

func (s *XPTable) Available() bool {
	return s.table != nil
}

// Table returns the underlying table, or an error when it never loaded.
func (s *XPTable) Table() (*xptable.Table, error) {
	if s.table == nil {
		return nil, pgerr.ErrUnsupported.Msg("xp requirement table is not loaded")
	}
	return s.table, nil
}
