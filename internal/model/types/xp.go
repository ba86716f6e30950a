package types

// xp progression request structs

type CreateXPEntryRequest struct {
	EntryDate  string `json:"entryDate" validate:"required,datetime=2006-01-02"`
	Level      int    `json:"level" validate:"required"`
	OldPercent string `json:"oldPercent" validate:"required"`
	NewPercent string `json:"newPercent" validate:"required"`

	EpicDungeon           bool   `json:"epicDungeon"`
	EpicDungeonMultiplier int    `json:"epicDungeonMultiplier" validate:"omitempty,gte=1,lte=10"`
	Notes                 string `json:"notes" validate:"omitempty,lte=512"`
}

type UpdateXPEntryRequest struct {
	Level      *int    `json:"level" validate:"omitempty"`
	OldPercent *string `json:"oldPercent"`
	NewPercent *string `json:"newPercent"`

	EpicDungeon           *bool   `json:"epicDungeon"`
	EpicDungeonMultiplier *int    `json:"epicDungeonMultiplier" validate:"omitempty,gte=1,lte=10"`
	Notes                 *string `json:"notes" validate:"omitempty,lte=512"`
}

type ListXPEntriesQuery struct {
	From     string `query:"from" validate:"omitempty,datetime=2006-01-02"`
	To       string `query:"to" validate:"omitempty,datetime=2006-01-02"`
	Page     int    `query:"page" validate:"omitempty,gte=1"`
	PageSize int    `query:"pageSize" validate:"omitempty,gte=1,lte=100"`
}

type GetXPStatsQuery struct {
	Days int `query:"days" validate:"omitempty,gte=1,lte=365"`
}

type UpsertXPSnapshotRequest struct {
	CharacterID  string `json:"characterId" validate:"required,uuid4"`
	SnapshotDate string `json:"snapshotDate" validate:"required,datetime=2006-01-02"`
	TotalXP      string `json:"totalXp" validate:"required"`
	Level        *int   `json:"level" validate:"omitempty,gte=1"`
}
