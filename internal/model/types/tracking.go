package types

// tracking surface request structs

type RunDrop struct {
	ItemID   int `json:"itemId" validate:"required"`
	Quantity int `json:"quantity" validate:"omitempty,gte=1,lte=1000"`
}

type RecordRunRequest struct {
	CharacterID string `json:"characterId" validate:"required,uuid4"`
	BossID      int    `json:"bossId" validate:"required"`
	ClearedAt   string `json:"clearedAt" validate:"omitempty"`
	PartySize   int    `json:"partySize" validate:"omitempty,gte=1,lte=6"`
	IsClear     *bool  `json:"isClear" validate:"required"`
	Notes       string `json:"notes" validate:"omitempty,lte=500"`

	Drops []RunDrop `json:"drops" validate:"dive"`
}

type AddDropRequest struct {
	ItemID   int `json:"itemId" validate:"required"`
	Quantity int `json:"quantity" validate:"omitempty,gte=1,lte=1000"`
}

type ListDiaryQuery struct {
	CharacterID string `query:"characterId" validate:"omitempty,uuid4"`
	BossID      int    `query:"bossId"`
	ItemID      int    `query:"itemId"`
	Search      string `query:"search" validate:"omitempty,lte=64"`
	From        string `query:"from" validate:"omitempty,datetime=2006-01-02"`
	To          string `query:"to" validate:"omitempty,datetime=2006-01-02"`
	Page        int    `query:"page" validate:"omitempty,gte=1"`
	PageSize    int    `query:"pageSize" validate:"omitempty,gte=1,lte=100"`
}

type ListRunsQuery struct {
	CharacterID string `query:"characterId" validate:"omitempty,uuid4"`
	BossID      int    `query:"bossId"`
	WeekStart   string `query:"weekStart" validate:"omitempty,datetime=2006-01-02"`
	From        string `query:"from" validate:"omitempty,datetime=2006-01-02"`
	To          string `query:"to" validate:"omitempty,datetime=2006-01-02"`
	Page        int    `query:"page" validate:"omitempty,gte=1"`
	PageSize    int    `query:"pageSize" validate:"omitempty,gte=1,lte=100"`
}
