package types

// character management request structs

type CreateCharacterRequest struct {
	Name      string `json:"name" validate:"required,lte=64"`
	World     string `json:"world" validate:"required,lte=64"`
	Level     *int   `json:"level" validate:"omitempty,gte=1,lte=300"`
	Job       string `json:"job" validate:"omitempty,lte=64"`
	IconURL   string `json:"iconUrl" validate:"omitempty,url,lte=512"`
	IsMain    bool   `json:"isMain"`
	SortOrder int    `json:"sortOrder" validate:"omitempty,gte=0"`
}

type UpdateCharacterRequest struct {
	Name      *string `json:"name" validate:"omitempty,lte=64"`
	World     *string `json:"world" validate:"omitempty,lte=64"`
	Level     *int    `json:"level" validate:"omitempty,gte=1,lte=300"`
	Job       *string `json:"job" validate:"omitempty,lte=64"`
	IconURL   *string `json:"iconUrl" validate:"omitempty,url,lte=512"`
	IsMain    *bool   `json:"isMain"`
	SortOrder *int    `json:"sortOrder" validate:"omitempty,gte=0"`
}
