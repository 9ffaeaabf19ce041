package dto

type CreateCardRequest struct {
	BoardID     string  `json:"board_id" binding:"required"`
	StageID     string  `json:"stage_id" binding:"required"`
	CompanyName string  `json:"company_name" binding:"required"`
	Operator    string  `json:"operator"`
	Lives       int     `json:"lives" binding:"omitempty,min=0"`
	Value       float64 `json:"value" binding:"omitempty,min=0"`
	DueDate     string  `json:"due_date"` // RFC3339, optional
}

type UpdateCardRequest struct {
	CompanyName *string  `json:"company_name"`
	Operator    *string  `json:"operator"`
	Lives       *int     `json:"lives" binding:"omitempty,min=0"`
	Value       *float64 `json:"value" binding:"omitempty,min=0"`
	DueDate     *string  `json:"due_date"` // RFC3339, empty string clears
	HasWarnings *bool    `json:"has_warnings"`
}

type MoveCardRequest struct {
	StageID  string `json:"stage_id" binding:"required"`
	Position int    `json:"position" binding:"min=0"`
}

type ReorderCardsRequest struct {
	CardIDs []string `json:"card_ids" binding:"required,min=1"`
}
