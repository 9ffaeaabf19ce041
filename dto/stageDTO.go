package dto

type CreateStageRequest struct {
	BoardID string `json:"board_id" binding:"required"`
	Title   string `json:"title" binding:"required"`
}

type UpdateStageRequest struct {
	Title    *string `json:"title"`
	Position *int    `json:"position"`
}

type ReorderStagesRequest struct {
	StageIDs []string `json:"stage_ids" binding:"required,min=1"`
}

type CreateStageFieldRequest struct {
	StageID      string   `json:"stage_id" binding:"required"`
	FieldName    string   `json:"field_name" binding:"required"`
	FieldType    string   `json:"field_type" binding:"required,oneof=text textarea number date select checkbox"`
	IsRequired   bool     `json:"is_required"`
	Options      []string `json:"options"`
	DefaultValue string   `json:"default_value"`
}

type UpdateStageFieldRequest struct {
	FieldName    *string   `json:"field_name"`
	FieldType    *string   `json:"field_type" binding:"omitempty,oneof=text textarea number date select checkbox"`
	IsRequired   *bool     `json:"is_required"`
	Options      *[]string `json:"options"`
	DefaultValue *string   `json:"default_value"`
	Position     *int      `json:"position"`
}
