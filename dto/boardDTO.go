package dto

type CreateBoardRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	BoardType   string `json:"type" binding:"required,oneof=propostas implantacao"`
}

type UpdateBoardRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	BoardType   *string `json:"type" binding:"omitempty,oneof=propostas implantacao"`
}
