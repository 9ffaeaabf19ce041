package dto

// CreateMinimalProposalRequest mirrors the create_minimal_proposal RPC:
// just enough data to open a proposal card; the rest is filled in later.
type CreateMinimalProposalRequest struct {
	BoardID     string  `json:"board_id" binding:"required"`
	BrokerID    string  `json:"broker_id" binding:"required"`
	OperatorID  string  `json:"operator_id" binding:"required"`
	CompanyName string  `json:"company_name" binding:"required"`
	CNPJ        string  `json:"cnpj"`
	Lives       int     `json:"lives" binding:"omitempty,min=0"`
	Value       float64 `json:"value" binding:"omitempty,min=0"`
}
