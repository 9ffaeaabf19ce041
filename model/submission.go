package model

import "time"

// Submission is a pme_submissions row: the proposal data behind a card.
type Submission struct {
	SubmissionID  string    `firestore:"id,omitempty" json:"id"`
	CardID        string    `firestore:"card_id,omitempty" json:"card_id"`
	BoardID       string    `firestore:"board_id,omitempty" json:"board_id"`
	BrokerID      string    `firestore:"broker_id,omitempty" json:"broker_id"`
	OperatorID    string    `firestore:"operator_id,omitempty" json:"operator_id"`
	CompanyName   string    `firestore:"company_name,omitempty" json:"company_name"`
	CNPJ          string    `firestore:"cnpj,omitempty" json:"cnpj,omitempty"`
	Lives         int       `firestore:"lives" json:"lives"`
	Value         float64   `firestore:"value" json:"value"`
	Status        string    `firestore:"status,omitempty" json:"status"`
	PartnersCount int       `firestore:"partners_count" json:"partners_count"`
	CreatedAt     time.Time `firestore:"created_at,omitempty" json:"created_at"`
	UpdatedAt     time.Time `firestore:"updated_at,omitempty" json:"updated_at"`
}
