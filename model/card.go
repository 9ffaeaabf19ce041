package model

import "time"

// Due date labels shown on a card. Derived at read time, never stored.
const (
	DueStatusLate   = "Atrasado"
	DueStatusSoon   = "Entrega em breve"
	DueStatusOnTime = "No prazo"
	DueStatusNoDate = "Sem data"
)

type Card struct {
	CardID       string     `firestore:"id,omitempty" json:"id"`
	BoardID      string     `firestore:"board_id,omitempty" json:"board_id"`
	StageID      string     `firestore:"stage_id,omitempty" json:"stage_id"`
	CompanyName  string     `firestore:"company_name,omitempty" json:"company_name"`
	Operator     string     `firestore:"operator,omitempty" json:"operator,omitempty"`
	Lives        int        `firestore:"lives" json:"lives"`
	Value        float64    `firestore:"value" json:"value"`
	Position     int        `firestore:"position" json:"position"`
	DueDate      *time.Time `firestore:"due_date,omitempty" json:"due_date,omitempty"`
	HasDocuments bool       `firestore:"has_documents" json:"has_documents"`
	HasComments  bool       `firestore:"has_comments" json:"has_comments"`
	HasWarnings  bool       `firestore:"has_warnings" json:"has_warnings"`
	CreatedBy    string     `firestore:"created_by,omitempty" json:"created_by"`
	CreatedAt    time.Time  `firestore:"created_at,omitempty" json:"created_at"`

	// Read-time enrichment, not persisted.
	DueDateStatus string             `firestore:"-" json:"due_date_status"`
	StageTitle    string             `firestore:"-" json:"stage_title,omitempty"`
	Submission    *SubmissionSummary `firestore:"-" json:"submission,omitempty"`
}

// SubmissionSummary is the slice of a pme_submissions row a card list carries.
type SubmissionSummary struct {
	SubmissionID  string `json:"id"`
	Status        string `json:"status"`
	PartnersCount int    `json:"partners_count"`
}
