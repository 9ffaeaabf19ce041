package model

import "time"

type Board struct {
	BoardID     string    `firestore:"id,omitempty" json:"id"`
	Title       string    `firestore:"title,omitempty" json:"title"`
	Description string    `firestore:"description,omitempty" json:"description,omitempty"`
	BoardType   string    `firestore:"type,omitempty" json:"type"` // "propostas" or "implantacao"
	OwnerID     string    `firestore:"owner_id,omitempty" json:"owner_id"`
	CreatedAt   time.Time `firestore:"created_at,omitempty" json:"created_at"`
}
