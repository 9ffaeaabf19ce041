package model

import "time"

// EmailRecord is a kanban_emails row, written as an audit trail for
// account-related mail (welcome on signup, proposal notifications).
type EmailRecord struct {
	EmailID   string    `firestore:"id,omitempty" json:"id"`
	UserID    string    `firestore:"user_id,omitempty" json:"user_id"`
	Address   string    `firestore:"address,omitempty" json:"address"`
	Kind      string    `firestore:"kind,omitempty" json:"kind"` // "welcome", "proposal"
	Sent      bool      `firestore:"sent" json:"sent"`
	CreatedAt time.Time `firestore:"created_at,omitempty" json:"created_at"`
}
