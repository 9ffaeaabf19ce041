package model

import "time"

type Comment struct {
	CommentID string    `firestore:"id,omitempty" json:"id"`
	CardID    string    `firestore:"card_id,omitempty" json:"card_id"`
	UserID    string    `firestore:"user_id,omitempty" json:"user_id"`
	Content   string    `firestore:"content,omitempty" json:"content"`
	CreatedAt time.Time `firestore:"created_at,omitempty" json:"created_at"`
}
