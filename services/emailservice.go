package services

import (
	"context"
	"time"

	"pmeboard/model"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
)

// RecordEmail appends a kanban_emails audit row. Actual delivery is handled
// out of band; this only records that mail was queued for the address.
func RecordEmail(ctx context.Context, firestoreClient *firestore.Client, userID, address, kind string) error {
	record := model.EmailRecord{
		EmailID:   uuid.New().String(),
		UserID:    userID,
		Address:   address,
		Kind:      kind,
		Sent:      false,
		CreatedAt: time.Now(),
	}
	_, err := firestoreClient.Collection("kanban_emails").Doc(record.EmailID).Set(ctx, record)
	return err
}
