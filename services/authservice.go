package services

import (
	"context"

	"pmeboard/model"

	"cloud.google.com/go/firestore"
)

// AuthUserByEmail looks up the credential row for a signin attempt.
func AuthUserByEmail(ctx context.Context, firestoreClient *firestore.Client, email string) (*model.AuthUser, error) {
	docs, err := firestoreClient.Collection("auth_users").
		Where("email", "==", email).
		Limit(1).
		Documents(ctx).GetAll()
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, ErrNotFound
	}
	var user model.AuthUser
	if err := docs[0].DataTo(&user); err != nil {
		return nil, err
	}
	return &user, nil
}

// EmailRegistered reports whether a credential row already uses the address.
func EmailRegistered(ctx context.Context, firestoreClient *firestore.Client, email string) (bool, error) {
	docs, err := firestoreClient.Collection("auth_users").
		Where("email", "==", email).
		Limit(1).
		Documents(ctx).GetAll()
	if err != nil {
		return false, err
	}
	return len(docs) > 0, nil
}
