package services

import (
	"os"
	"time"

	"cloud.google.com/go/storage"
)

// Attachment links are short-lived; the client requests a fresh one per
// preview/download.
const signedURLExpiry = 300 * time.Second

func AttachmentBucket() string {
	if bucket := os.Getenv("ATTACHMENTS_BUCKET"); bucket != "" {
		return bucket
	}
	return "pme-attachments"
}

// SignedAttachmentURL issues a time-limited GET link for a stored object.
func SignedAttachmentURL(client *storage.Client, object string) (string, error) {
	return client.Bucket(AttachmentBucket()).SignedURL(object, &storage.SignedURLOptions{
		Scheme:  storage.SigningSchemeV4,
		Method:  "GET",
		Expires: time.Now().Add(signedURLExpiry),
	})
}
