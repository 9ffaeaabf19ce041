package attachment

import (
	"net/http"

	"pmeboard/middleware"
	"pmeboard/services"

	"cloud.google.com/go/firestore"
	"cloud.google.com/go/storage"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func AttachmentController(router *gin.Engine, firestoreClient *firestore.Client, storageClient *storage.Client, cache *services.QueryCache) {
	routes := router.Group("/card/:id/attachments", middleware.AccessTokenMiddleware())
	{
		routes.GET("/:object/url", func(c *gin.Context) {
			GetAttachmentURL(c, storageClient)
		})
		routes.POST("", func(c *gin.Context) {
			RegisterAttachment(c, firestoreClient, cache)
		})
	}
}

// GetAttachmentURL hands out a short-lived signed link for previewing or
// downloading a stored document. The object name is namespaced by card id in
// the bucket.
func GetAttachmentURL(c *gin.Context, storageClient *storage.Client) {
	cardID := c.Param("id")
	object := c.Param("object")

	url, err := services.SignedAttachmentURL(storageClient, cardID+"/"+object)
	if err != nil {
		zap.L().Error("sign attachment url", zap.String("cardId", cardID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to sign URL"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": url})
}

// RegisterAttachment records that a document was uploaded for the card so
// the board can show its paperclip flag.
func RegisterAttachment(c *gin.Context, firestoreClient *firestore.Client, cache *services.QueryCache) {
	cardID := c.Param("id")

	ctx := c.Request.Context()
	card, err := services.CardByID(ctx, firestoreClient, cardID)
	if err != nil {
		if services.IsNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Card not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if !card.HasDocuments {
		if _, err := firestoreClient.Collection("kanban_cards").Doc(cardID).Update(ctx, []firestore.Update{
			{Path: "has_documents", Value: true},
		}); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to flag card"})
			return
		}
		cache.Invalidate("kanban_cards", card.BoardID)
	}

	c.JSON(http.StatusOK, gin.H{"message": "Attachment registered"})
}
