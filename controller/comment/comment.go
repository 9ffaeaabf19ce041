package comment

import (
	"net/http"
	"sort"
	"time"

	"pmeboard/dto"
	"pmeboard/middleware"
	"pmeboard/model"
	"pmeboard/services"

	"cloud.google.com/go/firestore"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func CommentController(router *gin.Engine, firestoreClient *firestore.Client, cache *services.QueryCache) {
	routes := router.Group("/card/:id/comments", middleware.AccessTokenMiddleware())
	{
		routes.GET("", func(c *gin.Context) {
			GetComments(c, firestoreClient, cache)
		})
		routes.POST("", func(c *gin.Context) {
			CreateComment(c, firestoreClient, cache)
		})
	}
}

// GetComments lists a card's comments oldest first. Comments are
// append-only; there is no edit or delete.
func GetComments(c *gin.Context, firestoreClient *firestore.Client, cache *services.QueryCache) {
	cardID := c.Param("id")

	if cached, ok := cache.Get("kanban_comments", cardID); ok {
		if comments, ok := cached.([]model.Comment); ok {
			c.JSON(http.StatusOK, gin.H{"comments": comments})
			return
		}
	}

	docs, err := firestoreClient.Collection("kanban_comments").
		Where("card_id", "==", cardID).
		Documents(c.Request.Context()).GetAll()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	comments := make([]model.Comment, 0, len(docs))
	for _, doc := range docs {
		var comment model.Comment
		if err := doc.DataTo(&comment); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to parse comment"})
			return
		}
		comments = append(comments, comment)
	}
	sort.SliceStable(comments, func(i, j int) bool {
		return comments[i].CreatedAt.Before(comments[j].CreatedAt)
	})

	cache.Set("kanban_comments", cardID, comments)
	c.JSON(http.StatusOK, gin.H{"comments": comments})
}

func CreateComment(c *gin.Context, firestoreClient *firestore.Client, cache *services.QueryCache) {
	userID := c.MustGet("userId").(string)
	cardID := c.Param("id")

	var request dto.CreateCommentRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

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

	commentID := uuid.New().String()
	comment := model.Comment{
		CommentID: commentID,
		CardID:    cardID,
		UserID:    userID,
		Content:   request.Content,
		CreatedAt: time.Now(),
	}
	if _, err := firestoreClient.Collection("kanban_comments").Doc(commentID).Set(ctx, comment); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create comment"})
		return
	}

	if !card.HasComments {
		if _, err := firestoreClient.Collection("kanban_cards").Doc(cardID).Update(ctx, []firestore.Update{
			{Path: "has_comments", Value: true},
		}); err == nil {
			cache.Invalidate("kanban_cards", card.BoardID)
		}
	}

	cache.Invalidate("kanban_comments", cardID)
	c.JSON(http.StatusCreated, gin.H{
		"message":   "Comment created successfully",
		"commentId": commentID,
	})
}
