package card

import (
	"net/http"
	"time"

	"pmeboard/dto"
	"pmeboard/middleware"
	"pmeboard/model"
	"pmeboard/services"

	"cloud.google.com/go/firestore"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

func CardController(router *gin.Engine, firestoreClient *firestore.Client, cache *services.QueryCache, resolver *services.UserResolver) {
	authed := []gin.HandlerFunc{middleware.AccessTokenMiddleware(), middleware.SessionUserMiddleware(resolver)}

	router.GET("/board/:id/cards", append(authed, func(c *gin.Context) {
		GetCards(c, firestoreClient, cache)
	})...)
	router.PUT("/stage/:id/reorder", append(authed, func(c *gin.Context) {
		ReorderCards(c, firestoreClient, cache)
	})...)

	routes := router.Group("/card", authed...)
	{
		routes.POST("", func(c *gin.Context) {
			CreateCard(c, firestoreClient, cache)
		})
		routes.PATCH("/:id", func(c *gin.Context) {
			UpdateCard(c, firestoreClient, cache)
		})
		routes.PUT("/:id/move", func(c *gin.Context) {
			MoveCard(c, firestoreClient, cache)
		})
		routes.DELETE("/:id", func(c *gin.Context) {
			DeleteCard(c, firestoreClient, cache)
		})
	}
}

// GetCards returns the board's cards ordered by position, plus the same
// cards grouped by stage for column rendering.
func GetCards(c *gin.Context, firestoreClient *firestore.Client, cache *services.QueryCache) {
	boardID := c.Param("id")
	if boardID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing board id"})
		return
	}

	if cached, ok := cache.Get("kanban_cards", boardID); ok {
		if cards, ok := cached.([]model.Card); ok {
			c.JSON(http.StatusOK, gin.H{
				"cards":   cards,
				"columns": services.GroupCardsByStage(cards),
			})
			return
		}
	}

	cards, err := services.CardsByBoard(c.Request.Context(), firestoreClient, boardID)
	if err != nil {
		zap.L().Error("list cards", zap.String("boardId", boardID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	cache.Set("kanban_cards", boardID, cards)
	c.JSON(http.StatusOK, gin.H{
		"cards":   cards,
		"columns": services.GroupCardsByStage(cards),
	})
}

// CreateCard places the card at the end of its stage and invalidates the
// board's card list; there is no optimistic insert.
func CreateCard(c *gin.Context, firestoreClient *firestore.Client, cache *services.QueryCache) {
	userID := c.MustGet("userId").(string)

	var request dto.CreateCardRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var dueDate *time.Time
	if request.DueDate != "" {
		parsed, err := time.Parse(time.RFC3339, request.DueDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid due_date format"})
			return
		}
		dueDate = &parsed
	}

	ctx := c.Request.Context()
	position, err := services.NextCardPosition(ctx, firestoreClient, request.StageID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	cardID := uuid.New().String()
	newCard := model.Card{
		CardID:      cardID,
		BoardID:     request.BoardID,
		StageID:     request.StageID,
		CompanyName: request.CompanyName,
		Operator:    request.Operator,
		Lives:       request.Lives,
		Value:       request.Value,
		Position:    position,
		DueDate:     dueDate,
		CreatedBy:   userID,
		CreatedAt:   time.Now(),
	}
	if _, err := firestoreClient.Collection("kanban_cards").Doc(cardID).Set(ctx, newCard); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create card"})
		return
	}

	cache.Invalidate("kanban_cards", request.BoardID)
	c.JSON(http.StatusCreated, gin.H{
		"message":  "Card created successfully",
		"cardId":   cardID,
		"position": position,
	})
}

// UpdateCard issues a partial update, then patches the cached list entry in
// place from the re-read document instead of re-fetching the whole list.
func UpdateCard(c *gin.Context, firestoreClient *firestore.Client, cache *services.QueryCache) {
	cardID := c.Param("id")

	var request dto.UpdateCardRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var updates []firestore.Update
	if request.CompanyName != nil {
		updates = append(updates, firestore.Update{Path: "company_name", Value: *request.CompanyName})
	}
	if request.Operator != nil {
		updates = append(updates, firestore.Update{Path: "operator", Value: *request.Operator})
	}
	if request.Lives != nil {
		updates = append(updates, firestore.Update{Path: "lives", Value: *request.Lives})
	}
	if request.Value != nil {
		updates = append(updates, firestore.Update{Path: "value", Value: *request.Value})
	}
	if request.HasWarnings != nil {
		updates = append(updates, firestore.Update{Path: "has_warnings", Value: *request.HasWarnings})
	}
	if request.DueDate != nil {
		if *request.DueDate == "" {
			updates = append(updates, firestore.Update{Path: "due_date", Value: firestore.Delete})
		} else {
			parsed, err := time.Parse(time.RFC3339, *request.DueDate)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid due_date format"})
				return
			}
			updates = append(updates, firestore.Update{Path: "due_date", Value: parsed})
		}
	}
	if len(updates) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Nothing to update"})
		return
	}

	ctx := c.Request.Context()
	if _, err := firestoreClient.Collection("kanban_cards").Doc(cardID).Update(ctx, updates); err != nil {
		if services.IsNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Card not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update card"})
		return
	}

	updated, err := services.CardByID(ctx, firestoreClient, cardID)
	if err != nil {
		// The write landed; fall back to invalidation so the next list is right.
		cache.InvalidateEntity("kanban_cards")
		c.JSON(http.StatusOK, gin.H{"message": "Card updated successfully"})
		return
	}
	updated.DueDateStatus = services.DueDateStatus(updated.DueDate, time.Now())
	services.PatchCachedCard(cache, updated.BoardID, *updated)

	c.JSON(http.StatusOK, gin.H{
		"message": "Card updated successfully",
		"card":    updated,
	})
}

// MoveCard updates stage and position in one remote call and invalidates the
// board's card list. Nothing is rolled back if the call fails; the client
// just gets the error.
func MoveCard(c *gin.Context, firestoreClient *firestore.Client, cache *services.QueryCache) {
	cardID := c.Param("id")

	var request dto.MoveCardRequest
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

	if err := services.MoveCard(ctx, firestoreClient, cardID, request.StageID, request.Position); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to move card"})
		return
	}

	cache.Invalidate("kanban_cards", card.BoardID)
	c.JSON(http.StatusOK, gin.H{"message": "Card moved successfully"})
}

// ReorderCards rewrites positions for a stage's cards to match the given
// order. Sequential, not atomic: a failure leaves earlier writes applied and
// is reported once for the batch.
func ReorderCards(c *gin.Context, firestoreClient *firestore.Client, cache *services.QueryCache) {
	stageID := c.Param("id")

	var request dto.ReorderCardsRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	stage, err := services.StageByID(ctx, firestoreClient, stageID)
	if err != nil {
		if services.IsNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Stage not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	reorderErr := services.ReorderCards(ctx, firestoreClient, request.CardIDs)
	cache.Invalidate("kanban_cards", stage.BoardID)
	if reorderErr != nil {
		zap.L().Error("reorder cards", zap.String("stageId", stageID), zap.Error(reorderErr))
		c.JSON(http.StatusInternalServerError, gin.H{"error": reorderErr.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Cards reordered successfully"})
}

func DeleteCard(c *gin.Context, firestoreClient *firestore.Client, cache *services.QueryCache) {
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

	if _, err := firestoreClient.Collection("kanban_cards").Doc(cardID).Delete(ctx); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete card"})
		return
	}

	cache.Invalidate("kanban_cards", card.BoardID)
	c.JSON(http.StatusOK, gin.H{"message": "Card deleted successfully"})
}
