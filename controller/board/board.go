package board

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

func BoardController(router *gin.Engine, firestoreClient *firestore.Client, cache *services.QueryCache, resolver *services.UserResolver) {
	routes := router.Group("/board", middleware.AccessTokenMiddleware(), middleware.SessionUserMiddleware(resolver))
	{
		routes.GET("", func(c *gin.Context) {
			GetBoards(c, firestoreClient, cache)
		})
		routes.POST("", func(c *gin.Context) {
			CreateBoard(c, firestoreClient, cache)
		})
		routes.PATCH("/:id", func(c *gin.Context) {
			UpdateBoard(c, firestoreClient, cache)
		})
		routes.DELETE("/:id", func(c *gin.Context) {
			DeleteBoard(c, firestoreClient, cache)
		})
	}
}

func sessionUser(c *gin.Context) *model.SessionUser {
	return c.MustGet("sessionUser").(*model.SessionUser)
}

// boardListKey scopes the cached list per viewer: admins share one list of
// everything, brokers each see their own boards.
func boardListKey(user *model.SessionUser) string {
	if user.IsAdmin() {
		return "all"
	}
	return user.UserID
}

func GetBoards(c *gin.Context, firestoreClient *firestore.Client, cache *services.QueryCache) {
	user := sessionUser(c)
	key := boardListKey(user)

	if cached, ok := cache.Get("kanban_boards", key); ok {
		if boards, ok := cached.([]model.Board); ok {
			c.JSON(http.StatusOK, gin.H{"boards": boards})
			return
		}
	}

	boards, err := services.BoardsForUser(c.Request.Context(), firestoreClient, user)
	if err != nil {
		zap.L().Error("list boards", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	cache.Set("kanban_boards", key, boards)
	c.JSON(http.StatusOK, gin.H{"boards": boards})
}

func CreateBoard(c *gin.Context, firestoreClient *firestore.Client, cache *services.QueryCache) {
	user := sessionUser(c)
	var request dto.CreateBoardRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	boardID := uuid.New().String()
	newBoard := model.Board{
		BoardID:     boardID,
		Title:       request.Title,
		Description: request.Description,
		BoardType:   request.BoardType,
		OwnerID:     user.UserID,
		CreatedAt:   time.Now(),
	}
	if _, err := firestoreClient.Collection("kanban_boards").Doc(boardID).Set(c.Request.Context(), newBoard); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create board"})
		return
	}

	// Creates invalidate rather than patch; the next list re-fetches.
	cache.InvalidateEntity("kanban_boards")
	c.JSON(http.StatusCreated, gin.H{
		"message": "Board created successfully",
		"boardId": boardID,
	})
}

func UpdateBoard(c *gin.Context, firestoreClient *firestore.Client, cache *services.QueryCache) {
	user := sessionUser(c)
	boardID := c.Param("id")

	var request dto.UpdateBoardRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	ok, err := services.CanAccessBoard(ctx, firestoreClient, user, boardID)
	if err != nil {
		if services.IsNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Board not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if !ok {
		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		return
	}

	var updates []firestore.Update
	if request.Title != nil {
		updates = append(updates, firestore.Update{Path: "title", Value: *request.Title})
	}
	if request.Description != nil {
		updates = append(updates, firestore.Update{Path: "description", Value: *request.Description})
	}
	if request.BoardType != nil {
		updates = append(updates, firestore.Update{Path: "type", Value: *request.BoardType})
	}
	if len(updates) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Nothing to update"})
		return
	}

	if _, err := firestoreClient.Collection("kanban_boards").Doc(boardID).Update(ctx, updates); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update board"})
		return
	}

	cache.InvalidateEntity("kanban_boards")
	c.JSON(http.StatusOK, gin.H{"message": "Board updated successfully"})
}

// DeleteBoard removes the board document. Stage and card cleanup cascades
// remotely; the local caches for the board's children are dropped here.
func DeleteBoard(c *gin.Context, firestoreClient *firestore.Client, cache *services.QueryCache) {
	user := sessionUser(c)
	boardID := c.Param("id")

	ctx := c.Request.Context()
	ok, err := services.CanAccessBoard(ctx, firestoreClient, user, boardID)
	if err != nil {
		if services.IsNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Board not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if !ok {
		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		return
	}

	if _, err := firestoreClient.Collection("kanban_boards").Doc(boardID).Delete(ctx); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete board"})
		return
	}

	cache.InvalidateEntity("kanban_boards")
	cache.Invalidate("kanban_stages", boardID)
	cache.Invalidate("kanban_cards", boardID)
	c.JSON(http.StatusOK, gin.H{"message": "Board deleted successfully"})
}
