package stage

import (
	"net/http"

	"pmeboard/dto"
	"pmeboard/middleware"
	"pmeboard/model"
	"pmeboard/services"

	"cloud.google.com/go/firestore"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

func StageController(router *gin.Engine, firestoreClient *firestore.Client, cache *services.QueryCache, resolver *services.UserResolver) {
	authed := []gin.HandlerFunc{middleware.AccessTokenMiddleware(), middleware.SessionUserMiddleware(resolver)}

	router.GET("/board/:id/stages", append(authed, func(c *gin.Context) {
		GetStages(c, firestoreClient, cache)
	})...)
	router.PUT("/board/:id/stages/reorder", append(authed, func(c *gin.Context) {
		ReorderStages(c, firestoreClient, cache)
	})...)

	routes := router.Group("/stage", authed...)
	{
		routes.POST("", func(c *gin.Context) {
			CreateStage(c, firestoreClient, cache)
		})
		routes.PATCH("/:id", func(c *gin.Context) {
			UpdateStage(c, firestoreClient, cache)
		})
		routes.DELETE("/:id", func(c *gin.Context) {
			DeleteStage(c, firestoreClient, cache)
		})
	}
}

func GetStages(c *gin.Context, firestoreClient *firestore.Client, cache *services.QueryCache) {
	boardID := c.Param("id")
	if boardID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing board id"})
		return
	}

	if cached, ok := cache.Get("kanban_stages", boardID); ok {
		if stages, ok := cached.([]model.Stage); ok {
			c.JSON(http.StatusOK, gin.H{"stages": stages})
			return
		}
	}

	stages, err := services.StagesByBoard(c.Request.Context(), firestoreClient, boardID)
	if err != nil {
		zap.L().Error("list stages", zap.String("boardId", boardID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	cache.Set("kanban_stages", boardID, stages)
	c.JSON(http.StatusOK, gin.H{"stages": stages})
}

func CreateStage(c *gin.Context, firestoreClient *firestore.Client, cache *services.QueryCache) {
	var request dto.CreateStageRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	stages, err := services.StagesByBoard(ctx, firestoreClient, request.BoardID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	stageID := uuid.New().String()
	newStage := model.Stage{
		StageID:  stageID,
		BoardID:  request.BoardID,
		Title:    request.Title,
		Position: services.NextStagePosition(stages),
	}
	if _, err := firestoreClient.Collection("kanban_stages").Doc(stageID).Set(ctx, newStage); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create stage"})
		return
	}

	cache.Invalidate("kanban_stages", request.BoardID)
	c.JSON(http.StatusCreated, gin.H{
		"message": "Stage created successfully",
		"stageId": stageID,
	})
}

func UpdateStage(c *gin.Context, firestoreClient *firestore.Client, cache *services.QueryCache) {
	stageID := c.Param("id")

	var request dto.UpdateStageRequest
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

	var updates []firestore.Update
	if request.Title != nil {
		updates = append(updates, firestore.Update{Path: "title", Value: *request.Title})
	}
	if request.Position != nil {
		updates = append(updates, firestore.Update{Path: "position", Value: *request.Position})
	}
	if len(updates) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Nothing to update"})
		return
	}

	if _, err := firestoreClient.Collection("kanban_stages").Doc(stageID).Update(ctx, updates); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update stage"})
		return
	}

	cache.Invalidate("kanban_stages", stage.BoardID)
	c.JSON(http.StatusOK, gin.H{"message": "Stage updated successfully"})
}

// ReorderStages writes position = index per stage, sequentially. Like card
// reordering this is not atomic; a mid-sequence failure is reported once and
// earlier writes stay applied.
func ReorderStages(c *gin.Context, firestoreClient *firestore.Client, cache *services.QueryCache) {
	boardID := c.Param("id")

	var request dto.ReorderStagesRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	for i, stageID := range request.StageIDs {
		_, err := firestoreClient.Collection("kanban_stages").Doc(stageID).Update(ctx, []firestore.Update{
			{Path: "position", Value: i},
		})
		if err != nil {
			cache.Invalidate("kanban_stages", boardID)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Reorder failed at stage " + stageID})
			return
		}
	}

	cache.Invalidate("kanban_stages", boardID)
	c.JSON(http.StatusOK, gin.H{"message": "Stages reordered successfully"})
}

// DeleteStage removes the stage document; its cards cascade remotely.
func DeleteStage(c *gin.Context, firestoreClient *firestore.Client, cache *services.QueryCache) {
	stageID := c.Param("id")

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

	if _, err := firestoreClient.Collection("kanban_stages").Doc(stageID).Delete(ctx); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete stage"})
		return
	}

	cache.Invalidate("kanban_stages", stage.BoardID)
	cache.Invalidate("kanban_cards", stage.BoardID)
	c.JSON(http.StatusOK, gin.H{"message": "Stage deleted successfully"})
}
