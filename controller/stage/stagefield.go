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
)

// Custom-field schemas are admin-configured; reads are open to any session.
func StageFieldController(router *gin.Engine, firestoreClient *firestore.Client, cache *services.QueryCache) {
	router.GET("/stage/:id/fields", middleware.AccessTokenMiddleware(), func(c *gin.Context) {
		GetStageFields(c, firestoreClient, cache)
	})

	routes := router.Group("/stagefield", middleware.AccessTokenMiddleware(), middleware.AdminMiddleware())
	{
		routes.POST("", func(c *gin.Context) {
			CreateStageField(c, firestoreClient, cache)
		})
		routes.PATCH("/:id", func(c *gin.Context) {
			UpdateStageField(c, firestoreClient, cache)
		})
		routes.DELETE("/:id", func(c *gin.Context) {
			DeleteStageField(c, firestoreClient, cache)
		})
	}
}

func GetStageFields(c *gin.Context, firestoreClient *firestore.Client, cache *services.QueryCache) {
	stageID := c.Param("id")

	if cached, ok := cache.Get("kanban_stage_fields", stageID); ok {
		if fields, ok := cached.([]model.StageField); ok {
			c.JSON(http.StatusOK, gin.H{"fields": fields})
			return
		}
	}

	fields, err := services.StageFieldsByStage(c.Request.Context(), firestoreClient, stageID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	cache.Set("kanban_stage_fields", stageID, fields)
	c.JSON(http.StatusOK, gin.H{"fields": fields})
}

func CreateStageField(c *gin.Context, firestoreClient *firestore.Client, cache *services.QueryCache) {
	var request dto.CreateStageFieldRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if request.FieldType == model.FieldTypeSelect && len(request.Options) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Select fields require options"})
		return
	}

	ctx := c.Request.Context()
	existing, err := services.StageFieldsByStage(ctx, firestoreClient, request.StageID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	position := 0
	for _, f := range existing {
		if f.Position+1 > position {
			position = f.Position + 1
		}
	}

	fieldID := uuid.New().String()
	field := model.StageField{
		FieldID:      fieldID,
		StageID:      request.StageID,
		FieldName:    request.FieldName,
		FieldType:    request.FieldType,
		IsRequired:   request.IsRequired,
		Options:      request.Options,
		DefaultValue: request.DefaultValue,
		Position:     position,
	}
	if _, err := firestoreClient.Collection("kanban_stage_fields").Doc(fieldID).Set(ctx, field); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create field"})
		return
	}

	cache.Invalidate("kanban_stage_fields", request.StageID)
	c.JSON(http.StatusCreated, gin.H{
		"message": "Field created successfully",
		"fieldId": fieldID,
	})
}

func UpdateStageField(c *gin.Context, firestoreClient *firestore.Client, cache *services.QueryCache) {
	fieldID := c.Param("id")

	var request dto.UpdateStageFieldRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	doc, err := firestoreClient.Collection("kanban_stage_fields").Doc(fieldID).Get(ctx)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Field not found"})
		return
	}
	var field model.StageField
	if err := doc.DataTo(&field); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to parse field"})
		return
	}

	var updates []firestore.Update
	if request.FieldName != nil {
		updates = append(updates, firestore.Update{Path: "field_name", Value: *request.FieldName})
	}
	if request.FieldType != nil {
		if !model.ValidFieldType(*request.FieldType) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid field type"})
			return
		}
		updates = append(updates, firestore.Update{Path: "field_type", Value: *request.FieldType})
	}
	if request.IsRequired != nil {
		updates = append(updates, firestore.Update{Path: "is_required", Value: *request.IsRequired})
	}
	if request.Options != nil {
		updates = append(updates, firestore.Update{Path: "options", Value: *request.Options})
	}
	if request.DefaultValue != nil {
		updates = append(updates, firestore.Update{Path: "default_value", Value: *request.DefaultValue})
	}
	if request.Position != nil {
		updates = append(updates, firestore.Update{Path: "position", Value: *request.Position})
	}
	if len(updates) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Nothing to update"})
		return
	}

	if _, err := firestoreClient.Collection("kanban_stage_fields").Doc(fieldID).Update(ctx, updates); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update field"})
		return
	}

	cache.Invalidate("kanban_stage_fields", field.StageID)
	c.JSON(http.StatusOK, gin.H{"message": "Field updated successfully"})
}

func DeleteStageField(c *gin.Context, firestoreClient *firestore.Client, cache *services.QueryCache) {
	fieldID := c.Param("id")

	ctx := c.Request.Context()
	doc, err := firestoreClient.Collection("kanban_stage_fields").Doc(fieldID).Get(ctx)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Field not found"})
		return
	}
	var field model.StageField
	if err := doc.DataTo(&field); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to parse field"})
		return
	}

	if _, err := firestoreClient.Collection("kanban_stage_fields").Doc(fieldID).Delete(ctx); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete field"})
		return
	}

	cache.Invalidate("kanban_stage_fields", field.StageID)
	c.JSON(http.StatusOK, gin.H{"message": "Field deleted successfully"})
}
