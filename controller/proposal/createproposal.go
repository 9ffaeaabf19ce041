package proposal

import (
	"context"
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

func CreateProposalController(router *gin.Engine, firestoreClient *firestore.Client, cache *services.QueryCache) {
	router.POST("/rpc/create_minimal_proposal", middleware.AccessTokenMiddleware(), func(c *gin.Context) {
		CreateMinimalProposal(c, firestoreClient, cache)
	})
}

// CreateMinimalProposal opens a proposal from the bare minimum a broker can
// supply: one transaction creates the pme_submissions row and its card in
// the board's entry stage, so neither can exist without the other. The card
// carries a warning flag until the proposal data is completed.
func CreateMinimalProposal(c *gin.Context, firestoreClient *firestore.Client, cache *services.QueryCache) {
	userID := c.MustGet("userId").(string)

	var request dto.CreateMinimalProposalRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	entryStage, err := services.FirstStage(ctx, firestoreClient, request.BoardID)
	if err != nil {
		if services.IsNotFound(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Board has no stages"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	position, err := services.NextCardPosition(ctx, firestoreClient, entryStage.StageID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	cardID := uuid.New().String()
	submissionID := uuid.New().String()
	now := time.Now()
	incomplete := request.CNPJ == "" || request.Lives == 0 || request.Value == 0

	card := model.Card{
		CardID:      cardID,
		BoardID:     request.BoardID,
		StageID:     entryStage.StageID,
		CompanyName: request.CompanyName,
		Operator:    request.OperatorID,
		Lives:       request.Lives,
		Value:       request.Value,
		Position:    position,
		HasWarnings: incomplete,
		CreatedBy:   userID,
		CreatedAt:   now,
	}
	submission := model.Submission{
		SubmissionID: submissionID,
		CardID:       cardID,
		BoardID:      request.BoardID,
		BrokerID:     request.BrokerID,
		OperatorID:   request.OperatorID,
		CompanyName:  request.CompanyName,
		CNPJ:         request.CNPJ,
		Lives:        request.Lives,
		Value:        request.Value,
		Status:       "rascunho",
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err = firestoreClient.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		if err := tx.Set(firestoreClient.Collection("kanban_cards").Doc(cardID), card); err != nil {
			return err
		}
		return tx.Set(firestoreClient.Collection("pme_submissions").Doc(submissionID), submission)
	})
	if err != nil {
		zap.L().Error("create minimal proposal", zap.String("boardId", request.BoardID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create proposal"})
		return
	}

	cache.Invalidate("kanban_cards", request.BoardID)
	c.JSON(http.StatusCreated, gin.H{
		"message":      "Proposal created successfully",
		"cardId":       cardID,
		"submissionId": submissionID,
	})
}
