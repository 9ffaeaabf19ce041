package services

import (
	"context"
	"sort"

	"pmeboard/model"

	"cloud.google.com/go/firestore"
)

// BoardByID fetches one board or ErrNotFound.
func BoardByID(ctx context.Context, firestoreClient *firestore.Client, boardID string) (*model.Board, error) {
	doc, err := firestoreClient.Collection("kanban_boards").Doc(boardID).Get(ctx)
	if err != nil {
		if IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	var board model.Board
	if err := doc.DataTo(&board); err != nil {
		return nil, err
	}
	return &board, nil
}

// BoardsForUser lists every board for admins, owned boards otherwise.
func BoardsForUser(ctx context.Context, firestoreClient *firestore.Client, user *model.SessionUser) ([]model.Board, error) {
	query := firestoreClient.Collection("kanban_boards").Query
	if !user.IsAdmin() {
		query = query.Where("owner_id", "==", user.UserID)
	}
	docs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, err
	}
	boards := make([]model.Board, 0, len(docs))
	for _, doc := range docs {
		var board model.Board
		if err := doc.DataTo(&board); err != nil {
			return nil, err
		}
		boards = append(boards, board)
	}
	sort.Slice(boards, func(i, j int) bool {
		return boards[i].CreatedAt.Before(boards[j].CreatedAt)
	})
	return boards, nil
}

// CanAccessBoard allows the owner and any admin.
func CanAccessBoard(ctx context.Context, firestoreClient *firestore.Client, user *model.SessionUser, boardID string) (bool, error) {
	if user.IsAdmin() {
		return true, nil
	}
	board, err := BoardByID(ctx, firestoreClient, boardID)
	if err != nil {
		return false, err
	}
	return board.OwnerID == user.UserID, nil
}

// StagesByBoard returns the board's stages in display order.
func StagesByBoard(ctx context.Context, firestoreClient *firestore.Client, boardID string) ([]model.Stage, error) {
	docs, err := firestoreClient.Collection("kanban_stages").
		Where("board_id", "==", boardID).
		Documents(ctx).GetAll()
	if err != nil {
		return nil, err
	}
	stages := make([]model.Stage, 0, len(docs))
	for _, doc := range docs {
		var stage model.Stage
		if err := doc.DataTo(&stage); err != nil {
			return nil, err
		}
		stages = append(stages, stage)
	}
	sort.SliceStable(stages, func(i, j int) bool {
		return stages[i].Position < stages[j].Position
	})
	return stages, nil
}

// StageByID fetches one stage or ErrNotFound.
func StageByID(ctx context.Context, firestoreClient *firestore.Client, stageID string) (*model.Stage, error) {
	doc, err := firestoreClient.Collection("kanban_stages").Doc(stageID).Get(ctx)
	if err != nil {
		if IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	var stage model.Stage
	if err := doc.DataTo(&stage); err != nil {
		return nil, err
	}
	return &stage, nil
}

// NextStagePosition is max(position) + 1 over a board's stages, or 0.
func NextStagePosition(stages []model.Stage) int {
	next := 0
	for _, stage := range stages {
		if stage.Position+1 > next {
			next = stage.Position + 1
		}
	}
	return next
}

// FirstStage is the lowest-positioned stage of a board. Used by the
// minimal-proposal RPC as the entry column.
func FirstStage(ctx context.Context, firestoreClient *firestore.Client, boardID string) (*model.Stage, error) {
	stages, err := StagesByBoard(ctx, firestoreClient, boardID)
	if err != nil {
		return nil, err
	}
	if len(stages) == 0 {
		return nil, ErrNotFound
	}
	return &stages[0], nil
}

// StageFieldsByStage returns the admin-configured custom fields in order.
func StageFieldsByStage(ctx context.Context, firestoreClient *firestore.Client, stageID string) ([]model.StageField, error) {
	docs, err := firestoreClient.Collection("kanban_stage_fields").
		Where("stage_id", "==", stageID).
		Documents(ctx).GetAll()
	if err != nil {
		return nil, err
	}
	fields := make([]model.StageField, 0, len(docs))
	for _, doc := range docs {
		var field model.StageField
		if err := doc.DataTo(&field); err != nil {
			return nil, err
		}
		fields = append(fields, field)
	}
	sort.SliceStable(fields, func(i, j int) bool {
		return fields[i].Position < fields[j].Position
	})
	return fields, nil
}
