package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"pmeboard/model"

	"cloud.google.com/go/firestore"
)

// DueDateStatus derives the label shown on a card from its due date.
// "Entrega em breve" covers anything due within the next 72 hours.
func DueDateStatus(due *time.Time, now time.Time) string {
	if due == nil {
		return model.DueStatusNoDate
	}
	if due.Before(now) {
		return model.DueStatusLate
	}
	if due.Sub(now) <= 72*time.Hour {
		return model.DueStatusSoon
	}
	return model.DueStatusOnTime
}

// SortCards orders by position ascending; ties fall back to creation time so
// the ordering stays stable even when positions collide.
func SortCards(cards []model.Card) {
	sort.SliceStable(cards, func(i, j int) bool {
		if cards[i].Position != cards[j].Position {
			return cards[i].Position < cards[j].Position
		}
		return cards[i].CreatedAt.Before(cards[j].CreatedAt)
	})
}

// NextPosition is max(position) + 1 over the stage's cards, or 0 when the
// stage is empty. Positions may be sparse; there is no compaction pass.
func NextPosition(cards []model.Card, stageID string) int {
	next := 0
	for _, card := range cards {
		if card.StageID == stageID && card.Position+1 > next {
			next = card.Position + 1
		}
	}
	return next
}

// GroupCardsByStage splits an already-sorted card list into per-stage
// columns for board rendering.
func GroupCardsByStage(cards []model.Card) map[string][]model.Card {
	grouped := make(map[string][]model.Card)
	for _, card := range cards {
		grouped[card.StageID] = append(grouped[card.StageID], card)
	}
	return grouped
}

// PatchCachedCard replaces the cached list entry matching the updated card's
// id, leaving every other entry as it was. Update mutations patch instead of
// invalidating; create/move/delete invalidate (see card controller).
func PatchCachedCard(cache *QueryCache, boardID string, updated model.Card) {
	cached, ok := cache.Get("kanban_cards", boardID)
	if !ok {
		return
	}
	cards, ok := cached.([]model.Card)
	if !ok {
		return
	}
	next := make([]model.Card, len(cards))
	copy(next, cards)
	for i := range next {
		if next[i].CardID == updated.CardID {
			// Keep read-time enrichment the single-doc re-read lacks.
			if updated.StageTitle == "" {
				updated.StageTitle = next[i].StageTitle
			}
			if updated.Submission == nil {
				updated.Submission = next[i].Submission
			}
			next[i] = updated
			break
		}
	}
	cache.Set("kanban_cards", boardID, next)
}

// CardsByBoard reads the board's cards ordered by position and enriches each
// with its stage title, submission summary and derived due date status.
func CardsByBoard(ctx context.Context, firestoreClient *firestore.Client, boardID string) ([]model.Card, error) {
	docs, err := firestoreClient.Collection("kanban_cards").
		Where("board_id", "==", boardID).
		Documents(ctx).GetAll()
	if err != nil {
		return nil, err
	}

	cards := make([]model.Card, 0, len(docs))
	for _, doc := range docs {
		var card model.Card
		if err := doc.DataTo(&card); err != nil {
			return nil, err
		}
		cards = append(cards, card)
	}
	SortCards(cards)

	stages, err := StagesByBoard(ctx, firestoreClient, boardID)
	if err != nil {
		return nil, err
	}
	stageTitles := make(map[string]string, len(stages))
	for _, s := range stages {
		stageTitles[s.StageID] = s.Title
	}

	submissions, err := submissionsByBoard(ctx, firestoreClient, boardID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	for i := range cards {
		cards[i].StageTitle = stageTitles[cards[i].StageID]
		cards[i].DueDateStatus = DueDateStatus(cards[i].DueDate, now)
		if sub, ok := submissions[cards[i].CardID]; ok {
			cards[i].Submission = sub
		}
	}
	return cards, nil
}

func submissionsByBoard(ctx context.Context, firestoreClient *firestore.Client, boardID string) (map[string]*model.SubmissionSummary, error) {
	docs, err := firestoreClient.Collection("pme_submissions").
		Where("board_id", "==", boardID).
		Documents(ctx).GetAll()
	if err != nil {
		return nil, err
	}
	summaries := make(map[string]*model.SubmissionSummary, len(docs))
	for _, doc := range docs {
		var sub model.Submission
		if err := doc.DataTo(&sub); err != nil {
			return nil, err
		}
		summaries[sub.CardID] = &model.SubmissionSummary{
			SubmissionID:  sub.SubmissionID,
			Status:        sub.Status,
			PartnersCount: sub.PartnersCount,
		}
	}
	return summaries, nil
}

// NextCardPosition queries only the stage's highest-positioned card.
func NextCardPosition(ctx context.Context, firestoreClient *firestore.Client, stageID string) (int, error) {
	docs, err := firestoreClient.Collection("kanban_cards").
		Where("stage_id", "==", stageID).
		OrderBy("position", firestore.Desc).
		Limit(1).
		Documents(ctx).GetAll()
	if err != nil {
		return 0, err
	}
	if len(docs) == 0 {
		return 0, nil
	}
	var card model.Card
	if err := docs[0].DataTo(&card); err != nil {
		return 0, err
	}
	return card.Position + 1, nil
}

// MoveCard updates stage and position in a single remote call.
func MoveCard(ctx context.Context, firestoreClient *firestore.Client, cardID, stageID string, position int) error {
	_, err := firestoreClient.Collection("kanban_cards").Doc(cardID).Update(ctx, []firestore.Update{
		{Path: "stage_id", Value: stageID},
		{Path: "position", Value: position},
	})
	return err
}

// ReorderCards writes position = index for each card, one update at a time.
// A failure mid-sequence leaves the earlier writes in place; the error names
// the card that failed and the caller reports it once for the whole batch.
func ReorderCards(ctx context.Context, firestoreClient *firestore.Client, cardIDs []string) error {
	for i, cardID := range cardIDs {
		_, err := firestoreClient.Collection("kanban_cards").Doc(cardID).Update(ctx, []firestore.Update{
			{Path: "position", Value: i},
		})
		if err != nil {
			return fmt.Errorf("reorder stopped at card %s (index %d): %w", cardID, i, err)
		}
	}
	return nil
}

// CardByID fetches one card or ErrNotFound.
func CardByID(ctx context.Context, firestoreClient *firestore.Client, cardID string) (*model.Card, error) {
	doc, err := firestoreClient.Collection("kanban_cards").Doc(cardID).Get(ctx)
	if err != nil {
		if IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	var card model.Card
	if err := doc.DataTo(&card); err != nil {
		return nil, err
	}
	return &card, nil
}
