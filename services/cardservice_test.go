package services

import (
	"testing"
	"time"

	"pmeboard/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextPosition(t *testing.T) {
	cards := []model.Card{
		{CardID: "a", StageID: "s1", Position: 0},
		{CardID: "b", StageID: "s1", Position: 3},
		{CardID: "c", StageID: "s2", Position: 7},
	}

	assert.Equal(t, 4, NextPosition(cards, "s1"))
	assert.Equal(t, 8, NextPosition(cards, "s2"))
	// An empty stage starts at zero, the same as a card moved into it.
	assert.Equal(t, 0, NextPosition(cards, "s3"))
	assert.Equal(t, 0, NextPosition(nil, "s1"))
}

func TestDueDateStatus(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, model.DueStatusNoDate, DueDateStatus(nil, now))

	past := now.Add(-time.Hour)
	assert.Equal(t, model.DueStatusLate, DueDateStatus(&past, now))

	soon := now.Add(48 * time.Hour)
	assert.Equal(t, model.DueStatusSoon, DueDateStatus(&soon, now))

	edge := now.Add(72 * time.Hour)
	assert.Equal(t, model.DueStatusSoon, DueDateStatus(&edge, now))

	later := now.Add(96 * time.Hour)
	assert.Equal(t, model.DueStatusOnTime, DueDateStatus(&later, now))
}

func TestSortCardsTiesBreakByCreation(t *testing.T) {
	early := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	late := early.Add(time.Hour)
	cards := []model.Card{
		{CardID: "b", Position: 1, CreatedAt: late},
		{CardID: "a", Position: 1, CreatedAt: early},
		{CardID: "c", Position: 0, CreatedAt: late},
	}

	SortCards(cards)

	assert.Equal(t, "c", cards[0].CardID)
	assert.Equal(t, "a", cards[1].CardID)
	assert.Equal(t, "b", cards[2].CardID)
}

func TestGroupCardsByStageKeepsOrder(t *testing.T) {
	cards := []model.Card{
		{CardID: "a", StageID: "s1", Position: 0},
		{CardID: "b", StageID: "s2", Position: 0},
		{CardID: "c", StageID: "s1", Position: 1},
		{CardID: "d", StageID: "s1", Position: 2},
	}

	grouped := GroupCardsByStage(cards)

	require.Len(t, grouped, 2)
	require.Len(t, grouped["s1"], 3)
	assert.Equal(t, "a", grouped["s1"][0].CardID)
	assert.Equal(t, "c", grouped["s1"][1].CardID)
	assert.Equal(t, "d", grouped["s1"][2].CardID)
	assert.Equal(t, "b", grouped["s2"][0].CardID)
}

func TestPatchCachedCardReplacesOnlyTarget(t *testing.T) {
	cache := NewQueryCache()
	cache.Set("kanban_cards", "board1", []model.Card{
		{CardID: "a", CompanyName: "Acme Ltda", StageTitle: "Entrada"},
		{CardID: "b", CompanyName: "Beta SA", StageTitle: "Entrada"},
	})

	PatchCachedCard(cache, "board1", model.Card{CardID: "a", CompanyName: "Acme Seguros"})

	cached, ok := cache.Get("kanban_cards", "board1")
	require.True(t, ok)
	cards := cached.([]model.Card)
	require.Len(t, cards, 2)
	assert.Equal(t, "Acme Seguros", cards[0].CompanyName)
	// Enrichment survives the patch; the untouched entry is unchanged.
	assert.Equal(t, "Entrada", cards[0].StageTitle)
	assert.Equal(t, model.Card{CardID: "b", CompanyName: "Beta SA", StageTitle: "Entrada"}, cards[1])
}

func TestPatchCachedCardNoCacheEntry(t *testing.T) {
	cache := NewQueryCache()

	// Nothing cached for the board: patching is a no-op, not a panic.
	PatchCachedCard(cache, "board1", model.Card{CardID: "a"})

	_, ok := cache.Get("kanban_cards", "board1")
	assert.False(t, ok)
}

func TestNextStagePosition(t *testing.T) {
	assert.Equal(t, 0, NextStagePosition(nil))
	assert.Equal(t, 5, NextStagePosition([]model.Stage{
		{StageID: "s1", Position: 4},
		{StageID: "s2", Position: 1},
	}))
}
