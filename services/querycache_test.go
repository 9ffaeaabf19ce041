package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueryCacheGetSet(t *testing.T) {
	cache := NewQueryCache()

	_, ok := cache.Get("kanban_cards", "b1")
	assert.False(t, ok)

	cache.Set("kanban_cards", "b1", []string{"a"})
	got, ok := cache.Get("kanban_cards", "b1")
	require.True(t, ok)
	assert.Equal(t, []string{"a"}, got)
}

func TestQueryCacheInvalidate(t *testing.T) {
	cache := NewQueryCache()
	cache.Set("kanban_cards", "b1", 1)
	cache.Set("kanban_cards", "b2", 2)

	cache.Invalidate("kanban_cards", "b1")

	_, ok := cache.Get("kanban_cards", "b1")
	assert.False(t, ok)
	_, ok = cache.Get("kanban_cards", "b2")
	assert.True(t, ok)
}

func TestQueryCacheInvalidateEntity(t *testing.T) {
	cache := NewQueryCache()
	cache.Set("kanban_boards", "u1", 1)
	cache.Set("kanban_boards", "u2", 2)
	cache.Set("kanban_stages", "b1", 3)

	cache.InvalidateEntity("kanban_boards")

	_, ok := cache.Get("kanban_boards", "u1")
	assert.False(t, ok)
	_, ok = cache.Get("kanban_boards", "u2")
	assert.False(t, ok)
	_, ok = cache.Get("kanban_stages", "b1")
	assert.True(t, ok)
}

func TestQueryCacheClear(t *testing.T) {
	cache := NewQueryCache()
	cache.Set("kanban_cards", "b1", 1)
	cache.Set("profiles", "u1", 2)

	cache.Clear()

	_, ok := cache.Get("kanban_cards", "b1")
	assert.False(t, ok)
	_, ok = cache.Get("profiles", "u1")
	assert.False(t, ok)
}
