package ui

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Garsondee/Skirmish/internal/game"
)

func TestFeed_RingOrder(t *testing.T) {
	f := NewFeed(3)
	for i := 1; i <= 5; i++ {
		f.Add(FeedEntry{Tick: i, Message: fmt.Sprint(i)})
	}
	got := f.Recent()
	require.Len(t, got, 3)
	assert.Equal(t, []int{3, 4, 5}, []int{got[0].Tick, got[1].Tick, got[2].Tick})
	assert.Equal(t, 3, f.Len())
}

func TestFeed_PartiallyFilled(t *testing.T) {
	f := NewFeed(8)
	f.Add(FeedEntry{Tick: 1})
	f.Add(FeedEntry{Tick: 2})
	got := f.Recent()
	require.Len(t, got, 2)
	assert.Equal(t, 1, got[0].Tick)
}

func TestFeedEntryFor(t *testing.T) {
	_, ok := FeedEntryFor(game.Event{Category: game.CategoryAttack, Key: game.KeyHit})
	assert.False(t, ok, "hits stay out of the feed")

	fe, ok := FeedEntryFor(game.Event{Unit: "K3", Category: game.CategoryKill, Key: game.KeyEliminated, Value: "Knight eliminated"})
	require.True(t, ok)
	assert.Equal(t, "Knight eliminated", fe.Message)
	assert.Equal(t, feedKillCol, fe.Col)

	fe, ok = FeedEntryFor(game.Event{Category: game.CategoryResource, Key: game.KeyCollected})
	require.True(t, ok)
	assert.Equal(t, feedCollectCol, fe.Col)

	_, ok = FeedEntryFor(game.Event{Category: game.CategoryResource, Key: game.KeySpawned})
	assert.False(t, ok)
}
