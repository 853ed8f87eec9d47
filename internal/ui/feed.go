package ui

import (
	"image/color"

	"github.com/Garsondee/Skirmish/internal/game"
)

// FeedEntry is a single line in the event feed.
type FeedEntry struct {
	Tick    int
	Label   string // e.g. "K3", "--"
	Message string
	Col     color.NRGBA
}

// Feed is a fixed-capacity ring buffer of recent arena events for the side
// panel.
type Feed struct {
	entries []FeedEntry
	head    int
	count   int
}

// NewFeed creates a feed holding at most size entries.
func NewFeed(size int) *Feed {
	if size < 1 {
		size = 1
	}
	return &Feed{entries: make([]FeedEntry, size)}
}

// Add appends an entry, dropping the oldest when full.
func (f *Feed) Add(e FeedEntry) {
	f.entries[f.head] = e
	f.head = (f.head + 1) % len(f.entries)
	if f.count < len(f.entries) {
		f.count++
	}
}

// Recent returns entries in chronological order (oldest first).
func (f *Feed) Recent() []FeedEntry {
	n := len(f.entries)
	out := make([]FeedEntry, f.count)
	for i := 0; i < f.count; i++ {
		out[i] = f.entries[(f.head-f.count+i+n)%n]
	}
	return out
}

// Len returns the number of buffered entries.
func (f *Feed) Len() int { return f.count }

var (
	feedKillCol    = color.NRGBA{R: 230, G: 90, B: 80, A: 255}
	feedCollectCol = color.NRGBA{R: 230, G: 200, B: 60, A: 255}
	feedMountCol   = color.NRGBA{R: 120, G: 150, B: 230, A: 255}
	feedDefaultCol = color.NRGBA{R: 200, G: 200, B: 200, A: 255}
)

// FeedEntryFor maps an arena event to a feed line. Only kills, dying units,
// collections and mount toggles reach the feed; hits are too frequent.
func FeedEntryFor(e game.Event) (FeedEntry, bool) {
	fe := FeedEntry{Tick: e.Tick, Label: e.Unit, Message: e.Value, Col: feedDefaultCol}
	switch {
	case e.Category == game.CategoryKill:
		fe.Col = feedKillCol
	case e.Category == game.CategoryUnit && e.Key == game.KeyDying:
		fe.Col = feedKillCol
	case e.Category == game.CategoryResource && e.Key == game.KeyCollected:
		fe.Col = feedCollectCol
	case e.Category == game.CategoryMount:
		fe.Col = feedMountCol
	default:
		return FeedEntry{}, false
	}
	return fe, true
}
