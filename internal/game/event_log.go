package game

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Event categories and keys emitted by the arena.
const (
	CategoryUnit     = "unit"
	CategoryAttack   = "attack"
	CategoryKill     = "kill"
	CategoryTally    = "tally"
	CategoryResource = "resource"
	CategoryMount    = "mount"

	KeySpawned    = "spawned"
	KeyHit        = "hit"
	KeyDying      = "dying"
	KeyEliminated = "eliminated"
	KeyScoreboard = "scoreboard"
	KeyCollected  = "collected"
	KeyToggle     = "toggle"
)

// Event is one recorded arena occurrence.
type Event struct {
	Seq      int
	Tick     int    // fade ticks elapsed when the event fired
	Unit     string // unit label, or "--" for global events
	Kind     string // unit or resource kind, or "--"
	Category string
	Key      string
	Value    string
	NumVal   float64
}

// String formats the entry as a fixed-width log line.
//
//	[T=012] K3   kill      eliminated       Knight eliminated
func (e Event) String() string {
	return fmt.Sprintf("[T=%03d] %-4s %-9s %-16s %s",
		e.Tick, e.Unit, e.Category, e.Key, e.Value)
}

// EventLog is an unbounded, machine-readable record of arena events. It is
// safe for concurrent use since the fade ticker may run on its own goroutine.
type EventLog struct {
	mu      sync.Mutex
	entries []Event
}

// NewEventLog creates an empty log.
func NewEventLog() *EventLog {
	return &EventLog{}
}

// Add records a new entry.
func (l *EventLog) Add(e Event) {
	l.mu.Lock()
	l.entries = append(l.entries, e)
	l.mu.Unlock()
}

// Entries returns a copy of all recorded entries.
func (l *EventLog) Entries() []Event {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Event, len(l.entries))
	copy(out, l.entries)
	return out
}

// Len returns the number of recorded entries.
func (l *EventLog) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

// Filter returns entries matching the given category and/or key.
// Pass empty string to match any value for that field.
func (l *EventLog) Filter(category, key string) []Event {
	var out []Event
	for _, e := range l.Entries() {
		if category != "" && e.Category != category {
			continue
		}
		if key != "" && e.Key != key {
			continue
		}
		out = append(out, e)
	}
	return out
}

// FilterUnit returns entries for a specific unit label.
func (l *EventLog) FilterUnit(label string) []Event {
	var out []Event
	for _, e := range l.Entries() {
		if e.Unit == label {
			out = append(out, e)
		}
	}
	return out
}

// Count returns how many entries match the given category and key.
func (l *EventLog) Count(category, key string) int {
	return len(l.Filter(category, key))
}

// LastOf returns the most recent entry matching category+key, or false if none.
func (l *EventLog) LastOf(category, key string) (Event, bool) {
	entries := l.Filter(category, key)
	if len(entries) == 0 {
		return Event{}, false
	}
	return entries[len(entries)-1], true
}

// Since returns entries with Seq strictly greater than seq. Entries are
// appended in Seq order, so only the tail is copied.
func (l *EventLog) Since(seq int) []Event {
	l.mu.Lock()
	defer l.mu.Unlock()
	i := sort.Search(len(l.entries), func(i int) bool { return l.entries[i].Seq > seq })
	if i == len(l.entries) {
		return nil
	}
	out := make([]Event, len(l.entries)-i)
	copy(out, l.entries[i:])
	return out
}

// HasEntry returns true if at least one entry matches category, key, and value substring.
func (l *EventLog) HasEntry(category, key, valueSubstr string) bool {
	for _, e := range l.Entries() {
		if category != "" && e.Category != category {
			continue
		}
		if key != "" && e.Key != key {
			continue
		}
		if valueSubstr != "" && !strings.Contains(e.Value, valueSubstr) {
			continue
		}
		return true
	}
	return false
}

// Format returns the full log as a single string for t.Log output.
func (l *EventLog) Format() string {
	var sb strings.Builder
	for _, e := range l.Entries() {
		sb.WriteString(e.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}
