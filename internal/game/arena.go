package game

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
)

var (
	ErrUnitNotFound        = errors.New("unit not found")
	ErrNotMountable        = errors.New("unit kind cannot mount")
	ErrUnknownKind         = errors.New("unknown unit kind")
	ErrUnknownResourceKind = errors.New("unknown resource kind")
)

// Settings are the field-wide simulation parameters.
type Settings struct {
	FieldW           int
	FieldH           int
	FadeStep         float64 // opacity removed per fade tick
	CollectRadius    int     // villager centre to resource centre, pixels
	ResourceQuantity int     // units credited per collected stack
}

// DefaultSettings returns the stock field parameters.
func DefaultSettings() Settings {
	return Settings{
		FieldW:           800,
		FieldH:           600,
		FadeStep:         0.1,
		CollectRadius:    50,
		ResourceQuantity: 10,
	}
}

// Arena owns every unit and resource on the field and applies the rules
// that mutate them. All exported methods are safe for concurrent use; each
// runs to completion under a single lock.
type Arena struct {
	mu sync.Mutex

	settings Settings
	traits   TraitTable

	units     map[UnitID]*Unit
	resources map[ResourceID]*Resource
	nextSeq   int

	kills     [kindCount]int
	stockpile [resourceKindCount]int

	fader     Scheduler
	fading    bool // a fade run is active; flipped only under mu
	fadeTicks int

	logger   *slog.Logger
	events   *EventLog
	eventSeq int
	redraw   func()
}

// Option configures an Arena at construction.
type Option func(*Arena)

// WithSettings replaces the default field settings.
func WithSettings(s Settings) Option {
	return func(a *Arena) { a.settings = s }
}

// WithTraits replaces the default per-kind trait table.
func WithTraits(t TraitTable) Option {
	return func(a *Arena) { a.traits = t }
}

// WithScheduler sets the fade scheduler.
func WithScheduler(s Scheduler) Option {
	return func(a *Arena) { a.fader = s }
}

// WithLogger sets the structured logger for observability events.
func WithLogger(l *slog.Logger) Option {
	return func(a *Arena) { a.logger = l }
}

// WithEventLog records every event into l.
func WithEventLog(l *EventLog) Option {
	return func(a *Arena) { a.events = l }
}

// WithRedraw registers a hook called after any state change that should be
// repainted. It runs outside the arena lock.
func WithRedraw(fn func()) Option {
	return func(a *Arena) { a.redraw = fn }
}

// NewArena builds an empty arena. Without WithScheduler the fade ticker is a
// StepScheduler that only advances when stepped.
func NewArena(opts ...Option) *Arena {
	a := &Arena{
		settings:  DefaultSettings(),
		traits:    DefaultTraits(),
		units:     make(map[UnitID]*Unit),
		resources: make(map[ResourceID]*Resource),
	}
	for _, o := range opts {
		o(a)
	}
	if a.fader == nil {
		a.fader = NewStepScheduler(DefaultFadeInterval)
	}
	if a.logger == nil {
		a.logger = slog.Default()
	}
	return a
}

// Settings returns the field settings.
func (a *Arena) Settings() Settings {
	return a.settings
}

// Traits returns the trait table units are built from.
func (a *Arena) Traits() TraitTable {
	return a.traits
}

// Spawn places a new unit of kind k at (x, y). Coordinates are not
// validated; they are clamped on the unit's first move.
func (a *Arena) Spawn(k UnitKind, x, y int) (UnitID, error) {
	if !k.Valid() {
		return UnitID{}, fmt.Errorf("spawn: %w: %d", ErrUnknownKind, int(k))
	}

	a.mu.Lock()
	u := NewUnit(k, a.traits.Of(k), x, y)
	a.nextSeq++
	u.seq = a.nextSeq
	u.label = fmt.Sprintf("%s%d", k.Initial(), u.seq)
	a.units[u.id] = u
	a.emit(u.label, k.String(), CategoryUnit, KeySpawned,
		fmt.Sprintf("%s spawned at (%d,%d)", k, x, y), 0)
	a.mu.Unlock()

	a.signalRedraw()
	return u.id, nil
}

// SpawnResource places a resource stack of kind k at (x, y).
func (a *Arena) SpawnResource(k ResourceKind, x, y int) (ResourceID, error) {
	if !k.Valid() {
		return ResourceID{}, fmt.Errorf("spawn resource: %w: %d", ErrUnknownResourceKind, int(k))
	}

	a.mu.Lock()
	r := NewResource(k, a.settings.ResourceQuantity, x, y)
	a.resources[r.id] = r
	a.emit("--", k.String(), CategoryResource, KeySpawned,
		fmt.Sprintf("%d %s at (%d,%d)", r.quantity, k, x, y), float64(r.quantity))
	a.mu.Unlock()

	a.signalRedraw()
	return r.id, nil
}

// MoveAll moves every unit one step in direction d.
func (a *Arena) MoveAll(d Direction) {
	a.move(func(*Unit) bool { return true }, d)
}

// MoveKind moves every unit of kind k one step in direction d.
func (a *Arena) MoveKind(k UnitKind, d Direction) {
	a.move(func(u *Unit) bool { return u.kind == k }, d)
}

func (a *Arena) move(match func(*Unit) bool, d Direction) {
	a.mu.Lock()
	for _, u := range a.units {
		if match(u) {
			u.Move(d, a.settings.FieldW, a.settings.FieldH)
		}
	}
	a.mu.Unlock()
	a.signalRedraw()
}

// ToggleMount switches a Knight's mount state.
func (a *Arena) ToggleMount(id UnitID) error {
	a.mu.Lock()
	u, ok := a.units[id]
	if !ok {
		a.mu.Unlock()
		return fmt.Errorf("toggle mount %s: %w", id, ErrUnitNotFound)
	}
	if err := u.ToggleMounted(); err != nil {
		a.mu.Unlock()
		return fmt.Errorf("toggle mount: %w", err)
	}
	a.emitMount(u)
	a.mu.Unlock()

	a.signalRedraw()
	return nil
}

// ToggleMountAll switches every mountable unit and returns how many changed.
func (a *Arena) ToggleMountAll() int {
	a.mu.Lock()
	n := 0
	for _, u := range a.units {
		if !u.traits.Mountable {
			continue
		}
		if err := u.ToggleMounted(); err == nil {
			a.emitMount(u)
			n++
		}
	}
	a.mu.Unlock()

	if n > 0 {
		a.signalRedraw()
	}
	return n
}

func (a *Arena) emitMount(u *Unit) {
	state := "dismounted"
	if u.mounted {
		state = "mounted"
	}
	a.emit(u.label, u.kind.String(), CategoryMount, KeyToggle,
		fmt.Sprintf("%s %s", u.kind, state), float64(u.Speed()))
}

// Unit returns a read-only view of the unit with the given id.
func (a *Arena) Unit(id UnitID) (UnitView, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	u, ok := a.units[id]
	if !ok {
		return UnitView{}, false
	}
	return u.view(), true
}

// Units returns views of every live unit in spawn order.
func (a *Arena) Units() []UnitView {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.unitViewsLocked()
}

// Resources returns views of every resource stack on the field.
func (a *Arena) Resources() []ResourceView {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.resourceViewsLocked()
}

func (a *Arena) unitViewsLocked() []UnitView {
	ordered := make([]*Unit, 0, len(a.units))
	for _, u := range a.units {
		ordered = append(ordered, u)
	}
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].seq < ordered[j].seq })
	out := make([]UnitView, len(ordered))
	for i, u := range ordered {
		out[i] = u.view()
	}
	return out
}

func (a *Arena) resourceViewsLocked() []ResourceView {
	out := make([]ResourceView, 0, len(a.resources))
	for _, r := range a.resources {
		out = append(out, r.view())
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Y != out[j].Y {
			return out[i].Y < out[j].Y
		}
		return out[i].X < out[j].X
	})
	return out
}

// Render hands a snapshot of the field to r: resources first, then units in
// spawn order so later spawns draw on top. r is called without the lock held.
func (a *Arena) Render(r Renderer) {
	a.mu.Lock()
	resources := a.resourceViewsLocked()
	units := a.unitViewsLocked()
	a.mu.Unlock()

	for _, v := range resources {
		r.DrawResource(v)
	}
	for _, v := range units {
		r.DrawUnit(v)
	}
}

// UnitCount returns the number of live units, dying ones included.
func (a *Arena) UnitCount() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.units)
}

// ResourceCount returns the number of uncollected stacks.
func (a *Arena) ResourceCount() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.resources)
}

// Kills returns the kill counter for kind k.
func (a *Arena) Kills(k UnitKind) int {
	if !k.Valid() {
		return 0
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.kills[k]
}

// TotalKills returns the sum of all kill counters.
func (a *Arena) TotalKills() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.totalKillsLocked()
}

func (a *Arena) totalKillsLocked() int {
	total := 0
	for _, n := range a.kills {
		total += n
	}
	return total
}

// Stockpile returns the collected total for resource kind k.
func (a *Arena) Stockpile(k ResourceKind) int {
	if !k.Valid() {
		return 0
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.stockpile[k]
}

// Fading reports whether a fade run is active.
func (a *Arena) Fading() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.fading
}

// emit records an event and mirrors it to the logger. Callers hold mu.
func (a *Arena) emit(unit, kind, category, key, value string, num float64) {
	a.eventSeq++
	e := Event{
		Seq:      a.eventSeq,
		Tick:     a.fadeTicks,
		Unit:     unit,
		Kind:     kind,
		Category: category,
		Key:      key,
		Value:    value,
		NumVal:   num,
	}
	if a.events != nil {
		a.events.Add(e)
	}

	level := slog.LevelDebug
	switch category {
	case CategoryKill, CategoryTally:
		level = slog.LevelInfo
	}
	a.logger.Log(context.Background(), level, value,
		"category", category,
		"key", key,
		"unit", unit,
		"tick", a.fadeTicks,
	)
}

func (a *Arena) signalRedraw() {
	if a.redraw != nil {
		a.redraw()
	}
}
