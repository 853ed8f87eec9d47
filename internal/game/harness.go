package game

import (
	"io"
	"log/slog"
	"math/rand"
)

// Harness is a headless arena with a caller-stepped fade ticker and a
// structured event log. Tests and the headless report drive it directly.
type Harness struct {
	Arena    *Arena
	Sched    *StepScheduler
	Log      *EventLog
	Settings Settings
	Traits   TraitTable

	rng    *rand.Rand
	logger *slog.Logger
	ids    map[string]UnitID // label → id
}

// harnessOptionKind controls the pass in which an option is applied.
type harnessOptionKind int

const (
	harnessOptInfra harnessOptionKind = iota // field, seed, traits, logger; applied first
	harnessOptSpawn                          // units and resources; applied once the arena exists
)

// HarnessOption is a builder function applied to a Harness during construction.
type HarnessOption struct {
	kind harnessOptionKind
	fn   func(*Harness)
}

// WithField sets the field dimensions.
func WithField(w, h int) HarnessOption {
	return HarnessOption{harnessOptInfra, func(hs *Harness) {
		hs.Settings.FieldW = w
		hs.Settings.FieldH = h
	}}
}

// WithSeed sets the RNG seed for deterministic random spawns.
func WithSeed(seed int64) HarnessOption {
	return HarnessOption{harnessOptInfra, func(hs *Harness) {
		hs.rng = rand.New(rand.NewSource(seed)) // #nosec G404 -- harness only
	}}
}

// WithHarnessSettings replaces the whole settings block.
func WithHarnessSettings(s Settings) HarnessOption {
	return HarnessOption{harnessOptInfra, func(hs *Harness) {
		hs.Settings = s
	}}
}

// WithHarnessTraits replaces the trait table.
func WithHarnessTraits(t TraitTable) HarnessOption {
	return HarnessOption{harnessOptInfra, func(hs *Harness) {
		hs.Traits = t
	}}
}

// WithHarnessLogger routes arena log lines to l.
func WithHarnessLogger(l *slog.Logger) HarnessOption {
	return HarnessOption{harnessOptInfra, func(hs *Harness) {
		hs.logger = l
	}}
}

// WithUnit spawns a unit at (x, y). Units are labelled in option order
// (first unit is ordinal 1).
func WithUnit(k UnitKind, x, y int) HarnessOption {
	return HarnessOption{harnessOptSpawn, func(hs *Harness) {
		hs.Spawn(k, x, y)
	}}
}

// WithResource spawns a resource stack at (x, y).
func WithResource(k ResourceKind, x, y int) HarnessOption {
	return HarnessOption{harnessOptSpawn, func(hs *Harness) {
		_, _ = hs.Arena.SpawnResource(k, x, y)
	}}
}

// NewHarness constructs a Harness from the given options in two passes:
//  1. Infrastructure (field, seed, settings, traits, logger)
//  2. Spawns
func NewHarness(opts ...HarnessOption) *Harness {
	hs := &Harness{
		Settings: DefaultSettings(),
		Traits:   DefaultTraits(),
		Log:      NewEventLog(),
		rng:      rand.New(rand.NewSource(1)), // #nosec G404 -- harness default
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		ids:      make(map[string]UnitID),
	}
	for _, o := range opts {
		if o.kind == harnessOptInfra {
			o.fn(hs)
		}
	}
	hs.Sched = NewStepScheduler(DefaultFadeInterval)
	hs.Arena = NewArena(
		WithSettings(hs.Settings),
		WithTraits(hs.Traits),
		WithScheduler(hs.Sched),
		WithEventLog(hs.Log),
		WithLogger(hs.logger),
	)
	for _, o := range opts {
		if o.kind == harnessOptSpawn {
			o.fn(hs)
		}
	}
	return hs
}

// Spawn adds a unit and remembers its label.
func (hs *Harness) Spawn(k UnitKind, x, y int) UnitID {
	id, err := hs.Arena.Spawn(k, x, y)
	if err != nil {
		return UnitID{}
	}
	if v, ok := hs.Arena.Unit(id); ok {
		hs.ids[v.Label] = id
	}
	return id
}

// SpawnRandom adds a unit of kind k at a random point inside the field,
// keeping pad pixels clear of the right and bottom edges.
func (hs *Harness) SpawnRandom(k UnitKind, pad int) UnitID {
	x, y := RandomPoint(hs.rng, hs.Settings.FieldW, hs.Settings.FieldH, pad)
	return hs.Spawn(k, x, y)
}

// SpawnRandomResource adds a stack of a random kind at a random point.
func (hs *Harness) SpawnRandomResource(pad int) ResourceID {
	k := AllResourceKinds[hs.rng.Intn(len(AllResourceKinds))]
	x, y := RandomPoint(hs.rng, hs.Settings.FieldW, hs.Settings.FieldH, pad)
	id, _ := hs.Arena.SpawnResource(k, x, y)
	return id
}

// RandomDirection returns a uniformly chosen move direction.
func (hs *Harness) RandomDirection() Direction {
	return Direction(hs.rng.Intn(4))
}

// ID returns the id for a unit label such as "K2".
func (hs *Harness) ID(label string) UnitID {
	return hs.ids[label]
}

// View returns the current view of the labelled unit.
func (hs *Harness) View(label string) (UnitView, bool) {
	id, ok := hs.ids[label]
	if !ok {
		return UnitView{}, false
	}
	return hs.Arena.Unit(id)
}

// RunFade steps the fade ticker until it goes idle or maxTicks have run.
func (hs *Harness) RunFade(maxTicks int) int {
	return hs.Sched.RunUntilIdle(maxTicks)
}

// RandomPoint picks a point in [0, w-pad) × [0, h-pad), never using an empty range.
func RandomPoint(rng *rand.Rand, w, h, pad int) (int, int) {
	spanX := w - pad
	if spanX < 1 {
		spanX = 1
	}
	spanY := h - pad
	if spanY < 1 {
		spanY = 1
	}
	return rng.Intn(spanX), rng.Intn(spanY)
}
