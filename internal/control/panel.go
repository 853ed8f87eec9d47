// Package control maps player commands onto arena operations, scoped by the
// current unit-type selection.
package control

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"time"

	"github.com/Garsondee/Skirmish/internal/game"
)

// DefaultSpawnPadding keeps random spawns clear of the right and bottom edges.
const DefaultSpawnPadding = 50

// ErrNoClipboard is returned by the copy command when no clipboard is wired.
var ErrNoClipboard = errors.New("no clipboard available")

// Arena is the subset of *game.Arena the panel drives.
type Arena interface {
	Settings() game.Settings
	Spawn(k game.UnitKind, x, y int) (game.UnitID, error)
	SpawnResource(k game.ResourceKind, x, y int) (game.ResourceID, error)
	MoveAll(d game.Direction)
	MoveKind(k game.UnitKind, d game.Direction)
	AttackAll() []game.Hit
	AttackKind(k game.UnitKind) []game.Hit
	ToggleMountAll() int
	CollectNearbyResources() []game.Collection
	Scoreboard() game.Scoreboard
}

// Panel holds the selection filter and turns commands into arena calls.
// It is not safe for concurrent use; the arena it drives is.
type Panel struct {
	arena   Arena
	filter  Filter
	rng     *rand.Rand
	padding int
	clip    Clipboard
	logger  *slog.Logger
}

// PanelOption configures a Panel.
type PanelOption func(*Panel)

// WithRand sets the source for random spawn positions.
func WithRand(r *rand.Rand) PanelOption {
	return func(p *Panel) { p.rng = r }
}

// WithPadding sets the random spawn edge padding.
func WithPadding(n int) PanelOption {
	return func(p *Panel) { p.padding = n }
}

// WithClipboard wires the copy-report command.
func WithClipboard(c Clipboard) PanelOption {
	return func(p *Panel) { p.clip = c }
}

// WithLogger sets the logger for command tracing.
func WithLogger(l *slog.Logger) PanelOption {
	return func(p *Panel) { p.logger = l }
}

// WithFilter sets the initial selection.
func WithFilter(f Filter) PanelOption {
	return func(p *Panel) { p.filter = f }
}

// NewPanel returns a panel over a with the All selection.
func NewPanel(a Arena, opts ...PanelOption) *Panel {
	p := &Panel{
		arena:   a,
		filter:  FilterAll,
		padding: DefaultSpawnPadding,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, o := range opts {
		o(p)
	}
	if p.rng == nil {
		p.rng = rand.New(rand.NewSource(time.Now().UnixNano())) // #nosec G404 -- spawn placement
	}
	return p
}

// Filter returns the current selection.
func (p *Panel) Filter() Filter {
	return p.filter
}

// SetFilter replaces the current selection.
func (p *Panel) SetFilter(f Filter) {
	p.filter = f
}

// Dispatch runs cmd and returns a one-line status for the HUD. Commands the
// current selection cannot perform return a status and no error.
func (p *Panel) Dispatch(cmd Command) (string, error) {
	p.logger.Debug("command", "cmd", cmd.String(), "filter", p.filter.String())
	switch cmd {
	case CmdMoveUp:
		return p.move(game.Up), nil
	case CmdMoveDown:
		return p.move(game.Down), nil
	case CmdMoveLeft:
		return p.move(game.Left), nil
	case CmdMoveRight:
		return p.move(game.Right), nil
	case CmdSpawnVillager:
		return p.spawn(game.Villager)
	case CmdSpawnArcher:
		return p.spawn(game.Archer)
	case CmdSpawnKnight:
		return p.spawn(game.Knight)
	case CmdSpawnResource:
		return p.spawnResource()
	case CmdAttack:
		return p.attack(), nil
	case CmdMount:
		return p.mount(), nil
	case CmdCollect:
		return p.collect(), nil
	case CmdCycleFilter:
		p.filter = p.filter.Next()
		return "selected " + p.filter.String(), nil
	case CmdCopyReport:
		return p.copyReport()
	case CmdNone:
		return "", nil
	default:
		return "", fmt.Errorf("dispatch: unknown command %d", int(cmd))
	}
}

func (p *Panel) move(d game.Direction) string {
	if k, ok := p.filter.Kind(); ok {
		p.arena.MoveKind(k, d)
	} else {
		p.arena.MoveAll(d)
	}
	return fmt.Sprintf("%s moved %s", p.filter, d)
}

// RandomPosition picks a spawn point for the current field size.
func (p *Panel) RandomPosition() (int, int) {
	s := p.arena.Settings()
	return game.RandomPoint(p.rng, s.FieldW, s.FieldH, p.padding)
}

func (p *Panel) spawn(k game.UnitKind) (string, error) {
	x, y := p.RandomPosition()
	if _, err := p.arena.Spawn(k, x, y); err != nil {
		return "", fmt.Errorf("spawn %s: %w", k, err)
	}
	return fmt.Sprintf("%s spawned at (%d,%d)", k, x, y), nil
}

func (p *Panel) spawnResource() (string, error) {
	k := game.AllResourceKinds[p.rng.Intn(len(game.AllResourceKinds))]
	x, y := p.RandomPosition()
	if _, err := p.arena.SpawnResource(k, x, y); err != nil {
		return "", fmt.Errorf("spawn %s: %w", k, err)
	}
	return fmt.Sprintf("%s placed at (%d,%d)", k, x, y), nil
}

func (p *Panel) attack() string {
	if !p.filter.CanAttack() {
		return "Villagers cannot attack"
	}
	var hits []game.Hit
	if k, ok := p.filter.Kind(); ok {
		hits = p.arena.AttackKind(k)
	} else {
		hits = p.arena.AttackAll()
	}
	killed := 0
	for _, h := range hits {
		if h.Killed {
			killed++
		}
	}
	if killed > 0 {
		return fmt.Sprintf("%d hits, %d falling", len(hits), killed)
	}
	return fmt.Sprintf("%d hits", len(hits))
}

func (p *Panel) mount() string {
	if !p.filter.CanMount() {
		return "Select Knight or All to mount"
	}
	n := p.arena.ToggleMountAll()
	return fmt.Sprintf("%d knights toggled mount", n)
}

func (p *Panel) collect() string {
	got := p.arena.CollectNearbyResources()
	if len(got) == 0 {
		return "nothing in reach"
	}
	total := 0
	for _, c := range got {
		total += c.Quantity
	}
	return fmt.Sprintf("collected %d stacks (+%d)", len(got), total)
}

func (p *Panel) copyReport() (string, error) {
	if p.clip == nil {
		return "", ErrNoClipboard
	}
	if err := p.clip.WriteAll(p.arena.Scoreboard().String()); err != nil {
		return "", fmt.Errorf("copy report: %w", err)
	}
	return "scoreboard copied to clipboard", nil
}
