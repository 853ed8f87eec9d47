// Package ui is the windowed front-end: an ebiten.Game over an arena.
package ui

import (
	"fmt"
	"image/color"
	"io"
	"log/slog"
	"math/rand"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/Garsondee/Skirmish/internal/config"
	"github.com/Garsondee/Skirmish/internal/control"
	"github.com/Garsondee/Skirmish/internal/game"
	"github.com/Garsondee/Skirmish/internal/render"
)

// borderWidth is the pixel gap between the window edge and the field.
const borderWidth = 24

const (
	panelWidth = 300
	lineHeight = 16
)

// binding maps physical keys to one command, fired on press.
type binding struct {
	keys []ebiten.Key
	cmd  control.Command
}

var bindings = []binding{
	{[]ebiten.Key{ebiten.KeyW, ebiten.KeyArrowUp}, control.CmdMoveUp},
	{[]ebiten.Key{ebiten.KeyS, ebiten.KeyArrowDown}, control.CmdMoveDown},
	{[]ebiten.Key{ebiten.KeyA, ebiten.KeyArrowLeft}, control.CmdMoveLeft},
	{[]ebiten.Key{ebiten.KeyD, ebiten.KeyArrowRight}, control.CmdMoveRight},
	{[]ebiten.Key{ebiten.KeyDigit1, ebiten.KeyNumpad1}, control.CmdSpawnVillager},
	{[]ebiten.Key{ebiten.KeyDigit2, ebiten.KeyNumpad2}, control.CmdSpawnArcher},
	{[]ebiten.Key{ebiten.KeyDigit3, ebiten.KeyNumpad3}, control.CmdSpawnKnight},
	{[]ebiten.Key{ebiten.KeyR}, control.CmdSpawnResource},
	{[]ebiten.Key{ebiten.KeySpace}, control.CmdAttack},
	{[]ebiten.Key{ebiten.KeyTab}, control.CmdCycleFilter},
	{[]ebiten.Key{ebiten.KeyM}, control.CmdMount},
	{[]ebiten.Key{ebiten.KeyC}, control.CmdCollect},
	{[]ebiten.Key{ebiten.KeyK}, control.CmdCopyReport},
}

var helpLines = []string{
	"WASD/arrows  move selection",
	"1 2 3        spawn V / A / K",
	"R            drop a resource",
	"Space        attack",
	"Tab          cycle selection",
	"M            mount / dismount",
	"C            villagers collect",
	"K            copy scoreboard",
	"H            toggle help",
	"Esc          quit",
}

// Game implements ebiten.Game.
type Game struct {
	cfg     config.Config
	arena   *game.Arena
	sched   *game.StepScheduler
	events  *game.EventLog
	panel   *control.Panel
	painter *render.Painter
	feed    *Feed
	face    text.Face
	logger  *slog.Logger

	sprites render.SpriteSource
	clip    control.Clipboard
	seed    int64

	width, height int
	tickDur       time.Duration
	prevKeys      map[ebiten.Key]bool
	showHelp      bool

	board      game.Scoreboard
	sinceBoard time.Duration
	lastSeq    int
	status     string
}

// Option configures a Game.
type Option func(*Game)

// WithLogger sets the logger shared with the arena.
func WithLogger(l *slog.Logger) Option {
	return func(g *Game) { g.logger = l }
}

// WithSprites sets the sprite source; shapes are drawn without one.
func WithSprites(s render.SpriteSource) Option {
	return func(g *Game) { g.sprites = s }
}

// WithClipboard enables the copy-scoreboard key.
func WithClipboard(c control.Clipboard) Option {
	return func(g *Game) { g.clip = c }
}

// WithSeed fixes random spawn placement.
func WithSeed(seed int64) Option {
	return func(g *Game) { g.seed = seed }
}

// New builds the arena, control panel and painter from cfg.
func New(cfg config.Config, opts ...Option) *Game {
	g := &Game{
		cfg:      cfg,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		seed:     time.Now().UnixNano(),
		prevKeys: make(map[ebiten.Key]bool),
		showHelp: true,
		status:   "Tab selects, 1/2/3 spawns",
	}
	for _, o := range opts {
		o(g)
	}

	g.events = game.NewEventLog()
	g.sched = game.NewStepScheduler(cfg.Fade.Interval)
	g.arena = game.NewArena(
		game.WithSettings(cfg.Settings()),
		game.WithTraits(cfg.Traits()),
		game.WithScheduler(g.sched),
		game.WithEventLog(g.events),
		game.WithLogger(g.logger),
	)

	popts := []control.PanelOption{
		control.WithRand(rand.New(rand.NewSource(g.seed))), // #nosec G404 -- spawn placement
		control.WithPadding(cfg.Spawn.Padding),
		control.WithLogger(g.logger),
	}
	if g.clip != nil {
		popts = append(popts, control.WithClipboard(g.clip))
	}
	g.panel = control.NewPanel(g.arena, popts...)
	g.painter = render.NewPainter(g.sprites)
	g.feed = NewFeed(cfg.HUD.FeedSize)
	g.face = text.NewGoXFace(basicfont.Face7x13)

	g.width = cfg.Field.Width + 2*borderWidth + panelWidth
	g.height = cfg.Field.Height + 2*borderWidth
	g.tickDur = time.Second / time.Duration(ebiten.DefaultTPS)
	g.board = g.arena.Scoreboard()
	return g
}

// Arena exposes the simulation for launchers and tests.
func (g *Game) Arena() *game.Arena { return g.arena }

// Panel exposes the control panel.
func (g *Game) Panel() *control.Panel { return g.panel }

// WindowSize is the size the window should open at.
func (g *Game) WindowSize() (int, int) { return g.width, g.height }

// Status is the last command result shown in the panel.
func (g *Game) Status() string { return g.status }

func (g *Game) Update() error {
	return g.step(ebiten.IsKeyPressed)
}

// step runs one frame: input, fade ticks, scoreboard poll, feed refresh.
func (g *Game) step(pressed func(ebiten.Key) bool) error {
	if pressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	g.handleInput(pressed)

	g.sched.Advance(g.tickDur)

	g.sinceBoard += g.tickDur
	if g.sinceBoard >= g.cfg.HUD.StatusPoll {
		g.sinceBoard = 0
		g.board = g.arena.Scoreboard()
	}

	for _, e := range g.events.Since(g.lastSeq) {
		g.lastSeq = e.Seq
		if fe, ok := FeedEntryFor(e); ok {
			g.feed.Add(fe)
		}
	}
	return nil
}

func (g *Game) handleInput(pressed func(ebiten.Key) bool) {
	currentKeys := make(map[ebiten.Key]bool, len(g.prevKeys))
	for _, b := range bindings {
		fired := false
		for _, k := range b.keys {
			currentKeys[k] = pressed(k)
			if currentKeys[k] && !g.prevKeys[k] {
				fired = true
			}
		}
		if fired {
			g.dispatch(b.cmd)
		}
	}

	currentKeys[ebiten.KeyH] = pressed(ebiten.KeyH)
	if currentKeys[ebiten.KeyH] && !g.prevKeys[ebiten.KeyH] {
		g.showHelp = !g.showHelp
	}
	g.prevKeys = currentKeys
}

func (g *Game) dispatch(cmd control.Command) {
	msg, err := g.panel.Dispatch(cmd)
	if err != nil {
		g.logger.Warn("command failed", "cmd", cmd.String(), "err", err)
		g.status = err.Error()
		return
	}
	if msg != "" {
		g.status = msg
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 14, G: 18, B: 14, A: 255})

	ox, oy := float32(borderWidth), float32(borderWidth)
	fw, fh := float32(g.cfg.Field.Width), float32(g.cfg.Field.Height)
	vector.FillRect(screen, ox, oy, fw, fh, color.RGBA{R: 58, G: 92, B: 48, A: 255}, false)
	vector.StrokeRect(screen, ox-1, oy-1, fw+2, fh+2, 2.0, color.RGBA{R: 70, G: 100, B: 60, A: 255}, false)

	g.painter.Begin(screen, borderWidth, borderWidth)
	g.arena.Render(g.painter)

	g.drawPanel(screen, g.cfg.Field.Width+2*borderWidth)
}

func (g *Game) drawPanel(screen *ebiten.Image, panelX int) {
	vector.FillRect(screen, float32(panelX), 0, panelWidth, float32(g.height), color.RGBA{R: 10, G: 12, B: 10, A: 248}, false)
	vector.StrokeLine(screen, float32(panelX), 0, float32(panelX), float32(g.height), 1.0, color.RGBA{R: 50, G: 70, B: 50, A: 255}, false)

	x := panelX + 10
	y := 8
	title := color.RGBA{R: 220, G: 220, B: 180, A: 255}
	plain := color.RGBA{R: 200, G: 200, B: 200, A: 255}
	dim := color.RGBA{R: 130, G: 140, B: 130, A: 255}

	g.drawText(screen, "SKIRMISH", x, y, title)
	y += lineHeight + 4
	g.drawText(screen, "Selected: "+g.panel.Filter().String(), x, y, plain)
	y += lineHeight
	g.drawText(screen, g.status, x, y, dim)
	y += lineHeight + 8

	b := g.board
	g.drawText(screen, "KILLS", x, y, title)
	y += lineHeight
	g.drawText(screen, fmt.Sprintf("Vil %d  Arc %d  Kni %d  Tot %d",
		b.KillsOf(game.Villager), b.KillsOf(game.Archer), b.KillsOf(game.Knight), b.TotalKills), x, y, plain)
	y += lineHeight + 4
	g.drawText(screen, "STOCKPILE", x, y, title)
	y += lineHeight
	for _, k := range game.AllResourceKinds {
		c := k.Color()
		g.drawText(screen, fmt.Sprintf("%-5s %d", k.String(), b.StockOf(k)), x, y, c)
		y += lineHeight
	}
	g.drawText(screen, fmt.Sprintf("units %d  resources %d", b.Units, b.Resources), x, y, dim)
	y += lineHeight + 8

	g.drawText(screen, "EVENTS", x, y, title)
	y += lineHeight
	for _, e := range g.feed.Recent() {
		g.drawText(screen, fmt.Sprintf("%4d %-3s %s", e.Tick, e.Label, e.Message), x, y, e.Col)
		y += lineHeight
	}

	if g.showHelp {
		y = g.height - len(helpLines)*lineHeight - 8
		for _, l := range helpLines {
			g.drawText(screen, l, x, y, dim)
			y += lineHeight
		}
	}
}

func (g *Game) drawText(dst *ebiten.Image, s string, x, y int, c color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(float64(x), float64(y))
	op.ColorScale.ScaleWithColor(c)
	text.Draw(dst, s, g.face, op)
}

func (g *Game) Layout(_, _ int) (int, int) {
	return g.width, g.height
}
