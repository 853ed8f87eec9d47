// Package tui is the terminal front-end: a tcell screen over an arena whose
// fade ticker runs on its own goroutine.
package tui

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/Garsondee/Skirmish/internal/config"
	"github.com/Garsondee/Skirmish/internal/control"
	"github.com/Garsondee/Skirmish/internal/game"
)

const (
	sidebarWidth = 34
	maxFeed      = 10
)

var (
	styleText   = tcell.StyleDefault.Foreground(tcell.ColorSilver)
	styleTitle  = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	styleDim    = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleBorder = tcell.StyleDefault.Foreground(tcell.ColorDarkGreen)
	styleKill   = tcell.StyleDefault.Foreground(tcell.ColorIndianRed)
)

// runeCommands maps typed characters to commands.
var runeCommands = map[rune]control.Command{
	'w': control.CmdMoveUp,
	's': control.CmdMoveDown,
	'a': control.CmdMoveLeft,
	'd': control.CmdMoveRight,
	'1': control.CmdSpawnVillager,
	'2': control.CmdSpawnArcher,
	'3': control.CmdSpawnKnight,
	'r': control.CmdSpawnResource,
	' ': control.CmdAttack,
	'm': control.CmdMount,
	'c': control.CmdCollect,
	'k': control.CmdCopyReport,
}

var keyCommands = map[tcell.Key]control.Command{
	tcell.KeyUp:    control.CmdMoveUp,
	tcell.KeyDown:  control.CmdMoveDown,
	tcell.KeyLeft:  control.CmdMoveLeft,
	tcell.KeyRight: control.CmdMoveRight,
	tcell.KeyTab:   control.CmdCycleFilter,
}

// App owns the screen, the arena and the control panel.
type App struct {
	screen tcell.Screen
	cfg    config.Config
	arena  *game.Arena
	sched  *game.TimerScheduler
	events *game.EventLog
	panel  *control.Panel
	canvas *Canvas
	logger *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc

	clip control.Clipboard
	seed int64

	board   game.Scoreboard
	feed    []game.Event
	lastSeq int
	status  string
}

// Option configures an App.
type Option func(*App)

// WithLogger sets the logger shared with the arena.
func WithLogger(l *slog.Logger) Option {
	return func(a *App) { a.logger = l }
}

// WithClipboard enables the copy-scoreboard key.
func WithClipboard(c control.Clipboard) Option {
	return func(a *App) { a.clip = c }
}

// WithSeed fixes random spawn placement.
func WithSeed(seed int64) Option {
	return func(a *App) { a.seed = seed }
}

// New builds an app on an initialised screen. The fade ticker stops when ctx
// is cancelled or Run returns.
func New(ctx context.Context, screen tcell.Screen, cfg config.Config, opts ...Option) *App {
	a := &App{
		screen: screen,
		cfg:    cfg,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		seed:   time.Now().UnixNano(),
		status: "Tab selects, 1/2/3 spawns, q quits",
	}
	for _, o := range opts {
		o(a)
	}
	a.ctx, a.cancel = context.WithCancel(ctx)

	a.events = game.NewEventLog()
	a.sched = game.NewTimerScheduler(a.ctx, cfg.Fade.Interval)
	a.arena = game.NewArena(
		game.WithSettings(cfg.Settings()),
		game.WithTraits(cfg.Traits()),
		game.WithScheduler(a.sched),
		game.WithEventLog(a.events),
		game.WithLogger(a.logger),
		game.WithRedraw(a.requestRedraw),
	)

	popts := []control.PanelOption{
		control.WithRand(rand.New(rand.NewSource(a.seed))), // #nosec G404 -- spawn placement
		control.WithPadding(cfg.Spawn.Padding),
		control.WithLogger(a.logger),
	}
	if a.clip != nil {
		popts = append(popts, control.WithClipboard(a.clip))
	}
	a.panel = control.NewPanel(a.arena, popts...)
	a.canvas = NewCanvas(screen, cfg.Field.Width, cfg.Field.Height)
	a.layout()
	return a
}

// Arena exposes the simulation.
func (a *App) Arena() *game.Arena { return a.arena }

// requestRedraw wakes the run loop from any goroutine. A full queue already
// holds a pending wake-up.
func (a *App) requestRedraw() {
	_ = a.screen.PostEvent(tcell.NewEventInterrupt(nil))
}

// Run processes input and redraws until quit or ctx is cancelled.
func (a *App) Run() error {
	defer func() {
		a.cancel()
		a.sched.Wait()
	}()

	poll := time.NewTicker(a.cfg.HUD.StatusPoll)
	defer poll.Stop()

	eventChan := make(chan tcell.Event, 100)
	go a.screen.ChannelEvents(eventChan, a.ctx.Done())

	a.draw()
	for {
		select {
		case <-a.ctx.Done():
			return a.ctx.Err()

		case ev := <-eventChan:
			if ev == nil {
				return a.ctx.Err()
			}
			if !a.handleEvent(ev) {
				return nil
			}
			a.draw()

		case <-poll.C:
			a.draw()
		}
	}
}

// handleEvent applies one terminal event and reports whether to keep running.
func (a *App) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return false
		}
		if ev.Key() == tcell.KeyRune && (ev.Rune() == 'q' || ev.Rune() == 'Q') {
			return false
		}
		if cmd, ok := commandFor(ev); ok {
			a.dispatch(cmd)
		}

	case *tcell.EventResize:
		a.screen.Sync()
		a.layout()

	case *tcell.EventInterrupt:
		// redraw only
	}
	return true
}

func commandFor(ev *tcell.EventKey) (control.Command, bool) {
	if ev.Key() == tcell.KeyRune {
		r := ev.Rune()
		if r >= 'A' && r <= 'Z' {
			r += 'a' - 'A'
		}
		cmd, ok := runeCommands[r]
		return cmd, ok
	}
	cmd, ok := keyCommands[ev.Key()]
	return cmd, ok
}

func (a *App) dispatch(cmd control.Command) {
	msg, err := a.panel.Dispatch(cmd)
	if err != nil {
		a.logger.Warn("command failed", "cmd", cmd.String(), "err", err)
		a.status = err.Error()
		return
	}
	if msg != "" {
		a.status = msg
	}
}

// layout fits the field into the screen left of the sidebar, keeping a
// one-cell frame.
func (a *App) layout() {
	w, h := a.screen.Size()
	cols := w - sidebarWidth - 3
	rows := h - 2
	a.canvas.Fit(1, 1, cols, rows)
}

func (a *App) refresh() {
	a.board = a.arena.Scoreboard()
	for _, e := range a.events.Since(a.lastSeq) {
		a.lastSeq = e.Seq
		if e.Category != game.CategoryKill && e.Category != game.CategoryResource {
			continue
		}
		if e.Key == game.KeySpawned {
			continue
		}
		if len(a.feed) >= maxFeed {
			copy(a.feed, a.feed[1:])
			a.feed = a.feed[:maxFeed-1]
		}
		a.feed = append(a.feed, e)
	}
}

func (a *App) draw() {
	a.refresh()
	a.screen.Clear()
	a.canvas.Frame(styleBorder)
	a.arena.Render(a.canvas)
	a.drawSidebar()
	a.screen.Show()
}

func (a *App) drawSidebar() {
	w, _ := a.screen.Size()
	x := w - sidebarWidth
	y := 1
	line := func(s string, st tcell.Style) {
		putStr(a.screen, x, y, s, st)
		y++
	}

	b := a.board
	line("SKIRMISH", styleTitle)
	line("selected: "+a.panel.Filter().String(), styleText)
	line(a.status, styleDim)
	y++
	line("KILLS", styleTitle)
	line(fmt.Sprintf("Vil %d  Arc %d  Kni %d  Tot %d",
		b.KillsOf(game.Villager), b.KillsOf(game.Archer), b.KillsOf(game.Knight), b.TotalKills), styleText)
	line("STOCKPILE", styleTitle)
	line(fmt.Sprintf("Food %d  Gold %d  Wood %d",
		b.StockOf(game.Food), b.StockOf(game.Gold), b.StockOf(game.Wood)), styleText)
	line(fmt.Sprintf("units %d  resources %d", b.Units, b.Resources), styleDim)
	y++
	line("EVENTS", styleTitle)
	for _, e := range a.feed {
		st := styleText
		if e.Category == game.CategoryKill {
			st = styleKill
		}
		line(fmt.Sprintf("%-3s %s", e.Unit, e.Value), st)
	}
	y++
	line("wasd/arrows move  tab select", styleDim)
	line("1 2 3 spawn  r resource", styleDim)
	line("space attack  m mount  c collect", styleDim)
	line("k copy  q quit", styleDim)
}

func putStr(s tcell.Screen, x, y int, str string, style tcell.Style) {
	for _, r := range str {
		s.SetContent(x, y, r, nil, style)
		x++
	}
}
