package ui

import (
	"errors"
	"testing"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Garsondee/Skirmish/internal/config"
	"github.com/Garsondee/Skirmish/internal/control"
	"github.com/Garsondee/Skirmish/internal/game"
)

// keys returns a pressed-key func for one frame.
func keys(down ...ebiten.Key) func(ebiten.Key) bool {
	set := map[ebiten.Key]bool{}
	for _, k := range down {
		set[k] = true
	}
	return func(k ebiten.Key) bool { return set[k] }
}

func newTestGame(t *testing.T) *Game {
	t.Helper()
	return New(config.Default(), WithSeed(3))
}

func TestStep_KeyPressFiresOnce(t *testing.T) {
	g := newTestGame(t)
	require.NoError(t, g.step(keys(ebiten.KeyDigit3)))
	require.NoError(t, g.step(keys(ebiten.KeyDigit3))) // held
	assert.Equal(t, 1, g.Arena().UnitCount())

	require.NoError(t, g.step(keys()))
	require.NoError(t, g.step(keys(ebiten.KeyDigit3)))
	assert.Equal(t, 2, g.Arena().UnitCount())
}

func TestStep_AliasKeysShareACommand(t *testing.T) {
	g := newTestGame(t)
	require.NoError(t, g.step(keys(ebiten.KeyTab)))
	assert.Equal(t, control.FilterVillager, g.Panel().Filter())
	require.NoError(t, g.step(keys()))
	require.NoError(t, g.step(keys(ebiten.KeyTab)))
	assert.Equal(t, control.FilterArcher, g.Panel().Filter())
}

func TestStep_EscapeTerminates(t *testing.T) {
	g := newTestGame(t)
	err := g.step(keys(ebiten.KeyEscape))
	assert.True(t, errors.Is(err, ebiten.Termination))
}

func TestStep_FadeAdvancesWithFrames(t *testing.T) {
	g := newTestGame(t)
	a := g.Arena()
	_, _ = a.Spawn(game.Knight, 100, 100)
	vid, _ := a.Spawn(game.Villager, 110, 100)
	for i := 0; i < 4; i++ {
		a.AttackKind(game.Knight)
	}
	require.True(t, a.Fading())

	// 10 fade ticks at 50ms need 0.5s of frames; run a full second so the
	// 100ms scoreboard poll has caught up.
	frames := int(time.Second / g.tickDur)
	for i := 0; i < frames; i++ {
		require.NoError(t, g.step(keys()))
	}
	_, ok := a.Unit(vid)
	assert.False(t, ok, "villager should be gone")
	assert.Equal(t, 1, g.board.KillsOf(game.Villager), "scoreboard polled")

	var sawKill bool
	for _, e := range g.feed.Recent() {
		if e.Message == "Villager eliminated" {
			sawKill = true
		}
	}
	assert.True(t, sawKill, "kill reached the feed")
}

func TestStep_CopyWithoutClipboardSetsStatus(t *testing.T) {
	g := newTestGame(t)
	require.NoError(t, g.step(keys(ebiten.KeyK)))
	assert.Equal(t, control.ErrNoClipboard.Error(), g.Status())
}

func TestWindowSize(t *testing.T) {
	g := newTestGame(t)
	w, h := g.WindowSize()
	assert.Equal(t, 800+2*borderWidth+panelWidth, w)
	assert.Equal(t, 600+2*borderWidth, h)
}
