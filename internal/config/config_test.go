package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Garsondee/Skirmish/internal/game"
)

func writeTemp(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "skirmish.yaml")
	require.NoError(t, os.WriteFile(p, []byte(body), 0o600))
	return p
}

func TestDefault_MatchesGameDefaults(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, game.DefaultSettings(), cfg.Settings())
	assert.Equal(t, game.DefaultTraits(), cfg.Traits())
	assert.Equal(t, 50, cfg.Spawn.Padding)
	assert.Equal(t, 100*time.Millisecond, cfg.HUD.StatusPoll)
}

func TestLoad_EmptyPathIsDefault(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_ShippedFile(t *testing.T) {
	cfg, err := Load(filepath.Join("..", "..", "configs", "skirmish.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_PartialOverride(t *testing.T) {
	p := writeTemp(t, `
field:
  width: 1024
fade:
  interval: 20ms
units:
  knight:
    attack: 40
    aura: [1, 2, 3, 4]
`)
	cfg, err := Load(p)
	require.NoError(t, err)

	assert.Equal(t, 1024, cfg.Field.Width)
	assert.Equal(t, 600, cfg.Field.Height, "unset keys keep defaults")
	assert.Equal(t, 20*time.Millisecond, cfg.Fade.Interval)

	tt := cfg.Traits()
	k := tt.Of(game.Knight)
	assert.Equal(t, 40, k.Attack)
	assert.Equal(t, 150, k.Health)
	assert.Equal(t, 20, k.MountedSpeed)
	assert.Equal(t, uint8(4), k.Aura.A)
	assert.True(t, k.Mountable)
	assert.Equal(t, 20, tt.Of(game.Archer).Attack, "other kinds untouched")
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)

	_, err = Load(writeTemp(t, "field: [not, a, map]"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config")
}

func TestValidate_JoinsEveryProblem(t *testing.T) {
	cfg := Default()
	cfg.Field.Width = 0
	cfg.Fade.Step = 2
	cfg.Units.Archer.Health = 0

	err := cfg.Validate()
	require.Error(t, err)
	msg := err.Error()
	assert.Contains(t, msg, "field: size 0x600")
	assert.Contains(t, msg, "fade: step")
	assert.Contains(t, msg, "units.Archer: health 0")
}

func TestWrite_RoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Default().Write(&buf))
	assert.Contains(t, buf.String(), "interval: 50ms")

	p := writeTemp(t, buf.String())
	cfg, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}
