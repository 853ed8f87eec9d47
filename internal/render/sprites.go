package render

import (
	"fmt"
	"image"
	_ "image/png" // sprite files are PNG
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/Garsondee/Skirmish/internal/game"
)

// SpriteSource supplies images by name. A false return makes the painter
// fall back to shapes.
type SpriteSource interface {
	Sprite(name string) (*ebiten.Image, bool)
}

// NoSprites always reports a miss.
type NoSprites struct{}

func (NoSprites) Sprite(string) (*ebiten.Image, bool) { return nil, false }

// SpriteName returns the sprite key for a unit in its current state:
// kind, mount state for mountable kinds, then "_attack" while attacking.
//
//	villager, archer_attack, knight_mounted, knight_mounted_attack
func SpriteName(v game.UnitView) string {
	name := lowerKind(v.Kind)
	if v.Kind == game.Knight && v.Mounted {
		name += "_mounted"
	}
	if v.State == game.Attacking {
		name += "_attack"
	}
	return name
}

// ResourceSpriteName returns the sprite key for a resource kind.
func ResourceSpriteName(k game.ResourceKind) string {
	switch k {
	case game.Food:
		return "food"
	case game.Gold:
		return "gold"
	case game.Wood:
		return "wood"
	default:
		return "resource"
	}
}

func lowerKind(k game.UnitKind) string {
	switch k {
	case game.Villager:
		return "villager"
	case game.Archer:
		return "archer"
	case game.Knight:
		return "knight"
	default:
		return "unit"
	}
}

// DirSprites loads <dir>/<name>.png on first use and caches hits and misses.
type DirSprites struct {
	dir    string
	logger *slog.Logger

	mu      sync.Mutex
	cache   map[string]*ebiten.Image
	missing map[string]bool
}

// NewDirSprites returns a loader rooted at dir.
func NewDirSprites(dir string, logger *slog.Logger) *DirSprites {
	if logger == nil {
		logger = slog.Default()
	}
	return &DirSprites{
		dir:     dir,
		logger:  logger,
		cache:   make(map[string]*ebiten.Image),
		missing: make(map[string]bool),
	}
}

func (d *DirSprites) Sprite(name string) (*ebiten.Image, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if img, ok := d.cache[name]; ok {
		return img, true
	}
	if d.missing[name] {
		return nil, false
	}
	src, err := decodePNG(filepath.Join(d.dir, name+".png"))
	if err != nil {
		// Logged once; later lookups hit the miss cache.
		d.logger.Warn("sprite unavailable, drawing shape", "name", name, "err", err)
		d.missing[name] = true
		return nil, false
	}
	img := ebiten.NewImageFromImage(src)
	d.cache[name] = img
	return img, true
}

func decodePNG(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}
