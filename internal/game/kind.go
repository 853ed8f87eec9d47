package game

import (
	"fmt"
	"image/color"
	"strings"
)

// UnitKind is the closed set of unit types on the field.
type UnitKind int

const (
	Villager UnitKind = iota
	Archer
	Knight

	kindCount
)

// AllKinds lists every unit kind in display order.
var AllKinds = [kindCount]UnitKind{Villager, Archer, Knight}

func (k UnitKind) String() string {
	switch k {
	case Villager:
		return "Villager"
	case Archer:
		return "Archer"
	case Knight:
		return "Knight"
	default:
		return "unknown"
	}
}

// Initial returns the single-letter prefix used in unit labels.
func (k UnitKind) Initial() string {
	switch k {
	case Villager:
		return "V"
	case Archer:
		return "A"
	case Knight:
		return "K"
	default:
		return "?"
	}
}

// Valid reports whether k is one of the known kinds.
func (k UnitKind) Valid() bool {
	return k >= 0 && k < kindCount
}

// ParseUnitKind maps a case-insensitive name to a UnitKind.
func ParseUnitKind(s string) (UnitKind, error) {
	for _, k := range AllKinds {
		if strings.EqualFold(s, k.String()) {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// Traits holds the per-kind constants a unit is built from.
type Traits struct {
	Health       int
	Attack       int
	Speed        int // pixels per move; dismounted speed for mountable kinds
	MountedSpeed int // only meaningful when Mountable
	Range        int // attack reach in pixels, measured centre to centre
	Aura         color.RGBA
	SpriteW      int
	SpriteH      int
	CanAttack    bool
	Mountable    bool
}

// TraitTable is indexed by UnitKind.
type TraitTable [kindCount]Traits

const (
	defaultSpriteSize = 48
	auraBorderAlpha   = 150
)

// DefaultTraits returns the stock balance values.
func DefaultTraits() TraitTable {
	return TraitTable{
		Villager: {
			Health:    100,
			Attack:    5,
			Speed:     10,
			Range:     50,
			Aura:      color.RGBA{R: 139, G: 90, B: 43, A: 50}, // brown
			SpriteW:   defaultSpriteSize,
			SpriteH:   defaultSpriteSize,
			CanAttack: false,
		},
		Archer: {
			Health:    80,
			Attack:    20,
			Speed:     15,
			Range:     150,
			Aura:      color.RGBA{R: 34, G: 139, B: 34, A: 50}, // forest green
			SpriteW:   defaultSpriteSize,
			SpriteH:   defaultSpriteSize,
			CanAttack: true,
		},
		Knight: {
			Health:       150,
			Attack:       25,
			Speed:        10,
			MountedSpeed: 20,
			Range:        75,
			Aura:         color.RGBA{R: 65, G: 105, B: 225, A: 50}, // royal blue
			SpriteW:      defaultSpriteSize,
			SpriteH:      defaultSpriteSize,
			CanAttack:    true,
			Mountable:    true,
		},
	}
}

// Of returns the traits for kind k.
func (t *TraitTable) Of(k UnitKind) Traits {
	return t[k]
}

// AuraBorder returns the ring colour drawn around an aura: same hue, higher alpha.
func AuraBorder(c color.RGBA) color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: auraBorderAlpha}
}

// Direction is one of the four axis-aligned move directions.
type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
)

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return "unknown"
	}
}

// delta returns the unit step along the axis for d.
func (d Direction) delta() (dx, dy int) {
	switch d {
	case Up:
		return 0, -1
	case Down:
		return 0, 1
	case Left:
		return -1, 0
	case Right:
		return 1, 0
	default:
		return 0, 0
	}
}
