package game

import "image/color"

//go:generate go tool mockgen -destination=./mocks/renderer_mock.go -package=mocks . Renderer

// Renderer receives draw requests from the arena. Implementations issue the
// primitive draw calls for a particular backend.
type Renderer interface {
	DrawResource(v ResourceView)
	DrawUnit(v UnitView)
}

// UnitView is a read-only copy of a unit's drawable state.
type UnitView struct {
	ID        UnitID
	Label     string
	Kind      UnitKind
	X, Y      int
	W, H      int
	Health    int
	MaxHealth int
	Attack    int
	State     AttackState
	Life      LifeState
	Opacity   float64
	Range     int
	Aura      color.RGBA
	Mounted   bool
}

// Center returns the sprite centre.
func (v UnitView) Center() (float64, float64) {
	return float64(v.X + v.W/2), float64(v.Y + v.H/2)
}

// ShowAura reports whether the range indicator should be drawn.
func (v UnitView) ShowAura() bool {
	return v.State == Attacking && v.Attack > 0
}

// AuraBorder is the higher-alpha ring around the aura fill.
func (v UnitView) AuraBorder() color.RGBA {
	return AuraBorder(v.Aura)
}

// ResourceView is a read-only copy of a resource stack.
type ResourceView struct {
	ID       ResourceID
	Kind     ResourceKind
	X, Y     int
	W, H     int
	Quantity int
}
