package game

import (
	"fmt"
	"math"

	"github.com/google/uuid"
)

// opacityEpsilon absorbs float drift so that repeated 0.1 steps land on zero.
const opacityEpsilon = 1e-9

// UnitID identifies a spawned unit. Two spawns never share an ID.
type UnitID uuid.UUID

func newUnitID() UnitID { return UnitID(uuid.New()) }

func (id UnitID) String() string { return uuid.UUID(id).String() }

// AttackState is the attack toggle shown by the aura.
type AttackState int

const (
	Idle AttackState = iota
	Attacking
)

func (s AttackState) String() string {
	if s == Attacking {
		return "attacking"
	}
	return "idle"
}

// LifeState tracks the alive → dying transition. Removal is implicit:
// a removed unit is no longer in the arena.
type LifeState int

const (
	Alive LifeState = iota
	Dying
)

func (s LifeState) String() string {
	if s == Dying {
		return "dying"
	}
	return "alive"
}

// Unit is a combat unit on the field.
type Unit struct {
	id     UnitID
	label  string // e.g. "K3"
	seq    int    // spawn ordinal, used for stable draw order
	kind   UnitKind
	traits Traits

	x, y    int
	health  int
	attack  AttackState
	life    LifeState
	opacity float64
	mounted bool
}

// NewUnit creates a unit of kind k at (x, y) with full health.
// Mountable kinds start mounted.
func NewUnit(k UnitKind, t Traits, x, y int) *Unit {
	return &Unit{
		id:      newUnitID(),
		kind:    k,
		traits:  t,
		x:       x,
		y:       y,
		health:  t.Health,
		opacity: 1.0,
		mounted: t.Mountable,
	}
}

func (u *Unit) ID() UnitID { return u.id }
func (u *Unit) Label() string { return u.label }
func (u *Unit) Kind() UnitKind { return u.kind }
func (u *Unit) Position() (int, int) { return u.x, u.y }
func (u *Unit) Health() int { return u.health }
func (u *Unit) MaxHealth() int { return u.traits.Health }
func (u *Unit) Attack() int { return u.traits.Attack }
func (u *Unit) Range() int { return u.traits.Range }
func (u *Unit) AttackState() AttackState { return u.attack }
func (u *Unit) LifeState() LifeState { return u.life }
func (u *Unit) Opacity() float64 { return u.opacity }
func (u *Unit) Mounted() bool { return u.mounted }
func (u *Unit) CanAttack() bool { return u.traits.CanAttack }

// Speed returns pixels per move for the current mount state.
func (u *Unit) Speed() int {
	if u.traits.Mountable && u.mounted {
		return u.traits.MountedSpeed
	}
	return u.traits.Speed
}

// Move displaces the unit by its speed along one axis and clamps it to the
// field. Dying units are not exempt.
func (u *Unit) Move(d Direction, fieldW, fieldH int) {
	dx, dy := d.delta()
	speed := u.Speed()
	u.x += dx * speed
	u.y += dy * speed
	u.x = clampInt(u.x, 0, fieldW-u.traits.SpriteW)
	u.y = clampInt(u.y, 0, fieldH-u.traits.SpriteH)
}

// ToggleAttacking flips the attack flag. It carries no damage.
func (u *Unit) ToggleAttacking() {
	if u.attack == Attacking {
		u.attack = Idle
	} else {
		u.attack = Attacking
	}
}

// TakeDamage lowers health, never below zero. Reaching zero starts dying.
// It reports whether this call caused the alive → dying transition.
func (u *Unit) TakeDamage(amount int) bool {
	u.health -= amount
	if u.health < 0 {
		u.health = 0
	}
	if u.health == 0 && u.life == Alive {
		u.life = Dying
		return true
	}
	return false
}

// ReduceOpacity fades a dying unit by step and reports whether any opacity remains.
func (u *Unit) ReduceOpacity(step float64) bool {
	u.opacity -= step
	if u.opacity < opacityEpsilon {
		u.opacity = 0
	}
	return u.opacity > 0
}

// Faded reports whether the unit has finished its death fade.
func (u *Unit) Faded() bool {
	return u.life == Dying && u.opacity <= 0
}

// Center returns the sprite centre in field pixels.
func (u *Unit) Center() (int, int) {
	return u.x + u.traits.SpriteW/2, u.y + u.traits.SpriteH/2
}

// DistanceTo is the Euclidean distance between sprite centres.
func (u *Unit) DistanceTo(o *Unit) float64 {
	ax, ay := u.Center()
	bx, by := o.Center()
	return distance(ax, ay, bx, by)
}

// InRange reports whether o lies within u's attack range.
func (u *Unit) InRange(o *Unit) bool {
	return u.DistanceTo(o) <= float64(u.traits.Range)
}

// ToggleMounted switches a Knight between mounted and dismounted.
func (u *Unit) ToggleMounted() error {
	if !u.traits.Mountable {
		return fmt.Errorf("%s %s: %w", u.kind, u.label, ErrNotMountable)
	}
	u.mounted = !u.mounted
	return nil
}

func (u *Unit) view() UnitView {
	return UnitView{
		ID:        u.id,
		Label:     u.label,
		Kind:      u.kind,
		X:         u.x,
		Y:         u.y,
		W:         u.traits.SpriteW,
		H:         u.traits.SpriteH,
		Health:    u.health,
		MaxHealth: u.traits.Health,
		Attack:    u.traits.Attack,
		State:     u.attack,
		Life:      u.life,
		Opacity:   u.opacity,
		Range:     u.traits.Range,
		Aura:      u.traits.Aura,
		Mounted:   u.mounted,
	}
}

func distance(ax, ay, bx, by int) float64 {
	dx := float64(ax - bx)
	dy := float64(ay - by)
	return math.Sqrt(dx*dx + dy*dy)
}

// clampInt pins v into [lo, hi]; when hi < lo the field is narrower than the
// sprite and the unit is pinned to lo.
func clampInt(v, lo, hi int) int {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}
