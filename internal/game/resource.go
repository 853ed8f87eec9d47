package game

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/google/uuid"
)

// resourceSize is the fixed extent of a resource stack on the field.
const resourceSize = 20

// ResourceKind is the type of a collectible stack.
type ResourceKind int

const (
	Food ResourceKind = iota
	Gold
	Wood

	resourceKindCount
)

// AllResourceKinds lists every resource kind in display order.
var AllResourceKinds = [resourceKindCount]ResourceKind{Food, Gold, Wood}

func (k ResourceKind) String() string {
	switch k {
	case Food:
		return "Food"
	case Gold:
		return "Gold"
	case Wood:
		return "Wood"
	default:
		return "unknown"
	}
}

// Valid reports whether k is one of the known resource kinds.
func (k ResourceKind) Valid() bool {
	return k >= 0 && k < resourceKindCount
}

// Color is the fallback fill used when no resource sprite is available.
func (k ResourceKind) Color() color.RGBA {
	switch k {
	case Food:
		return color.RGBA{R: 255, G: 69, B: 0, A: 255}
	case Gold:
		return color.RGBA{R: 255, G: 215, B: 0, A: 255}
	case Wood:
		return color.RGBA{R: 139, G: 69, B: 19, A: 255}
	default:
		return color.RGBA{R: 128, G: 128, B: 128, A: 255}
	}
}

// ParseResourceKind maps a case-insensitive name to a ResourceKind.
func ParseResourceKind(s string) (ResourceKind, error) {
	for _, k := range AllResourceKinds {
		if strings.EqualFold(s, k.String()) {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownResourceKind, s)
}

// ResourceID identifies a spawned resource stack.
type ResourceID uuid.UUID

func (id ResourceID) String() string { return uuid.UUID(id).String() }

// Resource is a collectible stack. It never changes after spawn.
type Resource struct {
	id       ResourceID
	kind     ResourceKind
	quantity int
	x, y     int
}

// NewResource creates a stack of kind k holding quantity units at (x, y).
func NewResource(k ResourceKind, quantity, x, y int) *Resource {
	return &Resource{
		id:       ResourceID(uuid.New()),
		kind:     k,
		quantity: quantity,
		x:        x,
		y:        y,
	}
}

func (r *Resource) ID() ResourceID { return r.id }
func (r *Resource) Kind() ResourceKind { return r.kind }
func (r *Resource) Quantity() int { return r.quantity }
func (r *Resource) Position() (int, int) { return r.x, r.y }

// Center returns the stack centre in field pixels.
func (r *Resource) Center() (int, int) {
	return r.x + resourceSize/2, r.y + resourceSize/2
}

func (r *Resource) view() ResourceView {
	return ResourceView{
		ID:       r.id,
		Kind:     r.kind,
		X:        r.x,
		Y:        r.y,
		W:        resourceSize,
		H:        resourceSize,
		Quantity: r.quantity,
	}
}
