package control

import "github.com/Garsondee/Skirmish/internal/game"

// Filter is the unit-type selection that scopes move and attack commands.
type Filter int

const (
	FilterAll Filter = iota
	FilterVillager
	FilterArcher
	FilterKnight

	filterCount
)

func (f Filter) String() string {
	switch f {
	case FilterAll:
		return "All"
	case FilterVillager:
		return "Villager"
	case FilterArcher:
		return "Archer"
	case FilterKnight:
		return "Knight"
	default:
		return "unknown"
	}
}

// Next returns the following selection: All → Villager → Archer → Knight → All.
func (f Filter) Next() Filter {
	return (f + 1) % filterCount
}

// Kind returns the unit kind selected, or false for All.
func (f Filter) Kind() (game.UnitKind, bool) {
	switch f {
	case FilterVillager:
		return game.Villager, true
	case FilterArcher:
		return game.Archer, true
	case FilterKnight:
		return game.Knight, true
	default:
		return 0, false
	}
}

// CanAttack is false only for the Villager selection.
func (f Filter) CanAttack() bool {
	return f != FilterVillager
}

// CanMount is true for the Knight and All selections.
func (f Filter) CanMount() bool {
	return f == FilterKnight || f == FilterAll
}

// FilterFor returns the selection for kind k.
func FilterFor(k game.UnitKind) Filter {
	switch k {
	case game.Villager:
		return FilterVillager
	case game.Archer:
		return FilterArcher
	case game.Knight:
		return FilterKnight
	default:
		return FilterAll
	}
}
