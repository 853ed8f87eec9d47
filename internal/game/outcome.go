package game

import (
	"fmt"
	"strings"
)

type Outcome int

const (
	OutcomeContested Outcome = iota
	OutcomeLastKindStanding
	OutcomeWipeout
	OutcomeNoCasualties
)

func (o Outcome) String() string {
	switch o {
	case OutcomeLastKindStanding:
		return "last_kind_standing"
	case OutcomeWipeout:
		return "wipeout"
	case OutcomeNoCasualties:
		return "no_casualties"
	case OutcomeContested:
		return "contested"
	default:
		return "unknown"
	}
}

// OutcomeReason is a skirmish result with the counts it was derived from.
// Dying units are not survivors even while they are still on the field.
type OutcomeReason struct {
	Outcome     Outcome
	Survivors   [kindCount]int
	Kills       [kindCount]int
	TotalKills  int
	Winner      UnitKind // only set for OutcomeLastKindStanding
	Description string
}

// SurvivorsOf returns the surviving count for kind k.
func (r OutcomeReason) SurvivorsOf(k UnitKind) int {
	if !k.Valid() {
		return 0
	}
	return r.Survivors[k]
}

// DetermineOutcome classifies the field. Without factions the closest thing
// to a victory is one kind remaining after the others lost units.
func DetermineOutcome(units []UnitView, sb Scoreboard) OutcomeReason {
	r := OutcomeReason{Kills: sb.Kills, TotalKills: sb.TotalKills}
	for _, v := range units {
		if v.Life == Alive {
			r.Survivors[v.Kind]++
		}
	}

	alive := 0
	var last UnitKind
	for _, k := range AllKinds {
		if r.Survivors[k] > 0 {
			alive++
			last = k
		}
	}

	switch {
	case sb.TotalKills == 0:
		r.Outcome = OutcomeNoCasualties
		r.Description = "no_casualties"
	case alive == 0:
		r.Outcome = OutcomeWipeout
		r.Description = "mutual_annihilation"
	case alive == 1:
		r.Outcome = OutcomeLastKindStanding
		r.Winner = last
		r.Description = strings.ToLower(last.String()) + "_last_standing"
	default:
		r.Outcome = OutcomeContested
		r.Description = fmt.Sprintf("contested_%d_kinds", alive)
	}
	return r
}
