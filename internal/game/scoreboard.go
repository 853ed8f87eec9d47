package game

import (
	"fmt"
	"strings"
)

// Scoreboard is a point-in-time projection of the arena counters.
type Scoreboard struct {
	Kills      [kindCount]int
	TotalKills int
	Stockpile  [resourceKindCount]int
	Units      int
	Resources  int
	Fading     bool
}

// Scoreboard returns the current counters.
func (a *Arena) Scoreboard() Scoreboard {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.scoreboardLocked()
}

func (a *Arena) scoreboardLocked() Scoreboard {
	return Scoreboard{
		Kills:      a.kills,
		TotalKills: a.totalKillsLocked(),
		Stockpile:  a.stockpile,
		Units:      len(a.units),
		Resources:  len(a.resources),
		Fading:     a.fading,
	}
}

// Tally emits an aggregate scoreboard event.
func (a *Arena) Tally() Scoreboard {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.tallyLocked()
}

func (a *Arena) tallyLocked() Scoreboard {
	sb := a.scoreboardLocked()
	a.emit("--", "--", CategoryTally, KeyScoreboard, sb.Compact(), float64(sb.TotalKills))
	return sb
}

// KillsOf returns the kill count for kind k.
func (s Scoreboard) KillsOf(k UnitKind) int {
	if !k.Valid() {
		return 0
	}
	return s.Kills[k]
}

// StockOf returns the stockpile for resource kind k.
func (s Scoreboard) StockOf(k ResourceKind) int {
	if !k.Valid() {
		return 0
	}
	return s.Stockpile[k]
}

// Compact renders the scoreboard on one line for status bars and logs.
//
//	Vil:0 Arc:1 Kni:0 Tot:1 | Food:10 Gold:0 Wood:0 | units:4
func (s Scoreboard) Compact() string {
	return fmt.Sprintf("Vil:%d Arc:%d Kni:%d Tot:%d | Food:%d Gold:%d Wood:%d | units:%d",
		s.Kills[Villager], s.Kills[Archer], s.Kills[Knight], s.TotalKills,
		s.Stockpile[Food], s.Stockpile[Gold], s.Stockpile[Wood], s.Units)
}

// String renders the multi-line kill tally.
func (s Scoreboard) String() string {
	var sb strings.Builder
	sb.WriteString("=== KILL TALLY ===\n")
	for _, k := range AllKinds {
		fmt.Fprintf(&sb, "%-9s %d\n", k.String()+":", s.Kills[k])
	}
	fmt.Fprintf(&sb, "%-9s %d\n", "Total:", s.TotalKills)
	sb.WriteString("=== STOCKPILE ===\n")
	for _, k := range AllResourceKinds {
		fmt.Fprintf(&sb, "%-9s %d\n", k.String()+":", s.Stockpile[k])
	}
	fmt.Fprintf(&sb, "units=%d resources=%d fading=%t\n", s.Units, s.Resources, s.Fading)
	return sb.String()
}
