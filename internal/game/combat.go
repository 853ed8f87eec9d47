package game

import "fmt"

// Hit records one application of damage during an attack pass.
type Hit struct {
	Attacker     UnitID
	AttackerKind UnitKind
	Target       UnitID
	TargetKind   UnitKind
	Damage       int
	Distance     float64
	Range        int
	Killed       bool // this hit moved the target from alive to dying
}

// AttackAll runs an attack pass for every attack-capable unit.
func (a *Arena) AttackAll() []Hit {
	return a.attack(func(*Unit) bool { return true })
}

// AttackKind runs an attack pass for units of kind k. Kinds that cannot
// attack (Villager) produce no hits and leave every unit untouched.
func (a *Arena) AttackKind(k UnitKind) []Hit {
	return a.attack(func(u *Unit) bool { return u.kind == k })
}

// attack toggles each matching attacker and resolves its damage against
// every other unit in range. There are no factions: attackers hurt peers of
// their own kind and each other within the same pass. Death cleanup runs once
// after the whole batch.
func (a *Arena) attack(match func(*Unit) bool) []Hit {
	a.mu.Lock()
	var attackers []*Unit
	for _, u := range a.units {
		if u.traits.CanAttack && match(u) {
			attackers = append(attackers, u)
		}
	}
	if len(attackers) == 0 {
		a.mu.Unlock()
		return nil
	}

	var hits []Hit
	for _, atk := range attackers {
		atk.ToggleAttacking()
		hits = a.resolveDamage(atk, hits)
	}
	a.deathCleanupLocked()
	a.mu.Unlock()

	a.signalRedraw()
	return hits
}

// resolveDamage applies atk's attack to every other unit within its range.
// Callers hold mu.
func (a *Arena) resolveDamage(atk *Unit, hits []Hit) []Hit {
	dmg := atk.traits.Attack
	for _, target := range a.units {
		if target == atk {
			continue
		}
		dist := atk.DistanceTo(target)
		if dist > float64(atk.traits.Range) {
			continue
		}
		killed := target.TakeDamage(dmg)
		hits = append(hits, Hit{
			Attacker:     atk.id,
			AttackerKind: atk.kind,
			Target:       target.id,
			TargetKind:   target.kind,
			Damage:       dmg,
			Distance:     dist,
			Range:        atk.traits.Range,
			Killed:       killed,
		})
		a.emit(atk.label, atk.kind.String(), CategoryAttack, KeyHit,
			fmt.Sprintf("%s dealt %d damage to %s at distance %.1f, range %d",
				atk.kind, dmg, target.kind, dist, atk.traits.Range),
			float64(dmg))
		if killed {
			a.emit(target.label, target.kind.String(), CategoryUnit, KeyDying,
				fmt.Sprintf("%s %s is dying", target.kind, target.label), 0)
		}
	}
	return hits
}
