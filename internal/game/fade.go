package game

import "fmt"

// DeathCleanup starts the fade run when some unit is dying and no run is
// active. Calling it again while a run is active does nothing.
func (a *Arena) DeathCleanup() {
	a.mu.Lock()
	a.deathCleanupLocked()
	a.mu.Unlock()
}

func (a *Arena) deathCleanupLocked() {
	if a.fading || !a.anyDyingLocked() {
		return
	}
	a.fading = true
	a.fader.Start(a.fadeTick)
}

func (a *Arena) anyDyingLocked() bool {
	for _, u := range a.units {
		if u.life == Dying {
			return true
		}
	}
	return false
}

// fadeTick is the scheduler task: one shared tick for every dying unit.
// It returns false once nothing is left fading, and clears the fading flag
// in the same critical section so a later death always restarts the run.
func (a *Arena) fadeTick() bool {
	a.mu.Lock()
	a.fadeTicks++

	more := false
	for _, u := range a.units {
		if u.life != Dying {
			continue
		}
		if u.ReduceOpacity(a.settings.FadeStep) {
			more = true
		}
	}

	removed := 0
	for id, u := range a.units {
		if !u.Faded() {
			continue
		}
		delete(a.units, id)
		a.kills[u.kind]++
		removed++
		a.emit(u.label, u.kind.String(), CategoryKill, KeyEliminated,
			fmt.Sprintf("%s eliminated", u.kind), float64(a.kills[u.kind]))
		a.tallyLocked()
	}

	if !more {
		a.fading = false
	}
	a.mu.Unlock()

	if removed > 0 || more {
		a.signalRedraw()
	}
	return more
}

// FadeTicks returns how many fade ticks have run since the arena was built.
func (a *Arena) FadeTicks() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.fadeTicks
}
