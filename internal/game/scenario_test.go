package game

import (
	"testing"
)

// dumpLog prints the full event log to t.Log so it appears in `go test -v` output.
func dumpLog(t *testing.T, hs *Harness) {
	t.Helper()
	entries := hs.Log.Entries()
	if len(entries) == 0 {
		t.Log("(no log entries)")
		return
	}
	for _, e := range entries {
		t.Log(e.String())
	}
}

// --- Scenario: Villager cannot attack ---

func TestScenario_VillagerAttackIsNoop(t *testing.T) {
	hs := NewHarness(WithUnit(Villager, 500, 500))

	hits := hs.Arena.AttackAll()
	dumpLog(t, hs)

	if len(hits) != 0 {
		t.Fatalf("expected no hits, got %d", len(hits))
	}
	if n := hs.Arena.UnitCount(); n != 1 {
		t.Fatalf("expected 1 unit, got %d", n)
	}
	v, ok := hs.View("V1")
	if !ok {
		t.Fatal("villager missing")
	}
	if v.Health != 100 {
		t.Errorf("villager health = %d, want 100", v.Health)
	}
	if v.State != Idle {
		t.Errorf("villager state = %s, want idle", v.State)
	}
	if hs.Arena.Fading() {
		t.Error("fade run started with no dying units")
	}
}

// --- Scenario: Archer hits a Knight in range ---

func TestScenario_ArcherHitsKnight(t *testing.T) {
	hs := NewHarness(
		WithUnit(Archer, 100, 100),
		WithUnit(Knight, 100, 110),
	)

	hits := hs.Arena.AttackKind(Archer)
	dumpLog(t, hs)

	if len(hits) != 1 {
		t.Fatalf("expected 1 hit, got %d", len(hits))
	}
	h := hits[0]
	if h.Target != hs.ID("K2") || h.Damage != 20 {
		t.Errorf("unexpected hit %+v", h)
	}
	if h.Distance != 10 {
		t.Errorf("hit distance = %.1f, want 10", h.Distance)
	}

	k, _ := hs.View("K2")
	if k.Health != 130 {
		t.Errorf("knight health = %d, want 130", k.Health)
	}
	a, _ := hs.View("A1")
	if a.Health != 80 {
		t.Errorf("archer health = %d, want 80 (no self damage)", a.Health)
	}
	if a.State != Attacking {
		t.Errorf("archer state = %s, want attacking", a.State)
	}
	if k.State != Idle {
		t.Errorf("knight state = %s, want idle", k.State)
	}
	if !hs.Log.HasEntry(CategoryAttack, KeyHit, "Archer dealt 20 damage to Knight at distance 10.0, range 150") {
		t.Errorf("missing hit event:\n%s", hs.Log.Format())
	}
}

// --- Scenario: Death fade removes the unit on the final tick ---

func TestScenario_DeathFadeTakesTenTicks(t *testing.T) {
	hs := NewHarness(
		WithUnit(Archer, 100, 100),
		WithUnit(Villager, 150, 100),
	)

	// 5 × 20 = 100 villager health.
	for i := 0; i < 5; i++ {
		hs.Arena.AttackKind(Archer)
	}
	v, ok := hs.View("V2")
	if !ok || v.Health != 0 || v.Life != Dying {
		t.Fatalf("villager should be dying at 0 health, got %+v", v)
	}
	if !hs.Arena.Fading() {
		t.Fatal("fade run not started")
	}
	if hs.Sched.Starts() != 1 {
		t.Fatalf("scheduler started %d times, want 1", hs.Sched.Starts())
	}

	for tick := 1; tick <= 9; tick++ {
		hs.Sched.Step()
		if _, ok := hs.View("V2"); !ok {
			t.Fatalf("villager removed early at tick %d", tick)
		}
		if hs.Arena.Kills(Villager) != 0 {
			t.Fatalf("kill counted early at tick %d", tick)
		}
	}
	hs.Sched.Step()
	dumpLog(t, hs)

	if _, ok := hs.View("V2"); ok {
		t.Fatal("villager still present after 10 ticks")
	}
	if got := hs.Arena.Kills(Villager); got != 1 {
		t.Errorf("villager kills = %d, want 1", got)
	}
	if got := hs.Arena.TotalKills(); got != 1 {
		t.Errorf("total kills = %d, want 1", got)
	}
	if hs.Arena.Fading() || hs.Sched.Running() {
		t.Error("fade run still active after the last dying unit was removed")
	}
	if got := hs.Log.Count(CategoryKill, KeyEliminated); got != 1 {
		t.Errorf("eliminated events = %d, want 1", got)
	}

	// Idle ticker: no further ticks run.
	if hs.RunFade(5) != 0 {
		t.Error("scheduler ticked after going idle")
	}
	if hs.Arena.Kills(Villager) != 1 {
		t.Error("kill counter changed after the run ended")
	}
}

// --- Scenario: Villager collects food ---

func TestScenario_VillagerCollectsFood(t *testing.T) {
	hs := NewHarness(
		WithUnit(Villager, 200, 200),
		WithResource(Food, 220, 220),
	)

	got := hs.Arena.CollectNearbyResources()
	dumpLog(t, hs)

	if len(got) != 1 {
		t.Fatalf("expected 1 collection, got %d", len(got))
	}
	if got[0].Kind != Food || got[0].Quantity != 10 {
		t.Errorf("unexpected collection %+v", got[0])
	}
	if hs.Arena.ResourceCount() != 0 {
		t.Error("resource not removed")
	}
	if hs.Arena.Stockpile(Food) != 10 {
		t.Errorf("food stockpile = %d, want 10", hs.Arena.Stockpile(Food))
	}
	if !hs.Log.HasEntry(CategoryResource, KeyCollected, "Villager collected 10 Food") {
		t.Errorf("missing collect event:\n%s", hs.Log.Format())
	}

	// Nothing left: second pass is a no-op.
	if again := hs.Arena.CollectNearbyResources(); len(again) != 0 {
		t.Errorf("second collect returned %d", len(again))
	}
}

// --- Scenario: Two Knights trade blows in one pass ---

func TestScenario_KnightsHitEachOther(t *testing.T) {
	hs := NewHarness(
		WithUnit(Knight, 100, 100),
		WithUnit(Knight, 130, 100),
	)

	hits := hs.Arena.AttackKind(Knight)
	dumpLog(t, hs)

	if len(hits) != 2 {
		t.Fatalf("expected 2 hits, got %d", len(hits))
	}
	for _, label := range []string{"K1", "K2"} {
		v, _ := hs.View(label)
		if v.Health != 125 {
			t.Errorf("%s health = %d, want 125", label, v.Health)
		}
		if v.State != Attacking {
			t.Errorf("%s state = %s, want attacking", label, v.State)
		}
	}
}

// --- Scenario: Mixed melee runs to a stable end ---

func TestScenario_MixedMeleeSettles(t *testing.T) {
	hs := NewHarness(
		WithUnit(Archer, 300, 300),
		WithUnit(Knight, 320, 300),
		WithUnit(Knight, 300, 320),
		WithUnit(Villager, 310, 310),
	)

	for round := 0; round < 20 && hs.Arena.UnitCount() > 1; round++ {
		hs.Arena.AttackAll()
		hs.RunFade(100)
	}
	dumpLog(t, hs)

	sb := hs.Arena.Scoreboard()
	t.Log(sb.String())
	if sb.TotalKills+sb.Units != 4 {
		t.Errorf("kills (%d) + survivors (%d) should equal 4 spawns", sb.TotalKills, sb.Units)
	}
	for _, v := range hs.Arena.Units() {
		if v.Life == Dying {
			t.Errorf("%s left dying after fade drained", v.Label)
		}
	}
}
