package game

import (
	"strings"
	"testing"
)

func TestEventLog_FilterAndSince(t *testing.T) {
	l := NewEventLog()
	l.Add(Event{Seq: 1, Unit: "A1", Category: CategoryUnit, Key: KeySpawned, Value: "Archer spawned at (0,0)"})
	l.Add(Event{Seq: 2, Unit: "A1", Category: CategoryAttack, Key: KeyHit, Value: "Archer dealt 20 damage to Knight", NumVal: 20})
	l.Add(Event{Seq: 3, Unit: "K2", Category: CategoryAttack, Key: KeyHit, Value: "Knight dealt 25 damage to Archer", NumVal: 25})

	if l.Len() != 3 {
		t.Fatalf("len = %d, want 3", l.Len())
	}
	if got := l.Count(CategoryAttack, ""); got != 2 {
		t.Errorf("attack events = %d, want 2", got)
	}
	if got := len(l.FilterUnit("A1")); got != 2 {
		t.Errorf("A1 events = %d, want 2", got)
	}
	if e, ok := l.LastOf(CategoryAttack, KeyHit); !ok || e.Unit != "K2" {
		t.Errorf("LastOf = %+v, %t", e, ok)
	}
	if _, ok := l.LastOf(CategoryKill, ""); ok {
		t.Error("LastOf found a kill in a log without one")
	}
	if got := l.Since(1); len(got) != 2 || got[0].Seq != 2 {
		t.Errorf("Since(1) = %+v", got)
	}
	if !l.HasEntry("", "", "25 damage") {
		t.Error("HasEntry missed substring")
	}
	if l.HasEntry(CategoryUnit, "", "damage") {
		t.Error("HasEntry matched wrong category")
	}
}

func TestEventLog_EntriesIsCopy(t *testing.T) {
	l := NewEventLog()
	l.Add(Event{Seq: 1, Value: "x"})
	got := l.Entries()
	got[0].Value = "mutated"
	if l.Entries()[0].Value != "x" {
		t.Error("Entries exposed internal storage")
	}
}

func TestEvent_String(t *testing.T) {
	e := Event{Tick: 12, Unit: "K3", Category: CategoryKill, Key: KeyEliminated, Value: "Knight eliminated"}
	want := "[T=012] K3   kill      eliminated       Knight eliminated"
	if got := e.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	l := NewEventLog()
	l.Add(e)
	if !strings.HasSuffix(l.Format(), "Knight eliminated\n") {
		t.Errorf("Format() = %q", l.Format())
	}
}

func TestArenaEvents_TickStamped(t *testing.T) {
	hs := NewHarness(
		WithUnit(Knight, 0, 0),
		WithUnit(Villager, 10, 0),
	)
	for i := 0; i < 4; i++ {
		hs.Arena.AttackKind(Knight)
	}
	hs.RunFade(20)

	e, ok := hs.Log.LastOf(CategoryKill, KeyEliminated)
	if !ok {
		t.Fatal("no elimination event")
	}
	if e.Tick != 10 || e.Unit != "V2" || e.Value != "Villager eliminated" {
		t.Errorf("unexpected elimination %+v", e)
	}
	if !hs.Log.HasEntry(CategoryUnit, KeyDying, "Villager V2 is dying") {
		t.Error("missing dying event")
	}
	prev := 0
	for _, e := range hs.Log.Entries() {
		if e.Seq <= prev {
			t.Fatalf("seq not increasing: %d after %d", e.Seq, prev)
		}
		prev = e.Seq
	}
}
