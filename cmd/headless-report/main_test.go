package main

import (
	"bytes"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/Garsondee/Skirmish/internal/config"
	"github.com/Garsondee/Skirmish/internal/control"
	"github.com/Garsondee/Skirmish/internal/game"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testSetup(t *testing.T) setup {
	t.Helper()
	script, err := control.ParseScript(defaultScript)
	if err != nil {
		t.Fatalf("default script: %v", err)
	}
	return setup{villagers: 4, archers: 3, knights: 3, resources: 6, rounds: 8, script: script}
}

func TestRunSkirmish_Deterministic(t *testing.T) {
	s := testSetup(t)
	a := runSkirmish(1, 7, config.Default(), s, quietLogger())
	b := runSkirmish(1, 7, config.Default(), s, quietLogger())

	if a.scoreboard != b.scoreboard {
		t.Fatalf("same seed diverged:\n%+v\n%+v", a.scoreboard, b.scoreboard)
	}
	if a.hits != b.hits || a.firstHitStep != b.firstHitStep {
		t.Errorf("hits %d/%d first hit %d/%d", a.hits, b.hits, a.firstHitStep, b.firstHitStep)
	}
}

func TestRunSkirmish_Conservation(t *testing.T) {
	s := testSetup(t)
	for seed := int64(1); seed <= 3; seed++ {
		rs := runSkirmish(int(seed), seed, config.Default(), s, quietLogger())
		if rs.spawned != 10 {
			t.Fatalf("seed %d: spawned %d, want 10", seed, rs.spawned)
		}
		if rs.scoreboard.TotalKills+rs.survivors != rs.spawned {
			t.Errorf("seed %d: kills %d + survivors %d != %d",
				seed, rs.scoreboard.TotalKills, rs.survivors, rs.spawned)
		}
		if len(rs.killed) != rs.scoreboard.TotalKills {
			t.Errorf("seed %d: %d eliminated labels for %d kills", seed, len(rs.killed), rs.scoreboard.TotalKills)
		}
		if rs.scoreboard.Fading {
			t.Errorf("seed %d: fade not drained", seed)
		}
		stock := 0
		for _, k := range game.AllResourceKinds {
			stock += rs.scoreboard.StockOf(k)
		}
		if stock != rs.collected {
			t.Errorf("seed %d: stockpile %d != collected %d", seed, stock, rs.collected)
		}
		if rs.steps != s.rounds*len(s.script) {
			t.Errorf("seed %d: steps %d", seed, rs.steps)
		}
	}
}

func TestRunSkirmish_CopyCommandFailsWithoutClipboard(t *testing.T) {
	s := setup{knights: 1, rounds: 2, script: []control.Command{control.CmdCopyReport, control.CmdAttack}}
	rs := runSkirmish(1, 1, config.Default(), s, quietLogger())
	if rs.failed != 2 {
		t.Errorf("failed = %d, want 2", rs.failed)
	}
	if rs.outcome.Outcome != game.OutcomeNoCasualties {
		t.Errorf("outcome = %s", rs.outcome.Outcome)
	}
}

func TestSetupValidate(t *testing.T) {
	if err := testSetup(t).validate(); err != nil {
		t.Fatalf("default setup invalid: %v", err)
	}
	err := setup{villagers: -1, rounds: 0}.validate()
	if err == nil {
		t.Fatal("expected an error")
	}
	for _, want := range []string{"negative", "at least one unit", "-rounds", "-script"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q missing %q", err, want)
		}
	}
}

func TestSetupValidate_NegativeTotal(t *testing.T) {
	s := testSetup(t)
	s.villagers, s.archers, s.knights = -2, 0, 1
	err := s.validate()
	if err == nil {
		t.Fatal("expected an error for a negative unit total")
	}
	for _, want := range []string{"negative", "at least one unit"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q missing %q", err, want)
		}
	}
	if strings.Contains(err.Error(), "-rounds") {
		t.Errorf("valid rounds reported: %q", err)
	}
}

func TestFirstTick(t *testing.T) {
	entries := []game.Event{
		{Tick: 0, Category: game.CategoryAttack, Key: game.KeyHit},
		{Tick: 3, Category: game.CategoryKill, Key: game.KeyEliminated},
		{Tick: 9, Category: game.CategoryKill, Key: game.KeyEliminated},
	}
	if got := firstTick(entries, game.CategoryKill, game.KeyEliminated); got != 3 {
		t.Errorf("firstTick = %d, want 3", got)
	}
	if got := firstTick(entries, game.CategoryMount, game.KeyToggle); got != -1 {
		t.Errorf("missing marker = %d, want -1", got)
	}
}

func TestPrintAggregate(t *testing.T) {
	s := testSetup(t)
	all := []runStats{
		runSkirmish(1, 1, config.Default(), s, quietLogger()),
		runSkirmish(2, 2, config.Default(), s, quietLogger()),
	}
	var buf bytes.Buffer
	printAggregate(&buf, all)
	out := buf.String()
	for _, want := range []string{"=== Aggregate ===", "runs=2", "avg_kills_per_run:", "outcomes: "} {
		if !strings.Contains(out, want) {
			t.Errorf("aggregate missing %q:\n%s", want, out)
		}
	}
	if lines := strings.Count(reportText(all), "\n"); lines != 2 {
		t.Errorf("clipboard report has %d lines, want 2", lines)
	}
}

func TestAvgHelpers(t *testing.T) {
	if avg(5, 0) != 0 || avg(5, 2) != 2.5 {
		t.Error("avg")
	}
	if avgString(nil) != "n/a" || avgString([]int{1, 2}) != "1.5" {
		t.Error("avgString")
	}
	if got := formatCounts(map[string]int{"wipeout": 1, "contested": 2}); got != "contested=2 wipeout=1" {
		t.Errorf("formatCounts = %q", got)
	}
	if joinSet(nil) != "none" {
		t.Error("joinSet empty")
	}
}
