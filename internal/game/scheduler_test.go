package game

import (
	"context"
	"sync/atomic"
	"testing"
	"time"
)

func TestStepScheduler_RunsUntilTaskStops(t *testing.T) {
	s := NewStepScheduler(50 * time.Millisecond)
	calls := 0
	s.Start(func() bool {
		calls++
		return calls < 3
	})
	if !s.Running() {
		t.Fatal("expected armed after Start")
	}
	if calls != 0 {
		t.Fatal("Start ran the task synchronously")
	}
	if n := s.RunUntilIdle(10); n != 3 {
		t.Errorf("ran %d ticks, want 3", n)
	}
	if s.Running() {
		t.Error("still armed after task returned false")
	}
	if s.Step() {
		t.Error("Step ran with no task armed")
	}
}

func TestStepScheduler_AdvanceAccumulates(t *testing.T) {
	s := NewStepScheduler(50 * time.Millisecond)
	calls := 0
	s.Start(func() bool { calls++; return true })

	if n := s.Advance(30 * time.Millisecond); n != 0 {
		t.Fatalf("ticked %d before a full interval", n)
	}
	if n := s.Advance(30 * time.Millisecond); n != 1 {
		t.Fatalf("expected 1 tick at 60ms, got %d", n)
	}
	if n := s.Advance(100 * time.Millisecond); n != 2 {
		t.Fatalf("expected 2 ticks for 100ms (+10ms carried), got %d", n)
	}
	if calls != 3 || s.Steps() != 3 {
		t.Errorf("calls=%d steps=%d, want 3", calls, s.Steps())
	}
}

func TestStepScheduler_RestartDuringFinalTick(t *testing.T) {
	s := NewStepScheduler(time.Millisecond)
	var second bool
	s.Start(func() bool {
		// Re-arm from inside the last tick; the new task must survive.
		s.Start(func() bool { second = true; return false })
		return false
	})
	s.Step()
	if !s.Running() {
		t.Fatal("re-armed task was dropped")
	}
	s.Step()
	if !second {
		t.Error("re-armed task never ran")
	}
	if s.Starts() != 2 {
		t.Errorf("starts = %d, want 2", s.Starts())
	}
}

func TestTimerScheduler_StopsWhenTaskDone(t *testing.T) {
	s := NewTimerScheduler(context.Background(), time.Millisecond)
	var calls atomic.Int32
	s.Start(func() bool { return calls.Add(1) < 5 })
	s.Wait()
	if got := calls.Load(); got != 5 {
		t.Errorf("calls = %d, want 5", got)
	}
}

func TestTimerScheduler_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	s := NewTimerScheduler(ctx, time.Millisecond)
	var calls atomic.Int32
	s.Start(func() bool { calls.Add(1); return true })
	time.Sleep(10 * time.Millisecond)
	cancel()
	s.Wait()
	after := calls.Load()
	time.Sleep(5 * time.Millisecond)
	if calls.Load() != after {
		t.Error("task ran after cancel")
	}
}

func TestTimerScheduler_DrivesArenaFade(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sched := NewTimerScheduler(ctx, time.Millisecond)
	var redraws atomic.Int32
	a := NewArena(
		WithScheduler(sched),
		WithRedraw(func() { redraws.Add(1) }),
	)
	_, _ = a.Spawn(Knight, 0, 0)
	vid, _ := a.Spawn(Villager, 10, 0)

	for i := 0; i < 4; i++ {
		a.AttackKind(Knight)
	}
	sched.Wait()

	if _, ok := a.Unit(vid); ok {
		t.Fatal("villager not removed by the timer-driven fade")
	}
	if a.Kills(Villager) != 1 {
		t.Errorf("villager kills = %d, want 1", a.Kills(Villager))
	}
	if a.Fading() {
		t.Error("fading flag left set")
	}
	if redraws.Load() == 0 {
		t.Error("redraw hook never ran")
	}
}
