package game

import (
	"context"
	"sync"
	"time"
)

// DefaultFadeInterval is the wall-clock spacing between fade ticks.
const DefaultFadeInterval = 50 * time.Millisecond

// Scheduler drives a repeating task. Start begins invoking task once per
// interval until task returns false. Start must not call task synchronously:
// the arena calls Start while holding its lock.
type Scheduler interface {
	Start(task func() bool)
}

// StepScheduler is driven by its caller, one tick per Step or per elapsed
// interval in Advance. It suits single-threaded run loops and tests.
type StepScheduler struct {
	mu       sync.Mutex
	interval time.Duration
	task     func() bool
	gen      int
	accum    time.Duration
	starts   int
	steps    int
}

// NewStepScheduler returns a scheduler that ticks every interval of
// elapsed time passed to Advance.
func NewStepScheduler(interval time.Duration) *StepScheduler {
	if interval <= 0 {
		interval = DefaultFadeInterval
	}
	return &StepScheduler{interval: interval}
}

// Start arms task. A task already armed is replaced.
func (s *StepScheduler) Start(task func() bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.task = task
	s.gen++
	s.accum = 0
	s.starts++
}

// Running reports whether a task is armed.
func (s *StepScheduler) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.task != nil
}

// Starts returns how many times Start has been called.
func (s *StepScheduler) Starts() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.starts
}

// Steps returns how many ticks have run.
func (s *StepScheduler) Steps() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.steps
}

// Step runs one tick. It reports whether a task ran.
func (s *StepScheduler) Step() bool {
	s.mu.Lock()
	task, gen := s.task, s.gen
	s.mu.Unlock()
	if task == nil {
		return false
	}

	more := task()

	s.mu.Lock()
	s.steps++
	// Only disarm if the task was not re-armed while it ran.
	if !more && s.gen == gen {
		s.task = nil
		s.accum = 0
	}
	s.mu.Unlock()
	return true
}

// Advance feeds elapsed time and runs one tick per whole interval.
// It returns the number of ticks run.
func (s *StepScheduler) Advance(d time.Duration) int {
	s.mu.Lock()
	if s.task == nil {
		s.mu.Unlock()
		return 0
	}
	s.accum += d
	due := int(s.accum / s.interval)
	s.accum -= time.Duration(due) * s.interval
	s.mu.Unlock()

	ran := 0
	for i := 0; i < due; i++ {
		if !s.Step() {
			break
		}
		ran++
	}
	return ran
}

// RunUntilIdle steps until no task is armed or maxSteps ticks have run.
func (s *StepScheduler) RunUntilIdle(maxSteps int) int {
	n := 0
	for n < maxSteps && s.Step() {
		n++
	}
	return n
}

// TimerScheduler runs the task on its own goroutine from a time.Ticker.
// Each Start launches an independent run that ends when the task returns
// false or ctx is cancelled.
type TimerScheduler struct {
	ctx      context.Context
	interval time.Duration
	wg       sync.WaitGroup
}

// NewTimerScheduler returns a wall-clock scheduler bound to ctx.
func NewTimerScheduler(ctx context.Context, interval time.Duration) *TimerScheduler {
	if interval <= 0 {
		interval = DefaultFadeInterval
	}
	return &TimerScheduler{ctx: ctx, interval: interval}
}

// Start launches a ticking goroutine for task.
func (s *TimerScheduler) Start(task func() bool) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		t := time.NewTicker(s.interval)
		defer t.Stop()
		for {
			select {
			case <-s.ctx.Done():
				return
			case <-t.C:
				if !task() {
					return
				}
			}
		}
	}()
}

// Wait blocks until every run has finished.
func (s *TimerScheduler) Wait() {
	s.wg.Wait()
}
