package timing

import (
	"sync"
	"time"
)

// Phase names one timed step of an invocation.
type Phase string

const (
	PhaseLoad    Phase = "load"
	PhaseCommand Phase = "command"
	PhaseRequest Phase = "request"
	PhaseSave    Phase = "save"
)

// Timer tracks elapsed time and named phases of one invocation
type Timer struct {
	now         func() time.Time
	start       time.Time
	phaseStarts map[Phase]time.Time
	phases      map[Phase]time.Duration
	mu          sync.Mutex
}

// New creates a new Timer with the current time as the start point
func New() *Timer {
	return newWithClock(time.Now)
}

func newWithClock(now func() time.Time) *Timer {
	return &Timer{
		now:         now,
		start:       now(),
		phaseStarts: make(map[Phase]time.Time),
		phases:      make(map[Phase]time.Duration),
	}
}

// Elapsed returns the time since the timer was created
func (t *Timer) Elapsed() time.Duration {
	return t.now().Sub(t.start)
}

// Start begins timing a phase. Starting a running phase restarts it.
func (t *Timer) Start(p Phase) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.phaseStarts[p] = t.now()
}

// End stops a phase and returns its duration. Ending a phase that was never
// started returns 0 and records nothing.
func (t *Timer) End(p Phase) time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()

	start, ok := t.phaseStarts[p]
	if !ok {
		return 0
	}

	d := t.now().Sub(start)
	t.phases[p] = d
	delete(t.phaseStarts, p)
	return d
}

// Track times fn as phase p.
func (t *Timer) Track(p Phase, fn func() error) error {
	t.Start(p)
	defer t.End(p)
	return fn()
}

// Millis returns recorded phase durations in milliseconds, keyed the way
// they are written to the debug log ("load_ms", "request_ms", ...), plus
// "total_ms".
func (t *Timer) Millis() map[string]int64 {
	t.mu.Lock()
	defer t.mu.Unlock()

	result := make(map[string]int64, len(t.phases)+1)
	for p, d := range t.phases {
		result[string(p)+"_ms"] = d.Milliseconds()
	}
	result["total_ms"] = t.now().Sub(t.start).Milliseconds()
	return result
}
