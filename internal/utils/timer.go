package utils

import "time"

// Timer measures elapsed wall-clock time between a start and stop event.
// Create one with [NewTimer], which starts the timer immediately. Call
// [Timer.Stop] to capture the elapsed duration, then retrieve it with
// [Timer.GetDuration].
type Timer struct {
	startTime time.Time
	duration  time.Duration
}

// NewTimer creates a new Timer and immediately starts it.
func NewTimer() *Timer {
	return &Timer{startTime: time.Now()}
}

// Start resets the timer's start time to now.
func (t *Timer) Start() {
	t.startTime = time.Now()
}

// Stop records the elapsed time since the last call to [Timer.Start] (or since
// construction via [NewTimer]) and returns it.
func (t *Timer) Stop() time.Duration {
	t.duration = time.Since(t.startTime)
	return t.duration
}

// GetDuration returns the duration captured by the most recent call to
// [Timer.Stop]. If Stop has not been called yet, it returns zero.
func (t *Timer) GetDuration() time.Duration {
	return t.duration
}

// Speedup reports how many times faster current was than baseline. The
// second return value is false when current is zero, in which case the ratio
// is unbounded (a cache hit that completed below clock resolution).
func Speedup(baseline, current time.Duration) (float64, bool) {
	if current <= 0 {
		return 0, false
	}
	return float64(baseline) / float64(current), true
}
