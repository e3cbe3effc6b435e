package debugdraw

import (
	"time"
)

// Clock supplies wall time for expirations and frame deltas.
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// FrameTime tracks the delta between consecutive ticks.
type FrameTime struct {
	Time time.Time
	Dt   time.Duration
}

func (t *FrameTime) tick(now time.Time) time.Duration {
	if t.Time.IsZero() {
		t.Time = now
		t.Dt = 0
		return 0
	}
	t.Dt = now.Sub(t.Time)
	t.Time = now
	return t.Dt
}
