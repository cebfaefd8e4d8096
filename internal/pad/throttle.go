package pad

import (
	"context"
	"time"
)

// throttle spaces successive link polls by a minimum interval.
type throttle struct {
	interval time.Duration
	next     time.Time
}

func newThrottle(interval time.Duration) *throttle {
	if interval <= 0 {
		return &throttle{}
	}
	return &throttle{interval: interval}
}

// wait blocks until the next poll is due or ctx is done. It returns false
// when ctx ended first.
func (t *throttle) wait(ctx context.Context) bool {
	if t == nil || t.interval <= 0 {
		return ctx.Err() == nil
	}
	delay := time.Until(t.next)
	if delay <= 0 {
		t.next = time.Now().Add(t.interval)
		return ctx.Err() == nil
	}
	if delay > t.interval {
		delay = t.interval
	}
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		t.next = time.Now().Add(t.interval)
		return true
	}
}
