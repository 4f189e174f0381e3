package session

import "time"

// Handle is a cancellable scheduled callback. Stop reports whether the
// callback was prevented from running.
type Handle interface {
	Stop() bool
}

// Scheduler schedules single-shot callbacks. The production
// implementation wraps time.AfterFunc; tests substitute a fake clock so
// inactivity behaviour is deterministic.
type Scheduler interface {
	ScheduleOnce(d time.Duration, fn func()) Handle
}

type timerHandle struct {
	t *time.Timer
}

func (h timerHandle) Stop() bool {
	return h.t.Stop()
}

type wallScheduler struct{}

func (wallScheduler) ScheduleOnce(d time.Duration, fn func()) Handle {
	return timerHandle{t: time.AfterFunc(d, fn)}
}

// NewWallScheduler returns a Scheduler backed by the real clock.
func NewWallScheduler() Scheduler {
	return wallScheduler{}
}
