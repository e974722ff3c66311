package mock

import (
	"sort"
	"time"

	"github.com/fwojciec/pagecopy"
)

var _ pagecopy.Scheduler = (*Scheduler)(nil)

// Scheduler is a manual clock implementing pagecopy.Scheduler.
// Callbacks only run inside Advance, on the caller's goroutine.
type Scheduler struct {
	now    time.Duration
	seq    int
	timers []*Timer
}

// Timer is a callback registered with Scheduler.
type Timer struct {
	at      time.Duration
	seq     int
	fn      func()
	stopped bool
	fired   bool
}

// Stop cancels the timer.
func (t *Timer) Stop() bool {
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

// After registers fn to run once the clock has advanced by d.
func (s *Scheduler) After(d time.Duration, fn func()) pagecopy.Timer {
	s.seq++
	t := &Timer{at: s.now + d, seq: s.seq, fn: fn}
	s.timers = append(s.timers, t)
	return t
}

// Advance moves the clock forward by d, running due callbacks in deadline
// order. Callbacks scheduled while advancing run too if they fall due.
func (s *Scheduler) Advance(d time.Duration) {
	target := s.now + d
	for {
		t := s.next(target)
		if t == nil {
			break
		}
		s.now = t.at
		t.fired = true
		t.fn()
	}
	s.now = target
}

// Pending returns the number of timers that have neither fired nor been
// stopped.
func (s *Scheduler) Pending() int {
	n := 0
	for _, t := range s.timers {
		if !t.stopped && !t.fired {
			n++
		}
	}
	return n
}

func (s *Scheduler) next(target time.Duration) *Timer {
	var due []*Timer
	for _, t := range s.timers {
		if !t.stopped && !t.fired && t.at <= target {
			due = append(due, t)
		}
	}
	if len(due) == 0 {
		return nil
	}
	sort.Slice(due, func(i, j int) bool {
		if due[i].at != due[j].at {
			return due[i].at < due[j].at
		}
		return due[i].seq < due[j].seq
	})
	return due[0]
}
