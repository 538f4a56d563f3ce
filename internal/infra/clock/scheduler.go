// Package clock provides the wall-clock Scheduler and a manual one for tests.
package clock

import (
	"sort"
	"sync"
	"time"

	"campusnav/internal/domain/service"
)

type realScheduler struct{}

// NewScheduler returns a Scheduler backed by time.AfterFunc
func NewScheduler() service.Scheduler {
	return realScheduler{}
}

func (realScheduler) AfterFunc(d time.Duration, f func()) func() bool {
	return time.AfterFunc(d, f).Stop
}

// Manual is a Scheduler driven explicitly by Advance. Due callbacks run
// synchronously on the goroutine calling Advance, in due-time order.
type Manual struct {
	mu      sync.Mutex
	now     time.Duration
	seq     int
	pending []*manualTimer
}

type manualTimer struct {
	due     time.Duration
	seq     int
	f       func()
	stopped bool
}

var _ service.Scheduler = (*Manual)(nil)

// NewManual creates a manual scheduler at time zero
func NewManual() *Manual {
	return &Manual{}
}

// AfterFunc implements service.Scheduler
func (m *Manual) AfterFunc(d time.Duration, f func()) func() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.seq++
	timer := &manualTimer{due: m.now + d, seq: m.seq, f: f}
	m.pending = append(m.pending, timer)

	return func() bool {
		m.mu.Lock()
		defer m.mu.Unlock()

		if timer.stopped {
			return false
		}
		timer.stopped = true

		return true
	}
}

// Advance moves time forward by d and fires every callback that became due,
// including ones scheduled by callbacks fired during this call.
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	target := m.now + d
	m.mu.Unlock()

	for {
		timer := m.popDue(target)
		if timer == nil {
			break
		}
		timer.f()
	}

	m.mu.Lock()
	m.now = target
	m.mu.Unlock()
}

func (m *Manual) popDue(target time.Duration) *manualTimer {
	m.mu.Lock()
	defer m.mu.Unlock()

	sort.SliceStable(m.pending, func(i, j int) bool {
		if m.pending[i].due == m.pending[j].due {
			return m.pending[i].seq < m.pending[j].seq
		}

		return m.pending[i].due < m.pending[j].due
	})

	for len(m.pending) > 0 {
		timer := m.pending[0]
		if timer.due > target {
			return nil
		}
		m.pending = m.pending[1:]
		if timer.stopped {
			continue
		}
		timer.stopped = true
		m.now = timer.due

		return timer
	}

	return nil
}

// Pending returns the number of scheduled callbacks that have not fired or been stopped
func (m *Manual) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	var n int
	for _, timer := range m.pending {
		if !timer.stopped {
			n++
		}
	}

	return n
}
