package cache

import (
	"sync"
	"time"
)

// Scheduler runs deferred tasks. The coordinator never arms bare timers so
// tests can advance work deterministically instead of sleeping.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func())
}

type timerScheduler struct{}

func (timerScheduler) AfterFunc(d time.Duration, fn func()) {
	time.AfterFunc(d, fn)
}

// NewTimerScheduler returns the wall-clock scheduler used in production.
func NewTimerScheduler() Scheduler {
	return timerScheduler{}
}

// ManualScheduler queues tasks until Fire is called. Intended for tests.
type ManualScheduler struct {
	mu    sync.Mutex
	tasks []func()
}

func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{}
}

func (m *ManualScheduler) AfterFunc(_ time.Duration, fn func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tasks = append(m.tasks, fn)
}

// Fire runs the oldest queued task, reporting whether one existed.
func (m *ManualScheduler) Fire() bool {
	m.mu.Lock()
	if len(m.tasks) == 0 {
		m.mu.Unlock()
		return false
	}
	fn := m.tasks[0]
	m.tasks = m.tasks[1:]
	m.mu.Unlock()

	fn()
	return true
}

// FireAll drains the queue, running every task in order, and returns how
// many ran. Tasks scheduled while draining run too.
func (m *ManualScheduler) FireAll() int {
	n := 0
	for m.Fire() {
		n++
	}
	return n
}

// Pending returns the number of queued tasks.
func (m *ManualScheduler) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.tasks)
}
