package mocks

import (
	"sync"
	"time"

	"homestay/shared/clock"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

// Now implements clock.Clock.
func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.now
}

func (f *fakeClock) Set(t time.Time) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.now = t
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.now = f.now.Add(d)
}

type Fake interface {
	clock.Clock
	Set(t time.Time)
	Advance(d time.Duration)
}

func NewClock(start time.Time) Fake {
	return &fakeClock{now: start}
}
