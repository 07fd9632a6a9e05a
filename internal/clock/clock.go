// Package clock abstracts time so components with scheduled work can be
// driven by a virtual clock in tests.
package clock

import "time"

// Clock provides the current time and timer construction.
type Clock interface {
	Now() time.Time
	NewTimer(d time.Duration) Timer
}

// Timer fires once on its channel after the configured duration.
type Timer interface {
	C() <-chan time.Time
	Stop() bool
}

// New returns a Clock backed by the system clock.
func New() Clock { return systemClock{} }

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

func (systemClock) NewTimer(d time.Duration) Timer {
	return systemTimer{t: time.NewTimer(d)}
}

type systemTimer struct{ t *time.Timer }

func (t systemTimer) C() <-chan time.Time { return t.t.C }
func (t systemTimer) Stop() bool          { return t.t.Stop() }
