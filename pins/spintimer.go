package pins

import (
	"time"
)

// SpinTimer is a PeriodicTimer paced off the OS monotonic clock instead of
// a mapped hardware counter. Tick edges are computed from the armed period
// so the cadence doesn't drift, but each wait still goes through the
// runtime clock, which on a general-purpose kernel carries enough jitter
// that WS28xx tolerances are not guaranteed. Backends with a real
// comparator should provide their own PeriodicTimer; this one serves
// bring-up and hosts without /dev/mem access.
type SpinTimer struct {
	period time.Duration
	next   time.Time
}

func (t *SpinTimer) Arm(period time.Duration) {
	t.period = period
	t.next = time.Now().Add(period)
}

func (t *SpinTimer) WaitTick() {
	for time.Now().Before(t.next) {
	}
	t.next = t.next.Add(t.period)
}
