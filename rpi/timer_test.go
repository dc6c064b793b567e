package rpi

import (
	"testing"
	"time"
)

func TestTimerTicks(t *testing.T) {
	tests := []struct {
		period time.Duration
		hz     uint32
		want   uint32
	}{
		// One WS2812 third at a 250MHz core clock.
		{416 * time.Nanosecond, 250000000, 104},
		// One WS2811 third.
		{833 * time.Nanosecond, 250000000, 208},
		// Pi 4: core clock 500MHz.
		{416 * time.Nanosecond, 500000000, 208},
		// Exact whole microsecond.
		{time.Microsecond, 250000000, 250},
		// Rounds to nearest, not down.
		{415 * time.Nanosecond, 250000000, 104},
		// Never below one tick, no matter how short the period.
		{time.Nanosecond, 1000, 1},
		{0, 250000000, 1},
	}
	for _, test := range tests {
		if got := timerTicks(test.period, test.hz); got != test.want {
			t.Errorf("timerTicks(%v, %d) got: %d, want: %d", test.period, test.hz, got, test.want)
		}
	}
}
