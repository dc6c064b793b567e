package ws28xx

import (
	"fmt"
	"time"
)

// StripTimings describes one chipset's pulse widths: how long the line is
// held high for a 0 bit, for a 1 bit, and the full bit cycle. The transmit
// loop only ever drives the line for one or two thirds of the cycle;
// ZeroHigh and OneHigh document the datasheet values the thirds
// approximate. The third is truncated to whole nanoseconds, which loses at
// most 2ns per tick against the datasheet cycle, well inside the chips'
// ±150ns tolerance.
type StripTimings struct {
	ZeroHigh  time.Duration
	OneHigh   time.Duration
	FullCycle time.Duration
}

// Datasheet profiles. The WS2811 values are for the chip's low-speed mode;
// WS2812/WS2812B run at twice that rate.
var (
	WS2811Timings = StripTimings{
		ZeroHigh:  500 * time.Nanosecond,
		OneHigh:   1200 * time.Nanosecond,
		FullCycle: 2500 * time.Nanosecond,
	}
	WS2812Timings = StripTimings{
		ZeroHigh:  400 * time.Nanosecond,
		OneHigh:   800 * time.Nanosecond,
		FullCycle: 1250 * time.Nanosecond,
	}
)

// StringTimings maps config-file spellings to profiles.
var StringTimings = map[string]StripTimings{
	"ws2811": WS2811Timings,
	"ws2812": WS2812Timings,
}

// ResetTicks is how many third-cycle timer ticks the line is held low
// before data to let the chips latch. 900 ticks is ≥300µs even at WS2812
// rates, comfortably over the ~50µs the datasheets ask for.
const ResetTicks = 900

// TickPeriod is the period the shared timer is armed with: one third of a
// bit cycle.
func (t StripTimings) TickPeriod() time.Duration {
	return t.FullCycle / 3
}

// Validate checks the ordering invariants. Profiles from this package
// always pass; this guards hand-written config values.
func (t StripTimings) Validate() error {
	if t.ZeroHigh <= 0 || t.ZeroHigh >= t.OneHigh || t.OneHigh >= t.FullCycle {
		return fmt.Errorf("timings must satisfy 0 < zero-high (%v) < one-high (%v) < full-cycle (%v)",
			t.ZeroHigh, t.OneHigh, t.FullCycle)
	}
	if t.FullCycle < 3*time.Nanosecond {
		return fmt.Errorf("full cycle %v is too short to split into ticks", t.FullCycle)
	}
	return nil
}
