// Package ws28xx turns a buffer of colors into the WS28xx family's
// single-wire pulse protocol, paced by a hardware timer and driven through
// plain digital outputs. No PWM or DMA support is needed from the platform.
package ws28xx

import (
	"github.com/parkero/bl602-ws2811/pins"
)

// PhysicalStrip is the fixed configuration of one independently wired LED
// chain: which output line drives it, how many LEDs it has, whether its
// wiring runs opposite to the logical addressing, and the channel order
// its chips expect. Built once at startup, never mutated.
type PhysicalStrip struct {
	Line     uint8
	LedCount int
	Reversed bool
	Order    ColorOrder
	Timings  StripTimings
}

// EncodeToBytes serializes colors into dst in this strip's channel order,
// three bytes per LED, and returns the number of bytes written. The colors
// must already be in wire order; callers decide forward versus reversed.
// dst must have room for 3×len(colors) bytes — it's sized for the largest
// strip in the system, so overrunning it is a configuration bug and panics.
func (ps *PhysicalStrip) EncodeToBytes(dst []byte, colors []Color) int {
	offs := ps.Order.Offsets()
	for i, c := range colors {
		base := i * 3
		dst[base+offs[0]] = c.R
		dst[base+offs[1]] = c.G
		dst[base+offs[2]] = c.B
	}
	return len(colors) * 3
}

// encodeReversed is EncodeToBytes walking colors back to front, for strips
// wired upside down relative to the logical index space.
func (ps *PhysicalStrip) encodeReversed(dst []byte, colors []Color) int {
	offs := ps.Order.Offsets()
	n := len(colors)
	for i := 0; i < n; i++ {
		c := colors[n-1-i]
		base := i * 3
		dst[base+offs[0]] = c.R
		dst[base+offs[1]] = c.G
		dst[base+offs[2]] = c.B
	}
	return n * 3
}

// Transmit clocks data out on this strip's line, MSB-first within each
// byte. The shared timer is re-armed on every call so a previous user of
// the hardware timer can't skew the bit clock. The line is first held low
// for ResetTicks so the chips latch any previous frame, then each bit
// takes exactly three ticks: high-high-low for a 1, high-low-low for a 0.
// Transmit returns only when the whole frame is on the wire; the calling
// thread spins in WaitTick for the duration.
func (ps *PhysicalStrip) Transmit(pc *pins.PinControl, data []byte) {
	pc.StartPeriodic(ps.Timings.TickPeriod())

	pc.SetLineLow(ps.Line)
	for i := 0; i < ResetTicks; i++ {
		pc.WaitTick()
	}

	for _, b := range data {
		for bit := 7; bit >= 0; bit-- {
			if b&(1<<uint(bit)) != 0 {
				// High for two thirds of the cycle.
				pc.SetLineHigh(ps.Line)
				pc.WaitTick()
				pc.WaitTick()
				pc.SetLineLow(ps.Line)
				pc.WaitTick()
			} else {
				// High for one third of the cycle.
				pc.SetLineHigh(ps.Line)
				pc.WaitTick()
				pc.SetLineLow(ps.Line)
				pc.WaitTick()
				pc.WaitTick()
			}
		}
	}
}
