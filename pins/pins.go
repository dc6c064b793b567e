// Package pins is the seam between the WS28xx transmit engine and the
// hardware. It deliberately exposes only what the bit-timing loop needs: a
// settable digital output per strip and one periodic hardware timer.
package pins

import (
	"time"
)

// OutputLine is a settable digital output. Implementations are assumed
// infallible: a wired push-pull output either works or the whole system is
// broken in ways software can't see. Lines that aren't physically connected
// should be a NopLine, not an error source.
type OutputLine interface {
	SetHigh()
	SetLow()
}

// PeriodicTimer is a free-running hardware comparator that raises a match
// condition every period. WaitTick is a busy-wait poll on the match flag;
// the caller's thread spins until the flag fires and is consumed. There is
// no timeout: a stalled timer hangs the caller.
type PeriodicTimer interface {
	// Arm (re)configures the timer to match every period, counting from
	// zero. It must reset any previous configuration, so repeated calls
	// don't accumulate drift.
	Arm(period time.Duration)
	// WaitTick blocks until the next match and clears it.
	WaitTick()
}

// PinControl groups the periodic timer with the fixed set of output lines
// so the transmit loop deals with one handle instead of two resources. One
// PinControl exists per process; a transmit call borrows it exclusively for
// its whole duration.
type PinControl struct {
	timer PeriodicTimer
	lines []OutputLine
}

// NewPinControl builds the control surface. Nil entries in lines stand for
// unconnected outputs and are replaced with NopLine, so every line id in
// range is always safe to drive.
func NewPinControl(timer PeriodicTimer, lines []OutputLine) *PinControl {
	l := make([]OutputLine, len(lines))
	for i, line := range lines {
		if line == nil {
			l[i] = NopLine{}
		} else {
			l[i] = line
		}
	}
	return &PinControl{timer: timer, lines: l}
}

// NumLines returns how many output lines are addressable.
func (pc *PinControl) NumLines() int {
	return len(pc.lines)
}

// SetLineHigh drives line id high.
func (pc *PinControl) SetLineHigh(id uint8) {
	pc.lines[id].SetHigh()
}

// SetLineLow drives line id low.
func (pc *PinControl) SetLineLow(id uint8) {
	pc.lines[id].SetLow()
}

// StartPeriodic re-arms the shared timer with the given period.
func (pc *PinControl) StartPeriodic(period time.Duration) {
	pc.timer.Arm(period)
}

// WaitTick busy-waits for the next timer match.
func (pc *PinControl) WaitTick() {
	pc.timer.WaitTick()
}

// NopLine is the sink for absent outputs. Sets always succeed silently.
type NopLine struct{}

func (NopLine) SetHigh() {}
func (NopLine) SetLow()  {}
