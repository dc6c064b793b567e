package ws28xx

import (
	"github.com/parkero/bl602-ws2811/pins"
)

// LogicalStrip flattens all physical strips into one addressable color
// buffer. Strip i owns the contiguous index range after the strips before
// it, in the order the strips were given, so application code animates a
// single index space and never thinks about wiring.
type LogicalStrip struct {
	colors  []Color
	strips  []PhysicalStrip
	scratch []byte // per-transmit byte buffer, sized for the largest strip
}

// NewLogicalStrip builds the logical strip over the given physical strips.
// The color buffer length is the sum of the strips' LED counts and is
// fixed for the life of the value. The strips slice is referenced, not
// copied; it is static configuration and must not change afterwards.
func NewLogicalStrip(strips []PhysicalStrip) *LogicalStrip {
	total := 0
	maxLeds := 0
	for i := range strips {
		total += strips[i].LedCount
		if strips[i].LedCount > maxLeds {
			maxLeds = strips[i].LedCount
		}
	}
	return &LogicalStrip{
		colors:  make([]Color, total),
		strips:  strips,
		scratch: make([]byte, maxLeds*3),
	}
}

// NumLEDs returns the total LED count across all strips.
func (ls *LogicalStrip) NumLEDs() int {
	return len(ls.colors)
}

// SetColorAt writes one entry of the shared buffer. An index outside
// [0,NumLEDs) is a programming error upstream and panics.
func (ls *LogicalStrip) SetColorAt(i int, c Color) {
	ls.colors[i] = c
}

// ColorAt reads one entry of the shared buffer.
func (ls *LogicalStrip) ColorAt(i int) Color {
	return ls.colors[i]
}

// Fill sets every LED to the same color.
func (ls *LogicalStrip) Fill(c Color) {
	for i := range ls.colors {
		ls.colors[i] = c
	}
}

// TransmitAll sends the buffer to every strip in configured order, one
// strip at a time. Each strip's slice of the buffer is encoded (reversed
// if the strip is wired backwards) into the shared scratch buffer and
// clocked out before the next strip starts, so total frame time is the sum
// of the individual strips'. There is no cross-strip atomicity: if a
// transmit is cut short, earlier strips have already latched new colors.
func (ls *LogicalStrip) TransmitAll(pc *pins.PinControl) {
	start := 0
	for i := range ls.strips {
		strip := &ls.strips[i]
		end := start + strip.LedCount
		colors := ls.colors[start:end]

		var n int
		if strip.Reversed {
			n = strip.encodeReversed(ls.scratch, colors)
		} else {
			n = strip.EncodeToBytes(ls.scratch, colors)
		}
		strip.Transmit(pc, ls.scratch[:n])

		start = end
	}
}
