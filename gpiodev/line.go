// Package gpiodev provides output lines over the Linux GPIO character
// device, for boxes where /dev/mem register access is unavailable or
// unwanted. Every set is a syscall, so the timing jitter is far outside
// WS28xx tolerances on most kernels; this backend is for bring-up, wiring
// checks and driving slow indicator outputs, not production strips.
package gpiodev

import (
	"fmt"

	"github.com/warthog618/gpiod"
)

// Chip wraps one gpiochip and hands out output lines on it.
type Chip struct {
	chip *gpiod.Chip
}

// NewChip opens a gpiochip by name, e.g. "gpiochip0".
func NewChip(name string) (*Chip, error) {
	c, err := gpiod.NewChip(name, gpiod.WithConsumer("ws2811"))
	if err != nil {
		return nil, fmt.Errorf("couldn't open %s: %v", name, err)
	}
	return &Chip{chip: c}, nil
}

// OutputLine requests the given offset as an output, initially low.
func (c *Chip) OutputLine(offset int) (*Line, error) {
	l, err := c.chip.RequestLine(offset, gpiod.AsOutput(0))
	if err != nil {
		return nil, fmt.Errorf("couldn't request line %d: %v", offset, err)
	}
	return &Line{line: l}, nil
}

// Close releases the chip. Lines requested from it must be closed first.
func (c *Chip) Close() error {
	return c.chip.Close()
}

// Line is one requested output as a pins.OutputLine. The OutputLine
// contract is infallible, so set errors are dropped the same way an
// unconnected pin swallows writes; an output line that was successfully
// requested doesn't fail sets in practice.
type Line struct {
	line *gpiod.Line
}

func (l *Line) SetHigh() {
	l.line.SetValue(1) // Ignore error
}

func (l *Line) SetLow() {
	l.line.SetValue(0) // Ignore error
}

// Close releases the line back to the kernel.
func (l *Line) Close() error {
	return l.line.Close()
}
