// Package effects animates a logical strip over time. Effects only
// produce color values; they never touch hardware. The caller owns the
// loop: it calls NextStep, transmits the strip, and sleeps the returned
// duration.
package effects

import (
	"time"

	"github.com/parkero/bl602-ws2811/ws28xx"
)

// Effect is one animation. Start captures whatever starting state the
// effect needs; NextStep advances the strip to its state for now and
// returns how long the caller should wait before the next step, or 0 when
// the effect has finished.
type Effect interface {
	Start(ls *ws28xx.LogicalStrip, now time.Time)
	NextStep(ls *ws28xx.LogicalStrip, now time.Time) time.Duration
	Name() string
}

// Fade interpolates the whole strip from its current colors to one
// destination color over a fixed duration.
type Fade struct {
	fadeTime time.Duration
	dest     ws28xx.Color
	startPix []ws28xx.Color
	start    time.Time
}

func NewFade(fadeTime time.Duration, dest ws28xx.Color) *Fade {
	return &Fade{fadeTime: fadeTime, dest: dest}
}

func (f *Fade) Name() string {
	return "fade"
}

func (f *Fade) Start(ls *ws28xx.LogicalStrip, now time.Time) {
	f.startPix = make([]ws28xx.Color, ls.NumLEDs())
	for i := range f.startPix {
		f.startPix[i] = ls.ColorAt(i)
	}
	f.start = now
}

func (f *Fade) NextStep(ls *ws28xx.LogicalStrip, now time.Time) time.Duration {
	td := now.Sub(f.start)
	if td >= f.fadeTime {
		ls.Fill(f.dest)
		return 0
	}
	// Interpolate in nanoseconds; a uint8 channel can't outrun int64.
	for i := range f.startPix {
		ls.SetColorAt(i, ws28xx.Lerp(int(td), 0, int(f.fadeTime), f.startPix[i], f.dest))
	}
	// Step often enough that even a full 0..255 sweep moves one level
	// per step.
	step := f.fadeTime / 255
	if step < time.Millisecond {
		step = time.Millisecond
	}
	return step
}

// Wipe walks a single lit pixel from one end of the strip to the other on
// a background color, one LED per step.
type Wipe struct {
	color   ws28xx.Color
	bg      ws28xx.Color
	hold    time.Duration
	forward bool
	pos     int
}

func NewWipe(color, bg ws28xx.Color, hold time.Duration, forward bool) *Wipe {
	return &Wipe{color: color, bg: bg, hold: hold, forward: forward}
}

func (w *Wipe) Name() string {
	return "wipe"
}

func (w *Wipe) Start(ls *ws28xx.LogicalStrip, now time.Time) {
	if w.forward {
		w.pos = 0
	} else {
		w.pos = ls.NumLEDs() - 1
	}
}

func (w *Wipe) NextStep(ls *ws28xx.LogicalStrip, now time.Time) time.Duration {
	if w.pos < 0 || w.pos >= ls.NumLEDs() {
		return 0
	}
	ls.Fill(w.bg)
	ls.SetColorAt(w.pos, w.color)
	if w.forward {
		w.pos++
	} else {
		w.pos--
	}
	return w.hold
}

// Cycle fades the whole strip around a ring of colors forever, segDur per
// leg. NextStep never returns 0; stop it by abandoning the loop.
type Cycle struct {
	ring   []ws28xx.Color
	segDur time.Duration
	start  time.Time
}

func NewCycle(ring []ws28xx.Color, segDur time.Duration) *Cycle {
	return &Cycle{ring: ring, segDur: segDur}
}

func (c *Cycle) Name() string {
	return "cycle"
}

func (c *Cycle) Start(ls *ws28xx.LogicalStrip, now time.Time) {
	c.start = now
}

func (c *Cycle) NextStep(ls *ws28xx.LogicalStrip, now time.Time) time.Duration {
	elapsed := now.Sub(c.start)
	leg := int(elapsed/c.segDur) % len(c.ring)
	within := elapsed % c.segDur
	from := c.ring[leg]
	to := c.ring[(leg+1)%len(c.ring)]
	ls.Fill(ws28xx.Lerp(int(within), 0, int(c.segDur), from, to))
	step := c.segDur / 255
	if step < time.Millisecond {
		step = time.Millisecond
	}
	return step
}
