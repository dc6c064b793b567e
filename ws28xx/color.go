package ws28xx

import (
	"fmt"
)

// Color is one LED's worth of 8-bit channel intensities. The zero value is
// off. Colors are replaced wholesale, never mutated in place.
type Color struct {
	R uint8
	G uint8
	B uint8
}

func (c Color) String() string {
	return fmt.Sprintf("%02x%02x%02x", c.R, c.G, c.B)
}

var (
	Off    = Color{}
	Red    = Color{R: 255}
	Green  = Color{G: 255}
	Blue   = Color{B: 255}
	Yellow = Color{R: 255, G: 255}
	White  = Color{R: 255, G: 255, B: 255}
)

// Lerp maps v from [inMin,inMax] onto the line between colors a and b,
// interpolating each channel independently. v is clamped to the input
// range, so callers can feed a running counter without bounds fiddling.
func Lerp(v, inMin, inMax int, a, b Color) Color {
	if inMax == inMin {
		return b
	}
	if v < inMin {
		v = inMin
	}
	if v > inMax {
		v = inMax
	}
	return Color{
		R: lerpChan(v, inMin, inMax, a.R, b.R),
		G: lerpChan(v, inMin, inMax, a.G, b.G),
		B: lerpChan(v, inMin, inMax, a.B, b.B),
	}
}

func lerpChan(v, inMin, inMax int, a, b uint8) uint8 {
	// Rounded integer interpolation, no float drift over long fades.
	span := inMax - inMin
	d := (int(b) - int(a)) * (v - inMin)
	if d >= 0 {
		return uint8(int(a) + (d+span/2)/span)
	}
	return uint8(int(a) + (d-span/2)/span)
}
