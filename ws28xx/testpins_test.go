package ws28xx

import (
	"fmt"
	"time"

	"github.com/parkero/bl602-ws2811/pins"
)

// The fakes below record every operation the transmit path performs on the
// control surface, so tests can decode the event stream back into wire
// bits and check the tick bookkeeping exactly.

type event struct {
	kind   byte // 'A' arm, 'T' tick, 'H' high, 'L' low
	line   uint8
	period time.Duration
}

type recorder struct {
	events []event
}

type recLine struct {
	id uint8
	r  *recorder
}

func (l *recLine) SetHigh() {
	l.r.events = append(l.r.events, event{kind: 'H', line: l.id})
}

func (l *recLine) SetLow() {
	l.r.events = append(l.r.events, event{kind: 'L', line: l.id})
}

type recTimer struct {
	r *recorder
}

func (t *recTimer) Arm(period time.Duration) {
	t.r.events = append(t.r.events, event{kind: 'A', period: period})
}

func (t *recTimer) WaitTick() {
	t.r.events = append(t.r.events, event{kind: 'T'})
}

func newRecorderPC(numLines int) (*pins.PinControl, *recorder) {
	r := &recorder{}
	lines := make([]pins.OutputLine, numLines)
	for i := range lines {
		lines[i] = &recLine{id: uint8(i), r: r}
	}
	return pins.NewPinControl(&recTimer{r: r}, lines), r
}

// decodeStrip consumes one strip's worth of events starting at offs: the
// arm, the reset hold, then bit groups of exactly three ticks each. It
// returns the decoded bits, the armed period and the offset of the first
// unconsumed event.
func decodeStrip(events []event, offs int, line uint8) ([]byte, time.Duration, int, error) {
	if offs >= len(events) {
		return nil, 0, offs, fmt.Errorf("event %d: expected arm, got end of stream", offs)
	}
	if events[offs].kind != 'A' {
		return nil, 0, offs, fmt.Errorf("event %d: expected arm, got %+v", offs, events[offs])
	}
	period := events[offs].period
	offs++

	if offs >= len(events) || events[offs].kind != 'L' || events[offs].line != line {
		return nil, 0, offs, fmt.Errorf("event %d: expected reset low on line %d", offs, line)
	}
	offs++
	for i := 0; i < ResetTicks; i++ {
		if offs >= len(events) || events[offs].kind != 'T' {
			return nil, 0, offs, fmt.Errorf("event %d: expected reset tick %d", offs, i)
		}
		offs++
	}

	var bits []byte
	for offs < len(events) && events[offs].kind == 'H' {
		if events[offs].line != line {
			return nil, 0, offs, fmt.Errorf("event %d: bit on line %d, want line %d", offs, events[offs].line, line)
		}
		// A bit is H T T L T (one) or H T L T T (zero): three ticks
		// either way.
		if offs+4 >= len(events) {
			return nil, 0, offs, fmt.Errorf("event %d: truncated bit group", offs)
		}
		g := events[offs : offs+5]
		switch {
		case g[1].kind == 'T' && g[2].kind == 'T' && g[3].kind == 'L' && g[3].line == line && g[4].kind == 'T':
			bits = append(bits, 1)
		case g[1].kind == 'T' && g[2].kind == 'L' && g[2].line == line && g[3].kind == 'T' && g[4].kind == 'T':
			bits = append(bits, 0)
		default:
			return nil, 0, offs, fmt.Errorf("event %d: malformed bit group %+v", offs, g)
		}
		offs += 5
	}
	return bits, period, offs, nil
}

func bitsToBytes(bits []byte) []byte {
	b := make([]byte, len(bits)/8)
	for i, bit := range bits {
		if bit != 0 {
			b[i/8] |= 1 << uint(7-i%8)
		}
	}
	return b
}
