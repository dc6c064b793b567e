package pins

import (
	"testing"
	"time"
)

type fakeLine struct {
	highs int
	lows  int
}

func (l *fakeLine) SetHigh() { l.highs++ }
func (l *fakeLine) SetLow()  { l.lows++ }

type fakeTimer struct {
	armed time.Duration
	ticks int
}

func (t *fakeTimer) Arm(period time.Duration) { t.armed = period }
func (t *fakeTimer) WaitTick()                { t.ticks++ }

func TestSetLineDispatch(t *testing.T) {
	l0 := &fakeLine{}
	l1 := &fakeLine{}
	pc := NewPinControl(&fakeTimer{}, []OutputLine{l0, l1})

	pc.SetLineHigh(1)
	pc.SetLineHigh(1)
	pc.SetLineLow(0)

	if l1.highs != 2 || l1.lows != 0 {
		t.Errorf("line 1 got: %d highs/%d lows, want: 2/0", l1.highs, l1.lows)
	}
	if l0.highs != 0 || l0.lows != 1 {
		t.Errorf("line 0 got: %d highs/%d lows, want: 0/1", l0.highs, l0.lows)
	}
}

func TestNilLinesBecomeNops(t *testing.T) {
	pc := NewPinControl(&fakeTimer{}, []OutputLine{nil, &fakeLine{}})
	// Driving the unconnected line must silently succeed.
	pc.SetLineHigh(0)
	pc.SetLineLow(0)
	if pc.NumLines() != 2 {
		t.Errorf("NumLines got: %d, want: 2", pc.NumLines())
	}
}

func TestTimerDelegation(t *testing.T) {
	ft := &fakeTimer{}
	pc := NewPinControl(ft, nil)
	pc.StartPeriodic(417 * time.Nanosecond)
	pc.WaitTick()
	pc.WaitTick()
	if ft.armed != 417*time.Nanosecond {
		t.Errorf("armed got: %v, want: 417ns", ft.armed)
	}
	if ft.ticks != 2 {
		t.Errorf("ticks got: %d, want: 2", ft.ticks)
	}
}

func TestSpinTimerPaces(t *testing.T) {
	var st SpinTimer
	st.Arm(time.Millisecond)
	start := time.Now()
	for i := 0; i < 5; i++ {
		st.WaitTick()
	}
	if elapsed := time.Since(start); elapsed < 5*time.Millisecond {
		t.Errorf("5 ticks at 1ms took %v, want: >= 5ms", elapsed)
	}
}

func TestSpinTimerRearmResets(t *testing.T) {
	var st SpinTimer
	st.Arm(50 * time.Millisecond)
	st.Arm(time.Millisecond) // re-arm must discard the earlier cadence
	start := time.Now()
	st.WaitTick()
	if elapsed := time.Since(start); elapsed > 40*time.Millisecond {
		t.Errorf("tick after re-arm took %v, want: ~1ms", elapsed)
	}
}
