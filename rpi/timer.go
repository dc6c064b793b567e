package rpi

import (
	"fmt"
	"log"
	"time"
	"unsafe"
)

// ARM timer register block, BCM2835 datasheet p196. This is an SP804
// derivative: a down-counter that reloads from the load register and
// latches a raw interrupt flag each time it hits zero. We never route the
// interrupt anywhere; the flag is polled and cleared by hand.
type armTimerT struct {
	load    uint32 // value the counter reloads from
	value   uint32 // current counter value (read-only)
	control uint32
	irqClr  uint32 // write-only, any value clears the flag
	rawIRQ  uint32 // bit 0: match happened
	mskIRQ  uint32
	reload  uint32 // copy of load, written without forcing a reload
	prediv  uint32 // timer clock = APB clock / (prediv + 1)
	freeCnt uint32 // free-running counter, unused here
}

const (
	ARM_TIMER_OFFSET = 0xb400 // registers start 0x400 into the 0xb000 block

	timerCtrl32Bit   = 1 << 1 // 32-bit counter instead of 16
	timerCtrlIRQEn   = 1 << 5
	timerCtrlEnable  = 1 << 7
	timerRawIRQMatch = 1 << 0
)

func (rp *RPi) initTimer() error {
	var (
		bufOffs uintptr
		err     error
	)
	rp.timerBuf, bufOffs, err = rp.mapMem(ARM_TIMER_OFFSET+rp.hw.periphBase, int(unsafe.Sizeof(armTimerT{})))
	if err != nil {
		return fmt.Errorf("couldn't map armTimerT at %08X: %v", ARM_TIMER_OFFSET+rp.hw.periphBase, err)
	}
	rp.timer = (*armTimerT)(unsafe.Pointer(&rp.timerBuf[bufOffs]))

	// The timer counts APB (core) clock cycles and the core clock isn't
	// the same on every board or firmware config, so ask the firmware.
	// Pin core_freq in config.txt if the governor scales it at runtime.
	rp.coreHz, err = rp.coreClockHz()
	if err != nil {
		return fmt.Errorf("couldn't query core clock: %v", err)
	}
	log.Printf("ARM timer clocked from core at %d Hz\n", rp.coreHz)
	return nil
}

// timerTicks converts a period to timer counts at the given clock,
// rounding to nearest and never below 1.
func timerTicks(period time.Duration, hz uint32) uint32 {
	t := (uint64(period.Nanoseconds())*uint64(hz) + 500000000) / 1000000000
	if t < 1 {
		t = 1
	}
	return uint32(t)
}

// Arm configures the timer to raise its match flag every period, counting
// from a full reload. Any previous configuration is thrown away first, so
// repeated calls can't drift and leftover state from another user of the
// timer can't skew the cadence. The IRQ-enable bit is set to match the
// hardware's documented periodic mode, but no handler is installed; the
// transmit path only ever polls rawIRQ.
func (rp *RPi) Arm(period time.Duration) {
	ticks := timerTicks(period, rp.coreHz)
	rp.timer.control = 0 // stop while reconfiguring
	rp.timer.irqClr = 1
	rp.timer.prediv = 0 // run at full core clock for resolution
	rp.timer.load = ticks
	rp.timer.reload = ticks
	rp.timer.control = timerCtrl32Bit | timerCtrlIRQEn | timerCtrlEnable
}

// WaitTick spins on the raw match flag until the next period boundary,
// then consumes it. This fully occupies the CPU on purpose: the WS28xx
// tolerances leave no room for a scheduler wakeup.
func (rp *RPi) WaitTick() {
	for rp.timer.rawIRQ&timerRawIRQMatch == 0 {
	}
	rp.timer.irqClr = 1
}
