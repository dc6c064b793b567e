package rpi

import (
	"errors"
	"fmt"
	"os"
	"path"
	"syscall"
)

// VideoCore mailbox property interface, documented at
// https://github.com/raspberrypi/firmware/wiki/Mailbox-property-interface
// We only need it for one thing: asking the firmware what the core clock
// runs at, since that's what feeds the ARM timer.

const (
	VIDEOCORE_MAJOR_NUM = 100
	VCIO_FILE           = "/dev/vcio"
	MBOX_DEV            = 100 << 20 // Assumes devices have 12-bit major, 20-bit minor numbers
	MBOX_MODE           = 0600

	mboxTagGetClockRate = 0x00030002
	mboxClockIDCore     = 4
)

// mboxOpenTemp creates a temporary device node for ioctl-ing with the
// mailbox, opens it and immediately removes the node once it's open.
func (rp *RPi) mboxOpenTemp() error {
	tf := path.Join(os.TempDir(), fmt.Sprintf("mailbox-%d", os.Getpid()))
	err := os.Remove(tf)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("couldn't remove temp mbox: %v", err)
	}
	err = syscall.Mknod(tf, syscall.S_IFCHR|MBOX_MODE, MBOX_DEV)
	if err != nil {
		return fmt.Errorf("couldn't make device node: %v", err)
	}
	f, err := os.OpenFile(tf, os.O_RDONLY, os.ModePerm)
	if err != nil {
		return fmt.Errorf("couldn't open temp mbox: %v", err)
	}
	err = os.Remove(tf)
	if err != nil {
		f.Close() // Ignore error
		return fmt.Errorf("couldn't remove temp mbox: %v", err)
	}
	rp.mbox = f
	return nil
}

// mboxOpen opens /dev/vcio for ioctl-ing with the mailbox, falling back to
// a temporary node where /dev/vcio doesn't exist.
func (rp *RPi) mboxOpen() error {
	var err error
	rp.mbox, err = os.OpenFile(VCIO_FILE, os.O_RDONLY, os.ModePerm)
	if errors.Is(err, os.ErrNotExist) {
		err = rp.mboxOpenTemp()
	}
	if err != nil {
		return fmt.Errorf("couldn't open mbox: %v", err)
	}
	return nil
}

// mboxProperty uses ioctl to send messages via the mailbox
func (rp *RPi) mboxProperty(buf []uint32) error {
	if rp.mbox == nil {
		return errors.New("mailbox not open")
	}
	mboxProperty := iowr(VIDEOCORE_MAJOR_NUM, 0, uintptr(0))
	err := ioctlArrUint32(rp.mbox.Fd(), mboxProperty, buf)
	if err != nil {
		return fmt.Errorf("failed ioctl mbox property: %v", err)
	}
	return nil
}

// coreClockHz asks the firmware for the current core (VPU/APB) clock rate.
func (rp *RPi) coreClockHz() (uint32, error) {
	i := uint32(0)
	p := make([]uint32, 32)
	p[i] = 0 // size, filled in below
	i++
	p[i] = 0x00000000 // process request
	i++

	p[i] = mboxTagGetClockRate
	i++
	p[i] = 8 // size of the tag value to follow
	i++
	p[i] = 0 // bit 31 cleared, rest is reserved
	i++
	// tag value
	p[i] = mboxClockIDCore
	i++
	p[i] = 0 // rate, filled in by firmware
	i++

	p[i] = 0 // no more tags
	i++
	p[0] = i * 4 // actual size of the message

	if err := rp.mboxProperty(p); err != nil {
		return 0, fmt.Errorf("mboxProperty failed: %v", err)
	}
	if p[4]&0x80000000 == 0 {
		return 0, fmt.Errorf("response tag unset: %v", p[4])
	}
	if p[6] == 0 {
		return 0, errors.New("firmware reported a zero core clock")
	}
	return p[6], nil
}
