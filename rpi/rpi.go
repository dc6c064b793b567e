// Package rpi drives WS28xx strips on Raspberry Pi boards by mapping the
// BCM283x peripheral registers directly: GPIO for the data lines and the
// ARM timer for bit pacing. Requires access to /dev/mem and /dev/vcio, so
// effectively root.
package rpi

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"os"

	mmap "github.com/edsrzf/mmap-go"
)

// RPi owns the mapped register blocks. One instance per process.
type RPi struct {
	hw       *hw
	mbox     *os.File
	gpioBuf  mmap.MMap
	gpio     *gpioT
	timerBuf mmap.MMap
	timer    *armTimerT
	coreHz   uint32
}

// NewRPi detects the board, opens the mailbox and maps the GPIO and ARM
// timer register blocks.
func NewRPi() (*RPi, error) {
	hw, err := detectHardware()
	if err != nil {
		return nil, fmt.Errorf("couldn't detect RPi hardware: %v", err)
	}
	rp := RPi{hw: hw}
	if err := rp.mboxOpen(); err != nil {
		return nil, fmt.Errorf("couldn't open mailbox: %v", err)
	}
	if err := rp.initGPIO(); err != nil {
		return nil, fmt.Errorf("couldn't map GPIO: %v", err)
	}
	if err := rp.initTimer(); err != nil {
		return nil, fmt.Errorf("couldn't map ARM timer: %v", err)
	}
	return &rp, nil
}

// Name returns the detected board name, for logs.
func (rp *RPi) Name() string {
	return rp.hw.name
}

type hw struct {
	hwType     int
	periphBase uintptr
	vcBase     uintptr
	name       string
}

const (
	hwTypeUnknown = iota
	hwTypePi1
	hwTypePi2
	hwTypePi4

	periphBasePi1 = 0x20000000
	periphBasePi2 = 0x3f000000
	periphBasePi4 = 0xfe000000

	vcBasePi1 = 0x40000000
	vcBasePi2 = 0xc0000000

	PAGE_SIZE = 4096
	MEM_FILE  = "/dev/mem"
)

// detectHardware reads the board revision the firmware publishes in the
// device tree. The same 4-byte big-endian code is available on 32-bit
// boards too, so this single path covers everything.
func detectHardware() (*hw, error) {
	f, err := os.Open("/proc/device-tree/system/linux,revision")
	if err != nil {
		return nil, fmt.Errorf("couldn't open linux revision file: %v", err)
	}
	b := make([]byte, 4)
	n, err := f.Read(b)
	f.Close() // Ignore error
	if err != nil {
		return nil, fmt.Errorf("couldn't read revision: %v", err)
	}
	if n != 4 {
		return nil, fmt.Errorf("revision file got %d instead of 4 bytes", n)
	}
	var ver uint32
	if err := binary.Read(bytes.NewReader(b), binary.BigEndian, &ver); err != nil {
		return nil, fmt.Errorf("somehow couldn't convert 4 bytes to a uint32: %v", err)
	}
	return hwFromRevision(ver)
}

// hwFromRevision decodes either the new-style (bit 23 set) or old-style
// revision codes. New-style codes carry the SoC in bits 15:12, which is
// all we need to pick register bases.
func hwFromRevision(ver uint32) (*hw, error) {
	if ver&(1<<23) != 0 {
		soc := (ver >> 12) & 0xf
		switch soc {
		case 0: // BCM2835
			return &hw{hwTypePi1, periphBasePi1, vcBasePi1, "BCM2835 (Pi 1/Zero)"}, nil
		case 1, 2: // BCM2836/2837
			return &hw{hwTypePi2, periphBasePi2, vcBasePi2, "BCM2836/7 (Pi 2/3)"}, nil
		case 3: // BCM2711
			return &hw{hwTypePi4, periphBasePi4, vcBasePi2, "BCM2711 (Pi 4/400)"}, nil
		default:
			return nil, fmt.Errorf("unsupported SoC %d in revision %X", soc, ver)
		}
	}
	// Old-style codes are all BCM2835 boards.
	if ver&0xffff != 0 {
		return &hw{hwTypePi1, periphBasePi1, vcBasePi1, "BCM2835 (old-style revision)"}, nil
	}
	return nil, fmt.Errorf("couldn't identify hardware revision %X", ver)
}

// mapMem opens /dev/mem and maps a physical address into our address
// space. The mapping has to start on a page boundary, so the address is
// rounded down and the page offset is returned alongside the mapping.
func (rp *RPi) mapMem(physAddr uintptr, size int) (mmap.MMap, uintptr, error) {
	f, err := os.OpenFile(MEM_FILE, os.O_RDWR|os.O_SYNC, os.ModePerm)
	if err != nil {
		return nil, 0, fmt.Errorf("couldn't open %s: %v", MEM_FILE, err)
	}

	pagemask := ^uintptr(PAGE_SIZE - 1)
	mapAddr := physAddr & pagemask
	size += int(physAddr - mapAddr)
	mm, err := mmap.MapRegion(f, size, mmap.RDWR, 0, int64(mapAddr))
	if err != nil {
		f.Close() // Ignore error
		return nil, 0, fmt.Errorf("couldn't map region (%v, %v): %v", physAddr, size, err)
	}
	f.Close() // Ignore error

	return mm, physAddr & (PAGE_SIZE - 1), nil
}

// Close unmaps the register blocks and closes the mailbox.
func (rp *RPi) Close() error {
	var err error
	if rp.gpioBuf != nil {
		err = rp.gpioBuf.Unmap()
		rp.gpioBuf = nil
	}
	if rp.timerBuf != nil {
		if te := rp.timerBuf.Unmap(); err == nil {
			err = te
		}
		rp.timerBuf = nil
	}
	if rp.mbox != nil {
		if te := rp.mbox.Close(); err == nil {
			err = te
		}
		rp.mbox = nil
	}
	return err
}
