//go:build linux

package iic

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// MMIO is the controller register file mapped from /dev/mem.
type MMIO struct {
	f   *os.File
	mem []byte
	off int
}

// OpenMMIO maps the register window at the physical address base.
// It needs read/write access to /dev/mem.
//
// Example:
//
//	regs, err := iic.OpenMMIO(iic.BaseAddress)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer regs.Close()
func OpenMMIO(base uintptr) (*MMIO, error) {
	f, err := os.OpenFile("/dev/mem", os.O_RDWR|os.O_SYNC, 0)
	if err != nil {
		return nil, fmt.Errorf("open /dev/mem: %w", err)
	}

	page := uintptr(os.Getpagesize())
	aligned := base &^ (page - 1)
	off := int(base - aligned)

	size := int(page)
	if off+RegWindow > size {
		size += int(page)
	}

	mem, err := unix.Mmap(int(f.Fd()), int64(aligned), size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("mmap 0x%X: %w", aligned, err)
	}

	return &MMIO{f: f, mem: mem, off: off}, nil
}

func (m *MMIO) ReadReg(r Reg) byte {
	return m.mem[m.off+int(r)]
}

func (m *MMIO) WriteReg(r Reg, v byte) {
	m.mem[m.off+int(r)] = v
}

// Close unmaps the window and closes /dev/mem.
func (m *MMIO) Close() error {
	err := unix.Munmap(m.mem)
	if cerr := m.f.Close(); err == nil {
		err = cerr
	}
	return err
}
