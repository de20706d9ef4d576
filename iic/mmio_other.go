//go:build !linux

package iic

import (
	"errors"
	"runtime"
)

// MMIO is only available on Linux.
type MMIO struct{}

// OpenMMIO always fails on this platform.
func OpenMMIO(base uintptr) (*MMIO, error) {
	return nil, errors.New("memory-mapped registers are not supported on " + runtime.GOOS)
}

func (m *MMIO) ReadReg(r Reg) byte { return 0xFF }

func (m *MMIO) WriteReg(r Reg, v byte) {}

func (m *MMIO) Close() error { return nil }
