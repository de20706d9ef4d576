package eeprom

import (
	"fmt"

	"github.com/moffa90/go-iicprog/iic"
)

// RangeError indicates a write range that cannot be placed on the device.
type RangeError struct {
	Range  Range
	Reason string
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("invalid range %s: %s", e.Range, e.Reason)
}

// VerifyError indicates that a read-back after a write returned different data.
type VerifyError struct {
	Address iic.Address
	Wrote   byte
	Read    byte
}

func (e *VerifyError) Error() string {
	return fmt.Sprintf("verify %s: wrote 0x%02X, read back 0x%02X",
		e.Address, e.Wrote, e.Read)
}
