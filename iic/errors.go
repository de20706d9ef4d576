package iic

import (
	"errors"
	"fmt"
)

// ErrTimeout is matched by every TimeoutError via errors.Is.
var ErrTimeout = errors.New("controller did not respond")

// ErrPageBoundary is returned when a page write would wrap inside the device
// page buffer.
var ErrPageBoundary = errors.New("write crosses a page boundary")

// TimeoutError reports a status wait that exhausted its attempts.
type TimeoutError struct {
	// Op is the transaction that was running ("write byte", "read byte", "write page")
	Op string

	// State is where the transaction was when the wait gave up
	State State

	// Slave is the slave address byte of the transaction
	Slave byte

	// Attempts is the number of status reads performed
	Attempts int

	// Status is the last status register value read
	Status byte
}

func (e *TimeoutError) Error() string {
	op := e.Op
	if op == "" {
		op = "poll"
	}
	return fmt.Sprintf("%s timed out in %s (slave 0x%02X): status 0x%02X after %d attempts",
		op, e.State, e.Slave, e.Status, e.Attempts)
}

// Is reports whether target is ErrTimeout.
func (e *TimeoutError) Is(target error) bool {
	return target == ErrTimeout
}

// IsTimeout returns true if err is or wraps a TimeoutError.
func IsTimeout(err error) bool {
	return errors.Is(err, ErrTimeout)
}
