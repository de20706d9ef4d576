package iic

import (
	"context"
	"fmt"
	"time"
)

// Poller bounds a status busy-wait. The zero value uses DefaultPollAttempts
// and spins without sleeping.
type Poller struct {
	// MaxAttempts is the number of status reads before giving up
	MaxAttempts int

	// Interval is slept between unsuccessful reads (optional)
	Interval time.Duration
}

func (p Poller) attempts() int {
	if p.MaxAttempts <= 0 {
		return DefaultPollAttempts
	}
	return p.MaxAttempts
}

// Wait calls ready until it reports true, the attempts run out, or ctx is done.
// ready returns the status value it observed so a timeout can report it.
// On exhaustion Wait returns a *TimeoutError with Attempts and Status set.
func (p Poller) Wait(ctx context.Context, ready func() (status byte, ok bool)) error {
	max := p.attempts()
	var status byte
	for i := 1; i <= max; i++ {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("poll cancelled: %w", err)
		}

		var ok bool
		status, ok = ready()
		if ok {
			return nil
		}

		if p.Interval > 0 && i < max {
			timer := time.NewTimer(p.Interval)
			select {
			case <-ctx.Done():
				timer.Stop()
				return fmt.Errorf("poll cancelled: %w", ctx.Err())
			case <-timer.C:
			}
		}
	}

	return &TimeoutError{Attempts: max, Status: status}
}
