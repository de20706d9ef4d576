package iic

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestPollerWait(t *testing.T) {
	tests := []struct {
		name      string
		poller    Poller
		readyAt   int
		wantErr   bool
		wantCalls int
	}{
		{name: "ready immediately", poller: Poller{MaxAttempts: 5}, readyAt: 1, wantCalls: 1},
		{name: "ready on last attempt", poller: Poller{MaxAttempts: 5}, readyAt: 5, wantCalls: 5},
		{name: "never ready", poller: Poller{MaxAttempts: 5}, readyAt: 0, wantErr: true, wantCalls: 5},
		{name: "with interval", poller: Poller{MaxAttempts: 3, Interval: time.Microsecond}, readyAt: 3, wantCalls: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			err := tt.poller.Wait(context.Background(), func() (byte, bool) {
				calls++
				return 0x82, calls == tt.readyAt
			})

			if calls != tt.wantCalls {
				t.Errorf("calls = %d, want %d", calls, tt.wantCalls)
			}
			if !tt.wantErr {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}

			var te *TimeoutError
			if !errors.As(err, &te) {
				t.Fatalf("error = %v, want *TimeoutError", err)
			}
			if te.Attempts != tt.wantCalls || te.Status != 0x82 {
				t.Errorf("TimeoutError = %+v", te)
			}
			if !errors.Is(err, ErrTimeout) {
				t.Error("errors.Is(err, ErrTimeout) = false")
			}
		})
	}
}

func TestPollerDefaultAttempts(t *testing.T) {
	calls := 0
	err := Poller{}.Wait(context.Background(), func() (byte, bool) {
		calls++
		return 0, false
	})

	if !IsTimeout(err) {
		t.Fatalf("error = %v, want timeout", err)
	}
	if calls != DefaultPollAttempts {
		t.Errorf("calls = %d, want %d", calls, DefaultPollAttempts)
	}
}

func TestPollerCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Poller{MaxAttempts: 10}.Wait(ctx, func() (byte, bool) {
		t.Fatal("ready called after cancellation")
		return 0, false
	})

	if !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
	if IsTimeout(err) {
		t.Error("cancellation reported as timeout")
	}
}
