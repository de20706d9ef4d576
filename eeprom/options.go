package eeprom

import (
	"time"

	"github.com/moffa90/go-iicprog/iic"
)

// Config holds the programmer configuration.
type Config struct {
	// ProgressCallback is called after every committed page (optional)
	ProgressCallback ProgressCallback

	// Logger is used for logging operations (optional)
	Logger Logger

	// PollAttempts bounds every status wait, ACK polling included
	PollAttempts int

	// PollInterval is slept between unsuccessful status reads
	PollInterval time.Duration

	// Prescale is the clock prescaler programmed by Init
	Prescale uint16

	// VerifyAfterWrite reads back every single-byte write
	VerifyAfterWrite bool
}

// defaultConfig returns the default configuration.
func defaultConfig() Config {
	return Config{
		PollAttempts: iic.DefaultPollAttempts,
		Prescale:     iic.DefaultPrescale,
	}
}

// Option is a functional option for configuring the Programmer.
type Option func(*Config)

// WithProgressCallback sets a callback function to track page write progress.
//
// Example:
//
//	prog := eeprom.New(bus,
//	    eeprom.WithProgressCallback(func(p eeprom.Progress) {
//	        fmt.Printf("%.1f%% complete\n", p.Percentage)
//	    }),
//	)
func WithProgressCallback(callback ProgressCallback) Option {
	return func(c *Config) {
		c.ProgressCallback = callback
	}
}

// WithLogger sets a logger for the programmer operations.
//
// Example:
//
//	prog := eeprom.New(bus, eeprom.WithLogger(myLogger))
func WithLogger(logger Logger) Option {
	return func(c *Config) {
		c.Logger = logger
	}
}

// WithPollAttempts sets how many status reads a wait may take before it
// fails with iic.ErrTimeout.
//
// Example:
//
//	prog := eeprom.New(bus, eeprom.WithPollAttempts(5000))
func WithPollAttempts(attempts int) Option {
	return func(c *Config) {
		if attempts > 0 {
			c.PollAttempts = attempts
		}
	}
}

// WithPollInterval sets the sleep between unsuccessful status reads.
// Default is zero (spin).
func WithPollInterval(interval time.Duration) Option {
	return func(c *Config) {
		if interval >= 0 {
			c.PollInterval = interval
		}
	}
}

// WithPrescale sets the prescaler value written by Init.
func WithPrescale(prescale uint16) Option {
	return func(c *Config) {
		c.Prescale = prescale
	}
}

// WithClock derives the prescaler from the controller clock and the wanted
// SCL frequency. Invalid combinations leave the default in place.
//
// Example:
//
//	prog := eeprom.New(bus, eeprom.WithClock(40_000_000, 100_000))
func WithClock(sysclkHz, sclHz uint32) Option {
	return func(c *Config) {
		if p, err := iic.Prescale(sysclkHz, sclHz); err == nil {
			c.Prescale = p
		}
	}
}

// WithVerifyAfterWrite enables or disables read-back of single-byte writes.
// Default is false.
func WithVerifyAfterWrite(verify bool) Option {
	return func(c *Config) {
		c.VerifyAfterWrite = verify
	}
}
