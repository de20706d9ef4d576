package eeprom

import (
	"time"

	"github.com/moffa90/go-iicprog/iic"
)

// Progress describes a page write run after each committed page.
type Progress struct {
	// Page is the page just committed
	Page Range

	// CurrentPage is the number of pages committed so far (1-based)
	CurrentPage int

	// TotalPages is the number of page transactions in the run
	TotalPages int

	// BytesWritten is the total number of bytes committed so far
	BytesWritten int

	// TotalBytes is the size of the whole run
	TotalBytes int

	// Percentage is the completion percentage (0.0 to 100.0)
	Percentage float64

	// ElapsedTime is the time elapsed since the run started
	ElapsedTime time.Duration
}

// ProgressCallback is called after every page transaction of a page write.
// Implementations should return quickly; the bus is idle while it runs.
//
// Example:
//
//	prog := eeprom.New(bus,
//	    eeprom.WithProgressCallback(func(p eeprom.Progress) {
//	        fmt.Printf("%.1f%% - page %d/%d\n", p.Percentage, p.CurrentPage, p.TotalPages)
//	    }),
//	)
type ProgressCallback func(Progress)

// Logger is an optional logging interface that can be provided to the programmer.
// It is a superset of iic.Logger, so the same value can trace the bus.
//
// Example with standard log package:
//
//	type StdLogger struct{}
//	func (l *StdLogger) Debug(msg string, kv ...interface{}) { log.Println(msg, kv) }
//	func (l *StdLogger) Info(msg string, kv ...interface{})  { log.Println(msg, kv) }
//	func (l *StdLogger) Error(msg string, kv ...interface{}) { log.Println(msg, kv) }
//
//	prog := eeprom.New(bus, eeprom.WithLogger(&StdLogger{}))
type Logger interface {
	iic.Logger

	// Info logs an info message with optional key-value pairs
	Info(msg string, keysAndValues ...interface{})

	// Error logs an error message with optional key-value pairs
	Error(msg string, keysAndValues ...interface{})
}
