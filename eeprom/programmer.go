package eeprom

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/moffa90/go-iicprog/iic"
)

// Programmer writes and reads a two-block I2C EEPROM through the polled
// master controller. It splits page writes at page and block boundaries and
// reports progress per committed page.
//
// Programmer is not safe for concurrent use.
type Programmer struct {
	ctrl   *iic.Controller
	config Config
}

// New creates a new Programmer on the given register bus.
//
// Example:
//
//	bus, _ := iic.OpenMMIO(iic.BaseAddress)
//	prog := eeprom.New(bus,
//	    eeprom.WithProgressCallback(progressFunc),
//	    eeprom.WithPollAttempts(10000),
//	)
//	prog.Init()
func New(bus iic.Bus, opts ...Option) *Programmer {
	if bus == nil {
		panic("bus cannot be nil")
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	poll := iic.Poller{
		MaxAttempts: cfg.PollAttempts,
		Interval:    cfg.PollInterval,
	}

	return &Programmer{
		ctrl:   iic.NewController(bus, poll),
		config: cfg,
	}
}

// Init programs the prescaler and enables the controller. It must be called
// once before any transfer.
func (p *Programmer) Init() {
	p.ctrl.Init(p.config.Prescale)
	p.logDebug("controller enabled", "prescale", fmt.Sprintf("0x%04X", p.config.Prescale))
}

// WriteByte writes one byte and waits for the device write cycle. With
// VerifyAfterWrite the byte is read back and a mismatch is a *VerifyError.
func (p *Programmer) WriteByte(ctx context.Context, block iic.Block, offset uint16, value byte) error {
	addr := iic.Address{Block: block, Offset: offset}

	if err := p.ctrl.WriteByte(ctx, block, offset, value); err != nil {
		p.logError("write failed", "addr", addr.String(), "error", err)
		return fmt.Errorf("write %s: %w", addr, err)
	}
	p.logDebug("byte written", "addr", addr.String(), "value", fmt.Sprintf("0x%02X", value))

	if !p.config.VerifyAfterWrite {
		return nil
	}

	got, err := p.ctrl.ReadByte(ctx, block, offset)
	if err != nil {
		return fmt.Errorf("verify %s: %w", addr, err)
	}
	if got != value {
		return &VerifyError{Address: addr, Wrote: value, Read: got}
	}
	return nil
}

// ReadByte reads one byte.
func (p *Programmer) ReadByte(ctx context.Context, block iic.Block, offset uint16) (byte, error) {
	addr := iic.Address{Block: block, Offset: offset}

	value, err := p.ctrl.ReadByte(ctx, block, offset)
	if err != nil {
		p.logError("read failed", "addr", addr.String(), "error", err)
		return 0, fmt.Errorf("read %s: %w", addr, err)
	}
	p.logDebug("byte read", "addr", addr.String(), "value", fmt.Sprintf("0x%02X", value))
	return value, nil
}

// WritePage fills size bytes starting at offset with fill. The range is
// written as one transaction per device page, each followed by ACK polling.
// The range must lie inside the block; use WritePageAcrossBlocks for ranges
// that run past 0x10000.
//
// Example:
//
//	// erase the first KB of block 1
//	err := prog.WritePage(ctx, iic.Block1, 0x0000, 0x400, 0xFF)
func (p *Programmer) WritePage(ctx context.Context, block iic.Block, offset uint16, size int, fill byte) error {
	r := Range{Block: block, Offset: offset, Size: size}
	if size <= 0 {
		return &RangeError{Range: r, Reason: "size must be positive"}
	}
	if r.End() > iic.BlockSize {
		return &RangeError{Range: r, Reason: "runs past the end of the block"}
	}
	return p.writeRanges(ctx, []Range{r}, fill)
}

// WritePageAcrossBlocks is WritePage for ranges that may cross from one block
// into the other. Bytes past offset 0xFFFF of the starting block continue at
// offset 0 of the other block.
//
// Example:
//
//	// block 0 0xFFF0..0xFFFF then block 1 0x0000..0x000F
//	err := prog.WritePageAcrossBlocks(ctx, iic.Block0, 0xFFF0, 0x20, 0xFF)
func (p *Programmer) WritePageAcrossBlocks(ctx context.Context, block iic.Block, offset uint16, size int, fill byte) error {
	parts, err := SplitRange(Range{Block: block, Offset: offset, Size: size})
	if err != nil {
		return err
	}
	if len(parts) > 1 {
		p.logDebug("range crosses block boundary",
			"head", parts[0].String(),
			"tail", parts[1].String(),
		)
	}
	return p.writeRanges(ctx, parts, fill)
}

// writeRanges writes every page of every part, reporting progress over the
// whole run.
func (p *Programmer) writeRanges(ctx context.Context, parts []Range, fill byte) error {
	startTime := time.Now()

	var pages []Range
	total := 0
	for _, part := range parts {
		pages = append(pages, Pages(part)...)
		total += part.Size
	}

	buf := bytes.Repeat([]byte{fill}, iic.PageSize)
	written := 0

	for i, page := range pages {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("cancelled: %w", err)
		}

		if err := p.ctrl.WritePage(ctx, page.Block, page.Offset, buf[:page.Size]); err != nil {
			p.logError("page write failed", "page", page.String(), "error", err)
			return fmt.Errorf("write page %d of %d (%s): %w", i+1, len(pages), page, err)
		}

		written += page.Size
		p.reportProgress(Progress{
			Page:         page,
			CurrentPage:  i + 1,
			TotalPages:   len(pages),
			BytesWritten: written,
			TotalBytes:   total,
			Percentage:   float64(written) / float64(total) * 100,
			ElapsedTime:  time.Since(startTime),
		})
	}

	p.logInfo("page write complete",
		"start", parts[0].String(),
		"pages", len(pages),
		"bytes", written,
		"fill", fmt.Sprintf("0x%02X", fill),
		"elapsed", time.Since(startTime).String(),
	)
	return nil
}

// reportProgress calls the progress callback if configured.
func (p *Programmer) reportProgress(progress Progress) {
	if p.config.ProgressCallback != nil {
		p.config.ProgressCallback(progress)
	}
}

// logDebug logs a debug message if a logger is configured.
func (p *Programmer) logDebug(msg string, keysAndValues ...interface{}) {
	if p.config.Logger != nil {
		p.config.Logger.Debug(msg, keysAndValues...)
	}
}

// logInfo logs an info message if a logger is configured.
func (p *Programmer) logInfo(msg string, keysAndValues ...interface{}) {
	if p.config.Logger != nil {
		p.config.Logger.Info(msg, keysAndValues...)
	}
}

// logError logs an error message if a logger is configured.
func (p *Programmer) logError(msg string, keysAndValues ...interface{}) {
	if p.config.Logger != nil {
		p.config.Logger.Error(msg, keysAndValues...)
	}
}
