// Package eeprom provides a high-level API for programming a two-block I2C
// EEPROM (such as a 24x1025-style 128KB part) through the polled master
// controller in package iic.
//
// # Overview
//
// The device is two 64KB blocks with separate slave addresses and a 128-byte
// page buffer. This package handles:
//   - Single byte writes and random reads
//   - Fill writes split into page transactions at 128-byte boundaries
//   - Ranges that cross from one block into the other
//   - Optional read-back verification of single byte writes
//
// # Basic Usage
//
//	bus, err := iic.OpenMMIO(iic.BaseAddress)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer bus.Close()
//
//	prog := eeprom.New(bus)
//	prog.Init()
//
//	if err := prog.WriteByte(ctx, iic.Block0, 0x1234, 0xAB); err != nil {
//	    log.Fatal(err)
//	}
//
// # Page Writes
//
// WritePageAcrossBlocks accepts any range up to the size of the device
// measured from the start offset. A range from block 0 offset 0xFFF0 of size
// 0x20 becomes two page transactions: 0x10 bytes at block 0 offset 0xFFF0
// and 0x10 bytes at block 1 offset 0x0000.
//
//	prog := eeprom.New(bus,
//	    eeprom.WithProgressCallback(func(p eeprom.Progress) {
//	        fmt.Printf("%.1f%% - page %d/%d\n", p.Percentage, p.CurrentPage, p.TotalPages)
//	    }),
//	)
//	err := prog.WritePageAcrossBlocks(ctx, iic.Block0, 0xFFF0, 0x20, 0xFF)
//
// # Error Handling
//
// Every status wait is bounded. A device that never becomes ready fails with
// an error matching iic.ErrTimeout; the controller stays usable afterwards.
//
//	if errors.Is(err, iic.ErrTimeout) {
//	    // device missing or still busy
//	}
//
//	var rangeErr *eeprom.RangeError
//	if errors.As(err, &rangeErr) {
//	    fmt.Printf("rejected %s: %s\n", rangeErr.Range, rangeErr.Reason)
//	}
package eeprom
