// Package iic drives a polled, memory-mapped I2C master controller talking to a
// two-block 2-wire serial EEPROM.
//
// # Register Model
//
// The controller exposes five byte registers at even offsets from its base
// address:
//
//	0x0 prescale low    0x2 prescale high    0x4 control
//	0x6 transmit/receive                     0x8 command (write) / status (read)
//
// Every step of a transaction loads the transmit register, writes a command
// and then polls status until bits 7 and 1 (no-acknowledge and transfer in
// progress) both read clear.
//
// # Transactions
//
// Byte write:
//
//	START+W(slave) -> offset high -> offset low -> data+STOP -> ACK poll -> idle
//
// Byte read:
//
//	START+W(slave) -> offset high -> offset low -> START+W(slave|1) -> READ
//	-> capture data -> NACK -> STOP
//
// Page write streams up to 128 bytes between the address phase and the STOP.
//
// ACK polling repeats START+W(slave) until the device acknowledges, which it
// does only once its internal write cycle has finished.
//
// # Slave Addresses
//
//	block 0: 0xA0 write, 0xA1 read
//	block 1: 0xA8 write, 0xA9 read
//
// # Timeouts
//
// Every wait is bounded by a Poller. When the controller never clears its
// status bits the call returns a *TimeoutError, which matches ErrTimeout:
//
//	ctrl := iic.NewController(bus, iic.Poller{MaxAttempts: 1000})
//	if err := ctrl.WriteByte(ctx, iic.Block0, 0x0010, 0x42); iic.IsTimeout(err) {
//	    // device did not respond
//	}
//
// # Register Access
//
// The register file is reached through the Bus interface. OpenMMIO maps the
// hardware window from /dev/mem on Linux; package sim provides a simulated
// controller and EEPROM.
package iic
