// Package console implements the operator menu of the EEPROM programmer: a
// single-character command loop over a serial terminal.
//
// Every iteration prints
//
//	0: Write single byte
//	1: Read single byte
//	2: Write pages
//
// and reads one command character. Operands are typed as fixed-width hex
// fields with no terminator (4 digits for an address, 2 for data, 6 for a
// byte count); every character is echoed as it is read. A block selector of
// '0' picks block 0 and any other character picks block 1.
package console
