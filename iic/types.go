package iic

import "fmt"

// Block selects one of the two 64KB regions of the device.
type Block byte

const (
	Block0 Block = 0
	Block1 Block = 1
)

// ParseBlock maps an operator selector character to a block.
// '0' selects block 0; every other character selects block 1.
func ParseBlock(ch byte) Block {
	if ch == '0' {
		return Block0
	}
	return Block1
}

// Char returns the selector character for the block ('0' or '1').
func (b Block) Char() byte {
	if b == Block0 {
		return '0'
	}
	return '1'
}

// Other returns the opposite block.
func (b Block) Other() Block {
	if b == Block0 {
		return Block1
	}
	return Block0
}

// WriteAddr returns the slave address byte used to write to the block.
func (b Block) WriteAddr() byte {
	if b == Block0 {
		return SlaveBlock0
	}
	return SlaveBlock1
}

// ReadAddr returns the slave address byte used to read from the block.
func (b Block) ReadAddr() byte {
	return b.WriteAddr() | SlaveRead
}

func (b Block) String() string {
	return fmt.Sprintf("block %c", b.Char())
}

// Address identifies one byte of the device: a block plus a 16-bit offset.
type Address struct {
	Block  Block
	Offset uint16
}

// Logical returns the 17-bit logical address (0 to 0x1FFFF).
func (a Address) Logical() uint32 {
	if a.Block == Block0 {
		return uint32(a.Offset)
	}
	return BlockSize + uint32(a.Offset)
}

// String formats the address the way the operator console prints it,
// e.g. "0x0fff0" for block 0 offset 0xFFF0.
func (a Address) String() string {
	return fmt.Sprintf("0x%c%04x", a.Block.Char(), a.Offset)
}

// AddressFromLogical converts a 17-bit logical address back to block and offset.
func AddressFromLogical(logical uint32) (Address, error) {
	if logical >= AddressSpace {
		return Address{}, fmt.Errorf("logical address 0x%X outside device (max 0x%X)", logical, AddressSpace-1)
	}
	return Address{
		Block:  Block(logical / BlockSize),
		Offset: uint16(logical % BlockSize),
	}, nil
}

// State is the position of a transaction in the byte protocol.
type State int

const (
	StateIdle State = iota
	StateStartSent
	StateAddrHighSent
	StateAddrLowSent
	StateDataPhase
	StateStopSent
	StatePollAck
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateStartSent:
		return "start sent"
	case StateAddrHighSent:
		return "address high sent"
	case StateAddrLowSent:
		return "address low sent"
	case StateDataPhase:
		return "data phase"
	case StateStopSent:
		return "stop sent"
	case StatePollAck:
		return "ack polling"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Prescale computes the clock prescaler for a system clock and a target SCL
// frequency: sysclk/(5*scl) - 1.
//
// Example:
//
//	iic.Prescale(40_000_000, 100_000) // 0x4F
func Prescale(sysclkHz, sclHz uint32) (uint16, error) {
	if sclHz == 0 {
		return 0, fmt.Errorf("scl frequency must be non-zero")
	}
	div := sysclkHz / (5 * sclHz)
	if div == 0 {
		return 0, fmt.Errorf("system clock %d Hz too slow for %d Hz scl", sysclkHz, sclHz)
	}
	if div-1 > 0xFFFF {
		return 0, fmt.Errorf("prescale 0x%X does not fit in 16 bits", div-1)
	}
	return uint16(div - 1), nil
}
