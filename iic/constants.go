package iic

// BaseAddress is the physical address of the controller register file on the
// reference board.
const BaseAddress = 0x00408000

// Reg is a register offset from the controller base address. The registers are
// 8 bits wide and sit on even addresses of the 16-bit bus.
type Reg uint32

// Register map.
const (
	// RegPrescaleLo is the low byte of the SCL clock prescaler
	RegPrescaleLo Reg = 0x0

	// RegPrescaleHi is the high byte of the SCL clock prescaler
	RegPrescaleHi Reg = 0x2

	// RegControl enables the core and its interrupt
	RegControl Reg = 0x4

	// RegData is the transmit register on write and the receive register on read
	RegData Reg = 0x6

	// RegCommand is the command register on write and the status register on read
	RegCommand Reg = 0x8

	// RegStatus aliases RegCommand for reads
	RegStatus = RegCommand

	// RegWindow is the size of the register file in bytes
	RegWindow = 0xA
)

// Control register bits.
const (
	// ControlEnable enables the I2C core
	ControlEnable = 0x80

	// ControlIntEnable enables the core interrupt (unused, the driver polls)
	ControlIntEnable = 0x40
)

// Command register bits.
const (
	CmdStart  = 0x80
	CmdStop   = 0x40
	CmdRead   = 0x20
	CmdWrite  = 0x10
	CmdNack   = 0x08
	CmdIntAck = 0x01
)

// Command sequences issued by the transaction state machine.
const (
	// CmdStartWrite generates a (repeated) START and transmits the slave address
	CmdStartWrite = CmdStart | CmdWrite // 0x90

	// CmdStopWrite transmits the last data byte followed by STOP
	CmdStopWrite = CmdStop | CmdWrite // 0x50

	// CmdIdle is issued once ACK polling succeeds
	CmdIdle = CmdWrite | CmdNack // 0x18
)

// Status register bits.
const (
	// StatusRxNack is set when the slave did not acknowledge the last byte
	StatusRxNack = 0x80

	// StatusBusBusy is set between START and STOP
	StatusBusBusy = 0x40

	// StatusArbLost is set when arbitration was lost
	StatusArbLost = 0x20

	// StatusTIP is set while a transfer is in progress
	StatusTIP = 0x02

	// StatusIntFlag is the interrupt flag
	StatusIntFlag = 0x01

	// StatusWaitMask covers the bits every step waits on to read clear
	StatusWaitMask = StatusRxNack | StatusTIP // 0x82
)

// EEPROM geometry.
const (
	// PageSize is the size of the device page buffer
	PageSize = 128

	// BlockSize is the size of one independently addressed block
	BlockSize = 0x10000

	// Blocks is the number of blocks on the device
	Blocks = 2

	// AddressSpace is the size of the logical 17-bit address space
	AddressSpace = Blocks * BlockSize
)

// Slave addresses, with the R/W bit in bit 0.
const (
	// SlaveBlock0 is 1010_000 + W
	SlaveBlock0 = 0xA0

	// SlaveBlock1 is 1010_100 + W
	SlaveBlock1 = 0xA8

	// SlaveRead is OR-ed into a slave address to select a read
	SlaveRead = 0x01
)

// DefaultPrescale is the prescaler for a 40 MHz system clock and a 100 kHz SCL.
const DefaultPrescale = 0x4F

// DefaultPollAttempts bounds every status wait when no limit is configured.
const DefaultPollAttempts = 100000
