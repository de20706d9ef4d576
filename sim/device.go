package sim

import (
	"sync"

	"github.com/moffa90/go-iicprog/iic"
)

// Config holds the simulator configuration.
type Config struct {
	// WriteCycle is the number of address attempts the EEPROM refuses after
	// committing a write, standing in for its internal write time
	WriteCycle int

	// Latency is the number of status reads that report a transfer in
	// progress after each command
	Latency int

	// Fill is the initial content of every memory cell
	Fill byte
}

func defaultConfig() Config {
	return Config{
		WriteCycle: 3,
		Fill:       0xFF,
	}
}

// Option is a functional option for configuring the Device.
type Option func(*Config)

// WithWriteCycle sets how many ACK polls are refused after each commit.
func WithWriteCycle(polls int) Option {
	return func(c *Config) {
		if polls >= 0 {
			c.WriteCycle = polls
		}
	}
}

// WithLatency sets how many status reads report a transfer in progress.
func WithLatency(reads int) Option {
	return func(c *Config) {
		if reads >= 0 {
			c.Latency = reads
		}
	}
}

// WithFill sets the initial memory content (erased EEPROM reads 0xFF).
func WithFill(b byte) Option {
	return func(c *Config) {
		c.Fill = b
	}
}

// Kind tells reads from writes in the transaction log.
type Kind int

const (
	KindWrite Kind = iota
	KindRead
)

func (k Kind) String() string {
	if k == KindRead {
		return "read"
	}
	return "write"
}

// Transaction is one data transfer as seen by the EEPROM: a committed page
// write or a completed read.
type Transaction struct {
	Kind   Kind
	Block  iic.Block
	Offset uint16
	Length int
}

// Stats counts bus events.
type Stats struct {
	// Commands is the number of commands accepted by the controller
	Commands int

	// AddressNacks is the number of slave addresses refused (write cycle or no such slave)
	AddressNacks int

	// Aborted is the number of page writes dropped by a START without STOP
	Aborted int

	// Ignored is the number of commands written straight after a status read
	// that showed a transfer in progress
	Ignored int
}

type phase int

const (
	phaseAddrHigh phase = iota
	phaseAddrLow
	phaseData
)

// Device simulates the I2C master controller register file together with a
// two-block EEPROM on its bus. It implements iic.Bus.
//
// Device is safe for concurrent use.
type Device struct {
	mu  sync.Mutex
	cfg Config
	mem [iic.Blocks][]byte

	// controller registers
	prescale uint16
	control  byte
	tx, rx   byte
	nack     bool
	tip      int
	sawTIP   bool
	stuck    bool

	// EEPROM side of the bus
	addressing bool
	selected   bool
	block      iic.Block
	reading    bool
	phase      phase
	ptr        uint16
	dataStart  uint16
	pending    []byte
	readStart  uint16
	reads      int
	busy       int

	log   []Transaction
	stats Stats
}

// New creates a simulated controller and EEPROM. The controller starts
// disabled, as after reset; commands are ignored until the control register
// enables the core.
func New(opts ...Option) *Device {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	d := &Device{cfg: cfg}
	for i := range d.mem {
		d.mem[i] = make([]byte, iic.BlockSize)
		for j := range d.mem[i] {
			d.mem[i][j] = cfg.Fill
		}
	}
	return d
}

// ReadReg implements iic.Bus.
func (d *Device) ReadReg(r iic.Reg) byte {
	d.mu.Lock()
	defer d.mu.Unlock()

	switch r {
	case iic.RegPrescaleLo:
		return byte(d.prescale)
	case iic.RegPrescaleHi:
		return byte(d.prescale >> 8)
	case iic.RegControl:
		return d.control
	case iic.RegData:
		return d.rx
	case iic.RegStatus:
		return d.status()
	default:
		return 0xFF
	}
}

// WriteReg implements iic.Bus.
func (d *Device) WriteReg(r iic.Reg, v byte) {
	d.mu.Lock()
	defer d.mu.Unlock()

	switch r {
	case iic.RegPrescaleLo:
		d.prescale = d.prescale&0xFF00 | uint16(v)
	case iic.RegPrescaleHi:
		d.prescale = d.prescale&0x00FF | uint16(v)<<8
	case iic.RegControl:
		d.control = v
	case iic.RegData:
		d.tx = v
	case iic.RegCommand:
		d.command(v)
	}
}

func (d *Device) status() byte {
	if d.stuck {
		return iic.StatusTIP | iic.StatusRxNack
	}

	var s byte
	d.sawTIP = d.tip > 0
	if d.tip > 0 {
		s |= iic.StatusTIP
		d.tip--
	}
	if d.nack {
		s |= iic.StatusRxNack
	}
	if d.addressing || d.selected {
		s |= iic.StatusBusBusy
	}
	return s
}

func (d *Device) command(cmd byte) {
	if d.control&iic.ControlEnable == 0 {
		return
	}

	if d.sawTIP {
		// written right after a status read that showed the transfer running
		d.sawTIP = false
		d.stats.Ignored++
		return
	}

	d.stats.Commands++
	d.tip = d.cfg.Latency

	if cmd&iic.CmdStart != 0 {
		d.start()
	}

	switch {
	case cmd&iic.CmdWrite != 0:
		d.nack = !d.transmit(d.tx)
	case cmd&iic.CmdRead != 0:
		d.nack = false
		d.receive()
	}

	if cmd&iic.CmdStop != 0 {
		d.stop()
	}
}

// start handles a START or repeated START. Uncommitted page data is lost;
// the address pointer is kept so a repeated START can switch to reading.
func (d *Device) start() {
	if d.selected && !d.reading && len(d.pending) > 0 {
		d.stats.Aborted++
	}
	d.finishRead()
	d.pending = d.pending[:0]
	d.selected = false
	d.addressing = true
}

func (d *Device) transmit(b byte) bool {
	if d.addressing {
		d.addressing = false
		if d.busy > 0 {
			d.busy--
			d.stats.AddressNacks++
			return false
		}

		switch b &^ iic.SlaveRead {
		case iic.SlaveBlock0:
			d.block = iic.Block0
		case iic.SlaveBlock1:
			d.block = iic.Block1
		default:
			d.stats.AddressNacks++
			return false
		}

		d.selected = true
		d.reading = b&iic.SlaveRead != 0
		d.phase = phaseAddrHigh
		d.readStart = d.ptr
		d.reads = 0
		return true
	}

	if !d.selected || d.reading {
		return false
	}

	switch d.phase {
	case phaseAddrHigh:
		d.ptr = uint16(b)<<8 | d.ptr&0x00FF
		d.phase = phaseAddrLow
	case phaseAddrLow:
		d.ptr = d.ptr&0xFF00 | uint16(b)
		d.dataStart = d.ptr
		d.phase = phaseData
	case phaseData:
		d.pending = append(d.pending, b)
	}
	return true
}

func (d *Device) receive() {
	if !d.selected || !d.reading {
		d.rx = 0xFF
		return
	}
	d.rx = d.mem[d.block][d.ptr]
	d.ptr++
	d.reads++
}

func (d *Device) stop() {
	if d.selected && !d.reading && len(d.pending) > 0 {
		d.commit()
	}
	d.finishRead()
	d.pending = d.pending[:0]
	d.selected = false
	d.addressing = false
}

// commit writes the page buffer. Sequential bytes wrap inside the page that
// holds the start offset, as on the real part.
func (d *Device) commit() {
	base := d.dataStart &^ (iic.PageSize - 1)
	first := d.dataStart % iic.PageSize
	for i, b := range d.pending {
		off := base + (first+uint16(i))%iic.PageSize
		d.mem[d.block][off] = b
	}

	d.log = append(d.log, Transaction{
		Kind:   KindWrite,
		Block:  d.block,
		Offset: d.dataStart,
		Length: len(d.pending),
	})
	d.busy = d.cfg.WriteCycle
}

func (d *Device) finishRead() {
	if d.selected && d.reading && d.reads > 0 {
		d.log = append(d.log, Transaction{
			Kind:   KindRead,
			Block:  d.block,
			Offset: d.readStart,
			Length: d.reads,
		})
	}
	d.reads = 0
}
