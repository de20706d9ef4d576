package iic

import (
	"context"
	"errors"
	"fmt"
)

// Controller drives the polled I2C master against a two-block EEPROM.
// Each call runs one complete transaction; no state survives between calls.
//
// Controller is not safe for concurrent use: the register file is a single
// shared resource.
type Controller struct {
	bus  Bus
	poll Poller
}

// NewController creates a controller on the given register bus.
// The zero Poller bounds every wait by DefaultPollAttempts.
func NewController(bus Bus, poll Poller) *Controller {
	if bus == nil {
		panic("bus cannot be nil")
	}
	return &Controller{bus: bus, poll: poll}
}

// Init programs the clock prescaler and enables the core.
func (c *Controller) Init(prescale uint16) {
	c.bus.WriteReg(RegPrescaleLo, byte(prescale))
	c.bus.WriteReg(RegPrescaleHi, byte(prescale>>8))
	c.bus.WriteReg(RegControl, ControlEnable)
}

// WriteByte writes one byte and waits for the device to finish its internal
// write cycle.
func (c *Controller) WriteByte(ctx context.Context, block Block, offset uint16, value byte) error {
	t := c.begin(ctx, "write byte", block)

	if err := t.address(offset); err != nil {
		return err
	}
	if err := t.send(value, CmdStopWrite, StateStopSent); err != nil {
		return err
	}
	return t.ackPoll()
}

// ReadByte reads one byte using a dummy write to set the device address
// pointer, a repeated START with the read address, and a single read.
func (c *Controller) ReadByte(ctx context.Context, block Block, offset uint16) (byte, error) {
	t := c.begin(ctx, "read byte", block)

	if err := t.address(offset); err != nil {
		return 0, err
	}

	if err := t.send(block.ReadAddr(), CmdStartWrite, StateStartSent); err != nil {
		return 0, err
	}
	if err := t.send(block.ReadAddr(), CmdRead, StateDataPhase); err != nil {
		return 0, err
	}

	value := c.bus.ReadReg(RegData)

	if err := t.send(t.slave, CmdNack, StateDataPhase); err != nil {
		return 0, err
	}
	if err := t.send(t.slave, CmdStop, StateStopSent); err != nil {
		return 0, err
	}

	t.state = StateIdle
	return value, nil
}

// WritePage streams data into one device page as a single transaction: the
// address phase once, every byte but the last with WRITE, the last with
// STOP, then ACK polling. The data must not run past the end of the page that
// holds offset.
func (c *Controller) WritePage(ctx context.Context, block Block, offset uint16, data []byte) error {
	if len(data) == 0 {
		return fmt.Errorf("page write at %s: no data", Address{block, offset})
	}
	if int(offset%PageSize)+len(data) > PageSize {
		return fmt.Errorf("page write of %d bytes at %s: %w", len(data), Address{block, offset}, ErrPageBoundary)
	}

	t := c.begin(ctx, "write page", block)

	if err := t.address(offset); err != nil {
		return err
	}

	last := len(data) - 1
	for _, b := range data[:last] {
		if err := t.send(b, CmdWrite, StateDataPhase); err != nil {
			return err
		}
	}
	if err := t.send(data[last], CmdStopWrite, StateStopSent); err != nil {
		return err
	}

	return t.ackPoll()
}

// transaction owns the state of one call.
type transaction struct {
	c     *Controller
	ctx   context.Context
	op    string
	slave byte
	state State
}

func (c *Controller) begin(ctx context.Context, op string, block Block) *transaction {
	return &transaction{
		c:     c,
		ctx:   ctx,
		op:    op,
		slave: block.WriteAddr(),
		state: StateIdle,
	}
}

// address selects the slave for writing and transmits the 16-bit offset,
// high byte first.
func (t *transaction) address(offset uint16) error {
	if err := t.send(t.slave, CmdStartWrite, StateStartSent); err != nil {
		return err
	}
	if err := t.send(byte(offset>>8), CmdWrite, StateAddrHighSent); err != nil {
		return err
	}
	return t.send(byte(offset), CmdWrite, StateAddrLowSent)
}

// send loads the data register, issues cmd and waits for the wait bits to clear.
func (t *transaction) send(tx, cmd byte, next State) error {
	t.c.bus.WriteReg(RegData, tx)
	t.c.bus.WriteReg(RegCommand, cmd)
	t.state = next
	return t.wait(t.ready)
}

func (t *transaction) ready() (byte, bool) {
	status := t.c.bus.ReadReg(RegStatus)
	return status, status&StatusWaitMask == 0
}

// ackPoll re-addresses the device with START+WRITE until it acknowledges,
// which it does only once the internal write cycle is over, then issues the
// idle command.
func (t *transaction) ackPoll() error {
	t.state = StatePollAck

	t.c.bus.WriteReg(RegData, t.slave)
	t.c.bus.WriteReg(RegCommand, CmdStartWrite)

	err := t.wait(func() (byte, bool) {
		status, ok := t.ready()
		if !ok {
			t.c.bus.WriteReg(RegData, t.slave)
			t.c.bus.WriteReg(RegCommand, CmdStartWrite)
		}
		return status, ok
	})
	if err != nil {
		return err
	}

	t.c.bus.WriteReg(RegData, t.slave)
	t.c.bus.WriteReg(RegCommand, CmdIdle)
	t.state = StateIdle
	return nil
}

func (t *transaction) wait(ready func() (byte, bool)) error {
	err := t.c.poll.Wait(t.ctx, ready)
	if err == nil {
		return nil
	}

	var te *TimeoutError
	if errors.As(err, &te) {
		te.Op = t.op
		te.State = t.state
		te.Slave = t.slave
		return te
	}
	return fmt.Errorf("%s in %s: %w", t.op, t.state, err)
}
