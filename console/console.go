package console

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/moffa90/go-iicprog/hexinput"
	"github.com/moffa90/go-iicprog/iic"
)

// Menu is printed before every command.
const Menu = "\n0: Write single byte\n1: Read single byte\n2: Write pages"

// Command selector characters.
const (
	CmdWriteByte = '0'
	CmdReadByte  = '1'
	CmdFillPages = '2'
)

// Device is the EEPROM as seen by the operator. *eeprom.Programmer
// implements it.
type Device interface {
	WriteByte(ctx context.Context, block iic.Block, offset uint16, value byte) error
	ReadByte(ctx context.Context, block iic.Block, offset uint16) (byte, error)
	WritePageAcrossBlocks(ctx context.Context, block iic.Block, offset uint16, size int, fill byte) error
}

// Console runs the operator menu over a character link. Input characters are
// echoed back to the output as they are read.
type Console struct {
	dev Device
	in  *hexinput.Reader
	out io.Writer
	err error
}

// New creates a console reading operator input from r and writing prompts,
// echo and results to w.
//
// Example:
//
//	c := console.New(prog, os.Stdin, os.Stdout)
//	if err := c.Run(ctx); err != nil {
//	    log.Fatal(err)
//	}
func New(dev Device, r io.Reader, w io.Writer) *Console {
	if dev == nil {
		panic("device cannot be nil")
	}
	return &Console{
		dev: dev,
		in:  hexinput.NewReader(r, w),
		out: w,
	}
}

// Run executes commands until the input ends, ctx is cancelled or the output
// fails. A clean end of input returns nil. Device errors are reported on the
// console and do not stop the loop.
//
// Cancellation is observed between commands; a blocked read is not interrupted.
func (c *Console) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := c.Step(ctx); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
	}
}

// Step prints the menu and executes one command. Unknown command characters
// are ignored. The returned error is an input or output failure; device
// errors are printed and Step returns nil.
func (c *Console) Step(ctx context.Context) error {
	c.print(Menu)

	cmd, err := c.in.ReadChar()
	if err != nil {
		return fmt.Errorf("read command: %w", err)
	}

	switch cmd {
	case CmdWriteByte:
		err = c.writeByte(ctx)
	case CmdReadByte:
		err = c.readByte(ctx)
	case CmdFillPages:
		err = c.fillPages(ctx)
	}
	if err != nil {
		return err
	}
	return c.flush()
}

func (c *Console) writeByte(ctx context.Context) error {
	c.print("\nWrite to block 0 or 1: ")
	sel, err := c.in.ReadChar()
	if err != nil {
		return fmt.Errorf("read block: %w", err)
	}
	c.print("\nHex address: ")
	offset, err := c.in.ReadHexWord16(nil)
	if err != nil {
		return fmt.Errorf("read address: %w", err)
	}
	c.print("\nData: ")
	value, err := c.in.ReadHexByte(nil)
	if err != nil {
		return fmt.Errorf("read data: %w", err)
	}

	addr := iic.Address{Block: iic.ParseBlock(sel), Offset: offset}
	if err := c.dev.WriteByte(ctx, addr.Block, addr.Offset, value); err != nil {
		c.report(err)
		return nil
	}
	c.print(fmt.Sprintf("\nWrite to %s: %02x", addr, value))
	return nil
}

func (c *Console) readByte(ctx context.Context) error {
	c.print("\nRead block 0 or 1: ")
	sel, err := c.in.ReadChar()
	if err != nil {
		return fmt.Errorf("read block: %w", err)
	}
	c.print("\nHex address: ")
	offset, err := c.in.ReadHexWord16(nil)
	if err != nil {
		return fmt.Errorf("read address: %w", err)
	}

	addr := iic.Address{Block: iic.ParseBlock(sel), Offset: offset}
	value, err := c.dev.ReadByte(ctx, addr.Block, addr.Offset)
	if err != nil {
		c.report(err)
		return nil
	}
	c.print(fmt.Sprintf("\nRead %s: %02x", addr, value))
	return nil
}

func (c *Console) fillPages(ctx context.Context) error {
	c.print("\nStart at block 0 or 1: ")
	sel, err := c.in.ReadChar()
	if err != nil {
		return fmt.Errorf("read block: %w", err)
	}
	c.print("\nStart hex address: ")
	offset, err := c.in.ReadHexWord16(nil)
	if err != nil {
		return fmt.Errorf("read address: %w", err)
	}
	c.print("\nHow many bytes (6 hex digits): ")
	size, err := c.in.ReadHexWord24(nil)
	if err != nil {
		return fmt.Errorf("read size: %w", err)
	}
	c.print("\nFill with: ")
	fill, err := c.in.ReadHexByte(nil)
	if err != nil {
		return fmt.Errorf("read fill: %w", err)
	}

	addr := iic.Address{Block: iic.ParseBlock(sel), Offset: offset}
	if err := c.dev.WritePageAcrossBlocks(ctx, addr.Block, addr.Offset, int(size), fill); err != nil {
		c.report(err)
		return nil
	}
	c.print(fmt.Sprintf("\nFilled %06x bytes from %s with %02x", size, addr, fill))
	return nil
}

func (c *Console) report(err error) {
	c.print("\nError: " + err.Error())
}

// print writes s unless an earlier write failed. The first failure is kept
// for flush.
func (c *Console) print(s string) {
	if c.err != nil {
		return
	}
	if _, err := io.WriteString(c.out, s); err != nil {
		c.err = fmt.Errorf("write console: %w", err)
	}
}

func (c *Console) flush() error {
	err := c.err
	c.err = nil
	return err
}
