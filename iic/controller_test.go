package iic

import (
	"context"
	"errors"
	"testing"
)

type access struct {
	write bool
	reg   Reg
	value byte
}

// recordBus records register traffic. Status reads pop values from statuses
// and return 0 once it is empty.
type recordBus struct {
	log      []access
	statuses []byte
	rx       byte
}

func (b *recordBus) ReadReg(r Reg) byte {
	var v byte
	switch r {
	case RegStatus:
		if len(b.statuses) > 0 {
			v = b.statuses[0]
			b.statuses = b.statuses[1:]
		}
	case RegData:
		v = b.rx
	}
	b.log = append(b.log, access{reg: r, value: v})
	return v
}

func (b *recordBus) WriteReg(r Reg, v byte) {
	b.log = append(b.log, access{write: true, reg: r, value: v})
}

// commands returns the (transmit, command) pairs written, in order.
func (b *recordBus) commands() [][2]byte {
	var out [][2]byte
	var tx byte
	for _, a := range b.log {
		if !a.write {
			continue
		}
		switch a.reg {
		case RegData:
			tx = a.value
		case RegCommand:
			out = append(out, [2]byte{tx, a.value})
		}
	}
	return out
}

func equalCommands(t *testing.T, got, want [][2]byte) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d commands % X, want %d % X", len(got), got, len(want), want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("command %d = %02X, want %02X", i, got[i], want[i])
		}
	}
}

func TestInit(t *testing.T) {
	bus := &recordBus{}
	NewController(bus, Poller{}).Init(0x124F)

	want := []access{
		{true, RegPrescaleLo, 0x4F},
		{true, RegPrescaleHi, 0x12},
		{true, RegControl, ControlEnable},
	}
	if len(bus.log) != len(want) {
		t.Fatalf("log = %+v", bus.log)
	}
	for i := range want {
		if bus.log[i] != want[i] {
			t.Errorf("access %d = %+v, want %+v", i, bus.log[i], want[i])
		}
	}
}

func TestWriteByteSequence(t *testing.T) {
	tests := []struct {
		name  string
		block Block
		slave byte
	}{
		{name: "block 0", block: Block0, slave: 0xA0},
		{name: "block 1", block: Block1, slave: 0xA8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// two refused polls before the device acknowledges
			bus := &recordBus{statuses: []byte{0, 0, 0, 0, 0x80, 0x80}}
			c := NewController(bus, Poller{MaxAttempts: 10})

			if err := c.WriteByte(context.Background(), tt.block, 0x12AB, 0x5C); err != nil {
				t.Fatalf("WriteByte() error: %v", err)
			}

			equalCommands(t, bus.commands(), [][2]byte{
				{tt.slave, 0x90},
				{0x12, 0x10},
				{0xAB, 0x10},
				{0x5C, 0x50},
				{tt.slave, 0x90},
				{tt.slave, 0x90},
				{tt.slave, 0x90},
				{tt.slave, 0x18},
			})
		})
	}
}

func TestReadByteSequence(t *testing.T) {
	bus := &recordBus{rx: 0x3C}
	c := NewController(bus, Poller{MaxAttempts: 10})

	got, err := c.ReadByte(context.Background(), Block1, 0x0102)
	if err != nil {
		t.Fatalf("ReadByte() error: %v", err)
	}
	if got != 0x3C {
		t.Errorf("ReadByte() = 0x%02X, want 0x3C", got)
	}

	equalCommands(t, bus.commands(), [][2]byte{
		{0xA8, 0x90},
		{0x01, 0x10},
		{0x02, 0x10},
		{0xA9, 0x90},
		{0xA9, 0x20},
		{0xA8, 0x08},
		{0xA8, 0x40},
	})
}

func TestWritePageSequence(t *testing.T) {
	bus := &recordBus{}
	c := NewController(bus, Poller{MaxAttempts: 10})

	if err := c.WritePage(context.Background(), Block0, 0x0080, []byte{1, 2, 3}); err != nil {
		t.Fatalf("WritePage() error: %v", err)
	}

	equalCommands(t, bus.commands(), [][2]byte{
		{0xA0, 0x90},
		{0x00, 0x10},
		{0x80, 0x10},
		{0x01, 0x10},
		{0x02, 0x10},
		{0x03, 0x50},
		{0xA0, 0x90},
		{0xA0, 0x18},
	})
}

func TestWritePageValidation(t *testing.T) {
	c := NewController(&recordBus{}, Poller{})

	tests := []struct {
		name   string
		offset uint16
		size   int
	}{
		{name: "empty", offset: 0, size: 0},
		{name: "past page end", offset: 0x007F, size: 2},
		{name: "more than a page", offset: 0, size: PageSize + 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := c.WritePage(context.Background(), Block0, tt.offset, make([]byte, tt.size)); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}

	err := c.WritePage(context.Background(), Block0, 0x00FF, []byte{1, 2})
	if !errors.Is(err, ErrPageBoundary) {
		t.Errorf("error = %v, want ErrPageBoundary", err)
	}
}

func TestTimeoutState(t *testing.T) {
	tests := []struct {
		name     string
		statuses []byte
		wantOp   string
		want     State
		run      func(c *Controller) error
	}{
		{
			name:     "no slave",
			statuses: []byte{0x80, 0x80, 0x80},
			wantOp:   "write byte",
			want:     StateStartSent,
			run: func(c *Controller) error {
				return c.WriteByte(context.Background(), Block0, 0, 0)
			},
		},
		{
			name:     "stuck on low address",
			statuses: []byte{0, 0, 0x02, 0x02, 0x02},
			wantOp:   "read byte",
			want:     StateAddrLowSent,
			run: func(c *Controller) error {
				_, err := c.ReadByte(context.Background(), Block1, 0)
				return err
			},
		},
		{
			name:     "write cycle never ends",
			statuses: []byte{0, 0, 0, 0, 0x80, 0x80, 0x80},
			wantOp:   "write page",
			want:     StatePollAck,
			run: func(c *Controller) error {
				return c.WritePage(context.Background(), Block0, 0, []byte{0xEE})
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewController(&recordBus{statuses: tt.statuses}, Poller{MaxAttempts: 3})

			err := tt.run(c)

			var te *TimeoutError
			if !errors.As(err, &te) {
				t.Fatalf("error = %v, want *TimeoutError", err)
			}
			if te.Op != tt.wantOp || te.State != tt.want {
				t.Errorf("TimeoutError = %+v, want op %q state %v", te, tt.wantOp, tt.want)
			}
			if te.Attempts != 3 {
				t.Errorf("Attempts = %d, want 3", te.Attempts)
			}
		})
	}
}

func TestNewControllerNilBus(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("NewController(nil) did not panic")
		}
	}()
	NewController(nil, Poller{})
}
