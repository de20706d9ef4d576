package sim

import "github.com/moffa90/go-iicprog/iic"

// Peek returns the byte stored at block/offset without touching the bus.
func (d *Device) Peek(block iic.Block, offset uint16) byte {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.mem[block&1][offset]
}

// Dump returns a copy of n bytes starting at block/offset. The copy stops at
// the end of the block.
func (d *Device) Dump(block iic.Block, offset uint16, n int) []byte {
	d.mu.Lock()
	defer d.mu.Unlock()

	end := int(offset) + n
	if end > iic.BlockSize {
		end = iic.BlockSize
	}
	out := make([]byte, end-int(offset))
	copy(out, d.mem[block&1][offset:end])
	return out
}

// Load preloads memory starting at block/offset, bypassing the bus.
func (d *Device) Load(block iic.Block, offset uint16, data []byte) {
	d.mu.Lock()
	defer d.mu.Unlock()
	copy(d.mem[block&1][offset:], data)
}

// Transactions returns a copy of the transaction log.
func (d *Device) Transactions() []Transaction {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]Transaction, len(d.log))
	copy(out, d.log)
	return out
}

// Writes returns the committed page writes from the transaction log.
func (d *Device) Writes() []Transaction {
	d.mu.Lock()
	defer d.mu.Unlock()

	var out []Transaction
	for _, t := range d.log {
		if t.Kind == KindWrite {
			out = append(out, t)
		}
	}
	return out
}

// ClearLog empties the transaction log and resets the counters.
func (d *Device) ClearLog() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.log = nil
	d.stats = Stats{}
}

func (d *Device) Stats() Stats {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.stats
}

// SetStuck makes the status register report a transfer that never ends, as a
// hung bus would.
func (d *Device) SetStuck(stuck bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stuck = stuck
}

// Enabled reports whether the core has been enabled through the control register.
func (d *Device) Enabled() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.control&iic.ControlEnable != 0
}

// Prescale returns the programmed clock prescaler.
func (d *Device) Prescale() uint16 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.prescale
}
