package iic

import "fmt"

// Bus is byte-wide access to the controller register file. Implementations
// include the memory-mapped hardware window (MMIO) and the simulator in
// package sim.
type Bus interface {
	ReadReg(r Reg) byte
	WriteReg(r Reg, v byte)
}

// Logger receives register traffic from a traced bus.
type Logger interface {
	Debug(msg string, keysAndValues ...interface{})
}

// traceBus logs every register access before forwarding it.
type traceBus struct {
	bus    Bus
	logger Logger
}

// Trace wraps bus so that every register access is logged at debug level.
//
// Example:
//
//	bus = iic.Trace(bus, logger)
func Trace(bus Bus, logger Logger) Bus {
	if logger == nil {
		return bus
	}
	return &traceBus{bus: bus, logger: logger}
}

func (t *traceBus) ReadReg(r Reg) byte {
	v := t.bus.ReadReg(r)
	t.logger.Debug("reg read", "reg", regName(r), "value", fmt.Sprintf("0x%02X", v))
	return v
}

func (t *traceBus) WriteReg(r Reg, v byte) {
	t.logger.Debug("reg write", "reg", regName(r), "value", fmt.Sprintf("0x%02X", v))
	t.bus.WriteReg(r, v)
}

func regName(r Reg) string {
	switch r {
	case RegPrescaleLo:
		return "prescale_lo"
	case RegPrescaleHi:
		return "prescale_hi"
	case RegControl:
		return "control"
	case RegData:
		return "txrx"
	case RegCommand:
		return "cmd_status"
	default:
		return fmt.Sprintf("0x%X", uint32(r))
	}
}
