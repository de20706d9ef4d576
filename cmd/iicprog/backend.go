package main

import (
	"fmt"

	"github.com/moffa90/go-iicprog/iic"
	"github.com/moffa90/go-iicprog/sim"
	"github.com/sirupsen/logrus"
)

// openBackend returns the register bus selected by cfg together with a
// function releasing it. At trace level every register access is logged.
func openBackend(cfg Config, log *logrus.Logger) (iic.Bus, func() error, error) {
	var (
		bus     iic.Bus
		closeFn = func() error { return nil }
	)

	switch cfg.Backend {
	case "sim":
		bus = sim.New(sim.WithWriteCycle(cfg.SimWriteCycle))
		log.WithField("writeCycle", cfg.SimWriteCycle).Info("using simulated controller")
	case "mmio":
		base, err := cfg.baseAddress()
		if err != nil {
			return nil, nil, err
		}
		m, err := iic.OpenMMIO(base)
		if err != nil {
			return nil, nil, err
		}
		bus, closeFn = m, m.Close
		log.WithField("base", fmt.Sprintf("0x%08X", base)).Info("mapped controller registers")
	default:
		return nil, nil, fmt.Errorf("unknown backend %q", cfg.Backend)
	}

	if log.IsLevelEnabled(logrus.TraceLevel) {
		bus = iic.Trace(bus, traceAdapter{log})
	}
	return bus, closeFn, nil
}
