// Command iicprog is an operator console for a two-block I2C EEPROM behind a
// memory-mapped polled I2C master.
//
// Usage:
//
//	iicprog -backend mmio -base 0x00408000 -tty /dev/ttyUSB0
//	iicprog -config iicprog.json5 -log-level debug
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/moffa90/go-iicprog/console"
	"github.com/moffa90/go-iicprog/eeprom"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(2)
		}
		fmt.Fprintf(os.Stderr, "iicprog: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	cfg, err := parseFlags(args)
	if err != nil {
		return err
	}

	log, err := newLogger(cfg.LogLevel, os.Stderr)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	bus, closeBus, err := openBackend(cfg, log)
	if err != nil {
		return err
	}
	defer closeBus()

	tty, err := openLink(cfg.TTY, cfg.Baud)
	if err != nil {
		return err
	}
	defer tty.Close()

	if tty.raw {
		// logs share the raw terminal with the console
		log.Out = crlfWriter{os.Stderr}
	}

	// a blocked terminal read cannot observe ctx
	finished := make(chan struct{})
	defer close(finished)
	go func() {
		select {
		case <-ctx.Done():
			select {
			case <-finished:
				return
			default:
			}
			tty.Close()
			closeBus()
			log.Warn("interrupted")
			os.Exit(130)
		case <-finished:
		}
	}()

	interval, _ := cfg.pollInterval()
	opts := []eeprom.Option{
		eeprom.WithLogger(logAdapter{log}),
		eeprom.WithPollAttempts(cfg.PollAttempts),
		eeprom.WithPollInterval(interval),
	}
	if cfg.SysClk != 0 {
		opts = append(opts, eeprom.WithClock(cfg.SysClk, cfg.SCL))
	}

	prog := eeprom.New(bus, opts...)
	prog.Init()

	log.WithField("tty", cfg.TTY).Debug("console ready")
	return console.New(prog, tty, tty).Run(ctx)
}
