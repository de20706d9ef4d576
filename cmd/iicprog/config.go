package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/flynn/json5"
	"github.com/moffa90/go-iicprog/iic"
)

// Config is the programmer configuration as read from the json5 file.
// Command line flags override file values.
type Config struct {
	Backend       string `json:"backend"`
	Base          string `json:"base"`
	TTY           string `json:"tty"`
	Baud          uint   `json:"baud"`
	SysClk        uint32 `json:"sysclk"`
	SCL           uint32 `json:"scl"`
	PollAttempts  int    `json:"pollAttempts"`
	PollInterval  string `json:"pollInterval"`
	LogLevel      string `json:"logLevel"`
	SimWriteCycle int    `json:"simWriteCycle"`
}

func defaultConfig() Config {
	return Config{
		Backend:       "sim",
		Base:          fmt.Sprintf("0x%08X", iic.BaseAddress),
		Baud:          115200,
		PollAttempts:  iic.DefaultPollAttempts,
		LogLevel:      "info",
		SimWriteCycle: 3,
	}
}

// loadConfig reads a json5 file over the defaults.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := json5.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// parseFlags builds the configuration from args: defaults, then the -config
// file if given, then every flag set explicitly.
func parseFlags(args []string) (Config, error) {
	fs := flag.NewFlagSet("iicprog", flag.ContinueOnError)

	flagged := defaultConfig()
	path := fs.String("config", "", "json5 configuration file")
	fs.StringVar(&flagged.Backend, "backend", flagged.Backend, "register backend: sim or mmio")
	fs.StringVar(&flagged.Base, "base", flagged.Base, "physical base address of the controller registers")
	fs.StringVar(&flagged.TTY, "tty", flagged.TTY, "serial device for the operator terminal (empty uses stdin/stdout)")
	fs.UintVar(&flagged.Baud, "baud", flagged.Baud, "serial device baud rate")
	fs.IntVar(&flagged.PollAttempts, "poll-attempts", flagged.PollAttempts, "status reads before a wait times out")
	fs.StringVar(&flagged.PollInterval, "poll-interval", flagged.PollInterval, "sleep between status reads, e.g. 10us")
	fs.StringVar(&flagged.LogLevel, "log-level", flagged.LogLevel, "log level: trace, debug, info, warn or error")
	fs.IntVar(&flagged.SimWriteCycle, "sim-write-cycle", flagged.SimWriteCycle, "ACK polls refused by the simulator after each write")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	cfg := defaultConfig()
	if *path != "" {
		var err error
		if cfg, err = loadConfig(*path); err != nil {
			return Config{}, err
		}
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "backend":
			cfg.Backend = flagged.Backend
		case "base":
			cfg.Base = flagged.Base
		case "tty":
			cfg.TTY = flagged.TTY
		case "baud":
			cfg.Baud = flagged.Baud
		case "poll-attempts":
			cfg.PollAttempts = flagged.PollAttempts
		case "poll-interval":
			cfg.PollInterval = flagged.PollInterval
		case "log-level":
			cfg.LogLevel = flagged.LogLevel
		case "sim-write-cycle":
			cfg.SimWriteCycle = flagged.SimWriteCycle
		}
	})

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch c.Backend {
	case "sim", "mmio":
	default:
		return fmt.Errorf("unknown backend %q (want sim or mmio)", c.Backend)
	}
	if _, err := c.baseAddress(); err != nil {
		return err
	}
	if _, err := c.pollInterval(); err != nil {
		return err
	}
	if c.PollAttempts <= 0 {
		return fmt.Errorf("pollAttempts must be positive, got %d", c.PollAttempts)
	}
	if (c.SysClk == 0) != (c.SCL == 0) {
		return fmt.Errorf("sysclk and scl must be set together")
	}
	if c.SysClk != 0 {
		if _, err := iic.Prescale(c.SysClk, c.SCL); err != nil {
			return err
		}
	}
	return nil
}

// baseAddress parses Base, which may be decimal, 0x hex or 0 octal.
func (c Config) baseAddress() (uintptr, error) {
	v, err := strconv.ParseUint(c.Base, 0, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid base address %q: %w", c.Base, err)
	}
	return uintptr(v), nil
}

func (c Config) pollInterval() (time.Duration, error) {
	if c.PollInterval == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.PollInterval)
	if err != nil {
		return 0, fmt.Errorf("invalid poll interval %q: %w", c.PollInterval, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("poll interval %s is negative", d)
	}
	return d, nil
}
