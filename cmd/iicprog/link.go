package main

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/jacobsa/go-serial/serial"
	"golang.org/x/term"
)

// Control characters that end a raw-mode session.
const (
	ctrlC = 0x03
	ctrlD = 0x04
)

// link is the operator terminal: characters in, prompts and echo out.
type link struct {
	io.Reader
	io.Writer
	raw   bool
	close func() error
}

func (l *link) Close() error {
	if l.close == nil {
		return nil
	}
	return l.close()
}

// openLink opens the serial device named by tty, or puts the standard input
// terminal in raw mode when tty is empty. Output line feeds are sent as CR LF
// in both cases.
func openLink(tty string, baud uint) (*link, error) {
	if tty != "" {
		port, err := serial.Open(serial.OpenOptions{
			PortName:        tty,
			BaudRate:        baud,
			DataBits:        8,
			StopBits:        1,
			MinimumReadSize: 1,
		})
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", tty, err)
		}
		return &link{Reader: port, Writer: crlfWriter{port}, close: port.Close}, nil
	}

	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		// piped input: a scripted session
		return &link{Reader: os.Stdin, Writer: os.Stdout}, nil
	}

	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return nil, fmt.Errorf("set raw mode: %w", err)
	}
	return &link{
		Reader: &interruptReader{r: os.Stdin},
		Writer: crlfWriter{os.Stdout},
		raw:    true,
		close:  func() error { return term.Restore(fd, oldState) },
	}, nil
}

// crlfWriter turns every LF into CR LF for terminals in raw mode.
type crlfWriter struct {
	w io.Writer
}

func (c crlfWriter) Write(p []byte) (int, error) {
	if bytes.IndexByte(p, '\n') < 0 {
		return c.w.Write(p)
	}
	if _, err := c.w.Write(bytes.ReplaceAll(p, []byte("\n"), []byte("\r\n"))); err != nil {
		return 0, err
	}
	return len(p), nil
}

// interruptReader reports end of input when the operator types Ctrl-C or
// Ctrl-D, which raw mode delivers as plain characters.
type interruptReader struct {
	r    io.Reader
	done bool
}

func (ir *interruptReader) Read(p []byte) (int, error) {
	if ir.done {
		return 0, io.EOF
	}

	n, err := ir.r.Read(p)
	if i := bytes.IndexAny(p[:n], string([]byte{ctrlC, ctrlD})); i >= 0 {
		ir.done = true
		if i == 0 {
			return 0, io.EOF
		}
		return i, nil
	}
	return n, err
}
