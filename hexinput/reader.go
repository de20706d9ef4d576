package hexinput

import (
	"fmt"
	"io"
)

// ASCIIMask keeps the low seven bits of every character on the link.
const ASCIIMask = 0x7F

// Reader pulls characters one at a time from a serial link and echoes each of
// them back, the way a terminal-driven monitor does.
type Reader struct {
	r    io.Reader
	echo io.Writer
	buf  [1]byte
}

// NewReader creates a Reader on r. Every character read is echoed to echo,
// which may be nil to disable echo.
//
// Example:
//
//	in := hexinput.NewReader(port, port)
//	addr, err := in.ReadHexWord16(nil)
func NewReader(r io.Reader, echo io.Writer) *Reader {
	return &Reader{r: r, echo: echo}
}

// ReadChar blocks for one character, masks it to 7-bit ASCII and echoes it.
// At end of input the returned error wraps io.EOF.
func (r *Reader) ReadChar() (byte, error) {
	if _, err := io.ReadFull(r.r, r.buf[:]); err != nil {
		return 0, fmt.Errorf("read character: %w", err)
	}

	c := r.buf[0] & ASCIIMask
	if r.echo != nil {
		if _, err := r.echo.Write([]byte{c}); err != nil {
			return 0, fmt.Errorf("echo character: %w", err)
		}
	}
	return c, nil
}

// ReadHexByte reads two hex digits and returns their value. If sum is not nil
// the value is added into it.
func (r *Reader) ReadHexByte(sum *byte) (byte, error) {
	hi, err := r.ReadChar()
	if err != nil {
		return 0, err
	}
	lo, err := r.ReadChar()
	if err != nil {
		return 0, err
	}

	v := DecodeByte(hi, lo)
	if sum != nil {
		*sum += v
	}
	return v, nil
}

// ReadHexWord16 reads four hex digits as a big-endian 16-bit value.
func (r *Reader) ReadHexWord16(sum *byte) (uint16, error) {
	hi, err := r.ReadHexByte(sum)
	if err != nil {
		return 0, err
	}
	lo, err := r.ReadHexByte(sum)
	if err != nil {
		return 0, err
	}
	return uint16(hi)<<8 | uint16(lo), nil
}

// ReadHexWord24 reads six hex digits as a big-endian 24-bit value.
func (r *Reader) ReadHexWord24(sum *byte) (uint32, error) {
	hi, err := r.ReadHexWord16(sum)
	if err != nil {
		return 0, err
	}
	lo, err := r.ReadHexByte(sum)
	if err != nil {
		return 0, err
	}
	return uint32(hi)<<8 | uint32(lo), nil
}
