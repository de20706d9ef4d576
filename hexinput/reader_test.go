package hexinput

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"
)

func TestDigit(t *testing.T) {
	const digits = "0123456789ABCDEF"

	for want := 0; want < 16; want++ {
		upper := digits[want]
		lower := strings.ToLower(digits[want : want+1])[0]

		if got := Digit(upper); int(got) != want {
			t.Errorf("Digit(%q) = %d, want %d", upper, got, want)
		}
		if got := Digit(lower); int(got) != want {
			t.Errorf("Digit(%q) = %d, want %d", lower, got, want)
		}
	}
}

func TestDecodeByteAllPairs(t *testing.T) {
	for v := 0; v < 256; v++ {
		for _, format := range []string{"%02X", "%02x"} {
			s := fmt.Sprintf(format, v)
			if got := DecodeByte(s[0], s[1]); int(got) != v {
				t.Fatalf("DecodeByte(%q) = 0x%02X, want 0x%02X", s, got, v)
			}
		}
	}
}

func TestDecodeByteGarbage(t *testing.T) {
	// garbage characters never panic and always yield some byte
	for hi := 0; hi < 128; hi++ {
		for lo := 0; lo < 128; lo++ {
			_ = DecodeByte(byte(hi), byte(lo))
		}
	}

	if got := DecodeByte('G', '0'); got != 0x00 {
		t.Errorf("DecodeByte('G','0') = 0x%02X, want 0x00", got)
	}
}

func TestReadHexByte(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  byte
	}{
		{name: "upper", input: "AB", want: 0xAB},
		{name: "lower", input: "cd", want: 0xCD},
		{name: "mixed", input: "eF", want: 0xEF},
		{name: "digits", input: "09", want: 0x09},
		{name: "high bit stripped", input: "\xB1\xB2", want: 0x12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var echo bytes.Buffer
			r := NewReader(strings.NewReader(tt.input), &echo)

			got, err := r.ReadHexByte(nil)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ReadHexByte() = 0x%02X, want 0x%02X", got, tt.want)
			}

			for _, c := range echo.Bytes() {
				if c > ASCIIMask {
					t.Errorf("echo contains 8-bit character 0x%02X", c)
				}
			}
			if echo.Len() != 2 {
				t.Errorf("echoed %d characters, want 2", echo.Len())
			}
		})
	}
}

func TestReadWords(t *testing.T) {
	r := NewReader(strings.NewReader("FFF0"+"00200a"), nil)

	w16, err := r.ReadHexWord16(nil)
	if err != nil {
		t.Fatalf("ReadHexWord16() error: %v", err)
	}
	if w16 != 0xFFF0 {
		t.Errorf("ReadHexWord16() = 0x%04X, want 0xFFF0", w16)
	}

	w24, err := r.ReadHexWord24(nil)
	if err != nil {
		t.Fatalf("ReadHexWord24() error: %v", err)
	}
	if w24 != 0x00200A {
		t.Errorf("ReadHexWord24() = 0x%06X, want 0x00200A", w24)
	}
}

func TestChecksumAccumulation(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		values []byte
	}{
		{name: "single", input: "7F", values: []byte{0x7F}},
		{name: "no overflow", input: "010203", values: []byte{1, 2, 3}},
		{name: "wraps", input: "FFFF02", values: []byte{0xFF, 0xFF, 0x02}},
		{name: "many", input: strings.Repeat("80", 9), values: bytes.Repeat([]byte{0x80}, 9)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewReader(strings.NewReader(tt.input), nil)

			var sum byte
			for range tt.values {
				if _, err := r.ReadHexByte(&sum); err != nil {
					t.Fatalf("ReadHexByte() error: %v", err)
				}
			}

			var want int
			for _, b := range tt.values {
				want += int(b)
			}
			if int(sum) != want%256 {
				t.Errorf("sum = 0x%02X, want 0x%02X", sum, want%256)
			}
			if sum != Sum(tt.values...) {
				t.Errorf("Sum() = 0x%02X, accumulator 0x%02X", Sum(tt.values...), sum)
			}
		})
	}
}

func TestWordChecksum(t *testing.T) {
	r := NewReader(strings.NewReader("0001F0"), nil)

	sum := byte(0x10)
	v, err := r.ReadHexWord24(&sum)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != 0x0001F0 {
		t.Errorf("value = 0x%06X", v)
	}
	// 0x10 + 0x00 + 0x01 + 0xF0 wraps to 0x01
	if sum != 0x01 {
		t.Errorf("sum = 0x%02X, want 0x01", sum)
	}
}

func TestEcho(t *testing.T) {
	var echo bytes.Buffer
	r := NewReader(strings.NewReader("0x1234"), &echo)

	if _, err := r.ReadChar(); err != nil {
		t.Fatal(err)
	}
	if _, err := r.ReadChar(); err != nil {
		t.Fatal(err)
	}
	if _, err := r.ReadHexWord16(nil); err != nil {
		t.Fatal(err)
	}

	if echo.String() != "0x1234" {
		t.Errorf("echo = %q, want %q", echo.String(), "0x1234")
	}
}

func TestEndOfInput(t *testing.T) {
	tests := []struct {
		name  string
		input string
		read  func(r *Reader) error
	}{
		{name: "empty", input: "", read: func(r *Reader) error { _, err := r.ReadChar(); return err }},
		{name: "half byte", input: "A", read: func(r *Reader) error { _, err := r.ReadHexByte(nil); return err }},
		{name: "short word", input: "123", read: func(r *Reader) error { _, err := r.ReadHexWord16(nil); return err }},
		{name: "short word24", input: "12345", read: func(r *Reader) error { _, err := r.ReadHexWord24(nil); return err }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.read(NewReader(strings.NewReader(tt.input), nil))
			if !errors.Is(err, io.EOF) {
				t.Errorf("error = %v, want io.EOF", err)
			}
		})
	}
}

type failWriter struct{}

func (failWriter) Write(p []byte) (int, error) { return 0, errors.New("link down") }

func TestEchoFailure(t *testing.T) {
	r := NewReader(strings.NewReader("A"), failWriter{})

	_, err := r.ReadChar()
	if err == nil || !strings.Contains(err.Error(), "link down") {
		t.Errorf("error = %v, want echo failure", err)
	}
}
