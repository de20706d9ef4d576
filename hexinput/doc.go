// Package hexinput reads hex numbers typed on a serial console.
//
// Input arrives one character at a time. Each character is masked to 7-bit
// ASCII and echoed back, then pairs of characters are combined into bytes:
//
//	in := hexinput.NewReader(os.Stdin, os.Stdout)
//	var sum byte
//	size, err := in.ReadHexWord24(&sum) // "0001F0" -> 0x0001F0, sum = 0xF1
//
// Digits are converted without validation, so stray characters produce wrong
// values rather than errors. Only I/O failures are reported.
package hexinput
