package hexinput

// Digit converts one ASCII hex character to its value. Characters above 'F'
// are taken as lower case. Nothing is validated: a non-hex character yields an
// arbitrary but harmless value.
func Digit(ch byte) byte {
	switch {
	case ch <= '9':
		return ch - '0'
	case ch > 'F':
		return ch - ('a' - 10)
	default:
		return ch - ('A' - 10)
	}
}

// DecodeByte combines two hex characters, high digit first. The result is
// truncated to 8 bits.
func DecodeByte(hi, lo byte) byte {
	return Digit(hi)<<4 | Digit(lo)
}

// Sum adds values modulo 256, the same running sum ReadHexByte accumulates.
func Sum(values ...byte) byte {
	var sum byte
	for _, v := range values {
		sum += v
	}
	return sum
}
