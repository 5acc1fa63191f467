// Package conv formats integers into caller-provided buffers without fmt or
// strconv, so error messages stay allocation-light on TinyGo targets.
package conv

const hexd = "0123456789ABCDEF"

// Utoa writes the base-10 form of n into the tail of buf and returns it.
// buf should be length >= 20 for uint64; shorter buffers keep the low digits.
func Utoa(buf []byte, n uint64) []byte {
	if len(buf) == 0 {
		return buf[:0]
	}
	i := len(buf)
	if n == 0 {
		i--
		buf[i] = '0'
		return buf[i:]
	}
	for n > 0 && i > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	return buf[i:]
}

// U8Hex writes "0x" followed by two uppercase hex digits into the tail of
// buf. buf should be length >= 4.
func U8Hex(buf []byte, n uint8) []byte {
	if len(buf) < 4 {
		return buf[:0]
	}
	i := len(buf) - 4
	buf[i] = '0'
	buf[i+1] = 'x'
	buf[i+2] = hexd[n>>4]
	buf[i+3] = hexd[n&0xF]
	return buf[i:]
}
