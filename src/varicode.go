package satcam

/*------------------------------------------------------------------
 *
 * Purpose:	Varicode, the PSK31 character code.
 *
 * Description:	Each character is a run of 1 to 10 bits which starts
 *		and ends with 1 and never holds two 0 bits in a row.
 *		Characters are separated by "00" so a receiver can find
 *		the boundaries without any framing.  Common lower case
 *		letters get the shortest codes.
 *
 *---------------------------------------------------------------*/

import "strings"

// varicode is indexed by 7 bit ASCII.
var varicode = [128]string{
	"1010101011", // NUL
	"1011011011", // SOH
	"1011101101", // STX
	"1101110111", // ETX
	"1011101011", // EOT
	"1101011111", // ENQ
	"1011101111", // ACK
	"1011111101", // BEL
	"1011111111", // BS
	"11101111",   // HT
	"11101",      // LF
	"1101101111", // VT
	"1011011101", // FF
	"11111",      // CR
	"1101110101", // SO
	"1110101011", // SI
	"1011110111", // DLE
	"1011110101", // DC1
	"1110101101", // DC2
	"1110101111", // DC3
	"1101011011", // DC4
	"1101101011", // NAK
	"1101101101", // SYN
	"1101010111", // ETB
	"1101111011", // CAN
	"1101111101", // EM
	"1110110111", // SUB
	"1101010101", // ESC
	"1101011101", // FS
	"1110111011", // GS
	"1011111011", // RS
	"1101111111", // US
	"1",          // space
	"111111111",  // !
	"101011111",  // "
	"111110101",  // #
	"111011011",  // $
	"1011010101", // %
	"1010111011", // &
	"101111111",  // '
	"11111011",   // (
	"11110111",   // )
	"101101111",  // *
	"111011111",  // +
	"1110101",    // ,
	"110101",     // -
	"1010111",    // .
	"110101111",  // /
	"10110111",   // 0
	"10111101",   // 1
	"11101101",   // 2
	"11111111",   // 3
	"101110111",  // 4
	"101011011",  // 5
	"101101011",  // 6
	"110101101",  // 7
	"110101011",  // 8
	"110110111",  // 9
	"11110101",   // :
	"110111101",  // ;
	"111101101",  // <
	"1010101",    // =
	"111010111",  // >
	"1010101111", // ?
	"1010111101", // @
	"1111101",    // A
	"11101011",   // B
	"10101101",   // C
	"10110101",   // D
	"1110111",    // E
	"11011011",   // F
	"11111101",   // G
	"101010101",  // H
	"1111111",    // I
	"111111101",  // J
	"101111101",  // K
	"11010111",   // L
	"10111011",   // M
	"11011101",   // N
	"10101011",   // O
	"11010101",   // P
	"111011101",  // Q
	"10101111",   // R
	"1101111",    // S
	"1101101",    // T
	"101010111",  // U
	"110110101",  // V
	"101011101",  // W
	"101110101",  // X
	"101111011",  // Y
	"1010101101", // Z
	"111110111",  // [
	"111101111",  // \
	"111111011",  // ]
	"1010111111", // ^
	"101101101",  // _
	"1011011111", // `
	"1011",       // a
	"1011111",    // b
	"101111",     // c
	"101101",     // d
	"11",         // e
	"111101",     // f
	"1011011",    // g
	"101011",     // h
	"1101",       // i
	"111101011",  // j
	"10111111",   // k
	"11011",      // l
	"111011",     // m
	"1111",       // n
	"111",        // o
	"111111",     // p
	"110111111",  // q
	"10101",      // r
	"10111",      // s
	"101",        // t
	"110111",     // u
	"1111011",    // v
	"1101011",    // w
	"11011111",   // x
	"1011101",    // y
	"111010101",  // z
	"1010110111", // {
	"110111011",  // |
	"1010110101", // }
	"1011010111", // ~
	"1110110101", // DEL
}

// VaricodeBits returns the symbols sent for one character, most
// significant first: the "00" separator followed by the code.
// Only the low 7 bits of c are used.
func VaricodeBits(c byte) []bool {
	var code = varicode[c&0x7f]

	var bits = make([]bool, 0, len(code)+2)
	bits = append(bits, false, false)
	for _, b := range code {
		bits = append(bits, b == '1')
	}

	return bits
}

// VaricodeDecoder turns received symbols back into characters.
// It is the receiving half, used to check what we transmit.
type VaricodeDecoder struct {
	code  strings.Builder
	zeros int
	out   strings.Builder
}

var varicodeLookup = func() map[string]byte {
	var m = make(map[string]byte, len(varicode))
	for i, code := range varicode {
		m[code] = byte(i)
	}
	return m
}()

func (d *VaricodeDecoder) Bit(one bool) {
	if one {
		if d.zeros == 1 {
			d.code.WriteByte('0')
		}
		d.zeros = 0
		d.code.WriteByte('1')
		return
	}

	d.zeros++
	if d.zeros == 2 && d.code.Len() > 0 {
		if c, ok := varicodeLookup[d.code.String()]; ok {
			d.out.WriteByte(c)
		}
		d.code.Reset()
	}
}

// String is everything decoded so far.
func (d *VaricodeDecoder) String() string {
	return d.out.String()
}
