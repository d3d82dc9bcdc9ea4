// Package codetable holds the mnemonic-to-bitfield tables from spec
// §4.4: the 28 comp mnemonics, the 8 canonicalized dest mnemonics, and
// the 8 jump mnemonics (including "no jump").
package codetable

import "strings"

var compBits = map[string]string{
	"0": "0101010", "1": "0111111", "-1": "0111010",
	"D": "0001100", "A": "0110000", "!D": "0001101", "!A": "0110001",
	"-D": "0001111", "-A": "0110011", "D+1": "0011111", "A+1": "0110111",
	"D-1": "0001110", "A-1": "0110010", "D+A": "0000010", "D-A": "0010011",
	"A-D": "0000111", "D&A": "0000000", "D|A": "0010101",

	"M": "1110000", "!M": "1110001", "-M": "1110011", "M+1": "1110111",
	"M-1": "1110010", "D+M": "1000010", "D-M": "1010011", "M-D": "1000111",
	"D&M": "1000000", "D|M": "1010101",
}

var jumpBits = map[string]string{
	"": "000", "JGT": "001", "JEQ": "010", "JGE": "011",
	"JLT": "100", "JNE": "101", "JLE": "110", "JMP": "111",
}

// EncodeComp returns the 7-bit comp field for mnemonic, or false if it
// is not one of the 28 recognized mnemonics.
func EncodeComp(mnemonic string) (string, bool) {
	bits, ok := compBits[mnemonic]
	return bits, ok
}

// EncodeJump returns the 3-bit jump field for mnemonic ("" for no
// jump), or false if it is not recognized.
func EncodeJump(mnemonic string) (string, bool) {
	bits, ok := jumpBits[mnemonic]
	return bits, ok
}

// EncodeDest canonicalizes a dest mnemonic (any permutation of "A",
// "M", "D") and returns its 3-bit field, A/D/M from MSB to LSB. "" maps
// to "000" (null).
func EncodeDest(mnemonic string) (string, bool) {
	if mnemonic == "" {
		return "000", true
	}
	if len(mnemonic) > 3 {
		return "", false
	}
	a, d, m := false, false, false
	for _, ch := range mnemonic {
		switch ch {
		case 'A':
			a = true
		case 'D':
			d = true
		case 'M':
			m = true
		default:
			return "", false
		}
	}
	// Reject duplicate letters (e.g. "AA") by requiring the mnemonic's
	// length to match the number of distinct flags set.
	distinct := 0
	for _, set := range []bool{a, d, m} {
		if set {
			distinct++
		}
	}
	if distinct != len(mnemonic) {
		return "", false
	}

	return strings.Join([]string{bit(a), bit(d), bit(m)}, ""), true
}

func bit(set bool) string {
	if set {
		return "1"
	}
	return "0"
}
