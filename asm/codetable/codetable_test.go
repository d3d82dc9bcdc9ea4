package codetable

import "testing"

func TestEncodeCompKnownMnemonics(t *testing.T) {
	cases := map[string]string{
		"0":   "0101010",
		"D":   "0001100",
		"M":   "1110000",
		"D+A": "0000010",
		"D-M": "1010011",
	}
	for mnemonic, want := range cases {
		got, ok := EncodeComp(mnemonic)
		if !ok {
			t.Fatalf("EncodeComp(%q): not found", mnemonic)
		}
		if got != want {
			t.Errorf("EncodeComp(%q) = %q, want %q", mnemonic, got, want)
		}
	}
}

func TestEncodeCompUnknown(t *testing.T) {
	if _, ok := EncodeComp("D+D"); ok {
		t.Fatal("expected EncodeComp to reject an unknown mnemonic")
	}
}

func TestEncodeDestCanonicalization(t *testing.T) {
	cases := map[string]string{
		"":    "000",
		"M":   "001",
		"D":   "010",
		"MD":  "011",
		"A":   "100",
		"AM":  "101",
		"AD":  "110",
		"AMD": "111",
		// any permutation of the same letters maps to the same bits
		"DM":  "011",
		"MA":  "101",
		"DA":  "110",
		"MAD": "111",
	}
	for mnemonic, want := range cases {
		got, ok := EncodeDest(mnemonic)
		if !ok {
			t.Fatalf("EncodeDest(%q): not found", mnemonic)
		}
		if got != want {
			t.Errorf("EncodeDest(%q) = %q, want %q", mnemonic, got, want)
		}
	}
}

func TestEncodeDestRejectsGarbage(t *testing.T) {
	for _, bad := range []string{"X", "AA", "AMDX"} {
		if _, ok := EncodeDest(bad); ok {
			t.Errorf("EncodeDest(%q): expected rejection", bad)
		}
	}
}

func TestEncodeJump(t *testing.T) {
	cases := map[string]string{
		"":    "000",
		"JGT": "001",
		"JEQ": "010",
		"JGE": "011",
		"JLT": "100",
		"JNE": "101",
		"JLE": "110",
		"JMP": "111",
	}
	for mnemonic, want := range cases {
		got, ok := EncodeJump(mnemonic)
		if !ok || got != want {
			t.Errorf("EncodeJump(%q) = (%q, %v), want (%q, true)", mnemonic, got, ok, want)
		}
	}
}

// TestCRoundtrip checks the roundtrip property: decoding a
// C-command's 16-bit encoding back through the comp/dest/jump tables
// should yield the same fields it was built from.
func TestCRoundtrip(t *testing.T) {
	destMnemonics := []string{"", "M", "D", "MD", "A", "AM", "AD", "AMD"}
	compMnemonics := []string{"0", "1", "-1", "D", "A", "D+A", "D-M", "M", "!M", "D&M", "D|M"}
	jumpMnemonics := []string{"", "JGT", "JEQ", "JGE", "JLT", "JNE", "JLE", "JMP"}

	// build reverse maps once
	reverseComp := map[string]string{}
	for _, m := range compMnemonics {
		bits, ok := EncodeComp(m)
		if !ok {
			t.Fatalf("EncodeComp(%q) failed", m)
		}
		reverseComp[bits] = m
	}
	reverseDest := map[string]string{}
	for _, m := range destMnemonics {
		bits, _ := EncodeDest(m)
		reverseDest[bits] = m
	}
	reverseJump := map[string]string{}
	for _, m := range jumpMnemonics {
		bits, _ := EncodeJump(m)
		reverseJump[bits] = m
	}

	for _, d := range destMnemonics {
		for _, c := range compMnemonics {
			for _, j := range jumpMnemonics {
				destBits, _ := EncodeDest(d)
				compBits, _ := EncodeComp(c)
				jumpBits, _ := EncodeJump(j)

				gotDest := reverseDest[destBits]
				gotComp := reverseComp[compBits]
				gotJump := reverseJump[jumpBits]

				if gotDest != d || gotComp != c || gotJump != j {
					t.Errorf("roundtrip mismatch for dest=%q comp=%q jump=%q: got dest=%q comp=%q jump=%q",
						d, c, j, gotDest, gotComp, gotJump)
				}
			}
		}
	}
}
