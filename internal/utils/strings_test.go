package utils

import "testing"

func TestNormalizeSpace(t *testing.T) {
	if got := NormalizeSpace("  Asha   Traders "); got != "Asha Traders" {
		t.Errorf("NormalizeSpace = %q", got)
	}
	if got := NormalizeSpace("   "); got != "" {
		t.Errorf("NormalizeSpace(blank) = %q", got)
	}
}

func TestNormalizePhone(t *testing.T) {
	cases := map[string]string{
		"98220 01100":    "9822001100",
		"98-220-01100":   "9822001100",
		"(98220) 01100 ": "9822001100",
		"":               "",
	}
	for in, want := range cases {
		if got := NormalizePhone(in); got != want {
			t.Errorf("NormalizePhone(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestSafeFilenamePart(t *testing.T) {
	if got := SafeFilenamePart("TRP-16012026-001"); got != "TRP-16012026-001" {
		t.Errorf("SafeFilenamePart = %q", got)
	}
	if got := SafeFilenamePart("a/b\\c:d"); got != "a_b_c_d" {
		t.Errorf("SafeFilenamePart = %q", got)
	}
	if got := SafeFilenamePart("  "); got != "NA" {
		t.Errorf("SafeFilenamePart(blank) = %q", got)
	}
}
