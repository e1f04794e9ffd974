package utils

import "testing"

func TestFormatRupees(t *testing.T) {
	cases := []struct {
		in   int64
		want string
	}{
		{0, "Rs 0"},
		{500, "Rs 500"},
		{1500, "Rs 1,500"},
		{12345, "Rs 12,345"},
		{123456, "Rs 1,23,456"},
		{1234567, "Rs 12,34,567"},
		{10000000, "Rs 1,00,00,000"},
		{-1500, "-Rs 1,500"},
	}
	for _, c := range cases {
		if got := FormatRupees(c.in); got != c.want {
			t.Errorf("FormatRupees(%d) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestParseRupeesToInt(t *testing.T) {
	cases := []struct {
		in   string
		want int64
	}{
		{"1500", 1500},
		{"Rs 1,500", 1500},
		{"rs 12,34,567", 1234567},
		{"  250 ", 250},
	}
	for _, c := range cases {
		got, err := ParseRupeesToInt(c.in)
		if err != nil {
			t.Errorf("ParseRupeesToInt(%q) error: %v", c.in, err)
			continue
		}
		if got != c.want {
			t.Errorf("ParseRupeesToInt(%q) = %d, want %d", c.in, got, c.want)
		}
	}

	if _, err := ParseRupeesToInt("  "); err == nil {
		t.Errorf("expected error for blank amount")
	}
	if _, err := ParseRupeesToInt("Rs abc"); err == nil {
		t.Errorf("expected error for non-numeric amount")
	}
}
