package utils

import (
	"testing"
	"time"
)

func TestSerialDate(t *testing.T) {
	day := time.Date(2026, 1, 16, 23, 59, 0, 0, time.Local)
	if got := SerialDate(day); got != "16012026" {
		t.Errorf("SerialDate = %q, want 16012026", got)
	}
}

func TestFormatAndParseDate(t *testing.T) {
	day := time.Date(2026, 1, 16, 10, 0, 0, 0, time.Local)
	if got := FormatDate(day); got != "2026-01-16" {
		t.Errorf("FormatDate = %q", got)
	}
	parsed, err := ParseDate(" 2026-01-16 ")
	if err != nil {
		t.Fatalf("ParseDate error: %v", err)
	}
	if FormatDate(parsed) != "2026-01-16" {
		t.Errorf("round trip = %q", FormatDate(parsed))
	}
}
