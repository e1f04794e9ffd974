package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatRupees renders an integer amount with Indian digit grouping,
// e.g. 1234567 -> "Rs 12,34,567".
func FormatRupees(amount int64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	return fmt.Sprintf("%sRs %s", sign, groupIndian(amount))
}

// ParseRupeesToInt parses "Rs 1,500" or "1500" into an integer rupee amount.
func ParseRupeesToInt(s string) (int64, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(strings.ToLower(s), "rs")
	replacer := strings.NewReplacer(",", "", ".", "", " ", "")
	s = replacer.Replace(s)
	if s == "" {
		return 0, fmt.Errorf("invalid rupee amount")
	}
	return strconv.ParseInt(s, 10, 64)
}

func groupIndian(n int64) string {
	str := strconv.FormatInt(n, 10)
	if len(str) <= 3 {
		return str
	}
	// last three digits keep together, then groups of two
	head := str[:len(str)-3]
	out := str[len(str)-3:]
	for len(head) > 2 {
		out = head[len(head)-2:] + "," + out
		head = head[:len(head)-2]
	}
	return head + "," + out
}
