package domain

import (
	"strconv"
	"strings"
	"time"
)

// DateLayout is the ISO date format the lease builder submits.
const DateLayout = "2006-01-02"

var amountReplacer = strings.NewReplacer("$", "", ",", "", " ", "")

// Amount coerces a money string such as "$1,500.00" to a number. Empty or
// malformed input is 0.
func Amount(s string) float64 {
	cleaned := amountReplacer.Replace(strings.TrimSpace(s))
	if cleaned == "" {
		return 0
	}
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0
	}
	return v
}

// Count coerces a whole-number string. Empty or malformed input is 0.
func Count(s string) int {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return v
}

// ParseDate accepts an ISO date or an RFC3339 timestamp.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}
	return time.Time{}, false
}
