package util

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseQuarter splits a "YYYYQn" period string into year and quarter number.
// Returns ok=false for anything that does not match the format or has a
// quarter outside 1..4.
func ParseQuarter(s string) (year, quarter int, ok bool) {
	parts := strings.SplitN(strings.ToUpper(strings.TrimSpace(s)), "Q", 2)
	if len(parts) != 2 {
		return 0, 0, false
	}
	y, err := strconv.Atoi(parts[0])
	if err != nil || y <= 0 {
		return 0, 0, false
	}
	q, err := strconv.Atoi(parts[1])
	if err != nil || q < 1 || q > 4 {
		return 0, 0, false
	}
	return y, q, true
}

// FormatQuarter renders a (year, quarter) pair as "YYYYQn".
func FormatQuarter(year, quarter int) string {
	return fmt.Sprintf("%dQ%d", year, quarter)
}

// QuarterIndex maps a period to a monotonically increasing integer so
// periods can be compared and stepped with plain arithmetic.
func QuarterIndex(year, quarter int) int {
	return year*4 + quarter - 1
}

// NextQuarter returns the period `steps` quarters after current.
// Malformed input falls back to counting from 2025Q1, matching the
// prediction fallback base period.
func NextQuarter(current string, steps int) string {
	y, q, ok := ParseQuarter(current)
	if !ok {
		y, q = 2025, 1
		steps--
	}
	total := QuarterIndex(y, q) + steps
	return FormatQuarter(total/4, total%4+1)
}

// CompareQuarters orders two period strings chronologically. Malformed
// periods sort before well-formed ones.
func CompareQuarters(a, b string) int {
	ay, aq, aok := ParseQuarter(a)
	by, bq, bok := ParseQuarter(b)
	if !aok || !bok {
		switch {
		case aok == bok:
			return strings.Compare(a, b)
		case !aok:
			return -1
		default:
			return 1
		}
	}
	return QuarterIndex(ay, aq) - QuarterIndex(by, bq)
}
