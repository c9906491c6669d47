// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// FormatTokenAmount formats a token stake with human-readable suffixes.
// e.g., 1234 -> "1.2K", 2000000 -> "2.0M"
func FormatTokenAmount(n float64) string {
	abs := math.Abs(n)

	switch {
	case abs >= 1_000_000_000:
		return fmt.Sprintf("%.1fB", n/1_000_000_000)
	case abs >= 1_000_000:
		return fmt.Sprintf("%.1fM", n/1_000_000)
	case abs >= 1_000:
		return fmt.Sprintf("%.1fK", n/1_000)
	default:
		return strconv.FormatFloat(n, 'f', -1, 64)
	}
}

// FormatUSD formats a USD amount. Negative amounts get a leading minus
// before the dollar sign, e.g. -1234.5 -> "-$1,235".
func FormatUSD(v float64) string {
	if v < 0 {
		s := FormatUSD(-v)
		if s == "$0.00" {
			return s
		}
		return "-" + s
	}
	if v >= 1000 {
		return "$" + FormatNumber(int64(math.Round(v)))
	}
	if v >= 100 {
		return fmt.Sprintf("$%.0f", v)
	}
	if v >= 10 {
		return fmt.Sprintf("$%.1f", v)
	}
	return fmt.Sprintf("$%.2f", v)
}

// FormatUSDExact formats with cents and thousands separators,
// e.g. 8242.098 -> "$8,242.10".
func FormatUSDExact(v float64) string {
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	cents := int64(math.Round(v * 100))
	if cents == 0 {
		sign = ""
	}
	return fmt.Sprintf("%s$%s.%02d", sign, FormatNumber(cents/100), cents%100)
}

// FormatNumber adds comma separators to an integer.
// e.g., 1234567 -> "1,234,567"
func FormatNumber(n int64) string {
	if n < 0 {
		return "-" + FormatNumber(-n)
	}

	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}

	var result strings.Builder
	remainder := len(s) % 3
	if remainder > 0 {
		result.WriteString(s[:remainder])
	}
	for i := remainder; i < len(s); i += 3 {
		if result.Len() > 0 {
			result.WriteByte(',')
		}
		result.WriteString(s[i : i+3])
	}
	return result.String()
}

// FormatPercent formats a 0-1 float as a percentage string.
func FormatPercent(f float64) string {
	return fmt.Sprintf("%.1f%%", f*100)
}

// FormatDelta formats a signed change, always with a sign.
func FormatDelta(current, previous float64) string {
	delta := current - previous
	if delta >= 0 {
		return "+" + FormatUSD(delta)
	}
	return FormatUSD(delta)
}

// FormatWeek formats a week number for tables and cards. Zero means
// the event never happened inside the horizon.
func FormatWeek(w int) string {
	if w <= 0 {
		return "never"
	}
	return fmt.Sprintf("week %d", w)
}
