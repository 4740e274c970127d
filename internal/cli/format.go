// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

// FormatMetric formats an average with thousands separators and at most
// two decimals. e.g., 10.2 -> "10.2", 1234.567 -> "1,234.57"
func FormatMetric(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "n/a"
	}
	return humanize.CommafWithDigits(round(v, 2), 2)
}

// FormatMillis formats a latency given in milliseconds.
// e.g., 150 -> "150 ms", 27.5 -> "27.5 ms", 1850 -> "1.85 s"
func FormatMillis(ms float64) string {
	if ms >= 1000 {
		return humanize.CommafWithDigits(round(ms/1000, 2), 2) + " s"
	}
	return humanize.CommafWithDigits(round(ms, 1), 1) + " ms"
}

// round rounds half away from zero; humanize truncates extra digits.
func round(v float64, digits int) float64 {
	p := math.Pow(10, float64(digits))
	return math.Round(v*p) / p
}

// FormatOptional formats a possibly missing field, showing "-" when absent.
func FormatOptional(v *float64, format func(float64) string) string {
	if v == nil {
		return "-"
	}
	return format(*v)
}

// FormatNumber adds comma separators to an integer.
// e.g., 1234567 -> "1,234,567"
func FormatNumber(n int64) string {
	return humanize.Comma(n)
}

// FormatBytes formats a file size. e.g., 2048 -> "2.0 kB"
func FormatBytes(n int64) string {
	if n < 0 {
		n = 0
	}
	return humanize.Bytes(uint64(n))
}

// FormatAge formats a time relative to now. e.g., "3 minutes ago"
func FormatAge(t time.Time) string {
	if t.IsZero() {
		return "never"
	}
	return humanize.Time(t)
}

// FormatPercent formats a 0-1 float as a percentage string.
func FormatPercent(f float64) string {
	return fmt.Sprintf("%.1f%%", f*100)
}

// Truncate shortens s to max runes, marking the cut with an ellipsis.
func Truncate(s string, max int) string {
	s = strings.Join(strings.Fields(s), " ")
	r := []rune(s)
	if max <= 0 || len(r) <= max {
		return s
	}
	if max == 1 {
		return "…"
	}
	return string(r[:max-1]) + "…"
}
