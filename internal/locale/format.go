package locale

import "fmt"

// FormatCount renders a count with a human-scale suffix: 1.5K, 2.3M, 1.1B.
// Values under a thousand print as plain integers.
func FormatCount(v int64) string {
	switch {
	case v >= 1_000_000_000:
		return fmt.Sprintf("%.1fB", float64(v)/1_000_000_000)
	case v >= 1_000_000:
		return fmt.Sprintf("%.1fM", float64(v)/1_000_000)
	case v >= 1_000:
		return fmt.Sprintf("%.1fK", float64(v)/1_000)
	default:
		return fmt.Sprintf("%d", v)
	}
}

// FormatAmount renders a euro amount with a human-scale suffix and a
// trailing currency symbol. Amounts under a thousand keep full precision in
// French notation.
func FormatAmount(v float64) string {
	switch {
	case v >= 1_000_000_000:
		return fmt.Sprintf("%.1fB€", v/1_000_000_000)
	case v >= 1_000_000:
		return fmt.Sprintf("%.1fM€", v/1_000_000)
	case v >= 1_000:
		return fmt.Sprintf("%.1fK€", v/1_000)
	default:
		return FormatDecimal(v, 2) + "€"
	}
}

// FormatPercent renders a ratio already scaled to percent, 2 decimals,
// French notation.
func FormatPercent(v float64) string {
	return FormatDecimal(v, 2) + "%"
}
