package locale

import (
	"strconv"
	"strings"
)

// ParseDecimal parses a French-formatted decimal string ("." thousands
// separator, "," decimal separator) into a float64. The second return is
// false when the input is not a number: empty, a null marker, more than one
// comma, or any unparseable remainder. The result is never a partial parse.
//
// This is the single locale-parsing implementation; every site that reads a
// REM/BSE amount goes through it.
func ParseDecimal(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	switch strings.ToLower(s) {
	case "nan", "null":
		return 0, false
	}

	if n := strings.Count(s, ","); n > 1 {
		// Ambiguous, refuse to guess.
		return 0, false
	} else if n == 1 {
		i := strings.LastIndex(s, ",")
		whole := strings.ReplaceAll(s[:i], ".", "")
		frac := s[i+1:]
		s = whole + "." + frac
	} else {
		// No decimal part: every dot is a thousands separator.
		s = strings.ReplaceAll(s, ".", "")
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// ParseAmount is ParseDecimal with the recovery policy of the pipeline:
// unparseable amounts become 0 so they never poison a sum as NaN.
func ParseAmount(s string) float64 {
	v, ok := ParseDecimal(s)
	if !ok {
		return 0
	}
	return v
}

// ParseBoxes parses a box count. Negative or non-numeric values are coerced
// to 0 rather than propagated.
func ParseBoxes(s string) int64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	// Some exports carry counts as "12,0" or "1.200".
	if v, ok := ParseDecimal(s); ok {
		if v < 0 {
			return 0
		}
		return int64(v)
	}
	return 0
}

// FormatDecimal renders v in French style with thousands dots and a decimal
// comma, e.g. 336578.01 -> "336.578,01". It is the round-trip partner of
// ParseDecimal.
func FormatDecimal(v float64, decimals int) string {
	s := strconv.FormatFloat(v, 'f', decimals, 64)

	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	whole, frac, hasFrac := strings.Cut(s, ".")

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}
	if hasFrac {
		b.WriteByte(',')
		b.WriteString(frac)
	}
	return b.String()
}
