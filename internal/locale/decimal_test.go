package locale

import (
	"math"
	"testing"
)

func TestParseDecimal(t *testing.T) {
	cases := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"336.578,01", 336578.01, true},
		{"12,5", 12.5, true},
		{"1000", 1000, true},
		{"1.000", 1000, true},
		{"1.234.567,89", 1234567.89, true},
		{"0,00", 0, true},
		{"-12,5", -12.5, true},
		{"  42,1  ", 42.1, true},
		{"", 0, false},
		{"   ", 0, false},
		{"nan", 0, false},
		{"NaN", 0, false},
		{"NULL", 0, false},
		{"null", 0, false},
		{"1,2,3", 0, false},
		{"abc", 0, false},
		{"12,3abc", 0, false},
	}
	for _, c := range cases {
		got, ok := ParseDecimal(c.in)
		if ok != c.ok {
			t.Errorf("ParseDecimal(%q) ok = %v, want %v", c.in, ok, c.ok)
			continue
		}
		if ok && math.Abs(got-c.want) > 1e-9 {
			t.Errorf("ParseDecimal(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestParseDecimal_RoundTrip(t *testing.T) {
	values := []float64{0, 0.01, 12.5, 999.99, 1000, 336578.01, 1234567.89, 99999999.95}
	for _, v := range values {
		s := FormatDecimal(v, 2)
		got, ok := ParseDecimal(s)
		if !ok {
			t.Errorf("round trip %v: ParseDecimal(%q) unparseable", v, s)
			continue
		}
		if math.Abs(got-v) > 1e-6 {
			t.Errorf("round trip %v -> %q -> %v", v, s, got)
		}
	}
}

func TestParseAmount_UnparseableToZero(t *testing.T) {
	for _, in := range []string{"", "nan", "1,2,3", "garbage"} {
		if got := ParseAmount(in); got != 0 {
			t.Errorf("ParseAmount(%q) = %v, want 0", in, got)
		}
	}
}

func TestParseBoxes(t *testing.T) {
	cases := []struct {
		in   string
		want int64
	}{
		{"12", 12},
		{"1.200", 1200},
		{"12,0", 12},
		{"0", 0},
		{"-5", 0},
		{"", 0},
		{"abc", 0},
	}
	for _, c := range cases {
		if got := ParseBoxes(c.in); got != c.want {
			t.Errorf("ParseBoxes(%q) = %d, want %d", c.in, got, c.want)
		}
	}
}

func TestFormatDecimal(t *testing.T) {
	cases := []struct {
		in       float64
		decimals int
		want     string
	}{
		{336578.01, 2, "336.578,01"},
		{1000, 0, "1.000"},
		{12.5, 2, "12,50"},
		{0, 2, "0,00"},
		{-1234.5, 2, "-1.234,50"},
	}
	for _, c := range cases {
		if got := FormatDecimal(c.in, c.decimals); got != c.want {
			t.Errorf("FormatDecimal(%v, %d) = %q, want %q", c.in, c.decimals, got, c.want)
		}
	}
}
