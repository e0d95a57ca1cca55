package locale

import "testing"

func TestFormatCount(t *testing.T) {
	cases := []struct {
		in   int64
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1.0K"},
		{1500, "1.5K"},
		{2_300_000, "2.3M"},
		{1_100_000_000, "1.1B"},
	}
	for _, c := range cases {
		if got := FormatCount(c.in); got != c.want {
			t.Errorf("FormatCount(%d) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestFormatAmount(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{0, "0,00€"},
		{12.5, "12,50€"},
		{999.99, "999,99€"},
		{1500, "1.5K€"},
		{2_300_000, "2.3M€"},
		{1_100_000_000, "1.1B€"},
	}
	for _, c := range cases {
		if got := FormatAmount(c.in); got != c.want {
			t.Errorf("FormatAmount(%v) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestFormatPercent(t *testing.T) {
	if got := FormatPercent(83.33); got != "83,33%" {
		t.Errorf("FormatPercent(83.33) = %q, want %q", got, "83,33%")
	}
}
