package ui

import "testing"

func TestFormatMoney(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{0, "$0.00"},
		{1234.5, "$1,234.50"},
		{1000000, "$1,000,000.00"},
		{99.999, "$100.00"},
		{-50, "-$50.00"},
	}
	for _, tc := range cases {
		if got := FormatMoney(tc.in); got != tc.want {
			t.Errorf("FormatMoney(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Errorf("truncate should leave short strings alone, got %q", got)
	}
	if got := truncate("a very long opportunity name", 10); got != "a very lo…" {
		t.Errorf("truncate = %q", got)
	}
	if got := truncate("anything", 0); got != "" {
		t.Errorf("zero width should yield empty, got %q", got)
	}
}

func TestPadRight(t *testing.T) {
	if got := padRight("ab", 5); got != "ab   " {
		t.Errorf("padRight = %q", got)
	}
	if got := padRight("abcdef", 3); got != "abcdef" {
		t.Errorf("padRight should not trim, got %q", got)
	}
}
