package util

import "testing"

func TestParseAmountPaise_Valid(t *testing.T) {
	cases := []struct {
		in   string
		want int64
	}{
		{"150", 15000},
		{"150.00", 15000},
		{"0.01", 1},
		{"1234.5", 123450},
		{" 99.99 ", 9999},
		{"12.340", 1234}, // trailing zero beyond two decimals is still exact
	}
	for _, tc := range cases {
		got, err := ParseAmountPaise(tc.in)
		if err != nil {
			t.Errorf("ParseAmountPaise(%q) error = %v, want nil", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseAmountPaise(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestParseAmountPaise_Invalid(t *testing.T) {
	cases := []string{
		"",
		"abc",
		"NaN",
		"12,34",
		"--5",
		"0",
		"0.00",
		"-150",
		"10000000000000",
		"12.345", // sub-paise precision is rejected, not rounded
		"0.001",
	}
	for _, in := range cases {
		if _, err := ParseAmountPaise(in); err == nil {
			t.Errorf("ParseAmountPaise(%q) error = nil, want error", in)
		}
	}
}

func TestParsePaise_AllowsNegative(t *testing.T) {
	got, err := ParsePaise("-250.50")
	if err != nil {
		t.Fatalf("ParsePaise(-250.50) error = %v", err)
	}
	if got != -25050 {
		t.Errorf("ParsePaise(-250.50) = %d, want -25050", got)
	}
}

func TestFormatPaise(t *testing.T) {
	cases := []struct {
		in   int64
		want string
	}{
		{15000, "150.00"},
		{1, "0.01"},
		{-25050, "-250.50"},
		{0, "0.00"},
	}
	for _, tc := range cases {
		if got := FormatPaise(tc.in); got != tc.want {
			t.Errorf("FormatPaise(%d) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestParseDate(t *testing.T) {
	valid := []string{
		"2026-08-30",
		"2026-08-30T10:15:00",
		"2026-08-30T10:15:00+05:30",
	}
	for _, in := range valid {
		if _, err := ParseDate(in); err != nil {
			t.Errorf("ParseDate(%q) error = %v, want nil", in, err)
		}
	}

	invalid := []string{"", "30/08/2026", "not-a-date", "2026-13-01"}
	for _, in := range invalid {
		if _, err := ParseDate(in); err == nil {
			t.Errorf("ParseDate(%q) error = nil, want error", in)
		}
	}
}

func TestValidCurrency(t *testing.T) {
	for _, code := range []string{"INR", "USD", "EUR"} {
		if !ValidCurrency(code) {
			t.Errorf("ValidCurrency(%q) = false, want true", code)
		}
	}
	for _, code := range []string{"", "inr", "RUPEE", "IN"} {
		if ValidCurrency(code) {
			t.Errorf("ValidCurrency(%q) = true, want false", code)
		}
	}
}
