package ui

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestFormatRupees(t *testing.T) {
	tests := []struct {
		name  string
		value int64
		want  string
	}{
		{"zero", 0, "Rs. 0"},
		{"hundreds", 950, "Rs. 950"},
		{"thousands", 4500, "Rs. 4,500"},
		{"millions", 4500000, "Rs. 4,500,000"},
		{"exact_grouping", 1000000, "Rs. 1,000,000"},
		{"negative", -25000, "Rs. -25,000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatRupees(decimal.NewFromInt(tt.value))
			if got != tt.want {
				t.Errorf("FormatRupees(%d) = %q, want %q", tt.value, got, tt.want)
			}
		})
	}
}

func TestFormatRupeesTruncatesFractions(t *testing.T) {
	d, _ := decimal.NewFromString("1234.56")
	if got := FormatRupees(d); got != "Rs. 1,234" {
		t.Errorf("FormatRupees(1234.56) = %q, want whole rupees", got)
	}
}

func TestThemes(t *testing.T) {
	if LightTheme().IsDark {
		t.Error("LightTheme() reports dark")
	}
	if !DarkTheme().IsDark {
		t.Error("DarkTheme() reports light")
	}
	s := NewStyles(DarkTheme())
	if !s.Theme.IsDark {
		t.Error("NewStyles dropped the theme")
	}
}
