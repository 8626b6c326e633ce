package parser

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestNormalizeAmount(t *testing.T) {
	tests := []struct {
		input    string
		expected string
		wantErr  bool
	}{
		{"1,234.56", "1234.56", false},
		{"Rs. 3,000.00", "3000", false},
		{"rs 45.50", "45.5", false},
		{"Cr 5,678.90", "5678.9", false},
		{"$980.00", "980", false},
		{"₹12,500.00", "12500", false},
		{" 25.99 ", "25.99", false},
		{"19,720;15", "19720.15", false},
		{"19,720: 15", "19720.15", false},
		{"Not Found", "", true},
		{"", "", true},
		{"abc", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := NormalizeAmount(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("expected error, got %s", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !got.Equal(decimal.RequireFromString(tt.expected)) {
				t.Errorf("got %s, want %s", got, tt.expected)
			}
		})
	}
}
