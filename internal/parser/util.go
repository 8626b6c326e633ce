package parser

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/insightdelivered/statement-parser/internal/models"
)

var (
	// Tesseract often reads the decimal point as ';' or ':'.
	ocrDecimalPattern = regexp.MustCompile(`(\d)[;:]\s*(\d{2})$`)
	currencyPrefix    = regexp.MustCompile(`(?i)^(rs\.?|inr|cr)\s*`)
)

// NormalizeAmount converts an extracted amount such as "1,234.56",
// "Rs. 1,234.56" or "$980.00" into a decimal value.
func NormalizeAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == models.NotFound {
		return decimal.Zero, fmt.Errorf("no amount to normalize")
	}

	s = currencyPrefix.ReplaceAllString(s, "")
	s = ocrDecimalPattern.ReplaceAllString(s, "$1.$2")
	s = strings.NewReplacer(
		"₹", "",
		"$", "",
		"£", "",
		"€", "",
		",", "",
		" ", "",
		"\u00a0", "",
	).Replace(s)

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return d, nil
}
