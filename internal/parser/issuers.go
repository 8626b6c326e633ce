package parser

import (
	"regexp"

	"github.com/insightdelivered/statement-parser/internal/models"
)

// IssuerProfile holds the field patterns for one card issuer's statement layout.
type IssuerProfile struct {
	// Key is the short identifier used on the command line (e.g. "hdfc").
	Key string
	// Name is the display name searched for in the statement text.
	Name     string
	Patterns map[models.FieldName]*regexp.Regexp
}

// Pattern returns the compiled pattern for field, or nil if the profile has none.
func (p *IssuerProfile) Pattern(field models.FieldName) *regexp.Regexp {
	return p.Patterns[field]
}

func newProfile(key, name string, patterns map[models.FieldName]string) *IssuerProfile {
	compiled := make(map[models.FieldName]*regexp.Regexp, len(patterns))
	for field, expr := range patterns {
		compiled[field] = regexp.MustCompile(`(?i)` + expr)
	}
	return &IssuerProfile{Key: key, Name: name, Patterns: compiled}
}

// profiles is checked in order; the first issuer named in the text wins.
var profiles = []*IssuerProfile{
	// HDFC Bank: "Card Number : XXXX XXXX XXXX 1234", dates DD/MM/YYYY
	newProfile("hdfc", "HDFC Bank", map[models.FieldName]string{
		models.FieldCardNumber:      `Card Number\s*:\s*XXXX XXXX XXXX (\d{4})`,
		models.FieldDueDate:         `Payment Due Date\s*:\s*(\d{2}/\d{2}/\d{4})`,
		models.FieldTotalDue:        `Total Amount Due\s*[|:\s]*([\d,]+\.\d{2})`,
		models.FieldStatementPeriod: `Statement Period\s*:\s*(\d{2}/\d{2}/\d{4} to \d{2}/\d{2}/\d{4})`,
	}),
	// ICICI Bank: dates DD-Mon-YYYY, period is the statement date
	newProfile("icici", "ICICI Bank", map[models.FieldName]string{
		models.FieldCardNumber:      `Card No\.\s*:\s*XXXX XXXX XXXX (\d{4})`,
		models.FieldDueDate:         `Due Date\s*:\s*(\d{2}-\w{3}-\d{4})`,
		models.FieldTotalDue:        `Total Amount Due\s*[:\s]*([\d,]+\.\d{2})`,
		models.FieldStatementPeriod: `Statement Date\s*:\s*(\d{2}-\w{3}-\d{4})`,
	}),
	// SBI Card: dates DD Mon YY, amounts prefixed with "Cr"
	newProfile("sbi", "SBI Card", map[models.FieldName]string{
		models.FieldCardNumber:      `CARD NO\.\s*:\s*XXXX XXXX XXXX (\d{4})`,
		models.FieldDueDate:         `Payment Due Date\s*(\d{2} \w{3} \d{2})`,
		models.FieldTotalDue:        `Total Amount Due\s*Cr\s*([\d,]+\.\d{2})`,
		models.FieldStatementPeriod: `Statement Date\s*(\d{2} \w{3} \d{2})`,
	}),
	// Axis Bank: amounts prefixed with "Rs."
	newProfile("axis", "Axis Bank", map[models.FieldName]string{
		models.FieldCardNumber:      `Card Number\s*XXXX XXXX XXXX (\d{4})`,
		models.FieldDueDate:         `Payment Due Date\s*:\s*(\d{2}-\w{3}-\d{4})`,
		models.FieldTotalDue:        `Total Amount Due\s*[:\s]*Rs\.\s*([\d,]+\.\d{2})`,
		models.FieldStatementPeriod: `Statement Date\s*:\s*(\d{2}-\w{3}-\d{4})`,
	}),
	// American Express: 5 trailing card digits, US-style dates
	newProfile("amex", "American Express", map[models.FieldName]string{
		models.FieldCardNumber:      `Cardmember\s*:.*\s*(\d{5})`,
		models.FieldDueDate:         `Please Pay By\s*:\s*(\w+\s\d{1,2},\s\d{4})`,
		models.FieldTotalDue:        `New Balance\s*[:\s]*\$?([\d,]+\.\d{2})`,
		models.FieldStatementPeriod: `Statement date\s*:\s*(\w+\s\d{1,2},\s\d{4})`,
	}),
}

// Profiles returns the supported issuers in detection order.
// The returned slice is a copy; the profiles themselves must not be modified.
func Profiles() []*IssuerProfile {
	return append([]*IssuerProfile(nil), profiles...)
}
