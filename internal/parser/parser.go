package parser

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/insightdelivered/statement-parser/internal/models"
)

// ErrUnsupportedIssuer is returned when the text names none of the known issuers.
var ErrUnsupportedIssuer = errors.New("could not determine the credit card issuer")

// Detect identifies the issuer from the statement text. The first profile whose
// display name appears in the text (ignoring case) is returned.
func Detect(text string) (*IssuerProfile, error) {
	lower := strings.ToLower(text)
	for _, p := range profiles {
		if strings.Contains(lower, strings.ToLower(p.Name)) {
			return p, nil
		}
	}
	return nil, ErrUnsupportedIssuer
}

// Extract applies each of the profile's field patterns to text. A field whose
// pattern does not match is reported as models.NotFound; fields never affect
// each other.
func Extract(p *IssuerProfile, text string) models.ExtractionResult {
	result := models.NewExtractionResult(p.Name)
	for _, field := range models.Fields {
		if v, ok := matchField(p.Pattern(field), text); ok {
			result.Set(field, v)
		}
	}
	return result
}

// Parse detects the issuer and extracts its fields.
func Parse(text string) (models.ExtractionResult, error) {
	p, err := Detect(text)
	if err != nil {
		return models.ExtractionResult{}, err
	}
	return Extract(p, text), nil
}

// Lookup returns the profile with the given key or display name.
func Lookup(name string) (*IssuerProfile, error) {
	for _, p := range profiles {
		if strings.EqualFold(p.Key, name) || strings.EqualFold(p.Name, name) {
			return p, nil
		}
	}
	return nil, fmt.Errorf("unsupported issuer %q: %w", name, ErrUnsupportedIssuer)
}

// Keys returns the short identifiers of all supported issuers.
func Keys() []string {
	keys := make([]string, 0, len(profiles))
	for _, p := range profiles {
		keys = append(keys, p.Key)
	}
	return keys
}

func matchField(re *regexp.Regexp, text string) (string, bool) {
	if re == nil {
		return "", false
	}
	m := re.FindStringSubmatch(text)
	if len(m) < 2 {
		return "", false
	}
	return strings.TrimSpace(m[1]), true
}
