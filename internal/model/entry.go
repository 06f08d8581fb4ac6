// Package model defines the core domain models used throughout the application.
package model

import (
	"fmt"
	"strings"
)

// CatalogEntry represents one record in the tariff reference catalog.
// Entries are read-only from the classifier's perspective.
type CatalogEntry struct {
	Code          string
	Description   string
	SourceCountry string
	MFNRate       float64
	USMCARate     float64
	Chapter       int
}

// Validate ensures the CatalogEntry has valid data.
func (e *CatalogEntry) Validate() error {
	if e.Code == "" {
		return fmt.Errorf("catalog code is required")
	}
	if e.Description == "" {
		return fmt.Errorf("catalog description is required for code %s", e.Code)
	}
	if e.Chapter < 1 || e.Chapter > 99 {
		return fmt.Errorf("chapter must be between 1 and 99, got %d", e.Chapter)
	}
	return nil
}

// Heading returns the 4-digit heading prefix of the entry's code.
func (e *CatalogEntry) Heading() string {
	digits := DigitsOnly(e.Code)
	if len(digits) < 4 {
		return digits
	}
	return digits[:4]
}

// DigitsOnly strips formatting characters from a tariff code, leaving
// only its digit groups.
func DigitsOnly(code string) string {
	var b strings.Builder
	for _, r := range code {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// FormatCode renders a tariff code in dotted display form
// (e.g. 8544422000 -> 8544.42.20.00). Codes shorter than six digits are
// returned unchanged.
func FormatCode(code string) string {
	digits := DigitsOnly(code)
	if len(digits) < 6 {
		return code
	}

	parts := []string{digits[:4], digits[4:6]}
	for i := 6; i < len(digits); i += 2 {
		end := i + 2
		if end > len(digits) {
			end = len(digits)
		}
		parts = append(parts, digits[i:end])
	}
	return strings.Join(parts, ".")
}
