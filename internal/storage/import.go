package storage

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/hstrade/harmonize/internal/model"
)

// ReadCatalogCSV parses a catalog CSV file into entries. The expected
// columns are code, description, chapter, mfn_rate, usmca_rate,
// source_country; a header row is detected and skipped. Rate columns may
// be empty and default to zero.
func ReadCatalogCSV(path string) ([]model.CatalogEntry, error) {
	if err := validateString(path, "path"); err != nil {
		return nil, err
	}

	f, err := os.Open(path) // #nosec G304 -- path supplied by the operator
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog file: %w", err)
	}
	defer func() { _ = f.Close() }()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	var entries []model.CatalogEntry
	line := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read catalog file at line %d: %w", line+1, err)
		}
		line++

		if line == 1 && isHeaderRow(record) {
			continue
		}

		entry, err := parseCatalogRecord(record)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		entries = append(entries, entry)
	}

	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: no catalog rows in %s", ErrEmptySlice, path)
	}
	return entries, nil
}

func isHeaderRow(record []string) bool {
	if len(record) == 0 {
		return false
	}
	first := strings.ToLower(strings.TrimSpace(record[0]))
	return first == "code" || first == "hs_code"
}

func parseCatalogRecord(record []string) (model.CatalogEntry, error) {
	if len(record) < 3 {
		return model.CatalogEntry{}, fmt.Errorf("%w: expected at least 3 columns, got %d", ErrInvalidEntry, len(record))
	}

	entry := model.CatalogEntry{
		Code:        strings.TrimSpace(record[0]),
		Description: strings.TrimSpace(record[1]),
	}

	chapter, err := strconv.Atoi(strings.TrimSpace(record[2]))
	if err != nil {
		return model.CatalogEntry{}, fmt.Errorf("%w: bad chapter %q", ErrInvalidEntry, record[2])
	}
	entry.Chapter = chapter

	if len(record) > 3 {
		if entry.MFNRate, err = parseRate(record[3]); err != nil {
			return model.CatalogEntry{}, err
		}
	}
	if len(record) > 4 {
		if entry.USMCARate, err = parseRate(record[4]); err != nil {
			return model.CatalogEntry{}, err
		}
	}
	if len(record) > 5 {
		entry.SourceCountry = strings.TrimSpace(record[5])
	}

	if err := entry.Validate(); err != nil {
		return model.CatalogEntry{}, fmt.Errorf("%w: %v", ErrInvalidEntry, err)
	}
	return entry, nil
}

func parseRate(field string) (float64, error) {
	trimmed := strings.TrimSpace(field)
	if trimmed == "" {
		return 0, nil
	}
	rate, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: bad rate %q", ErrInvalidEntry, field)
	}
	return rate, nil
}
