package storage

import (
	"context"
	"fmt"
	"strings"

	"github.com/hstrade/harmonize/internal/service"
)

// LookupKeywordMappings returns the keyword->chapter records matching any
// of the given words. Words without a mapping are simply absent from the
// result; that is not an error.
func (s *SQLiteStorage) LookupKeywordMappings(ctx context.Context, words []string) ([]service.KeywordMapping, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if len(words) == 0 {
		return nil, nil
	}

	var sb strings.Builder
	sb.WriteString(`
		SELECT keyword, industry_type, chapter
		FROM industry_keywords
		WHERE keyword IN (`)
	args := make([]any, 0, len(words))
	for i, w := range words {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString("?")
		args = append(args, w)
	}
	sb.WriteString(") ORDER BY keyword, chapter")

	rows, err := s.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to look up keyword mappings: %w", err)
	}
	defer func() { _ = rows.Close() }()

	// Rows are one chapter each; fold them back into per-keyword mappings.
	byKeyword := make(map[string]int)
	var mappings []service.KeywordMapping
	for rows.Next() {
		var keyword, industryType string
		var chapter int
		if err := rows.Scan(&keyword, &industryType, &chapter); err != nil {
			return nil, fmt.Errorf("failed to scan keyword mapping: %w", err)
		}

		idx, ok := byKeyword[keyword]
		if !ok {
			mappings = append(mappings, service.KeywordMapping{
				Keyword:      keyword,
				IndustryType: industryType,
			})
			idx = len(mappings) - 1
			byKeyword[keyword] = idx
		}
		mappings[idx].Chapters = append(mappings[idx].Chapters, chapter)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate keyword mappings: %w", err)
	}

	return mappings, nil
}

// LookupBusinessTypeChapters returns the chapters associated with a
// business type. An unknown business type yields an empty set.
func (s *SQLiteStorage) LookupBusinessTypeChapters(ctx context.Context, businessType string) ([]int, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if strings.TrimSpace(businessType) == "" {
		return nil, nil
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT chapter
		FROM business_type_chapters
		WHERE business_type = ?
		ORDER BY chapter`, strings.ToLower(businessType))
	if err != nil {
		return nil, fmt.Errorf("failed to look up business type chapters: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var chapters []int
	for rows.Next() {
		var chapter int
		if err := rows.Scan(&chapter); err != nil {
			return nil, fmt.Errorf("failed to scan business type chapter: %w", err)
		}
		chapters = append(chapters, chapter)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate business type chapters: %w", err)
	}

	return chapters, nil
}
