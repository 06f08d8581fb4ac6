package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/hstrade/harmonize/internal/model"
)

const entryColumns = `e.code, e.description, e.chapter, e.mfn_rate, e.usmca_rate, COALESCE(e.source_country, '')`

// SearchPhrase performs a full-text phrase search over catalog descriptions.
func (s *SQLiteStorage) SearchPhrase(ctx context.Context, phrase string, limit int) ([]model.CatalogEntry, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(phrase, "phrase"); err != nil {
		return nil, err
	}
	if err := validateLimit(limit); err != nil {
		return nil, err
	}

	return s.searchFTS(ctx, escapePhrase(phrase), nil, limit)
}

// SearchChapter performs a full-text search restricted to a single chapter.
// The conjunctive form is tried first; if it matches nothing, the search
// falls back to a disjunctive query for better recall.
func (s *SQLiteStorage) SearchChapter(ctx context.Context, query string, chapter, limit int) ([]model.CatalogEntry, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(query, "query"); err != nil {
		return nil, err
	}
	if err := validateLimit(limit); err != nil {
		return nil, err
	}

	words := ftsWords(query)
	if len(words) == 0 {
		return nil, nil
	}

	entries, err := s.searchFTS(ctx, strings.Join(words, " "), []int{chapter}, limit)
	if err != nil {
		return nil, err
	}
	if len(entries) > 0 {
		return entries, nil
	}

	return s.searchFTS(ctx, strings.Join(words, " OR "), []int{chapter}, limit)
}

// SearchHeading returns entries sharing a 4-digit heading prefix, excluding
// the given code.
func (s *SQLiteStorage) SearchHeading(ctx context.Context, heading, excludeCode string, limit int) ([]model.CatalogEntry, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(heading, "heading"); err != nil {
		return nil, err
	}
	if err := validateLimit(limit); err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM catalog_entries e
		WHERE e.code LIKE ? AND e.code != ?
		ORDER BY e.code
		LIMIT ?`, entryColumns)

	rows, err := s.db.QueryContext(ctx, query, heading+"%", excludeCode, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search heading %s: %w", heading, err)
	}
	defer func() { _ = rows.Close() }()

	return scanEntries(rows)
}

// SearchKeywords performs a disjunctive full-text search over the given
// keywords, optionally restricted to a chapter set.
func (s *SQLiteStorage) SearchKeywords(ctx context.Context, keywords []string, chapters []int, limit int) ([]model.CatalogEntry, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if len(keywords) == 0 {
		return nil, fmt.Errorf("%w: keywords", ErrEmptySlice)
	}
	if err := validateLimit(limit); err != nil {
		return nil, err
	}

	quoted := make([]string, 0, len(keywords))
	for _, k := range keywords {
		if w := strings.TrimSpace(k); w != "" {
			quoted = append(quoted, quoteWord(w))
		}
	}
	if len(quoted) == 0 {
		return nil, nil
	}

	return s.searchFTS(ctx, strings.Join(quoted, " OR "), chapters, limit)
}

// GetEntryByCode returns the catalog entry with the exact code, or nil
// when no such entry exists.
func (s *SQLiteStorage) GetEntryByCode(ctx context.Context, code string) (*model.CatalogEntry, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(code, "code"); err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`SELECT %s FROM catalog_entries e WHERE e.code = ?`, entryColumns)

	var entry model.CatalogEntry
	err := s.db.QueryRowContext(ctx, query, code).Scan(
		&entry.Code, &entry.Description, &entry.Chapter,
		&entry.MFNRate, &entry.USMCARate, &entry.SourceCountry)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get entry %s: %w", code, err)
	}

	return &entry, nil
}

// SearchCodePrefix returns entries whose code starts with the given prefix.
func (s *SQLiteStorage) SearchCodePrefix(ctx context.Context, prefix string, limit int) ([]model.CatalogEntry, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(prefix, "prefix"); err != nil {
		return nil, err
	}
	if err := validateLimit(limit); err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM catalog_entries e
		WHERE e.code LIKE ?
		ORDER BY e.code
		LIMIT ?`, entryColumns)

	rows, err := s.db.QueryContext(ctx, query, prefix+"%", limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search code prefix %s: %w", prefix, err)
	}
	defer func() { _ = rows.Close() }()

	return scanEntries(rows)
}

// MostCommonChapters returns the n chapters containing the most catalog
// entries, most populous first.
func (s *SQLiteStorage) MostCommonChapters(ctx context.Context, n int) ([]int, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateLimit(n); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT chapter
		FROM catalog_entries
		GROUP BY chapter
		ORDER BY COUNT(*) DESC, chapter
		LIMIT ?`, n)
	if err != nil {
		return nil, fmt.Errorf("failed to query common chapters: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var chapters []int
	for rows.Next() {
		var chapter int
		if err := rows.Scan(&chapter); err != nil {
			return nil, fmt.Errorf("failed to scan chapter: %w", err)
		}
		chapters = append(chapters, chapter)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate chapters: %w", err)
	}

	return chapters, nil
}

// SaveEntries inserts or replaces catalog entries and keeps the full-text
// index in sync.
func (s *SQLiteStorage) SaveEntries(ctx context.Context, entries []model.CatalogEntry) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateEntries(entries); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	insertEntry, err := tx.PrepareContext(ctx, `
		INSERT OR REPLACE INTO catalog_entries (code, description, chapter, mfn_rate, usmca_rate, source_country)
		VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare entry insert: %w", err)
	}
	defer func() { _ = insertEntry.Close() }()

	deleteFTS, err := tx.PrepareContext(ctx, `DELETE FROM catalog_fts WHERE code = ?`)
	if err != nil {
		return fmt.Errorf("failed to prepare fts delete: %w", err)
	}
	defer func() { _ = deleteFTS.Close() }()

	insertFTS, err := tx.PrepareContext(ctx, `INSERT INTO catalog_fts (code, description) VALUES (?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare fts insert: %w", err)
	}
	defer func() { _ = insertFTS.Close() }()

	for i := range entries {
		e := &entries[i]
		if _, err := insertEntry.ExecContext(ctx, e.Code, e.Description, e.Chapter, e.MFNRate, e.USMCARate, e.SourceCountry); err != nil {
			return fmt.Errorf("failed to insert entry %s: %w", e.Code, err)
		}
		if _, err := deleteFTS.ExecContext(ctx, e.Code); err != nil {
			return fmt.Errorf("failed to refresh fts for %s: %w", e.Code, err)
		}
		if _, err := insertFTS.ExecContext(ctx, e.Code, e.Description); err != nil {
			return fmt.Errorf("failed to index entry %s: %w", e.Code, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit entries: %w", err)
	}
	return nil
}

// CountEntries returns the number of catalog entries.
func (s *SQLiteStorage) CountEntries(ctx context.Context) (int64, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}

	var count int64
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM catalog_entries`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count entries: %w", err)
	}
	return count, nil
}

// searchFTS runs a MATCH expression against the full-text index, joined
// back to catalog_entries, optionally filtered to a chapter set. Shorter
// descriptions sort first so the densest matches survive the limit.
func (s *SQLiteStorage) searchFTS(ctx context.Context, matchExpr string, chapters []int, limit int) ([]model.CatalogEntry, error) {
	var sb strings.Builder
	fmt.Fprintf(&sb, `
		SELECT %s
		FROM catalog_fts f
		JOIN catalog_entries e ON e.code = f.code
		WHERE catalog_fts MATCH ?`, entryColumns)

	args := []any{matchExpr}
	if len(chapters) > 0 {
		sb.WriteString(" AND e.chapter IN (")
		for i, ch := range chapters {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString("?")
			args = append(args, ch)
		}
		sb.WriteString(")")
	}
	sb.WriteString(" ORDER BY length(e.description), e.code LIMIT ?")
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("full-text search failed for %q: %w", matchExpr, err)
	}
	defer func() { _ = rows.Close() }()

	return scanEntries(rows)
}

func scanEntries(rows *sql.Rows) ([]model.CatalogEntry, error) {
	var entries []model.CatalogEntry
	for rows.Next() {
		var entry model.CatalogEntry
		if err := rows.Scan(
			&entry.Code, &entry.Description, &entry.Chapter,
			&entry.MFNRate, &entry.USMCARate, &entry.SourceCountry); err != nil {
			return nil, fmt.Errorf("failed to scan catalog entry: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate catalog entries: %w", err)
	}
	return entries, nil
}

// escapePhrase quotes an entire phrase for an exact FTS phrase match,
// doubling any embedded quotes.
func escapePhrase(phrase string) string {
	return `"` + strings.ReplaceAll(phrase, `"`, `""`) + `"`
}

// quoteWord quotes a single term so FTS operators inside it are treated
// literally.
func quoteWord(word string) string {
	return `"` + strings.ReplaceAll(word, `"`, `""`) + `"`
}

// ftsWords splits a query into individually quoted match terms.
func ftsWords(query string) []string {
	fields := strings.Fields(query)
	words := make([]string, 0, len(fields))
	for _, f := range fields {
		words = append(words, quoteWord(f))
	}
	return words
}
