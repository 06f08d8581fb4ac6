package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
)

// ExpectedSchemaVersion is the latest schema version that the application expects.
// If the database cannot be migrated to this version, it's a fatal error.
const ExpectedSchemaVersion = 3

// Migration represents a database schema migration.
type Migration struct {
	Up          func(*sql.Tx) error
	Description string
	Version     int
}

var migrations = []Migration{
	{
		Version:     1,
		Description: "Catalog schema with full-text index",
		Up: func(tx *sql.Tx) error {
			queries := []string{
				`CREATE TABLE IF NOT EXISTS catalog_entries (
					code TEXT PRIMARY KEY,
					description TEXT NOT NULL,
					chapter INTEGER NOT NULL,
					mfn_rate REAL NOT NULL DEFAULT 0,
					usmca_rate REAL NOT NULL DEFAULT 0,
					source_country TEXT,
					created_at DATETIME DEFAULT CURRENT_TIMESTAMP
				)`,
				`CREATE INDEX idx_catalog_chapter ON catalog_entries(chapter)`,

				// FTS4 ships enabled in the bundled driver; the code column
				// is carried for joins only, not indexed.
				`CREATE VIRTUAL TABLE catalog_fts USING fts4(code, description, notindexed=code)`,
			}

			for _, query := range queries {
				if _, err := tx.Exec(query); err != nil {
					return fmt.Errorf("failed to execute query: %w", err)
				}
			}
			return nil
		},
	},
	{
		Version:     2,
		Description: "Industry keyword to chapter mappings",
		Up: func(tx *sql.Tx) error {
			queries := []string{
				`CREATE TABLE IF NOT EXISTS industry_keywords (
					keyword TEXT NOT NULL,
					industry_type TEXT NOT NULL,
					chapter INTEGER NOT NULL,
					PRIMARY KEY (keyword, chapter)
				)`,
				`CREATE INDEX idx_industry_keywords_keyword ON industry_keywords(keyword)`,
			}

			for _, query := range queries {
				if _, err := tx.Exec(query); err != nil {
					return fmt.Errorf("failed to execute query: %w", err)
				}
			}

			return seedKeywordMappings(tx)
		},
	},
	{
		Version:     3,
		Description: "Business type to chapter mappings",
		Up: func(tx *sql.Tx) error {
			queries := []string{
				`CREATE TABLE IF NOT EXISTS business_type_chapters (
					business_type TEXT NOT NULL,
					chapter INTEGER NOT NULL,
					PRIMARY KEY (business_type, chapter)
				)`,
			}

			for _, query := range queries {
				if _, err := tx.Exec(query); err != nil {
					return fmt.Errorf("failed to execute query: %w", err)
				}
			}

			return seedBusinessTypeChapters(tx)
		},
	},
}

// keywordSeed maps product keywords to the industry type and tariff
// chapters that industry typically classifies into. Loaded once at
// migration time; operators can extend the table afterwards.
type keywordSeed struct {
	keyword      string
	industryType string
	chapters     []int
}

var keywordSeeds = []keywordSeed{
	// Electrical and electronics
	{"electrical", "electrical", []int{84, 85}},
	{"electronic", "electrical", []int{85, 90}},
	{"wire", "electrical", []int{85}},
	{"cable", "electrical", []int{85}},
	{"conductor", "electrical", []int{85}},
	{"connector", "electrical", []int{85}},
	{"semiconductor", "electrical", []int{85}},
	{"circuit", "electrical", []int{85}},
	{"transformer", "electrical", []int{85}},
	{"motor", "electrical", []int{85}},
	{"battery", "electrical", []int{85}},

	// Plastics and rubber
	{"plastic", "plastics", []int{39}},
	{"polymer", "plastics", []int{39}},
	{"resin", "plastics", []int{39}},
	{"rubber", "plastics", []int{40}},
	{"tube", "plastics", []int{39, 85}},
	{"sheathing", "plastics", []int{39, 85}},

	// Machinery
	{"machine", "machinery", []int{84}},
	{"engine", "machinery", []int{84, 87}},
	{"pump", "machinery", []int{84}},
	{"compressor", "machinery", []int{84}},
	{"bearing", "machinery", []int{84}},

	// Automotive
	{"automotive", "automotive", []int{87}},
	{"vehicle", "automotive", []int{87}},
	{"car", "automotive", []int{87}},
	{"truck", "automotive", []int{87}},

	// Metals
	{"steel", "metals", []int{72, 73}},
	{"iron", "metals", []int{72, 73}},
	{"aluminum", "metals", []int{76}},
	{"copper", "metals", []int{74, 85}},
	{"metal", "metals", []int{72, 73, 74, 75, 76}},

	// Textiles
	{"textile", "textile", []int{52, 54, 55, 60, 61, 62, 63}},
	{"fabric", "textile", []int{52, 54, 55, 58, 59, 60}},
	{"clothing", "textile", []int{61, 62}},
	{"apparel", "textile", []int{61, 62}},

	// Chemicals
	{"chemical", "chemical", []int{28, 29, 32, 34, 38}},
	{"pharmaceutical", "chemical", []int{30}},
	{"paint", "chemical", []int{32}},
	{"cosmetic", "chemical", []int{33}},

	// Wood and paper
	{"wood", "wood", []int{44}},
	{"lumber", "wood", []int{44}},
	{"paper", "wood", []int{48}},
	{"cardboard", "wood", []int{48}},

	// Medical
	{"medical", "medical", []int{90, 30}},
	{"surgical", "medical", []int{90}},
	{"diagnostic", "medical", []int{90}},

	// Food and agriculture
	{"food", "agricultural", []int{16, 17, 18, 19, 20, 21}},
	{"grain", "agricultural", []int{10, 11}},
	{"meat", "agricultural", []int{2, 16}},
	{"dairy", "agricultural", []int{4}},
	{"fruit", "agricultural", []int{7, 8, 20}},
	{"vegetable", "agricultural", []int{7, 20}},
}

func seedKeywordMappings(tx *sql.Tx) error {
	stmt, err := tx.Prepare(`INSERT OR IGNORE INTO industry_keywords (keyword, industry_type, chapter) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare keyword seed statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, seed := range keywordSeeds {
		for _, chapter := range seed.chapters {
			if _, err := stmt.Exec(seed.keyword, seed.industryType, chapter); err != nil {
				return fmt.Errorf("failed to seed keyword %q: %w", seed.keyword, err)
			}
		}
	}
	return nil
}

var businessTypeSeeds = map[string][]int{
	"electronics":  {84, 85, 90},
	"automotive":   {87, 84, 40},
	"medical":      {90, 30},
	"textile":      {61, 62, 63, 52},
	"chemicals":    {28, 29, 32, 38, 39},
	"machinery":    {84, 85},
	"agriculture":  {7, 8, 10, 12, 20},
	"food":         {16, 17, 18, 19, 20, 21},
	"construction": {25, 68, 72, 73},
	"energy":       {84, 85},
}

func seedBusinessTypeChapters(tx *sql.Tx) error {
	stmt, err := tx.Prepare(`INSERT OR IGNORE INTO business_type_chapters (business_type, chapter) VALUES (?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare business type seed statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for businessType, chapters := range businessTypeSeeds {
		for _, chapter := range chapters {
			if _, err := stmt.Exec(businessType, chapter); err != nil {
				return fmt.Errorf("failed to seed business type %q: %w", businessType, err)
			}
		}
	}
	return nil
}

// Migrate applies all pending database migrations.
func (s *SQLiteStorage) Migrate(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	// Get current version
	var currentVersion int
	err := s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&currentVersion)
	if err != nil {
		return fmt.Errorf("failed to get schema version: %w", err)
	}

	// Apply migrations
	for _, migration := range migrations {
		if migration.Version <= currentVersion {
			continue
		}

		tx, txErr := s.db.BeginTx(ctx, nil)
		if txErr != nil {
			return fmt.Errorf("failed to begin transaction: %w", txErr)
		}

		if upErr := migration.Up(tx); upErr != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migration %d failed: %w", migration.Version, upErr)
		}

		// Update version
		if _, execErr := tx.Exec(fmt.Sprintf("PRAGMA user_version = %d", migration.Version)); execErr != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to update schema version: %w", execErr)
		}

		if commitErr := tx.Commit(); commitErr != nil {
			return fmt.Errorf("failed to commit migration %d: %w", migration.Version, commitErr)
		}

		slog.Info("Applied migration",
			"version", migration.Version,
			"description", migration.Description)
	}

	// Verify we're at the expected schema version
	var finalVersion int
	err = s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&finalVersion)
	if err != nil {
		return fmt.Errorf("failed to verify final schema version: %w", err)
	}

	if finalVersion != ExpectedSchemaVersion {
		return fmt.Errorf("database schema version mismatch: expected %d, got %d", ExpectedSchemaVersion, finalVersion)
	}

	return nil
}
