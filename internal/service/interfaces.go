// Package service defines the interfaces for all application services.
package service

import (
	"context"

	"github.com/hstrade/harmonize/internal/model"
)

// KeywordMapping associates a single keyword with an industry type and the
// tariff chapters that industry typically classifies into.
type KeywordMapping struct {
	Keyword      string
	IndustryType string
	Chapters     []int
}

// CatalogSearch is the narrow search contract the classifier depends on.
// The classifier is read-only with respect to the catalog; no write path
// exists here.
type CatalogSearch interface {
	// SearchPhrase performs a full-text phrase search over catalog
	// descriptions, returning up to limit entries by relevance.
	SearchPhrase(ctx context.Context, phrase string, limit int) ([]model.CatalogEntry, error)

	// SearchChapter performs a full-text search restricted to one chapter.
	SearchChapter(ctx context.Context, query string, chapter, limit int) ([]model.CatalogEntry, error)

	// SearchHeading returns entries sharing a 4-digit heading prefix,
	// excluding the given code.
	SearchHeading(ctx context.Context, heading, excludeCode string, limit int) ([]model.CatalogEntry, error)

	// SearchKeywords performs a disjunctive full-text search over the given
	// keywords, optionally restricted to a chapter set.
	SearchKeywords(ctx context.Context, keywords []string, chapters []int, limit int) ([]model.CatalogEntry, error)

	// LookupKeywordMappings returns the keyword->chapter records matching
	// any of the given words. A missing keyword is not an error.
	LookupKeywordMappings(ctx context.Context, words []string) ([]KeywordMapping, error)

	// LookupBusinessTypeChapters returns the chapters associated with a
	// business type, or an empty set when no mapping exists.
	LookupBusinessTypeChapters(ctx context.Context, businessType string) ([]int, error)

	// MostCommonChapters returns the n chapters with the most catalog
	// entries, used only when no other chapter signal exists.
	MostCommonChapters(ctx context.Context, n int) ([]int, error)
}

// Storage defines the contract for our persistence layer.
type Storage interface {
	CatalogSearch

	// Direct code lookup
	GetEntryByCode(ctx context.Context, code string) (*model.CatalogEntry, error)
	SearchCodePrefix(ctx context.Context, prefix string, limit int) ([]model.CatalogEntry, error)

	// Catalog administration
	SaveEntries(ctx context.Context, entries []model.CatalogEntry) error
	CountEntries(ctx context.Context) (int64, error)

	// Database management
	Migrate(ctx context.Context) error
	Close() error
}
