// Package engine implements the core classification engine mapping free-text
// product descriptions to ranked tariff codes.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/hstrade/harmonize/internal/common"
	"github.com/hstrade/harmonize/internal/industry"
	"github.com/hstrade/harmonize/internal/model"
	"github.com/hstrade/harmonize/internal/service"
)

// BusinessContext carries optional caller-supplied context clues.
type BusinessContext struct {
	BusinessType    string
	Industry        string
	ProductCategory string
}

// Options configures a single classification call.
type Options struct {
	Context      *BusinessContext
	Limit        int
	KnownChapter int
}

// Config holds configuration options for the classification engine.
type Config struct {
	CacheTTL        time.Duration
	CacheMaxEntries int
	DefaultLimit    int
	PhraseLimit     int
	ChapterLimit    int
	HeadingLimit    int
	ContextLimit    int
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		CacheTTL:        5 * time.Minute,
		CacheMaxEntries: 1000,
		DefaultLimit:    10,
		PhraseLimit:     15,
		ChapterLimit:    10,
		HeadingLimit:    5,
		ContextLimit:    15,
	}
}

// Engine orchestrates the multi-stage classification pipeline. The only
// state shared between calls is the result cache.
type Engine struct {
	storage service.Storage
	cache   *resultCache
	cfg     Config
}

// New creates a new classification engine with the given storage backend.
func New(storage service.Storage) *Engine {
	return NewWithConfig(storage, DefaultConfig())
}

// NewWithConfig creates a new classification engine with custom configuration.
func NewWithConfig(storage service.Storage, cfg Config) *Engine {
	if cfg.DefaultLimit <= 0 {
		cfg.DefaultLimit = 10
	}
	return &Engine{
		storage: storage,
		cache:   newResultCache(cfg.CacheTTL, cfg.CacheMaxEntries),
		cfg:     cfg,
	}
}

// Classify maps a free-text product description to a ranked list of tariff
// codes. Invalid input is a hard error; stage failures degrade to fewer
// candidates instead of failing the call.
func (e *Engine) Classify(ctx context.Context, description string, opts Options) (*model.ClassificationResult, error) {
	start := time.Now()

	normalized, ok := normalizeDescription(description)
	if !ok {
		return nil, fmt.Errorf("%w: description must be a non-empty string", common.ErrInvalidQuery)
	}

	limit := opts.Limit
	if limit <= 0 {
		limit = e.cfg.DefaultLimit
	}

	key := cacheKey(normalized, limit, opts)
	if cached, hit := e.cache.get(key); hit {
		slog.Debug("Classification cache hit", "description", normalized)
		return cached, nil
	}

	candidates := e.runPipeline(ctx, normalized, opts)
	results := rank(candidates, limit)

	result := &model.ClassificationResult{
		Query:         description,
		Success:       len(results) > 0,
		Results:       results,
		ExecutionTime: time.Since(start),
	}
	result.Confidence = result.TopConfidence()
	if len(results) == 0 {
		result.FallbackRecommended = model.FallbackBasicKeywordSearch
	}

	e.cache.set(key, result)

	slog.Info("Classification completed",
		"description", normalized,
		"results", len(results),
		"top_confidence", result.Confidence,
		"duration", result.ExecutionTime)

	return result, nil
}

// runPipeline executes the four candidate-generator stages in order and
// merges their output with first-duplicate-wins semantics.
func (e *Engine) runPipeline(ctx context.Context, description string, opts Options) []model.Candidate {
	category := industry.Detect(description)
	merged := newResultSet()

	// Stage 1: semantic phrase matching
	merged.add(e.semanticPhraseMatch(ctx, description, category)...)

	// Stage 2: hierarchical chapter analysis
	merged.add(e.hierarchicalChapterMatch(ctx, description, opts.KnownChapter)...)

	// Stage 3: product relationship analysis, fed by the strongest
	// candidates found so far
	merged.add(e.productRelationshipMatch(ctx, description, merged.candidates)...)

	// Stage 4: contextual similarity scoring
	merged.add(e.contextualSimilarityMatch(ctx, description, opts.Context)...)

	return merged.candidates
}

// Lookup resolves a specific tariff code directly: an exact catalog match
// first, then progressively shorter prefixes (8, 6, then 4 digits).
func (e *Engine) Lookup(ctx context.Context, code string, limit int) (*model.ClassificationResult, error) {
	start := time.Now()

	digits := model.DigitsOnly(code)
	if len(digits) < 4 {
		return nil, fmt.Errorf("%w: need at least a 4-digit heading, got %q", common.ErrInvalidCode, code)
	}
	if limit <= 0 {
		limit = e.cfg.DefaultLimit
	}

	result := &model.ClassificationResult{Query: code}

	exact, err := e.storage.GetEntryByCode(ctx, digits)
	if err != nil {
		return nil, fmt.Errorf("code lookup failed: %w", err)
	}
	if exact != nil {
		result.Success = true
		result.Results = []model.ResultEntry{model.NewResultEntry(model.Candidate{
			Entry:     *exact,
			MatchType: model.MatchExact,
		}, 100)}
		result.Confidence = 100
		result.ExecutionTime = time.Since(start)
		return result, nil
	}

	// Walk up the hierarchy: 8-digit subheading, 6-digit international
	// code, 4-digit heading.
	for _, length := range []int{8, 6, 4} {
		if len(digits) < length {
			continue
		}
		entries, err := e.storage.SearchCodePrefix(ctx, digits[:length], limit)
		if err != nil {
			return nil, fmt.Errorf("prefix lookup failed: %w", err)
		}
		if len(entries) == 0 {
			continue
		}

		confidence := 90 - (10 - length)
		matchType := model.MatchType(fmt.Sprintf("category_%ddigit", length))
		for _, entry := range entries {
			result.Results = append(result.Results, model.NewResultEntry(model.Candidate{
				Entry:     entry,
				MatchType: matchType,
			}, confidence))
		}
		result.Success = true
		result.Confidence = confidence
		result.ExecutionTime = time.Since(start)
		return result, nil
	}

	result.FallbackRecommended = model.FallbackBasicKeywordSearch
	result.ExecutionTime = time.Since(start)
	return result, nil
}

// normalizeDescription canonicalizes raw input. It is the sole gate
// against garbage input reaching the pipeline.
func normalizeDescription(description string) (string, bool) {
	trimmed := strings.TrimSpace(description)
	if trimmed == "" {
		return "", false
	}
	return strings.ToLower(trimmed), true
}

// cacheKey serializes the query and its options in a fixed field order so
// identical calls share a cache slot.
func cacheKey(normalized string, limit int, opts Options) string {
	var businessType, industryHint, productCategory string
	if opts.Context != nil {
		businessType = opts.Context.BusinessType
		industryHint = opts.Context.Industry
		productCategory = opts.Context.ProductCategory
	}
	return fmt.Sprintf("classify:%s:%d:%d:%s:%s:%s",
		normalized, limit, opts.KnownChapter, businessType, industryHint, productCategory)
}
