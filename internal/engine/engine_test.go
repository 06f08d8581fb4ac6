package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hstrade/harmonize/internal/common"
	"github.com/hstrade/harmonize/internal/model"
	"github.com/hstrade/harmonize/internal/storage"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()

	store, err := storage.NewSQLiteStorage(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	ctx := context.Background()
	require.NoError(t, store.Migrate(ctx))
	require.NoError(t, store.SaveEntries(ctx, []model.CatalogEntry{
		{
			Code:        "8544422000",
			Description: "Insulated wire, electric conductors, fitted with connectors, for a voltage not exceeding 1000 V",
			Chapter:     85,
			MFNRate:     2.6,
			USMCARate:   0,
		},
		{
			Code:        "8544429000",
			Description: "Insulated electric conductors, for a voltage not exceeding 1000 V, other",
			Chapter:     85,
			MFNRate:     2.6,
		},
		{
			Code:        "8544700000",
			Description: "Optical fibre cables, made up of individually sheathed fibres",
			Chapter:     85,
		},
		{
			Code:        "9018908000",
			Description: "Instruments and appliances used in medical, surgical or veterinary sciences",
			Chapter:     90,
			MFNRate:     0.8,
		},
		{
			Code:        "9018310000",
			Description: "Syringes, with or without needles, used in medical sciences",
			Chapter:     90,
		},
		{
			Code:        "1602320000",
			Description: "Prepared or preserved food of chicken meat",
			Chapter:     16,
			MFNRate:     6.4,
		},
	}))

	return New(store)
}

func TestClassifyElectricalCable(t *testing.T) {
	eng := newTestEngine(t)
	ctx := context.Background()

	result, err := eng.Classify(ctx, "insulated copper wire cable", Options{})
	require.NoError(t, err)
	require.True(t, result.Success)
	require.NotEmpty(t, result.Results)

	top := result.Results[0]
	assert.Equal(t, "8544422000", top.Code)
	assert.Equal(t, 85, top.Chapter)
	assert.Equal(t, model.MatchSemanticPhrase, top.MatchType)
	assert.GreaterOrEqual(t, top.Confidence, 80)
	assert.Equal(t, top.Confidence, result.Confidence)
}

func TestClassifyMedicalInstrument(t *testing.T) {
	eng := newTestEngine(t)
	ctx := context.Background()

	result, err := eng.Classify(ctx, "surgical diagnostic instrument", Options{})
	require.NoError(t, err)
	require.True(t, result.Success)
	require.NotEmpty(t, result.Results)

	top := result.Results[0]
	assert.Equal(t, 90, top.Chapter)
	assert.GreaterOrEqual(t, top.Confidence, 85)

	for _, entry := range result.Results {
		assert.NotEqual(t, 16, entry.Chapter, "food chapter should not match a medical query")
	}
}

func TestClassifyResultInvariants(t *testing.T) {
	eng := newTestEngine(t)
	ctx := context.Background()

	result, err := eng.Classify(ctx, "insulated copper wire cable", Options{})
	require.NoError(t, err)

	assert.LessOrEqual(t, len(result.Results), 10)

	seen := make(map[string]bool)
	for _, entry := range result.Results {
		assert.False(t, seen[entry.Code], "duplicate code %s", entry.Code)
		seen[entry.Code] = true

		assert.GreaterOrEqual(t, entry.Confidence, 10)
		assert.LessOrEqual(t, entry.Confidence, 100)
		assert.NotEmpty(t, entry.ConfidenceLabel)
		assert.NotEmpty(t, entry.DisplayText)
	}
}

func TestClassifyLimit(t *testing.T) {
	eng := newTestEngine(t)
	ctx := context.Background()

	result, err := eng.Classify(ctx, "insulated copper wire cable", Options{Limit: 1})
	require.NoError(t, err)
	assert.Len(t, result.Results, 1)
}

func TestClassifyInvalidInput(t *testing.T) {
	eng := newTestEngine(t)
	ctx := context.Background()

	_, err := eng.Classify(ctx, "", Options{})
	assert.ErrorIs(t, err, common.ErrInvalidQuery)

	_, err = eng.Classify(ctx, "   \t  ", Options{})
	assert.ErrorIs(t, err, common.ErrInvalidQuery)
}

func TestClassifyNoMatches(t *testing.T) {
	eng := newTestEngine(t)
	ctx := context.Background()

	result, err := eng.Classify(ctx, "unobtainium widget", Options{})
	require.NoError(t, err)

	assert.False(t, result.Success)
	assert.Empty(t, result.Results)
	assert.Equal(t, model.FallbackBasicKeywordSearch, result.FallbackRecommended)
	assert.Zero(t, result.Confidence)
}

func TestClassifyCachesResults(t *testing.T) {
	eng := newTestEngine(t)
	ctx := context.Background()

	first, err := eng.Classify(ctx, "insulated copper wire cable", Options{})
	require.NoError(t, err)

	second, err := eng.Classify(ctx, "Insulated Copper Wire Cable  ", Options{})
	require.NoError(t, err)
	assert.Same(t, first, second, "normalized repeat query should hit the cache")

	third, err := eng.Classify(ctx, "insulated copper wire cable", Options{Limit: 3})
	require.NoError(t, err)
	assert.NotSame(t, first, third, "different limit must not share a cache slot")
}

func TestHierarchicalChapterMatchKnownChapter(t *testing.T) {
	eng := newTestEngine(t)
	ctx := context.Background()

	candidates := eng.hierarchicalChapterMatch(ctx, "insulated copper wire cable", 85)
	require.NotEmpty(t, candidates)

	for _, c := range candidates {
		assert.Equal(t, model.MatchChapterSpecific, c.MatchType)
		assert.Equal(t, 85, c.Entry.Chapter)
	}
}

func TestContextualSimilarityMatchBusinessType(t *testing.T) {
	eng := newTestEngine(t)
	ctx := context.Background()

	candidates := eng.contextualSimilarityMatch(ctx, "medical instruments",
		&BusinessContext{BusinessType: "medical"})
	require.NotEmpty(t, candidates)

	for _, c := range candidates {
		assert.Equal(t, model.MatchContextualSimilarity, c.MatchType)
		assert.Equal(t, 90, c.Entry.Chapter, "business type restricts chapters")
	}
}

func TestLookup(t *testing.T) {
	eng := newTestEngine(t)
	ctx := context.Background()

	t.Run("exact match", func(t *testing.T) {
		result, err := eng.Lookup(ctx, "8544.42.20.00", 0)
		require.NoError(t, err)
		require.True(t, result.Success)
		require.Len(t, result.Results, 1)
		assert.Equal(t, "8544422000", result.Results[0].Code)
		assert.Equal(t, model.MatchExact, result.Results[0].MatchType)
		assert.Equal(t, 100, result.Confidence)
	})

	t.Run("six digit prefix fallback", func(t *testing.T) {
		result, err := eng.Lookup(ctx, "8544429999", 0)
		require.NoError(t, err)
		require.True(t, result.Success)
		require.Len(t, result.Results, 2)
		assert.Equal(t, 86, result.Confidence)
		assert.Equal(t, model.MatchType("category_6digit"), result.Results[0].MatchType)
	})

	t.Run("four digit prefix fallback", func(t *testing.T) {
		result, err := eng.Lookup(ctx, "9018999999", 0)
		require.NoError(t, err)
		require.True(t, result.Success)
		require.Len(t, result.Results, 2)
		assert.Equal(t, 84, result.Confidence)
		assert.Equal(t, model.MatchType("category_4digit"), result.Results[0].MatchType)
	})

	t.Run("no match recommends fallback", func(t *testing.T) {
		result, err := eng.Lookup(ctx, "9999", 0)
		require.NoError(t, err)
		assert.False(t, result.Success)
		assert.Empty(t, result.Results)
		assert.Equal(t, model.FallbackBasicKeywordSearch, result.FallbackRecommended)
	})

	t.Run("too short code rejected", func(t *testing.T) {
		_, err := eng.Lookup(ctx, "85", 0)
		assert.ErrorIs(t, err, common.ErrInvalidCode)
	})
}
