package engine

import (
	"context"
	"log/slog"
	"math"
	"strings"

	"github.com/hstrade/harmonize/internal/industry"
	"github.com/hstrade/harmonize/internal/model"
)

// Per-stage score thresholds. Candidates at or below a threshold are
// discarded before merging.
const (
	phraseThreshold       = 0.3
	chapterThreshold      = 0.4
	relationshipThreshold = 0.5
	contextualThreshold   = 0.35
)

// baseResultConfidence is the minimum confidence a merged candidate needs
// to seed the product-relationship stage.
const baseResultConfidence = 70

// maxInferredChapters bounds how many signal-derived chapters stage 2
// searches.
const maxInferredChapters = 8

// commonChapterFallback is how many catalog-wide chapters stage 2 falls
// back to when no keyword signal exists.
const commonChapterFallback = 10

// semanticPhraseMatch is stage 1: full-text phrase searches over the
// meaningful phrases extracted from the description.
func (e *Engine) semanticPhraseMatch(ctx context.Context, description string, category industry.Category) []model.Candidate {
	var results []model.Candidate

	for _, phrase := range industry.MeaningfulPhrases(category, description) {
		entries, err := e.storage.SearchPhrase(ctx, phrase, e.cfg.PhraseLimit)
		if err != nil {
			slog.Error("Semantic phrase match failed", "phrase", phrase, "error", err)
			continue
		}

		for _, entry := range entries {
			score := semanticScore(category, phrase, strings.ToLower(entry.Description), description)
			if score > phraseThreshold {
				results = append(results, model.Candidate{
					Entry:         entry,
					Confidence:    math.Round(score * 100),
					MatchType:     model.MatchSemanticPhrase,
					MatchedPhrase: phrase,
				})
			}
		}
	}

	return results
}

// hierarchicalChapterMatch is stage 2: chapter-restricted searches over the
// chapters implied by a known hint or by industry keyword signals.
func (e *Engine) hierarchicalChapterMatch(ctx context.Context, description string, knownChapter int) []model.Candidate {
	var chapters []int
	if knownChapter > 0 {
		chapters = append([]int{knownChapter}, industry.RelatedChapters(knownChapter)...)
	} else {
		chapters = e.inferChapters(ctx, description)
	}

	var results []model.Candidate
	for _, chapter := range chapters {
		entries, err := e.storage.SearchChapter(ctx, description, chapter, e.cfg.ChapterLimit)
		if err != nil {
			slog.Error("Chapter match failed", "chapter", chapter, "error", err)
			continue
		}

		for _, entry := range entries {
			score := chapterScore(description, entry, knownChapter)
			if score > chapterThreshold {
				matchType := model.MatchChapterInferred
				if knownChapter > 0 {
					matchType = model.MatchChapterSpecific
				}
				results = append(results, model.Candidate{
					Entry:      entry,
					Confidence: math.Round(score * 100),
					MatchType:  matchType,
				})
			}
		}
	}

	return results
}

// inferChapters derives candidate chapters from keyword signals, falling
// back to the most populous chapters, and finally to an empty set (search
// nothing chapter-restricted).
func (e *Engine) inferChapters(ctx context.Context, description string) []int {
	words := strings.Fields(description)

	mappings, err := e.storage.LookupKeywordMappings(ctx, words)
	if err != nil {
		slog.Error("Keyword signal lookup failed", "error", err)
	}

	seen := make(map[int]bool)
	var chapters []int
	for _, mapping := range mappings {
		for _, chapter := range mapping.Chapters {
			if !seen[chapter] {
				seen[chapter] = true
				chapters = append(chapters, chapter)
			}
		}
	}

	if len(chapters) == 0 {
		common, err := e.storage.MostCommonChapters(ctx, commonChapterFallback)
		if err != nil {
			slog.Error("Common chapter fallback failed", "error", err)
			return nil
		}
		return common
	}

	if len(chapters) > maxInferredChapters {
		chapters = chapters[:maxInferredChapters]
	}
	return chapters
}

// productRelationshipMatch is stage 3: for the strongest candidates found
// so far, pull sibling entries from the same 4-digit heading.
func (e *Engine) productRelationshipMatch(ctx context.Context, description string, existing []model.Candidate) []model.Candidate {
	var bases []model.Candidate
	for _, c := range existing {
		if c.Confidence > baseResultConfidence {
			bases = append(bases, c)
			if len(bases) == 3 {
				break
			}
		}
	}

	var results []model.Candidate
	for _, base := range bases {
		heading := base.Entry.Heading()
		if len(heading) < 4 {
			continue
		}

		entries, err := e.storage.SearchHeading(ctx, heading, base.Entry.Code, e.cfg.HeadingLimit)
		if err != nil {
			slog.Error("Relationship match failed", "heading", heading, "error", err)
			continue
		}

		baseDesc := strings.ToLower(base.Entry.Description)
		for _, entry := range entries {
			score := relationshipScore(description, strings.ToLower(entry.Description), baseDesc)
			if score > relationshipThreshold {
				results = append(results, model.Candidate{
					Entry:       entry,
					Confidence:  math.Round(score * 100),
					MatchType:   model.MatchProductRelationship,
					RelatedCode: base.Entry.Code,
				})
			}
		}
	}

	return results
}

// contextualSimilarityMatch is stage 4: a disjunctive keyword search over
// the description plus any business context, optionally restricted to the
// chapters mapped to the caller's business type.
func (e *Engine) contextualSimilarityMatch(ctx context.Context, description string, bizCtx *BusinessContext) []model.Candidate {
	keywords := contextualKeywords(description, bizCtx)
	if len(keywords) == 0 {
		return nil
	}

	var chapters []int
	if bizCtx != nil && bizCtx.BusinessType != "" {
		var err error
		chapters, err = e.storage.LookupBusinessTypeChapters(ctx, bizCtx.BusinessType)
		if err != nil {
			slog.Error("Business type chapter lookup failed", "business_type", bizCtx.BusinessType, "error", err)
			chapters = nil
		}
	}

	entries, err := e.storage.SearchKeywords(ctx, keywords, chapters, e.cfg.ContextLimit)
	if err != nil {
		slog.Error("Contextual match failed", "error", err)
		return nil
	}

	var results []model.Candidate
	for _, entry := range entries {
		score := contextualScore(description, strings.ToLower(entry.Description), bizCtx, keywords)
		if score > contextualThreshold {
			results = append(results, model.Candidate{
				Entry:      entry,
				Confidence: math.Round(score * 100),
				MatchType:  model.MatchContextualSimilarity,
			})
		}
	}

	return results
}

// contextualStopWords are excluded from the contextual keyword set.
var contextualStopWords = map[string]bool{
	"the": true, "and": true, "or": true, "but": true,
	"in": true, "on": true, "at": true, "to": true,
	"for": true, "of": true, "with": true, "by": true,
}

// contextualKeywords builds the deduplicated keyword set for stage 4 from
// the description words plus any supplied context values.
func contextualKeywords(description string, bizCtx *BusinessContext) []string {
	var raw []string
	for _, word := range strings.Fields(description) {
		if len(word) > 2 {
			raw = append(raw, word)
		}
	}
	if bizCtx != nil {
		if bizCtx.BusinessType != "" {
			raw = append(raw, strings.ToLower(bizCtx.BusinessType))
		}
		if bizCtx.Industry != "" {
			raw = append(raw, strings.ToLower(bizCtx.Industry))
		}
		if bizCtx.ProductCategory != "" {
			raw = append(raw, strings.ToLower(bizCtx.ProductCategory))
		}
	}

	seen := make(map[string]bool, len(raw))
	var keywords []string
	for _, k := range raw {
		if contextualStopWords[k] || seen[k] {
			continue
		}
		seen[k] = true
		keywords = append(keywords, k)
	}
	return keywords
}
