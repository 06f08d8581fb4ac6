package engine

import (
	"strings"

	"github.com/hstrade/harmonize/internal/industry"
	"github.com/hstrade/harmonize/internal/model"
)

// semanticScore rates a phrase-stage candidate. Once an industry was
// detected, candidates outside that industry are penalized rather than
// left unscored; with no category the generic lexical overlap applies.
func semanticScore(category industry.Category, phrase, candidateDesc, original string) float64 {
	if profile := category.Profile(); profile != nil {
		return clamp01(profile.Score(candidateDesc))
	}
	return clamp01(lexicalScore(phrase, candidateDesc, original))
}

// lexicalScore is the fallback phrase score: substring containment plus
// proportional word overlap, heavily damped for wrong-context matches.
func lexicalScore(phrase, candidateDesc, original string) float64 {
	score := 0.0

	if strings.Contains(candidateDesc, phrase) {
		score += 0.6
	}

	var phraseWords []string
	for _, w := range strings.Fields(phrase) {
		if len(w) > 2 {
			phraseWords = append(phraseWords, w)
		}
	}
	if len(phraseWords) > 0 {
		candidateWords := wordSet(candidateDesc)
		overlap := 0
		for _, w := range phraseWords {
			if candidateWords[w] {
				overlap++
			}
		}
		score += float64(overlap) / float64(len(phraseWords)) * 0.4
	}

	if industry.WrongContext(original, candidateDesc) {
		score *= 0.2
	}

	return score
}

// chapterScore rates a chapter-stage candidate: base credit for being in
// a searched chapter, a bonus for matching an explicitly known chapter,
// word overlap, and a nudge toward more specific (longer) codes.
func chapterScore(description string, entry model.CatalogEntry, knownChapter int) float64 {
	score := 0.5

	if knownChapter > 0 && entry.Chapter == knownChapter {
		score += 0.3
	}

	descWords := strings.Fields(description)
	matchWords := strings.Fields(strings.ToLower(entry.Description))
	matchSet := make(map[string]bool, len(matchWords))
	for _, w := range matchWords {
		matchSet[w] = true
	}
	overlap := 0
	for _, w := range descWords {
		if matchSet[w] {
			overlap++
		}
	}
	larger := len(descWords)
	if len(matchWords) > larger {
		larger = len(matchWords)
	}
	if larger > 0 {
		score += float64(overlap) / float64(larger) * 0.3
	}

	specificity := float64(len(entry.Code)) / 10
	if specificity > 1 {
		specificity = 1
	}
	score += specificity * 0.1

	return clamp01(score)
}

// relationshipScore rates a heading sibling by shared vocabulary with both
// the query and the base result it was derived from.
func relationshipScore(description, candidateDesc, baseDesc string) float64 {
	score := 0.3

	descWords := wordSet(description)
	candidateWords := wordSet(candidateDesc)
	baseWords := wordSet(baseDesc)

	if len(descWords) > 0 {
		score += float64(overlapCount(descWords, candidateWords)) / float64(len(descWords)) * 0.4
	}
	if len(baseWords) > 0 {
		score += float64(overlapCount(baseWords, candidateWords)) / float64(len(baseWords)) * 0.3
	}

	return clamp01(score)
}

// contextualScore rates a stage-4 candidate by context keyword coverage,
// the presence of a business type, and plain description overlap.
func contextualScore(description, candidateDesc string, bizCtx *BusinessContext, keywords []string) float64 {
	score := 0.4

	if len(keywords) > 0 {
		matches := 0
		for _, k := range keywords {
			if strings.Contains(candidateDesc, k) {
				matches++
			}
		}
		score += float64(matches) / float64(len(keywords)) * 0.4
	}

	if bizCtx != nil && bizCtx.BusinessType != "" {
		score += 0.1
	}

	descWords := strings.Fields(description)
	candidateWords := wordSet(candidateDesc)
	if len(descWords) > 0 {
		overlap := 0
		for _, w := range descWords {
			if candidateWords[w] {
				overlap++
			}
		}
		score += float64(overlap) / float64(len(descWords)) * 0.2
	}

	return clamp01(score)
}

func wordSet(text string) map[string]bool {
	words := strings.Fields(text)
	set := make(map[string]bool, len(words))
	for _, w := range words {
		set[w] = true
	}
	return set
}

func overlapCount(a, b map[string]bool) int {
	n := 0
	for w := range a {
		if b[w] {
			n++
		}
	}
	return n
}

func clamp01(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}
