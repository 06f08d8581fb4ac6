package engine

import (
	"sort"

	"github.com/hstrade/harmonize/internal/model"
)

// matchTypeBonus is the fixed blended-score bonus per match type.
var matchTypeBonus = map[model.MatchType]float64{
	model.MatchSemanticPhrase:       10,
	model.MatchChapterSpecific:      15,
	model.MatchExact:                20,
	model.MatchProductRelationship:  8,
	model.MatchContextualSimilarity: 5,
	model.MatchChapterInferred:      3,
}

// resultSet merges candidates across stages. The first occurrence of a
// code wins; later duplicates are discarded, so a candidate's surviving
// provenance reflects whichever stage found it first.
type resultSet struct {
	seen       map[string]bool
	candidates []model.Candidate
}

func newResultSet() *resultSet {
	return &resultSet{seen: make(map[string]bool)}
}

func (rs *resultSet) add(candidates ...model.Candidate) {
	for _, c := range candidates {
		if rs.seen[c.Entry.Code] {
			continue
		}
		rs.seen[c.Entry.Code] = true
		rs.candidates = append(rs.candidates, c)
	}
}

// blend computes the final 10-100 score for a candidate: its stored
// confidence plus the match-type bonus, tariff-attribute bonuses, and a
// penalty for under-specified catalog descriptions.
func blend(c model.Candidate) int {
	score := c.Confidence
	score += matchTypeBonus[c.MatchType]

	if c.Entry.MFNRate > 0 {
		score += 5
	}
	if c.Entry.USMCARate != c.Entry.MFNRate {
		score += 5
	}
	if len(c.Entry.Description) < 20 {
		score -= 10
	}

	if score < 10 {
		score = 10
	}
	if score > 100 {
		score = 100
	}
	return int(score)
}

// rank blends, sorts (stable, so ties keep stage insertion order), and
// truncates the merged candidates to the requested limit.
func rank(candidates []model.Candidate, limit int) []model.ResultEntry {
	type scored struct {
		candidate model.Candidate
		blended   int
	}

	scoredCandidates := make([]scored, len(candidates))
	for i, c := range candidates {
		scoredCandidates[i] = scored{candidate: c, blended: blend(c)}
	}

	sort.SliceStable(scoredCandidates, func(i, j int) bool {
		return scoredCandidates[i].blended > scoredCandidates[j].blended
	})

	if len(scoredCandidates) > limit {
		scoredCandidates = scoredCandidates[:limit]
	}

	results := make([]model.ResultEntry, len(scoredCandidates))
	for i, sc := range scoredCandidates {
		results[i] = model.NewResultEntry(sc.candidate, sc.blended)
	}
	return results
}
