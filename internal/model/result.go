package model

import (
	"fmt"
	"time"
)

// FallbackBasicKeywordSearch is the recommendation returned when the
// pipeline produces no candidates at all.
const FallbackBasicKeywordSearch = "basic_keyword_search"

// ResultEntry is one ranked classification in a ClassificationResult.
type ResultEntry struct {
	Code            string
	Description     string
	DisplayText     string
	MatchType       MatchType
	ConfidenceLabel string
	MFNRate         float64
	USMCARate       float64
	Chapter         int
	Confidence      int
}

// ClassificationResult is the final ranked output of a classify call.
// It is immutable after construction and cached by query signature.
type ClassificationResult struct {
	Query               string
	FallbackRecommended string
	Results             []ResultEntry
	ExecutionTime       time.Duration
	Confidence          int
	Success             bool
}

// TopConfidence returns the confidence of the highest-ranked result, or 0.
func (r *ClassificationResult) TopConfidence() int {
	if len(r.Results) == 0 {
		return 0
	}
	return r.Results[0].Confidence
}

// ConfidenceLabel converts a blended 10-100 confidence into a
// human-readable quality label.
func ConfidenceLabel(confidence int) string {
	switch {
	case confidence >= 90:
		return "Excellent match"
	case confidence >= 80:
		return "Very good match"
	case confidence >= 70:
		return "Good match"
	case confidence >= 60:
		return "Likely match"
	case confidence >= 50:
		return "Possible match"
	case confidence >= 30:
		return "Weak match"
	default:
		return "Poor match"
	}
}

// DisplayText builds the short display string for an entry, truncating
// long catalog descriptions to 80 characters.
func DisplayText(code, description string) string {
	truncated := description
	suffix := ""
	if len(description) > 80 {
		truncated = description[:80]
		suffix = "..."
	}
	return fmt.Sprintf("%s - %s%s", FormatCode(code), truncated, suffix)
}

// NewResultEntry converts a ranked candidate into its presentation form.
func NewResultEntry(c Candidate, blended int) ResultEntry {
	return ResultEntry{
		Code:            c.Entry.Code,
		Description:     c.Entry.Description,
		DisplayText:     DisplayText(c.Entry.Code, c.Entry.Description),
		Chapter:         c.Entry.Chapter,
		MFNRate:         c.Entry.MFNRate,
		USMCARate:       c.Entry.USMCARate,
		Confidence:      blended,
		MatchType:       c.MatchType,
		ConfidenceLabel: ConfidenceLabel(blended),
	}
}
