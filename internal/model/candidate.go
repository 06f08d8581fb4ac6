package model

// MatchType identifies which pipeline stage produced a candidate.
type MatchType string

const (
	// MatchSemanticPhrase marks candidates from the semantic phrase stage.
	MatchSemanticPhrase MatchType = "semantic_phrase"
	// MatchChapterSpecific marks candidates found in an explicitly known chapter.
	MatchChapterSpecific MatchType = "chapter_specific"
	// MatchChapterInferred marks candidates found in an inferred chapter.
	MatchChapterInferred MatchType = "chapter_inferred"
	// MatchProductRelationship marks candidates sharing a heading with a strong result.
	MatchProductRelationship MatchType = "product_relationship"
	// MatchContextualSimilarity marks candidates from the business-context stage.
	MatchContextualSimilarity MatchType = "contextual_similarity"
	// MatchExact marks candidates from a direct code lookup.
	MatchExact MatchType = "exact"
)

// Candidate is a provisional match produced by one generator stage before
// final ranking. Confidence is stored on a 0-100 scale.
type Candidate struct {
	Entry         CatalogEntry
	MatchType     MatchType
	MatchedPhrase string
	RelatedCode   string
	Confidence    float64
}
