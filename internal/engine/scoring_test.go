package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hstrade/harmonize/internal/industry"
	"github.com/hstrade/harmonize/internal/model"
)

func TestSemanticScore(t *testing.T) {
	t.Run("industry vocabulary match", func(t *testing.T) {
		score := semanticScore(industry.CategoryElectrical, "insulated wire",
			"insulated wire, electric conductors", "insulated copper wire cable")
		assert.InDelta(t, 0.95, score, 0.001)
	})

	t.Run("cross-domain candidate penalized", func(t *testing.T) {
		score := semanticScore(industry.CategoryMedical, "monitor",
			"prepared or preserved food of chicken meat", "blood pressure monitor")
		assert.LessOrEqual(t, score, 0.2)
	})

	t.Run("no profile falls back to lexical overlap", func(t *testing.T) {
		score := semanticScore(industry.CategoryMachinery, "hydraulic pump",
			"hydraulic pumps for liquids", "hydraulic gear pump")
		assert.InDelta(t, 0.8, score, 0.001)
	})
}

func TestLexicalScore(t *testing.T) {
	t.Run("substring plus full word overlap", func(t *testing.T) {
		score := lexicalScore("copper wire", "copper wire of refined copper", "copper wire")
		assert.InDelta(t, 1.0, score, 0.001)
	})

	t.Run("partial word overlap only", func(t *testing.T) {
		score := lexicalScore("steel bolt", "steel fastening nuts", "steel bolt")
		assert.InDelta(t, 0.2, score, 0.001)
	})

	t.Run("wrong context damps the score", func(t *testing.T) {
		score := lexicalScore("preserved food", "preserved food of meat", "medical preservation kit")
		assert.InDelta(t, 0.2, score, 0.001)
	})
}

func TestChapterScore(t *testing.T) {
	t.Run("known chapter with full overlap clamps at one", func(t *testing.T) {
		entry := model.CatalogEntry{
			Code:        "8544422000",
			Description: "Insulated wire",
			Chapter:     85,
		}
		score := chapterScore("insulated wire", entry, 85)
		assert.InDelta(t, 1.0, score, 0.001)
	})

	t.Run("no overlap keeps the base credit", func(t *testing.T) {
		entry := model.CatalogEntry{
			Code:        "0101",
			Description: "Something else entirely",
			Chapter:     1,
		}
		score := chapterScore("widget", entry, 0)
		assert.InDelta(t, 0.54, score, 0.001)
	})
}

func TestRelationshipScore(t *testing.T) {
	score := relationshipScore("insulated copper wire", "copper conductors", "insulated wire")
	assert.InDelta(t, 0.4333, score, 0.001)
}

func TestContextualScore(t *testing.T) {
	t.Run("keyword coverage with business type", func(t *testing.T) {
		bizCtx := &BusinessContext{BusinessType: "electronics"}
		score := contextualScore("copper wire", "insulated wire and cable",
			bizCtx, []string{"wire", "glass"})
		assert.InDelta(t, 0.8, score, 0.001)
	})

	t.Run("no context and no keywords", func(t *testing.T) {
		score := contextualScore("copper wire", "insulated wire and cable", nil, nil)
		assert.InDelta(t, 0.5, score, 0.001)
	})
}
