package industry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMeaningfulPhrases(t *testing.T) {
	t.Run("electrical wire with copper", func(t *testing.T) {
		phrases := MeaningfulPhrases(CategoryElectrical, "insulated copper wire cable")

		assert.Contains(t, phrases, "insulated wire")
		assert.Contains(t, phrases, "electrical cable")
		assert.Contains(t, phrases, "copper conductor")
		assert.Contains(t, phrases, "copper cable")
		assert.Contains(t, phrases, "insulated copper wire cable")
	})

	t.Run("electrical without wire terms skips cable templates", func(t *testing.T) {
		phrases := MeaningfulPhrases(CategoryElectrical, "electronic component board")

		assert.NotContains(t, phrases, "insulated wire")
		assert.Contains(t, phrases, "electronic component")
		assert.Contains(t, phrases, "electrical component")
	})

	t.Run("medical diagnostic", func(t *testing.T) {
		phrases := MeaningfulPhrases(CategoryMedical, "surgical diagnostic instrument")

		assert.Contains(t, phrases, "medical instrument")
		assert.Contains(t, phrases, "medical device")
		assert.Contains(t, phrases, "diagnostic equipment")
		assert.Contains(t, phrases, "medical diagnostic")
		assert.NotContains(t, phrases, "patient monitor")
	})

	t.Run("unknown category still searches description and key terms", func(t *testing.T) {
		phrases := MeaningfulPhrases(CategoryUnknown, "stainless kitchen sink")

		require.NotEmpty(t, phrases)
		assert.Equal(t, "stainless kitchen sink", phrases[0])
		assert.Contains(t, phrases, "stainless")
		assert.Contains(t, phrases, "kitchen")
		assert.Contains(t, phrases, "sink")
	})

	t.Run("key terms drop stop words and short words", func(t *testing.T) {
		phrases := MeaningfulPhrases(CategoryUnknown, "copper pipe made with tin")

		assert.Contains(t, phrases, "copper")
		assert.Contains(t, phrases, "pipe")
		assert.NotContains(t, phrases, "made")
		assert.NotContains(t, phrases, "with")
		assert.NotContains(t, phrases, "tin")
	})

	t.Run("key terms capped at three", func(t *testing.T) {
		phrases := MeaningfulPhrases(CategoryUnknown, "first second third fourth fifth")

		assert.Contains(t, phrases, "first")
		assert.Contains(t, phrases, "second")
		assert.Contains(t, phrases, "third")
		assert.NotContains(t, phrases, "fourth")
		assert.NotContains(t, phrases, "fifth")
	})

	t.Run("no duplicate phrases", func(t *testing.T) {
		phrases := MeaningfulPhrases(CategoryElectrical, "insulated copper wire cable")

		seen := make(map[string]bool)
		for _, p := range phrases {
			assert.False(t, seen[p], "duplicate phrase %q", p)
			seen[p] = true
		}
	})
}
