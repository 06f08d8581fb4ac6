package industry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		name        string
		description string
		want        Category
	}{
		{
			name:        "medical phrase",
			description: "blood pressure monitor with cuff",
			want:        CategoryMedical,
		},
		{
			name:        "electrical wire",
			description: "insulated copper wire cable",
			want:        CategoryElectrical,
		},
		{
			name:        "medical wins over electrical",
			description: "diagnostic electronic equipment",
			want:        CategoryMedical,
		},
		{
			name:        "electrical wins over automotive",
			description: "electric vehicle battery",
			want:        CategoryElectrical,
		},
		{
			name:        "automotive",
			description: "brake assembly for trucks",
			want:        CategoryAutomotive,
		},
		{
			name:        "textile",
			description: "woven polyester cloth",
			want:        CategoryTextile,
		},
		{
			name:        "chemical",
			description: "epoxy resin adhesive",
			want:        CategoryChemical,
		},
		{
			name:        "energy",
			description: "renewable wind turbine blade",
			want:        CategoryEnergy,
		},
		{
			name:        "machinery",
			description: "hydraulic gear pump",
			want:        CategoryMachinery,
		},
		{
			name:        "agricultural",
			description: "grain harvesting attachment",
			want:        CategoryAgricultural,
		},
		{
			name:        "no match",
			description: "unobtainium widget",
			want:        CategoryUnknown,
		},
		{
			name:        "empty description",
			description: "",
			want:        CategoryUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Detect(tt.description))
		})
	}
}

func TestCategoryString(t *testing.T) {
	assert.Equal(t, "medical", CategoryMedical.String())
	assert.Equal(t, "electrical", CategoryElectrical.String())
	assert.Equal(t, "unknown", CategoryUnknown.String())
}

func TestProfileScore(t *testing.T) {
	t.Run("medical strong vocabulary", func(t *testing.T) {
		profile := CategoryMedical.Profile()
		require.NotNil(t, profile)
		assert.InDelta(t, 0.95, profile.Score("instruments used in surgical sciences"), 0.001)
	})

	t.Run("medical related vocabulary", func(t *testing.T) {
		profile := CategoryMedical.Profile()
		require.NotNil(t, profile)
		assert.InDelta(t, 0.75, profile.Score("human blood fractions"), 0.001)
	})

	t.Run("medical penalty for unrelated candidate", func(t *testing.T) {
		profile := CategoryMedical.Profile()
		require.NotNil(t, profile)
		assert.InDelta(t, 0.1, profile.Score("prepared food of crustaceans"), 0.001)
	})

	t.Run("electrical related vocabulary", func(t *testing.T) {
		profile := CategoryElectrical.Profile()
		require.NotNil(t, profile)
		assert.InDelta(t, 0.80, profile.Score("wire of refined copper"), 0.001)
	})

	t.Run("textile penalty", func(t *testing.T) {
		profile := CategoryTextile.Profile()
		require.NotNil(t, profile)
		assert.InDelta(t, 0.2, profile.Score("steel fastening bolts"), 0.001)
	})

	t.Run("machinery has no profile", func(t *testing.T) {
		assert.Nil(t, CategoryMachinery.Profile())
	})

	t.Run("agricultural has no profile", func(t *testing.T) {
		assert.Nil(t, CategoryAgricultural.Profile())
	})

	t.Run("unknown has no profile", func(t *testing.T) {
		assert.Nil(t, CategoryUnknown.Profile())
	})
}

func TestWrongContext(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		candidate string
		want      bool
	}{
		{
			name:      "medical query against food candidate",
			query:     "medical monitoring device",
			candidate: "prepared food of meat",
			want:      true,
		},
		{
			name:      "food query against medical candidate is allowed",
			query:     "prepared food of meat",
			candidate: "medical monitoring device",
			want:      false,
		},
		{
			name:      "electronic query against textile candidate",
			query:     "electronic control module",
			candidate: "woven textile fabric",
			want:      true,
		},
		{
			name:      "chemical query against food candidate",
			query:     "chemical preservative",
			candidate: "food preparations",
			want:      true,
		},
		{
			name:      "matching domains",
			query:     "medical syringe",
			candidate: "syringes with or without needles",
			want:      false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, WrongContext(tt.query, tt.candidate))
		})
	}
}

func TestRelatedChapters(t *testing.T) {
	assert.Equal(t, []int{84, 90, 94}, RelatedChapters(85))
	assert.Equal(t, []int{61, 63, 42}, RelatedChapters(62))
	assert.Empty(t, RelatedChapters(1))
}

func TestRelatedChaptersReturnsCopy(t *testing.T) {
	first := RelatedChapters(85)
	first[0] = 99
	assert.Equal(t, []int{84, 90, 94}, RelatedChapters(85))
}
