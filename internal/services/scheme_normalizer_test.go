package services

import (
	"testing"

	"github.com/dharanishvijayakumar7-lgtm/cropPilot/internal/models"

	"github.com/stretchr/testify/assert"
)

// ============================================================================
// TEST HELPERS
// ============================================================================

func newTestNormalizer() *SchemeNormalizer {
	return NewSchemeNormalizer([]string{
		"Rice", "Wheat", "Maize", "Cotton", "Sugarcane",
		"Gram", "Tur", "Moong", "Urad", "Masoor",
		"Mustard", "Groundnut", "Soybean", "Potato", "Onion",
	})
}

// ============================================================================
// TEST SUITE 1: CROP NORMALIZATION
// ============================================================================

func TestNormalizeCrop_ExactMatch(t *testing.T) {
	normalizer := newTestNormalizer()

	crop, matchType, related := normalizer.NormalizeCrop("Rice")

	assert.Equal(t, "Rice", crop)
	assert.Equal(t, models.MatchTypeExact, matchType)
	assert.Empty(t, related)
}

func TestNormalizeCrop_ExactMatchIsCaseInsensitive(t *testing.T) {
	normalizer := newTestNormalizer()

	crop, matchType, _ := normalizer.NormalizeCrop("  wheat  ")

	assert.Equal(t, "Wheat", crop)
	assert.Equal(t, models.MatchTypeExact, matchType)
}

func TestNormalizeCrop_AliasMatch(t *testing.T) {
	normalizer := newTestNormalizer()

	crop, matchType, related := normalizer.NormalizeCrop("paddy")

	assert.Equal(t, "Rice", crop, "paddy is the common alias for Rice")
	assert.Equal(t, models.MatchTypeAlias, matchType)
	assert.Empty(t, related)
}

func TestNormalizeCrop_HindiAliasMatch(t *testing.T) {
	normalizer := newTestNormalizer()

	crop, matchType, _ := normalizer.NormalizeCrop("gehu")

	assert.Equal(t, "Wheat", crop)
	assert.Equal(t, models.MatchTypeAlias, matchType)
}

func TestNormalizeCrop_CategoryExpandsToMembers(t *testing.T) {
	normalizer := newTestNormalizer()

	crop, matchType, related := normalizer.NormalizeCrop("pulses")

	assert.Equal(t, "Gram", crop, "first category member is the canonical crop")
	assert.Equal(t, models.MatchTypeCategory, matchType)
	assert.Equal(t, []string{"Gram", "Tur", "Moong", "Urad", "Masoor"}, related)
}

func TestNormalizeCrop_CerealsCategory(t *testing.T) {
	normalizer := newTestNormalizer()

	crop, matchType, related := normalizer.NormalizeCrop("cereals")

	assert.Equal(t, "Rice", crop)
	assert.Equal(t, models.MatchTypeCategory, matchType)
	assert.Contains(t, related, "Wheat")
	assert.Contains(t, related, "Maize")
}

func TestNormalizeCrop_FuzzySubstring(t *testing.T) {
	normalizer := newTestNormalizer()

	crop, matchType, _ := normalizer.NormalizeCrop("sugarcan")

	assert.Equal(t, "Sugarcane", crop, "misspelling should resolve by substring")
	assert.Equal(t, models.MatchTypeFuzzy, matchType)
}

func TestNormalizeCrop_UnknownIsTitleCased(t *testing.T) {
	normalizer := newTestNormalizer()

	crop, matchType, related := normalizer.NormalizeCrop("xyzzy")

	assert.Equal(t, "Xyzzy", crop)
	assert.Equal(t, models.MatchTypeUnknown, matchType)
	assert.Empty(t, related)
}

func TestNormalizeCrop_EmptyInput(t *testing.T) {
	normalizer := newTestNormalizer()

	crop, matchType, related := normalizer.NormalizeCrop("   ")

	assert.Equal(t, "", crop)
	assert.Equal(t, models.MatchTypeUnknown, matchType)
	assert.Nil(t, related)
}

// ============================================================================
// TEST SUITE 2: DISASTER NORMALIZATION
// ============================================================================

func TestNormalizeDisaster_ExactFamily(t *testing.T) {
	normalizer := newTestNormalizer()

	disaster, matchType, related := normalizer.NormalizeDisaster("flood")

	assert.Equal(t, "flood", disaster)
	assert.Equal(t, models.MatchTypeExact, matchType)
	assert.Contains(t, related, "heavy_rain")
	assert.Contains(t, related, "waterlogging")
}

func TestNormalizeDisaster_SpacesBecomeUnderscores(t *testing.T) {
	normalizer := newTestNormalizer()

	disaster, matchType, related := normalizer.NormalizeDisaster("Heavy Rain")

	assert.Equal(t, "heavy_rain", disaster)
	assert.Equal(t, models.MatchTypeExact, matchType)
	assert.Contains(t, related, "flood", "heavy rain and flood schemes are interchangeable for farmers")
}

func TestNormalizeDisaster_HindiAlias(t *testing.T) {
	normalizer := newTestNormalizer()

	disaster, matchType, related := normalizer.NormalizeDisaster("baadh")

	assert.Equal(t, "flood", disaster)
	assert.Equal(t, models.MatchTypeAlias, matchType)
	assert.Contains(t, related, "flood")
}

func TestNormalizeDisaster_UnderscoreInsensitive(t *testing.T) {
	normalizer := newTestNormalizer()

	disaster, matchType, _ := normalizer.NormalizeDisaster("coldwave")

	assert.Equal(t, "cold_wave", disaster)
	assert.Equal(t, models.MatchTypeFuzzy, matchType)
}

func TestNormalizeDisaster_UnmatchedDegradesToGeneral(t *testing.T) {
	normalizer := newTestNormalizer()

	disaster, matchType, related := normalizer.NormalizeDisaster("alien invasion")

	assert.Equal(t, "general", disaster)
	assert.Equal(t, models.MatchTypeUnknown, matchType)
	assert.NotEmpty(t, related, "general sentinel still carries the top-level families")
	assert.Contains(t, related, "drought")
}

func TestNormalizeDisaster_EmptyInput(t *testing.T) {
	normalizer := newTestNormalizer()

	disaster, matchType, related := normalizer.NormalizeDisaster("")

	assert.Equal(t, "", disaster)
	assert.Equal(t, models.MatchTypeUnknown, matchType)
	assert.Nil(t, related)
}

func TestNormalizeDisaster_IsDeterministic(t *testing.T) {
	normalizer := newTestNormalizer()

	// Substring scans iterate map keys; repeated calls must not flip-flop.
	first, _, _ := normalizer.NormalizeDisaster("storm")
	for i := 0; i < 20; i++ {
		next, _, _ := normalizer.NormalizeDisaster("storm")
		assert.Equal(t, first, next)
	}
}
