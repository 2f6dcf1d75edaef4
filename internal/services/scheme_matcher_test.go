package services

import (
	"testing"

	"github.com/dharanishvijayakumar7-lgtm/cropPilot/internal/models"

	"github.com/stretchr/testify/assert"
)

// ============================================================================
// TEST HELPERS
// ============================================================================

func createTestScheme(id string, crops, disasters []string, maxAmount, compensationPercent float64) models.Scheme {
	return models.Scheme{
		ID:                  id,
		Name:                id,
		Description:         "test scheme " + id,
		EligibleCrops:       crops,
		DisasterTypes:       disasters,
		MaxAmount:           maxAmount,
		CompensationPercent: compensationPercent,
	}
}

func newTestCatalog(schemes ...models.Scheme) models.SchemeCatalog {
	return models.SchemeCatalog{
		Schemes: schemes,
		Crops: []string{
			"Rice", "Wheat", "Maize", "Cotton", "Sugarcane",
			"Gram", "Tur", "Moong", "Urad", "Masoor",
		},
	}
}

func damagePct(v float64) *float64 { return &v }

// ============================================================================
// TEST SUITE 1: SCORING AND RANKING
// ============================================================================

func TestFindEligibleSchemes_ExactMatchOutranksGeneric(t *testing.T) {
	matcher := NewSchemeMatcher()
	catalog := newTestCatalog(
		createTestScheme("general_relief", []string{"all crops"}, []string{"general"}, 10000, 100),
		createTestScheme("rice_flood", []string{"Rice"}, []string{"flood"}, 50000, 100),
	)

	results := matcher.FindEligibleSchemes(catalog, models.SchemeQuery{
		Crop:          "paddy",
		DisasterType:  "baadh",
		LandSize:      1.5,
		DamagePercent: damagePct(80),
	})

	assert.Len(t, results, 2)
	assert.Equal(t, "rice_flood", results[0].ID, "a specific crop+disaster match must outrank blanket coverage")
	assert.Equal(t, "general_relief", results[1].ID)
	assert.Greater(t, results[0].PriorityScore, results[1].PriorityScore)
	assert.Equal(t, models.ConfidenceHigh, results[0].MatchConfidence)
	assert.Equal(t, models.ConfidenceLow, results[1].MatchConfidence)
}

func TestFindEligibleSchemes_ExactCropOutranksCategorySibling(t *testing.T) {
	matcher := NewSchemeMatcher()
	catalog := newTestCatalog(
		createTestScheme("tur_drought", []string{"Tur"}, []string{"drought"}, 20000, 100),
		createTestScheme("gram_drought", []string{"Gram"}, []string{"drought"}, 20000, 100),
	)

	// "pulses" normalizes to Gram with the other pulses as related crops:
	// a scheme listing Gram itself is an exact hit, one listing only a
	// sibling pulse is a related hit.
	results := matcher.FindEligibleSchemes(catalog, models.SchemeQuery{
		Crop:         "pulses",
		DisasterType: "drought",
		LandSize:     1.0,
	})

	assert.Len(t, results, 2)
	assert.Equal(t, "gram_drought", results[0].ID)
	assert.Equal(t, "tur_drought", results[1].ID)
	assert.Equal(t, scoreAxisExact-scoreAxisRelated, results[0].PriorityScore-results[1].PriorityScore,
		"the gap between an exact and a related crop match is exactly the axis weight difference")
	assert.Equal(t, models.ConfidenceHigh, results[0].MatchConfidence)
	assert.Equal(t, models.ConfidenceMedium, results[1].MatchConfidence)
	assert.Equal(t, "Tur", results[1].CropMatched)
	assert.Contains(t, results[1].Reasons, "A crop related to yours (Tur) is covered under this scheme")
}

func TestFindEligibleSchemes_ResultsSortedDescending(t *testing.T) {
	matcher := NewSchemeMatcher()
	catalog := newTestCatalog(
		createTestScheme("a", []string{"all crops"}, []string{"general"}, 10000, 100),
		createTestScheme("b", []string{"Rice"}, []string{"general"}, 10000, 100),
		createTestScheme("c", []string{"Rice"}, []string{"flood"}, 10000, 100),
	)

	results := matcher.FindEligibleSchemes(catalog, models.SchemeQuery{
		Crop:         "Rice",
		DisasterType: "flood",
		LandSize:     1.0,
	})

	for i := 1; i < len(results); i++ {
		assert.GreaterOrEqual(t, results[i-1].PriorityScore, results[i].PriorityScore,
			"results must be sorted by descending priority score")
	}
	assert.Equal(t, "c", results[0].ID)
}

func TestFindEligibleSchemes_IsIdempotent(t *testing.T) {
	matcher := NewSchemeMatcher()
	catalog := newTestCatalog(
		createTestScheme("rice_flood", []string{"Rice"}, []string{"flood"}, 50000, 100),
		createTestScheme("general_relief", []string{"all crops"}, []string{"general"}, 10000, 100),
	)
	query := models.SchemeQuery{Crop: "dhan", DisasterType: "heavy rain", LandSize: 2.0, DamagePercent: damagePct(60)}

	first := matcher.FindEligibleSchemes(catalog, query)
	second := matcher.FindEligibleSchemes(catalog, query)

	assert.Equal(t, first, second, "same query against same catalog must give identical output")
}

func TestFindEligibleSchemes_KCCBonus(t *testing.T) {
	matcher := NewSchemeMatcher()
	catalog := newTestCatalog(
		createTestScheme("kcc_loan_restructuring", []string{"all crops"}, []string{"flood", "drought"}, 300000, 100),
	)
	query := models.SchemeQuery{Crop: "Wheat", DisasterType: "flood", LandSize: 3.0}

	withoutKCC := matcher.FindEligibleSchemes(catalog, query)
	query.HasKCC = true
	withKCC := matcher.FindEligibleSchemes(catalog, query)

	assert.Equal(t, withoutKCC[0].PriorityScore+scoreKCCRestructure, withKCC[0].PriorityScore)
	assert.Contains(t, withKCC[0].Reasons, "KCC holders can apply for loan restructuring under this scheme")
}

func TestFindEligibleSchemes_DamageTiersAreExclusive(t *testing.T) {
	matcher := NewSchemeMatcher()
	catalog := newTestCatalog(
		createTestScheme("rice_flood", []string{"Rice"}, []string{"flood"}, 50000, 100),
	)
	base := models.SchemeQuery{Crop: "Rice", DisasterType: "flood", LandSize: 1.0}

	severe := base
	severe.DamagePercent = damagePct(90)
	major := base
	major.DamagePercent = damagePct(60)

	severeResult := matcher.FindEligibleSchemes(catalog, severe)[0]
	majorResult := matcher.FindEligibleSchemes(catalog, major)[0]

	// Only the highest applicable damage tier counts, so the gap is exactly
	// the difference between the two tier bonuses.
	assert.Equal(t, scoreDamageSevere-scoreDamageMajor, severeResult.PriorityScore-majorResult.PriorityScore)
}

// ============================================================================
// TEST SUITE 2: COMPENSATION ESTIMATE
// ============================================================================

func TestEstimateCompensation_DamageBelowCap(t *testing.T) {
	scheme := createTestScheme("s", nil, nil, 100000, 100)
	scheme.ApplyDefaults()

	assert.Equal(t, 60000, estimateCompensation(scheme, 60))
}

func TestEstimateCompensation_CapBoundsDamage(t *testing.T) {
	scheme := createTestScheme("s", nil, nil, 100000, 33)
	scheme.ApplyDefaults()

	assert.Equal(t, 33000, estimateCompensation(scheme, 80), "payout never exceeds the scheme's compensation cap")
}

func TestFindEligibleSchemes_EstimatedAmountInResult(t *testing.T) {
	matcher := NewSchemeMatcher()
	catalog := newTestCatalog(
		createTestScheme("rice_flood", []string{"Rice"}, []string{"flood"}, 68000, 33),
	)

	results := matcher.FindEligibleSchemes(catalog, models.SchemeQuery{
		Crop:          "Rice",
		DisasterType:  "flood",
		LandSize:      1.0,
		DamagePercent: damagePct(90),
	})

	assert.Equal(t, int(68000*33.0/100), results[0].EstimatedAmount)
}

func TestFindEligibleSchemes_AbsentDamageDefaultsToMidBand(t *testing.T) {
	matcher := NewSchemeMatcher()
	catalog := newTestCatalog(
		createTestScheme("rice_flood", []string{"Rice"}, []string{"flood"}, 100000, 100),
	)

	results := matcher.FindEligibleSchemes(catalog, models.SchemeQuery{
		Crop:         "Rice",
		DisasterType: "flood",
		LandSize:     1.0,
	})

	assert.Equal(t, 50000, results[0].EstimatedAmount, "unreported damage is scored at the 50% default")
	assert.Contains(t, results[0].Reasons, "Significant crop damage (50%) strengthens your claim")
}

func TestFindEligibleSchemes_ExplicitZeroDamageIsNotDefaulted(t *testing.T) {
	matcher := NewSchemeMatcher()
	catalog := newTestCatalog(
		createTestScheme("rice_flood", []string{"Rice"}, []string{"flood"}, 100000, 100),
	)
	base := models.SchemeQuery{Crop: "Rice", DisasterType: "flood", LandSize: 1.0}

	absent := matcher.FindEligibleSchemes(catalog, base)[0]
	zero := base
	zero.DamagePercent = damagePct(0)
	reported := matcher.FindEligibleSchemes(catalog, zero)[0]

	assert.Equal(t, 0, reported.EstimatedAmount, "a farmer reporting 0% damage gets a 0 estimate")
	assert.Equal(t, scoreDamageMajor, absent.PriorityScore-reported.PriorityScore,
		"explicit 0% earns no damage-tier bonus while the absent-value default does")
	for _, reason := range reported.Reasons {
		assert.NotContains(t, reason, "crop damage", "no damage reason should be attached at 0%")
	}
}

// ============================================================================
// TEST SUITE 3: TIERS AND THE FALLBACK LADDER
// ============================================================================

func TestFindEligibleSchemes_InsuranceGateDemotesToPartial(t *testing.T) {
	matcher := NewSchemeMatcher()
	insured := createTestScheme("pmfby_like", []string{"Rice"}, []string{"flood"}, 200000, 100)
	insured.RequiresInsurance = true
	catalog := newTestCatalog(insured)

	results := matcher.FindEligibleSchemes(catalog, models.SchemeQuery{
		Crop:         "Rice",
		DisasterType: "flood",
		LandSize:     1.0,
		HasInsurance: false,
	})

	assert.Len(t, results, 1)
	assert.Equal(t, models.ConfidenceLow, results[0].MatchConfidence,
		"a missed hard requirement forces low confidence regardless of axis scores")
	assert.Equal(t, "Showing relevant schemes based on partial match", results[0].Reasons[0])
	assert.Contains(t, results[0].Reasons, "Partial match - please verify eligibility with the scheme office")
}

func TestFindEligibleSchemes_InsuranceHeldQualifies(t *testing.T) {
	matcher := NewSchemeMatcher()
	insured := createTestScheme("pmfby_like", []string{"Rice"}, []string{"flood"}, 200000, 100)
	insured.RequiresInsurance = true
	catalog := newTestCatalog(insured)

	results := matcher.FindEligibleSchemes(catalog, models.SchemeQuery{
		Crop:         "Rice",
		DisasterType: "flood",
		LandSize:     1.0,
		HasInsurance: true,
	})

	assert.Equal(t, models.ConfidenceHigh, results[0].MatchConfidence)
	assert.Contains(t, results[0].Reasons, "You have crop insurance which qualifies for claims")
	assert.False(t, results[0].IsSuggestion)
	assert.False(t, results[0].IsFallback)
}

func TestFindEligibleSchemes_SuggestionsAppendedAfterEligible(t *testing.T) {
	matcher := NewSchemeMatcher()
	insured := createTestScheme("insured_only", []string{"Rice"}, []string{"flood"}, 200000, 100)
	insured.RequiresInsurance = true
	catalog := newTestCatalog(
		createTestScheme("rice_flood", []string{"Rice"}, []string{"flood"}, 50000, 100),
		insured,
	)

	results := matcher.FindEligibleSchemes(catalog, models.SchemeQuery{
		Crop:         "Rice",
		DisasterType: "flood",
		LandSize:     1.0,
	})

	assert.Len(t, results, 2)
	assert.Equal(t, "rice_flood", results[0].ID)
	assert.Equal(t, "insured_only", results[1].ID)
	assert.True(t, results[1].IsSuggestion)
	assert.Equal(t, "You may also qualify for this scheme", results[1].Reasons[0])
}

func TestFindEligibleSchemes_MajorSchemeAllowlistWhenNothingMatches(t *testing.T) {
	matcher := NewSchemeMatcher()
	major := createTestScheme("sdrf", []string{"Cotton"}, []string{"earthquake"}, 68000, 33)
	catalog := newTestCatalog(
		major,
		createTestScheme("niche", []string{"Cotton"}, []string{"earthquake"}, 10000, 100),
	)

	// Unknown crop and a disaster outside every family: only the allowlisted
	// major scheme survives, at the floor score.
	results := matcher.FindEligibleSchemes(catalog, models.SchemeQuery{
		Crop:         "xyzzy",
		DisasterType: "alien invasion",
		LandSize:     1.0,
	})

	assert.Len(t, results, 1)
	assert.Equal(t, "sdrf", results[0].ID)
	assert.Equal(t, fallbackPriorityScore, results[0].PriorityScore)
	assert.Equal(t, models.ConfidenceLow, results[0].MatchConfidence)
}

func TestFindEligibleSchemes_BuiltinMajorsWhenCatalogHasNone(t *testing.T) {
	matcher := NewSchemeMatcher()
	catalog := newTestCatalog(
		createTestScheme("niche", []string{"Cotton"}, []string{"earthquake"}, 10000, 100),
	)

	results := matcher.FindEligibleSchemes(catalog, models.SchemeQuery{
		Crop:         "xyzzy",
		DisasterType: "alien invasion",
		LandSize:     1.0,
	})

	assert.Len(t, results, 3)
	ids := []string{results[0].ID, results[1].ID, results[2].ID}
	assert.ElementsMatch(t, []string{"sdrf", "pmfby", "small_farmer_relief"}, ids)
	for _, result := range results {
		assert.True(t, result.IsFallback)
		assert.Equal(t, fallbackPriorityScore, result.PriorityScore)
	}
}

func TestFindEligibleSchemes_EmptyCatalogReturnsHelpline(t *testing.T) {
	matcher := NewSchemeMatcher()

	results := matcher.FindEligibleSchemes(models.SchemeCatalog{}, models.SchemeQuery{
		Crop:         "Rice",
		DisasterType: "flood",
		LandSize:     1.0,
	})

	assert.Len(t, results, 1)
	assert.Equal(t, "helpline_support", results[0].ID)
	assert.True(t, results[0].IsFallback)
	assert.Equal(t, kisanCallCentreHelpline, results[0].Helpline)
}

func TestFindEligibleSchemes_NeverReturnsEmpty(t *testing.T) {
	matcher := NewSchemeMatcher()
	catalogs := []models.SchemeCatalog{
		{},
		newTestCatalog(),
		newTestCatalog(createTestScheme("niche", []string{"Cotton"}, []string{"earthquake"}, 10000, 100)),
		newTestCatalog(createTestScheme("rice_flood", []string{"Rice"}, []string{"flood"}, 50000, 100)),
	}
	queries := []models.SchemeQuery{
		{Crop: "Rice", DisasterType: "flood", LandSize: 1.0},
		{Crop: "xyzzy", DisasterType: "alien invasion", LandSize: 500},
		{Crop: "", DisasterType: "", LandSize: 0.1},
	}

	for _, catalog := range catalogs {
		for _, query := range queries {
			results := matcher.FindEligibleSchemes(catalog, query)
			assert.NotEmpty(t, results, "the engine must always return at least one scheme")
		}
	}
}

// ============================================================================
// TEST SUITE 4: SPARSE CATALOG DATA
// ============================================================================

func TestFindEligibleSchemes_SparseSchemeGetsDefaults(t *testing.T) {
	matcher := NewSchemeMatcher()
	sparse := models.Scheme{
		ID:            "sparse",
		Name:          "Sparse Scheme",
		EligibleCrops: []string{"Rice"},
		DisasterTypes: []string{"flood"},
		// No land bounds, no compensation percent, no amount.
	}
	catalog := newTestCatalog(sparse)

	results := matcher.FindEligibleSchemes(catalog, models.SchemeQuery{
		Crop:          "Rice",
		DisasterType:  "flood",
		LandSize:      500, // within the [0, 999] default bounds
		DamagePercent: damagePct(80),
	})

	assert.Equal(t, "sparse", results[0].ID)
	assert.Equal(t, 0, results[0].EstimatedAmount)
	assert.False(t, results[0].IsFallback)
}

func TestFindEligibleSchemes_DamageClampedToHundred(t *testing.T) {
	matcher := NewSchemeMatcher()
	catalog := newTestCatalog(
		createTestScheme("rice_flood", []string{"Rice"}, []string{"flood"}, 100000, 100),
	)

	results := matcher.FindEligibleSchemes(catalog, models.SchemeQuery{
		Crop:          "Rice",
		DisasterType:  "flood",
		LandSize:      1.0,
		DamagePercent: damagePct(250),
	})

	assert.Equal(t, 100000, results[0].EstimatedAmount, "damage above 100% is clamped")
}
