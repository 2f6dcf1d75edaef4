package services

import (
	"fmt"
	"log/slog"
	"math"
	"sort"
	"strings"

	"github.com/dharanishvijayakumar7-lgtm/cropPilot/internal/models"
	"github.com/dharanishvijayakumar7-lgtm/cropPilot/utils"
)

// Priority-score weights. The relative magnitudes are the contract: a
// specific crop/disaster match must always outrank blanket coverage, and
// the bonuses stack on top without overturning that ordering.
const (
	scoreAxisExact   = 50
	scoreAxisRelated = 35
	scoreAxisGeneric = 20

	scoreLandInRange       = 10
	scoreInsuranceRequired = 20
	scoreInsuranceHeld     = 10
	scoreSmallFarmer       = 15

	scoreDamageSevere   = 25
	scoreDamageMajor    = 15
	scoreDamageModerate = 10

	scoreKCCRestructure = 30

	fallbackPriorityScore   = 5
	maxFallbackSuggestions  = 2
	smallFarmerMaxHectares  = 2.0
	defaultDamagePercent    = 50.0
	kisanCallCentreHelpline = "1800-180-1551"
)

// majorSchemeIDs are always surfaced even when nothing matches: state
// disaster relief, the national crop insurance scheme, and the small and
// marginal farmer relief package.
var majorSchemeIDs = []string{"sdrf", "pmfby", "small_farmer_relief"}

// SchemeMatcher scores a catalog against one farmer query. It holds no
// state between calls; every invocation works on fresh local structures.
type SchemeMatcher struct{}

func NewSchemeMatcher() *SchemeMatcher {
	return &SchemeMatcher{}
}

// axisMatch is the outcome of scoring one axis (crop or disaster) of a scheme.
type axisMatch struct {
	score   int
	matched string
	exact   bool
	generic bool
	ok      bool
}

// FindEligibleSchemes ranks every catalog scheme against the query and
// guarantees a non-empty result: full matches first, then partial
// fallbacks, then the major-scheme allowlist, and as an absolute last
// resort a synthetic helpline entry. It never returns an empty list and
// never panics on sparse catalog data.
func (m *SchemeMatcher) FindEligibleSchemes(catalog models.SchemeCatalog, query models.SchemeQuery) []models.SchemeResult {
	// An unreported damage percent scores as the mid-band default; an
	// explicit 0 means what it says.
	damage := defaultDamagePercent
	if query.DamagePercent != nil {
		damage = *query.DamagePercent
		if damage < 0 {
			damage = 0
		}
		if damage > 100 {
			damage = 100
		}
	}

	normalizer := NewSchemeNormalizer(catalog.Crops)
	crop, cropType, relatedCrops := normalizer.NormalizeCrop(query.Crop)
	disaster, disasterType, relatedDisasters := normalizer.NormalizeDisaster(query.DisasterType)

	slog.Debug("normalized eligibility query",
		"crop", crop, "crop_match", cropType,
		"disaster", disaster, "disaster_match", disasterType)

	cropsToCheck := dedupNonEmpty(append([]string{crop}, relatedCrops...))
	var disastersToCheck []string
	if len(relatedDisasters) > 0 {
		disastersToCheck = dedupNonEmpty(relatedDisasters)
	} else {
		disastersToCheck = dedupNonEmpty([]string{disaster})
	}

	var eligible []models.SchemeResult
	var fallback []models.SchemeResult

	for _, scheme := range catalog.Schemes {
		scheme.ApplyDefaults()

		cropAxis := scoreCropAxis(scheme, cropsToCheck, crop)
		disasterAxis := scoreDisasterAxis(scheme, disastersToCheck, disaster)
		landOK := scheme.MinLandSize <= query.LandSize && query.LandSize <= scheme.MaxLandSize
		insuranceOK := !scheme.RequiresInsurance || query.HasInsurance

		score := cropAxis.score + disasterAxis.score
		reasons := buildMatchReasons(scheme, cropAxis, disasterAxis)

		if landOK {
			score += scoreLandInRange
			reasons = append(reasons, fmt.Sprintf("Your land size (%.1f hectares) meets the criteria", query.LandSize))
		}
		if query.HasInsurance {
			if scheme.RequiresInsurance {
				score += scoreInsuranceRequired
				reasons = append(reasons, "You have crop insurance which qualifies for claims")
			} else {
				score += scoreInsuranceHeld
				reasons = append(reasons, "Having crop insurance strengthens your application")
			}
		}
		if query.LandSize <= smallFarmerMaxHectares {
			score += scoreSmallFarmer
			reasons = append(reasons, "Small/marginal farmer benefits may apply")
		}
		switch {
		case damage >= 75:
			score += scoreDamageSevere
			reasons = append(reasons, fmt.Sprintf("Severe crop damage (%.0f%%) qualifies for maximum compensation", damage))
		case damage >= 50:
			score += scoreDamageMajor
			reasons = append(reasons, fmt.Sprintf("Significant crop damage (%.0f%%) strengthens your claim", damage))
		case damage >= 33:
			score += scoreDamageModerate
			reasons = append(reasons, fmt.Sprintf("Crop damage of %.0f%% meets the minimum loss threshold", damage))
		}
		if query.HasKCC && strings.Contains(strings.ToLower(scheme.ID), "kcc") {
			score += scoreKCCRestructure
			reasons = append(reasons, "KCC holders can apply for loan restructuring under this scheme")
		}

		result := models.SchemeResult{
			ID:                scheme.ID,
			Name:              scheme.Name,
			Description:       scheme.Description,
			MaxAmount:         scheme.MaxAmount,
			EstimatedAmount:   estimateCompensation(scheme, damage),
			PriorityScore:     score,
			MatchConfidence:   matchConfidence(cropAxis.score, disasterAxis.score),
			CropMatched:       cropAxis.matched,
			DisasterMatched:   disasterAxis.matched,
			Reasons:           reasons,
			DocumentsRequired: scheme.DocumentsRequired,
			ApplicationSteps:  scheme.ApplicationSteps,
			Helpline:          scheme.Helpline,
			Website:           scheme.Website,
		}

		switch {
		case cropAxis.ok && disasterAxis.ok && landOK && insuranceOK:
			eligible = append(eligible, result)
		case (cropAxis.ok || disasterAxis.ok) && landOK:
			result.MatchConfidence = models.ConfidenceLow
			result.Reasons = append([]string{"Partial match - please verify eligibility with the scheme office"}, result.Reasons...)
			fallback = append(fallback, result)
		case isMajorScheme(scheme.ID):
			result.PriorityScore = fallbackPriorityScore
			result.MatchConfidence = models.ConfidenceLow
			result.Reasons = genericSchemeReasons(scheme)
			fallback = append(fallback, result)
		}
	}

	sortByPriority(eligible)
	sortByPriority(fallback)

	if len(eligible) > 0 {
		for i, suggestion := range fallback {
			if i >= maxFallbackSuggestions {
				break
			}
			suggestion.IsSuggestion = true
			suggestion.Reasons = append([]string{"You may also qualify for this scheme"}, suggestion.Reasons...)
			eligible = append(eligible, suggestion)
		}
		return eligible
	}

	if len(fallback) > 0 {
		for i := range fallback {
			fallback[i].Reasons = append([]string{"Showing relevant schemes based on partial match"}, fallback[i].Reasons...)
		}
		return fallback
	}

	if len(catalog.Schemes) > 0 {
		slog.Warn("no scheme matched and catalog has no major schemes, using built-in descriptors",
			"crop", crop, "disaster", disaster)
		return builtinMajorSchemeResults()
	}

	slog.Warn("scheme catalog empty, returning helpline fallback")
	return []models.SchemeResult{helplineFallbackResult()}
}

func scoreCropAxis(scheme models.Scheme, cropsToCheck []string, normalizedCrop string) axisMatch {
	for _, entry := range scheme.EligibleCrops {
		lower := strings.ToLower(entry)
		if lower == "all crops" || lower == "all" || lower == "general" {
			return axisMatch{score: scoreAxisGeneric, matched: normalizedCrop, generic: true, ok: true}
		}
	}
	for _, candidate := range cropsToCheck {
		for _, entry := range scheme.EligibleCrops {
			if strings.EqualFold(entry, candidate) {
				if strings.EqualFold(candidate, normalizedCrop) {
					return axisMatch{score: scoreAxisExact, matched: candidate, exact: true, ok: true}
				}
				return axisMatch{score: scoreAxisRelated, matched: candidate, ok: true}
			}
		}
	}
	return axisMatch{}
}

func scoreDisasterAxis(scheme models.Scheme, disastersToCheck []string, normalizedDisaster string) axisMatch {
	for _, entry := range scheme.DisasterTypes {
		lower := strings.ToLower(entry)
		if lower == "general" || lower == "all" {
			return axisMatch{score: scoreAxisGeneric, matched: normalizedDisaster, generic: true, ok: true}
		}
	}
	for _, candidate := range disastersToCheck {
		for _, entry := range scheme.DisasterTypes {
			if strings.EqualFold(entry, candidate) {
				if strings.EqualFold(candidate, normalizedDisaster) {
					return axisMatch{score: scoreAxisExact, matched: candidate, exact: true, ok: true}
				}
				return axisMatch{score: scoreAxisRelated, matched: candidate, ok: true}
			}
		}
	}
	return axisMatch{}
}

func buildMatchReasons(scheme models.Scheme, cropAxis, disasterAxis axisMatch) []string {
	reasons := make([]string, 0, 8)
	switch {
	case cropAxis.generic:
		reasons = append(reasons, "This scheme covers all crops")
	case cropAxis.exact:
		reasons = append(reasons, fmt.Sprintf("Your crop (%s) is covered under this scheme", cropAxis.matched))
	case cropAxis.ok:
		reasons = append(reasons, fmt.Sprintf("A crop related to yours (%s) is covered under this scheme", cropAxis.matched))
	}
	switch {
	case disasterAxis.generic:
		reasons = append(reasons, "This scheme covers all disaster types")
	case disasterAxis.exact:
		reasons = append(reasons, fmt.Sprintf("Disaster type (%s) is eligible", utils.Humanize(disasterAxis.matched)))
	case disasterAxis.ok:
		reasons = append(reasons, fmt.Sprintf("A related disaster type (%s) is covered", utils.Humanize(disasterAxis.matched)))
	}
	return reasons
}

// estimateCompensation applies the scheme's compensation cap to the
// reported damage: floor(maxAmount * min(damage, cap) / 100).
func estimateCompensation(scheme models.Scheme, damagePercent float64) int {
	payable := math.Min(damagePercent, scheme.CompensationPercent)
	return int(scheme.MaxAmount * payable / 100)
}

func matchConfidence(cropScore, disasterScore int) models.MatchConfidence {
	if cropScore >= scoreAxisExact && disasterScore >= scoreAxisExact {
		return models.ConfidenceHigh
	}
	if cropScore >= scoreAxisRelated || disasterScore >= scoreAxisRelated {
		return models.ConfidenceMedium
	}
	return models.ConfidenceLow
}

func isMajorScheme(id string) bool {
	lower := strings.ToLower(id)
	for _, major := range majorSchemeIDs {
		if lower == major {
			return true
		}
	}
	return false
}

func genericSchemeReasons(scheme models.Scheme) []string {
	return []string{
		fmt.Sprintf("%s is a major relief scheme worth checking for any disaster", scheme.Name),
		"Contact your local agriculture office to confirm eligibility",
	}
}

// sortByPriority orders results by descending priority score. The sort is
// stable so ties keep their catalog order.
func sortByPriority(results []models.SchemeResult) {
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].PriorityScore > results[j].PriorityScore
	})
}

// builtinMajorSchemeResults covers catalogs that carry none of the
// allowlisted major schemes: minimal descriptors keep the response useful.
func builtinMajorSchemeResults() []models.SchemeResult {
	majors := []struct {
		id, name, description string
	}{
		{"sdrf", "State Disaster Response Fund", "State-administered relief for crop loss in notified natural disasters"},
		{"pmfby", "Pradhan Mantri Fasal Bima Yojana", "National crop insurance scheme covering yield losses from natural calamities"},
		{"small_farmer_relief", "Small & Marginal Farmer Relief", "Additional relief package for farmers holding up to 2 hectares"},
	}
	results := make([]models.SchemeResult, 0, len(majors))
	for _, major := range majors {
		results = append(results, models.SchemeResult{
			ID:              major.id,
			Name:            major.name,
			Description:     major.description,
			PriorityScore:   fallbackPriorityScore,
			MatchConfidence: models.ConfidenceLow,
			Reasons: []string{
				"No scheme matched your exact situation",
				fmt.Sprintf("%s is a major relief scheme worth checking for any disaster", major.name),
				"Contact your local agriculture office to confirm eligibility",
			},
			Helpline:   kisanCallCentreHelpline,
			IsFallback: true,
		})
	}
	return results
}

// helplineFallbackResult is the absolute last resort for a missing or
// empty catalog. This path must never raise and never return nothing.
func helplineFallbackResult() models.SchemeResult {
	return models.SchemeResult{
		ID:              "helpline_support",
		Name:            "Kisan Call Centre Support",
		Description:     "Scheme information is temporarily unavailable. Call the Kisan Call Centre for guidance on relief schemes in your district.",
		PriorityScore:   fallbackPriorityScore,
		MatchConfidence: models.ConfidenceLow,
		Reasons: []string{
			"Scheme catalog is currently unavailable",
			"The Kisan Call Centre can guide you through available relief options",
		},
		ApplicationSteps: []string{
			"Call the helpline and describe your crop, disaster type and land size",
			"Note down the schemes suggested by the advisor",
			"Visit your local agriculture office with land records and ID proof",
		},
		Helpline:   kisanCallCentreHelpline,
		IsFallback: true,
	}
}

func dedupNonEmpty(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v == "" {
			continue
		}
		key := strings.ToLower(v)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, v)
	}
	return out
}
