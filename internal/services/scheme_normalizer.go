package services

import (
	"sort"
	"strings"

	"github.com/dharanishvijayakumar7-lgtm/cropPilot/internal/models"
	"github.com/dharanishvijayakumar7-lgtm/cropPilot/utils"
)

// cropAliases maps common and regional-language crop names to their
// canonical catalog name. Keys are lower-cased.
var cropAliases = map[string]string{
	"paddy":      "Rice",
	"dhan":       "Rice",
	"chawal":     "Rice",
	"gehu":       "Wheat",
	"gehun":      "Wheat",
	"makka":      "Maize",
	"makki":      "Maize",
	"corn":       "Maize",
	"kapas":      "Cotton",
	"ganna":      "Sugarcane",
	"sarso":      "Mustard",
	"sarson":     "Mustard",
	"moongfali":  "Groundnut",
	"peanut":     "Groundnut",
	"chana":      "Gram",
	"arhar":      "Tur",
	"tuar":       "Tur",
	"pigeon pea": "Tur",
	"aloo":       "Potato",
	"pyaz":       "Onion",
	"tamatar":    "Tomato",
	"kela":       "Banana",
	"soya":       "Soybean",
	"bajra":      "Pearl Millet",
	"jowar":      "Sorghum",
}

// cropCategories maps a category word to the full list of member crops.
// The first member doubles as the category's canonical crop.
var cropCategories = map[string][]string{
	"cereals":    {"Rice", "Wheat", "Maize", "Barley", "Pearl Millet", "Sorghum"},
	"pulses":     {"Gram", "Tur", "Moong", "Urad", "Masoor"},
	"oilseeds":   {"Mustard", "Groundnut", "Soybean", "Sunflower", "Sesame"},
	"cash crops": {"Cotton", "Sugarcane", "Jute", "Tobacco"},
	"vegetables": {"Potato", "Onion", "Tomato", "Brinjal", "Okra"},
	"fruits":     {"Banana", "Mango", "Grapes", "Pomegranate", "Citrus"},
	"millets":    {"Pearl Millet", "Sorghum", "Finger Millet"},
}

// disasterFamilies groups disaster identifiers treated as equivalent for
// matching. Farmers describe the same event inconsistently ("heavy rain"
// vs "flood"), so each slug expands to its family's full member list.
var disasterFamilies = map[string][]string{
	"flood":       {"flood", "heavy_rain", "waterlogging", "flash_flood"},
	"heavy_rain":  {"heavy_rain", "flood", "waterlogging"},
	"drought":     {"drought", "dry_spell", "deficit_rainfall", "heatwave"},
	"cyclone":     {"cyclone", "storm", "strong_wind", "heavy_rain"},
	"hailstorm":   {"hailstorm", "thunderstorm", "heavy_rain"},
	"heatwave":    {"heatwave", "drought", "dry_spell"},
	"cold_wave":   {"cold_wave", "frost"},
	"pest_attack": {"pest_attack", "locust_attack", "disease"},
	"disease":     {"disease", "fungal_infection", "pest_attack"},
	"earthquake":  {"earthquake", "landslide"},
	"fire":        {"fire", "wildfire"},
}

// disasterAliases maps regional-language and synonym slugs to a canonical
// family root. Keys use underscores, never spaces.
var disasterAliases = map[string]string{
	"baadh":        "flood",
	"barish":       "heavy_rain",
	"baarish":      "heavy_rain",
	"sukha":        "drought",
	"sookha":       "drought",
	"toofan":       "cyclone",
	"aandhi":       "cyclone",
	"hurricane":    "cyclone",
	"ole":          "hailstorm",
	"olavrishti":   "hailstorm",
	"hail":         "hailstorm",
	"garmi":        "heatwave",
	"loo":          "heatwave",
	"thand":        "cold_wave",
	"paala":        "cold_wave",
	"keede":        "pest_attack",
	"tiddi":        "pest_attack",
	"locust":       "pest_attack",
	"bimari":       "disease",
	"crop_disease": "disease",
	"aag":          "fire",
	"bhukamp":      "earthquake",
}

// generalDisasterFamilies is the broadening set used when a disaster input
// matches nothing: downstream matching still tries the top-level families.
var generalDisasterFamilies = []string{"flood", "drought", "cyclone", "hailstorm", "pest_attack", "disease"}

// SchemeNormalizer resolves free-text crop and disaster names against the
// catalog's valid crop list and the static alias/category/family tables.
type SchemeNormalizer struct {
	validCrops []string
}

func NewSchemeNormalizer(validCrops []string) *SchemeNormalizer {
	return &SchemeNormalizer{validCrops: validCrops}
}

// NormalizeCrop maps a farmer-supplied crop string to a canonical catalog
// crop. Tie-break order: exact, alias, category, fuzzy, unknown. An unknown
// input comes back title-cased so the scorer can still try it verbatim.
func (n *SchemeNormalizer) NormalizeCrop(input string) (string, models.MatchType, []string) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return "", models.MatchTypeUnknown, nil
	}
	lower := strings.ToLower(trimmed)

	for _, crop := range n.validCrops {
		if strings.ToLower(crop) == lower {
			return crop, models.MatchTypeExact, nil
		}
	}

	if canonical, ok := cropAliases[lower]; ok {
		return canonical, models.MatchTypeAlias, nil
	}

	if members, ok := cropCategories[lower]; ok {
		related := make([]string, len(members))
		copy(related, members)
		return members[0], models.MatchTypeCategory, related
	}

	// Substring containment in either direction against catalog crops.
	for _, crop := range n.validCrops {
		cropLower := strings.ToLower(crop)
		if strings.Contains(cropLower, lower) || strings.Contains(lower, cropLower) {
			return crop, models.MatchTypeFuzzy, nil
		}
	}

	// Shared 4-character prefix catches common misspellings ("sugarcan").
	if len(lower) >= 4 {
		for _, crop := range n.validCrops {
			cropLower := strings.ToLower(crop)
			if len(cropLower) >= 4 && cropLower[:4] == lower[:4] {
				return crop, models.MatchTypeFuzzy, nil
			}
		}
	}

	for _, key := range sortedKeys(cropAliases) {
		if strings.Contains(key, lower) || strings.Contains(lower, key) {
			return cropAliases[key], models.MatchTypeFuzzy, nil
		}
	}

	return utils.TitleCase(trimmed), models.MatchTypeUnknown, nil
}

// NormalizeDisaster maps a farmer-supplied disaster string to a canonical
// family slug plus the family's member list. Input is lower-cased with
// spaces replaced by underscores before matching. An unmatched input
// degrades to the "general" sentinel with the top-level families as
// related values so downstream matching still finds something.
func (n *SchemeNormalizer) NormalizeDisaster(input string) (string, models.MatchType, []string) {
	slug := utils.Slugify(input)
	if slug == "" {
		return "", models.MatchTypeUnknown, nil
	}

	if family, ok := disasterFamilies[slug]; ok {
		return slug, models.MatchTypeExact, copyStrings(family)
	}

	if canonical, ok := disasterAliases[slug]; ok {
		if family, ok := disasterFamilies[canonical]; ok {
			return canonical, models.MatchTypeAlias, copyStrings(family)
		}
		return canonical, models.MatchTypeAlias, []string{canonical}
	}

	// Underscore-insensitive comparison ("flashflood" vs "flash_flood").
	stripped := strings.ReplaceAll(slug, "_", "")
	for _, key := range sortedKeys(disasterFamilies) {
		if strings.ReplaceAll(key, "_", "") == stripped {
			return key, models.MatchTypeFuzzy, copyStrings(disasterFamilies[key])
		}
	}

	for _, key := range sortedKeys(disasterFamilies) {
		if strings.Contains(key, slug) || strings.Contains(slug, key) {
			return key, models.MatchTypeFuzzy, copyStrings(disasterFamilies[key])
		}
	}

	for _, key := range sortedKeys(disasterAliases) {
		if strings.Contains(key, slug) || strings.Contains(slug, key) {
			canonical := disasterAliases[key]
			if family, ok := disasterFamilies[canonical]; ok {
				return canonical, models.MatchTypeFuzzy, copyStrings(family)
			}
			return canonical, models.MatchTypeFuzzy, []string{canonical}
		}
	}

	return "general", models.MatchTypeUnknown, copyStrings(generalDisasterFamilies)
}

// sortedKeys gives the substring scans a deterministic iteration order so
// the documented first-match-wins behavior holds across runs.
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func copyStrings(src []string) []string {
	dst := make([]string, len(src))
	copy(dst, src)
	return dst
}
