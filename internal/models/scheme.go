package models

// Scheme is one government relief or subsidy program from the static catalog.
// Catalog entries are immutable at runtime; missing optional fields are
// resolved to defaults at load time (see ApplyDefaults).
type Scheme struct {
	ID                  string   `json:"id"`
	Name                string   `json:"name"`
	Description         string   `json:"description"`
	DisasterTypes       []string `json:"disaster_types"`
	EligibleCrops       []string `json:"eligible_crops"`
	MinLandSize         float64  `json:"min_land_size"`
	MaxLandSize         float64  `json:"max_land_size"`
	RequiresInsurance   bool     `json:"requires_insurance"`
	MaxAmount           float64  `json:"max_amount"`
	CompensationPercent float64  `json:"compensation_percent"`
	DocumentsRequired   []string `json:"documents_required"`
	ApplicationSteps    []string `json:"application_steps"`
	Helpline            string   `json:"helpline"`
	Website             string   `json:"website"`
}

// ApplyDefaults resolves absent catalog fields so a sparse entry never
// breaks scoring: land bounds default to [0, 999] hectares and the
// compensation cap to 100%.
func (s *Scheme) ApplyDefaults() {
	if s.MaxLandSize <= 0 {
		s.MaxLandSize = 999
	}
	if s.MinLandSize < 0 {
		s.MinLandSize = 0
	}
	if s.CompensationPercent <= 0 || s.CompensationPercent > 100 {
		s.CompensationPercent = 100
	}
	if s.MaxAmount < 0 {
		s.MaxAmount = 0
	}
}

// DisasterTypeInfo is display metadata for a disaster type in the catalog.
type DisasterTypeInfo struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Icon string `json:"icon"`
}

// SchemeCatalog is the parsed schemes.json: the scheme list plus the form
// metadata (valid crops, disaster types, states) the frontend renders.
type SchemeCatalog struct {
	Schemes       []Scheme           `json:"schemes"`
	DisasterTypes []DisasterTypeInfo `json:"disaster_types"`
	Crops         []string           `json:"crops"`
	States        []string           `json:"states"`
}

// SchemeQuery is one farmer's normalized eligibility request. DamagePercent
// is a pointer so an explicit 0% stays distinguishable from "not reported".
type SchemeQuery struct {
	Crop          string   `json:"crop"`
	DisasterType  string   `json:"disaster_type"`
	LandSize      float64  `json:"land_size"`
	HasInsurance  bool     `json:"has_insurance"`
	HasKCC        bool     `json:"has_kcc"`
	DamagePercent *float64 `json:"damage_percent"`
}

// MatchType reports how confidently a free-text crop or disaster name was
// resolved to a canonical catalog key.
type MatchType string

const (
	MatchTypeExact    MatchType = "exact"
	MatchTypeAlias    MatchType = "alias"
	MatchTypeCategory MatchType = "category"
	MatchTypeFuzzy    MatchType = "fuzzy"
	MatchTypeUnknown  MatchType = "unknown"
)

// MatchConfidence is the coarse strength of a scheme's crop+disaster match,
// independent of the bonus scoring.
type MatchConfidence string

const (
	ConfidenceHigh   MatchConfidence = "high"
	ConfidenceMedium MatchConfidence = "medium"
	ConfidenceLow    MatchConfidence = "low"
)

// SchemeResult is one ranked recommendation returned to the farmer.
// PriorityScore is an internal ranking signal and is not rendered.
type SchemeResult struct {
	ID                string          `json:"id"`
	Name              string          `json:"name"`
	Description       string          `json:"description"`
	MaxAmount         float64         `json:"max_amount"`
	EstimatedAmount   int             `json:"estimated_amount"`
	PriorityScore     int             `json:"priority_score"`
	MatchConfidence   MatchConfidence `json:"match_confidence"`
	CropMatched       string          `json:"crop_matched"`
	DisasterMatched   string          `json:"disaster_matched"`
	Reasons           []string        `json:"reasons"`
	DocumentsRequired []string        `json:"documents_required"`
	ApplicationSteps  []string        `json:"application_steps"`
	Helpline          string          `json:"helpline"`
	Website           string          `json:"website"`
	IsSuggestion      bool            `json:"is_suggestion,omitempty"`
	IsFallback        bool            `json:"is_fallback,omitempty"`
}
