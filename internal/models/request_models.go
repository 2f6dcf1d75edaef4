package models

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Phone    string `json:"phone" binding:"required"`
	Password string `json:"password" binding:"required"`
	State    string `json:"state"`
	District string `json:"district"`
}

type LoginRequest struct {
	Phone    string `json:"phone" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type CreateFarmLogRequest struct {
	CropName            string  `json:"crop_name" binding:"required"`
	SowingDate          string  `json:"sowing_date" binding:"required"`
	DurationDays        int     `json:"duration_days"`
	ExpectedHarvestDate string  `json:"expected_harvest_date"`
	MoneySpent          float64 `json:"money_spent"`
	MoneyEarned         float64 `json:"money_earned"`
	Notes               string  `json:"notes"`
}

type EligibilityRequest struct {
	Crop          string   `json:"crop" binding:"required"`
	DisasterType  string   `json:"disaster_type" binding:"required"`
	LandSize      float64  `json:"land_size" binding:"required,gt=0"`
	HasInsurance  bool     `json:"has_insurance"`
	HasKCC        bool     `json:"has_kcc"`
	DamagePercent *float64 `json:"damage_percent"`
}

type RiskAnalysisRequest struct {
	Lat float64 `json:"lat" binding:"required"`
	Lon float64 `json:"lon" binding:"required"`
}

type AdvisorRequest struct {
	Message string  `json:"message" binding:"required"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
}
