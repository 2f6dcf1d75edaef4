package models

import "time"

// FarmLog is one entry in a farmer's logbook: what was sown, when, and the
// money that went in and came out of that cycle.
type FarmLog struct {
	ID                  string     `json:"id" db:"id"`
	UserID              string     `json:"user_id" db:"user_id"`
	CropName            string     `json:"crop_name" db:"crop_name"`
	SowingDate          time.Time  `json:"sowing_date" db:"sowing_date"`
	ExpectedHarvestDate *time.Time `json:"expected_harvest_date" db:"expected_harvest_date"`
	MoneySpent          float64    `json:"money_spent" db:"money_spent"`
	MoneyEarned         float64    `json:"money_earned" db:"money_earned"`
	Notes               string     `json:"notes" db:"notes"`
	CreatedAt           time.Time  `json:"created_at" db:"created_at"`
}
