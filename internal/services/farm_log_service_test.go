package services

import (
	"testing"
	"time"

	"github.com/dharanishvijayakumar7-lgtm/cropPilot/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestResolveHarvestDate_ExplicitDateWins(t *testing.T) {
	sowing := time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC)

	harvest, err := resolveHarvestDate(sowing, models.CreateFarmLogRequest{
		ExpectedHarvestDate: "2026-10-20",
		DurationDays:        90,
	})

	assert.NoError(t, err)
	assert.NotNil(t, harvest)
	assert.Equal(t, "2026-10-20", harvest.Format(sowingDateLayout))
}

func TestResolveHarvestDate_DerivedFromDuration(t *testing.T) {
	sowing := time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC)

	harvest, err := resolveHarvestDate(sowing, models.CreateFarmLogRequest{
		DurationDays: 120,
	})

	assert.NoError(t, err)
	assert.NotNil(t, harvest)
	assert.Equal(t, sowing.AddDate(0, 0, 120), *harvest)
}

func TestResolveHarvestDate_NeitherGiven(t *testing.T) {
	sowing := time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC)

	harvest, err := resolveHarvestDate(sowing, models.CreateFarmLogRequest{})

	assert.NoError(t, err)
	assert.Nil(t, harvest, "harvest date is optional on a logbook entry")
}

func TestResolveHarvestDate_RejectsBadFormat(t *testing.T) {
	sowing := time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC)

	_, err := resolveHarvestDate(sowing, models.CreateFarmLogRequest{
		ExpectedHarvestDate: "20-10-2026",
	})

	assert.Error(t, err)
}
