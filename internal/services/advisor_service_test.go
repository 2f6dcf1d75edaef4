package services

import (
	"context"
	"testing"

	"github.com/dharanishvijayakumar7-lgtm/cropPilot/internal/models"

	"github.com/stretchr/testify/assert"
)

// ============================================================================
// TEST HELPERS
// ============================================================================

type stubRiskService struct {
	assessment *models.RiskAssessment
	calls      int
}

func (s *stubRiskService) AnalyzeVillageRisk(ctx context.Context, lat, lon float64) (*models.RiskAssessment, error) {
	s.calls++
	return s.assessment, nil
}

func newTestAssessment() *models.RiskAssessment {
	return &models.RiskAssessment{
		City:      "Nashik",
		RiskLevel: models.RiskLevelModerate,
		RiskTitle: "Moderate Conditions",
		Message:   "Good conditions for most crops.",
		Weather: models.RiskWeather{
			TotalRainfall5Day:      12.3,
			EstimatedRainfall10Day: 24.6,
			AvgHumidity:            65.0,
			AvgTemp:                28.5,
		},
	}
}

// ============================================================================
// TEST SUITE 1: INTENT CLASSIFICATION
// ============================================================================

func TestClassifyIntent_Rainfall(t *testing.T) {
	advisor := NewAdvisorService(nil)

	assert.Equal(t, IntentRainfall, advisor.ClassifyIntent("Will it rain tomorrow?"))
	assert.Equal(t, IntentRainfall, advisor.ClassifyIntent("barish hogi kya"))
}

func TestClassifyIntent_Temperature(t *testing.T) {
	advisor := NewAdvisorService(nil)

	assert.Equal(t, IntentTemperature, advisor.ClassifyIntent("kitni garmi hai"))
	assert.Equal(t, IntentTemperature, advisor.ClassifyIntent("what is the temperature"))
}

func TestClassifyIntent_Scheme(t *testing.T) {
	advisor := NewAdvisorService(nil)

	assert.Equal(t, IntentScheme, advisor.ClassifyIntent("muavza kaise milega"))
	assert.Equal(t, IntentScheme, advisor.ClassifyIntent("Which yojana covers my loss?"))
}

func TestClassifyIntent_Risk(t *testing.T) {
	advisor := NewAdvisorService(nil)

	assert.Equal(t, IntentRisk, advisor.ClassifyIntent("Is there flood danger in my village?"))
}

func TestClassifyIntent_GenericWeather(t *testing.T) {
	advisor := NewAdvisorService(nil)

	assert.Equal(t, IntentWeather, advisor.ClassifyIntent("mausam kaisa hai"))
}

func TestClassifyIntent_Unknown(t *testing.T) {
	advisor := NewAdvisorService(nil)

	assert.Equal(t, IntentUnknown, advisor.ClassifyIntent("namaste"))
}

// ============================================================================
// TEST SUITE 2: ANSWERS
// ============================================================================

func TestAnswer_SchemeIntentNeedsNoLocation(t *testing.T) {
	stub := &stubRiskService{assessment: newTestAssessment()}
	advisor := NewAdvisorService(stub)

	reply, err := advisor.Answer(context.Background(), models.AdvisorRequest{
		Message: "muavza kaise milega",
	})

	assert.NoError(t, err)
	assert.Contains(t, reply, "Disaster Help")
	assert.Zero(t, stub.calls, "scheme questions must not hit the weather pipeline")
}

func TestAnswer_WeatherIntentWithoutLocationPrompts(t *testing.T) {
	stub := &stubRiskService{assessment: newTestAssessment()}
	advisor := NewAdvisorService(stub)

	reply, err := advisor.Answer(context.Background(), models.AdvisorRequest{
		Message: "mausam kaisa hai",
	})

	assert.NoError(t, err)
	assert.Contains(t, reply, "share your village location")
	assert.Zero(t, stub.calls)
}

func TestAnswer_RainfallIntentUsesForecast(t *testing.T) {
	stub := &stubRiskService{assessment: newTestAssessment()}
	advisor := NewAdvisorService(stub)

	reply, err := advisor.Answer(context.Background(), models.AdvisorRequest{
		Message: "kitni barish hogi",
		Lat:     19.99,
		Lon:     73.78,
	})

	assert.NoError(t, err)
	assert.Equal(t, 1, stub.calls)
	assert.Contains(t, reply, "Nashik")
	assert.Contains(t, reply, "24.6mm")
}

func TestAnswer_RiskIntentReportsAssessment(t *testing.T) {
	stub := &stubRiskService{assessment: newTestAssessment()}
	advisor := NewAdvisorService(stub)

	reply, err := advisor.Answer(context.Background(), models.AdvisorRequest{
		Message: "flood risk in my area",
		Lat:     19.99,
		Lon:     73.78,
	})

	assert.NoError(t, err)
	assert.Contains(t, reply, "Moderate Conditions")
	assert.Contains(t, reply, "Good conditions for most crops")
}

func TestAnswer_UnknownIntentListsCapabilities(t *testing.T) {
	advisor := NewAdvisorService(nil)

	reply, err := advisor.Answer(context.Background(), models.AdvisorRequest{
		Message: "namaste",
	})

	assert.NoError(t, err)
	assert.Contains(t, reply, "weather")
	assert.Contains(t, reply, "schemes")
}
