package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/dharanishvijayakumar7-lgtm/cropPilot/internal/models"
)

// AdvisorIntent is the classified topic of a farmer's voice/text message.
type AdvisorIntent string

const (
	IntentWeather     AdvisorIntent = "weather"
	IntentRainfall    AdvisorIntent = "rainfall"
	IntentTemperature AdvisorIntent = "temperature"
	IntentScheme      AdvisorIntent = "scheme"
	IntentRisk        AdvisorIntent = "risk"
	IntentUnknown     AdvisorIntent = "unknown"
)

// intentKeywords maps each intent to its trigger words (English plus
// romanized Hindi). Order matters: the first intent with a hit wins, so
// the more specific intents come before the generic weather one.
var intentKeywords = []struct {
	intent   AdvisorIntent
	keywords []string
}{
	{IntentRainfall, []string{"rain", "rainfall", "baarish", "barish", "varsha", "monsoon"}},
	{IntentTemperature, []string{"temperature", "hot", "cold", "garmi", "thand", "taapman", "heat"}},
	{IntentScheme, []string{"scheme", "yojana", "muavza", "compensation", "relief", "sahayata", "insurance", "bima", "help"}},
	{IntentRisk, []string{"risk", "khatra", "danger", "drought", "flood", "sukha", "baadh"}},
	{IntentWeather, []string{"weather", "mausam", "forecast", "climate"}},
}

type IAdvisorService interface {
	ClassifyIntent(message string) AdvisorIntent
	Answer(ctx context.Context, req models.AdvisorRequest) (string, error)
}

// AdvisorService is the voice/text bot layer: keyword intent
// classification dispatching to the weather-risk pipeline.
type AdvisorService struct {
	riskService IRiskService
}

func NewAdvisorService(riskService IRiskService) IAdvisorService {
	return &AdvisorService{riskService: riskService}
}

func (a *AdvisorService) ClassifyIntent(message string) AdvisorIntent {
	lower := strings.ToLower(message)
	for _, entry := range intentKeywords {
		for _, keyword := range entry.keywords {
			if strings.Contains(lower, keyword) {
				return entry.intent
			}
		}
	}
	return IntentUnknown
}

func (a *AdvisorService) Answer(ctx context.Context, req models.AdvisorRequest) (string, error) {
	intent := a.ClassifyIntent(req.Message)

	switch intent {
	case IntentScheme:
		return "For relief scheme eligibility, open Disaster Help and tell me your crop, the disaster type and your land size. I will rank the schemes you can apply for.", nil
	case IntentWeather, IntentRainfall, IntentTemperature, IntentRisk:
		if req.Lat == 0 && req.Lon == 0 {
			return "Please share your village location so I can check the weather there.", nil
		}
		assessment, err := a.riskService.AnalyzeVillageRisk(ctx, req.Lat, req.Lon)
		if err != nil {
			return "", fmt.Errorf("failed to answer weather query: %w", err)
		}
		return a.composeWeatherReply(intent, assessment), nil
	default:
		return "I can help with weather, rainfall, temperature, village risk and government relief schemes. Try asking about one of those.", nil
	}
}

func (a *AdvisorService) composeWeatherReply(intent AdvisorIntent, assessment *models.RiskAssessment) string {
	switch intent {
	case IntentRainfall:
		return fmt.Sprintf("Around %s, about %.1fmm of rain is expected over the next 10 days.",
			assessment.City, assessment.Weather.EstimatedRainfall10Day)
	case IntentTemperature:
		return fmt.Sprintf("The average temperature around %s over the next 5 days is %.1f°C with %.1f%% humidity.",
			assessment.City, assessment.Weather.AvgTemp, assessment.Weather.AvgHumidity)
	case IntentRisk:
		return fmt.Sprintf("%s: %s", assessment.RiskTitle, assessment.Message)
	default:
		return fmt.Sprintf("%s — expected rainfall %.1fmm, humidity %.1f%%, average temperature %.1f°C.",
			assessment.RiskTitle, assessment.Weather.EstimatedRainfall10Day,
			assessment.Weather.AvgHumidity, assessment.Weather.AvgTemp)
	}
}
