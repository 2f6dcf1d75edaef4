package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/dharanishvijayakumar7-lgtm/cropPilot/internal/models"

	"github.com/redis/go-redis/v9"
)

// Risk classification thresholds over the estimated 10-day rainfall (mm)
// and average humidity (%).
const (
	droughtRainfallMM   = 10.0
	excessRainfallMM    = 50.0
	moderateHumidityPct = 70.0
	excessHumidityPct   = 80.0

	riskCacheTTL = 30 * time.Minute
)

type IRiskService interface {
	AnalyzeVillageRisk(ctx context.Context, lat, lon float64) (*models.RiskAssessment, error)
}

// RiskService combines the weather forecast and reverse geocoding into a
// village-level risk classification. Results are cached briefly in Redis
// keyed by rounded coordinates to stay inside third-party rate limits.
type RiskService struct {
	weatherService   IWeatherService
	geocodingService IGeocodingService
	redisClient      *redis.Client
}

func NewRiskService(weatherService IWeatherService, geocodingService IGeocodingService, redisClient *redis.Client) IRiskService {
	return &RiskService{
		weatherService:   weatherService,
		geocodingService: geocodingService,
		redisClient:      redisClient,
	}
}

func (s *RiskService) AnalyzeVillageRisk(ctx context.Context, lat, lon float64) (*models.RiskAssessment, error) {
	if cached := s.getCachedAssessment(ctx, lat, lon); cached != nil {
		return cached, nil
	}

	summary, err := s.weatherService.FetchForecastSummary(lat, lon)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch weather data: %w", err)
	}

	location := s.geocodingService.ReverseGeocode(lat, lon)

	// The forecast covers 5 days; extrapolate to a 10-day estimate.
	estimated10Day := roundTo(summary.TotalRainfall*2, 1)
	level, color, title, message := ClassifyRisk(estimated10Day, summary.AvgHumidity)

	assessment := &models.RiskAssessment{
		Lat:       lat,
		Lon:       lon,
		City:      summary.City,
		Location:  location,
		RiskLevel: level,
		RiskColor: color,
		RiskTitle: title,
		Message:   message,
		Weather: models.RiskWeather{
			TotalRainfall5Day:      summary.TotalRainfall,
			EstimatedRainfall10Day: estimated10Day,
			AvgHumidity:            summary.AvgHumidity,
			AvgTemp:                summary.AvgTemp,
		},
	}

	s.cacheAssessment(ctx, lat, lon, assessment)
	return assessment, nil
}

// ClassifyRisk buckets a village into drought / moderate / excess-moisture
// risk from the estimated 10-day rainfall and average humidity.
func ClassifyRisk(estimated10DayRainfall, avgHumidity float64) (models.RiskLevel, string, string, string) {
	switch {
	case estimated10DayRainfall < droughtRainfallMM:
		return models.RiskLevelDrought, "#e74c3c", "High Drought Risk",
			fmt.Sprintf("This village is expected to receive very low rainfall (estimated %.1fmm in next 10 days). High drought risk. Consider water conservation measures and drought-resistant crops.", estimated10DayRainfall)
	case estimated10DayRainfall < excessRainfallMM && avgHumidity < moderateHumidityPct:
		return models.RiskLevelModerate, "#f39c12", "Moderate Conditions",
			fmt.Sprintf("This village has moderate weather conditions. Expected rainfall: %.1fmm. Humidity: %.1f%%. Good conditions for most crops.", estimated10DayRainfall, avgHumidity)
	case estimated10DayRainfall >= excessRainfallMM || avgHumidity >= excessHumidityPct:
		return models.RiskLevelExcessMoisture, "#3498db", "Excess Moisture Risk",
			fmt.Sprintf("This village may experience excess moisture. Expected rainfall: %.1fmm. Humidity: %.1f%%. Risk of flooding or pest/fungal issues. Ensure proper drainage.", estimated10DayRainfall, avgHumidity)
	default:
		return models.RiskLevelModerate, "#f39c12", "Moderate Conditions",
			fmt.Sprintf("Expected rainfall: %.1fmm. Humidity: %.1f%%. Normal conditions expected.", estimated10DayRainfall, avgHumidity)
	}
}

func (s *RiskService) getCachedAssessment(ctx context.Context, lat, lon float64) *models.RiskAssessment {
	if s.redisClient == nil {
		return nil
	}

	data, err := s.redisClient.Get(ctx, riskCacheKey(lat, lon)).Result()
	if err != nil {
		if err != redis.Nil {
			slog.Warn("risk cache read failed", "error", err)
		}
		return nil
	}

	var assessment models.RiskAssessment
	if err := json.Unmarshal([]byte(data), &assessment); err != nil {
		slog.Warn("risk cache entry corrupt, ignoring", "error", err)
		return nil
	}
	return &assessment
}

func (s *RiskService) cacheAssessment(ctx context.Context, lat, lon float64, assessment *models.RiskAssessment) {
	if s.redisClient == nil {
		return
	}

	data, err := json.Marshal(assessment)
	if err != nil {
		slog.Warn("risk cache marshal failed", "error", err)
		return
	}
	if err := s.redisClient.Set(ctx, riskCacheKey(lat, lon), data, riskCacheTTL).Err(); err != nil {
		slog.Warn("risk cache write failed", "error", err)
	}
}

// riskCacheKey rounds coordinates to ~1km so nearby requests share an entry.
func riskCacheKey(lat, lon float64) string {
	return fmt.Sprintf("risk:%.2f:%.2f", lat, lon)
}
