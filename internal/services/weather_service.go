package services

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"math"
	"net/http"
	"net/url"
	"time"

	"github.com/dharanishvijayakumar7-lgtm/cropPilot/internal/config"
	"github.com/dharanishvijayakumar7-lgtm/cropPilot/internal/models"
)

type IWeatherService interface {
	FetchForecastSummary(lat, lon float64) (*models.ForecastSummary, error)
}

// WeatherService calls the OpenWeather 5-day/3-hour forecast API and
// aggregates the entries into a single summary for risk analysis.
type WeatherService struct {
	cfg    config.WeatherConfig
	client *http.Client
}

func NewWeatherService(cfg config.WeatherConfig) IWeatherService {
	return &WeatherService{
		cfg: cfg,
		client: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

func (w *WeatherService) FetchForecastSummary(lat, lon float64) (*models.ForecastSummary, error) {
	if w.cfg.APIKey == "" {
		log.Println("OpenWeather API key not configured")
		return nil, fmt.Errorf("weather API key not configured")
	}

	params := url.Values{}
	params.Set("lat", fmt.Sprintf("%f", lat))
	params.Set("lon", fmt.Sprintf("%f", lon))
	params.Set("appid", w.cfg.APIKey)
	params.Set("units", "metric")

	resp, err := w.client.Get(w.cfg.ForecastURL + "?" + params.Encode())
	if err != nil {
		log.Printf("Error fetching weather data: %v", err)
		return nil, fmt.Errorf("failed to call weather API")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Printf("Error reading weather response body: %v", err)
		return nil, fmt.Errorf("failed to read weather response")
	}

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusUnauthorized:
		return nil, fmt.Errorf("invalid weather API key")
	case http.StatusTooManyRequests:
		return nil, fmt.Errorf("weather API rate limit exceeded")
	default:
		log.Printf("Weather API returned non-200 status: %d, body: %s", resp.StatusCode, string(body))
		return nil, fmt.Errorf("weather API error")
	}

	var forecast models.ForecastResponse
	if err := json.Unmarshal(body, &forecast); err != nil {
		log.Println("Error unmarshaling weather JSON:", err)
		return nil, fmt.Errorf("failed to parse weather response")
	}

	return summarizeForecast(forecast), nil
}

// summarizeForecast folds the 3-hourly entries into the totals the risk
// classifier reads. An empty entry list falls back to 50% humidity and
// 25°C so classification still has usable inputs.
func summarizeForecast(forecast models.ForecastResponse) *models.ForecastSummary {
	var totalRainfall, humiditySum, tempSum float64
	count := len(forecast.List)

	for _, entry := range forecast.List {
		tempSum += entry.Main.Temp
		humiditySum += entry.Main.Humidity
		if entry.Rain != nil {
			totalRainfall += entry.Rain.ThreeHour
		}
	}

	avgHumidity := 50.0
	avgTemp := 25.0
	if count > 0 {
		avgHumidity = humiditySum / float64(count)
		avgTemp = tempSum / float64(count)
	}

	city := forecast.City.Name
	if city == "" {
		city = "Unknown Location"
	}

	return &models.ForecastSummary{
		TotalRainfall: roundTo(totalRainfall, 2),
		AvgHumidity:   roundTo(avgHumidity, 1),
		AvgTemp:       roundTo(avgTemp, 1),
		City:          city,
		ForecastDays:  5,
	}
}

func roundTo(v float64, places int) float64 {
	factor := 1.0
	for i := 0; i < places; i++ {
		factor *= 10
	}
	return math.Round(v*factor) / factor
}
