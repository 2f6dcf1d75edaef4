package services

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dharanishvijayakumar7-lgtm/cropPilot/internal/config"
	"github.com/dharanishvijayakumar7-lgtm/cropPilot/internal/models"
)

type IGeocodingService interface {
	ReverseGeocode(lat, lon float64) models.LocationDetails
}

// GeocodingService resolves coordinates to village/district/state via the
// OpenStreetMap Nominatim API. Failures degrade to an "unavailable"
// placeholder instead of an error: location detail is cosmetic for the
// risk response.
type GeocodingService struct {
	cfg    config.WeatherConfig
	client *http.Client
}

func NewGeocodingService(cfg config.WeatherConfig) IGeocodingService {
	return &GeocodingService{
		cfg: cfg,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (g *GeocodingService) ReverseGeocode(lat, lon float64) models.LocationDetails {
	params := url.Values{}
	params.Set("lat", fmt.Sprintf("%f", lat))
	params.Set("lon", fmt.Sprintf("%f", lon))
	params.Set("format", "json")
	params.Set("addressdetails", "1")
	// Zoom 14 gives village-level detail.
	params.Set("zoom", "14")

	req, err := http.NewRequest(http.MethodGet, g.cfg.NominatimURL+"?"+params.Encode(), nil)
	if err != nil {
		log.Printf("Reverse geocoding request build error: %v", err)
		return unavailableLocation()
	}
	// Nominatim's usage policy requires an identifying User-Agent.
	req.Header.Set("User-Agent", "CropPilot/1.0 (Farmer Decision Support System)")

	resp, err := g.client.Do(req)
	if err != nil {
		log.Printf("Reverse geocoding error: %v", err)
		return unavailableLocation()
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Printf("Nominatim returned non-200 status: %d", resp.StatusCode)
		return unavailableLocation()
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Printf("Error reading geocoding response: %v", err)
		return unavailableLocation()
	}

	var nominatim models.NominatimResponse
	if err := json.Unmarshal(body, &nominatim); err != nil {
		log.Printf("Error parsing geocoding JSON: %v", err)
		return unavailableLocation()
	}

	return buildLocationDetails(nominatim)
}

func buildLocationDetails(nominatim models.NominatimResponse) models.LocationDetails {
	addr := nominatim.Address

	village := firstNonEmpty(addr.Village, addr.Hamlet, addr.Town, addr.City, addr.Suburb)
	district := firstNonEmpty(addr.County, addr.StateDistrict, addr.District)

	displayParts := make([]string, 0, 3)
	for _, part := range []string{village, district, addr.State} {
		if part != "" {
			displayParts = append(displayParts, part)
		}
	}
	displayName := "Unknown Location"
	if len(displayParts) > 0 {
		displayName = strings.Join(displayParts, ", ")
	}

	return models.LocationDetails{
		Village:     village,
		District:    district,
		State:       addr.State,
		Country:     addr.Country,
		DisplayName: displayName,
		FullAddress: nominatim.DisplayName,
	}
}

func unavailableLocation() models.LocationDetails {
	return models.LocationDetails{
		DisplayName: "Location details unavailable",
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
