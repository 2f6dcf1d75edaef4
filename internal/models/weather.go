package models

// ForecastResponse mirrors the OpenWeather 5-day/3-hour forecast payload,
// trimmed to the fields the risk analysis reads.
type ForecastResponse struct {
	List []ForecastEntry `json:"list"`
	City ForecastCity    `json:"city"`
}

type ForecastEntry struct {
	Main ForecastMain  `json:"main"`
	Rain *ForecastRain `json:"rain,omitempty"`
}

type ForecastMain struct {
	Temp     float64 `json:"temp"`
	Humidity float64 `json:"humidity"`
}

type ForecastRain struct {
	ThreeHour float64 `json:"3h"`
}

type ForecastCity struct {
	Name string `json:"name"`
}

// ForecastSummary is the aggregated 5-day outlook for one location.
type ForecastSummary struct {
	TotalRainfall float64 `json:"total_rainfall"`
	AvgHumidity   float64 `json:"avg_humidity"`
	AvgTemp       float64 `json:"avg_temp"`
	City          string  `json:"city"`
	ForecastDays  int     `json:"forecast_days"`
}

// RiskLevel classifies a village's near-term agricultural weather risk.
type RiskLevel string

const (
	RiskLevelDrought        RiskLevel = "drought"
	RiskLevelModerate       RiskLevel = "moderate"
	RiskLevelExcessMoisture RiskLevel = "excess_moisture"
)

type RiskAssessment struct {
	Lat       float64         `json:"lat"`
	Lon       float64         `json:"lon"`
	City      string          `json:"city"`
	Location  LocationDetails `json:"location"`
	RiskLevel RiskLevel       `json:"risk_level"`
	RiskColor string          `json:"risk_color"`
	RiskTitle string          `json:"risk_title"`
	Message   string          `json:"risk_message"`
	Weather   RiskWeather     `json:"weather"`
}

type RiskWeather struct {
	TotalRainfall5Day      float64 `json:"total_rainfall_5day"`
	EstimatedRainfall10Day float64 `json:"estimated_rainfall_10day"`
	AvgHumidity            float64 `json:"avg_humidity"`
	AvgTemp                float64 `json:"avg_temp"`
}

// LocationDetails is the reverse-geocoded address for a coordinate pair.
type LocationDetails struct {
	Village     string `json:"village"`
	District    string `json:"district"`
	State       string `json:"state"`
	Country     string `json:"country"`
	DisplayName string `json:"display_name"`
	FullAddress string `json:"full_address"`
}

// NominatimResponse mirrors the OpenStreetMap reverse-geocoding payload.
type NominatimResponse struct {
	DisplayName string           `json:"display_name"`
	Address     NominatimAddress `json:"address"`
}

type NominatimAddress struct {
	Village       string `json:"village"`
	Hamlet        string `json:"hamlet"`
	Town          string `json:"town"`
	City          string `json:"city"`
	Suburb        string `json:"suburb"`
	County        string `json:"county"`
	StateDistrict string `json:"state_district"`
	District      string `json:"district"`
	State         string `json:"state"`
	Country       string `json:"country"`
}
