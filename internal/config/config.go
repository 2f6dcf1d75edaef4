package config

import "os"

type CropPilotConfig struct {
	Port        string
	PostgresCfg PostgresConfig
	RedisCfg    RedisConfig
	AuthCfg     AuthConfig
	WeatherCfg  WeatherConfig
	SchemesCfg  SchemesConfig
}

type PostgresConfig struct {
	DBname   string
	Username string
	Password string
	Host     string
	Port     string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type AuthConfig struct {
	JWTSecret string
}

type WeatherConfig struct {
	APIKey       string
	ForecastURL  string
	NominatimURL string
}

type SchemesConfig struct {
	CatalogPath string
}

func New() *CropPilotConfig {
	return &CropPilotConfig{
		Port: getEnvOrDefault("PORT", "8090"),
		PostgresCfg: PostgresConfig{
			DBname:   getEnvOrDefault("POSTGRES_DB", "croppilot"),
			Username: getEnvOrDefault("POSTGRES_USER", "postgres"),
			Password: getEnvOrDefault("POSTGRES_PWD", "postgres"),
			Host:     getEnvOrDefault("POSTGRES_HOST", "localhost"),
			Port:     getEnvOrDefault("POSTGRES_PORT", "5432"),
		},
		RedisCfg: RedisConfig{
			Host:     getEnvOrDefault("REDIS_HOST", "localhost"),
			Port:     getEnvOrDefault("REDIS_PORT", "6379"),
			Password: getEnvOrDefault("REDIS_PASSWORD", ""),
			DB:       0,
		},
		AuthCfg: AuthConfig{
			JWTSecret: getEnvOrDefault("JWT_SECRET", ""),
		},
		WeatherCfg: WeatherConfig{
			APIKey:       getEnvOrDefault("OPENWEATHER_API_KEY", ""),
			ForecastURL:  getEnvOrDefault("OPENWEATHER_FORECAST_URL", "https://api.openweathermap.org/data/2.5/forecast"),
			NominatimURL: getEnvOrDefault("NOMINATIM_URL", "https://nominatim.openstreetmap.org/reverse"),
		},
		SchemesCfg: SchemesConfig{
			CatalogPath: getEnvOrDefault("SCHEMES_CATALOG_PATH", "data/schemes.json"),
		},
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
