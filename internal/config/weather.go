package config

import (
	"time"
)

type WeatherConfig struct {
	Provider    string             `yaml:"provider"`
	Timeout     time.Duration      `yaml:"timeout"`
	CacheTTL    time.Duration      `yaml:"cache_ttl"`
	OpenWeather *OpenWeatherConfig `yaml:"open_weather"`
}

type OpenWeatherConfig struct {
	APIKey  string `yaml:"api_key"`
	BaseURL string `yaml:"base_url"`
}

func loadWeatherConfig() *WeatherConfig {
	return &WeatherConfig{
		Provider: getEnv("WEATHER_PROVIDER", "openweather"),
		Timeout:  getEnvAsDuration("WEATHER_TIMEOUT", 3*time.Second),
		CacheTTL: getEnvAsDuration("WEATHER_CACHE_TTL", 5*time.Minute),
		OpenWeather: &OpenWeatherConfig{
			APIKey:  getEnv("WEATHER_API_KEY", ""),
			BaseURL: getEnv("WEATHER_API_BASE_URL", "https://api.openweathermap.org/data/2.5"),
		},
	}
}
