package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// OpenWeatherProvider fetches current conditions from the OpenWeatherMap
// current-weather endpoint.
type OpenWeatherProvider struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

type openWeatherResponse struct {
	Weather []struct {
		Main        string `json:"main"`
		Description string `json:"description"`
	} `json:"weather"`
}

func NewOpenWeatherProvider(apiKey, baseURL string, timeout time.Duration) *OpenWeatherProvider {
	if baseURL == "" {
		baseURL = "https://api.openweathermap.org/data/2.5"
	}
	if timeout <= 0 {
		timeout = 3 * time.Second
	}

	return &OpenWeatherProvider{
		apiKey:  apiKey,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

func (p *OpenWeatherProvider) GetCondition(ctx context.Context, latitude, longitude float64) (Condition, error) {
	if p.apiKey == "" {
		return "", fmt.Errorf("weather api key not configured")
	}

	query := url.Values{}
	query.Set("lat", fmt.Sprintf("%f", latitude))
	query.Set("lon", fmt.Sprintf("%f", longitude))
	query.Set("appid", p.apiKey)

	endpoint := fmt.Sprintf("%s/weather?%s", p.baseURL, query.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build weather request: %w", err)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("weather request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("weather provider returned status %d", resp.StatusCode)
	}

	var payload openWeatherResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("failed to decode weather response: %w", err)
	}

	if len(payload.Weather) == 0 {
		return "", fmt.Errorf("weather response missing conditions")
	}

	return strings.ToLower(payload.Weather[0].Main), nil
}
