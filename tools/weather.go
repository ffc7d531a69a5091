package tools

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// weatherUnavailable is the fixed sentinel for any lookup failure.
const weatherUnavailable = "Weather service unavailable"

// weatherTimeout bounds the weather HTTP request.
const weatherTimeout = 10 * time.Second

// WeatherTool fetches current conditions for a city from a templated URL.
type WeatherTool struct {
	urlTemplate string
	client      *http.Client
}

// NewWeatherTool creates a WeatherTool. urlTemplate must contain one %s verb
// for the city.
func NewWeatherTool(urlTemplate string) *WeatherTool {
	return &WeatherTool{
		urlTemplate: urlTemplate,
		client:      &http.Client{Timeout: weatherTimeout},
	}
}

func (t *WeatherTool) Name() string { return "get_weather" }

func (t *WeatherTool) Description() string {
	return "Fetches current weather for a city. Args: city (string)."
}

func (t *WeatherTool) Parameters() []string { return []string{"city"} }

// Execute looks up the weather. Every network or HTTP failure collapses to
// the fixed unavailable sentinel; a successful body is trimmed and prefixed
// with the city.
func (t *WeatherTool) Execute(ctx context.Context, args map[string]string) (string, error) {
	city := args["city"]

	endpoint := fmt.Sprintf(t.urlTemplate, url.PathEscape(city))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return weatherUnavailable, nil
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return weatherUnavailable, nil
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return weatherUnavailable, nil
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return weatherUnavailable, nil
	}
	return fmt.Sprintf("Weather in %s: %s", city, strings.TrimSpace(string(body))), nil
}
