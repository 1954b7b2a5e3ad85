package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/Zeeshan2106/zeeshan-mean-stack-backend/internal/config"
	"github.com/Zeeshan2106/zeeshan-mean-stack-backend/internal/domain"
)

var (
	// ErrWeatherAPIKeyMissing means the proxy cannot run at all.
	ErrWeatherAPIKeyMissing = errors.New("weather API key not configured")

	// ErrWeatherUpstream wraps an error payload returned by the remote API.
	ErrWeatherUpstream = errors.New("weather API error")

	// ErrWeatherUnavailable wraps a transport-level failure reaching the
	// remote API.
	ErrWeatherUnavailable = errors.New("failed to fetch weather data")
)

// WeatherService defines the interface for the weather pass-through
type WeatherService interface {
	Get(ctx context.Context, city string) (*domain.WeatherReport, error)
}

type weatherService struct {
	cfg    config.WeatherConfig
	client *http.Client
}

// NewWeatherService creates a new instance of WeatherService
func NewWeatherService(cfg config.WeatherConfig) WeatherService {
	return &weatherService{
		cfg:    cfg,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

// openWeatherPayload mirrors the subset of the upstream response we reshape.
type openWeatherPayload struct {
	Name string `json:"name"`
	Sys  struct {
		Country string `json:"country"`
	} `json:"sys"`
	Main struct {
		Temp      float64 `json:"temp"`
		FeelsLike float64 `json:"feels_like"`
		Humidity  int     `json:"humidity"`
	} `json:"main"`
	Weather []struct {
		Description string `json:"description"`
	} `json:"weather"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
}

// Get calls the upstream weather API and reshapes its payload. An error
// payload from the remote and a transport failure produce distinct messages,
// though both surface to the caller as a generic failure.
func (s *weatherService) Get(ctx context.Context, city string) (*domain.WeatherReport, error) {
	if s.cfg.APIKey == "" {
		return nil, ErrWeatherAPIKeyMissing
	}

	if city == "" {
		city = s.cfg.DefaultCity
	}

	params := url.Values{}
	params.Set("q", city)
	params.Set("appid", s.cfg.APIKey)
	params.Set("units", "metric")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.cfg.BaseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build weather request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrWeatherUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var apiErr struct {
			Message string `json:"message"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&apiErr); err != nil || apiErr.Message == "" {
			apiErr.Message = resp.Status
		}
		return nil, fmt.Errorf("%w: %s", ErrWeatherUpstream, apiErr.Message)
	}

	var payload openWeatherPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrWeatherUnavailable, err)
	}

	report := &domain.WeatherReport{
		City:        payload.Name,
		Country:     payload.Sys.Country,
		Temperature: payload.Main.Temp,
		FeelsLike:   payload.Main.FeelsLike,
		Humidity:    payload.Main.Humidity,
		WindSpeed:   payload.Wind.Speed,
	}
	if len(payload.Weather) > 0 {
		report.Description = payload.Weather[0].Description
	}

	return report, nil
}
