package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zeeshan2106/zeeshan-mean-stack-backend/internal/config"
)

func TestWeatherService_MissingAPIKey(t *testing.T) {
	svc := NewWeatherService(config.WeatherConfig{DefaultCity: "London"})

	_, err := svc.Get(context.Background(), "Paris")
	assert.ErrorIs(t, err, ErrWeatherAPIKeyMissing)
}

func TestWeatherService_ReshapesUpstreamPayload(t *testing.T) {
	var gotQuery map[string]string

	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = map[string]string{
			"q":     r.URL.Query().Get("q"),
			"appid": r.URL.Query().Get("appid"),
			"units": r.URL.Query().Get("units"),
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"name": "Paris",
			"sys": {"country": "FR"},
			"main": {"temp": 21.5, "feels_like": 20.1, "humidity": 60},
			"weather": [{"description": "clear sky"}],
			"wind": {"speed": 3.4}
		}`))
	}))
	defer upstream.Close()

	svc := NewWeatherService(config.WeatherConfig{
		APIKey:      "test-key",
		BaseURL:     upstream.URL,
		DefaultCity: "London",
	})

	report, err := svc.Get(context.Background(), "Paris")
	require.NoError(t, err)

	assert.Equal(t, "Paris", gotQuery["q"])
	assert.Equal(t, "test-key", gotQuery["appid"])
	assert.Equal(t, "metric", gotQuery["units"])

	assert.Equal(t, "Paris", report.City)
	assert.Equal(t, "FR", report.Country)
	assert.Equal(t, 21.5, report.Temperature)
	assert.Equal(t, 20.1, report.FeelsLike)
	assert.Equal(t, "clear sky", report.Description)
	assert.Equal(t, 60, report.Humidity)
	assert.Equal(t, 3.4, report.WindSpeed)
}

func TestWeatherService_DefaultsCity(t *testing.T) {
	var gotCity string

	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotCity = r.URL.Query().Get("q")
		w.Write([]byte(`{"name": "London", "sys": {}, "main": {}, "weather": [], "wind": {}}`))
	}))
	defer upstream.Close()

	svc := NewWeatherService(config.WeatherConfig{
		APIKey:      "test-key",
		BaseURL:     upstream.URL,
		DefaultCity: "London",
	})

	_, err := svc.Get(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, "London", gotCity)
}

func TestWeatherService_UpstreamErrorPayload(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"cod": "404", "message": "city not found"}`))
	}))
	defer upstream.Close()

	svc := NewWeatherService(config.WeatherConfig{
		APIKey:      "test-key",
		BaseURL:     upstream.URL,
		DefaultCity: "London",
	})

	_, err := svc.Get(context.Background(), "Nowhere")
	assert.ErrorIs(t, err, ErrWeatherUpstream)
	assert.Contains(t, err.Error(), "city not found")
}

func TestWeatherService_TransportFailure(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	upstream.Close() // connection refused from here on

	svc := NewWeatherService(config.WeatherConfig{
		APIKey:      "test-key",
		BaseURL:     upstream.URL,
		DefaultCity: "London",
	})

	_, err := svc.Get(context.Background(), "Paris")
	assert.ErrorIs(t, err, ErrWeatherUnavailable)
}
