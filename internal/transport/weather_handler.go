package transport

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/Zeeshan2106/zeeshan-mean-stack-backend/internal/middleware"
	"github.com/Zeeshan2106/zeeshan-mean-stack-backend/internal/service"
)

// WeatherHandler proxies the third-party weather API
type WeatherHandler struct {
	weatherService service.WeatherService
	logger         *zap.Logger
}

// NewWeatherHandler creates a new WeatherHandler
func NewWeatherHandler(weatherService service.WeatherService, logger *zap.Logger) *WeatherHandler {
	return &WeatherHandler{
		weatherService: weatherService,
		logger:         logger,
	}
}

// RegisterRoutes registers the weather route
func (h *WeatherHandler) RegisterRoutes(r chi.Router) {
	r.Get("/weather", h.Get)
}

// Get handles the weather pass-through. Configuration problems, upstream
// error payloads, and transport failures all surface as 500, with distinct
// messages.
func (h *WeatherHandler) Get(w http.ResponseWriter, r *http.Request) {
	report, err := h.weatherService.Get(r.Context(), r.URL.Query().Get("city"))
	if err != nil {
		h.logger.Error("Weather fetch failed", zap.Error(err))

		switch {
		case errors.Is(err, service.ErrWeatherAPIKeyMissing):
			middleware.RespondWithError(w, http.StatusInternalServerError, "Weather API key not configured")
		case errors.Is(err, service.ErrWeatherUpstream):
			middleware.RespondWithError(w, http.StatusInternalServerError, err.Error())
		default:
			middleware.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch weather data")
		}
		return
	}

	middleware.RespondWithData(w, http.StatusOK, report, "")
}
