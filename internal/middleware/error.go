package middleware

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

// Envelope is the uniform response wrapper every endpoint uses.
type Envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
	Count   *int        `json:"count,omitempty"`
}

func writeEnvelope(w http.ResponseWriter, statusCode int, env Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(env)
}

// RespondWithError sends a failure envelope
func RespondWithError(w http.ResponseWriter, statusCode int, message string) {
	writeEnvelope(w, statusCode, Envelope{Success: false, Message: message})
}

// RespondWithData sends a success envelope carrying data and an optional message
func RespondWithData(w http.ResponseWriter, statusCode int, data interface{}, message string) {
	writeEnvelope(w, statusCode, Envelope{Success: true, Data: data, Message: message})
}

// RespondWithCount sends a success envelope for list responses
func RespondWithCount(w http.ResponseWriter, statusCode int, data interface{}, count int) {
	writeEnvelope(w, statusCode, Envelope{Success: true, Data: data, Count: &count})
}

// RespondWithMessage sends a success envelope with only a message
func RespondWithMessage(w http.ResponseWriter, statusCode int, message string) {
	writeEnvelope(w, statusCode, Envelope{Success: true, Message: message})
}

// ErrorHandlingMiddleware catches panics and converts them to 500 envelopes.
// Handlers translate their known failure conditions themselves; anything that
// escapes ends up here.
func ErrorHandlingMiddleware(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					logger.Error("Panic recovered",
						zap.Any("error", err),
						zap.String("path", r.URL.Path),
						zap.String("method", r.Method),
					)

					RespondWithError(w, http.StatusInternalServerError, "internal server error")
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
