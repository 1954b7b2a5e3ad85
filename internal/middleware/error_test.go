package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"go.uber.org/zap"
)

func TestProperty_ErrorEnvelopesHaveConsistentStructure(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("all error responses carry a failure envelope", prop.ForAll(
		func(message string) bool {
			standardCodes := []int{
				http.StatusBadRequest,
				http.StatusUnauthorized,
				http.StatusNotFound,
				http.StatusConflict,
				http.StatusTooManyRequests,
				http.StatusInternalServerError,
			}
			statusCode := standardCodes[len(message)%len(standardCodes)]

			if len(message) == 0 {
				message = "test error"
			}

			w := httptest.NewRecorder()
			RespondWithError(w, statusCode, message)

			if w.Code != statusCode {
				return false
			}
			if w.Header().Get("Content-Type") != "application/json" {
				return false
			}

			var env Envelope
			if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
				return false
			}

			return !env.Success && env.Message == message && env.Data == nil && env.Count == nil
		},
		gen.AlphaString().SuchThat(func(s string) bool { return len(s) > 0 }),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestRespondWithCount(t *testing.T) {
	w := httptest.NewRecorder()
	RespondWithCount(w, http.StatusOK, []string{"a", "b"}, 2)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var env struct {
		Success bool     `json:"success"`
		Data    []string `json:"data"`
		Count   *int     `json:"count"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("failed to parse envelope: %v", err)
	}
	if !env.Success {
		t.Error("expected success envelope")
	}
	if env.Count == nil || *env.Count != 2 {
		t.Errorf("expected count 2, got %v", env.Count)
	}
	if len(env.Data) != 2 {
		t.Errorf("expected 2 items, got %d", len(env.Data))
	}
}

// A zero count must still serialize; only a nil pointer is omitted.
func TestRespondWithCount_ZeroIsNotOmitted(t *testing.T) {
	w := httptest.NewRecorder()
	RespondWithCount(w, http.StatusOK, []string{}, 0)

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(w.Body.Bytes(), &raw); err != nil {
		t.Fatalf("failed to parse envelope: %v", err)
	}
	if _, ok := raw["count"]; !ok {
		t.Error("count field missing for an empty listing")
	}
}

func TestRespondWithData_OmitsEmptyOptionalFields(t *testing.T) {
	w := httptest.NewRecorder()
	RespondWithData(w, http.StatusCreated, map[string]string{"id": "1"}, "")

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(w.Body.Bytes(), &raw); err != nil {
		t.Fatalf("failed to parse envelope: %v", err)
	}
	if _, ok := raw["message"]; ok {
		t.Error("empty message should be omitted")
	}
	if _, ok := raw["count"]; ok {
		t.Error("count should be omitted when not set")
	}
}

func TestErrorHandlingMiddleware_RecoversPanics(t *testing.T) {
	handler := ErrorHandlingMiddleware(zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}

	var env Envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("failed to parse envelope: %v", err)
	}
	if env.Success {
		t.Error("panic response must be a failure envelope")
	}
	if env.Message != "internal server error" {
		t.Errorf("unexpected message %q", env.Message)
	}
}

func TestErrorHandlingMiddleware_PassesThrough(t *testing.T) {
	handler := ErrorHandlingMiddleware(zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		RespondWithMessage(w, http.StatusOK, "ok")
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}
