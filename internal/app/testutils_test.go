package app

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/cinetick/cinetick/api"
	"github.com/cinetick/cinetick/internal/mailer"
	"github.com/cinetick/cinetick/internal/validator"
	"github.com/go-chi/chi/v5"
)

func newTestApplication(opts ...func(*Application)) *Application {
	app := &Application{
		validator:      validator.NewValidator(),
		logger:         slog.New(slog.NewTextHandler(io.Discard, nil)),
		sessionManager: scs.New(),
		mailer:         mailer.NewMockMailer(),
		metrics:        newBookingMetrics(),
	}

	app.config.Env = "test"
	app.config.Booking = BookingConfig{
		HoldTTL:            10 * time.Minute,
		MaxSeatsPerBooking: 8,
		CancellationCutoff: 2 * time.Hour,
		PaymentTimeout:     15 * time.Second,
		SweepInterval:      time.Minute,
		Currency:           "usd",
	}

	for _, opt := range opts {
		opt(app)
	}

	return app
}

func executeRequest(t *testing.T, method, url string, body any) (*httptest.ResponseRecorder, *http.Request) {
	jsonData, err := json.Marshal(body)
	if err != nil {
		t.Fatal(err)
	}

	r := httptest.NewRequest(method, url, bytes.NewReader(jsonData))
	r.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	return w, r
}

// withUrlParams injects chi route parameters for handlers invoked outside
// a router.
func withUrlParams(r *http.Request, params map[string]string) *http.Request {
	rctx := chi.NewRouteContext()
	for key, value := range params {
		rctx.URLParams.Add(key, value)
	}

	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// serveWithSession runs the handler inside the session middleware, matching
// how it executes behind the real router.
func serveWithSession(app *Application, handler http.HandlerFunc, w http.ResponseWriter, r *http.Request) {
	app.sessionManager.LoadAndSave(handler).ServeHTTP(w, r)
}

func checkErrorResponse(t *testing.T, w *httptest.ResponseRecorder, wantStatus int, wantErrMessage string) {
	if wantStatus >= 200 && wantStatus < 300 {
		return
	}

	switch wantStatus {
	case http.StatusUnprocessableEntity:
		var validationResp api.ValidationErrorResponse
		if err := json.NewDecoder(w.Body).Decode(&validationResp); err != nil {
			t.Fatalf("Failed to decode validation error response: %v", err)
		}

		if len(validationResp.ValidationErrors) > 0 {
			errorSet := make(map[string]bool)
			for _, vErr := range validationResp.ValidationErrors {
				errorSet[vErr.Issue] = true
			}

			if !errorSet[wantErrMessage] {
				t.Errorf("Expected validation error message '%s' not found in response", wantErrMessage)
			}
			return
		}

		if wantErrMessage != "" && validationResp.Message != wantErrMessage {
			t.Errorf("Error message = %v, want %v", validationResp.Message, wantErrMessage)
		}

	default:
		var errorResp api.ErrorResponse
		if err := json.NewDecoder(w.Body).Decode(&errorResp); err != nil {
			t.Fatalf("Failed to decode error response: %v", err)
		}

		if wantErrMessage != "" && errorResp.Message != wantErrMessage {
			t.Errorf("Error message = %v, want %v", errorResp.Message, wantErrMessage)
		}
	}
}
