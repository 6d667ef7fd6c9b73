package httpapi

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestRequireInternalJobToken(t *testing.T) {
	var called bool
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	})

	t.Run("unconfigured token refuses the job", func(t *testing.T) {
		called = false
		handler := RequireInternalJobToken("", next)

		req := httptest.NewRequest(http.MethodPost, "/v1/internal/jobs/backfill-venue-coordinates", nil)
		req.Header.Set("X-Internal-Job-Token", "anything")
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusServiceUnavailable {
			t.Fatalf("expected status 503, got %d", rec.Code)
		}
		if called {
			t.Fatalf("next handler must not run")
		}
	})

	t.Run("wrong token is unauthorized", func(t *testing.T) {
		called = false
		handler := RequireInternalJobToken("secret", next)

		req := httptest.NewRequest(http.MethodPost, "/v1/internal/jobs/backfill-venue-coordinates", nil)
		req.Header.Set("X-Internal-Job-Token", "not-secret")
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected status 401, got %d", rec.Code)
		}
		if called {
			t.Fatalf("next handler must not run")
		}
	})

	t.Run("missing token is unauthorized", func(t *testing.T) {
		called = false
		handler := RequireInternalJobToken("secret", next)

		req := httptest.NewRequest(http.MethodPost, "/v1/internal/jobs/backfill-venue-coordinates", nil)
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected status 401, got %d", rec.Code)
		}
		if called {
			t.Fatalf("next handler must not run")
		}
	})

	t.Run("matching token passes through", func(t *testing.T) {
		called = false
		handler := RequireInternalJobToken("secret", next)

		req := httptest.NewRequest(http.MethodPost, "/v1/internal/jobs/backfill-venue-coordinates", nil)
		req.Header.Set("X-Internal-Job-Token", "secret")
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d", rec.Code)
		}
		if !called {
			t.Fatalf("next handler must run")
		}
	})
}
