package kakao

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/daehyun-cho/matchup/internal/platform/logging"
	"github.com/daehyun-cho/matchup/internal/platform/resilience"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewClient(ClientConfig{
		BaseURL:    server.URL,
		RESTAPIKey: "test-key",
		Logger:     logging.NewNop(),
	})
}

func TestGeocode_ParsesFirstDocument(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v2/local/search/address.json", r.URL.Path)
		require.Equal(t, "KakaoAK test-key", r.Header.Get("Authorization"))
		require.Equal(t, "서울 마포구 양화로 45", r.URL.Query().Get("query"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"documents":[{"x":"126.9236","y":"37.5563"},{"x":"1","y":"2"}]}`))
	})

	loc, err := client.Geocode(context.Background(), "서울 마포구 양화로 45")
	require.NoError(t, err)
	require.NotNil(t, loc)
	require.InDelta(t, 37.5563, loc.Lat, 1e-9)
	require.InDelta(t, 126.9236, loc.Lng, 1e-9)
}

func TestGeocode_NoResultReturnsNil(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"documents":[]}`))
	})

	loc, err := client.Geocode(context.Background(), "없는 주소")
	require.NoError(t, err)
	require.Nil(t, loc)
}

func TestGeocode_EmptyAddressSkipsRequest(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("unexpected request")
	})

	loc, err := client.Geocode(context.Background(), "   ")
	require.NoError(t, err)
	require.Nil(t, loc)
}

func TestGeocode_NonRetryableStatusFails(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	loc, err := client.Geocode(context.Background(), "서울 어딘가")
	require.Error(t, err)
	require.Nil(t, loc)
	require.False(t, isKakaoCircuitFailure(err))
}

func TestGeocode_OpenCircuitRejectsWithoutRequest(t *testing.T) {
	t.Parallel()

	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(server.Close)

	client := NewClient(ClientConfig{
		BaseURL:    server.URL,
		RESTAPIKey: "test-key",
		Logger:     logging.NewNop(),
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          true,
			FailureThreshold: 1,
			OpenTimeout:      time.Minute,
			HalfOpenMaxReq:   1,
		},
	})

	_, err := client.Geocode(context.Background(), "서울 강남대로 1")
	require.Error(t, err)

	_, err = client.Geocode(context.Background(), "서울 강남대로 2")
	require.Error(t, err)
	require.Equal(t, 1, calls)
}
