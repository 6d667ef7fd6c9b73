package resilience

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBreaker(threshold, halfOpenMax int, openTimeout time.Duration) (*CircuitBreaker, *time.Time) {
	b := NewCircuitBreaker(CircuitBreakerConfig{
		FailureThreshold: threshold,
		OpenTimeout:      openTimeout,
		HalfOpenMaxReq:   halfOpenMax,
	})
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	b.now = func() time.Time { return now }
	return b, &now
}

func TestCircuitBreakerOpensAfterThreshold(t *testing.T) {
	b, _ := newTestBreaker(3, 1, time.Minute)

	for i := 0; i < 2; i++ {
		require.NoError(t, b.Allow())
		b.RecordFailure()
	}
	assert.Equal(t, CircuitStateClosed, b.State())

	require.NoError(t, b.Allow())
	b.RecordFailure()
	assert.Equal(t, CircuitStateOpen, b.State())
	assert.True(t, errors.Is(b.Allow(), ErrCircuitOpen))
}

func TestCircuitBreakerHalfOpenRecovery(t *testing.T) {
	b, now := newTestBreaker(1, 2, time.Minute)

	require.NoError(t, b.Allow())
	b.RecordFailure()
	require.Error(t, b.Allow())

	*now = now.Add(2 * time.Minute)
	assert.Equal(t, CircuitStateHalfOpen, b.State())

	require.NoError(t, b.Allow())
	b.RecordSuccess()
	require.NoError(t, b.Allow())
	b.RecordSuccess()

	assert.Equal(t, CircuitStateClosed, b.State())
	assert.NoError(t, b.Allow())
}

func TestCircuitBreakerHalfOpenFailureReopens(t *testing.T) {
	b, now := newTestBreaker(1, 1, time.Minute)

	require.NoError(t, b.Allow())
	b.RecordFailure()

	*now = now.Add(time.Minute)
	require.NoError(t, b.Allow())
	b.RecordFailure()

	assert.Equal(t, CircuitStateOpen, b.State())
	assert.Error(t, b.Allow())
}

func TestCircuitBreakerHalfOpenLimitsProbes(t *testing.T) {
	b, now := newTestBreaker(1, 1, time.Minute)

	require.NoError(t, b.Allow())
	b.RecordFailure()
	*now = now.Add(time.Minute)

	require.NoError(t, b.Allow())
	assert.True(t, errors.Is(b.Allow(), ErrCircuitOpen))
}
