package resilience

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSingleFlightSharesResult(t *testing.T) {
	var flight SingleFlight
	var calls atomic.Int32

	const workers = 20
	start := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(workers)

	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			<-start
			val, err, _ := flight.Do("addr", func() (any, error) {
				calls.Add(1)
				time.Sleep(20 * time.Millisecond)
				return "37.5,127.0", nil
			})
			assert.NoError(t, err)
			assert.Equal(t, "37.5,127.0", val)
		}()
	}

	close(start)
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
}

func TestSingleFlightDistinctKeysRunIndependently(t *testing.T) {
	var flight SingleFlight
	var calls atomic.Int32

	for _, key := range []string{"a", "b"} {
		_, _, shared := flight.Do(key, func() (any, error) {
			calls.Add(1)
			return key, nil
		})
		assert.False(t, shared)
	}

	assert.Equal(t, int32(2), calls.Load())
}
