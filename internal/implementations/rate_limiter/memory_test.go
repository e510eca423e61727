package ratelimiter

import (
	"context"
	"fmt"
	"testing"
	"time"

	ratelimiter "cvmatch/internal/core/domain/rate_limiter"

	"github.com/stretchr/testify/require"
)

const KEY = "test-key"

func TestMemoryAllowsUpToLimitWithinWindow(t *testing.T) {
	now := time.Now().UTC()
	limiter := NewMemory(func() time.Time { return now })
	limit := ratelimiter.Limit{Value: 3, Interval: ratelimiter.Minute}

	for i := 0; i < 3; i++ {
		result := limiter.CheckLimit(context.Background(), KEY, limit)
		require.True(t, result.IsAllowed, fmt.Sprintf("request %d must be allowed", i+1))
	}

	result := limiter.CheckLimit(context.Background(), KEY, limit)
	require.False(t, result.IsAllowed)
}

func TestMemoryResetsAfterWindowElapses(t *testing.T) {
	now := time.Now().UTC()
	limiter := NewMemory(func() time.Time { return now })
	limit := ratelimiter.Limit{Value: 3, Interval: ratelimiter.Minute}

	for i := 0; i < 4; i++ {
		limiter.CheckLimit(context.Background(), KEY, limit)
	}
	require.False(t, limiter.CheckLimit(context.Background(), KEY, limit).IsAllowed)

	now = now.Add(time.Minute)
	require.True(t, limiter.CheckLimit(context.Background(), KEY, limit).IsAllowed)
}

func TestMemoryStaysClosedUnderCounterOverflowPressure(t *testing.T) {
	now := time.Now().UTC()
	limiter := NewMemory(func() time.Time { return now })
	limit := ratelimiter.Limit{Value: 3, Interval: ratelimiter.Minute}

	// More hits than a uint16 can count; the window must stay closed anyway.
	for i := 0; i < 70000; i++ {
		limiter.CheckLimit(context.Background(), KEY, limit)
	}

	require.False(t, limiter.CheckLimit(context.Background(), KEY, limit).IsAllowed)

	now = now.Add(time.Minute)
	require.True(t, limiter.CheckLimit(context.Background(), KEY, limit).IsAllowed)
}

func TestMemoryKeysAreIndependent(t *testing.T) {
	now := time.Now().UTC()
	limiter := NewMemory(func() time.Time { return now })
	limit := ratelimiter.Limit{Value: 1, Interval: ratelimiter.Hour}

	require.True(t, limiter.CheckLimit(context.Background(), "key-a", limit).IsAllowed)
	require.False(t, limiter.CheckLimit(context.Background(), "key-a", limit).IsAllowed)
	require.True(t, limiter.CheckLimit(context.Background(), "key-b", limit).IsAllowed)
}
