package ratelimiter

import (
	"context"
	"sync"
	"time"

	e "cvmatch/internal/core/domain/errors"
	ratelimiter "cvmatch/internal/core/domain/rate_limiter"
)

type window struct {
	count     uint16
	startedAt time.Time
}

// Memory is a process-local rate limiter for single-instance deployments.
// Each key gets a window that starts at its first request and is reset
// lazily once the interval elapses; stale windows are never touched again,
// so a key's memory cost is one small struct.
type Memory struct {
	mu      sync.Mutex
	windows map[string]window
	now     func() time.Time
}

func NewMemory(now func() time.Time) *Memory {
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &Memory{windows: make(map[string]window), now: now}
}

func (m *Memory) CheckLimit(ctx context.Context, key string, limit ratelimiter.Limit) ratelimiter.Result {
	var d time.Duration
	switch limit.Interval {
	case ratelimiter.Hour:
		d = time.Hour
	case ratelimiter.Minute:
		d = time.Minute
	default:
		panic("invalid rate limiting interval")
	}

	now := m.now()
	m.mu.Lock()
	defer m.mu.Unlock()

	w, ok := m.windows[key]
	if !ok || now.Sub(w.startedAt) >= d {
		w = window{count: 0, startedAt: now}
	}
	// Saturate at limit+1 so the counter cannot wrap and re-open the window.
	if w.count <= limit.Value {
		w.count++
	}
	m.windows[key] = w

	if w.count > limit.Value {
		return ratelimiter.NotAllowed()
	}
	return ratelimiter.Allowed()
}
