package strategy

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-apikit/core"
)

// RateLimitStrategyName is the registry name for the sliding-window rate
// limit strategy.
const RateLimitStrategyName = "ratelimit"

// ThrottledError reports a request rejected by a rate limit strategy.
type ThrottledError struct {
	Strategy   string
	RetryAfter time.Duration
}

func (e *ThrottledError) Error() string {
	return fmt.Sprintf("strategy: rate limit exceeded, retry in %s", e.RetryAfter)
}

func (e *ThrottledError) ToKitError() *goerrors.Error {
	metadata := map[string]any{"strategy": e.Strategy}
	if e.RetryAfter > 0 {
		metadata["retry_after_ms"] = e.RetryAfter.Milliseconds()
	}
	return goerrors.New(e.Error(), goerrors.CategoryRateLimit).
		WithCode(http.StatusTooManyRequests).
		WithTextCode(core.KitErrorRateLimited).
		WithMetadata(metadata)
}

// RateLimitStrategy tracks request timestamps over a sliding window and
// rejects requests once the window holds the maximum.
type RateLimitStrategy struct {
	maxRequests int
	window      time.Duration
	now         func() time.Time

	mu       sync.Mutex
	requests []time.Time
}

type RateLimitOption func(*RateLimitStrategy)

// WithRateLimitClock overrides the strategy's clock.
func WithRateLimitClock(now func() time.Time) RateLimitOption {
	return func(s *RateLimitStrategy) {
		if now != nil {
			s.now = now
		}
	}
}

func NewRateLimitStrategy(maxRequests int, window time.Duration, options ...RateLimitOption) (*RateLimitStrategy, error) {
	if maxRequests <= 0 {
		return nil, fmt.Errorf("strategy: max requests must be greater than zero")
	}
	if window <= 0 {
		return nil, fmt.Errorf("strategy: time window must be greater than zero")
	}
	s := &RateLimitStrategy{
		maxRequests: maxRequests,
		window:      window,
		now:         func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}
	return s, nil
}

func (s *RateLimitStrategy) Name() string {
	return RateLimitStrategyName
}

func (s *RateLimitStrategy) MaxRequests() int {
	return s.maxRequests
}

func (s *RateLimitStrategy) Window() time.Duration {
	return s.window
}

// Limited reports whether the window is full. Expired timestamps are pruned
// first, so a full window drains as time passes.
func (s *RateLimitStrategy) Limited() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prune(s.now())
	return len(s.requests) >= s.maxRequests
}

// Record adds the current timestamp to the tracker. It never rejects; pair
// it with Limited, or use Allow for the combined check.
func (s *RateLimitStrategy) Record() {
	now := s.now()
	s.mu.Lock()
	s.prune(now)
	s.requests = append(s.requests, now)
	s.mu.Unlock()
}

// Allow checks and records in one critical section. When the window is full
// it returns a ThrottledError carrying the wait until the oldest tracked
// request leaves the window.
func (s *RateLimitStrategy) Allow() error {
	now := s.now()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prune(now)
	if len(s.requests) >= s.maxRequests {
		retryAfter := s.requests[0].Add(s.window).Sub(now)
		if retryAfter < 0 {
			retryAfter = 0
		}
		return &ThrottledError{Strategy: RateLimitStrategyName, RetryAfter: retryAfter}
	}
	s.requests = append(s.requests, now)
	return nil
}

// Reset clears the tracker before the window expires on its own.
func (s *RateLimitStrategy) Reset() {
	s.mu.Lock()
	s.requests = s.requests[:0]
	s.mu.Unlock()
}

// prune drops timestamps that left the window. Timestamps are appended in
// order, so the first survivor ends the scan. Callers hold the lock.
func (s *RateLimitStrategy) prune(now time.Time) {
	cutoff := now.Add(-s.window)
	kept := 0
	for kept < len(s.requests) && !s.requests[kept].After(cutoff) {
		kept++
	}
	if kept > 0 {
		s.requests = append(s.requests[:0], s.requests[kept:]...)
	}
}
