package telegram

import (
	"fmt"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/time/rate"
)

const (
	maxTrackedChats   = 1000
	limiterTTL        = 5 * time.Minute
	maxTrackedUpdates = 10000
	updateTTL         = time.Hour
)

// rateLimiter keeps one token bucket per chat and forgets idle chats.
type rateLimiter struct {
	limiters *expirable.LRU[int64, *rate.Limiter]
	rate     rate.Limit
	burst    int
	mu       sync.Mutex
}

// newRateLimiter returns nil when requestsPerMin is not positive.
func newRateLimiter(requestsPerMin int) *rateLimiter {
	if requestsPerMin <= 0 {
		return nil
	}
	burst := requestsPerMin / 10
	if burst < 1 {
		burst = 1
	}
	return &rateLimiter{
		limiters: expirable.NewLRU[int64, *rate.Limiter](maxTrackedChats, nil, limiterTTL),
		rate:     rate.Limit(float64(requestsPerMin) / 60.0),
		burst:    burst,
	}
}

func (rl *rateLimiter) Allow(chatID int64) error {
	if rl == nil {
		return nil
	}

	rl.mu.Lock()
	limiter, ok := rl.limiters.Get(chatID)
	if !ok {
		limiter = rate.NewLimiter(rl.rate, rl.burst)
		rl.limiters.Add(chatID, limiter)
	}
	rl.mu.Unlock()

	if !limiter.Allow() {
		return fmt.Errorf("rate limit exceeded for chat %d", chatID)
	}
	return nil
}

// updateFilter remembers recent update ids. Telegram redelivers an update
// until the webhook answers 2xx.
type updateFilter struct {
	ids *expirable.LRU[int64, struct{}]
	mu  sync.Mutex
}

func newUpdateFilter() *updateFilter {
	return &updateFilter{ids: expirable.NewLRU[int64, struct{}](maxTrackedUpdates, nil, updateTTL)}
}

func (f *updateFilter) contains(id int64) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.ids.Contains(id)
}

// firstSeen records id and reports whether it was new.
func (f *updateFilter) firstSeen(id int64) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.ids.Contains(id) {
		return false
	}
	f.ids.Add(id, struct{}{})
	return true
}
