package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/stylematch/waitlist/internal/core/ports"
)

// fixedWindowScript increments the counter for one key and starts the window
// on the first hit. Returns {count, pttl}.
const fixedWindowScript = `
local count = redis.call("INCR", KEYS[1])
if count == 1 then
    redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
local ttl = redis.call("PTTL", KEYS[1])
if ttl < 0 then
    redis.call("PEXPIRE", KEYS[1], ARGV[1])
    ttl = tonumber(ARGV[1])
end
return {count, ttl}
`

// RateLimiter is a fixed-window counter shared by every process using the
// same Redis. Key format: ratelimit:<policy>:<client>
type RateLimiter struct {
	client *redis.Client
	script *redis.Script
	policy string
	limit  int
	window time.Duration
}

func NewRateLimiter(client *redis.Client, policy string, limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		client: client,
		script: redis.NewScript(fixedWindowScript),
		policy: policy,
		limit:  limit,
		window: window,
	}
}

// Allow counts one request for key and reports whether it fits the window.
func (l *RateLimiter) Allow(ctx context.Context, key string) (ports.RateDecision, error) {
	res, err := l.script.Run(ctx, l.client, []string{l.key(key)}, l.window.Milliseconds()).Int64Slice()
	if err != nil {
		return ports.RateDecision{}, fmt.Errorf("rate limit %s: %w", l.policy, err)
	}
	if len(res) != 2 {
		return ports.RateDecision{}, fmt.Errorf("rate limit %s: unexpected script reply %v", l.policy, res)
	}

	count, ttl := int(res[0]), time.Duration(res[1])*time.Millisecond
	d := ports.RateDecision{
		Allowed:   count <= l.limit,
		Limit:     l.limit,
		Remaining: max(l.limit-count, 0),
	}
	if !d.Allowed {
		d.RetryAfter = ttl
	}
	return d, nil
}

func (l *RateLimiter) key(client string) string {
	return "ratelimit:" + l.policy + ":" + client
}
