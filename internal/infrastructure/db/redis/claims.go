package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/stylematch/waitlist/internal/core/domain"
)

const claimTTL = 30 * time.Second

// releaseScript deletes the claim only while it still carries the caller's
// token, so an expired claim retaken by another request survives.
const releaseScript = `
if redis.call("GET", KEYS[1]) == ARGV[1] then
    return redis.call("DEL", KEYS[1])
end
return 0
`

// EmailClaims holds a short-lived reservation on an email while its
// submission is being checked and written, so two processes cannot both
// pass the duplicate check for the same address.
// Key format: claim:<kind>:<email>
type EmailClaims struct {
	client  *redis.Client
	release *redis.Script
	ttl     time.Duration
}

func NewEmailClaims(client *redis.Client) *EmailClaims {
	return &EmailClaims{
		client:  client,
		release: redis.NewScript(releaseScript),
		ttl:     claimTTL,
	}
}

// Claim reports whether the caller now holds the reservation, and the token
// to release it with.
func (e *EmailClaims) Claim(ctx context.Context, kind domain.Kind, email string) (string, bool, error) {
	token := uuid.NewString()
	ok, err := e.client.SetNX(ctx, e.key(kind, email), token, e.ttl).Result()
	if err != nil {
		return "", false, fmt.Errorf("claim email: %w", err)
	}
	if !ok {
		return "", false, nil
	}
	return token, true, nil
}

// Release drops the reservation if token still holds it. Expiry covers
// callers that never release.
func (e *EmailClaims) Release(ctx context.Context, kind domain.Kind, email, token string) error {
	if err := e.release.Run(ctx, e.client, []string{e.key(kind, email)}, token).Err(); err != nil {
		return fmt.Errorf("release email: %w", err)
	}
	return nil
}

func (e *EmailClaims) key(kind domain.Kind, email string) string {
	return fmt.Sprintf("claim:%s:%s", kind, email)
}
