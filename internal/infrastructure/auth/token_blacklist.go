package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// TokenBlacklist records revoked token IDs so logged-out tokens stop working
// before they expire.
type TokenBlacklist interface {
	Revoke(ctx context.Context, jti string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
	RevokeAllForUser(ctx context.Context, userID string, maxTokenLifetime time.Duration) error
	IsUserRevoked(ctx context.Context, userID string, tokenIssuedAt time.Time) (bool, error)
}

// RedisTokenBlacklist implements TokenBlacklist on redis. Keys carry a TTL
// matching the token expiry so the set cleans itself up.
type RedisTokenBlacklist struct {
	client *redis.Client
}

// NewRedisTokenBlacklist creates a new redis-backed blacklist
func NewRedisTokenBlacklist(client *redis.Client) *RedisTokenBlacklist {
	return &RedisTokenBlacklist{client: client}
}

func tokenKey(jti string) string {
	return fmt.Sprintf("auth:revoked:%s", jti)
}

func userKey(userID string) string {
	return fmt.Sprintf("auth:revoked-user:%s", userID)
}

// Revoke marks a single token as revoked until its natural expiry.
func (b *RedisTokenBlacklist) Revoke(ctx context.Context, jti string, expiresAt time.Time) error {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return nil
	}
	return b.client.Set(ctx, tokenKey(jti), "1", ttl).Err()
}

// IsRevoked reports whether the token ID has been revoked.
func (b *RedisTokenBlacklist) IsRevoked(ctx context.Context, jti string) (bool, error) {
	n, err := b.client.Exists(ctx, tokenKey(jti)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// RevokeAllForUser invalidates every token issued to the user before now.
// Tokens issued after this call remain valid.
func (b *RedisTokenBlacklist) RevokeAllForUser(ctx context.Context, userID string, maxTokenLifetime time.Duration) error {
	now := time.Now().Unix()
	return b.client.Set(ctx, userKey(userID), now, maxTokenLifetime).Err()
}

// IsUserRevoked reports whether the token was issued before a user-wide
// revocation.
func (b *RedisTokenBlacklist) IsUserRevoked(ctx context.Context, userID string, tokenIssuedAt time.Time) (bool, error) {
	val, err := b.client.Get(ctx, userKey(userID)).Int64()
	if err != nil {
		if err == redis.Nil {
			return false, nil
		}
		return false, err
	}
	return tokenIssuedAt.Unix() <= val, nil
}

// NoopTokenBlacklist is used when redis is not configured; nothing is ever
// considered revoked.
type NoopTokenBlacklist struct{}

func (NoopTokenBlacklist) Revoke(context.Context, string, time.Time) error { return nil }
func (NoopTokenBlacklist) IsRevoked(context.Context, string) (bool, error) {
	return false, nil
}
func (NoopTokenBlacklist) RevokeAllForUser(context.Context, string, time.Duration) error {
	return nil
}
func (NoopTokenBlacklist) IsUserRevoked(context.Context, string, time.Time) (bool, error) {
	return false, nil
}
