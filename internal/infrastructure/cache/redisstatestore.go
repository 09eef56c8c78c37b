package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dreamtalk-inc/dreamtalk/internal/shared/biztime"
)

// StateInfo stores state-related information for the OAuth flow
type StateInfo struct {
	CodeVerifier string    `json:"code_verifier"`
	Next         string    `json:"next,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// RedisStateStore provides Redis-based state storage for OAuth flows
type RedisStateStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisStateStore creates a new RedisStateStore instance. A TTL of around
// 10 minutes gives the user enough time to complete the provider consent
// screen.
func NewRedisStateStore(client *redis.Client, prefix string, ttl time.Duration) *RedisStateStore {
	return &RedisStateStore{
		client: client,
		prefix: prefix,
		ttl:    ttl,
	}
}

// Set stores state, code_verifier and the post-login target in Redis with TTL
func (s *RedisStateStore) Set(ctx context.Context, state string, codeVerifier string, next string) error {
	if state == "" {
		return errors.New("state cannot be empty")
	}
	if codeVerifier == "" {
		return errors.New("code_verifier cannot be empty")
	}

	stateInfo := StateInfo{
		CodeVerifier: codeVerifier,
		Next:         next,
		CreatedAt:    biztime.NowUTC(),
	}

	data, err := json.Marshal(stateInfo)
	if err != nil {
		return fmt.Errorf("failed to marshal state info: %w", err)
	}

	key := s.buildKey(state)
	if err := s.client.Set(ctx, key, data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store state in redis: %w", err)
	}

	return nil
}

// VerifyAndGet verifies state exists and retrieves the code_verifier.
// GETDEL makes this atomic get-and-delete, so a state can only be redeemed
// once and replayed callbacks fail.
func (s *RedisStateStore) VerifyAndGet(ctx context.Context, state string) (*StateInfo, error) {
	if state == "" {
		return nil, errors.New("state cannot be empty")
	}

	key := s.buildKey(state)

	data, err := s.client.GetDel(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, errors.New("state not found or expired")
		}
		return nil, fmt.Errorf("failed to retrieve state from redis: %w", err)
	}

	var stateInfo StateInfo
	if err := json.Unmarshal([]byte(data), &stateInfo); err != nil {
		return nil, fmt.Errorf("failed to unmarshal state info: %w", err)
	}

	return &stateInfo, nil
}

func (s *RedisStateStore) buildKey(state string) string {
	return s.prefix + state
}
