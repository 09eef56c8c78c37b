package cache

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dreamtalk-inc/dreamtalk/internal/shared/logger"
)

// CachedEntitlement represents a user's cached subscription entitlement.
type CachedEntitlement struct {
	HasSubscription   bool
	Plan              string
	PeriodEnd         *time.Time // nil for lifetime plans
	CancelAtPeriodEnd bool
	NotFound          bool // null marker: user confirmed to have no active subscription
}

// EntitlementCache defines the interface for entitlement caching
type EntitlementCache interface {
	Get(ctx context.Context, userID uint) (*CachedEntitlement, error)
	Set(ctx context.Context, userID uint, ent *CachedEntitlement) error
	Invalidate(ctx context.Context, userID uint) error
	// SetNullMarker caches a short-lived marker indicating the user has no
	// active subscription, preventing repeated DB lookups.
	SetNullMarker(ctx context.Context, userID uint) error
}

const (
	entitlementKeyPrefix = "entitlement:user:"
	baseEntitlementTTL   = 10 * time.Minute
	entitlementTTLJitter = 5 * time.Minute // TTL range: 10-15 min (anti-stampede)
	entNullMarkerTTL     = 2 * time.Minute // short TTL for not-found markers

	fieldHasSubscription   = "has_subscription"
	fieldPlan              = "plan"
	fieldPeriodEnd         = "period_end"
	fieldCancelAtPeriodEnd = "cancel_at_period_end"
	fieldEntNullMarker     = "_null"
)

// RedisEntitlementCache implements EntitlementCache using a Redis hash
type RedisEntitlementCache struct {
	client *redis.Client
	logger logger.Interface
}

// NewRedisEntitlementCache creates a new Redis-based entitlement cache
func NewRedisEntitlementCache(client *redis.Client, logger logger.Interface) *RedisEntitlementCache {
	return &RedisEntitlementCache{
		client: client,
		logger: logger,
	}
}

func (c *RedisEntitlementCache) key(userID uint) string {
	return fmt.Sprintf("%s%d", entitlementKeyPrefix, userID)
}

// Get retrieves entitlement information from cache. Returns nil on a miss.
func (c *RedisEntitlementCache) Get(ctx context.Context, userID uint) (*CachedEntitlement, error) {
	key := c.key(userID)

	result, err := c.client.HGetAll(ctx, key).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get entitlement from cache: %w", err)
	}

	if len(result) == 0 {
		return nil, nil // cache miss
	}

	if result[fieldEntNullMarker] == "1" {
		return &CachedEntitlement{NotFound: true}, nil
	}

	ent := &CachedEntitlement{}
	ent.HasSubscription = result[fieldHasSubscription] == "1"
	ent.Plan = result[fieldPlan]
	ent.CancelAtPeriodEnd = result[fieldCancelAtPeriodEnd] == "1"

	if periodEndStr, ok := result[fieldPeriodEnd]; ok && periodEndStr != "" {
		periodEndUnix, _ := strconv.ParseInt(periodEndStr, 10, 64)
		periodEnd := time.Unix(periodEndUnix, 0).UTC()
		ent.PeriodEnd = &periodEnd
	}

	return ent, nil
}

// Set stores entitlement information in cache. The TTL is clamped to the
// period end so a cached entitlement can never outlive the access it grants.
func (c *RedisEntitlementCache) Set(ctx context.Context, userID uint, ent *CachedEntitlement) error {
	key := c.key(userID)

	fields := map[string]interface{}{
		fieldHasSubscription:   boolToInt(ent.HasSubscription),
		fieldPlan:              ent.Plan,
		fieldCancelAtPeriodEnd: boolToInt(ent.CancelAtPeriodEnd),
	}
	if ent.PeriodEnd != nil {
		fields[fieldPeriodEnd] = ent.PeriodEnd.Unix()
	} else {
		fields[fieldPeriodEnd] = ""
	}

	ttl := entitlementTTLWithJitter()
	if ent.PeriodEnd != nil {
		untilEnd := time.Until(*ent.PeriodEnd)
		if untilEnd <= 0 {
			// already expired, don't cache a stale grant
			return nil
		}
		if untilEnd < ttl {
			ttl = untilEnd
		}
	}

	pipe := c.client.Pipeline()
	pipe.HSet(ctx, key, fields)
	pipe.Expire(ctx, key, ttl)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to set entitlement in cache: %w", err)
	}

	c.logger.Debugw("entitlement cached",
		"user_id", userID,
		"plan", ent.Plan,
		"ttl", ttl,
	)

	return nil
}

// Invalidate removes entitlement information from cache
func (c *RedisEntitlementCache) Invalidate(ctx context.Context, userID uint) error {
	key := c.key(userID)

	if err := c.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to invalidate entitlement cache: %w", err)
	}

	c.logger.Debugw("entitlement cache invalidated", "user_id", userID)
	return nil
}

// SetNullMarker stores a short-lived marker that the user has no active
// subscription, protecting the DB from repeated lookups.
func (c *RedisEntitlementCache) SetNullMarker(ctx context.Context, userID uint) error {
	key := c.key(userID)

	pipe := c.client.Pipeline()
	pipe.HSet(ctx, key, fieldEntNullMarker, "1")
	pipe.Expire(ctx, key, entNullMarkerTTL)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to set entitlement null marker: %w", err)
	}

	return nil
}

// entitlementTTLWithJitter returns the base TTL plus random jitter so cached
// entries for many users don't all expire at once.
func entitlementTTLWithJitter() time.Duration {
	return baseEntitlementTTL + time.Duration(rand.Int64N(int64(entitlementTTLJitter)))
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
