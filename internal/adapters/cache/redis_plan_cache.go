package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"food-rescue-service/internal/domain"
	"food-rescue-service/internal/ports"
)

// RedisPlanCache stores serialized route plans in Redis keyed by region and
// target date. Entries expire after TTL so a stale plan never outlives the
// day it was computed for by much.
type RedisPlanCache struct {
	Client *redis.Client
	TTL    time.Duration
}

var _ ports.PlanCache = (*RedisPlanCache)(nil)

func NewRedisPlanCache(client *redis.Client, ttl time.Duration) *RedisPlanCache {
	return &RedisPlanCache{Client: client, TTL: ttl}
}

func planKey(regionID int64, date time.Time) string {
	return fmt.Sprintf("routeplan:%d:%s", regionID, date.Format("2006-01-02"))
}

func (c *RedisPlanCache) GetPlan(ctx context.Context, regionID int64, date time.Time) (domain.RoutePlan, bool, error) {
	if c.Client == nil {
		return domain.RoutePlan{}, false, errors.New("get plan: redis client is nil")
	}

	raw, err := c.Client.Get(ctx, planKey(regionID, date)).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.RoutePlan{}, false, nil
	}
	if err != nil {
		return domain.RoutePlan{}, false, fmt.Errorf("get plan: redis get: %w", err)
	}

	var plan domain.RoutePlan
	if err := json.Unmarshal(raw, &plan); err != nil {
		return domain.RoutePlan{}, false, fmt.Errorf("get plan: decode cached plan: %w", err)
	}

	return plan, true, nil
}

func (c *RedisPlanCache) PutPlan(ctx context.Context, regionID int64, date time.Time, plan domain.RoutePlan) error {
	if c.Client == nil {
		return errors.New("put plan: redis client is nil")
	}

	raw, err := json.Marshal(plan)
	if err != nil {
		return fmt.Errorf("put plan: encode plan: %w", err)
	}

	if err := c.Client.Set(ctx, planKey(regionID, date), raw, c.TTL).Err(); err != nil {
		return fmt.Errorf("put plan: redis set: %w", err)
	}

	return nil
}
