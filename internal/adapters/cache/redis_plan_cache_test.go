package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"food-rescue-service/internal/domain"
)

func newTestCache(t *testing.T) (*RedisPlanCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisPlanCache(client, 15*time.Minute), mr
}

func TestGetPlanMiss(t *testing.T) {
	c, _ := newTestCache(t)

	_, ok, err := c.GetPlan(context.Background(), 1, time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("GetPlan returned error: %v", err)
	}
	if ok {
		t.Fatal("expected cache miss, got hit")
	}
}

func TestPutThenGetPlan(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()
	date := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	plan := domain.RoutePlan{
		RegionID:             7,
		TargetDate:           date,
		TotalWeightPounds:    425,
		TotalDurationMinutes: 180,
		WithinCapacity:       true,
		WithinTimeLimit:      true,
		EfficiencyScore:      71.2,
	}

	if err := c.PutPlan(ctx, 7, date, plan); err != nil {
		t.Fatalf("PutPlan returned error: %v", err)
	}

	got, ok, err := c.GetPlan(ctx, 7, date)
	if err != nil {
		t.Fatalf("GetPlan returned error: %v", err)
	}
	if !ok {
		t.Fatal("expected cache hit, got miss")
	}
	if got.RegionID != plan.RegionID || got.TotalWeightPounds != plan.TotalWeightPounds {
		t.Fatalf("cached plan mismatch: got %+v", got)
	}
	if got.EfficiencyScore != plan.EfficiencyScore {
		t.Fatalf("efficiency score mismatch: got %v, want %v", got.EfficiencyScore, plan.EfficiencyScore)
	}
}

func TestPlanKeysIsolatedByRegionAndDate(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()
	date := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	if err := c.PutPlan(ctx, 1, date, domain.RoutePlan{RegionID: 1}); err != nil {
		t.Fatalf("PutPlan returned error: %v", err)
	}

	if _, ok, _ := c.GetPlan(ctx, 2, date); ok {
		t.Fatal("plan for region 1 leaked into region 2")
	}
	if _, ok, _ := c.GetPlan(ctx, 1, date.AddDate(0, 0, 1)); ok {
		t.Fatal("plan for one date leaked into the next day")
	}
}

func TestPlanEntryExpires(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()
	date := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	if err := c.PutPlan(ctx, 1, date, domain.RoutePlan{RegionID: 1}); err != nil {
		t.Fatalf("PutPlan returned error: %v", err)
	}

	mr.FastForward(16 * time.Minute)

	if _, ok, _ := c.GetPlan(ctx, 1, date); ok {
		t.Fatal("expected entry to expire after TTL")
	}
}
