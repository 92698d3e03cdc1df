package ports

import (
	"context"
	"time"

	"food-rescue-service/internal/domain"
)

// Port: a cache of the most recently computed route plan per region and
// target date. Planning is deterministic for fixed inputs, so dashboards can
// re-read a cached plan instead of re-running the optimizer.
type PlanCache interface {
	// Retrieve a cached plan; ok is false on a miss.
	GetPlan(ctx context.Context, regionID int64, date time.Time) (plan domain.RoutePlan, ok bool, err error)
	// Store a plan, replacing any previous entry for the same region and date.
	PutPlan(ctx context.Context, regionID int64, date time.Time, plan domain.RoutePlan) error
}
