package ports

import (
	"context"

	"food-rescue-service/internal/domain"
)

// Port: a boundary for retrieving routing regions.
type RegionRepository interface {
	// Retrieve a region by id; domain.ErrNotFound when absent.
	GetRegion(ctx context.Context, regionID int64) (domain.Region, error)
}
