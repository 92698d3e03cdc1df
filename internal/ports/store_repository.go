package ports

import (
	"context"

	"food-rescue-service/internal/domain"
)

// Port: a boundary for retrieving grocery stores from the data store.
type StoreRepository interface {
	// Retrieve a single store by id; domain.ErrNotFound when absent.
	GetStore(ctx context.Context, storeID int64) (domain.Store, error)
	// Retrieve all active stores in a region.
	ListActiveStores(ctx context.Context, regionID int64) ([]domain.Store, error)
}
