package ports

import (
	"context"

	"food-rescue-service/internal/domain"
)

// Port: a boundary for retrieving food banks from the data store.
type BankRepository interface {
	// Retrieve a single bank by id; domain.ErrNotFound when absent.
	GetBank(ctx context.Context, bankID int64) (domain.Bank, error)
	// Retrieve all active banks in a region, ordered by id.
	ListActiveBanks(ctx context.Context, regionID int64) ([]domain.Bank, error)
}
