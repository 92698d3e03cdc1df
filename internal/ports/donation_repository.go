package ports

import (
	"context"

	"github.com/google/uuid"

	"food-rescue-service/internal/domain"
)

// Port: a boundary for retrieving donations available for routing.
type DonationRepository interface {
	// Retrieve all confirmed, not-yet-routed donations for a region.
	ListConfirmedDonations(ctx context.Context, regionID int64) ([]domain.Donation, error)
	// Retrieve the donations carried by a stop. Unknown ids are skipped.
	GetDonations(ctx context.Context, donationIDs []uuid.UUID) ([]domain.Donation, error)
}
