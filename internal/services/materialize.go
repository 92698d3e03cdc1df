package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"food-rescue-service/internal/domain"
	"food-rescue-service/internal/ports"
)

// CreateDeliveryRoute materializes a route plan into persisted Route and
// Stop records: pickups first, then deliveries, with a dense 1-based stop
// order defining the execution sequence. The plan itself is not mutated.
func CreateDeliveryRoute(
	ctx context.Context,
	repo ports.RouteRepository,
	plan domain.RoutePlan,
	driverTeam string,
	truckIdentifier string,
) (uuid.UUID, error) {
	route := domain.Route{
		RouteID:                  uuid.New(),
		RegionID:                 plan.RegionID,
		ScheduledDate:            plan.TargetDate,
		DriverTeam:               driverTeam,
		TruckIdentifier:          truckIdentifier,
		EstimatedDurationMinutes: plan.TotalDurationMinutes,
		EfficiencyScore:          plan.EfficiencyScore,
		Status:                   domain.RoutePlanned,
		CreatedAt:                time.Now().UTC(),
	}

	stops := make([]domain.Stop, 0, plan.StopCount())
	order := 1

	for _, pickup := range plan.Pickups {
		storeID := pickup.Store.StoreID
		stops = append(stops, domain.Stop{
			StopID:                   uuid.New(),
			RouteID:                  route.RouteID,
			StopOrder:                order,
			Type:                     domain.StopPickup,
			StoreID:                  &storeID,
			DonationIDs:              donationIDs(pickup.Donations),
			EstimatedArrival:         pickup.ArriveAt,
			EstimatedDurationMinutes: pickup.DwellMinutes,
		})
		order++
	}

	for _, delivery := range plan.Deliveries {
		bankID := delivery.Bank.BankID
		stops = append(stops, domain.Stop{
			StopID:                   uuid.New(),
			RouteID:                  route.RouteID,
			StopOrder:                order,
			Type:                     domain.StopDelivery,
			BankID:                   &bankID,
			DonationIDs:              donationIDs(delivery.Donations),
			EstimatedArrival:         delivery.ArriveAt,
			EstimatedDurationMinutes: delivery.DwellMinutes,
		})
		order++
	}

	if err := repo.CreateRoute(ctx, route, stops); err != nil {
		return uuid.Nil, fmt.Errorf("create delivery route: %w", err)
	}

	return route.RouteID, nil
}

func donationIDs(donations []domain.Donation) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(donations))
	for _, d := range donations {
		ids = append(ids, d.DonationID)
	}
	return ids
}
