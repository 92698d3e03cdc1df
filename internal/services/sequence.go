package services

import (
	"fmt"
	"math"
	"time"

	"food-rescue-service/internal/domain"
	"food-rescue-service/internal/geo"
)

// StorePickup groups the donations to collect at one store.
type StorePickup struct {
	Store     domain.Store
	Donations []domain.Donation
}

// legState is the explicit accumulator threaded through a nearest-neighbor
// run: where the truck is and what time the clock reads. Each visit folds
// (state, site) -> (newState, annotatedVisit); there is no shared mutable
// clock outside it.
type legState struct {
	at    domain.Coordinates
	clock time.Time
}

// nearestIndex selects the unvisited site closest to the current position.
// Ties break toward the earliest input index, so a stable input order makes
// the whole sequence deterministic.
func nearestIndex(from domain.Coordinates, sites []domain.Located) (int, error) {
	best := -1
	minMiles := math.Inf(1)

	for i, site := range sites {
		miles, err := geo.Distance(from, site.Coordinate())
		if err != nil {
			return -1, fmt.Errorf("distance to site %d: %w", i, err)
		}
		if miles < minMiles {
			minMiles = miles
			best = i
		}
	}

	if best < 0 {
		return -1, fmt.Errorf("no sites to visit")
	}
	return best, nil
}

// advance moves the state to the chosen site: travel time pushes the clock to
// the arrival instant, dwell pushes it to departure.
func (s legState) advance(to domain.Located, dwellMinutes int) (next legState, arriveAt time.Time, travelMinutes int, err error) {
	travelMinutes, err = geo.TravelTime(s.at, to.Coordinate())
	if err != nil {
		return s, time.Time{}, 0, err
	}

	arriveAt = s.clock.Add(time.Duration(travelMinutes) * time.Minute)
	s.at = to.Coordinate()
	s.clock = arriveAt.Add(time.Duration(dwellMinutes) * time.Minute)
	return s, arriveAt, travelMinutes, nil
}

// PlanPickupSequence orders pickup stops using a greedy nearest-neighbor
// walk from the depot, with the clock starting at startAt.
//
// The algorithm minimizes immediate travel distance at each step. It does
// not attempt global route optimization (e.g., VRP solvers); determinism and
// simplicity win over optimality. Empty input yields an empty sequence.
func PlanPickupSequence(depot domain.Coordinates, pickups []StorePickup, startAt time.Time) ([]domain.PickupVisit, time.Time, error) {
	state := legState{at: depot, clock: startAt}
	remaining := make([]StorePickup, len(pickups))
	copy(remaining, pickups)

	visits := make([]domain.PickupVisit, 0, len(pickups))
	for len(remaining) > 0 {
		sites := make([]domain.Located, len(remaining))
		for i, p := range remaining {
			sites[i] = p.Store
		}

		idx, err := nearestIndex(state.at, sites)
		if err != nil {
			return nil, time.Time{}, fmt.Errorf("plan pickups: %w", err)
		}

		chosen := remaining[idx]
		dwell := PickupDuration(chosen.Donations)

		next, arriveAt, travel, err := state.advance(chosen.Store, dwell)
		if err != nil {
			return nil, time.Time{}, fmt.Errorf("plan pickups: advance to store %d: %w", chosen.Store.StoreID, err)
		}
		state = next

		_, weight := donationTotals(chosen.Donations)
		visits = append(visits, domain.PickupVisit{
			Store:             chosen.Store,
			Donations:         chosen.Donations,
			ArriveAt:          arriveAt,
			TravelMinutes:     travel,
			DwellMinutes:      dwell,
			TotalWeightPounds: weight,
		})

		remaining = append(remaining[:idx], remaining[idx+1:]...)
	}

	return visits, state.clock, nil
}

// PlanDeliverySequence orders delivery stops the same way, visiting only
// banks that received an allocation. The walk starts geographically at the
// depot; startAt is the clock at pickup completion.
func PlanDeliverySequence(depot domain.Coordinates, deliveries []BankAllocation, startAt time.Time) ([]domain.DeliveryVisit, time.Time, error) {
	state := legState{at: depot, clock: startAt}
	remaining := make([]BankAllocation, len(deliveries))
	copy(remaining, deliveries)

	visits := make([]domain.DeliveryVisit, 0, len(deliveries))
	for len(remaining) > 0 {
		sites := make([]domain.Located, len(remaining))
		for i, d := range remaining {
			sites[i] = d.Bank
		}

		idx, err := nearestIndex(state.at, sites)
		if err != nil {
			return nil, time.Time{}, fmt.Errorf("plan deliveries: %w", err)
		}

		chosen := remaining[idx]
		dwell := DeliveryDuration(chosen.Donations)

		next, arriveAt, travel, err := state.advance(chosen.Bank, dwell)
		if err != nil {
			return nil, time.Time{}, fmt.Errorf("plan deliveries: advance to bank %d: %w", chosen.Bank.BankID, err)
		}
		state = next

		visits = append(visits, domain.DeliveryVisit{
			Bank:              chosen.Bank,
			Donations:         chosen.Donations,
			ArriveAt:          arriveAt,
			TravelMinutes:     travel,
			DwellMinutes:      dwell,
			TotalWeightPounds: chosen.TotalWeightPounds,
		})

		remaining = append(remaining[:idx], remaining[idx+1:]...)
	}

	return visits, state.clock, nil
}
