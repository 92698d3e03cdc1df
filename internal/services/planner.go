package services

import (
	"context"
	"fmt"
	"log"
	"math"
	"time"

	"food-rescue-service/internal/domain"
	"food-rescue-service/internal/platform/obs"
	"food-rescue-service/internal/ports"
)

// Efficiency score weights: distance proxy, capacity utilization, time
// utilization. The distance component is a coarse inverse proxy for stop
// density, not a true distance metric.
const (
	distanceWeight = 0.3
	capacityWeight = 0.4
	timeWeight     = 0.3
)

// Planner computes route plans for a region. It holds only dependency
// handles; every planning run is a pure function of its inputs plus the
// clock.
type Planner struct {
	Stores ports.StoreRepository
	Banks  ports.BankRepository
	Cache  ports.PlanCache // optional; nil disables caching
	Now    func() time.Time
}

func NewPlanner(stores ports.StoreRepository, banks ports.BankRepository, cache ports.PlanCache) *Planner {
	return &Planner{Stores: stores, Banks: banks, Cache: cache, Now: time.Now}
}

// BuildRoutePlan assembles the sequenced visits into a feasibility-annotated
// plan. It never fails: an over-capacity or over-time plan is returned with
// the corresponding flag false, and the caller decides whether to execute it.
func BuildRoutePlan(
	region domain.Region,
	targetDate time.Time,
	pickups []domain.PickupVisit,
	deliveries []domain.DeliveryVisit,
	unallocated []domain.Donation,
) domain.RoutePlan {
	var totalWeight float64
	totalDuration := 0

	for _, p := range pickups {
		totalWeight += p.TotalWeightPounds
		totalDuration += p.TravelMinutes + p.DwellMinutes
	}
	for _, d := range deliveries {
		totalDuration += d.TravelMinutes + d.DwellMinutes
	}

	completion := routeStart(targetDate)
	if n := len(pickups); n > 0 {
		last := pickups[n-1]
		completion = last.ArriveAt.Add(time.Duration(last.DwellMinutes) * time.Minute)
	}
	if n := len(deliveries); n > 0 {
		last := deliveries[n-1]
		completion = last.ArriveAt.Add(time.Duration(last.DwellMinutes) * time.Minute)
	}

	maxMinutes := int(domain.MaxRouteDuration.Minutes())

	plan := domain.RoutePlan{
		RegionID:             region.RegionID,
		TargetDate:           targetDate,
		Pickups:              pickups,
		Deliveries:           deliveries,
		Unallocated:          unallocated,
		TotalWeightPounds:    totalWeight,
		TotalDurationMinutes: totalDuration,
		EstimatedCompletion:  completion,
		WithinCapacity:       totalWeight <= region.TruckCapacityPounds,
		WithinTimeLimit:      totalDuration <= maxMinutes,
	}
	plan.EfficiencyScore = efficiencyScore(plan, region.TruckCapacityPounds, maxMinutes)

	return plan
}

// efficiencyScore blends stop density, capacity utilization and time
// utilization into a 0-100 heuristic. An empty plan scores 0.
func efficiencyScore(plan domain.RoutePlan, truckCapacity float64, maxMinutes int) float64 {
	stops := plan.StopCount()
	if stops == 0 {
		return 0
	}

	distanceScore := math.Min(100, 1000/math.Max(1, float64(stops*5)))
	capacityScore := 0.0
	if truckCapacity > 0 {
		capacityScore = math.Min(100, plan.TotalWeightPounds/truckCapacity*100)
	}
	timeScore := math.Min(100, float64(plan.TotalDurationMinutes)/float64(maxMinutes)*100)

	score := distanceScore*distanceWeight + capacityScore*capacityWeight + timeScore*timeWeight
	return math.Round(score*10) / 10
}

// routeStart returns 08:00 on the target date.
func routeStart(targetDate time.Time) time.Time {
	y, m, d := targetDate.Date()
	return time.Date(y, m, d, domain.RouteStartHour, 0, 0, 0, targetDate.Location())
}

// OptimizeRoute is the planning entry point: allocate donations to banks,
// sequence pickups and deliveries by nearest-neighbor, and assemble the
// annotated plan. A nil targetDate defaults to tomorrow.
//
// Input validation happens here, before any planning math: non-positive
// weights and out-of-range coordinates are rejected; everything downstream
// is infallible planning arithmetic.
func (p *Planner) OptimizeRoute(ctx context.Context, region domain.Region, donations []domain.Donation, targetDate *time.Time) (_ domain.RoutePlan, err error) {
	defer obs.Time(ctx, "planner.OptimizeRoute")(&err)

	now := p.Now()

	target := now.AddDate(0, 0, 1)
	if targetDate != nil {
		target = *targetDate
	}

	if err := region.Depot.Validate(); err != nil {
		return domain.RoutePlan{}, fmt.Errorf("optimize route: region %d depot: %w", region.RegionID, err)
	}
	for _, d := range donations {
		if err := d.Validate(); err != nil {
			return domain.RoutePlan{}, fmt.Errorf("optimize route: %w", err)
		}
	}

	stores, err := p.Stores.ListActiveStores(ctx, region.RegionID)
	if err != nil {
		return domain.RoutePlan{}, fmt.Errorf("optimize route: list stores: %w", err)
	}
	storeByID := make(map[int64]domain.Store, len(stores))
	for _, s := range stores {
		if err := s.Location.Validate(); err != nil {
			return domain.RoutePlan{}, fmt.Errorf("optimize route: store %d: %w", s.StoreID, err)
		}
		storeByID[s.StoreID] = s
	}

	banks, err := p.Banks.ListActiveBanks(ctx, region.RegionID)
	if err != nil {
		return domain.RoutePlan{}, fmt.Errorf("optimize route: list banks: %w", err)
	}
	for _, b := range banks {
		if err := b.Location.Validate(); err != nil {
			return domain.RoutePlan{}, fmt.Errorf("optimize route: bank %d: %w", b.BankID, err)
		}
	}

	pickups, err := groupByStore(donations, storeByID)
	if err != nil {
		return domain.RoutePlan{}, fmt.Errorf("optimize route: %w", err)
	}

	alloc := AllocateDonations(donations, banks, now)

	start := routeStart(target)
	pickupVisits, pickupEnd, err := PlanPickupSequence(region.Depot, pickups, start)
	if err != nil {
		return domain.RoutePlan{}, fmt.Errorf("optimize route: %w", err)
	}

	deliveryVisits, _, err := PlanDeliverySequence(region.Depot, alloc.Receiving(), pickupEnd)
	if err != nil {
		return domain.RoutePlan{}, fmt.Errorf("optimize route: %w", err)
	}

	plan := BuildRoutePlan(region, target, pickupVisits, deliveryVisits, alloc.Unallocated)

	if p.Cache != nil {
		// Best effort: a cache fault never fails a planning run.
		if err := p.Cache.PutPlan(ctx, region.RegionID, target, plan); err != nil {
			log.Printf("plan cache write failed: region=%d err=%v", region.RegionID, err)
		}
	}

	return plan, nil
}

// CachedPlan returns the most recent plan computed for a region and date,
// if one is cached.
func (p *Planner) CachedPlan(ctx context.Context, regionID int64, date time.Time) (domain.RoutePlan, bool, error) {
	if p.Cache == nil {
		return domain.RoutePlan{}, false, nil
	}
	return p.Cache.GetPlan(ctx, regionID, date)
}

// groupByStore buckets donations per store in first-seen order, resolving
// store references against the active-store set.
func groupByStore(donations []domain.Donation, storeByID map[int64]domain.Store) ([]StorePickup, error) {
	byStore := make(map[int64]int)
	groups := make([]StorePickup, 0, len(storeByID))

	for _, d := range donations {
		store, ok := storeByID[d.StoreID]
		if !ok {
			return nil, fmt.Errorf("donation %s references unknown or inactive store %d", d.DonationID, d.StoreID)
		}

		idx, seen := byStore[d.StoreID]
		if !seen {
			idx = len(groups)
			byStore[d.StoreID] = idx
			groups = append(groups, StorePickup{Store: store})
		}
		groups[idx].Donations = append(groups[idx].Donations, d)
	}

	return groups, nil
}
