package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"food-rescue-service/internal/domain"
)

type fakeStoreRepo struct {
	stores []domain.Store
}

func (f *fakeStoreRepo) GetStore(_ context.Context, storeID int64) (domain.Store, error) {
	for _, s := range f.stores {
		if s.StoreID == storeID {
			return s, nil
		}
	}
	return domain.Store{}, fmt.Errorf("store %d: %w", storeID, domain.ErrNotFound)
}

func (f *fakeStoreRepo) ListActiveStores(_ context.Context, _ int64) ([]domain.Store, error) {
	return f.stores, nil
}

type fakeBankRepo struct {
	banks []domain.Bank
}

func (f *fakeBankRepo) GetBank(_ context.Context, bankID int64) (domain.Bank, error) {
	for _, b := range f.banks {
		if b.BankID == bankID {
			return b, nil
		}
	}
	return domain.Bank{}, fmt.Errorf("bank %d: %w", bankID, domain.ErrNotFound)
}

func (f *fakeBankRepo) ListActiveBanks(_ context.Context, _ int64) ([]domain.Bank, error) {
	return f.banks, nil
}

type fakePlanCache struct {
	plans map[string]domain.RoutePlan
	puts  int
}

func cacheKey(regionID int64, date time.Time) string {
	return fmt.Sprintf("%d:%s", regionID, date.Format("2006-01-02"))
}

func (f *fakePlanCache) GetPlan(_ context.Context, regionID int64, date time.Time) (domain.RoutePlan, bool, error) {
	plan, ok := f.plans[cacheKey(regionID, date)]
	return plan, ok, nil
}

func (f *fakePlanCache) PutPlan(_ context.Context, regionID int64, date time.Time, plan domain.RoutePlan) error {
	if f.plans == nil {
		f.plans = make(map[string]domain.RoutePlan)
	}
	f.plans[cacheKey(regionID, date)] = plan
	f.puts++
	return nil
}

func testRegion() domain.Region {
	return domain.Region{
		RegionID:            1,
		Name:                "Test Metro",
		Depot:               domain.Coordinates{Lat: 0, Lon: 0},
		RadiusMiles:         35,
		TruckCapacityPounds: 2000,
		IsActive:            true,
	}
}

func plannerFixture() (*Planner, *fakePlanCache) {
	stores := &fakeStoreRepo{stores: []domain.Store{
		testStore(1, 0, 0.1),
		testStore(2, 0, 0.2),
	}}

	bank1 := testBank(1, 600, 1500, false)
	bank1.Location = domain.Coordinates{Lat: 0, Lon: -0.1}
	bank2 := testBank(2, 900, 2400, true)
	bank2.Location = domain.Coordinates{Lat: 0, Lon: -0.2}
	banks := &fakeBankRepo{banks: []domain.Bank{bank1, bank2}}

	cache := &fakePlanCache{}
	p := NewPlanner(stores, banks, cache)
	p.Now = func() time.Time { return time.Date(2026, 3, 9, 14, 0, 0, 0, time.UTC) }
	return p, cache
}

func TestOptimizeRouteFeasiblePlan(t *testing.T) {
	p, cache := plannerFixture()
	target := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	d1 := testDonation(40)
	d1.StoreID = 1
	d2 := testDonation(30)
	d2.StoreID = 2

	plan, err := p.OptimizeRoute(context.Background(), testRegion(), []domain.Donation{d1, d2}, &target)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(plan.Pickups) != 2 {
		t.Fatalf("expected 2 pickups, got %d", len(plan.Pickups))
	}
	if plan.Pickups[0].Store.StoreID != 1 || plan.Pickups[1].Store.StoreID != 2 {
		t.Fatalf("expected nearest-first pickup order, got %d then %d",
			plan.Pickups[0].Store.StoreID, plan.Pickups[1].Store.StoreID)
	}

	// Both donations route to the high-need bank; only it gets a stop.
	if len(plan.Deliveries) != 1 {
		t.Fatalf("expected 1 delivery, got %d", len(plan.Deliveries))
	}
	if plan.Deliveries[0].Bank.BankID != 2 {
		t.Fatalf("expected delivery to bank 2, got %d", plan.Deliveries[0].Bank.BankID)
	}

	if plan.TotalWeightPounds != 70 {
		t.Fatalf("expected total weight 70, got %v", plan.TotalWeightPounds)
	}
	if len(plan.Unallocated) != 0 {
		t.Fatalf("expected nothing unallocated, got %d", len(plan.Unallocated))
	}
	if !plan.WithinCapacity || !plan.WithinTimeLimit {
		t.Fatalf("expected a feasible plan, got capacity=%v time=%v (duration %d)",
			plan.WithinCapacity, plan.WithinTimeLimit, plan.TotalDurationMinutes)
	}
	if plan.EfficiencyScore != 49.9 {
		t.Fatalf("expected efficiency score 49.9, got %v", plan.EfficiencyScore)
	}

	// Route clock: 08:00 departure on the target date.
	wantFirstArrive := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC).
		Add(time.Duration(plan.Pickups[0].TravelMinutes) * time.Minute)
	if !plan.Pickups[0].ArriveAt.Equal(wantFirstArrive) {
		t.Fatalf("expected first arrival %v, got %v", wantFirstArrive, plan.Pickups[0].ArriveAt)
	}

	// Deliveries continue the clock after pickups finish.
	lastPickup := plan.Pickups[1]
	pickupEnd := lastPickup.ArriveAt.Add(time.Duration(lastPickup.DwellMinutes) * time.Minute)
	if plan.Deliveries[0].ArriveAt.Before(pickupEnd) {
		t.Fatal("delivery arrival precedes pickup completion")
	}

	if cache.puts != 1 {
		t.Fatalf("expected one cache write, got %d", cache.puts)
	}
	cached, ok, _ := cache.GetPlan(context.Background(), 1, target)
	if !ok || cached.TotalWeightPounds != plan.TotalWeightPounds {
		t.Fatal("expected the computed plan in the cache")
	}
}

func TestOptimizeRouteOverCapacityIsAnnotatedNotRejected(t *testing.T) {
	p, _ := plannerFixture()
	target := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	heavy := testDonation(5000)
	heavy.StoreID = 1

	plan, err := p.OptimizeRoute(context.Background(), testRegion(), []domain.Donation{heavy}, &target)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if plan.WithinCapacity {
		t.Fatal("expected WithinCapacity false for a 5000 lb load")
	}
	if plan.WithinTimeLimit {
		t.Fatal("expected WithinTimeLimit false for a 5000 lb dwell")
	}
	if plan.EfficiencyScore < 0 || plan.EfficiencyScore > 100 {
		t.Fatalf("efficiency score out of range: %v", plan.EfficiencyScore)
	}
}

func TestOptimizeRouteDefaultsToTomorrow(t *testing.T) {
	p, _ := plannerFixture()

	d := testDonation(40)
	d.StoreID = 1

	plan, err := p.OptimizeRoute(context.Background(), testRegion(), []domain.Donation{d}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	y, m, day := plan.TargetDate.Date()
	if y != 2026 || m != time.March || day != 10 {
		t.Fatalf("expected target date 2026-03-10, got %v", plan.TargetDate)
	}

	wantStart := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)
	firstTravel := time.Duration(plan.Pickups[0].TravelMinutes) * time.Minute
	if !plan.Pickups[0].ArriveAt.Equal(wantStart.Add(firstTravel)) {
		t.Fatalf("expected first arrival after an 08:00 start, got %v", plan.Pickups[0].ArriveAt)
	}
}

func TestOptimizeRouteRejectsUnknownStore(t *testing.T) {
	p, _ := plannerFixture()
	target := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	orphan := testDonation(40)
	orphan.StoreID = 99

	_, err := p.OptimizeRoute(context.Background(), testRegion(), []domain.Donation{orphan}, &target)
	if err == nil {
		t.Fatal("expected error for a donation at an unknown store")
	}
}

func TestOptimizeRouteRejectsNonPositiveWeight(t *testing.T) {
	p, _ := plannerFixture()
	target := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	bad := testDonation(0)
	bad.StoreID = 1

	_, err := p.OptimizeRoute(context.Background(), testRegion(), []domain.Donation{bad}, &target)
	if err == nil {
		t.Fatal("expected error for a zero-weight donation")
	}
}

func TestOptimizeRouteEmptyDonations(t *testing.T) {
	p, _ := plannerFixture()
	target := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	plan, err := p.OptimizeRoute(context.Background(), testRegion(), nil, &target)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if plan.StopCount() != 0 {
		t.Fatalf("expected an empty plan, got %d stops", plan.StopCount())
	}
	if plan.EfficiencyScore != 0 {
		t.Fatalf("expected score 0 for an empty plan, got %v", plan.EfficiencyScore)
	}
	if !plan.WithinCapacity || !plan.WithinTimeLimit {
		t.Fatal("an empty plan is trivially feasible")
	}
}

func TestBuildRoutePlanExactScore(t *testing.T) {
	region := testRegion()
	target := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	start := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)

	pickup := domain.PickupVisit{
		Store:             testStore(1, 0, 0.1),
		ArriveAt:          start.Add(10 * time.Minute),
		TravelMinutes:     10,
		DwellMinutes:      20,
		TotalWeightPounds: 1000,
	}
	delivery := domain.DeliveryVisit{
		Bank:              testBank(1, 500, 1500, false),
		ArriveAt:          start.Add(45 * time.Minute),
		TravelMinutes:     10,
		DwellMinutes:      25,
		TotalWeightPounds: 1000,
	}

	plan := BuildRoutePlan(region, target, []domain.PickupVisit{pickup}, []domain.DeliveryVisit{delivery}, nil)

	if plan.TotalDurationMinutes != 65 {
		t.Fatalf("expected 65 total minutes, got %d", plan.TotalDurationMinutes)
	}
	if plan.TotalWeightPounds != 1000 {
		t.Fatalf("expected 1000 total pounds, got %v", plan.TotalWeightPounds)
	}

	// 2 stops: distance 100, capacity 50, time 27.083; weighted 58.125,
	// rounded to one decimal.
	if plan.EfficiencyScore != 58.1 {
		t.Fatalf("expected efficiency score 58.1, got %v", plan.EfficiencyScore)
	}

	wantCompletion := delivery.ArriveAt.Add(25 * time.Minute)
	if !plan.EstimatedCompletion.Equal(wantCompletion) {
		t.Fatalf("expected completion %v, got %v", wantCompletion, plan.EstimatedCompletion)
	}
}

func TestCachedPlanWithoutCache(t *testing.T) {
	p := NewPlanner(&fakeStoreRepo{}, &fakeBankRepo{}, nil)

	_, ok, err := p.CachedPlan(context.Background(), 1, time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatal("expected a miss when no cache is configured")
	}
}
