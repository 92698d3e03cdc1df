package domain

import (
	"time"

	"github.com/google/uuid"
)

// PickupVisit is one planned stop at a grocery store. ArriveAt and the
// travel/dwell minutes are produced by the sequence planner's running clock.
type PickupVisit struct {
	Store             Store
	Donations         []Donation
	ArriveAt          time.Time
	TravelMinutes     int
	DwellMinutes      int
	TotalWeightPounds float64
}

// DeliveryVisit is one planned stop at a food bank.
type DeliveryVisit struct {
	Bank              Bank
	Donations         []Donation
	ArriveAt          time.Time
	TravelMinutes     int
	DwellMinutes      int
	TotalWeightPounds float64
}

// RoutePlan is the output of a planning run: an ordered pickup sequence
// followed by an ordered delivery sequence, with aggregate feasibility
// annotations. It is immutable planning data and contains no side effects;
// an infeasible plan is returned annotated, never rejected.
type RoutePlan struct {
	RegionID   int64
	TargetDate time.Time

	Pickups    []PickupVisit
	Deliveries []DeliveryVisit

	// Donations no bank had capacity for. Not an error: callers decide
	// whether to defer them to the next cycle.
	Unallocated []Donation

	TotalWeightPounds    float64
	TotalDurationMinutes int
	EstimatedCompletion  time.Time

	WithinCapacity  bool
	WithinTimeLimit bool
	EfficiencyScore float64
}

// StopCount returns the number of visits across both sequences.
func (p RoutePlan) StopCount() int { return len(p.Pickups) + len(p.Deliveries) }

type RouteStatus string

const (
	RoutePlanned    RouteStatus = "planned"
	RouteInProgress RouteStatus = "in_progress"
	RouteCompleted  RouteStatus = "completed"
	RouteCancelled  RouteStatus = "cancelled"
)

// Route is a materialized, persisted route produced from a RoutePlan.
type Route struct {
	RouteID                  uuid.UUID
	RegionID                 int64
	ScheduledDate            time.Time
	DriverTeam               string
	TruckIdentifier          string
	EstimatedDurationMinutes int
	EfficiencyScore          float64
	Status                   RouteStatus
	CreatedAt                time.Time
}

type StopType string

const (
	StopPickup   StopType = "pickup"
	StopDelivery StopType = "delivery"
)

// Stop is a persisted route stop. StopOrder is unique, dense and 1-based
// within a route; exactly one of StoreID/BankID is set depending on Type.
type Stop struct {
	StopID    uuid.UUID
	RouteID   uuid.UUID
	StopOrder int
	Type      StopType

	StoreID *int64
	BankID  *int64

	DonationIDs []uuid.UUID

	EstimatedArrival         time.Time
	EstimatedDurationMinutes int

	IsConfirmed bool
	ConfirmedAt *time.Time
	Notes       string
}
