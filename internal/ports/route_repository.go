package ports

import (
	"context"
	"time"

	"github.com/google/uuid"

	"food-rescue-service/internal/domain"
)

// Port: a boundary for persisting and mutating routes and their stops.
// Confirmation state is the only stop field the workflow ever writes;
// ordering and allocation are fixed at materialization time.
type RouteRepository interface {
	// Persist a route and its stops atomically.
	CreateRoute(ctx context.Context, route domain.Route, stops []domain.Stop) error
	// Retrieve a route by id; domain.ErrNotFound when absent.
	GetRoute(ctx context.Context, routeID uuid.UUID) (domain.Route, error)
	// Retrieve all stops of a route in stop_order.
	ListStops(ctx context.Context, routeID uuid.UUID) ([]domain.Stop, error)
	// Retrieve a single stop by id; domain.ErrNotFound when absent.
	GetStop(ctx context.Context, stopID uuid.UUID) (domain.Stop, error)
	// Mark a stop confirmed at the given time.
	ConfirmStop(ctx context.Context, stopID uuid.UUID, confirmedAt time.Time) error
	// Append a free-text annotation to a stop's notes.
	AppendStopNotes(ctx context.Context, stopID uuid.UUID, note string) error
}
