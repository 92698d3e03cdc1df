package api

import (
	"net/http"

	"food-rescue-service/internal/api/handlers"
	"food-rescue-service/internal/ports"
	"food-rescue-service/internal/services"
)

// NewRouter wires HTTP handlers with their dependencies and returns an
// http.Handler. This is the API composition root; handlers stay unaware of
// concrete adapters.
func NewRouter(
	planner *services.Planner,
	workflow *services.Workflow,
	regions ports.RegionRepository,
	donations ports.DonationRepository,
	routes ports.RouteRepository,
) http.Handler {
	mux := http.NewServeMux()

	planHandler := &handlers.PlanHandler{
		Planner:   planner,
		Regions:   regions,
		Donations: donations,
	}
	routeHandler := &handlers.RouteHandler{
		Planner:   planner,
		Regions:   regions,
		Donations: donations,
		Routes:    routes,
	}
	confirmationHandler := &handlers.ConfirmationHandler{Workflow: workflow}

	mux.HandleFunc("GET /health", handlers.Health)

	mux.HandleFunc("POST /plans", planHandler.Create)
	mux.HandleFunc("GET /plans", planHandler.GetCached)

	mux.HandleFunc("POST /routes", routeHandler.Create)
	mux.HandleFunc("GET /routes/{id}", routeHandler.Get)
	mux.HandleFunc("GET /routes/{id}/readiness", confirmationHandler.Readiness)

	mux.HandleFunc("POST /routes/{id}/confirmations/pickups", confirmationHandler.SendPickups)
	mux.HandleFunc("POST /routes/{id}/confirmations/deliveries", confirmationHandler.SendDeliveries)
	mux.HandleFunc("POST /routes/{id}/confirmations/schedule-change", confirmationHandler.SendScheduleChange)

	mux.HandleFunc("POST /stops/{id}/response", confirmationHandler.RecordResponse)

	return loggingMiddleware(mux)
}
