package handlers

import (
	"net/http"

	"github.com/google/uuid"

	"food-rescue-service/internal/api/dto"
	"food-rescue-service/internal/domain"
	"food-rescue-service/internal/ports"
	"food-rescue-service/internal/services"
)

type RouteHandler struct {
	Planner   *services.Planner
	Regions   ports.RegionRepository
	Donations ports.DonationRepository
	Routes    ports.RouteRepository
}

// Create runs a fresh planning cycle and materializes the resulting plan as
// a persisted route with ordered stops.
func (h *RouteHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateRouteRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if req.RegionID <= 0 {
		writeError(w, r, http.StatusBadRequest, "region_id is required")
		return
	}

	targetDate, err := parseDate(req.TargetDate)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "target_date must be in YYYY-MM-DD form")
		return
	}

	region, err := h.Regions.GetRegion(r.Context(), req.RegionID)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	if !region.IsActive {
		writeError(w, r, http.StatusConflict, "region is not active")
		return
	}

	donations, err := h.Donations.ListConfirmedDonations(r.Context(), region.RegionID)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	plan, err := h.Planner.OptimizeRoute(r.Context(), region, donations, targetDate)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	if plan.StopCount() == 0 {
		writeError(w, r, http.StatusConflict, "no donations to route")
		return
	}

	routeID, err := services.CreateDeliveryRoute(r.Context(), h.Routes, plan, req.DriverTeam, req.TruckIdentifier)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	res, err := h.routeResponse(r, routeID)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusCreated, res)
}

// Get returns a persisted route and its stops in execution order.
func (h *RouteHandler) Get(w http.ResponseWriter, r *http.Request) {
	routeID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid route id")
		return
	}

	res, err := h.routeResponse(r, routeID)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, res)
}

func (h *RouteHandler) routeResponse(r *http.Request, routeID uuid.UUID) (dto.RouteResponse, error) {
	route, err := h.Routes.GetRoute(r.Context(), routeID)
	if err != nil {
		return dto.RouteResponse{}, err
	}

	stops, err := h.Routes.ListStops(r.Context(), routeID)
	if err != nil {
		return dto.RouteResponse{}, err
	}

	res := dto.RouteResponse{
		RouteID:                  route.RouteID.String(),
		RegionID:                 route.RegionID,
		ScheduledDate:            route.ScheduledDate.Format("2006-01-02"),
		DriverTeam:               route.DriverTeam,
		TruckIdentifier:          route.TruckIdentifier,
		EstimatedDurationMinutes: route.EstimatedDurationMinutes,
		EfficiencyScore:          route.EfficiencyScore,
		Status:                   string(route.Status),
		Stops:                    make([]dto.StopResponse, 0, len(stops)),
	}

	for _, stop := range stops {
		res.Stops = append(res.Stops, stopToDTO(stop))
	}

	return res, nil
}

func stopToDTO(stop domain.Stop) dto.StopResponse {
	ids := make([]string, 0, len(stop.DonationIDs))
	for _, id := range stop.DonationIDs {
		ids = append(ids, id.String())
	}
	return dto.StopResponse{
		StopID:           stop.StopID.String(),
		StopOrder:        stop.StopOrder,
		StopType:         string(stop.Type),
		StoreID:          stop.StoreID,
		BankID:           stop.BankID,
		DonationIDs:      ids,
		EstimatedArrival: stop.EstimatedArrival,
		DurationMinutes:  stop.EstimatedDurationMinutes,
		IsConfirmed:      stop.IsConfirmed,
		ConfirmedAt:      stop.ConfirmedAt,
		Notes:            stop.Notes,
	}
}
