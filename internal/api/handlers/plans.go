package handlers

import (
	"net/http"
	"strconv"
	"time"

	"food-rescue-service/internal/api/dto"
	"food-rescue-service/internal/ports"
	"food-rescue-service/internal/services"
)

type PlanHandler struct {
	Planner   *services.Planner
	Regions   ports.RegionRepository
	Donations ports.DonationRepository
}

// Create runs a planning cycle for a region: gather the confirmed, unrouted
// donations, allocate them across banks, and sequence a route for the target
// date. The plan is returned and cached; nothing is persisted.
func (h *PlanHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.PlanRequest
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

	writeJSON(w, r, http.StatusOK, planToDTO(plan))
}

// GetCached returns the most recently computed plan for a region and date,
// straight from the cache. 404 means no cycle has run (or the entry expired).
func (h *PlanHandler) GetCached(w http.ResponseWriter, r *http.Request) {
	regionID, err := strconv.ParseInt(r.URL.Query().Get("region_id"), 10, 64)
	if err != nil || regionID <= 0 {
		writeError(w, r, http.StatusBadRequest, "region_id is required")
		return
	}

	date, err := time.Parse("2006-01-02", r.URL.Query().Get("date"))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "date must be in YYYY-MM-DD form")
		return
	}

	plan, ok, err := h.Planner.CachedPlan(r.Context(), regionID, date)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	if !ok {
		writeError(w, r, http.StatusNotFound, "no cached plan for region and date")
		return
	}

	writeJSON(w, r, http.StatusOK, planToDTO(plan))
}
