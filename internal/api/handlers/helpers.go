package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"time"

	"food-rescue-service/internal/api/dto"
	"food-rescue-service/internal/domain"
)

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encode failed: method=%s path=%s err=%v", r.Method, r.URL.Path, err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, r, status, map[string]string{"error": msg})
}

// decodeBody decodes exactly one JSON object from the request body,
// rejecting unknown fields and trailing content.
func decodeBody(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		return errors.New("invalid json body")
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return errors.New("body must contain only one JSON object")
	}
	return nil
}

// writeDomainError maps a repository error onto the right HTTP status.
func writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, domain.ErrNotFound) {
		writeError(w, r, http.StatusNotFound, "not found")
		return
	}
	log.Printf("request failed: method=%s path=%s err=%v", r.Method, r.URL.Path, err)
	writeError(w, r, http.StatusInternalServerError, "internal server error")
}

// parseDate parses an optional "2006-01-02" date; empty means absent.
func parseDate(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, errors.New("date must be in YYYY-MM-DD form")
	}
	return &t, nil
}

func donationsToDTO(donations []domain.Donation) []dto.DonationResponse {
	out := make([]dto.DonationResponse, 0, len(donations))
	for _, d := range donations {
		out = append(out, dto.DonationResponse{
			DonationID:   d.DonationID.String(),
			Category:     d.Category,
			Description:  d.Description,
			WeightPounds: d.WeightPounds,
		})
	}
	return out
}

func planToDTO(plan domain.RoutePlan) dto.PlanResponse {
	res := dto.PlanResponse{
		RegionID:             plan.RegionID,
		TargetDate:           plan.TargetDate.Format("2006-01-02"),
		Pickups:              make([]dto.PickupStopResponse, 0, len(plan.Pickups)),
		Deliveries:           make([]dto.DeliveryStopResponse, 0, len(plan.Deliveries)),
		Unallocated:          donationsToDTO(plan.Unallocated),
		TotalWeightPounds:    plan.TotalWeightPounds,
		TotalDurationMinutes: plan.TotalDurationMinutes,
		WithinCapacity:       plan.WithinCapacity,
		WithinTimeLimit:      plan.WithinTimeLimit,
		EfficiencyScore:      plan.EfficiencyScore,
	}
	if !plan.EstimatedCompletion.IsZero() {
		completion := plan.EstimatedCompletion
		res.EstimatedCompletion = &completion
	}

	for _, p := range plan.Pickups {
		res.Pickups = append(res.Pickups, dto.PickupStopResponse{
			StoreID:           p.Store.StoreID,
			StoreName:         p.Store.Name,
			ArriveAt:          p.ArriveAt,
			TravelMinutes:     p.TravelMinutes,
			DurationMinutes:   p.DwellMinutes,
			TotalWeightPounds: p.TotalWeightPounds,
			Donations:         donationsToDTO(p.Donations),
		})
	}
	for _, d := range plan.Deliveries {
		res.Deliveries = append(res.Deliveries, dto.DeliveryStopResponse{
			BankID:            d.Bank.BankID,
			BankName:          d.Bank.Name,
			ArriveAt:          d.ArriveAt,
			TravelMinutes:     d.TravelMinutes,
			DurationMinutes:   d.DwellMinutes,
			TotalWeightPounds: d.TotalWeightPounds,
			Donations:         donationsToDTO(d.Donations),
		})
	}

	return res
}
