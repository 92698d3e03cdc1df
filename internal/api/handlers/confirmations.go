package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"food-rescue-service/internal/api/dto"
	"food-rescue-service/internal/services"
)

type ConfirmationHandler struct {
	Workflow *services.Workflow
}

// SendPickups dispatches confirmation requests to every pickup stop contact
// on the route.
func (h *ConfirmationHandler) SendPickups(w http.ResponseWriter, r *http.Request) {
	h.sendBatch(w, r, func(ctx context.Context, routeID uuid.UUID) (services.BatchResult, error) {
		return h.Workflow.SendPickupConfirmations(ctx, routeID)
	})
}

// SendDeliveries dispatches confirmation requests to every delivery stop
// contact on the route.
func (h *ConfirmationHandler) SendDeliveries(w http.ResponseWriter, r *http.Request) {
	h.sendBatch(w, r, func(ctx context.Context, routeID uuid.UUID) (services.BatchResult, error) {
		return h.Workflow.SendDeliveryConfirmations(ctx, routeID)
	})
}

// SendScheduleChange notifies every stop contact on the route of a schedule
// change.
func (h *ConfirmationHandler) SendScheduleChange(w http.ResponseWriter, r *http.Request) {
	routeID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid route id")
		return
	}

	var req dto.ScheduleChangeRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if strings.TrimSpace(req.Reason) == "" {
		writeError(w, r, http.StatusBadRequest, "reason is required")
		return
	}

	result, err := h.Workflow.SendScheduleChangeNotifications(r.Context(), routeID, req.Reason)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, batchToDTO(routeID, result))
}

// Readiness reports confirmation progress for a route.
func (h *ConfirmationHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	routeID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid route id")
		return
	}

	readiness, err := h.Workflow.RouteReadiness(r.Context(), routeID)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.ReadinessResponse{
		RouteID:           readiness.RouteID.String(),
		TotalStops:        readiness.TotalStops,
		ConfirmedStops:    readiness.ConfirmedStops,
		PendingStops:      readiness.PendingStops,
		ConfirmationRate:  readiness.ConfirmationRate,
		Pickups:           typeReadinessToDTO(readiness.Pickups),
		Deliveries:        typeReadinessToDTO(readiness.Deliveries),
		ReadyForExecution: readiness.ReadyForExecution,
	})
}

// RecordResponse processes an inbound reply to a confirmation request.
func (h *ConfirmationHandler) RecordResponse(w http.ResponseWriter, r *http.Request) {
	stopID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid stop id")
		return
	}

	var req dto.StopResponseRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if strings.TrimSpace(req.Content) == "" {
		writeError(w, r, http.StatusBadRequest, "content is required")
		return
	}

	outcome, err := h.Workflow.RecordResponse(r.Context(), stopID, req.Content)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.StopResponseResult{
		StopID:  outcome.StopID.String(),
		Action:  string(outcome.Action),
		Message: outcome.Message,
	})
}

func (h *ConfirmationHandler) sendBatch(
	w http.ResponseWriter,
	r *http.Request,
	send func(ctx context.Context, routeID uuid.UUID) (services.BatchResult, error),
) {
	routeID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid route id")
		return
	}

	result, err := send(r.Context(), routeID)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, batchToDTO(routeID, result))
}

func batchToDTO(routeID uuid.UUID, result services.BatchResult) dto.BatchSendResponse {
	return dto.BatchSendResponse{
		RouteID: routeID.String(),
		Sent:    result.Sent,
		Failed:  result.Failed,
		Total:   result.Total,
	}
}

func typeReadinessToDTO(t services.TypeReadiness) dto.TypeReadinessResponse {
	return dto.TypeReadinessResponse{
		Total:     t.Total,
		Confirmed: t.Confirmed,
		Pending:   t.Pending,
	}
}
