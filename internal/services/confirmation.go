package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"food-rescue-service/internal/domain"
	"food-rescue-service/internal/ports"
)

// ResponseAction classifies what an inbound reply did to a stop.
type ResponseAction string

const (
	ActionConfirmed           ResponseAction = "confirmed"
	ActionRescheduleRequested ResponseAction = "reschedule_requested"
	ActionResponseRecorded    ResponseAction = "response_recorded"
)

// ResponseOutcome reports how one inbound reply was processed.
type ResponseOutcome struct {
	StopID  uuid.UUID
	Action  ResponseAction
	Message string
}

// BatchResult tallies a best-effort batch send. A failed item never aborts
// its siblings.
type BatchResult struct {
	Sent   int
	Failed int
	Total  int
}

// TypeReadiness is the confirmation split for one stop type.
type TypeReadiness struct {
	Total     int
	Confirmed int
	Pending   int
}

// Readiness aggregates per-stop confirmation state for a route. A route is
// ready for execution only when no stop is pending.
type Readiness struct {
	RouteID           uuid.UUID
	TotalStops        int
	ConfirmedStops    int
	PendingStops      int
	ConfirmationRate  float64
	Pickups           TypeReadiness
	Deliveries        TypeReadiness
	ReadyForExecution bool
}

// Workflow drives the confirmation handshake for persisted route stops. It
// never touches allocation or sequencing: the only stop fields it writes are
// the confirmation flag, the confirmation timestamp, and notes.
type Workflow struct {
	Routes        ports.RouteRepository
	Notifications ports.NotificationRepository
	Donations     ports.DonationRepository
	Stores        ports.StoreRepository
	Banks         ports.BankRepository
	Notifier      ports.Notifier

	// Per-send deadline; a timed-out send counts as failed, never crashes.
	SendTimeout time.Duration

	Now func() time.Time

	mu        sync.Mutex
	stopLocks map[uuid.UUID]*sync.Mutex
}

func NewWorkflow(
	routes ports.RouteRepository,
	notifications ports.NotificationRepository,
	donations ports.DonationRepository,
	stores ports.StoreRepository,
	banks ports.BankRepository,
	notifier ports.Notifier,
	sendTimeout time.Duration,
) *Workflow {
	return &Workflow{
		Routes:        routes,
		Notifications: notifications,
		Donations:     donations,
		Stores:        stores,
		Banks:         banks,
		Notifier:      notifier,
		SendTimeout:   sendTimeout,
		Now:           time.Now,
		stopLocks:     make(map[uuid.UUID]*sync.Mutex),
	}
}

// stopLock serializes confirmation mutations per stop so two near-simultaneous
// responses cannot race each other's updates.
func (w *Workflow) stopLock(stopID uuid.UUID) *sync.Mutex {
	w.mu.Lock()
	defer w.mu.Unlock()
	l, ok := w.stopLocks[stopID]
	if !ok {
		l = &sync.Mutex{}
		w.stopLocks[stopID] = l
	}
	return l
}

// RequestConfirmation creates one outbound notification for the stop and
// hands it to the sink. The stop's own state is untouched; repeated calls
// create additional requests (no dedup by design of the handshake).
//
// The bool return is the delivery outcome: (false, nil) means the sink
// rejected or timed out the send, which is a tally entry for batches, not an
// escalating error.
func (w *Workflow) RequestConfirmation(ctx context.Context, stop domain.Stop) (bool, error) {
	route, err := w.Routes.GetRoute(ctx, stop.RouteID)
	if err != nil {
		return false, fmt.Errorf("request confirmation: route %s: %w", stop.RouteID, err)
	}

	donations, err := w.Donations.GetDonations(ctx, stop.DonationIDs)
	if err != nil {
		return false, fmt.Errorf("request confirmation: donations for stop %s: %w", stop.StopID, err)
	}

	var notifType domain.NotificationType
	var recipient, subject, body string

	switch stop.Type {
	case domain.StopPickup:
		if stop.StoreID == nil {
			return false, fmt.Errorf("request confirmation: pickup stop %s has no store", stop.StopID)
		}
		store, err := w.Stores.GetStore(ctx, *stop.StoreID)
		if err != nil {
			return false, fmt.Errorf("request confirmation: store %d: %w", *stop.StoreID, err)
		}
		notifType = domain.NotifyPickupConfirmation
		recipient = store.Email
		subject = pickupConfirmationSubject(route)
		body = pickupConfirmationBody(route, stop, store, donations)

	case domain.StopDelivery:
		if stop.BankID == nil {
			return false, fmt.Errorf("request confirmation: delivery stop %s has no bank", stop.StopID)
		}
		bank, err := w.Banks.GetBank(ctx, *stop.BankID)
		if err != nil {
			return false, fmt.Errorf("request confirmation: bank %d: %w", *stop.BankID, err)
		}
		notifType = domain.NotifyDeliveryConfirmation
		recipient = bank.Email
		subject = deliveryConfirmationSubject(route)
		body = deliveryConfirmationBody(route, stop, bank, donations)

	default:
		return false, fmt.Errorf("request confirmation: stop %s has unknown type %q", stop.StopID, stop.Type)
	}

	return w.dispatch(ctx, stop, notifType, recipient, subject, body)
}

// requestScheduleChange is the schedule-change variant of RequestConfirmation.
func (w *Workflow) requestScheduleChange(ctx context.Context, route domain.Route, stop domain.Stop, changeReason string) (bool, error) {
	var recipient, contact string

	switch stop.Type {
	case domain.StopPickup:
		if stop.StoreID == nil {
			return false, fmt.Errorf("schedule change: pickup stop %s has no store", stop.StopID)
		}
		store, err := w.Stores.GetStore(ctx, *stop.StoreID)
		if err != nil {
			return false, fmt.Errorf("schedule change: store %d: %w", *stop.StoreID, err)
		}
		recipient, contact = store.Email, store.ContactPerson

	case domain.StopDelivery:
		if stop.BankID == nil {
			return false, fmt.Errorf("schedule change: delivery stop %s has no bank", stop.StopID)
		}
		bank, err := w.Banks.GetBank(ctx, *stop.BankID)
		if err != nil {
			return false, fmt.Errorf("schedule change: bank %d: %w", *stop.BankID, err)
		}
		recipient, contact = bank.Email, bank.ContactPerson

	default:
		return false, fmt.Errorf("schedule change: stop %s has unknown type %q", stop.StopID, stop.Type)
	}

	subject := scheduleChangeSubject(route)
	body := scheduleChangeBody(route, stop, contact, changeReason)
	return w.dispatch(ctx, stop, domain.NotifyScheduleChange, recipient, subject, body)
}

// dispatch persists the notification record, performs the bounded send, and
// records the delivery outcome.
func (w *Workflow) dispatch(ctx context.Context, stop domain.Stop, notifType domain.NotificationType, recipient, subject, body string) (bool, error) {
	stopID := stop.StopID
	notification := domain.Notification{
		NotificationID: uuid.New(),
		Type:           notifType,
		RecipientEmail: recipient,
		Subject:        subject,
		MessageBody:    body,
		StopID:         &stopID,
		CreatedAt:      w.Now().UTC(),
	}

	if err := w.Notifications.CreateNotification(ctx, notification); err != nil {
		return false, fmt.Errorf("create notification for stop %s: %w", stopID, err)
	}

	sendCtx := ctx
	if w.SendTimeout > 0 {
		var cancel context.CancelFunc
		sendCtx, cancel = context.WithTimeout(ctx, w.SendTimeout)
		defer cancel()
	}

	if err := w.Notifier.Send(sendCtx, recipient, subject, body); err != nil {
		log.Printf("notification send failed: stop=%s to=%s err=%v", stopID, recipient, err)
		return false, nil
	}

	if err := w.Notifications.MarkNotificationSent(ctx, notification.NotificationID, w.Now().UTC()); err != nil {
		return false, fmt.Errorf("mark notification %s sent: %w", notification.NotificationID, err)
	}

	return true, nil
}

// RecordResponse classifies an inbound reply for a stop, case-insensitively:
// "confirmed" confirms the stop, "reschedule" and anything else are appended
// to the stop's notes as informational annotations; the stop stays pending.
// Unknown stop ids surface domain.ErrNotFound with no mutation.
func (w *Workflow) RecordResponse(ctx context.Context, stopID uuid.UUID, content string) (ResponseOutcome, error) {
	lock := w.stopLock(stopID)
	lock.Lock()
	defer lock.Unlock()

	if _, err := w.Routes.GetStop(ctx, stopID); err != nil {
		return ResponseOutcome{}, fmt.Errorf("record response: stop %s: %w", stopID, err)
	}

	outcome := ResponseOutcome{StopID: stopID}
	lower := strings.ToLower(strings.TrimSpace(content))

	switch {
	case strings.Contains(lower, "confirmed"):
		if err := w.Routes.ConfirmStop(ctx, stopID, w.Now().UTC()); err != nil {
			return ResponseOutcome{}, fmt.Errorf("record response: confirm stop %s: %w", stopID, err)
		}
		if _, err := w.Notifications.MarkLatestResponded(ctx, stopID, content); err != nil {
			return ResponseOutcome{}, fmt.Errorf("record response: mark responded for stop %s: %w", stopID, err)
		}
		outcome.Action = ActionConfirmed
		outcome.Message = "pickup/delivery confirmed"

	case strings.Contains(lower, "reschedule"):
		if err := w.Routes.AppendStopNotes(ctx, stopID, "Reschedule requested: "+content); err != nil {
			return ResponseOutcome{}, fmt.Errorf("record response: annotate stop %s: %w", stopID, err)
		}
		outcome.Action = ActionRescheduleRequested
		outcome.Message = "reschedule request received - manual review required"

	default:
		if err := w.Routes.AppendStopNotes(ctx, stopID, "Response received: "+content); err != nil {
			return ResponseOutcome{}, fmt.Errorf("record response: annotate stop %s: %w", stopID, err)
		}
		outcome.Action = ActionResponseRecorded
		outcome.Message = "response recorded - may require manual review"
	}

	return outcome, nil
}

// RouteReadiness summarizes confirmation progress for a route.
func (w *Workflow) RouteReadiness(ctx context.Context, routeID uuid.UUID) (Readiness, error) {
	if _, err := w.Routes.GetRoute(ctx, routeID); err != nil {
		return Readiness{}, fmt.Errorf("route readiness: route %s: %w", routeID, err)
	}

	stops, err := w.Routes.ListStops(ctx, routeID)
	if err != nil {
		return Readiness{}, fmt.Errorf("route readiness: list stops: %w", err)
	}

	r := Readiness{RouteID: routeID, TotalStops: len(stops)}
	for _, stop := range stops {
		split := &r.Deliveries
		if stop.Type == domain.StopPickup {
			split = &r.Pickups
		}
		split.Total++

		if stop.IsConfirmed {
			r.ConfirmedStops++
			split.Confirmed++
		} else {
			split.Pending++
		}
	}

	r.PendingStops = r.TotalStops - r.ConfirmedStops
	if r.TotalStops > 0 {
		r.ConfirmationRate = float64(r.ConfirmedStops) / float64(r.TotalStops) * 100
	}
	r.ReadyForExecution = r.PendingStops == 0

	return r, nil
}

// SendPickupConfirmations requests confirmation from every pickup stop on
// the route. Best effort: per-stop failures land in the tally and the loop
// continues.
func (w *Workflow) SendPickupConfirmations(ctx context.Context, routeID uuid.UUID) (BatchResult, error) {
	return w.sendBatch(ctx, routeID, func(ctx context.Context, _ domain.Route, stop domain.Stop) (bool, error) {
		return w.RequestConfirmation(ctx, stop)
	}, domain.StopPickup)
}

// SendDeliveryConfirmations requests confirmation from every delivery stop
// on the route.
func (w *Workflow) SendDeliveryConfirmations(ctx context.Context, routeID uuid.UUID) (BatchResult, error) {
	return w.sendBatch(ctx, routeID, func(ctx context.Context, _ domain.Route, stop domain.Stop) (bool, error) {
		return w.RequestConfirmation(ctx, stop)
	}, domain.StopDelivery)
}

// SendScheduleChangeNotifications notifies every stop on the route of a
// schedule change, citing the given reason.
func (w *Workflow) SendScheduleChangeNotifications(ctx context.Context, routeID uuid.UUID, changeReason string) (BatchResult, error) {
	return w.sendBatch(ctx, routeID, func(ctx context.Context, route domain.Route, stop domain.Stop) (bool, error) {
		return w.requestScheduleChange(ctx, route, stop, changeReason)
	}, domain.StopPickup, domain.StopDelivery)
}

func (w *Workflow) sendBatch(
	ctx context.Context,
	routeID uuid.UUID,
	send func(context.Context, domain.Route, domain.Stop) (bool, error),
	types ...domain.StopType,
) (BatchResult, error) {
	route, err := w.Routes.GetRoute(ctx, routeID)
	if err != nil {
		return BatchResult{}, fmt.Errorf("send batch: route %s: %w", routeID, err)
	}

	stops, err := w.Routes.ListStops(ctx, routeID)
	if err != nil {
		return BatchResult{}, fmt.Errorf("send batch: list stops: %w", err)
	}

	wanted := make(map[domain.StopType]bool, len(types))
	for _, t := range types {
		wanted[t] = true
	}

	var result BatchResult
	for _, stop := range stops {
		if !wanted[stop.Type] {
			continue
		}
		result.Total++

		ok, err := send(ctx, route, stop)
		if err != nil {
			// Per-item granularity: one broken stop never aborts the batch.
			log.Printf("batch send failed: route=%s stop=%s err=%v", routeID, stop.StopID, err)
			result.Failed++
			continue
		}
		if !ok {
			result.Failed++
			continue
		}
		result.Sent++
	}

	return result, nil
}
