package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// DonationStatus tracks a donation through its lifecycle:
// pending -> confirmed -> picked_up -> delivered, with cancelled reachable
// from any non-terminal state.
type DonationStatus string

const (
	DonationPending   DonationStatus = "pending"
	DonationConfirmed DonationStatus = "confirmed"
	DonationPickedUp  DonationStatus = "picked_up"
	DonationDelivered DonationStatus = "delivered"
	DonationCancelled DonationStatus = "cancelled"
)

// Terminal reports whether no further transitions are allowed.
func (s DonationStatus) Terminal() bool {
	return s == DonationDelivered || s == DonationCancelled
}

// CanTransition reports whether moving from s to next is a legal lifecycle step.
func (s DonationStatus) CanTransition(next DonationStatus) bool {
	if next == DonationCancelled {
		return !s.Terminal()
	}
	switch s {
	case DonationPending:
		return next == DonationConfirmed
	case DonationConfirmed:
		return next == DonationPickedUp
	case DonationPickedUp:
		return next == DonationDelivered
	default:
		return false
	}
}

// Donation is a quantity of surplus food offered by a grocery store.
// WeightPounds must be positive; donations are validated at the planning
// boundary before any route math runs.
type Donation struct {
	DonationID     uuid.UUID
	StoreID        int64
	Category       string
	Description    string
	WeightPounds   float64
	ExpirationDate *time.Time
	SellByDate     *time.Time
	Status         DonationStatus
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Validate enforces the positive-weight invariant.
func (d Donation) Validate() error {
	if d.WeightPounds <= 0 {
		return fmt.Errorf("donation %s: weight must be positive, got %v", d.DonationID, d.WeightPounds)
	}
	return nil
}

// farFutureDays is the sort horizon for donations with no dated label.
const farFutureDays = 365

// UrgencyKey returns the date used to order donations for allocation: the
// earliest of expiration and sell-by, or today+365d when neither is set.
func (d Donation) UrgencyKey(today time.Time) time.Time {
	key := today.AddDate(0, 0, farFutureDays)
	if d.ExpirationDate != nil && d.ExpirationDate.Before(key) {
		key = *d.ExpirationDate
	}
	if d.SellByDate != nil && d.SellByDate.Before(key) {
		key = *d.SellByDate
	}
	return key
}

// IsUrgent reports whether the donation is close enough to its dated labels
// that it should be rescued in the next planning cycle: expiration within
// 2 days or sell-by within 1 day of today.
func (d Donation) IsUrgent(today time.Time) bool {
	if d.ExpirationDate != nil && !d.ExpirationDate.After(today.AddDate(0, 0, 2)) {
		return true
	}
	if d.SellByDate != nil && !d.SellByDate.After(today.AddDate(0, 0, 1)) {
		return true
	}
	return false
}
