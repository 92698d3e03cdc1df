package domain

import (
	"testing"
	"time"
)

var today = time.Date(2026, 3, 9, 12, 0, 0, 0, time.UTC)

func datePtr(t time.Time) *time.Time { return &t }

func TestStatusCanTransition(t *testing.T) {
	cases := []struct {
		from DonationStatus
		to   DonationStatus
		ok   bool
	}{
		{DonationPending, DonationConfirmed, true},
		{DonationConfirmed, DonationPickedUp, true},
		{DonationPickedUp, DonationDelivered, true},
		{DonationPending, DonationCancelled, true},
		{DonationPickedUp, DonationCancelled, true},
		{DonationPending, DonationPickedUp, false},
		{DonationConfirmed, DonationDelivered, false},
		{DonationDelivered, DonationCancelled, false},
		{DonationCancelled, DonationConfirmed, false},
		{DonationDelivered, DonationPending, false},
	}

	for _, tc := range cases {
		if got := tc.from.CanTransition(tc.to); got != tc.ok {
			t.Errorf("%s -> %s: expected %v, got %v", tc.from, tc.to, tc.ok, got)
		}
	}
}

func TestStatusTerminal(t *testing.T) {
	if !DonationDelivered.Terminal() || !DonationCancelled.Terminal() {
		t.Fatal("delivered and cancelled are terminal")
	}
	if DonationPending.Terminal() || DonationPickedUp.Terminal() {
		t.Fatal("pending and picked_up are not terminal")
	}
}

func TestUrgencyKeyPicksEarliestDate(t *testing.T) {
	exp := today.AddDate(0, 0, 5)
	sellBy := today.AddDate(0, 0, 2)

	d := Donation{ExpirationDate: datePtr(exp), SellByDate: datePtr(sellBy)}
	if got := d.UrgencyKey(today); !got.Equal(sellBy) {
		t.Fatalf("expected sell-by date, got %v", got)
	}

	d = Donation{ExpirationDate: datePtr(exp)}
	if got := d.UrgencyKey(today); !got.Equal(exp) {
		t.Fatalf("expected expiration date, got %v", got)
	}
}

func TestUrgencyKeyUndatedSortsToBack(t *testing.T) {
	undated := Donation{}
	dated := Donation{ExpirationDate: datePtr(today.AddDate(0, 0, 300))}

	if !dated.UrgencyKey(today).Before(undated.UrgencyKey(today)) {
		t.Fatal("a dated donation must sort before an undated one")
	}
}

func TestIsUrgent(t *testing.T) {
	cases := []struct {
		name string
		d    Donation
		want bool
	}{
		{"expires in two days", Donation{ExpirationDate: datePtr(today.AddDate(0, 0, 2))}, true},
		{"expires in three days", Donation{ExpirationDate: datePtr(today.AddDate(0, 0, 3))}, false},
		{"sell-by tomorrow", Donation{SellByDate: datePtr(today.AddDate(0, 0, 1))}, true},
		{"sell-by in two days", Donation{SellByDate: datePtr(today.AddDate(0, 0, 2))}, false},
		{"undated", Donation{}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.d.IsUrgent(today); got != tc.want {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestDonationValidate(t *testing.T) {
	if err := (Donation{WeightPounds: 10}).Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := (Donation{WeightPounds: 0}).Validate(); err == nil {
		t.Fatal("expected error for zero weight")
	}
	if err := (Donation{WeightPounds: -5}).Validate(); err == nil {
		t.Fatal("expected error for negative weight")
	}
}
