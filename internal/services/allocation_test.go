package services

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"food-rescue-service/internal/domain"
)

var allocToday = time.Date(2026, 3, 9, 12, 0, 0, 0, time.UTC)

func testBank(id int64, need, capacity float64, selfPickup bool) domain.Bank {
	return domain.Bank{
		BankID:                id,
		Name:                  "bank",
		DailyNeedPounds:       need,
		StorageCapacityPounds: capacity,
		CanSelfPickup:         selfPickup,
		IsActive:              true,
	}
}

func testDonation(weight float64) domain.Donation {
	return domain.Donation{
		DonationID:   uuid.New(),
		WeightPounds: weight,
		Status:       domain.DonationConfirmed,
	}
}

func TestAllocatePrefersHigherNeedWithSelfPickupBonus(t *testing.T) {
	banks := []domain.Bank{
		testBank(1, 600, 1500, false),
		testBank(2, 900, 2400, true),
	}
	donation := testDonation(120)

	alloc := AllocateDonations([]domain.Donation{donation}, banks, allocToday)

	if len(alloc.Unallocated) != 0 {
		t.Fatalf("expected no unallocated donations, got %d", len(alloc.Unallocated))
	}
	if got := len(alloc.Banks[1].Donations); got != 1 {
		t.Fatalf("expected bank 2 to receive the donation, got %d donations", got)
	}
	if alloc.Banks[1].TotalWeightPounds != 120 {
		t.Fatalf("expected bank 2 total weight 120, got %v", alloc.Banks[1].TotalWeightPounds)
	}
}

func TestAllocateSelfPickupBonusOnlyAboveThreshold(t *testing.T) {
	banks := []domain.Bank{
		testBank(1, 500, 10000, false),
		testBank(2, 450, 10000, true),
	}

	// At 40 lb no bonus applies and the higher-need bank wins; at 60 lb
	// the 1.2x bonus flips the choice to the self-pickup bank.
	light := AllocateDonations([]domain.Donation{testDonation(40)}, banks, allocToday)
	if got := len(light.Banks[0].Donations); got != 1 {
		t.Fatalf("expected light donation at bank 1, bank 1 has %d donations", got)
	}

	heavy := AllocateDonations([]domain.Donation{testDonation(60)}, banks, allocToday)
	if got := len(heavy.Banks[1].Donations); got != 1 {
		t.Fatalf("expected heavy donation at bank 2, bank 2 has %d donations", got)
	}
}

func TestAllocateTiesResolveToLowestBankID(t *testing.T) {
	// Identical banks, listed out of id order.
	banks := []domain.Bank{
		testBank(2, 500, 1000, false),
		testBank(1, 500, 1000, false),
	}

	alloc := AllocateDonations([]domain.Donation{testDonation(40)}, banks, allocToday)

	if alloc.Banks[0].Bank.BankID != 1 {
		t.Fatalf("expected banks sorted by id, first is %d", alloc.Banks[0].Bank.BankID)
	}
	if got := len(alloc.Banks[0].Donations); got != 1 {
		t.Fatalf("expected tie to resolve to bank 1, bank 1 has %d donations", got)
	}
}

func TestAllocateUrgentDonationsPlacedFirst(t *testing.T) {
	tomorrow := allocToday.AddDate(0, 0, 1)

	urgent := testDonation(120)
	urgent.ExpirationDate = &tomorrow
	undated := testDonation(100)

	// Capacity fits only one donation; the urgent one must win the slot
	// even though it is listed last.
	banks := []domain.Bank{testBank(1, 500, 150, false)}

	alloc := AllocateDonations([]domain.Donation{undated, urgent}, banks, allocToday)

	if got := len(alloc.Banks[0].Donations); got != 1 {
		t.Fatalf("expected exactly one allocated donation, got %d", got)
	}
	if alloc.Banks[0].Donations[0].DonationID != urgent.DonationID {
		t.Fatal("expected the urgent donation to be allocated first")
	}
	if len(alloc.Unallocated) != 1 || alloc.Unallocated[0].DonationID != undated.DonationID {
		t.Fatal("expected the undated donation to be left unallocated")
	}
}

func TestAllocateZeroTotalNeedLeavesEverythingUnallocated(t *testing.T) {
	banks := []domain.Bank{
		testBank(1, 0, 1000, false),
		testBank(2, 0, 1000, true),
	}
	donations := []domain.Donation{testDonation(50), testDonation(80)}

	alloc := AllocateDonations(donations, banks, allocToday)

	if len(alloc.Unallocated) != 2 {
		t.Fatalf("expected all donations unallocated, got %d", len(alloc.Unallocated))
	}
	for _, ba := range alloc.Banks {
		if len(ba.Donations) != 0 {
			t.Fatalf("expected bank %d to receive nothing", ba.Bank.BankID)
		}
	}
}

func TestAllocateNoBanks(t *testing.T) {
	alloc := AllocateDonations([]domain.Donation{testDonation(50)}, nil, allocToday)
	if len(alloc.Unallocated) != 1 {
		t.Fatalf("expected donation unallocated, got %d", len(alloc.Unallocated))
	}
}

func TestAllocateOversizedDonationSkipsToUnallocated(t *testing.T) {
	banks := []domain.Bank{testBank(1, 500, 200, false)}
	oversized := testDonation(500)
	fits := testDonation(150)

	alloc := AllocateDonations([]domain.Donation{oversized, fits}, banks, allocToday)

	if len(alloc.Unallocated) != 1 || alloc.Unallocated[0].DonationID != oversized.DonationID {
		t.Fatal("expected the oversized donation to be unallocated")
	}
	if got := len(alloc.Banks[0].Donations); got != 1 {
		t.Fatalf("expected the fitting donation to be allocated, bank has %d", got)
	}
}

func TestAllocateEveryDonationAppearsExactlyOnce(t *testing.T) {
	banks := []domain.Bank{
		testBank(1, 400, 300, false),
		testBank(2, 600, 250, true),
	}
	donations := []domain.Donation{
		testDonation(120), testDonation(90), testDonation(200), testDonation(75), testDonation(400),
	}

	alloc := AllocateDonations(donations, banks, allocToday)

	seen := make(map[uuid.UUID]int)
	for _, ba := range alloc.Banks {
		for _, d := range ba.Donations {
			seen[d.DonationID]++
		}
		if ba.TotalWeightPounds > ba.Bank.StorageCapacityPounds {
			t.Fatalf("bank %d over capacity: %v > %v",
				ba.Bank.BankID, ba.TotalWeightPounds, ba.Bank.StorageCapacityPounds)
		}
	}
	for _, d := range alloc.Unallocated {
		seen[d.DonationID]++
	}

	if len(seen) != len(donations) {
		t.Fatalf("expected %d distinct donations, saw %d", len(donations), len(seen))
	}
	for id, count := range seen {
		if count != 1 {
			t.Fatalf("donation %s appeared %d times", id, count)
		}
	}
}

func TestReceivingFiltersEmptyBanks(t *testing.T) {
	banks := []domain.Bank{
		testBank(1, 900, 2000, false),
		testBank(2, 100, 2000, false),
	}

	alloc := AllocateDonations([]domain.Donation{testDonation(50)}, banks, allocToday)

	receiving := alloc.Receiving()
	if len(receiving) != 1 {
		t.Fatalf("expected one receiving bank, got %d", len(receiving))
	}
	if receiving[0].Bank.BankID != 1 {
		t.Fatalf("expected bank 1 to receive, got %d", receiving[0].Bank.BankID)
	}
}
