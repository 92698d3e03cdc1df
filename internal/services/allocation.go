package services

import (
	"cmp"
	"slices"
	"time"

	"food-rescue-service/internal/domain"
)

// Self-pickup banks earn a score bonus on heavy donations: taking a large
// load off the truck matters more than for small ones.
const (
	selfPickupBonus           = 1.2
	selfPickupWeightThreshold = 50.0
)

// BankAllocation is one bank's share of a planning run.
type BankAllocation struct {
	Bank              domain.Bank
	Donations         []domain.Donation
	TotalWeightPounds float64
}

// Allocation is the result of distributing donations across banks. A
// donation appears in exactly one bank's list or in Unallocated, never both
// and never twice.
type Allocation struct {
	Banks       []BankAllocation
	Unallocated []domain.Donation
}

// AllocateDonations distributes donations across banks using a greedy
// weighted heuristic: most urgent donations are placed first, each going to
// the eligible bank with the best blend of relative need and spare capacity.
//
// Banks are scored in ascending BankID order and a strictly better score is
// required to displace the incumbent, so ties resolve to the lowest id —
// a fixed, deterministic order rather than map-iteration chance.
//
// A donation no bank can hold lands in Unallocated; that is planning data,
// not an error. Zero total daily need means no meaningful preference exists,
// so everything is left unallocated.
func AllocateDonations(donations []domain.Donation, banks []domain.Bank, today time.Time) Allocation {
	ordered := make([]domain.Bank, len(banks))
	copy(ordered, banks)
	slices.SortFunc(ordered, func(a, b domain.Bank) int {
		return cmp.Compare(a.BankID, b.BankID)
	})

	alloc := Allocation{Banks: make([]BankAllocation, len(ordered))}
	for i, bank := range ordered {
		alloc.Banks[i] = BankAllocation{Bank: bank}
	}

	var totalDailyNeed float64
	for _, bank := range ordered {
		totalDailyNeed += bank.DailyNeedPounds
	}

	// Most urgent first: nearest expiration/sell-by date wins, undated
	// donations sort to the back.
	sorted := make([]domain.Donation, len(donations))
	copy(sorted, donations)
	slices.SortStableFunc(sorted, func(a, b domain.Donation) int {
		return a.UrgencyKey(today).Compare(b.UrgencyKey(today))
	})

	if len(ordered) == 0 || totalDailyNeed <= 0 {
		alloc.Unallocated = sorted
		return alloc
	}

	for _, donation := range sorted {
		best := -1
		bestScore := -1.0

		for i := range alloc.Banks {
			bank := alloc.Banks[i].Bank
			remaining := bank.StorageCapacityPounds - alloc.Banks[i].TotalWeightPounds
			if remaining < donation.WeightPounds {
				continue
			}

			needRatio := bank.DailyNeedPounds / totalDailyNeed
			utilization := alloc.Banks[i].TotalWeightPounds / bank.StorageCapacityPounds
			score := needRatio * (1 - utilization)

			if bank.CanSelfPickup && donation.WeightPounds > selfPickupWeightThreshold {
				score *= selfPickupBonus
			}

			if score > bestScore {
				bestScore = score
				best = i
			}
		}

		if best < 0 {
			alloc.Unallocated = append(alloc.Unallocated, donation)
			continue
		}

		alloc.Banks[best].Donations = append(alloc.Banks[best].Donations, donation)
		alloc.Banks[best].TotalWeightPounds += donation.WeightPounds
	}

	return alloc
}

// Receiving returns only the banks that were actually allocated donations,
// preserving allocation order.
func (a Allocation) Receiving() []BankAllocation {
	out := make([]BankAllocation, 0, len(a.Banks))
	for _, ba := range a.Banks {
		if len(ba.Donations) > 0 {
			out = append(out, ba)
		}
	}
	return out
}
