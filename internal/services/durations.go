package services

import "food-rescue-service/internal/domain"

// Dwell-time estimation constants, in minutes (and minutes per pound).
// Deliveries run longer than pickups: more categories to sort plus a fixed
// unloading/paperwork overhead.
const (
	pickupBaseMinutes     = 10.0
	pickupPerItemMinutes  = 2.0
	pickupPerPoundMinutes = 0.5
	pickupFloorMinutes    = 15

	deliveryBaseMinutes     = 15.0
	deliveryPerItemMinutes  = 3.0
	deliveryPerPoundMinutes = 0.8
	deliveryUnloadMinutes   = 10.0
	deliveryFloorMinutes    = 20
)

func donationTotals(donations []domain.Donation) (itemCount int, totalWeight float64) {
	for _, d := range donations {
		totalWeight += d.WeightPounds
	}
	return len(donations), totalWeight
}

// PickupDuration estimates dwell minutes at a pickup stop from the number of
// donation records and their combined weight. Empty sets yield the floor.
func PickupDuration(donations []domain.Donation) int {
	n, w := donationTotals(donations)
	minutes := int(pickupBaseMinutes + pickupPerItemMinutes*float64(n) + pickupPerPoundMinutes*w)
	if minutes < pickupFloorMinutes {
		return pickupFloorMinutes
	}
	return minutes
}

// DeliveryDuration estimates dwell minutes at a delivery stop.
func DeliveryDuration(donations []domain.Donation) int {
	n, w := donationTotals(donations)
	minutes := int(deliveryBaseMinutes + deliveryPerItemMinutes*float64(n) + deliveryPerPoundMinutes*w + deliveryUnloadMinutes)
	if minutes < deliveryFloorMinutes {
		return deliveryFloorMinutes
	}
	return minutes
}
