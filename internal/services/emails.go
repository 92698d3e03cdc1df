package services

import (
	"fmt"
	"strings"

	"food-rescue-service/internal/domain"
)

// Email content for the confirmation handshake. Recipients reply with
// "CONFIRMED" or "RESCHEDULE"; RecordResponse classifies those replies.

func pickupConfirmationSubject(route domain.Route) string {
	return fmt.Sprintf("Pickup Confirmation Required - %s", route.ScheduledDate.Format("2006-01-02"))
}

func deliveryConfirmationSubject(route domain.Route) string {
	return fmt.Sprintf("Delivery Schedule Confirmation - %s", route.ScheduledDate.Format("2006-01-02"))
}

func scheduleChangeSubject(route domain.Route) string {
	return fmt.Sprintf("Schedule Change Notification - %s", route.ScheduledDate.Format("2006-01-02"))
}

func pickupConfirmationBody(route domain.Route, stop domain.Stop, store domain.Store, donations []domain.Donation) string {
	var items strings.Builder
	var totalWeight float64
	for _, d := range donations {
		fmt.Fprintf(&items, "- %s: %s (%.1f lbs)\n", d.Category, d.Description, d.WeightPounds)
		totalWeight += d.WeightPounds
	}

	return strings.TrimSpace(fmt.Sprintf(`Dear %s,

We have scheduled a pickup from your store.

PICKUP DETAILS:
- Store: %s
- Date: %s
- Estimated Arrival Time: %s
- Estimated Duration: %d minutes
- Driver Team: %s
- Truck: %s

ITEMS TO PICKUP:
%s
Total Weight: %.1f lbs

CONFIRMATION REQUIRED:
Please confirm this pickup time by replying to this email with:
- "CONFIRMED" if the time works for you
- "RESCHEDULE" with alternative times if needed
- Any special instructions for our driver team

Thank you for helping reduce food waste in our community!

Food Rescue Hub Team
Route ID: %s
Stop ID: %s`,
		store.ContactPerson,
		store.Name,
		route.ScheduledDate.Format("Monday, January 2, 2006"),
		stop.EstimatedArrival.Format("3:04 PM"),
		stop.EstimatedDurationMinutes,
		route.DriverTeam,
		route.TruckIdentifier,
		items.String(),
		totalWeight,
		route.RouteID,
		stop.StopID,
	))
}

func deliveryConfirmationBody(route domain.Route, stop domain.Stop, bank domain.Bank, donations []domain.Donation) string {
	// Group by category so receiving staff can plan storage.
	weightByCategory := map[string]float64{}
	var categories []string
	var totalWeight float64
	for _, d := range donations {
		if _, seen := weightByCategory[d.Category]; !seen {
			categories = append(categories, d.Category)
		}
		weightByCategory[d.Category] += d.WeightPounds
		totalWeight += d.WeightPounds
	}

	var items strings.Builder
	for _, c := range categories {
		fmt.Fprintf(&items, "- %s: %.1f lbs\n", c, weightByCategory[c])
	}

	return strings.TrimSpace(fmt.Sprintf(`Dear %s,

We have scheduled a food delivery to your food bank.

DELIVERY DETAILS:
- Food Bank: %s
- Date: %s
- Estimated Arrival Time: %s
- Estimated Duration: %d minutes
- Driver Team: %s
- Truck: %s

FOOD ITEMS TO DELIVER:
%s
Total Weight: %.1f lbs

CONFIRMATION REQUIRED:
Please confirm this delivery time by replying to this email with:
- "CONFIRMED" if the time works for you
- "RESCHEDULE" with alternative times if needed
- Any special receiving instructions

Please ensure you have adequate storage space and staff available to
receive the delivery. Refrigerated items should be stored immediately.

Thank you for serving our community!

Food Rescue Hub Team
Route ID: %s
Stop ID: %s`,
		bank.ContactPerson,
		bank.Name,
		route.ScheduledDate.Format("Monday, January 2, 2006"),
		stop.EstimatedArrival.Format("3:04 PM"),
		stop.EstimatedDurationMinutes,
		route.DriverTeam,
		route.TruckIdentifier,
		items.String(),
		totalWeight,
		route.RouteID,
		stop.StopID,
	))
}

func scheduleChangeBody(route domain.Route, stop domain.Stop, contactPerson, changeReason string) string {
	action := "delivery"
	if stop.Type == domain.StopPickup {
		action = "pickup"
	}

	return strings.TrimSpace(fmt.Sprintf(`Dear %s,

This is an important notification regarding a schedule change for your %s appointment.

ORIGINAL SCHEDULE:
- Date: %s
- Time: %s

CHANGE REASON:
%s

NEW SCHEDULE:
We will contact you shortly with the updated schedule information.

Please confirm your availability for alternative times by replying to this
email or calling us directly.

We apologize for any inconvenience and appreciate your flexibility.

Food Rescue Hub Team
Route ID: %s`,
		contactPerson,
		action,
		route.ScheduledDate.Format("Monday, January 2, 2006"),
		stop.EstimatedArrival.Format("3:04 PM"),
		changeReason,
		route.RouteID,
	))
}
