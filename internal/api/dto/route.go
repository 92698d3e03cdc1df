package dto

import "time"

type CreateRouteRequest struct {
	RegionID        int64  `json:"region_id"`
	TargetDate      string `json:"target_date,omitempty"`
	DriverTeam      string `json:"driver_team,omitempty"`
	TruckIdentifier string `json:"truck_identifier,omitempty"`
}

type StopResponse struct {
	StopID           string     `json:"stop_id"`
	StopOrder        int        `json:"stop_order"`
	StopType         string     `json:"stop_type"`
	StoreID          *int64     `json:"store_id,omitempty"`
	BankID           *int64     `json:"bank_id,omitempty"`
	DonationIDs      []string   `json:"donation_ids"`
	EstimatedArrival time.Time  `json:"estimated_arrival"`
	DurationMinutes  int        `json:"duration_minutes"`
	IsConfirmed      bool       `json:"is_confirmed"`
	ConfirmedAt      *time.Time `json:"confirmed_at,omitempty"`
	Notes            string     `json:"notes,omitempty"`
}

type RouteResponse struct {
	RouteID                  string         `json:"route_id"`
	RegionID                 int64          `json:"region_id"`
	ScheduledDate            string         `json:"scheduled_date"`
	DriverTeam               string         `json:"driver_team,omitempty"`
	TruckIdentifier          string         `json:"truck_identifier,omitempty"`
	EstimatedDurationMinutes int            `json:"estimated_duration_minutes"`
	EfficiencyScore          float64        `json:"efficiency_score"`
	Status                   string         `json:"status"`
	Stops                    []StopResponse `json:"stops"`
}
