package dto

import "time"

type PlanRequest struct {
	RegionID int64 `json:"region_id"`

	// Target date in "2006-01-02" form; empty means tomorrow.
	TargetDate string `json:"target_date,omitempty"`
}

type DonationResponse struct {
	DonationID   string  `json:"donation_id"`
	Category     string  `json:"category"`
	Description  string  `json:"description,omitempty"`
	WeightPounds float64 `json:"weight_pounds"`
}

type PickupStopResponse struct {
	StoreID           int64              `json:"store_id"`
	StoreName         string             `json:"store_name"`
	ArriveAt          time.Time          `json:"arrive_at"`
	TravelMinutes     int                `json:"travel_minutes"`
	DurationMinutes   int                `json:"duration_minutes"`
	TotalWeightPounds float64            `json:"total_weight_pounds"`
	Donations         []DonationResponse `json:"donations"`
}

type DeliveryStopResponse struct {
	BankID            int64              `json:"bank_id"`
	BankName          string             `json:"bank_name"`
	ArriveAt          time.Time          `json:"arrive_at"`
	TravelMinutes     int                `json:"travel_minutes"`
	DurationMinutes   int                `json:"duration_minutes"`
	TotalWeightPounds float64            `json:"total_weight_pounds"`
	Donations         []DonationResponse `json:"donations"`
}

type PlanResponse struct {
	RegionID             int64                  `json:"region_id"`
	TargetDate           string                 `json:"target_date"`
	Pickups              []PickupStopResponse   `json:"pickups"`
	Deliveries           []DeliveryStopResponse `json:"deliveries"`
	Unallocated          []DonationResponse     `json:"unallocated"`
	TotalWeightPounds    float64                `json:"total_weight_pounds"`
	TotalDurationMinutes int                    `json:"total_duration_minutes"`
	EstimatedCompletion  *time.Time             `json:"estimated_completion,omitempty"`
	WithinCapacity       bool                   `json:"within_capacity"`
	WithinTimeLimit      bool                   `json:"within_time_limit"`
	EfficiencyScore      float64                `json:"efficiency_score"`
}
