package domain

import "time"

// MaxRouteDuration is the fixed daily driving window (08:00-12:00).
const MaxRouteDuration = 4 * time.Hour

// RouteStartHour is the hour of day at which every route departs the depot.
const RouteStartHour = 8

// Region is the allocation and routing scope: one depot, one truck, one
// route per day.
type Region struct {
	RegionID            int64
	Name                string
	Depot               Coordinates
	RadiusMiles         int
	TruckCapacityPounds float64
	IsActive            bool
}

func (r Region) Coordinate() Coordinates { return r.Depot }
