package domain

// Store is a grocery store donating surplus food; pickups happen here.
type Store struct {
	StoreID       int64
	RegionID      int64
	Name          string
	ContactPerson string
	Email         string
	Phone         string
	Address       string
	Location      Coordinates

	// Preferred pickup window, "HH:MM" local time.
	PickupWindowStart string
	PickupWindowEnd   string

	IsActive bool
}

func (s Store) Coordinate() Coordinates { return s.Location }
