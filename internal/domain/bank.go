package domain

// Bank is a food bank receiving deliveries. DailyNeedPounds and
// StorageCapacityPounds drive the allocation score; CanSelfPickup earns a
// bonus for heavy donations because it may take future load off the truck.
type Bank struct {
	BankID        int64
	RegionID      int64
	Name          string
	ContactPerson string
	Email         string
	Phone         string
	Address       string
	Location      Coordinates

	DailyNeedPounds       float64
	StorageCapacityPounds float64
	CanSelfPickup         bool

	IsActive bool
}

func (b Bank) Coordinate() Coordinates { return b.Location }
