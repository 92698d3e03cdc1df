package repositories

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
)

// Initialize the database schema.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	statements := []string{
		`
	CREATE TABLE IF NOT EXISTS regions (
		region_id BIGSERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		center_lat DOUBLE PRECISION NOT NULL,
		center_lon DOUBLE PRECISION NOT NULL,
		radius_miles INTEGER NOT NULL DEFAULT 35,
		truck_capacity_pounds DOUBLE PRECISION NOT NULL DEFAULT 2000,
		is_active BOOLEAN NOT NULL DEFAULT TRUE
	);
	`,
		`
	CREATE TABLE IF NOT EXISTS grocery_stores (
		store_id BIGSERIAL PRIMARY KEY,
		region_id BIGINT NOT NULL REFERENCES regions(region_id),
		name TEXT NOT NULL,
		contact_person TEXT NOT NULL DEFAULT '',
		email TEXT NOT NULL,
		phone TEXT NOT NULL DEFAULT '',
		address TEXT NOT NULL DEFAULT '',
		lat DOUBLE PRECISION NOT NULL,
		lon DOUBLE PRECISION NOT NULL,
		pickup_window_start TEXT NOT NULL DEFAULT '08:00',
		pickup_window_end TEXT NOT NULL DEFAULT '12:00',
		is_active BOOLEAN NOT NULL DEFAULT TRUE
	);
	`,
		`
	CREATE TABLE IF NOT EXISTS food_banks (
		bank_id BIGSERIAL PRIMARY KEY,
		region_id BIGINT NOT NULL REFERENCES regions(region_id),
		name TEXT NOT NULL,
		contact_person TEXT NOT NULL DEFAULT '',
		email TEXT NOT NULL,
		phone TEXT NOT NULL DEFAULT '',
		address TEXT NOT NULL DEFAULT '',
		lat DOUBLE PRECISION NOT NULL,
		lon DOUBLE PRECISION NOT NULL,
		daily_need_pounds DOUBLE PRECISION NOT NULL,
		storage_capacity_pounds DOUBLE PRECISION NOT NULL,
		can_self_pickup BOOLEAN NOT NULL DEFAULT FALSE,
		is_active BOOLEAN NOT NULL DEFAULT TRUE
	);
	`,
		`
	CREATE TABLE IF NOT EXISTS donations (
		donation_id UUID PRIMARY KEY,
		store_id BIGINT NOT NULL REFERENCES grocery_stores(store_id),
		category TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		weight_pounds DOUBLE PRECISION NOT NULL CHECK (weight_pounds > 0),
		expiration_date DATE,
		sell_by_date DATE,
		status TEXT NOT NULL DEFAULT 'pending',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);
	`,
		`
	CREATE TABLE IF NOT EXISTS routes (
		route_id UUID PRIMARY KEY,
		region_id BIGINT NOT NULL REFERENCES regions(region_id),
		scheduled_date DATE NOT NULL,
		driver_team TEXT NOT NULL DEFAULT '',
		truck_identifier TEXT NOT NULL DEFAULT '',
		estimated_duration_minutes INTEGER NOT NULL DEFAULT 0,
		efficiency_score DOUBLE PRECISION NOT NULL DEFAULT 0,
		status TEXT NOT NULL DEFAULT 'planned',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);
	`,
		`
	CREATE TABLE IF NOT EXISTS route_stops (
		stop_id UUID PRIMARY KEY,
		route_id UUID NOT NULL REFERENCES routes(route_id),
		stop_order INTEGER NOT NULL,
		stop_type TEXT NOT NULL,
		store_id BIGINT REFERENCES grocery_stores(store_id),
		bank_id BIGINT REFERENCES food_banks(bank_id),
		estimated_arrival TIMESTAMPTZ NOT NULL,
		estimated_duration_minutes INTEGER NOT NULL DEFAULT 15,
		is_confirmed BOOLEAN NOT NULL DEFAULT FALSE,
		confirmed_at TIMESTAMPTZ,
		notes TEXT NOT NULL DEFAULT '',
		UNIQUE (route_id, stop_order)
	);
	`,
		`
	CREATE TABLE IF NOT EXISTS stop_donations (
		stop_id UUID NOT NULL REFERENCES route_stops(stop_id),
		donation_id UUID NOT NULL REFERENCES donations(donation_id),
		PRIMARY KEY (stop_id, donation_id)
	);
	`,
		`
	CREATE TABLE IF NOT EXISTS notifications (
		notification_id UUID PRIMARY KEY,
		notification_type TEXT NOT NULL,
		recipient_email TEXT NOT NULL,
		subject TEXT NOT NULL,
		message_body TEXT NOT NULL,
		stop_id UUID REFERENCES route_stops(stop_id),
		donation_id UUID REFERENCES donations(donation_id),
		is_sent BOOLEAN NOT NULL DEFAULT FALSE,
		sent_at TIMESTAMPTZ,
		response_received BOOLEAN NOT NULL DEFAULT FALSE,
		response_content TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);
	`,
		`
	CREATE INDEX IF NOT EXISTS idx_route_stops_route_order
	ON route_stops(route_id, stop_order);
	`,
		`
	CREATE INDEX IF NOT EXISTS idx_notifications_stop_sent
	ON notifications(stop_id, sent_at);
	`,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

type RegionSeed struct {
	Name                string  `json:"name"`
	CenterLat           float64 `json:"center_lat"`
	CenterLon           float64 `json:"center_lon"`
	RadiusMiles         int     `json:"radius_miles"`
	TruckCapacityPounds float64 `json:"truck_capacity_pounds"`
}

type StoreSeed struct {
	Name          string  `json:"name"`
	ContactPerson string  `json:"contact_person"`
	Email         string  `json:"email"`
	Phone         string  `json:"phone"`
	Address       string  `json:"address"`
	Lat           float64 `json:"lat"`
	Lon           float64 `json:"lon"`
}

type BankSeed struct {
	Name                  string  `json:"name"`
	ContactPerson         string  `json:"contact_person"`
	Email                 string  `json:"email"`
	Phone                 string  `json:"phone"`
	Address               string  `json:"address"`
	Lat                   float64 `json:"lat"`
	Lon                   float64 `json:"lon"`
	DailyNeedPounds       float64 `json:"daily_need_pounds"`
	StorageCapacityPounds float64 `json:"storage_capacity_pounds"`
	CanSelfPickup         bool    `json:"can_self_pickup"`
}

type DonationSeed struct {
	Store          string  `json:"store"`
	Category       string  `json:"category"`
	Description    string  `json:"description"`
	WeightPounds   float64 `json:"weight_pounds"`
	ExpirationDate string  `json:"expiration_date"`
	SellByDate     string  `json:"sell_by_date"`
	Status         string  `json:"status"`
}

type NetworkSeed struct {
	Region    RegionSeed     `json:"region"`
	Stores    []StoreSeed    `json:"stores"`
	Banks     []BankSeed     `json:"banks"`
	Donations []DonationSeed `json:"donations"`
}

// Populate the database with a demo region network from a JSON file.
func SeedFromJSON(db *sql.DB, jsonPath string) error {
	raw, err := os.ReadFile(jsonPath)
	if err != nil {
		return fmt.Errorf("seed network: read %q: %w", jsonPath, err)
	}

	var seed NetworkSeed
	if err := json.Unmarshal(raw, &seed); err != nil {
		return fmt.Errorf("seed network: parse json: %w", err)
	}

	if strings.TrimSpace(seed.Region.Name) == "" {
		return errors.New("seed network: region name cannot be empty")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("seed network: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var regionID int64
	err = tx.QueryRow(`
	INSERT INTO regions (name, center_lat, center_lon, radius_miles, truck_capacity_pounds)
	VALUES ($1, $2, $3, $4, $5)
	RETURNING region_id;
	`, seed.Region.Name, seed.Region.CenterLat, seed.Region.CenterLon,
		seed.Region.RadiusMiles, seed.Region.TruckCapacityPounds).Scan(&regionID)
	if err != nil {
		return fmt.Errorf("seed network: insert region %q: %w", seed.Region.Name, err)
	}

	storeIDs := make(map[string]int64, len(seed.Stores))
	for _, s := range seed.Stores {
		if strings.TrimSpace(s.Name) == "" {
			return errors.New("seed network: store name cannot be empty")
		}
		var id int64
		err := tx.QueryRow(`
		INSERT INTO grocery_stores (region_id, name, contact_person, email, phone, address, lat, lon)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING store_id;
		`, regionID, s.Name, s.ContactPerson, s.Email, s.Phone, s.Address, s.Lat, s.Lon).Scan(&id)
		if err != nil {
			return fmt.Errorf("seed network: insert store %q: %w", s.Name, err)
		}
		storeIDs[s.Name] = id
	}

	for _, b := range seed.Banks {
		if strings.TrimSpace(b.Name) == "" {
			return errors.New("seed network: bank name cannot be empty")
		}
		_, err := tx.Exec(`
		INSERT INTO food_banks (region_id, name, contact_person, email, phone, address, lat, lon,
			daily_need_pounds, storage_capacity_pounds, can_self_pickup)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
		`, regionID, b.Name, b.ContactPerson, b.Email, b.Phone, b.Address, b.Lat, b.Lon,
			b.DailyNeedPounds, b.StorageCapacityPounds, b.CanSelfPickup)
		if err != nil {
			return fmt.Errorf("seed network: insert bank %q: %w", b.Name, err)
		}
	}

	for i, d := range seed.Donations {
		storeID, ok := storeIDs[d.Store]
		if !ok {
			return fmt.Errorf("seed network: donation #%d references unknown store %q", i+1, d.Store)
		}
		if d.WeightPounds <= 0 {
			return fmt.Errorf("seed network: donation #%d: weight must be positive", i+1)
		}

		status := d.Status
		if status == "" {
			status = "confirmed"
		}

		_, err := tx.Exec(`
		INSERT INTO donations (donation_id, store_id, category, description, weight_pounds,
			expiration_date, sell_by_date, status)
		VALUES (gen_random_uuid(), $1, $2, $3, $4, NULLIF($5, '')::date, NULLIF($6, '')::date, $7);
		`, storeID, d.Category, d.Description, d.WeightPounds, d.ExpirationDate, d.SellByDate, status)
		if err != nil {
			return fmt.Errorf("seed network: insert donation #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed network: commit tx: %w", err)
	}

	return nil
}
