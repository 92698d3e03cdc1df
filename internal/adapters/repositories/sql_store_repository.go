package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"food-rescue-service/internal/domain"
	"food-rescue-service/internal/ports"
)

// SQLStoreRepository reads grocery stores from Postgres.
type SQLStoreRepository struct {
	DB *sql.DB
}

var _ ports.StoreRepository = (*SQLStoreRepository)(nil)

func NewSQLStoreRepository(db *sql.DB) *SQLStoreRepository {
	return &SQLStoreRepository{DB: db}
}

const storeColumns = `store_id, region_id, name, contact_person, email, phone, address,
	lat, lon, pickup_window_start, pickup_window_end, is_active`

func scanStore(row interface{ Scan(dest ...any) error }) (domain.Store, error) {
	var s domain.Store
	err := row.Scan(
		&s.StoreID, &s.RegionID, &s.Name, &s.ContactPerson, &s.Email, &s.Phone, &s.Address,
		&s.Location.Lat, &s.Location.Lon, &s.PickupWindowStart, &s.PickupWindowEnd, &s.IsActive,
	)
	return s, err
}

func (r *SQLStoreRepository) GetStore(ctx context.Context, storeID int64) (domain.Store, error) {
	if r.DB == nil {
		return domain.Store{}, errors.New("get store: DB is nil")
	}

	row := r.DB.QueryRowContext(ctx, `
	SELECT `+storeColumns+`
	FROM grocery_stores
	WHERE store_id = $1;
	`, storeID)

	s, err := scanStore(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Store{}, fmt.Errorf("get store %d: %w", storeID, domain.ErrNotFound)
	}
	if err != nil {
		return domain.Store{}, fmt.Errorf("get store %d: query grocery_stores table: %w", storeID, err)
	}

	return s, nil
}

func (r *SQLStoreRepository) ListActiveStores(ctx context.Context, regionID int64) ([]domain.Store, error) {
	if r.DB == nil {
		return nil, errors.New("list active stores: DB is nil")
	}

	rows, err := r.DB.QueryContext(ctx, `
	SELECT `+storeColumns+`
	FROM grocery_stores
	WHERE region_id = $1 AND is_active
	ORDER BY store_id;
	`, regionID)
	if err != nil {
		return nil, fmt.Errorf("list active stores: query grocery_stores table: %w", err)
	}
	defer rows.Close()

	var stores []domain.Store
	for rows.Next() {
		s, err := scanStore(rows)
		if err != nil {
			return nil, fmt.Errorf("list active stores: scan row: %w", err)
		}
		stores = append(stores, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list active stores: iterate rows: %w", err)
	}

	return stores, nil
}
