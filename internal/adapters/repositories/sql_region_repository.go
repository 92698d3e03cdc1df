package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"food-rescue-service/internal/domain"
	"food-rescue-service/internal/ports"
)

// SQLRegionRepository reads routing regions from Postgres.
type SQLRegionRepository struct {
	DB *sql.DB
}

var _ ports.RegionRepository = (*SQLRegionRepository)(nil)

func NewSQLRegionRepository(db *sql.DB) *SQLRegionRepository {
	return &SQLRegionRepository{DB: db}
}

func (r *SQLRegionRepository) GetRegion(ctx context.Context, regionID int64) (domain.Region, error) {
	if r.DB == nil {
		return domain.Region{}, errors.New("get region: DB is nil")
	}

	var reg domain.Region
	err := r.DB.QueryRowContext(ctx, `
	SELECT region_id, name, center_lat, center_lon, radius_miles, truck_capacity_pounds, is_active
	FROM regions
	WHERE region_id = $1;
	`, regionID).Scan(
		&reg.RegionID, &reg.Name, &reg.Depot.Lat, &reg.Depot.Lon,
		&reg.RadiusMiles, &reg.TruckCapacityPounds, &reg.IsActive,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Region{}, fmt.Errorf("get region %d: %w", regionID, domain.ErrNotFound)
	}
	if err != nil {
		return domain.Region{}, fmt.Errorf("get region %d: query regions table: %w", regionID, err)
	}

	return reg, nil
}
