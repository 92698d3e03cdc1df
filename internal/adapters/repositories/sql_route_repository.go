package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"food-rescue-service/internal/domain"
	"food-rescue-service/internal/ports"
)

// SQLRouteRepository persists routes and stops in Postgres.
type SQLRouteRepository struct {
	DB *sql.DB
}

var _ ports.RouteRepository = (*SQLRouteRepository)(nil)

func NewSQLRouteRepository(db *sql.DB) *SQLRouteRepository {
	return &SQLRouteRepository{DB: db}
}

func (r *SQLRouteRepository) CreateRoute(ctx context.Context, route domain.Route, stops []domain.Stop) error {
	if r.DB == nil {
		return errors.New("create route: DB is nil")
	}

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("create route: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, `
	INSERT INTO routes (route_id, region_id, scheduled_date, driver_team, truck_identifier,
		estimated_duration_minutes, efficiency_score, status, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`, route.RouteID, route.RegionID, route.ScheduledDate, route.DriverTeam, route.TruckIdentifier,
		route.EstimatedDurationMinutes, route.EfficiencyScore, string(route.Status), route.CreatedAt)
	if err != nil {
		return fmt.Errorf("create route: insert route %s: %w", route.RouteID, err)
	}

	stopStmt, err := tx.PrepareContext(ctx, `
	INSERT INTO route_stops (stop_id, route_id, stop_order, stop_type, store_id, bank_id,
		estimated_arrival, estimated_duration_minutes, is_confirmed, confirmed_at, notes)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`)
	if err != nil {
		return fmt.Errorf("create route: prepare stop insert: %w", err)
	}
	defer stopStmt.Close()

	linkStmt, err := tx.PrepareContext(ctx, `
	INSERT INTO stop_donations (stop_id, donation_id) VALUES ($1, $2);
	`)
	if err != nil {
		return fmt.Errorf("create route: prepare stop_donations insert: %w", err)
	}
	defer linkStmt.Close()

	for _, stop := range stops {
		_, err := stopStmt.ExecContext(ctx,
			stop.StopID, stop.RouteID, stop.StopOrder, string(stop.Type), stop.StoreID, stop.BankID,
			stop.EstimatedArrival, stop.EstimatedDurationMinutes, stop.IsConfirmed, stop.ConfirmedAt, stop.Notes)
		if err != nil {
			return fmt.Errorf("create route: insert stop #%d: %w", stop.StopOrder, err)
		}
		for _, donationID := range stop.DonationIDs {
			if _, err := linkStmt.ExecContext(ctx, stop.StopID, donationID); err != nil {
				return fmt.Errorf("create route: link donation %s to stop #%d: %w", donationID, stop.StopOrder, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("create route: commit tx: %w", err)
	}

	return nil
}

func (r *SQLRouteRepository) GetRoute(ctx context.Context, routeID uuid.UUID) (domain.Route, error) {
	if r.DB == nil {
		return domain.Route{}, errors.New("get route: DB is nil")
	}

	var (
		route  domain.Route
		status string
	)
	err := r.DB.QueryRowContext(ctx, `
	SELECT route_id, region_id, scheduled_date, driver_team, truck_identifier,
		estimated_duration_minutes, efficiency_score, status, created_at
	FROM routes
	WHERE route_id = $1;
	`, routeID).Scan(
		&route.RouteID, &route.RegionID, &route.ScheduledDate, &route.DriverTeam, &route.TruckIdentifier,
		&route.EstimatedDurationMinutes, &route.EfficiencyScore, &status, &route.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Route{}, fmt.Errorf("get route %s: %w", routeID, domain.ErrNotFound)
	}
	if err != nil {
		return domain.Route{}, fmt.Errorf("get route %s: query routes table: %w", routeID, err)
	}
	route.Status = domain.RouteStatus(status)

	return route, nil
}

const stopColumns = `stop_id, route_id, stop_order, stop_type, store_id, bank_id,
	estimated_arrival, estimated_duration_minutes, is_confirmed, confirmed_at, notes`

func scanStop(row interface{ Scan(dest ...any) error }) (domain.Stop, error) {
	var (
		stop     domain.Stop
		stopType string
	)
	err := row.Scan(
		&stop.StopID, &stop.RouteID, &stop.StopOrder, &stopType, &stop.StoreID, &stop.BankID,
		&stop.EstimatedArrival, &stop.EstimatedDurationMinutes, &stop.IsConfirmed, &stop.ConfirmedAt, &stop.Notes,
	)
	if err != nil {
		return domain.Stop{}, err
	}
	stop.Type = domain.StopType(stopType)
	return stop, nil
}

func (r *SQLRouteRepository) ListStops(ctx context.Context, routeID uuid.UUID) ([]domain.Stop, error) {
	if r.DB == nil {
		return nil, errors.New("list stops: DB is nil")
	}

	rows, err := r.DB.QueryContext(ctx, `
	SELECT `+stopColumns+`
	FROM route_stops
	WHERE route_id = $1
	ORDER BY stop_order;
	`, routeID)
	if err != nil {
		return nil, fmt.Errorf("list stops: query route_stops table: %w", err)
	}
	defer rows.Close()

	var stops []domain.Stop
	byStop := make(map[uuid.UUID]int)
	for rows.Next() {
		stop, err := scanStop(rows)
		if err != nil {
			return nil, fmt.Errorf("list stops: scan row: %w", err)
		}
		byStop[stop.StopID] = len(stops)
		stops = append(stops, stop)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list stops: iterate rows: %w", err)
	}
	if len(stops) == 0 {
		return stops, nil
	}

	linkRows, err := r.DB.QueryContext(ctx, `
	SELECT sd.stop_id, sd.donation_id
	FROM stop_donations sd
	JOIN route_stops rs ON rs.stop_id = sd.stop_id
	WHERE rs.route_id = $1
	ORDER BY sd.stop_id, sd.donation_id;
	`, routeID)
	if err != nil {
		return nil, fmt.Errorf("list stops: query stop_donations table: %w", err)
	}
	defer linkRows.Close()

	for linkRows.Next() {
		var stopID, donationID uuid.UUID
		if err := linkRows.Scan(&stopID, &donationID); err != nil {
			return nil, fmt.Errorf("list stops: scan stop_donations row: %w", err)
		}
		if i, ok := byStop[stopID]; ok {
			stops[i].DonationIDs = append(stops[i].DonationIDs, donationID)
		}
	}
	if err := linkRows.Err(); err != nil {
		return nil, fmt.Errorf("list stops: iterate stop_donations rows: %w", err)
	}

	return stops, nil
}

func (r *SQLRouteRepository) GetStop(ctx context.Context, stopID uuid.UUID) (domain.Stop, error) {
	if r.DB == nil {
		return domain.Stop{}, errors.New("get stop: DB is nil")
	}

	row := r.DB.QueryRowContext(ctx, `
	SELECT `+stopColumns+`
	FROM route_stops
	WHERE stop_id = $1;
	`, stopID)

	stop, err := scanStop(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Stop{}, fmt.Errorf("get stop %s: %w", stopID, domain.ErrNotFound)
	}
	if err != nil {
		return domain.Stop{}, fmt.Errorf("get stop %s: query route_stops table: %w", stopID, err)
	}

	linkRows, err := r.DB.QueryContext(ctx, `
	SELECT donation_id FROM stop_donations WHERE stop_id = $1 ORDER BY donation_id;
	`, stopID)
	if err != nil {
		return domain.Stop{}, fmt.Errorf("get stop %s: query stop_donations table: %w", stopID, err)
	}
	defer linkRows.Close()

	for linkRows.Next() {
		var donationID uuid.UUID
		if err := linkRows.Scan(&donationID); err != nil {
			return domain.Stop{}, fmt.Errorf("get stop %s: scan stop_donations row: %w", stopID, err)
		}
		stop.DonationIDs = append(stop.DonationIDs, donationID)
	}
	if err := linkRows.Err(); err != nil {
		return domain.Stop{}, fmt.Errorf("get stop %s: iterate stop_donations rows: %w", stopID, err)
	}

	return stop, nil
}

func (r *SQLRouteRepository) ConfirmStop(ctx context.Context, stopID uuid.UUID, confirmedAt time.Time) error {
	if r.DB == nil {
		return errors.New("confirm stop: DB is nil")
	}

	res, err := r.DB.ExecContext(ctx, `
	UPDATE route_stops
	SET is_confirmed = TRUE, confirmed_at = $2
	WHERE stop_id = $1;
	`, stopID, confirmedAt)
	if err != nil {
		return fmt.Errorf("confirm stop %s: update route_stops: %w", stopID, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("confirm stop %s: rows affected: %w", stopID, err)
	}
	if affected == 0 {
		return fmt.Errorf("confirm stop %s: %w", stopID, domain.ErrNotFound)
	}

	return nil
}

func (r *SQLRouteRepository) AppendStopNotes(ctx context.Context, stopID uuid.UUID, note string) error {
	if r.DB == nil {
		return errors.New("append stop notes: DB is nil")
	}

	res, err := r.DB.ExecContext(ctx, `
	UPDATE route_stops
	SET notes = CASE WHEN notes = '' THEN $2 ELSE notes || E'\n' || $2 END
	WHERE stop_id = $1;
	`, stopID, note)
	if err != nil {
		return fmt.Errorf("append stop notes %s: update route_stops: %w", stopID, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("append stop notes %s: rows affected: %w", stopID, err)
	}
	if affected == 0 {
		return fmt.Errorf("append stop notes %s: %w", stopID, domain.ErrNotFound)
	}

	return nil
}
