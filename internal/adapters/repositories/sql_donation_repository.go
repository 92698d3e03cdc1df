package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"food-rescue-service/internal/domain"
	"food-rescue-service/internal/ports"
)

// SQLDonationRepository reads donations from Postgres.
type SQLDonationRepository struct {
	DB *sql.DB
}

var _ ports.DonationRepository = (*SQLDonationRepository)(nil)

func NewSQLDonationRepository(db *sql.DB) *SQLDonationRepository {
	return &SQLDonationRepository{DB: db}
}

const donationColumns = `donation_id, store_id, category, description, weight_pounds,
	expiration_date, sell_by_date, status, created_at, updated_at`

func scanDonation(row interface{ Scan(dest ...any) error }) (domain.Donation, error) {
	var (
		d      domain.Donation
		id     string
		status string
	)
	err := row.Scan(
		&id, &d.StoreID, &d.Category, &d.Description, &d.WeightPounds,
		&d.ExpirationDate, &d.SellByDate, &status, &d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		return domain.Donation{}, err
	}
	d.DonationID, err = uuid.Parse(id)
	if err != nil {
		return domain.Donation{}, fmt.Errorf("parse donation id %q: %w", id, err)
	}
	d.Status = domain.DonationStatus(status)
	return d, nil
}

// ListConfirmedDonations returns confirmed donations at the region's active
// stores that no route stop has claimed yet.
func (r *SQLDonationRepository) ListConfirmedDonations(ctx context.Context, regionID int64) ([]domain.Donation, error) {
	if r.DB == nil {
		return nil, errors.New("list confirmed donations: DB is nil")
	}

	rows, err := r.DB.QueryContext(ctx, `
	SELECT `+donationColumns+`
	FROM donations
	WHERE status = 'confirmed'
	  AND store_id IN (SELECT store_id FROM grocery_stores WHERE region_id = $1 AND is_active)
	  AND donation_id NOT IN (SELECT donation_id FROM stop_donations)
	ORDER BY created_at, donation_id;
	`, regionID)
	if err != nil {
		return nil, fmt.Errorf("list confirmed donations: query donations table: %w", err)
	}
	defer rows.Close()

	return collectDonations(rows, "list confirmed donations")
}

func (r *SQLDonationRepository) GetDonations(ctx context.Context, donationIDs []uuid.UUID) ([]domain.Donation, error) {
	if r.DB == nil {
		return nil, errors.New("get donations: DB is nil")
	}
	if len(donationIDs) == 0 {
		return nil, nil
	}

	ids := make([]string, len(donationIDs))
	for i, id := range donationIDs {
		ids[i] = id.String()
	}

	rows, err := r.DB.QueryContext(ctx, `
	SELECT `+donationColumns+`
	FROM donations
	WHERE donation_id = ANY($1::uuid[])
	ORDER BY created_at, donation_id;
	`, ids)
	if err != nil {
		return nil, fmt.Errorf("get donations: query donations table: %w", err)
	}
	defer rows.Close()

	return collectDonations(rows, "get donations")
}

func collectDonations(rows *sql.Rows, op string) ([]domain.Donation, error) {
	var donations []domain.Donation
	for rows.Next() {
		d, err := scanDonation(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: scan row: %w", op, err)
		}
		donations = append(donations, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: iterate rows: %w", op, err)
	}
	return donations, nil
}
