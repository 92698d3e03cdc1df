package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"food-rescue-service/internal/domain"
	"food-rescue-service/internal/ports"
)

// SQLBankRepository reads food banks from Postgres.
type SQLBankRepository struct {
	DB *sql.DB
}

var _ ports.BankRepository = (*SQLBankRepository)(nil)

func NewSQLBankRepository(db *sql.DB) *SQLBankRepository {
	return &SQLBankRepository{DB: db}
}

const bankColumns = `bank_id, region_id, name, contact_person, email, phone, address,
	lat, lon, daily_need_pounds, storage_capacity_pounds, can_self_pickup, is_active`

func scanBank(row interface{ Scan(dest ...any) error }) (domain.Bank, error) {
	var b domain.Bank
	err := row.Scan(
		&b.BankID, &b.RegionID, &b.Name, &b.ContactPerson, &b.Email, &b.Phone, &b.Address,
		&b.Location.Lat, &b.Location.Lon, &b.DailyNeedPounds, &b.StorageCapacityPounds,
		&b.CanSelfPickup, &b.IsActive,
	)
	return b, err
}

func (r *SQLBankRepository) GetBank(ctx context.Context, bankID int64) (domain.Bank, error) {
	if r.DB == nil {
		return domain.Bank{}, errors.New("get bank: DB is nil")
	}

	row := r.DB.QueryRowContext(ctx, `
	SELECT `+bankColumns+`
	FROM food_banks
	WHERE bank_id = $1;
	`, bankID)

	b, err := scanBank(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Bank{}, fmt.Errorf("get bank %d: %w", bankID, domain.ErrNotFound)
	}
	if err != nil {
		return domain.Bank{}, fmt.Errorf("get bank %d: query food_banks table: %w", bankID, err)
	}

	return b, nil
}

func (r *SQLBankRepository) ListActiveBanks(ctx context.Context, regionID int64) ([]domain.Bank, error) {
	if r.DB == nil {
		return nil, errors.New("list active banks: DB is nil")
	}

	rows, err := r.DB.QueryContext(ctx, `
	SELECT `+bankColumns+`
	FROM food_banks
	WHERE region_id = $1 AND is_active
	ORDER BY bank_id;
	`, regionID)
	if err != nil {
		return nil, fmt.Errorf("list active banks: query food_banks table: %w", err)
	}
	defer rows.Close()

	var banks []domain.Bank
	for rows.Next() {
		b, err := scanBank(rows)
		if err != nil {
			return nil, fmt.Errorf("list active banks: scan row: %w", err)
		}
		banks = append(banks, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list active banks: iterate rows: %w", err)
	}

	return banks, nil
}
