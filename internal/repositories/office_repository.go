package repositories

import (
	"context"
	"errors"
	"time"

	"gametrack-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type OfficeRepository struct {
	DB *pgxpool.Pool
}

func NewOfficeRepository(db *pgxpool.Pool) *OfficeRepository {
	return &OfficeRepository{DB: db}
}

func (r *OfficeRepository) FindByKey(ctx context.Context, key string) (*models.OfficeRecord, error) {
	query := `SELECT game_key, gname, cash_hand, pick_up, office_at,
		audit_office, river_room, bin_number, storage
		FROM office_intake WHERE game_key = $1`

	var o models.OfficeRecord
	err := r.DB.QueryRow(ctx, query, key).Scan(&o.Key, &o.Name, &o.CashHand, &o.Picker,
		&o.OfficeAt, &o.AuditOffice, &o.RiverRoom, &o.BinNumber, &o.Storage)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *OfficeRepository) List(ctx context.Context) ([]models.OfficeRecord, error) {
	query := `SELECT game_key, gname, cash_hand, pick_up, office_at,
		audit_office, river_room, bin_number, storage
		FROM office_intake ORDER BY office_at DESC, game_key`

	rows, err := r.DB.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []models.OfficeRecord
	for rows.Next() {
		var o models.OfficeRecord
		if err := rows.Scan(&o.Key, &o.Name, &o.CashHand, &o.Picker,
			&o.OfficeAt, &o.AuditOffice, &o.RiverRoom, &o.BinNumber, &o.Storage); err != nil {
			return nil, err
		}
		records = append(records, o)
	}
	return records, rows.Err()
}

func (r *OfficeRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.DB.QueryRow(ctx, `SELECT COUNT(*) FROM office_intake`).Scan(&count)
	return count, err
}

func (r *OfficeRepository) SetAuditOffice(ctx context.Context, key string, at time.Time) error {
	_, err := r.DB.Exec(ctx, `UPDATE office_intake SET audit_office = $2 WHERE game_key = $1`, key, at)
	return err
}

func (r *OfficeRepository) SetRiverRoom(ctx context.Context, key, value string) error {
	_, err := r.DB.Exec(ctx, `UPDATE office_intake SET river_room = $2 WHERE game_key = $1`, key, value)
	return err
}

func (r *OfficeRepository) SetBinNumber(ctx context.Context, key, value string) error {
	_, err := r.DB.Exec(ctx, `UPDATE office_intake SET bin_number = $2 WHERE game_key = $1`, key, value)
	return err
}

func (r *OfficeRepository) SetStorage(ctx context.Context, key, value string) error {
	_, err := r.DB.Exec(ctx, `UPDATE office_intake SET storage = $2 WHERE game_key = $1`, key, value)
	return err
}
