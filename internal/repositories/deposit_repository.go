package repositories

import (
	"context"
	"time"

	"gametrack-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type DepositRepository struct {
	DB *pgxpool.Pool
}

func NewDepositRepository(db *pgxpool.Pool) *DepositRepository {
	return &DepositRepository{DB: db}
}

func (r *DepositRepository) List(ctx context.Context) ([]models.DepositRecord, error) {
	query := `SELECT game_key, cash_hand, pick_up, going_to_bank, dropped_at_bank
		FROM deposits ORDER BY game_key`

	rows, err := r.DB.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []models.DepositRecord
	for rows.Next() {
		var d models.DepositRecord
		if err := rows.Scan(&d.Key, &d.CashHand, &d.Picker, &d.GoingToBank, &d.DroppedAtBank); err != nil {
			return nil, err
		}
		records = append(records, d)
	}
	return records, rows.Err()
}

// MarkGoingToBank stamps the first bank phase. The conditional WHERE
// makes the stamp single-shot: a second call matches no rows.
func (r *DepositRepository) MarkGoingToBank(ctx context.Context, key string, at time.Time) (bool, error) {
	query := `UPDATE deposits SET going_to_bank = $2
		WHERE game_key = $1 AND going_to_bank IS NULL AND dropped_at_bank IS NULL`

	tag, err := r.DB.Exec(ctx, query, key, at)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// MarkDroppedAtBank stamps the second phase, only after the first.
func (r *DepositRepository) MarkDroppedAtBank(ctx context.Context, key string, at time.Time) (bool, error) {
	query := `UPDATE deposits SET dropped_at_bank = $2
		WHERE game_key = $1 AND going_to_bank IS NOT NULL AND dropped_at_bank IS NULL`

	tag, err := r.DB.Exec(ctx, query, key, at)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// CountPending counts deposits that have not entered either bank
// phase. A deposit staged going-to-bank is no longer pending.
func (r *DepositRepository) CountPending(ctx context.Context) (int, error) {
	var count int
	err := r.DB.QueryRow(ctx,
		`SELECT COUNT(*) FROM deposits WHERE going_to_bank IS NULL AND dropped_at_bank IS NULL`).Scan(&count)
	return count, err
}
