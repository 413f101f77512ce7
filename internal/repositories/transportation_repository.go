package repositories

import (
	"context"
	"errors"
	"time"

	"gametrack-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type TransportationRepository struct {
	DB *pgxpool.Pool
}

func NewTransportationRepository(db *pgxpool.Pool) *TransportationRepository {
	return &TransportationRepository{DB: db}
}

func (r *TransportationRepository) List(ctx context.Context) ([]models.TransportationRecord, error) {
	query := `SELECT game_key, gname, cash_hand, pick_up, picked_at
		FROM transportation ORDER BY picked_at DESC, game_key`

	rows, err := r.DB.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []models.TransportationRecord
	for rows.Next() {
		var t models.TransportationRecord
		if err := rows.Scan(&t.Key, &t.Name, &t.CashHand, &t.Picker, &t.PickedAt); err != nil {
			return nil, err
		}
		records = append(records, t)
	}
	return records, rows.Err()
}

func (r *TransportationRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.DB.QueryRow(ctx, `SELECT COUNT(*) FROM transportation`).Scan(&count)
	return count, err
}

// DropOff moves a game from transit into the office: the office
// intake row and the deposit row are created together and the transit
// row removed, in one transaction. Returns false when the transit row
// does not exist.
func (r *TransportationRepository) DropOff(ctx context.Context, key string, at time.Time) (bool, error) {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return false, err
	}
	defer tx.Rollback(ctx)

	var t models.TransportationRecord
	sel := `SELECT game_key, gname, cash_hand, pick_up, picked_at
		FROM transportation WHERE game_key = $1 FOR UPDATE`
	err = tx.QueryRow(ctx, sel, key).Scan(&t.Key, &t.Name, &t.CashHand, &t.Picker, &t.PickedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	intake := `INSERT INTO office_intake (game_key, gname, cash_hand, pick_up, office_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (game_key) DO UPDATE SET gname = EXCLUDED.gname,
			cash_hand = EXCLUDED.cash_hand, pick_up = EXCLUDED.pick_up,
			office_at = EXCLUDED.office_at`
	if _, err := tx.Exec(ctx, intake, t.Key, t.Name, t.CashHand, t.Picker, at); err != nil {
		return false, err
	}

	deposit := `INSERT INTO deposits (game_key, cash_hand, pick_up)
		VALUES ($1, $2, $3)
		ON CONFLICT (game_key) DO UPDATE SET cash_hand = EXCLUDED.cash_hand,
			pick_up = EXCLUDED.pick_up`
	if _, err := tx.Exec(ctx, deposit, t.Key, t.CashHand, t.Picker); err != nil {
		return false, err
	}

	if _, err := tx.Exec(ctx, `DELETE FROM transportation WHERE game_key = $1`, key); err != nil {
		return false, err
	}

	if err := tx.Commit(ctx); err != nil {
		return false, err
	}
	return true, nil
}
