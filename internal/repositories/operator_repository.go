package repositories

import (
	"context"
	"errors"

	"gametrack-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type OperatorRepository struct {
	DB *pgxpool.Pool
}

func NewOperatorRepository(db *pgxpool.Pool) *OperatorRepository {
	return &OperatorRepository{DB: db}
}

func (r *OperatorRepository) FindByUsername(ctx context.Context, username string) (*models.Operator, error) {
	query := `SELECT id, username, name, email, password_hash, created_at
		FROM operators WHERE username = $1`

	var op models.Operator
	err := r.DB.QueryRow(ctx, query, username).Scan(&op.ID, &op.Username, &op.Name,
		&op.Email, &op.PasswordHash, &op.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &op, nil
}

func (r *OperatorRepository) FindByID(ctx context.Context, id int) (*models.Operator, error) {
	query := `SELECT id, username, name, email, password_hash, created_at
		FROM operators WHERE id = $1`

	var op models.Operator
	err := r.DB.QueryRow(ctx, query, id).Scan(&op.ID, &op.Username, &op.Name,
		&op.Email, &op.PasswordHash, &op.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &op, nil
}

func (r *OperatorRepository) Create(ctx context.Context, op *models.Operator) error {
	query := `INSERT INTO operators (username, name, email, password_hash)
		VALUES ($1, $2, $3, $4) RETURNING id, created_at`

	return r.DB.QueryRow(ctx, query, op.Username, op.Name, op.Email, op.PasswordHash).
		Scan(&op.ID, &op.CreatedAt)
}
