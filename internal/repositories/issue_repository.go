package repositories

import (
	"context"
	"time"

	"gametrack-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type IssueRepository struct {
	DB *pgxpool.Pool
}

func NewIssueRepository(db *pgxpool.Pool) *IssueRepository {
	return &IssueRepository{DB: db}
}

func (r *IssueRepository) Create(ctx context.Context, key, issue string, at time.Time) (*models.Issue, error) {
	query := `INSERT INTO game_issues (game_key, issue, created_at)
		VALUES ($1, $2, $3) RETURNING id`

	rec := &models.Issue{GameKey: key, Issue: issue, CreatedAt: at}
	if err := r.DB.QueryRow(ctx, query, key, issue, at).Scan(&rec.ID); err != nil {
		return nil, err
	}
	return rec, nil
}

// List returns issues newest first, for all games or one key.
func (r *IssueRepository) List(ctx context.Context, key string) ([]models.Issue, error) {
	query := `SELECT id, game_key, issue, created_at FROM game_issues`
	args := []interface{}{}
	if key != "" {
		query += ` WHERE game_key = $1`
		args = append(args, key)
	}
	query += ` ORDER BY created_at DESC, id DESC LIMIT 200`

	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var issues []models.Issue
	for rows.Next() {
		var i models.Issue
		if err := rows.Scan(&i.ID, &i.GameKey, &i.Issue, &i.CreatedAt); err != nil {
			return nil, err
		}
		issues = append(issues, i)
	}
	return issues, rows.Err()
}

// Delete removes a fixed issue. Returns false when the id is unknown.
func (r *IssueRepository) Delete(ctx context.Context, id int) (bool, error) {
	tag, err := r.DB.Exec(ctx, `DELETE FROM game_issues WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *IssueRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.DB.QueryRow(ctx, `SELECT COUNT(*) FROM game_issues`).Scan(&count)
	return count, err
}
