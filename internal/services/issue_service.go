package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gametrack-backend/internal/models"
	"gametrack-backend/internal/timeutil"
)

const maxIssueLength = 500

type IssueStore interface {
	Create(ctx context.Context, key, issue string, at time.Time) (*models.Issue, error)
	List(ctx context.Context, key string) ([]models.Issue, error)
	Delete(ctx context.Context, id int) (bool, error)
}

// IssueService is the ticket-style problem log attached to game keys.
type IssueService struct {
	issues IssueStore
	now    func() time.Time
}

func NewIssueService(issues IssueStore) *IssueService {
	return &IssueService{issues: issues, now: timeutil.Now}
}

func (s *IssueService) Add(ctx context.Context, key, text string) (*models.Issue, error) {
	key = strings.TrimSpace(key)
	text = strings.TrimSpace(text)
	if key == "" || text == "" {
		return nil, fmt.Errorf("%w: key and issue text are required", ErrInvalidInput)
	}
	if len(text) > maxIssueLength {
		return nil, fmt.Errorf("%w: issue text exceeds %d characters", ErrInvalidInput, maxIssueLength)
	}
	return s.issues.Create(ctx, key, text, s.now())
}

func (s *IssueService) List(ctx context.Context, key string) ([]models.Issue, error) {
	return s.issues.List(ctx, key)
}

// Fix hard-deletes a resolved issue.
func (s *IssueService) Fix(ctx context.Context, id int) error {
	ok, err := s.issues.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}
