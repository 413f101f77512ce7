package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"gametrack-backend/internal/models"
)

type fakeIssueStore struct {
	nextID int
	issues map[int]models.Issue
}

func newFakeIssueStore() *fakeIssueStore {
	return &fakeIssueStore{nextID: 1, issues: make(map[int]models.Issue)}
}

func (s *fakeIssueStore) Create(_ context.Context, key, issue string, at time.Time) (*models.Issue, error) {
	rec := models.Issue{ID: s.nextID, GameKey: key, Issue: issue, CreatedAt: at}
	s.issues[s.nextID] = rec
	s.nextID++
	return &rec, nil
}

func (s *fakeIssueStore) List(_ context.Context, key string) ([]models.Issue, error) {
	var out []models.Issue
	for _, rec := range s.issues {
		if key == "" || rec.GameKey == key {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (s *fakeIssueStore) Delete(_ context.Context, id int) (bool, error) {
	if _, ok := s.issues[id]; !ok {
		return false, nil
	}
	delete(s.issues, id)
	return true, nil
}

func TestIssueAddValidation(t *testing.T) {
	svc := NewIssueService(newFakeIssueStore())
	ctx := context.Background()

	cases := []struct {
		name string
		key  string
		text string
	}{
		{"empty key", "", "machine jammed"},
		{"empty text", "M1 P1 S1", ""},
		{"whitespace text", "M1 P1 S1", "   "},
		{"too long", "M1 P1 S1", strings.Repeat("x", 501)},
	}
	for _, tc := range cases {
		if _, err := svc.Add(ctx, tc.key, tc.text); !errors.Is(err, ErrInvalidInput) {
			t.Errorf("%s: got %v, want ErrInvalidInput", tc.name, err)
		}
	}

	issue, err := svc.Add(ctx, "M1 P1 S1", strings.Repeat("x", 500))
	if err != nil {
		t.Fatalf("max-length issue rejected: %v", err)
	}
	if issue.ID == 0 {
		t.Error("created issue has no id")
	}
}

func TestIssueFix(t *testing.T) {
	store := newFakeIssueStore()
	svc := NewIssueService(store)
	ctx := context.Background()

	issue, err := svc.Add(ctx, "M1 P1 S1", "ticket counter stuck")
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := svc.Fix(ctx, issue.ID); err != nil {
		t.Fatalf("Fix: %v", err)
	}
	if _, ok := store.issues[issue.ID]; ok {
		t.Error("fixed issue still present")
	}
	if err := svc.Fix(ctx, issue.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("second fix: got %v, want ErrNotFound", err)
	}
}
