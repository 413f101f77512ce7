package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"gametrack-backend/internal/auth"
	"gametrack-backend/internal/cache"
	"gametrack-backend/internal/models"
	"gametrack-backend/internal/timeutil"
)

type OperatorStore interface {
	FindByUsername(ctx context.Context, username string) (*models.Operator, error)
	FindByID(ctx context.Context, id int) (*models.Operator, error)
}

// AuthService handles operator login and session tokens.
type AuthService struct {
	operators OperatorStore
	jwt       *auth.JWTManager
	now       func() time.Time
}

func NewAuthService(operators OperatorStore, jwt *auth.JWTManager) *AuthService {
	return &AuthService{operators: operators, jwt: jwt, now: timeutil.Now}
}

// Login verifies credentials and returns a session token. A
// successful login is appended to the sign-in roster; a roster write
// failure never fails the login.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, *models.Operator, error) {
	if username == "" || password == "" {
		return "", nil, fmt.Errorf("%w: username and password are required", ErrInvalidInput)
	}

	op, err := s.operators.FindByUsername(ctx, username)
	if err != nil {
		return "", nil, err
	}
	if op == nil || !auth.CheckPassword(password, op.PasswordHash) {
		return "", nil, fmt.Errorf("%w: invalid credentials", ErrUnauthorized)
	}

	token, err := s.jwt.GenerateToken(op)
	if err != nil {
		return "", nil, err
	}

	entry := models.SignInEntry{
		Name:      op.Name,
		Email:     op.Email,
		Timestamp: s.now().UnixMilli(),
	}
	if err := cache.RecordSignIn(ctx, entry); err != nil {
		log.Printf("[Auth] Sign-in log write failed for %s: %v", op.Username, err)
	}

	return token, op, nil
}

// Me resolves a validated token's operator.
func (s *AuthService) Me(ctx context.Context, claims *auth.Claims) (*models.Operator, error) {
	op, err := s.operators.FindByID(ctx, claims.OperatorID)
	if err != nil {
		return nil, err
	}
	if op == nil {
		return nil, ErrNotFound
	}
	return op, nil
}
