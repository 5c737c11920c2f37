package auth

import (
	"context"

	"altoev/internal/domain"
)

// UserRepository defines the user reads the login flow needs.
type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}
