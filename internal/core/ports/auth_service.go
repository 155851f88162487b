package ports

import (
	"context"

	"github.com/staffdir/directory-api/internal/core/domain"
)

// RegisterInput carries the registration payload into the auth service.
type RegisterInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
	Gender    string
	Hobbies   []string
	Role      string
}

// LoginResult bundles the freshly issued token pair with the user record.
type LoginResult struct {
	AccessToken  string
	RefreshToken string
	User         *domain.User
}

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	// Refresh exchanges a refresh token for a new token pair. Only the most
	// recently issued refresh token is accepted (rotation).
	Refresh(ctx context.Context, refreshToken string) (*LoginResult, error)
	Logout(ctx context.Context, userID string) error
}

// LoginThrottle limits repeated login attempts per key (email).
type LoginThrottle interface {
	Allow(ctx context.Context, key string) (bool, error)
}
