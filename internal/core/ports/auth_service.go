package ports

import (
	"context"

	"github.com/agendavista/task-api/internal/core/domain"
)

// TokenService mints and verifies the signed, time-limited credential sent
// as a bearer token. Tokens are stateless; there is no revocation list.
type TokenService interface {
	Issue(userID, email string) (string, error)
	Verify(token string) (domain.Claims, error)
}

// AuthService implements registration and login.
type AuthService interface {
	// Register creates an account and returns it together with a fresh token.
	Register(ctx context.Context, name, email, password string) (*domain.User, string, error)
	// Login checks credentials and returns the user with a fresh token.
	Login(ctx context.Context, email, password string) (*domain.User, string, error)
}
