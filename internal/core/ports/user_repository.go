package ports

import (
	"context"

	"github.com/agendavista/task-api/internal/core/domain"
)

// UserRepository defines persistence operations for user accounts.
// Implementations must make the duplicate-email check and the insert a single
// atomic step, and must match emails case-insensitively.
type UserRepository interface {
	// Create inserts a new user. Returns domain.ErrEmailTaken when a user
	// with the same normalized email already exists.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
}
