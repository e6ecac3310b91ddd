package ports

import (
	"context"

	"github.com/agendavista/task-api/internal/core/domain"
)

// TaskPatch carries a partial update. Nil fields are left untouched; non-nil
// fields are merged over the existing record.
type TaskPatch struct {
	Title       *string
	Description *string
	Completed   *bool
	Priority    *domain.Priority
	Category    *string
	DueDate     *string
	DueTime     *string
}

// TaskRepository defines persistence operations for tasks.
//
// The repository does NOT enforce ownership: Update and Delete operate on any
// task id. Confirming that the task belongs to the authenticated user is the
// task service's responsibility before either call is made.
type TaskRepository interface {
	Create(ctx context.Context, task *domain.Task) (*domain.Task, error)
	FindByID(ctx context.Context, id string) (*domain.Task, error)
	// ListByUser returns all tasks owned by userID in insertion order.
	ListByUser(ctx context.Context, userID string) ([]*domain.Task, error)
	// Update merges patch over the stored task and refreshes UpdatedAt.
	// Returns domain.ErrTaskNotFound when id is unknown.
	Update(ctx context.Context, id string, patch TaskPatch) (*domain.Task, error)
	// Delete removes the task. Returns domain.ErrTaskNotFound when id is
	// unknown, leaving the store unchanged.
	Delete(ctx context.Context, id string) error
}
