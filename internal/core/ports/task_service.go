package ports

import (
	"context"

	"github.com/agendavista/task-api/internal/core/domain"
)

// CreateTaskInput carries the fields a user supplies when creating a task.
type CreateTaskInput struct {
	Title       string
	Description string
	Priority    domain.Priority
	Category    string
	DueDate     string
	DueTime     string
}

// TaskService is the ownership boundary for all task operations: every
// mutation is checked against the authenticated user's id before it reaches
// the repository.
type TaskService interface {
	Create(ctx context.Context, userID string, input CreateTaskInput) (*domain.Task, error)
	List(ctx context.Context, userID string) ([]*domain.Task, error)
	// Update applies a partial update to a task owned by userID. A task that
	// does not exist and a task owned by someone else are indistinguishable
	// to the caller: both fail with domain.ErrTaskNotFound.
	Update(ctx context.Context, userID, taskID string, patch TaskPatch) (*domain.Task, error)
	Delete(ctx context.Context, userID, taskID string) error
}

// TaskCache is a read-through cache over a user's task list. Implementations
// must tolerate being nil-checked away entirely; caching is best effort.
type TaskCache interface {
	GetList(ctx context.Context, userID string) ([]*domain.Task, error)
	SetList(ctx context.Context, userID string, tasks []*domain.Task) error
	Invalidate(ctx context.Context, userID string) error
}
