// Package memory provides an in-process store keeping users and tasks in
// maps behind a single RWMutex. All check-then-act sequences (duplicate
// email on insert, existence on update/delete) run under the lock, so
// concurrent requests cannot interleave between the check and the write.
package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/agendavista/task-api/internal/core/domain"
	"github.com/agendavista/task-api/internal/core/ports"
)

// Store is the shared state backing both repositories. Tasks are kept in a
// slice so ListByUser preserves insertion order.
type Store struct {
	mu      sync.RWMutex
	users   map[string]*domain.User // keyed by id
	byEmail map[string]string       // normalized email -> user id
	tasks   []*domain.Task
	taskIdx map[string]int // task id -> position in tasks
}

func NewStore() *Store {
	return &Store{
		users:   make(map[string]*domain.User),
		byEmail: make(map[string]string),
		taskIdx: make(map[string]int),
	}
}

// Users returns the user repository view of the store.
func (s *Store) Users() ports.UserRepository { return &userRepo{s} }

// Tasks returns the task repository view of the store.
func (s *Store) Tasks() ports.TaskRepository { return &taskRepo{s} }

// ── Users ─────────────────────────────────────────────────────────────────────

type userRepo struct {
	s *Store
}

func (r *userRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	key := strings.ToLower(user.Email)
	if _, exists := r.s.byEmail[key]; exists {
		return nil, domain.ErrEmailTaken
	}

	stored := cloneUser(user)
	if stored.ID == "" {
		stored.ID = uuid.NewString()
	}
	r.s.users[stored.ID] = stored
	r.s.byEmail[key] = stored.ID
	return cloneUser(stored), nil
}

func (r *userRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	id, ok := r.s.byEmail[strings.ToLower(email)]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(r.s.users[id]), nil
}

func (r *userRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	user, ok := r.s.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(user), nil
}

// ── Tasks ─────────────────────────────────────────────────────────────────────

type taskRepo struct {
	s *Store
}

func (r *taskRepo) Create(_ context.Context, task *domain.Task) (*domain.Task, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stored := cloneTask(task)
	if stored.ID == "" {
		stored.ID = uuid.NewString()
	}
	r.s.taskIdx[stored.ID] = len(r.s.tasks)
	r.s.tasks = append(r.s.tasks, stored)
	return cloneTask(stored), nil
}

func (r *taskRepo) FindByID(_ context.Context, id string) (*domain.Task, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	i, ok := r.s.taskIdx[id]
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	return cloneTask(r.s.tasks[i]), nil
}

func (r *taskRepo) ListByUser(_ context.Context, userID string) ([]*domain.Task, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]*domain.Task, 0)
	for _, t := range r.s.tasks {
		if t.UserID == userID {
			out = append(out, cloneTask(t))
		}
	}
	return out, nil
}

func (r *taskRepo) Update(_ context.Context, id string, patch ports.TaskPatch) (*domain.Task, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	i, ok := r.s.taskIdx[id]
	if !ok {
		return nil, domain.ErrTaskNotFound
	}

	task := r.s.tasks[i]
	applyPatch(task, patch)
	task.UpdatedAt = time.Now().UTC()
	return cloneTask(task), nil
}

func (r *taskRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	i, ok := r.s.taskIdx[id]
	if !ok {
		return domain.ErrTaskNotFound
	}

	r.s.tasks = append(r.s.tasks[:i], r.s.tasks[i+1:]...)
	delete(r.s.taskIdx, id)
	for j := i; j < len(r.s.tasks); j++ {
		r.s.taskIdx[r.s.tasks[j].ID] = j
	}
	return nil
}

// applyPatch merges the provided fields over task in place.
func applyPatch(task *domain.Task, patch ports.TaskPatch) {
	if patch.Title != nil {
		task.Title = *patch.Title
	}
	if patch.Description != nil {
		task.Description = *patch.Description
	}
	if patch.Completed != nil {
		task.Completed = *patch.Completed
	}
	if patch.Priority != nil {
		task.Priority = *patch.Priority
	}
	if patch.Category != nil {
		task.Category = *patch.Category
	}
	if patch.DueDate != nil {
		task.DueDate = *patch.DueDate
	}
	if patch.DueTime != nil {
		task.DueTime = *patch.DueTime
	}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func cloneTask(t *domain.Task) *domain.Task {
	if t == nil {
		return nil
	}
	clone := *t
	return &clone
}
