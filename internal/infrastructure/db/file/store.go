// Package file provides a flat-file store: a single JSON document holding
// {"users": [...], "tasks": [...]} that is loaded at startup and rewritten
// after every mutation. State survives process restarts; when the file cannot
// be written the store keeps serving from memory and logs the failure.
package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/agendavista/task-api/internal/core/domain"
	"github.com/agendavista/task-api/internal/core/ports"
)

// snapshot is the on-disk layout.
type snapshot struct {
	Users []*domain.User `json:"users"`
	Tasks []*domain.Task `json:"tasks"`
}

// Store keeps the full data set in memory and persists a JSON snapshot on
// every mutation. A single mutex covers both the in-memory state and the
// file, so check-then-act sequences are atomic and writes never interleave.
type Store struct {
	mu     sync.RWMutex
	path   string
	logger zerolog.Logger
	data   snapshot
}

// Open loads the snapshot at path, creating the parent directory when
// missing. A missing file starts an empty store; a corrupt file is an error.
func Open(path string, logger zerolog.Logger) (*Store, error) {
	s := &Store{path: path, logger: logger}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("file store: create data dir: %w", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return s, nil
		}
		return nil, fmt.Errorf("file store: read %s: %w", path, err)
	}
	if err := json.Unmarshal(raw, &s.data); err != nil {
		return nil, fmt.Errorf("file store: parse %s: %w", path, err)
	}

	logger.Info().Str("path", path).
		Int("users", len(s.data.Users)).
		Int("tasks", len(s.data.Tasks)).
		Msg("file store loaded")
	return s, nil
}

// Users returns the user repository view of the store.
func (s *Store) Users() ports.UserRepository { return &userRepo{s} }

// Tasks returns the task repository view of the store.
func (s *Store) Tasks() ports.TaskRepository { return &taskRepo{s} }

// persist writes the snapshot to a temp file and renames it into place.
// Called with the write lock held. A failed write is logged, not fatal: the
// in-memory copy is already updated and stays authoritative.
func (s *Store) persist() {
	raw, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		s.logger.Error().Err(err).Msg("file store: marshal snapshot")
		return
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		s.logger.Warn().Err(err).Str("path", s.path).Msg("file store: write failed, keeping in memory only")
		return
	}
	if err := os.Rename(tmp, s.path); err != nil {
		s.logger.Warn().Err(err).Str("path", s.path).Msg("file store: rename failed, keeping in memory only")
	}
}

// ── Users ─────────────────────────────────────────────────────────────────────

type userRepo struct {
	s *Store
}

func (r *userRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	key := strings.ToLower(user.Email)
	for _, u := range r.s.data.Users {
		if strings.ToLower(u.Email) == key {
			return nil, domain.ErrEmailTaken
		}
	}

	stored := *user
	if stored.ID == "" {
		stored.ID = uuid.NewString()
	}
	r.s.data.Users = append(r.s.data.Users, &stored)
	r.s.persist()

	clone := stored
	return &clone, nil
}

func (r *userRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	key := strings.ToLower(email)
	for _, u := range r.s.data.Users {
		if strings.ToLower(u.Email) == key {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *userRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, u := range r.s.data.Users {
		if u.ID == id {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

// ── Tasks ─────────────────────────────────────────────────────────────────────

type taskRepo struct {
	s *Store
}

func (r *taskRepo) Create(_ context.Context, task *domain.Task) (*domain.Task, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stored := *task
	if stored.ID == "" {
		stored.ID = uuid.NewString()
	}
	r.s.data.Tasks = append(r.s.data.Tasks, &stored)
	r.s.persist()

	clone := stored
	return &clone, nil
}

func (r *taskRepo) FindByID(_ context.Context, id string) (*domain.Task, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, t := range r.s.data.Tasks {
		if t.ID == id {
			clone := *t
			return &clone, nil
		}
	}
	return nil, domain.ErrTaskNotFound
}

func (r *taskRepo) ListByUser(_ context.Context, userID string) ([]*domain.Task, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]*domain.Task, 0)
	for _, t := range r.s.data.Tasks {
		if t.UserID == userID {
			clone := *t
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *taskRepo) Update(_ context.Context, id string, patch ports.TaskPatch) (*domain.Task, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, t := range r.s.data.Tasks {
		if t.ID != id {
			continue
		}
		applyPatch(t, patch)
		t.UpdatedAt = time.Now().UTC()
		r.s.persist()
		clone := *t
		return &clone, nil
	}
	return nil, domain.ErrTaskNotFound
}

func (r *taskRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for i, t := range r.s.data.Tasks {
		if t.ID == id {
			r.s.data.Tasks = append(r.s.data.Tasks[:i], r.s.data.Tasks[i+1:]...)
			r.s.persist()
			return nil
		}
	}
	return domain.ErrTaskNotFound
}

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
