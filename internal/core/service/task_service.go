package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/agendavista/task-api/internal/core/domain"
	"github.com/agendavista/task-api/internal/core/ports"
)

// TaskService owns task CRUD and the ownership boundary. The repository does
// not filter mutations by user; this service confirms ownership before every
// Update and Delete, reporting domain.ErrTaskNotFound on mismatch so a
// foreign task id is indistinguishable from a missing one.
type TaskService struct {
	repo   ports.TaskRepository
	cache  ports.TaskCache // nil when no cache is configured
	logger zerolog.Logger
}

func NewTaskService(repo ports.TaskRepository, cache ports.TaskCache, logger zerolog.Logger) *TaskService {
	return &TaskService{repo: repo, cache: cache, logger: logger}
}

func (s *TaskService) Create(ctx context.Context, userID string, input ports.CreateTaskInput) (*domain.Task, error) {
	title := strings.TrimSpace(input.Title)
	category := strings.TrimSpace(input.Category)
	if title == "" || category == "" || !input.Priority.Valid() {
		return nil, domain.ErrMissingFields
	}

	now := time.Now().UTC()
	task := &domain.Task{
		ID:          uuid.NewString(),
		UserID:      userID,
		Title:       title,
		Description: input.Description,
		Completed:   false,
		Priority:    input.Priority,
		Category:    category,
		DueDate:     input.DueDate,
		DueTime:     input.DueTime,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := s.repo.Create(ctx, task)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("failed to create task")
		return nil, err
	}

	s.invalidate(ctx, userID)
	s.logger.Info().Str("task_id", created.ID).Str("user_id", userID).Msg("task created")
	return created, nil
}

func (s *TaskService) List(ctx context.Context, userID string) ([]*domain.Task, error) {
	if s.cache != nil {
		cached, err := s.cache.GetList(ctx, userID)
		if err != nil {
			s.logger.Warn().Err(err).Str("user_id", userID).Msg("task cache read failed")
		} else if cached != nil {
			return cached, nil
		}
	}

	tasks, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetList(ctx, userID, tasks); err != nil {
			s.logger.Warn().Err(err).Str("user_id", userID).Msg("task cache write failed")
		}
	}
	return tasks, nil
}

func (s *TaskService) Update(ctx context.Context, userID, taskID string, patch ports.TaskPatch) (*domain.Task, error) {
	if err := s.checkOwnership(ctx, userID, taskID); err != nil {
		return nil, err
	}
	if patch.Priority != nil && !patch.Priority.Valid() {
		return nil, domain.ErrMissingFields
	}
	if patch.Title != nil {
		trimmed := strings.TrimSpace(*patch.Title)
		if trimmed == "" {
			return nil, domain.ErrMissingFields
		}
		patch.Title = &trimmed
	}

	updated, err := s.repo.Update(ctx, taskID, patch)
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, userID)
	return updated, nil
}

func (s *TaskService) Delete(ctx context.Context, userID, taskID string) error {
	if err := s.checkOwnership(ctx, userID, taskID); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, taskID); err != nil {
		return err
	}

	s.invalidate(ctx, userID)
	s.logger.Info().Str("task_id", taskID).Str("user_id", userID).Msg("task deleted")
	return nil
}

// checkOwnership fails with ErrTaskNotFound for both an unknown task id and a
// task owned by another user. The record is never touched on mismatch.
func (s *TaskService) checkOwnership(ctx context.Context, userID, taskID string) error {
	task, err := s.repo.FindByID(ctx, taskID)
	if err != nil {
		return err
	}
	if task.UserID != userID {
		return domain.ErrTaskNotFound
	}
	return nil
}

func (s *TaskService) invalidate(ctx context.Context, userID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, userID); err != nil {
		s.logger.Warn().Err(err).Str("user_id", userID).Msg("task cache invalidation failed")
	}
}
