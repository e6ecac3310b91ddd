package handler

import (
	"github.com/agendavista/task-api/internal/core/domain"
	"github.com/agendavista/task-api/internal/core/ports"
)

func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
	}
}

func toTaskResponse(t *domain.Task) taskResponse {
	return taskResponse{
		ID:          t.ID,
		UserID:      t.UserID,
		Title:       t.Title,
		Description: t.Description,
		Completed:   t.Completed,
		Priority:    string(t.Priority),
		Category:    t.Category,
		DueDate:     t.DueDate,
		DueTime:     t.DueTime,
		CreatedAt:   t.CreatedAt.UTC(),
		UpdatedAt:   t.UpdatedAt.UTC(),
	}
}

func toTaskListResponse(tasks []*domain.Task) listTasksResponse {
	out := make([]taskResponse, len(tasks))
	for i, t := range tasks {
		out[i] = toTaskResponse(t)
	}
	return listTasksResponse{Tasks: out}
}

func toCreateInput(req createTaskRequest) ports.CreateTaskInput {
	return ports.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Priority:    domain.Priority(req.Priority),
		Category:    req.Category,
		DueDate:     req.DueDate,
		DueTime:     req.DueTime,
	}
}

func toTaskPatch(req updateTaskRequest) ports.TaskPatch {
	patch := ports.TaskPatch{
		Title:       req.Title,
		Description: req.Description,
		Completed:   req.Completed,
		Category:    req.Category,
		DueDate:     req.DueDate,
		DueTime:     req.DueTime,
	}
	if req.Priority != nil {
		p := domain.Priority(*req.Priority)
		patch.Priority = &p
	}
	return patch
}
