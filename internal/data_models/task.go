package dto

import (
	"time"

	model "study-planner.com/study-planner/internal/models"
)

type CreateTaskRequest struct {
	Title       string     `json:"title" validate:"required,max=255"`
	Description string     `json:"description" validate:"max=5000"`
	Subject     string     `json:"subject" validate:"max=255"`
	Priority    string     `json:"priority" validate:"omitempty,oneof=low medium high urgent"`
	DueDate     *time.Time `json:"due_date"`
}

// UpdateTaskRequest is a partial update; nil fields are left untouched.
// An empty description or subject clears it, as does clear_due_date.
type UpdateTaskRequest struct {
	Title        *string    `json:"title" validate:"omitempty,max=255"`
	Description  *string    `json:"description" validate:"omitempty,max=5000"`
	Subject      *string    `json:"subject" validate:"omitempty,max=255"`
	Priority     *string    `json:"priority" validate:"omitempty,oneof=low medium high urgent"`
	Status       *string    `json:"status" validate:"omitempty,oneof=pending in-progress completed"`
	DueDate      *time.Time `json:"due_date"`
	ClearDueDate bool       `json:"clear_due_date"`
	IsFavorite   *bool      `json:"is_favorite"`
}

type ListTasksQuery struct {
	Status   string `query:"status" validate:"omitempty,oneof=all pending in-progress completed"`
	Priority string `query:"priority" validate:"omitempty,oneof=all low medium high urgent"`
	Search   string `query:"search" validate:"max=255"`
}

// TaskResponse is a task plus its deadline flags as of the response time.
type TaskResponse struct {
	model.Task
	Overdue bool `json:"overdue"`
	DueSoon bool `json:"due_soon"`
}

func NewTaskResponse(task model.Task, now time.Time) TaskResponse {
	return TaskResponse{
		Task:    task,
		Overdue: task.Overdue(now),
		DueSoon: task.DueSoon(now),
	}
}

func NewTaskResponses(tasks []model.Task, now time.Time) []TaskResponse {
	out := make([]TaskResponse, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, NewTaskResponse(t, now))
	}
	return out
}

type TaskStats struct {
	Total      int `json:"total"`
	Completed  int `json:"completed"`
	Pending    int `json:"pending"`
	InProgress int `json:"in_progress"`
	Overdue    int `json:"overdue"`
}
