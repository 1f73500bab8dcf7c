package validators

import (
	"strings"

	dto "study-planner.com/study-planner/internal/data_models"
	apperrors "study-planner.com/study-planner/internal/errors"
)

func ValidateCreateTaskRequest(r *dto.CreateTaskRequest) error {
	if strings.TrimSpace(r.Title) == "" {
		return apperrors.ErrTitleRequired
	}
	return Struct(r)
}

func ValidateUpdateTaskRequest(r *dto.UpdateTaskRequest) error {
	if r.Title != nil && strings.TrimSpace(*r.Title) == "" {
		return apperrors.ErrTitleRequired
	}
	return Struct(r)
}

func ValidateListTasksQuery(q *dto.ListTasksQuery) error {
	return Struct(q)
}
