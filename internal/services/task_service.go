package services

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"study-planner.com/study-planner/internal/cache"
	"study-planner.com/study-planner/internal/constants"
	dto "study-planner.com/study-planner/internal/data_models"
	apperrors "study-planner.com/study-planner/internal/errors"
	model "study-planner.com/study-planner/internal/models"
)

// TaskStore is the owner-scoped task storage. Every method takes the acting
// user and must never touch another user's rows.
type TaskStore interface {
	FindTasks(ctx context.Context, userID string, filter model.TaskFilter) ([]model.Task, error)
	FindTask(ctx context.Context, userID, id string) (*model.Task, error)
	CreateTask(ctx context.Context, task *model.Task) (string, error)
	UpdateTask(ctx context.Context, userID, id string, fields map[string]interface{}) error
	DeleteTask(ctx context.Context, userID, id string) error
}

// Refresher re-fetches a user's collection into the cache after a write.
type Refresher interface {
	Enqueue(userID string) bool
}

type NewTask struct {
	Title       string
	Description string
	Subject     string
	Priority    string
	DueDate     *time.Time
}

type TaskPatch struct {
	Title        *string
	Description  *string
	Subject      *string
	Priority     *string
	Status       *string
	DueDate      *time.Time
	ClearDueDate bool
	IsFavorite   *bool
}

func (p TaskPatch) empty() bool {
	return p.Title == nil && p.Description == nil && p.Subject == nil && p.Priority == nil &&
		p.Status == nil && p.DueDate == nil && !p.ClearDueDate && p.IsFavorite == nil
}

type TaskService struct {
	repo      TaskStore
	cache     cache.TaskCache
	refresher Refresher
	log       *zap.Logger
	now       func() time.Time
}

func NewTaskService(repo TaskStore, taskCache cache.TaskCache, refresher Refresher, log *zap.Logger) *TaskService {
	return &TaskService{
		repo:      repo,
		cache:     taskCache,
		refresher: refresher,
		log:       log,
		now:       time.Now,
	}
}

func (s *TaskService) ListTasks(ctx context.Context, userID string, filter model.TaskFilter) ([]model.Task, error) {
	if err := validateFilter(filter); err != nil {
		return nil, err
	}

	var (
		tasks []model.Task
		err   error
	)
	_, byStatus := filter.StatusPredicate()
	_, byPriority := filter.PriorityPredicate()
	if byStatus || byPriority {
		tasks, err = s.repo.FindTasks(ctx, userID, filter)
	} else {
		tasks, err = s.loadCollection(ctx, userID)
	}
	if err != nil {
		return nil, err
	}

	return FilterBySearch(tasks, filter.Search), nil
}

func (s *TaskService) GetTask(ctx context.Context, userID, id string) (*model.Task, error) {
	if id == "" {
		return nil, apperrors.ErrTaskIDRequired
	}
	return s.repo.FindTask(ctx, userID, id)
}

// Stats aggregates over the user's whole collection, ignoring any filter.
func (s *TaskService) Stats(ctx context.Context, userID string, now time.Time) (dto.TaskStats, error) {
	tasks, err := s.loadCollection(ctx, userID)
	if err != nil {
		return dto.TaskStats{}, err
	}
	return ComputeStats(tasks, now), nil
}

func (s *TaskService) CreateTask(ctx context.Context, userID string, in NewTask) (*model.Task, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, apperrors.ErrTitleRequired
	}

	priority := constants.DefaultPriority
	if in.Priority != "" {
		priority = constants.Priority(in.Priority)
		if !priority.Valid() {
			return nil, apperrors.ErrInvalidPriority
		}
	}

	task := &model.Task{
		UserID:      userID,
		Title:       title,
		Description: optionalText(in.Description),
		Subject:     optionalText(in.Subject),
		Priority:    priority,
		Status:      constants.StatusPending,
	}
	if in.DueDate != nil {
		due := in.DueDate.UTC()
		task.DueDate = &due
	}

	if _, err := s.repo.CreateTask(ctx, task); err != nil {
		return nil, err
	}

	s.afterMutation(ctx, userID)
	return task, nil
}

func (s *TaskService) UpdateTask(ctx context.Context, userID, id string, patch TaskPatch) (*model.Task, error) {
	if id == "" {
		return nil, apperrors.ErrTaskIDRequired
	}

	fields, err := s.patchFields(patch)
	if err != nil {
		return nil, err
	}

	if patch.Status != nil {
		current, err := s.repo.FindTask(ctx, userID, id)
		if err != nil {
			return nil, err
		}
		// Re-sending the current status keeps the original completion time.
		if current.Status == constants.TaskStatus(*patch.Status) {
			delete(fields, "completed_at")
		}
	}

	if err := s.repo.UpdateTask(ctx, userID, id, fields); err != nil {
		return nil, err
	}

	s.afterMutation(ctx, userID)
	return s.repo.FindTask(ctx, userID, id)
}

// CycleStatus advances the task one step around the status cycle.
func (s *TaskService) CycleStatus(ctx context.Context, userID, id string) (*model.Task, error) {
	task, err := s.GetTask(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	next := task.Status.Next()
	fields := statusFields(next, s.now().UTC())
	if err := s.repo.UpdateTask(ctx, userID, id, fields); err != nil {
		return nil, err
	}

	s.afterMutation(ctx, userID)

	task.Status = next
	task.CompletedAt, _ = fields["completed_at"].(*time.Time)
	return task, nil
}

func (s *TaskService) ToggleFavorite(ctx context.Context, userID, id string) (*model.Task, error) {
	task, err := s.GetTask(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	favorite := !task.IsFavorite
	if err := s.repo.UpdateTask(ctx, userID, id, map[string]interface{}{"is_favorite": favorite}); err != nil {
		return nil, err
	}

	s.afterMutation(ctx, userID)

	task.IsFavorite = favorite
	return task, nil
}

func (s *TaskService) DeleteTask(ctx context.Context, userID, id string) error {
	if id == "" {
		return apperrors.ErrTaskIDRequired
	}

	if err := s.repo.DeleteTask(ctx, userID, id); err != nil {
		return err
	}

	s.afterMutation(ctx, userID)
	return nil
}

// loadCollection returns the user's full collection, newest first, reading
// through the cache. Cache faults are logged and fall back to storage.
func (s *TaskService) loadCollection(ctx context.Context, userID string) ([]model.Task, error) {
	tasks, ok, err := s.cache.Get(ctx, userID)
	if err != nil {
		s.log.Warn("task cache read failed", zap.String("user_id", userID), zap.Error(err))
	} else if ok {
		return tasks, nil
	}

	gen, genErr := s.cache.Generation(ctx, userID)
	if genErr != nil {
		s.log.Warn("task cache generation read failed", zap.String("user_id", userID), zap.Error(genErr))
	}

	tasks, err = s.repo.FindTasks(ctx, userID, model.TaskFilter{})
	if err != nil {
		return nil, err
	}

	if genErr == nil {
		if _, err := s.cache.Set(ctx, userID, gen, tasks); err != nil {
			s.log.Warn("task cache write failed", zap.String("user_id", userID), zap.Error(err))
		}
	}
	return tasks, nil
}

func (s *TaskService) afterMutation(ctx context.Context, userID string) {
	if err := s.cache.Invalidate(ctx, userID); err != nil {
		s.log.Error("task cache invalidation failed", zap.String("user_id", userID), zap.Error(err))
	}
	if !s.refresher.Enqueue(userID) {
		s.log.Debug("task refresh not scheduled", zap.String("user_id", userID))
	}
}

func (s *TaskService) patchFields(p TaskPatch) (map[string]interface{}, error) {
	if p.empty() {
		return nil, apperrors.ErrEmptyUpdate
	}
	if p.DueDate != nil && p.ClearDueDate {
		return nil, apperrors.Validation("due_date and clear_due_date are mutually exclusive")
	}

	fields := map[string]interface{}{}

	if p.Title != nil {
		title := strings.TrimSpace(*p.Title)
		if title == "" {
			return nil, apperrors.ErrTitleRequired
		}
		fields["title"] = title
	}
	if p.Description != nil {
		fields["description"] = optionalText(*p.Description)
	}
	if p.Subject != nil {
		fields["subject"] = optionalText(*p.Subject)
	}
	if p.Priority != nil {
		priority := constants.Priority(*p.Priority)
		if !priority.Valid() {
			return nil, apperrors.ErrInvalidPriority
		}
		fields["priority"] = priority
	}
	if p.Status != nil {
		status := constants.TaskStatus(*p.Status)
		if !status.Valid() {
			return nil, apperrors.ErrInvalidStatus
		}
		for k, v := range statusFields(status, s.now().UTC()) {
			fields[k] = v
		}
	}
	if p.DueDate != nil {
		fields["due_date"] = p.DueDate.UTC()
	}
	if p.ClearDueDate {
		fields["due_date"] = nil
	}
	if p.IsFavorite != nil {
		fields["is_favorite"] = *p.IsFavorite
	}

	return fields, nil
}

// statusFields pairs a status with its completed_at: stamped on entering
// completed, cleared for every other status.
func statusFields(status constants.TaskStatus, now time.Time) map[string]interface{} {
	var completedAt *time.Time
	if status == constants.StatusCompleted {
		completedAt = &now
	}
	return map[string]interface{}{
		"status":       status,
		"completed_at": completedAt,
	}
}

func validateFilter(f model.TaskFilter) error {
	if status, ok := f.StatusPredicate(); ok && !status.Valid() {
		return apperrors.ErrInvalidStatus
	}
	if priority, ok := f.PriorityPredicate(); ok && !priority.Valid() {
		return apperrors.ErrInvalidPriority
	}
	return nil
}

func optionalText(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
