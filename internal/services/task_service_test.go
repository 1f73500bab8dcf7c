package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"study-planner.com/study-planner/internal/constants"
	apperrors "study-planner.com/study-planner/internal/errors"
	model "study-planner.com/study-planner/internal/models"
)

func TestTaskService_CreateDefaults(t *testing.T) {
	f := newTaskFixture(t)
	ctx := context.Background()

	task, err := f.service.CreateTask(ctx, "alice", NewTask{
		Title:       "  Read chapter 3  ",
		Description: "   ",
		Subject:     " Biology ",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, task.ID)
	assert.Equal(t, "Read chapter 3", task.Title)
	assert.Nil(t, task.Description)
	require.NotNil(t, task.Subject)
	assert.Equal(t, "Biology", *task.Subject)
	assert.Equal(t, constants.PriorityMedium, task.Priority)
	assert.Equal(t, constants.StatusPending, task.Status)
	assert.False(t, task.IsFavorite)
	assert.Nil(t, task.CompletedAt)

	assert.Equal(t, 1, f.cache.invalidations())
	assert.Equal(t, []string{"alice"}, f.refresher.enqueued())
}

func TestTaskService_BlankTitleRejectedBeforePersistence(t *testing.T) {
	f := newTaskFixture(t)

	for _, title := range []string{"", "   ", "\t\n"} {
		_, err := f.service.CreateTask(context.Background(), "alice", NewTask{Title: title})
		assert.ErrorIs(t, err, apperrors.ErrTitleRequired)
	}

	assert.Zero(t, f.store.count("CreateTask"))
	assert.Zero(t, f.cache.invalidations())
	assert.Empty(t, f.refresher.enqueued())
}

func TestTaskService_CreateRejectsUnknownPriority(t *testing.T) {
	f := newTaskFixture(t)

	_, err := f.service.CreateTask(context.Background(), "alice", NewTask{Title: "x", Priority: "critical"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidPriority)
	assert.Zero(t, f.store.count("CreateTask"))
}

func TestTaskService_CycleStatusStampsCompletedAt(t *testing.T) {
	f := newTaskFixture(t)
	ctx := context.Background()
	fixed := time.Date(2024, 4, 2, 15, 0, 0, 0, time.UTC)
	f.service.now = func() time.Time { return fixed }

	task, err := f.service.CreateTask(ctx, "alice", NewTask{Title: "Thesis outline"})
	require.NoError(t, err)

	task, err = f.service.CycleStatus(ctx, "alice", task.ID)
	require.NoError(t, err)
	assert.Equal(t, constants.StatusInProgress, task.Status)
	assert.Nil(t, task.CompletedAt)

	task, err = f.service.CycleStatus(ctx, "alice", task.ID)
	require.NoError(t, err)
	assert.Equal(t, constants.StatusCompleted, task.Status)
	require.NotNil(t, task.CompletedAt)
	assert.True(t, fixed.Equal(*task.CompletedAt))

	stored, err := f.service.GetTask(ctx, "alice", task.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.CompletedAt)

	task, err = f.service.CycleStatus(ctx, "alice", task.ID)
	require.NoError(t, err)
	assert.Equal(t, constants.StatusPending, task.Status)
	assert.Nil(t, task.CompletedAt)

	stored, err = f.service.GetTask(ctx, "alice", task.ID)
	require.NoError(t, err)
	assert.Equal(t, constants.StatusPending, stored.Status)
	assert.Nil(t, stored.CompletedAt)
}

func TestTaskService_UpdateStatusAppliesCompletedAt(t *testing.T) {
	f := newTaskFixture(t)
	ctx := context.Background()

	task, err := f.service.CreateTask(ctx, "alice", NewTask{Title: "Flashcards"})
	require.NoError(t, err)

	updated, err := f.service.UpdateTask(ctx, "alice", task.ID, TaskPatch{Status: strPtr("completed")})
	require.NoError(t, err)
	assert.NotNil(t, updated.CompletedAt)

	updated, err = f.service.UpdateTask(ctx, "alice", task.ID, TaskPatch{Status: strPtr("in-progress")})
	require.NoError(t, err)
	assert.Nil(t, updated.CompletedAt)
}

func TestTaskService_UpdateSameStatusKeepsCompletedAt(t *testing.T) {
	f := newTaskFixture(t)
	ctx := context.Background()
	finished := time.Date(2024, 4, 2, 15, 0, 0, 0, time.UTC)
	f.service.now = func() time.Time { return finished }

	task, err := f.service.CreateTask(ctx, "alice", NewTask{Title: "Problem set"})
	require.NoError(t, err)

	updated, err := f.service.UpdateTask(ctx, "alice", task.ID, TaskPatch{Status: strPtr("completed")})
	require.NoError(t, err)
	require.NotNil(t, updated.CompletedAt)
	assert.True(t, finished.Equal(*updated.CompletedAt))

	f.service.now = func() time.Time { return finished.Add(72 * time.Hour) }

	updated, err = f.service.UpdateTask(ctx, "alice", task.ID, TaskPatch{
		Status: strPtr("completed"),
		Title:  strPtr("Problem set (graded)"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Problem set (graded)", updated.Title)
	require.NotNil(t, updated.CompletedAt)
	assert.True(t, finished.Equal(*updated.CompletedAt))
}

func TestTaskService_UpdatePartialFields(t *testing.T) {
	f := newTaskFixture(t)
	ctx := context.Background()
	due := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	task, err := f.service.CreateTask(ctx, "alice", NewTask{Title: "Old", Subject: "History", DueDate: &due})
	require.NoError(t, err)

	favorite := true
	updated, err := f.service.UpdateTask(ctx, "alice", task.ID, TaskPatch{
		Title:        strPtr(" New "),
		Subject:      strPtr(""),
		Priority:     strPtr("high"),
		ClearDueDate: true,
		IsFavorite:   &favorite,
	})
	require.NoError(t, err)

	assert.Equal(t, "New", updated.Title)
	assert.Nil(t, updated.Subject)
	assert.Equal(t, constants.PriorityHigh, updated.Priority)
	assert.Nil(t, updated.DueDate)
	assert.True(t, updated.IsFavorite)
	assert.Equal(t, constants.StatusPending, updated.Status)
}

func TestTaskService_UpdateValidation(t *testing.T) {
	f := newTaskFixture(t)
	ctx := context.Background()
	due := time.Now()

	tests := []struct {
		name  string
		patch TaskPatch
		want  error
	}{
		{"empty patch", TaskPatch{}, apperrors.ErrEmptyUpdate},
		{"blank title", TaskPatch{Title: strPtr("  ")}, apperrors.ErrTitleRequired},
		{"bad status", TaskPatch{Status: strPtr("done")}, apperrors.ErrInvalidStatus},
		{"bad priority", TaskPatch{Priority: strPtr("p0")}, apperrors.ErrInvalidPriority},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.service.UpdateTask(ctx, "alice", "some-id", tt.patch)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	_, err := f.service.UpdateTask(ctx, "alice", "some-id", TaskPatch{DueDate: &due, ClearDueDate: true})
	assert.Equal(t, 400, apperrors.StatusCode(err))

	_, err = f.service.UpdateTask(ctx, "alice", "", TaskPatch{Title: strPtr("x")})
	assert.ErrorIs(t, err, apperrors.ErrTaskIDRequired)

	assert.Zero(t, f.store.count("UpdateTask"))
}

func TestTaskService_CrossUserMutationsAffectNothing(t *testing.T) {
	f := newTaskFixture(t)
	ctx := context.Background()

	task, err := f.service.CreateTask(ctx, "alice", NewTask{Title: "Private"})
	require.NoError(t, err)
	invalidationsAfterCreate := f.cache.invalidations()

	_, err = f.service.UpdateTask(ctx, "mallory", task.ID, TaskPatch{Title: strPtr("Owned")})
	assert.ErrorIs(t, err, apperrors.ErrTaskNotFound)

	err = f.service.DeleteTask(ctx, "mallory", task.ID)
	assert.ErrorIs(t, err, apperrors.ErrTaskNotFound)

	_, err = f.service.CycleStatus(ctx, "mallory", task.ID)
	assert.ErrorIs(t, err, apperrors.ErrTaskNotFound)

	_, err = f.service.ToggleFavorite(ctx, "mallory", task.ID)
	assert.ErrorIs(t, err, apperrors.ErrTaskNotFound)

	stored, err := f.service.GetTask(ctx, "alice", task.ID)
	require.NoError(t, err)
	assert.Equal(t, "Private", stored.Title)
	assert.Equal(t, constants.StatusPending, stored.Status)
	assert.False(t, stored.IsFavorite)

	assert.Equal(t, invalidationsAfterCreate, f.cache.invalidations())
}

func TestTaskService_ToggleFavorite(t *testing.T) {
	f := newTaskFixture(t)
	ctx := context.Background()

	task, err := f.service.CreateTask(ctx, "alice", NewTask{Title: "Star me"})
	require.NoError(t, err)

	task, err = f.service.ToggleFavorite(ctx, "alice", task.ID)
	require.NoError(t, err)
	assert.True(t, task.IsFavorite)

	task, err = f.service.ToggleFavorite(ctx, "alice", task.ID)
	require.NoError(t, err)
	assert.False(t, task.IsFavorite)
}

func TestTaskService_DeleteInvalidatesCache(t *testing.T) {
	f := newTaskFixture(t)
	ctx := context.Background()

	task, err := f.service.CreateTask(ctx, "alice", NewTask{Title: "Temp"})
	require.NoError(t, err)

	_, err = f.service.ListTasks(ctx, "alice", model.TaskFilter{})
	require.NoError(t, err)
	_, ok := f.cache.cached("alice")
	require.True(t, ok)

	require.NoError(t, f.service.DeleteTask(ctx, "alice", task.ID))
	_, ok = f.cache.cached("alice")
	assert.False(t, ok)

	tasks, err := f.service.ListTasks(ctx, "alice", model.TaskFilter{})
	require.NoError(t, err)
	assert.Empty(t, tasks)
}

func TestTaskService_ListReadsThroughCache(t *testing.T) {
	f := newTaskFixture(t)
	ctx := context.Background()

	_, err := f.service.CreateTask(ctx, "alice", NewTask{Title: "Quiz review", Subject: "Spanish"})
	require.NoError(t, err)

	first, err := f.service.ListTasks(ctx, "alice", model.TaskFilter{})
	require.NoError(t, err)
	require.Len(t, first, 1)
	assert.Equal(t, 1, f.store.count("FindTasks"))

	second, err := f.service.ListTasks(ctx, "alice", model.TaskFilter{Status: "all", Search: "spanish"})
	require.NoError(t, err)
	require.Len(t, second, 1)
	assert.Equal(t, 1, f.store.count("FindTasks"))

	_, err = f.service.ListTasks(ctx, "alice", model.TaskFilter{Status: "pending"})
	require.NoError(t, err)
	assert.Equal(t, 2, f.store.count("FindTasks"))
}

func TestTaskService_ListFallsBackWhenCacheFails(t *testing.T) {
	f := newTaskFixture(t)
	ctx := context.Background()

	_, err := f.service.CreateTask(ctx, "alice", NewTask{Title: "Still listed"})
	require.NoError(t, err)

	f.cache.getErr = errors.New("connection refused")

	tasks, err := f.service.ListTasks(ctx, "alice", model.TaskFilter{})
	require.NoError(t, err)
	assert.Len(t, tasks, 1)
}

func TestTaskService_ListRejectsUnknownFilter(t *testing.T) {
	f := newTaskFixture(t)

	_, err := f.service.ListTasks(context.Background(), "alice", model.TaskFilter{Status: "archived"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidStatus)

	_, err = f.service.ListTasks(context.Background(), "alice", model.TaskFilter{Priority: "p1"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidPriority)
}

func TestTaskService_Stats(t *testing.T) {
	f := newTaskFixture(t)
	ctx := context.Background()
	now := time.Now().UTC()
	yesterday := now.Add(-24 * time.Hour)

	overdue, err := f.service.CreateTask(ctx, "alice", NewTask{Title: "Late", DueDate: &yesterday})
	require.NoError(t, err)
	done, err := f.service.CreateTask(ctx, "alice", NewTask{Title: "Done", DueDate: &yesterday})
	require.NoError(t, err)
	_, err = f.service.UpdateTask(ctx, "alice", done.ID, TaskPatch{Status: strPtr("completed")})
	require.NoError(t, err)
	_, err = f.service.CreateTask(ctx, "bob", NewTask{Title: "Not alice's"})
	require.NoError(t, err)

	stats, err := f.service.Stats(ctx, "alice", now)
	require.NoError(t, err)

	assert.Equal(t, 2, stats.Total)
	assert.Equal(t, 1, stats.Pending)
	assert.Equal(t, 1, stats.Completed)
	assert.Equal(t, 0, stats.InProgress)
	assert.Equal(t, 1, stats.Overdue)
	assert.NotEmpty(t, overdue.ID)
}
