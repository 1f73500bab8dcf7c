package services

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	config "study-planner.com/study-planner/internal/configs"
	model "study-planner.com/study-planner/internal/models"
	repository "study-planner.com/study-planner/internal/repositories"
)

// fakeCache is an in-memory TaskCache with the same generation rule as the
// redis implementation.
type fakeCache struct {
	mu          sync.Mutex
	entries     map[string][]model.Task
	generations map[string]int64
	invalidated []string
	rejected    int
	getErr      error
}

func newFakeCache() *fakeCache {
	return &fakeCache{
		entries:     make(map[string][]model.Task),
		generations: make(map[string]int64),
	}
}

func (c *fakeCache) Get(_ context.Context, userID string) ([]model.Task, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.getErr != nil {
		return nil, false, c.getErr
	}
	tasks, ok := c.entries[userID]
	return tasks, ok, nil
}

func (c *fakeCache) Generation(_ context.Context, userID string) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.generations[userID], nil
}

func (c *fakeCache) Set(_ context.Context, userID string, gen int64, tasks []model.Task) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.generations[userID] != gen {
		c.rejected++
		return false, nil
	}
	c.entries[userID] = tasks
	return true, nil
}

func (c *fakeCache) Invalidate(_ context.Context, userID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.generations[userID]++
	delete(c.entries, userID)
	c.invalidated = append(c.invalidated, userID)
	return nil
}

func (c *fakeCache) rejections() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.rejected
}

func (c *fakeCache) cached(userID string) ([]model.Task, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	tasks, ok := c.entries[userID]
	return tasks, ok
}

func (c *fakeCache) invalidations() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.invalidated)
}

// fakeRefresher records enqueued users without reloading anything.
type fakeRefresher struct {
	mu    sync.Mutex
	users []string
}

func (r *fakeRefresher) Enqueue(userID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.users = append(r.users, userID)
	return true
}

func (r *fakeRefresher) enqueued() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]string(nil), r.users...)
}

// countingStore wraps a TaskStore and counts every call that reaches it.
type countingStore struct {
	TaskStore
	mu    sync.Mutex
	calls map[string]int
}

func newCountingStore(inner TaskStore) *countingStore {
	return &countingStore{TaskStore: inner, calls: make(map[string]int)}
}

func (s *countingStore) count(name string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[name]
}

func (s *countingStore) inc(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls[name]++
}

func (s *countingStore) FindTasks(ctx context.Context, userID string, filter model.TaskFilter) ([]model.Task, error) {
	s.inc("FindTasks")
	return s.TaskStore.FindTasks(ctx, userID, filter)
}

func (s *countingStore) CreateTask(ctx context.Context, task *model.Task) (string, error) {
	s.inc("CreateTask")
	return s.TaskStore.CreateTask(ctx, task)
}

func (s *countingStore) UpdateTask(ctx context.Context, userID, id string, fields map[string]interface{}) error {
	s.inc("UpdateTask")
	return s.TaskStore.UpdateTask(ctx, userID, id, fields)
}

func setupTestDB(t *testing.T) *gorm.DB {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := config.NewDatabase(config.DriverSQLite, dsn)
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	if err := config.Migrate(db); err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}
	return db
}

type taskFixture struct {
	service   *TaskService
	store     *countingStore
	cache     *fakeCache
	refresher *fakeRefresher
}

func newTaskFixture(t *testing.T) taskFixture {
	store := newCountingStore(repository.NewTaskRepository(setupTestDB(t)))
	c := newFakeCache()
	r := &fakeRefresher{}
	return taskFixture{
		service:   NewTaskService(store, c, r, zap.NewNop()),
		store:     store,
		cache:     c,
		refresher: r,
	}
}

func strPtr(s string) *string { return &s }
