package services

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"study-planner.com/study-planner/internal/cache"
	model "study-planner.com/study-planner/internal/models"
)

const refreshTimeout = 5 * time.Second

// RefreshService is a fixed pool of workers that reload a user's task
// collection into the cache after it was invalidated by a write.
type RefreshService struct {
	queue    chan string
	wg       sync.WaitGroup
	enqueued sync.Map
	repo     TaskStore
	cache    cache.TaskCache
	log      *zap.Logger

	mu     sync.RWMutex
	closed bool
}

func NewRefreshService(
	repo TaskStore,
	taskCache cache.TaskCache,
	workers int,
	queueSize int,
	log *zap.Logger,
) *RefreshService {
	p := &RefreshService{
		queue: make(chan string, queueSize),
		repo:  repo,
		cache: taskCache,
		log:   log,
	}

	for i := 1; i <= workers; i++ {
		p.wg.Add(1)
		go p.worker(i)
	}

	return p
}

// Enqueue schedules a refresh for userID. It never blocks: it returns false
// when a refresh for the user is already queued, the queue is full, or the
// pool is shut down.
func (p *RefreshService) Enqueue(userID string) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		return false
	}
	return p.enqueueIfNotPresent(userID)
}

func (p *RefreshService) worker(workerID int) {
	defer p.wg.Done()

	p.log.Debug("refresh worker started", zap.Int("worker", workerID))

	for userID := range p.queue {
		p.handleRefresh(workerID, userID)
	}

	p.log.Debug("refresh worker stopped", zap.Int("worker", workerID))
}

func (p *RefreshService) handleRefresh(workerID int, userID string) {
	// Untracked before loading, so a write landing mid-refresh queues
	// another pass instead of being swallowed by this one.
	p.untrackEnqueued(userID)

	ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
	defer cancel()

	gen, err := p.cache.Generation(ctx, userID)
	if err != nil {
		p.log.Warn("refresh: failed to read cache generation",
			zap.Int("worker", workerID), zap.String("user_id", userID), zap.Error(err))
		return
	}

	tasks, err := p.repo.FindTasks(ctx, userID, model.TaskFilter{})
	if err != nil {
		p.log.Warn("refresh: failed to load tasks",
			zap.Int("worker", workerID), zap.String("user_id", userID), zap.Error(err))
		return
	}

	stored, err := p.cache.Set(ctx, userID, gen, tasks)
	if err != nil {
		p.log.Warn("refresh: failed to cache tasks",
			zap.Int("worker", workerID), zap.String("user_id", userID), zap.Error(err))
		return
	}
	if !stored {
		p.log.Debug("refresh: snapshot superseded by a newer write",
			zap.Int("worker", workerID), zap.String("user_id", userID))
		return
	}

	p.log.Debug("refresh: cached tasks",
		zap.Int("worker", workerID), zap.String("user_id", userID), zap.Int("count", len(tasks)))
}

func (p *RefreshService) enqueueIfNotPresent(userID string) bool {
	if !p.trackEnqueued(userID) {
		return false
	}

	select {
	case p.queue <- userID:
		return true
	default:
		p.untrackEnqueued(userID)
		return false
	}
}

func (p *RefreshService) trackEnqueued(userID string) bool {
	_, loaded := p.enqueued.LoadOrStore(userID, struct{}{})
	return !loaded
}

func (p *RefreshService) untrackEnqueued(userID string) {
	p.enqueued.Delete(userID)
}

func (p *RefreshService) Shutdown(ctx context.Context) {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	close(p.queue)
	p.mu.Unlock()

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		p.log.Info("refresh pool shut down cleanly")
	case <-ctx.Done():
		p.log.Warn("refresh pool shutdown timed out")
	}
}
