package cache

import (
	"context"

	model "study-planner.com/study-planner/internal/models"
)

// TaskCache holds each user's full, unfiltered task collection.
//
// Every invalidation bumps the user's generation. A loader reads the
// generation before querying storage and passes it to Set, which drops the
// write if the collection was invalidated in the meantime.
type TaskCache interface {
	// Get reports ok=false on a miss.
	Get(ctx context.Context, userID string) (tasks []model.Task, ok bool, err error)

	Generation(ctx context.Context, userID string) (int64, error)

	// Set stores tasks only while the generation is still gen.
	Set(ctx context.Context, userID string, gen int64, tasks []model.Task) (stored bool, err error)

	Invalidate(ctx context.Context, userID string) error
}

// Noop is used when caching is disabled; every read misses.
type Noop struct{}

func (Noop) Get(context.Context, string) ([]model.Task, bool, error) { return nil, false, nil }

func (Noop) Generation(context.Context, string) (int64, error) { return 0, nil }

func (Noop) Set(context.Context, string, int64, []model.Task) (bool, error) { return false, nil }

func (Noop) Invalidate(context.Context, string) error { return nil }
