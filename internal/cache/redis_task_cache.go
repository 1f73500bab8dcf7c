package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/rueidis"

	model "study-planner.com/study-planner/internal/models"
)

// setIfGeneration writes KEYS[1] only while KEYS[2] still holds ARGV[1].
// A missing generation key counts as 0.
const setIfGeneration = `
local current = redis.call('GET', KEYS[2]) or '0'
if current ~= ARGV[1] then
	return 0
end
redis.call('SET', KEYS[1], ARGV[2], 'EX', ARGV[3])
return 1
`

type RedisTaskCache struct {
	client rueidis.Client
	prefix string
	ttl    time.Duration
}

func NewRedisTaskCache(client rueidis.Client, prefix string, ttl time.Duration) *RedisTaskCache {
	return &RedisTaskCache{
		client: client,
		prefix: prefix,
		ttl:    ttl,
	}
}

// Key is the redis key holding userID's task collection. The user id is a
// hash tag so the collection and its generation share a cluster slot.
func Key(prefix, userID string) string {
	return prefix + "tasks:{" + userID + "}"
}

// GenerationKey is the counter bumped on every invalidation of userID's
// collection. It carries no TTL.
func GenerationKey(prefix, userID string) string {
	return prefix + "tasks-gen:{" + userID + "}"
}

func (r *RedisTaskCache) Get(ctx context.Context, userID string) ([]model.Task, bool, error) {
	cmd := r.client.B().Get().Key(Key(r.prefix, userID)).Build()
	data, err := r.client.Do(ctx, cmd).AsBytes()
	if err != nil {
		if rueidis.IsRedisNil(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("cache get: %w", err)
	}

	var tasks []model.Task
	if err := json.Unmarshal(data, &tasks); err != nil {
		return nil, false, fmt.Errorf("cache decode: %w", err)
	}
	return tasks, true, nil
}

func (r *RedisTaskCache) Generation(ctx context.Context, userID string) (int64, error) {
	cmd := r.client.B().Get().Key(GenerationKey(r.prefix, userID)).Build()
	gen, err := r.client.Do(ctx, cmd).AsInt64()
	if err != nil {
		if rueidis.IsRedisNil(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("cache generation: %w", err)
	}
	return gen, nil
}

func (r *RedisTaskCache) Set(ctx context.Context, userID string, gen int64, tasks []model.Task) (bool, error) {
	data, err := json.Marshal(tasks)
	if err != nil {
		return false, fmt.Errorf("cache encode: %w", err)
	}

	cmd := r.client.B().Eval().Script(setIfGeneration).Numkeys(2).
		Key(Key(r.prefix, userID), GenerationKey(r.prefix, userID)).
		Arg(strconv.FormatInt(gen, 10), string(data), strconv.Itoa(r.ttlSeconds())).
		Build()

	stored, err := r.client.Do(ctx, cmd).AsInt64()
	if err != nil {
		return false, fmt.Errorf("cache set: %w", err)
	}
	return stored == 1, nil
}

// Invalidate bumps the generation before deleting the collection, so a
// loader that read the old generation can no longer store its snapshot.
func (r *RedisTaskCache) Invalidate(ctx context.Context, userID string) error {
	results := r.client.DoMulti(ctx,
		r.client.B().Incr().Key(GenerationKey(r.prefix, userID)).Build(),
		r.client.B().Del().Key(Key(r.prefix, userID)).Build(),
	)
	for _, res := range results {
		if err := res.Error(); err != nil {
			return fmt.Errorf("cache invalidate: %w", err)
		}
	}
	return nil
}

func (r *RedisTaskCache) ttlSeconds() int {
	if s := int(r.ttl / time.Second); s > 0 {
		return s
	}
	return 1
}
