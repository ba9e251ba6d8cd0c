package service

import (
	"context"
	"encoding/json"
	"errors"
	"path"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/noah-isme/timetable-api/pkg/errors"
)

type fakeCacheRepo struct {
	items     map[string][]byte
	getErr    error
	deleted   []string
	deleteErr error
}

func newFakeCacheRepo() *fakeCacheRepo {
	return &fakeCacheRepo{items: make(map[string][]byte)}
}

func (f *fakeCacheRepo) Get(ctx context.Context, key string, dest interface{}) error {
	if f.getErr != nil {
		return f.getErr
	}
	raw, ok := f.items[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	return json.Unmarshal(raw, dest)
}

func (f *fakeCacheRepo) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	f.items[key] = raw
	return nil
}

func (f *fakeCacheRepo) Purge(ctx context.Context, pattern string) (int, error) {
	f.deleted = append(f.deleted, pattern)
	if f.deleteErr != nil {
		return 0, f.deleteErr
	}
	removed := 0
	for key := range f.items {
		if ok, _ := path.Match(pattern, key); ok {
			delete(f.items, key)
			removed++
		}
	}
	return removed, nil
}

func TestCacheServiceRoundTripAndInvalidate(t *testing.T) {
	repo := newFakeCacheRepo()
	cache := NewCacheService(repo, NewMetricsService(), time.Minute, nil, true)
	ctx := context.Background()

	var miss map[string]int
	hit, err := cache.Get(ctx, classScheduleKey(1), &miss)
	require.NoError(t, err)
	assert.False(t, hit)

	require.NoError(t, cache.Set(ctx, classScheduleKey(1), map[string]int{"periods": 8}, 0))
	var got map[string]int
	hit, err = cache.Get(ctx, classScheduleKey(1), &got)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, 8, got["periods"])

	cache.InvalidateSchedules(ctx)
	assert.Equal(t, []string{"timetable:*"}, repo.deleted)
	assert.Empty(t, repo.items)
}

func TestCacheServiceDisabledIsNoop(t *testing.T) {
	repo := newFakeCacheRepo()
	cache := NewCacheService(repo, nil, 0, nil, false)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, statsCacheKey, 1, 0))
	assert.Empty(t, repo.items)
	cache.InvalidateSchedules(ctx)
	assert.Empty(t, repo.deleted)

	var nilCache *CacheService
	assert.False(t, nilCache.Enabled())
	nilCache.InvalidateSchedules(ctx)
}

func TestCacheServiceInvalidateFailureIsSwallowed(t *testing.T) {
	repo := newFakeCacheRepo()
	repo.deleteErr = errors.New("redis down")
	cache := NewCacheService(repo, nil, 0, nil, true)

	assert.NotPanics(t, func() { cache.InvalidateSchedules(context.Background()) })
	assert.Equal(t, []string{"timetable:*"}, repo.deleted)
}

func TestScheduleKeys(t *testing.T) {
	assert.Equal(t, "timetable:class:3", classScheduleKey(3))
	assert.Equal(t, "timetable:teacher:4", teacherScheduleKey(4))
	assert.Equal(t, "timetable:weekday:1", weekdayScheduleKey(1))
}
