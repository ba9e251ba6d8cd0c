package repository

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	appErrors "github.com/noah-isme/timetable-api/pkg/errors"
)

func TestCacheRepositoryWithoutClientIsAlwaysMiss(t *testing.T) {
	repo := NewCacheRepository(nil, zap.NewNop())
	ctx := context.Background()

	var dest map[string]string
	assert.ErrorIs(t, repo.Get(ctx, "timetable:stats", &dest), appErrors.ErrCacheMiss)
	assert.NoError(t, repo.Set(ctx, "timetable:stats", map[string]string{"a": "b"}, time.Minute))
	removed, err := repo.Purge(ctx, "timetable:*")
	assert.NoError(t, err)
	assert.Zero(t, removed)
}

func TestCacheRepositoryUnreachableRedis(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", DialTimeout: 50 * time.Millisecond, MaxRetries: -1})
	t.Cleanup(func() { client.Close() })
	repo := NewCacheRepository(client, nil)
	ctx := context.Background()

	var dest map[string]string
	err := repo.Get(ctx, "timetable:class:1", &dest)
	require.Error(t, err)
	assert.NotErrorIs(t, err, appErrors.ErrCacheMiss)

	removed, err := repo.Purge(ctx, "timetable:*")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "redis scan timetable:*")
	assert.Zero(t, removed)
}
