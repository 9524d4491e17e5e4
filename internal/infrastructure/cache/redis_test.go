package cache

import (
	"context"
	"testing"
	"time"

	"groupie/internal/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedis_UnavailableIsNoop(t *testing.T) {
	r := NewRedisWithClient(nil, 0, logger.Discard())
	ctx := context.Background()

	require.NoError(t, r.SetJSON(ctx, "k", map[string]int{"a": 1}, time.Minute))

	var out map[string]int
	hit, err := r.GetJSON(ctx, "k", &out)
	require.NoError(t, err)
	assert.False(t, hit)

	assert.NoError(t, r.Delete(ctx, "k"))
	assert.NoError(t, r.DeleteByPattern(ctx, "ref:*"))
	assert.Error(t, r.Ping(ctx))
	assert.NoError(t, r.Close())
	assert.Equal(t, defaultTTL, r.ttl)
}

func TestRedis_NilReceiver(t *testing.T) {
	var r *Redis
	hit, err := r.GetJSON(context.Background(), "k", &struct{}{})
	assert.NoError(t, err)
	assert.False(t, hit)
}
