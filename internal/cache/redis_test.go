package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedis(t *testing.T) (*Redis, *miniredis.Miniredis) {
	t.Helper()

	srv := miniredis.RunT(t)
	c, err := NewRedis(context.Background(), srv.Addr(), "", 0, "test")
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c, srv
}

func TestRedis_GetPutForget(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestRedis(t)

	_, err := c.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrMiss)

	require.NoError(t, c.Put(ctx, "k", "v", 0))
	got, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v", got)

	require.NoError(t, c.Forget(ctx, "k"))
	_, err = c.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrMiss)
}

func TestRedis_KeysAreNamespaced(t *testing.T) {
	ctx := context.Background()
	c, srv := newTestRedis(t)

	require.NoError(t, c.Put(ctx, KeyCorpus, "[]", CorpusTTL))

	assert.True(t, srv.Exists("test:"+KeyCorpus))
	assert.False(t, srv.Exists(KeyCorpus))
}

func TestRedis_TTLExpiry(t *testing.T) {
	ctx := context.Background()
	c, srv := newTestRedis(t)

	require.NoError(t, c.Put(ctx, "k", "v", time.Minute))

	srv.FastForward(30 * time.Second)
	_, err := c.Get(ctx, "k")
	require.NoError(t, err)

	srv.FastForward(31 * time.Second)
	_, err = c.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrMiss)
}

func TestNewRedis_ConnectFailure(t *testing.T) {
	srv := miniredis.RunT(t)
	addr := srv.Addr()
	srv.Close()

	_, err := NewRedis(context.Background(), addr, "", 0, "test")
	assert.Error(t, err)
}
