package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNilClientIsAMiss(t *testing.T) {
	var c *Client
	ctx := context.Background()

	assert.NoError(t, c.Set(ctx, "k", []byte("v"), time.Minute))
	data, err := c.Get(ctx, "k")
	assert.NoError(t, err)
	assert.Nil(t, data)
	assert.NoError(t, c.Delete(ctx, "k"))
	assert.NoError(t, c.Ping(ctx))
	assert.NoError(t, c.Close())
}

func TestUnreachableRedisFailsSafe(t *testing.T) {
	c := New("127.0.0.1:1", "", 0)
	defer c.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	assert.NoError(t, c.Set(ctx, "k", []byte("v"), time.Minute))
	data, err := c.Get(ctx, "k")
	assert.NoError(t, err)
	assert.Nil(t, data)
	assert.NoError(t, c.Delete(ctx, "k"))
	assert.Error(t, c.Ping(ctx))
}

func newMiniredisClient(t *testing.T) (*Client, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	c := New(mr.Addr(), "", 0)
	t.Cleanup(func() { _ = c.Close() })
	return c, mr
}

func TestClient_SetGetDelete(t *testing.T) {
	c, mr := newMiniredisClient(t)
	ctx := context.Background()

	require.NoError(t, c.Ping(ctx))
	require.NoError(t, c.Set(ctx, "k", []byte("v"), time.Minute))

	data, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), data)
	assert.Equal(t, time.Minute, mr.TTL("k"))

	require.NoError(t, c.Delete(ctx, "k"))
	data, err = c.Get(ctx, "k")
	require.NoError(t, err)
	assert.Nil(t, data)
}

func TestClient_SetNXKeepsExistingValue(t *testing.T) {
	c, mr := newMiniredisClient(t)
	ctx := context.Background()

	assert.True(t, c.SetNX(ctx, "k", []byte("first"), time.Minute))
	assert.False(t, c.SetNX(ctx, "k", []byte("second"), time.Minute))

	value, err := mr.Get("k")
	require.NoError(t, err)
	assert.Equal(t, "first", value)

	var nilClient *Client
	assert.False(t, nilClient.SetNX(ctx, "k", []byte("v"), time.Minute))
}
