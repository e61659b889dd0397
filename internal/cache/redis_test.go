package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T) (*Client, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewClientWithRedis(rdb, time.Minute), mr
}

func TestEventsListRoundTrip(t *testing.T) {
	client, _ := newTestClient(t)
	ctx := context.Background()

	_, err := client.GetEventsListRaw(ctx)
	assert.Error(t, err, "empty cache must miss")

	client.SetEventsList(ctx, map[string]string{"hello": "world"})

	raw, err := client.GetEventsListRaw(ctx)
	require.NoError(t, err)
	assert.JSONEq(t, `{"hello":"world"}`, string(raw))
}

func TestInvalidateEventsList(t *testing.T) {
	client, _ := newTestClient(t)
	ctx := context.Background()

	client.SetEventsList(ctx, []string{"a"})
	client.InvalidateEventsList(ctx)

	_, err := client.GetEventsListRaw(ctx)
	assert.Error(t, err)
}

func TestEventsListExpires(t *testing.T) {
	client, mr := newTestClient(t)
	ctx := context.Background()

	client.SetEventsList(ctx, []string{"a"})

	mr.FastForward(2 * time.Minute)

	_, err := client.GetEventsListRaw(ctx)
	assert.Error(t, err)
}
