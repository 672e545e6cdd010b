package cache

import (
	"context"
	"testing"
	"time"

	mr "github.com/alicebob/miniredis/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/redis/go-redis/v9"
	"github.com/strnadel/strnadel-api/internal/repository"
	"github.com/strnadel/strnadel-api/pkg/metrics"
	"github.com/stretchr/testify/require"
)

func TestListingCache_SetGetExpire(t *testing.T) {
	m, err := mr.Run()
	require.NoError(t, err)
	defer m.Close()

	client := redis.NewClient(&redis.Options{Addr: m.Addr()})
	c := NewListingCache(client, "test:listing:", 2*time.Second)
	ctx := context.Background()

	_, ok := c.Get(ctx, "jobopening", 20)
	require.False(t, ok)

	docs := []repository.Document{{"id": "abc", "title": "Welder"}}
	require.NoError(t, c.Set(ctx, "jobopening", 20, docs))
	require.True(t, m.Exists("test:listing:jobopening:20"))

	got, ok := c.Get(ctx, "jobopening", 20)
	require.True(t, ok)
	require.Equal(t, "Welder", got[0]["title"])
	require.Equal(t, "abc", got[0]["id"])

	// a different limit is a different entry
	_, ok = c.Get(ctx, "jobopening", 3)
	require.False(t, ok)

	m.FastForward(3 * time.Second)
	_, ok = c.Get(ctx, "jobopening", 20)
	require.False(t, ok)
}

func TestListingCache_CorruptEntryIsDropped(t *testing.T) {
	m, err := mr.Run()
	require.NoError(t, err)
	defer m.Close()

	client := redis.NewClient(&redis.Options{Addr: m.Addr()})
	c := NewListingCache(client, "", 0)
	require.NoError(t, m.Set("listing:teammember:20", "{not json"))

	before := testutil.ToFloat64(metrics.CacheRequests.WithLabelValues("teammember", "miss"))
	_, ok := c.Get(context.Background(), "teammember", 20)
	require.False(t, ok)
	require.False(t, m.Exists("listing:teammember:20"))
	require.Equal(t, before+1, testutil.ToFloat64(metrics.CacheRequests.WithLabelValues("teammember", "miss")))
}

func TestListingCache_NilIsNoop(t *testing.T) {
	c := NewListingCache(nil, "", time.Minute)
	require.Nil(t, c)
	_, ok := c.Get(context.Background(), "casestudy", 12)
	require.False(t, ok)
	require.NoError(t, c.Set(context.Background(), "casestudy", 12, nil))
}
