package database

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDatabaseName(t *testing.T) {
	require.Equal(t, "explicit", DatabaseName("mongodb://localhost:27017/fromuri", "explicit"))
	require.Equal(t, "fromuri", DatabaseName("mongodb://localhost:27017/fromuri?retryWrites=true", ""))
	require.Equal(t, DefaultDatabase, DatabaseName("mongodb://localhost:27017", ""))
	require.Equal(t, DefaultDatabase, DatabaseName("not a uri", ""))
}

func TestConnectWithRetryGivesUpOnInvalidURI(t *testing.T) {
	start := time.Now()
	_, err := ConnectWithRetry(context.Background(), "bogus://nowhere", 50*time.Millisecond, 2, 10*time.Millisecond)
	require.Error(t, err)
	require.Less(t, time.Since(start), 5*time.Second)
}

func TestConnectWithRetryHonoursCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := ConnectWithRetry(ctx, "bogus://nowhere", 50*time.Millisecond, 3, time.Second)
	require.Error(t, err)
}
