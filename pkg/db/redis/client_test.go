package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quicknote/pkg/db/redis"
)

func TestConnect(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		s := miniredis.RunT(t)

		client, err := redis.Connect(context.Background(), redis.Options{
			Addr:           s.Addr(),
			ConnectTimeout: time.Second,
		})
		require.NoError(t, err)
		require.NotNil(t, client)
		assert.NoError(t, client.Close())
	})

	t.Run("unreachable server", func(t *testing.T) {
		client, err := redis.Connect(context.Background(), redis.Options{
			Addr:           "127.0.0.1:1",
			ConnectTimeout: 100 * time.Millisecond,
			ReadTimeout:    100 * time.Millisecond,
		})
		require.Error(t, err)
		assert.Nil(t, client)
		assert.Contains(t, err.Error(), "failed to connect to redis")
	})

	t.Run("canceled context", func(t *testing.T) {
		s := miniredis.RunT(t)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		client, err := redis.Connect(ctx, redis.Options{Addr: s.Addr()})
		require.Error(t, err)
		assert.Nil(t, client)
	})
}
