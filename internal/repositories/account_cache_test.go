package repositories

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sbilibin2017/gw-user-accounts/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func TestAccountCacheRepository(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping redis container test in short mode")
	}
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "redis:7.0-alpine",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForListeningPort("6379/tcp"),
	}
	redisC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	defer redisC.Terminate(ctx)

	host, err := redisC.Host(ctx)
	require.NoError(t, err)
	port, err := redisC.MappedPort(ctx, "6379")
	require.NoError(t, err)

	rdb := redis.NewClient(&redis.Options{
		Addr: fmt.Sprintf("%s:%s", host, port.Port()),
	})
	defer rdb.Close()
	require.NoError(t, rdb.Ping(ctx).Err())

	repo := NewAccountCacheRepository(rdb, 2*time.Second)

	newAccount := func() *models.Account {
		return &models.Account{
			UserID:    uuid.New(),
			Username:  "alice",
			Email:     "alice@example.com",
			Fullname:  "Alice Anders",
			CreatedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		}
	}

	t.Run("set and get", func(t *testing.T) {
		account := newAccount()
		require.NoError(t, repo.Set(ctx, account))

		got, err := repo.Get(ctx, account.UserID)
		require.NoError(t, err)
		assert.Equal(t, account, got)
	})

	t.Run("miss returns nil", func(t *testing.T) {
		got, err := repo.Get(ctx, uuid.New())
		assert.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("delete", func(t *testing.T) {
		account := newAccount()
		require.NoError(t, repo.Set(ctx, account))
		require.NoError(t, repo.Delete(ctx, account.UserID))

		got, err := repo.Get(ctx, account.UserID)
		assert.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("expires", func(t *testing.T) {
		account := newAccount()
		require.NoError(t, repo.Set(ctx, account))

		time.Sleep(3 * time.Second)

		got, err := repo.Get(ctx, account.UserID)
		assert.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("corrupt entry", func(t *testing.T) {
		id := uuid.New()
		require.NoError(t, rdb.Set(ctx, accountKey(id), "not-json", time.Minute).Err())

		_, err := repo.Get(ctx, id)
		assert.Error(t, err)
	})
}
